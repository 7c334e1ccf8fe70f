package inmemdb

import (
	"sync"

	"github.com/raihan7913/devsecop-sub001/core/curriculum"
)

type (
	DB struct {
		mutex sync.RWMutex

		subjects    map[int64]*curriculum.Subject
		classes     map[int64]*curriculum.Class
		descriptors map[descriptorKey]*curriculum.PhaseDescriptor
		pkCount     int64
	}

	descriptorKey struct {
		subjectID int64
		phase     curriculum.Phase
	}
)

func Open() *DB {
	return &DB{
		subjects:    make(map[int64]*curriculum.Subject),
		classes:     make(map[int64]*curriculum.Class),
		descriptors: make(map[descriptorKey]*curriculum.PhaseDescriptor),
	}
}

func (db *DB) nextPK() int64 {
	db.pkCount++
	return db.pkCount
}

// CreateSubject inserts a subject and returns it with its new ID.
func (db *DB) CreateSubject(name string) curriculum.Subject {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	subj := curriculum.Subject{ID: db.nextPK(), Name: name}
	db.subjects[subj.ID] = &subj
	return subj
}

// CreateClass inserts a class; termSemester may be empty for a class without academic term.
func (db *DB) CreateClass(name, termSemester string) curriculum.Class {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	class := curriculum.Class{ID: db.nextPK(), Name: name, TermSemester: termSemester}
	db.classes[class.ID] = &class
	return class
}
