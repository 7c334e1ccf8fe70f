package inmemdb

import (
	"context"
	"strings"

	"github.com/raihan7913/devsecop-sub001/core/curriculum"
)

type curriculumRepository struct {
	db *DB
}

func NewCurriculumRepository(db *DB) curriculum.Repository {
	return &curriculumRepository{db: db}
}

func (repo *curriculumRepository) FindSubjectIDByName(_ context.Context, name string) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var id int64
	for _, subj := range repo.db.subjects {
		// lowest ID wins on case-insensitive duplicates
		if strings.EqualFold(subj.Name, name) && (id == 0 || subj.ID < id) {
			id = subj.ID
		}
	}
	if id == 0 {
		return 0, curriculum.ErrSubjectNotFound
	}
	return id, nil
}

func (repo *curriculumRepository) GetSubject(_ context.Context, id int64) (curriculum.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if subj, ok := repo.db.subjects[id]; ok {
		return *subj, nil
	}
	return curriculum.Subject{}, curriculum.ErrSubjectNotFound
}

func (repo *curriculumRepository) UpsertPhaseDescriptor(_ context.Context, desc curriculum.PhaseDescriptor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	subj, ok := repo.db.subjects[desc.SubjectID]
	if !ok {
		return curriculum.ErrSubjectNotFound
	}
	desc.SubjectName = subj.Name

	key := descriptorKey{subjectID: desc.SubjectID, phase: desc.Phase}
	if orig, ok := repo.db.descriptors[key]; ok {
		orig.Description = desc.Description
		orig.DocumentPath = desc.DocumentPath
		orig.UpdatedAt = desc.UpdatedAt
		return nil
	}
	repo.db.descriptors[key] = &desc
	return nil
}

func (repo *curriculumRepository) GetPhaseDescriptor(_ context.Context, subjectID int64, phase curriculum.Phase) (curriculum.PhaseDescriptor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if desc, ok := repo.db.descriptors[descriptorKey{subjectID: subjectID, phase: phase}]; ok {
		return *desc, nil
	}
	return curriculum.PhaseDescriptor{}, curriculum.ErrDocumentNotFound
}

func (repo *curriculumRepository) QueryPhaseDescriptors(_ context.Context, subjectID int64) ([]curriculum.PhaseDescriptor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	descs := make([]curriculum.PhaseDescriptor, 0, len(curriculum.AllPhases))
	for _, phase := range curriculum.AllPhases {
		if desc, ok := repo.db.descriptors[descriptorKey{subjectID: subjectID, phase: phase}]; ok {
			descs = append(descs, *desc)
		}
	}
	return descs, nil
}

func (repo *curriculumRepository) GetClass(_ context.Context, id int64) (curriculum.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if class, ok := repo.db.classes[id]; ok {
		return *class, nil
	}
	return curriculum.Class{}, curriculum.ErrClassNotFound
}
