package curriculum

import (
	"strings"
	"time"

	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

type Phase string

// Phases
const (
	PhaseA Phase = "A"
	PhaseB Phase = "B"
	PhaseC Phase = "C"
)

var AllPhases = []Phase{PhaseA, PhaseB, PhaseC}

// ParsePhase accepts a phase label in any case, surrounding whitespace ignored.
func ParsePhase(s string) (Phase, bool) {
	p := Phase(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllPhases {
		if p == known {
			return p, true
		}
	}
	return "", false
}

type (
	Subject struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	// Class is a school class. TermSemester is the semester label ("Ganjil"/"Genap")
	// of the class's academic term, empty when the class has no term.
	Class struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		TermSemester string `json:"term_semester"`
	}

	// PhaseDescriptor is the learning-outcome description of one phase of a subject
	// together with the path of the document it was imported from.
	PhaseDescriptor struct {
		SubjectID    int64     `json:"subject_id"`
		SubjectName  string    `json:"subject_name"`
		Phase        Phase     `json:"phase"`
		Description  string    `json:"description"`
		DocumentPath string    `json:"document_path"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	PhaseError struct {
		Phase Phase  `json:"phase"`
		Error string `json:"error"`
		Err   error  `json:"-"`
	}

	ImportResult struct {
		SubjectID    int64         `json:"subject_id"`
		SubjectName  string        `json:"subject_name"`
		DocumentPath string        `json:"document_path"`
		Phases       map[Phase]int `json:"phases"`
		Written      int           `json:"written"`
		Skipped      []Phase       `json:"skipped"`
		Errors       []PhaseError  `json:"errors"`
	}

	ObjectiveSheet struct {
		SubjectID int64             `json:"subject_id"`
		Phase     Phase             `json:"phase"`
		Sheet     string            `json:"sheet"`
		Headers   []string          `json:"headers"`
		Records   []workbook.Record `json:"records"`
	}

	Objective struct {
		No        int           `json:"no"`
		Objective string        `json:"objective"`
		Semester  workbook.Cell `json:"semester"`
		Mastery   string        `json:"mastery_criteria"`
		Grade     workbook.Cell `json:"grade"`
	}

	ObjectiveFilterResult struct {
		SubjectID   int64       `json:"subject_id"`
		SubjectName string      `json:"subject_name"`
		Phase       Phase       `json:"phase"`
		ClassID     int64       `json:"class_id"`
		ClassName   string      `json:"class_name"`
		GradeLevel  int         `json:"grade_level"`
		Semester    *int        `json:"semester"`
		Sheet       string      `json:"sheet"`
		Objectives  []Objective `json:"objectives"`
	}

	// Document is a stored curriculum spreadsheet.
	Document struct {
		Path string
		Name string
		Data []byte
	}
)
