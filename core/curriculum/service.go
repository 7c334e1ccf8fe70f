package curriculum

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/raihan7913/devsecop-sub001/core"
	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

type (
	Repository interface {
		// FindSubjectIDByName matches subject names case-insensitively.
		FindSubjectIDByName(ctx context.Context, name string) (int64, error)
		GetSubject(ctx context.Context, id int64) (Subject, error)
		// UpsertPhaseDescriptor inserts the descriptor or overwrites description and path
		// of the existing (subject, phase) pair in a single statement.
		UpsertPhaseDescriptor(ctx context.Context, desc PhaseDescriptor) error
		GetPhaseDescriptor(ctx context.Context, subjectID int64, phase Phase) (PhaseDescriptor, error)
		QueryPhaseDescriptors(ctx context.Context, subjectID int64) ([]PhaseDescriptor, error)
		GetClass(ctx context.Context, id int64) (Class, error)
	}

	Service struct {
		repo  Repository
		files core.FileStore
		log   core.Logger
		dir   string
	}

	// openedSheet is an objective sheet loaded from its stored document.
	openedSheet struct {
		desc  PhaseDescriptor
		data  []byte
		sheet workbook.Sheet
	}
)

// NewService returns the curriculum service. Imported documents are stored under dir.
func NewService(repo Repository, files core.FileStore, logger core.Logger, dir string) *Service {
	return &Service{
		repo:  repo,
		files: files,
		log:   logger,
		dir:   dir,
	}
}

// Import reads the learning-outcome descriptions from the first sheet of an uploaded
// document, stores the document and upserts one descriptor per described phase.
// A failed upsert does not stop the remaining phases; it is reported in ImportResult.Errors.
func (svc *Service) Import(ctx context.Context, data []byte, fileName string) (ImportResult, error) {
	sheet, err := workbook.DecodeFirstSheet(data)
	if err != nil {
		return ImportResult{}, err
	}
	grid := sheet.Grid

	subjectName := SubjectFromTitle(grid.Cell(TitleRow, 0).String())
	if subjectName == "" {
		return ImportResult{}, ErrSubjectNotFound
	}
	subjectID, err := svc.repo.FindSubjectIDByName(ctx, subjectName)
	if err != nil {
		return ImportResult{}, err
	}

	if !grid.HasRow(PhaseHeaderRow) || !grid.HasRow(DescriptionRow) {
		return ImportResult{}, ErrMalformedMetadataRows
	}
	phases, err := DetectPhases(grid.Row(PhaseHeaderRow))
	if err != nil {
		return ImportResult{}, err
	}

	docPath := documentPath(svc.dir, subjectName, nowFunc())
	if err := workbook.Write(svc.files, docPath, data); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		SubjectID:    subjectID,
		SubjectName:  subjectName,
		DocumentPath: docPath,
		Phases:       phases,
		Skipped:      []Phase{},
		Errors:       []PhaseError{},
	}
	for _, phase := range AllPhases {
		col, ok := phases[phase]
		if !ok {
			continue
		}

		description := strings.TrimSpace(grid.Cell(DescriptionRow, col).String())
		if description == "" {
			result.Skipped = append(result.Skipped, phase)
			continue
		}

		desc := PhaseDescriptor{
			SubjectID:    subjectID,
			SubjectName:  subjectName,
			Phase:        phase,
			Description:  description,
			DocumentPath: docPath,
			UpdatedAt:    nowFunc().UTC(),
		}
		if err := svc.repo.UpsertPhaseDescriptor(ctx, desc); err != nil {
			svc.log.Error(
				"phase descriptor upsert failed",
				err,
				map[string]interface{}{"subject_id": subjectID, "phase": phase, "document": docPath},
			)
			result.Errors = append(result.Errors, PhaseError{Phase: phase, Error: err.Error(), Err: err})
			continue
		}
		result.Written++
	}

	svc.log.Info("curriculum document imported", map[string]interface{}{
		"file":     fileName,
		"subject":  subjectName,
		"document": docPath,
		"written":  result.Written,
		"skipped":  len(result.Skipped),
		"failed":   len(result.Errors),
	})
	return result, nil
}

// ListPhases returns the descriptors of a subject in phase order.
func (svc *Service) ListPhases(ctx context.Context, subjectID int64) ([]PhaseDescriptor, error) {
	if _, err := svc.repo.GetSubject(ctx, subjectID); err != nil {
		return nil, err
	}
	descs, err := svc.repo.QueryPhaseDescriptors(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(descs, func(i, j int) bool { return descs[i].Phase < descs[j].Phase })
	return descs, nil
}

func (svc *Service) readDocument(ctx context.Context, subjectID int64, phase Phase) (PhaseDescriptor, *workbook.Workbook, []byte, error) {
	desc, err := svc.repo.GetPhaseDescriptor(ctx, subjectID, phase)
	if err != nil {
		return PhaseDescriptor{}, nil, nil, err
	}
	exists, err := svc.files.Exists(desc.DocumentPath)
	if err != nil {
		return PhaseDescriptor{}, nil, nil, errors.Wrapf(err, "checking %s", desc.DocumentPath)
	}
	if !exists {
		return PhaseDescriptor{}, nil, nil, ErrDocumentNotFound
	}

	wb, data, err := workbook.Read(svc.files, desc.DocumentPath)
	if err != nil {
		return PhaseDescriptor{}, nil, nil, err
	}
	return desc, wb, data, nil
}

func (svc *Service) openSheet(ctx context.Context, subjectID int64, phase Phase) (openedSheet, error) {
	desc, wb, data, err := svc.readDocument(ctx, subjectID, phase)
	if err != nil {
		return openedSheet{}, err
	}
	sheet, err := LocateSheet(wb, desc.SubjectName, phase)
	if err != nil {
		return openedSheet{}, err
	}
	return openedSheet{desc: desc, data: data, sheet: sheet}, nil
}

// OpenDocument returns the stored document of a subject phase.
func (svc *Service) OpenDocument(ctx context.Context, subjectID int64, phase Phase) (Document, error) {
	desc, _, data, err := svc.readDocument(ctx, subjectID, phase)
	if err != nil {
		return Document{}, err
	}
	return Document{Path: desc.DocumentPath, Name: path.Base(desc.DocumentPath), Data: data}, nil
}

// GetObjectives returns the headers and every data record of a phase's objective sheet.
func (svc *Service) GetObjectives(ctx context.Context, subjectID int64, phase Phase) (ObjectiveSheet, error) {
	opened, err := svc.openSheet(ctx, subjectID, phase)
	if err != nil {
		return ObjectiveSheet{}, err
	}
	headers, records := workbook.Project(opened.sheet.Grid)
	return ObjectiveSheet{
		SubjectID: subjectID,
		Phase:     phase,
		Sheet:     opened.sheet.Name,
		Headers:   headers,
		Records:   records,
	}, nil
}

// UpdateObjectives replaces the data rows of a phase's objective sheet with records.
// Metadata rows and the header row are kept, the stored document is rewritten in place.
func (svc *Service) UpdateObjectives(ctx context.Context, subjectID int64, phase Phase, records []workbook.Record) (ObjectiveSheet, error) {
	opened, err := svc.openSheet(ctx, subjectID, phase)
	if err != nil {
		return ObjectiveSheet{}, err
	}

	headers, _ := workbook.Project(opened.sheet.Grid)
	if err := workbook.CheckColumns(headers, records); err != nil {
		return ObjectiveSheet{}, err
	}

	grid := workbook.Unproject(headers, records, opened.sheet.Grid)
	var rows workbook.Grid
	if len(grid) > workbook.FirstDataRow {
		rows = grid[workbook.FirstDataRow:]
	}
	data, err := workbook.ReplaceRows(opened.data, opened.sheet.Name, workbook.FirstDataRow, rows)
	if err != nil {
		return ObjectiveSheet{}, err
	}
	if err := workbook.Write(svc.files, opened.desc.DocumentPath, data); err != nil {
		return ObjectiveSheet{}, err
	}

	_, saved := workbook.Project(grid)
	svc.log.Info("objective sheet updated", map[string]interface{}{
		"document": opened.desc.DocumentPath,
		"sheet":    opened.sheet.Name,
		"records":  len(saved),
	})
	return ObjectiveSheet{
		SubjectID: subjectID,
		Phase:     phase,
		Sheet:     opened.sheet.Name,
		Headers:   headers,
		Records:   saved,
	}, nil
}

// FilterObjectives returns the objectives of a phase that apply to the grade level of a class
// and, when known, to its semester. semester overrides the semester of the class's term.
func (svc *Service) FilterObjectives(ctx context.Context, subjectID int64, phase Phase, classID int64, semester *int) (ObjectiveFilterResult, error) {
	class, err := svc.repo.GetClass(ctx, classID)
	if err != nil {
		return ObjectiveFilterResult{}, err
	}
	grade, err := GradeLevel(class.Name)
	if err != nil {
		return ObjectiveFilterResult{}, err
	}
	if semester == nil {
		semester = SemesterFromTerm(class.TermSemester)
	}

	opened, err := svc.openSheet(ctx, subjectID, phase)
	if err != nil {
		return ObjectiveFilterResult{}, err
	}
	headers, records := workbook.Project(opened.sheet.Grid)
	cols, err := detectObjectiveColumns(headers)
	if err != nil {
		return ObjectiveFilterResult{}, err
	}

	objectives := []Objective{}
	for _, rec := range records {
		if !cols.matches(rec, grade, semester) {
			continue
		}
		obj := Objective{
			No:        len(objectives) + 1,
			Objective: rec[cols.objective].String(),
			Grade:     rec[cols.grade],
		}
		if cols.semester != "" {
			obj.Semester = rec[cols.semester]
		}
		if cols.mastery != "" {
			obj.Mastery = rec[cols.mastery].String()
		}
		objectives = append(objectives, obj)
	}

	return ObjectiveFilterResult{
		SubjectID:   subjectID,
		SubjectName: opened.desc.SubjectName,
		Phase:       phase,
		ClassID:     class.ID,
		ClassName:   class.Name,
		GradeLevel:  grade,
		Semester:    semester,
		Sheet:       opened.sheet.Name,
		Objectives:  objectives,
	}, nil
}

// matches reports whether rec is a non-empty objective of grade and, when semester is set, of that semester.
// Rows with an empty semester cell apply to every semester.
func (oc objectiveColumns) matches(rec workbook.Record, grade int, semester *int) bool {
	if g, ok := leadingInt(rec[oc.grade].String()); !ok || g != grade {
		return false
	}
	if strings.TrimSpace(rec[oc.objective].String()) == "" {
		return false
	}
	if semester == nil || oc.semester == "" {
		return true
	}
	cell := strings.TrimSpace(rec[oc.semester].String())
	if cell == "" {
		return true
	}
	return semesterMatches(cell, *semester)
}
