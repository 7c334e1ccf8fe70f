package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/raihan7913/devsecop-sub001/core"
	"github.com/raihan7913/devsecop-sub001/core/curriculum"
)

type (
	CurriculumRepository struct {
		db core.DBExecutor
	}

	descriptorRow struct {
		SubjectID    int64       `db:"subject_id"`
		SubjectName  string      `db:"subject_name"`
		Phase        string      `db:"phase"`
		Description  string      `db:"description"`
		DocumentPath null.String `db:"document_path"`
		UpdatedAt    time.Time   `db:"updated_at"`
	}

	classRow struct {
		ID           int64       `db:"id"`
		Name         string      `db:"name"`
		TermSemester null.String `db:"term_semester"`
	}
)

var _ curriculum.Repository = (*CurriculumRepository)(nil)

const (
	selectDescriptors = `
		SELECT d.subject_id, s.name AS subject_name, d.phase, d.description, d.document_path, d.updated_at
		FROM phase_descriptions d
		JOIN subjects s ON s.id = d.subject_id`

	upsertDescriptor = `
		INSERT INTO phase_descriptions (subject_id, phase, description, document_path, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (subject_id, phase) DO UPDATE SET
			description = excluded.description,
			document_path = excluded.document_path,
			updated_at = excluded.updated_at`
)

// NewCurriculumRepository works on Postgres and sqlite; db may be a transaction.
func NewCurriculumRepository(db core.DBExecutor) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

func (d descriptorRow) toDescriptor() curriculum.PhaseDescriptor {
	return curriculum.PhaseDescriptor{
		SubjectID:    d.SubjectID,
		SubjectName:  d.SubjectName,
		Phase:        curriculum.Phase(d.Phase),
		Description:  d.Description,
		DocumentPath: d.DocumentPath.String,
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func (repo *CurriculumRepository) FindSubjectIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	q := repo.db.Rebind("SELECT id FROM subjects WHERE LOWER(name) = LOWER(?) ORDER BY id LIMIT 1")
	if err := repo.db.GetContext(ctx, &id, q, name); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return 0, curriculum.ErrSubjectNotFound
		}
		return 0, errors.Wrap(err, "finding subject")
	}
	return id, nil
}

func (repo *CurriculumRepository) GetSubject(ctx context.Context, id int64) (curriculum.Subject, error) {
	var subj curriculum.Subject
	q := repo.db.Rebind("SELECT id, name FROM subjects WHERE id = ?")
	if err := repo.db.GetContext(ctx, &subj, q, id); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return curriculum.Subject{}, curriculum.ErrSubjectNotFound
		}
		return curriculum.Subject{}, errors.Wrap(err, "getting subject")
	}
	return subj, nil
}

func (repo *CurriculumRepository) UpsertPhaseDescriptor(ctx context.Context, desc curriculum.PhaseDescriptor) error {
	_, err := repo.db.ExecContext(
		ctx,
		repo.db.Rebind(upsertDescriptor),
		desc.SubjectID,
		string(desc.Phase),
		desc.Description,
		null.NewString(desc.DocumentPath, desc.DocumentPath != ""),
		desc.UpdatedAt.UTC(),
	)
	return errors.Wrapf(err, "upserting phase %s of subject %d", desc.Phase, desc.SubjectID)
}

func (repo *CurriculumRepository) GetPhaseDescriptor(ctx context.Context, subjectID int64, phase curriculum.Phase) (curriculum.PhaseDescriptor, error) {
	var row descriptorRow
	q := repo.db.Rebind(selectDescriptors + " WHERE d.subject_id = ? AND d.phase = ?")
	if err := repo.db.GetContext(ctx, &row, q, subjectID, string(phase)); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return curriculum.PhaseDescriptor{}, curriculum.ErrDocumentNotFound
		}
		return curriculum.PhaseDescriptor{}, errors.Wrap(err, "getting phase descriptor")
	}
	if !row.DocumentPath.Valid {
		return curriculum.PhaseDescriptor{}, curriculum.ErrDocumentNotFound
	}
	return row.toDescriptor(), nil
}

func (repo *CurriculumRepository) QueryPhaseDescriptors(ctx context.Context, subjectID int64) ([]curriculum.PhaseDescriptor, error) {
	var rows []descriptorRow
	ord := core.DBOrdering{Field: "d.phase", Ascending: true}
	q := repo.db.Rebind(selectDescriptors + " WHERE d.subject_id = ? ORDER BY " + ord.String())
	if err := repo.db.SelectContext(ctx, &rows, q, subjectID); err != nil {
		return nil, errors.Wrap(err, "querying phase descriptors")
	}

	descs := make([]curriculum.PhaseDescriptor, 0, len(rows))
	for _, row := range rows {
		descs = append(descs, row.toDescriptor())
	}
	return descs, nil
}

func (repo *CurriculumRepository) GetClass(ctx context.Context, id int64) (curriculum.Class, error) {
	var row classRow
	q := repo.db.Rebind(`
		SELECT c.id, c.name, t.semester AS term_semester
		FROM classes c
		LEFT JOIN academic_terms t ON t.id = c.academic_term_id
		WHERE c.id = ?`)
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return curriculum.Class{}, curriculum.ErrClassNotFound
		}
		return curriculum.Class{}, errors.Wrap(err, "getting class")
	}
	return curriculum.Class{ID: row.ID, Name: row.Name, TermSemester: row.TermSemester.String}, nil
}

// CreateSubject inserts a subject and returns it with its new ID.
func (repo *CurriculumRepository) CreateSubject(ctx context.Context, name string) (curriculum.Subject, error) {
	subj := curriculum.Subject{Name: name}
	q := repo.db.Rebind("INSERT INTO subjects (name) VALUES (?) RETURNING id")
	if err := repo.db.GetContext(ctx, &subj.ID, q, name); err != nil {
		return curriculum.Subject{}, errors.Wrap(err, "creating subject")
	}
	return subj, nil
}

// CreateAcademicTerm inserts an academic term; semester is its label, eg. "Ganjil".
func (repo *CurriculumRepository) CreateAcademicTerm(ctx context.Context, year, semester string, active bool) (int64, error) {
	var id int64
	q := repo.db.Rebind("INSERT INTO academic_terms (year, semester, is_active) VALUES (?, ?, ?) RETURNING id")
	if err := repo.db.GetContext(ctx, &id, q, year, semester, active); err != nil {
		return 0, errors.Wrap(err, "creating academic term")
	}
	return id, nil
}

// CreateClass inserts a class, optionally attached to an academic term.
func (repo *CurriculumRepository) CreateClass(ctx context.Context, name string, termID null.Int64) (curriculum.Class, error) {
	var id int64
	q := repo.db.Rebind("INSERT INTO classes (name, academic_term_id) VALUES (?, ?) RETURNING id")
	if err := repo.db.GetContext(ctx, &id, q, name, termID); err != nil {
		return curriculum.Class{}, errors.Wrap(err, "creating class")
	}
	return repo.GetClass(ctx, id)
}
