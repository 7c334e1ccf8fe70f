package echoapi

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/raihan7913/devsecop-sub001/core"
	"github.com/raihan7913/devsecop-sub001/core/curriculum"
	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

var (
	subjectIDParam = "subjectID"
	phaseParam     = "phase"
	classIDParam   = "class_id"
	semesterParam  = "semester"

	errInvalidInteger = "must be an integer"
)

// PhaseParams identifies a subject phase from the request path.
type PhaseParams struct {
	SubjectID int64  `json:"subject_id" validate:"required"`
	Phase     string `json:"phase" validate:"notblank,phase"`
}

func (p *PhaseParams) Bind(ctx echo.Context) error {
	id, err := parseInt(ctx.Param(subjectIDParam), "subject_id")
	if err != nil {
		return err
	}
	p.SubjectID = id
	p.Phase = ctx.Param(phaseParam)
	return nil
}

func (p PhaseParams) Validate(validate *validator.Validate) error {
	return validate.Struct(p)
}

func (p PhaseParams) phase() curriculum.Phase {
	phase, _ := curriculum.ParsePhase(p.Phase)
	return phase
}

// FilterQuery carries the class and optional semester override of an objectives filter.
type FilterQuery struct {
	ClassID  int64 `query:"class_id" validate:"required"`
	Semester *int  `query:"semester" validate:"omitempty,min=1"`
}

func (q *FilterQuery) Bind(ctx echo.Context) error {
	id, err := parseInt(ctx.QueryParam(classIDParam), classIDParam)
	if err != nil {
		return err
	}
	q.ClassID = id

	if raw := strings.TrimSpace(ctx.QueryParam(semesterParam)); raw != "" {
		sem, err := strconv.Atoi(raw)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: semesterParam, Error: errInvalidInteger})
		}
		q.Semester = &sem
	}
	return nil
}

func (q FilterQuery) Validate(validate *validator.Validate) error {
	return validate.Struct(q)
}

type UpdateObjectivesRequest struct {
	Records []workbook.Record `json:"records" validate:"required"`
}

func (r UpdateObjectivesRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

// parseInt parses an optional integer parameter, zero when blank.
func parseInt(raw, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: field, Error: errInvalidInteger})
	}
	return n, nil
}
