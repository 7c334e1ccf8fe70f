package curriculum

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

var (
	// errors
	ErrSubjectNotFound        = errors.New("subject not found")
	ErrClassNotFound          = errors.New("class not found")
	ErrDocumentNotFound       = errors.New("curriculum document not found")
	ErrMalformedMetadataRows  = errors.New("document is missing the phase header row or the description row")
	ErrNoPhaseHeaderDetected  = errors.New("no phase header detected")
	ErrInvalidSheetStructure  = errors.New("objective sheet has no objective or class column")
	ErrInvalidClassNameFormat = errors.New("class name does not start with a grade level")
	ErrInvalidDocument        = workbook.ErrInvalidDocument
)

// SheetNotFoundError is returned when a document has no sheet named after the subject and phase.
type SheetNotFoundError struct {
	Wanted     string
	Available  []string
	Suggestion string
}

func (e *SheetNotFoundError) Error() string {
	msg := fmt.Sprintf("sheet %q not found (available: %s)", e.Wanted, strings.Join(e.Available, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; did you mean %q?", e.Suggestion)
	}
	return msg
}
