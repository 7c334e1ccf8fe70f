package curriculum

import (
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/raihan7913/devsecop-sub001/core"
	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

// Rows of the metadata sheet
const (
	TitleRow       = 1
	PhaseHeaderRow = workbook.HeaderRow
	DescriptionRow = workbook.FirstDataRow
)

const (
	titlePrefix       = "CAPAIAN PEMBELAJARAN"
	documentExtension = ".xlsx"
)

var nowFunc = time.Now // mockable

// SubjectFromTitle strips the learning-outcome prefix from a document title.
func SubjectFromTitle(title string) string {
	t := strings.TrimSpace(title)
	if len(t) >= len(titlePrefix) && strings.EqualFold(t[:len(titlePrefix)], titlePrefix) {
		t = t[len(titlePrefix):]
	}
	return strings.TrimSpace(t)
}

// documentPath names a new upload: the slugged subject name and the import time in unix milliseconds.
func documentPath(dir, subjectName string, at time.Time) string {
	name := core.Slugify(subjectName) + "_" + strconv.FormatInt(at.UnixMilli(), 10) + documentExtension
	return path.Join(dir, name)
}

// SheetName is the name of the objective sheet of a subject phase.
func SheetName(subjectName string, phase Phase) string {
	return "ATP " + subjectName + " Fase " + string(phase)
}
