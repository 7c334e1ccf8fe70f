package curriculum

import (
	"strings"

	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

const metadataSheet = "CP"

// ObjectiveHeaders are the column headers of a blank objective sheet.
var ObjectiveHeaders = []string{"No", "Elemen", "Capaian Pembelajaran", "Tujuan Pembelajaran", "Kelas", "Semester", "KKTP"}

// NewTemplate builds a blank curriculum document for a subject: a metadata sheet with
// one phase column per phase and an empty objective sheet per phase.
// All phases are used when phases is empty.
func NewTemplate(subjectName string, phases []Phase) *workbook.Workbook {
	phases = uniquePhases(phases)

	headers := make(workbook.Row, 0, len(phases))
	for _, p := range phases {
		headers = append(headers, workbook.Text("Fase "+string(p)))
	}

	wb := workbook.NewWorkbook()
	wb.SetSheet(metadataSheet, workbook.Grid{
		{},
		{workbook.Text(titlePrefix + " " + strings.ToUpper(subjectName))},
		{workbook.Text("Mata Pelajaran"), workbook.Text(subjectName)},
		{},
		headers,
	})

	objHeaders := make(workbook.Row, len(ObjectiveHeaders))
	for i, h := range ObjectiveHeaders {
		objHeaders[i] = workbook.Text(h)
	}
	for _, p := range phases {
		wb.SetSheet(SheetName(subjectName, p), workbook.Grid{
			{},
			{workbook.Text("ALUR TUJUAN PEMBELAJARAN " + strings.ToUpper(subjectName) + " FASE " + string(p))},
			{},
			{},
			objHeaders.Clone(),
		})
	}
	return wb
}

func uniquePhases(phases []Phase) []Phase {
	if len(phases) == 0 {
		return AllPhases
	}
	seen := make(map[Phase]bool, len(phases))
	out := make([]Phase, 0, len(AllPhases))
	for _, known := range AllPhases {
		for _, p := range phases {
			if p == known && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
