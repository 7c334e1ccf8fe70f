package curriculum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

func TestSubjectFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "CAPAIAN PEMBELAJARAN Life Skills", want: "Life Skills"},
		{title: "CAPAIAN PEMBELAJARAN CITIZENSHIP", want: "CITIZENSHIP"},
		{title: "  capaian pembelajaran  Bahasa Indonesia ", want: "Bahasa Indonesia"},
		{title: "Matematika", want: "Matematika"},
		{title: "CAPAIAN PEMBELAJARAN", want: ""},
		{title: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := SubjectFromTitle(tt.title); got != tt.want {
				t.Errorf("SubjectFromTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentPath(t *testing.T) {
	at := time.Unix(1720000000, 123000000)
	assert.Equal(t, "curriculum/life_skills_1720000000123.xlsx", documentPath("curriculum", "Life  Skills", at))
	assert.Equal(t, "matematika_1720000000123.xlsx", documentPath("", "MATEMATIKA", at))
}

func TestLocateSheet(t *testing.T) {
	wb := workbook.NewWorkbook()
	wb.SetSheet("CP", nil)
	wb.SetSheet("atp matematika fase a", workbook.Grid{{workbook.Text("a")}})
	wb.SetSheet("ATP Matematika Fase B", nil)

	sheet, err := LocateSheet(wb, "Matematika", PhaseA)
	require.NoError(t, err)
	assert.Equal(t, "atp matematika fase a", sheet.Name)
	assert.Equal(t, workbook.Grid{{workbook.Text("a")}}, sheet.Grid)

	_, err = LocateSheet(wb, "Matematika", PhaseC)
	var snfErr *SheetNotFoundError
	require.ErrorAs(t, err, &snfErr)
	assert.Equal(t, "ATP Matematika Fase C", snfErr.Wanted)
	assert.Equal(t, []string{"CP", "atp matematika fase a", "ATP Matematika Fase B"}, snfErr.Available)
	assert.Contains(t, []string{"atp matematika fase a", "ATP Matematika Fase B"}, snfErr.Suggestion)

	_, err = LocateSheet(wb, "Pendidikan Pancasila dan Kewarganegaraan", PhaseA)
	require.ErrorAs(t, err, &snfErr)
	assert.Equal(t, "", snfErr.Suggestion)
}

func TestNewTemplate(t *testing.T) {
	wb := NewTemplate("Matematika", []Phase{PhaseC, PhaseA, PhaseC})
	assert.Equal(t, []string{"CP", "ATP Matematika Fase A", "ATP Matematika Fase C"}, wb.SheetNames())

	meta, _ := wb.Sheet("CP")
	assert.Equal(t, "Matematika", SubjectFromTitle(meta.Cell(TitleRow, 0).String()))
	phases, err := DetectPhases(meta.Row(PhaseHeaderRow))
	require.NoError(t, err)
	assert.Equal(t, map[Phase]int{PhaseA: 0, PhaseC: 1}, phases)

	sheet, err := LocateSheet(wb, "Matematika", PhaseA)
	require.NoError(t, err)
	headers, records := workbook.Project(sheet.Grid)
	assert.Equal(t, ObjectiveHeaders, headers)
	assert.Empty(t, records)
	_, err = detectObjectiveColumns(headers)
	assert.NoError(t, err)

	assert.Equal(t, len(AllPhases)+1, len(NewTemplate("PJOK", nil).SheetNames()))
}
