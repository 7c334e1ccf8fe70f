package curriculum

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

const minSuggestionRatio = 0.6

// LocateSheet finds the objective sheet of a subject phase, ignoring case.
func LocateSheet(wb *workbook.Workbook, subjectName string, phase Phase) (workbook.Sheet, error) {
	wanted := SheetName(subjectName, phase)
	if sheet, ok := wb.SheetFold(wanted); ok {
		return sheet, nil
	}

	available := wb.SheetNames()
	return workbook.Sheet{}, &SheetNotFoundError{
		Wanted:     wanted,
		Available:  available,
		Suggestion: closestName(wanted, available),
	}
}

// closestName returns the candidate most similar to name, or "" when none is similar enough.
func closestName(name string, candidates []string) string {
	var (
		best      string
		bestRatio float64
	)
	target := strings.Split(strings.ToLower(name), "")
	for _, c := range candidates {
		m := difflib.NewMatcher(target, strings.Split(strings.ToLower(c), ""))
		if r := m.Ratio(); r >= minSuggestionRatio && r > bestRatio {
			best, bestRatio = c, r
		}
	}
	return best
}
