package curriculum

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

type columnRole int

const (
	rolePhaseA columnRole = iota + 1
	rolePhaseB
	rolePhaseC
	roleObjective
	roleGrade
	roleSemester
	roleMastery
)

// columnRule assigns role to a header cell whose normalized text satisfies match.
type columnRule struct {
	role  columnRole
	match func(header string) bool
}

// columnMap maps a detected role to the index of the leftmost column holding it.
type columnMap map[columnRole]int

var (
	phaseRules = []columnRule{
		{role: rolePhaseA, match: anyOf(equals("A"), contains("FASE A"))},
		{role: rolePhaseB, match: anyOf(equals("B"), contains("FASE B"))},
		{role: rolePhaseC, match: anyOf(equals("C"), contains("FASE C"))},
	}

	objectiveRules = []columnRule{
		{role: roleObjective, match: contains("TUJUAN PEMBELAJARAN")},
		{role: roleGrade, match: equals("KELAS")},
		{role: roleSemester, match: equals("SEMESTER")},
		{role: roleMastery, match: contains("KKTP")},
	}

	phaseRoles = map[columnRole]Phase{
		rolePhaseA: PhaseA,
		rolePhaseB: PhaseB,
		rolePhaseC: PhaseC,
	}
)

func equals(s string) func(string) bool {
	return func(h string) bool { return h == s }
}

func contains(s string) func(string) bool {
	return func(h string) bool { return strings.Contains(h, s) }
}

func anyOf(matchers ...func(string) bool) func(string) bool {
	return func(h string) bool {
		for _, m := range matchers {
			if m(h) {
				return true
			}
		}
		return false
	}
}

// normalizeHeader folds compatibility characters, collapses whitespace and upper-cases.
func normalizeHeader(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Upper(language.Und).String(s)
}

// detectColumns gives each header the first rule it satisfies; a role keeps its leftmost column.
func detectColumns(headers []string, rules []columnRule) columnMap {
	cols := make(columnMap)
	for idx, raw := range headers {
		h := normalizeHeader(raw)
		if h == "" {
			continue
		}
		for _, rule := range rules {
			if !rule.match(h) {
				continue
			}
			if _, seen := cols[rule.role]; !seen {
				cols[rule.role] = idx
			}
			break
		}
	}
	return cols
}

// DetectPhases maps every phase label found in the header row to its column.
func DetectPhases(row workbook.Row) (map[Phase]int, error) {
	headers := make([]string, len(row))
	for i, c := range row {
		headers[i] = c.String()
	}

	phases := make(map[Phase]int)
	for role, idx := range detectColumns(headers, phaseRules) {
		phases[phaseRoles[role]] = idx
	}
	if len(phases) == 0 {
		return nil, ErrNoPhaseHeaderDetected
	}
	return phases, nil
}

// objectiveColumns holds the header names of the objective sheet columns; empty when absent.
type objectiveColumns struct {
	objective string
	grade     string
	semester  string
	mastery   string
}

func detectObjectiveColumns(headers []string) (objectiveColumns, error) {
	cols := detectColumns(headers, objectiveRules)
	name := func(role columnRole) string {
		if idx, ok := cols[role]; ok {
			return headers[idx]
		}
		return ""
	}

	oc := objectiveColumns{
		objective: name(roleObjective),
		grade:     name(roleGrade),
		semester:  name(roleSemester),
		mastery:   name(roleMastery),
	}
	if oc.objective == "" || oc.grade == "" {
		return oc, ErrInvalidSheetStructure
	}
	return oc, nil
}
