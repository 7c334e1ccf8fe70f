package curriculum

import (
	"regexp"
	"strconv"
	"strings"
)

const oddTermLabel = "Ganjil"

var digitRun = regexp.MustCompile(`\d+`)

// GradeLevel reads the grade level from the leading digits of a class name, e.g. "3 Calakan" -> 3.
func GradeLevel(className string) (int, error) {
	name := strings.TrimSpace(className)
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, ErrInvalidClassNameFormat
	}
	level, err := strconv.Atoi(name[:end])
	if err != nil {
		return 0, ErrInvalidClassNameFormat
	}
	return level, nil
}

// SemesterFromTerm infers the semester number from an academic term label.
// "Ganjil" is the first semester and any other label the second.
// An empty label yields nil: semester filtering is off.
func SemesterFromTerm(label string) *int {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	semester := 2
	if strings.EqualFold(label, oddTermLabel) {
		semester = 1
	}
	return &semester
}

// leadingInt parses an optionally signed integer prefix, ignoring what follows it.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// semesterMatches reports whether a semester cell covers semester. Every digit run counts,
// so "1 dan 2", "1,2", "1-2" and "1/2" all cover both semesters.
func semesterMatches(cell string, semester int) bool {
	runs := digitRun.FindAllString(cell, -1)
	if len(runs) == 0 {
		n, err := strconv.Atoi(strings.TrimSpace(cell))
		return err == nil && n == semester
	}
	for _, r := range runs {
		if n, err := strconv.Atoi(r); err == nil && n == semester {
			return true
		}
	}
	return false
}
