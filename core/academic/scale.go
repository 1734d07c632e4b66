package academic

import (
	"math"
	"strings"
)

// Sentinel statuses of the legacy string encoding.
const (
	StatusMedical       = "MC"
	StatusRepeat        = "REPEAT"
	StatusRepeatPending = "REPEAT_PENDING"
)

// RepeatCap is the maximum grade point a repeated module can contribute.
const RepeatCap = 2.0

// MaxGradePoint is the best value on the scale.
const MaxGradePoint = 4.0

// Letter maps a grade letter to its grade point value.
type Letter struct {
	Grade string  `json:"grade"`
	Point float64 `json:"point"`
}

// Scale is the grade scale, best first. Order matters to ClosestGrade.
var Scale = []Letter{
	{"A+", 4.0}, {"A", 4.0}, {"A-", 3.7},
	{"B+", 3.3}, {"B", 3.0}, {"B-", 2.7},
	{"C+", 2.3}, {"C", 2.0}, {"C-", 1.7},
	{"D+", 1.3}, {"D", 1.0},
	{"E", 0.0},
}

// SchemaRow is one line of the marks-to-grade reference table.
type SchemaRow struct {
	Grade string `json:"grade"`
	GPA   string `json:"gpa"`
	Marks string `json:"marks"`
}

var GradingSchema = []SchemaRow{
	{"A+", "4.00", "85-100"},
	{"A", "4.00", "75-84"},
	{"A-", "3.70", "70-74"},
	{"B+", "3.30", "65-69"},
	{"B", "3.00", "60-64"},
	{"B-", "2.70", "55-59"},
	{"C+", "2.30", "50-54"},
	{"C", "2.00", "45-49"},
	{"C-", "1.70", "40-44"},
	{"D+", "1.30", "35-39"},
	{"D", "1.00", "30-34"},
	{"E", "0.00", "00-29"},
}

var scaleIndex = func() map[string]float64 {
	idx := make(map[string]float64, len(Scale))
	for _, l := range Scale {
		idx[l.Grade] = l.Point
	}
	return idx
}()

// Points returns the grade point of a letter and whether the letter is on the scale.
func Points(letter string) (float64, bool) {
	p, ok := scaleIndex[letter]
	return p, ok
}

// IsLetter reports whether s is a grade letter on the scale.
func IsLetter(s string) bool {
	_, ok := scaleIndex[s]
	return ok
}

// canonicalLetter trims and upper-cases s, returning it only if it is on the scale.
func canonicalLetter(s string) (string, bool) {
	l := strings.ToUpper(strings.TrimSpace(s))
	if IsLetter(l) {
		return l, true
	}
	return "", false
}

// Letters returns the scale letters, best first.
func Letters() []string {
	ls := make([]string, 0, len(Scale))
	for _, l := range Scale {
		ls = append(ls, l.Grade)
	}
	return ls
}

// ClosestGrade converts a required average back into the nearest letter.
func ClosestGrade(gpa float64) string {
	if gpa > MaxGradePoint {
		return "Requires > 4.0"
	}
	if gpa < 0 {
		return "Target Secured"
	}

	closest := "E"
	minDiff := math.Inf(1)
	for _, l := range Scale {
		if diff := math.Abs(gpa - l.Point); diff < minDiff {
			minDiff = diff
			closest = l.Grade
		}
	}
	return closest
}

// Degree classes
const (
	ClassFirst         = "First Class"
	ClassSecondUpper   = "Second Upper"
	ClassSecondLower   = "Second Lower"
	ClassGeneralPass   = "General Pass"
	ClassNotClassified = "Not Classified"
)

// Classify returns the degree class for a GPA.
func Classify(gpa float64) string {
	switch {
	case gpa >= 3.7:
		return ClassFirst
	case gpa >= 3.3:
		return ClassSecondUpper
	case gpa >= 3.0:
		return ClassSecondLower
	case gpa >= 2.0:
		return ClassGeneralPass
	default:
		return ClassNotClassified
	}
}
