package academic

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// GradeRecord is the state of one module for one student.
// It is one of Cleared, Normal, Medical or Repeat.
type GradeRecord interface {
	isGradeRecord()
}

// Cleared means no grade was entered.
type Cleared struct{}

// Normal is a plain letter grade.
type Normal struct {
	Letter string
}

// Medical is an exempted attempt, optionally resolved by a resit.
type Medical struct {
	Resit string
}

// Repeat is a repeated module, optionally resolved by a resit.
type Repeat struct {
	Resit string
}

func (Cleared) isGradeRecord() {}
func (Normal) isGradeRecord()  {}
func (Medical) isGradeRecord() {}
func (Repeat) isGradeRecord()  {}

// RawState is the legacy string encoding of a GradeRecord:
// a main status (letter, "MC", "REPEAT" or empty) plus an optional supplementary (resit) letter.
type RawState struct {
	Status        string `json:"status"`
	Supplementary string `json:"supplementary,omitempty"`
}

// Anomaly describes a grade value that could not be recognized.
type Anomaly struct {
	ModuleID   int    `json:"module_id"`
	Field      string `json:"field"`
	Value      string `json:"value"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (a Anomaly) String() string {
	s := fmt.Sprintf("module %d: unrecognized %s %q", a.ModuleID, a.Field, a.Value)
	if a.Suggestion != "" {
		s += fmt.Sprintf(" (closest: %q)", a.Suggestion)
	}
	return s
}

// Decode converts a RawState into a GradeRecord.
// Unrecognized values never fail: they are dropped and reported as anomalies.
func Decode(id int, raw RawState) (GradeRecord, []Anomaly) {
	var anomalies []Anomaly
	status := strings.TrimSpace(raw.Status)
	supp := strings.TrimSpace(raw.Supplementary)

	resit := func() string {
		switch strings.ToUpper(supp) {
		case "", StatusRepeatPending, StatusRepeat:
			return ""
		}
		letter, ok := canonicalLetter(supp)
		if !ok {
			anomalies = append(anomalies, newAnomaly(id, "supplementary", supp))
		}
		return letter
	}

	switch strings.ToUpper(status) {
	case "":
		return Cleared{}, nil
	case StatusRepeat:
		r := Repeat{Resit: resit()}
		return r, anomalies
	case StatusMedical:
		m := Medical{Resit: resit()}
		return m, anomalies
	}
	if letter, ok := canonicalLetter(status); ok {
		return Normal{Letter: letter}, nil
	}
	return Cleared{}, []Anomaly{newAnomaly(id, "status", status)}
}

// Encode converts a GradeRecord back into its RawState.
func Encode(rec GradeRecord) RawState {
	switch r := rec.(type) {
	case Normal:
		return RawState{Status: r.Letter}
	case Medical:
		return RawState{Status: StatusMedical, Supplementary: r.Resit}
	case Repeat:
		return RawState{Status: StatusRepeat, Supplementary: r.Resit}
	default:
		return RawState{}
	}
}

func newAnomaly(id int, field, value string) Anomaly {
	return Anomaly{ModuleID: id, Field: field, Value: value, Suggestion: suggestLetter(value)}
}

// suggestLetter finds the scale letter most similar to an unrecognized value.
func suggestLetter(value string) string {
	value = strings.ToUpper(value)
	var best string
	var bestRatio float64
	for _, l := range Letters() {
		m := difflib.NewMatcher(strings.Split(value, ""), strings.Split(l, ""))
		if r := m.Ratio(); r > bestRatio {
			best, bestRatio = l, r
		}
	}
	if bestRatio < 0.5 {
		return ""
	}
	return best
}
