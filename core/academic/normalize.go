package academic

import (
	"math"
	"sort"
)

// GradeState is the resolved state of a module used by the calculators.
type GradeState int

const (
	// StateCleared has no grade; it counts as remaining credit.
	StateCleared GradeState = iota
	// StateExempt is a medical exemption without a resit; it is excluded everywhere.
	StateExempt
	// StatePendingRepeat is a repeat without a resit; it is worth 0.0.
	StatePendingRepeat
	// StateGraded has a letter on the scale.
	StateGraded
)

func (s GradeState) String() string {
	switch s {
	case StateExempt:
		return "exempt"
	case StatePendingRepeat:
		return "pending_repeat"
	case StateGraded:
		return "graded"
	default:
		return "cleared"
	}
}

// EffectiveGrade is the single resolved value of a module.
type EffectiveGrade struct {
	State  GradeState `json:"state"`
	Letter string     `json:"letter,omitempty"`
}

// Counts reports whether the grade enters the GPA fold.
func (g EffectiveGrade) Counts() bool {
	return g.State == StateGraded || g.State == StatePendingRepeat
}

// Value returns the grade point contributed by the grade, with the repeat cap applied.
func (g EffectiveGrade) Value(repeat bool) float64 {
	if g.State != StateGraded {
		return 0
	}
	p, _ := Points(g.Letter)
	if repeat {
		p = math.Min(p, RepeatCap)
	}
	return p
}

type (
	Grades  map[int]EffectiveGrade
	Repeats map[int]bool
)

// Normalized is the output of the status normalizer and the sole input of the calculators.
type Normalized struct {
	Grades  Grades
	Repeats Repeats
}

// Grade returns the effective grade of a module; modules not present are cleared.
func (n Normalized) Grade(id int) EffectiveGrade {
	return n.Grades[id]
}

func (n Normalized) Repeat(id int) bool {
	return n.Repeats[id]
}

// Entered reports whether the module has any grade entry, including medicals and repeats.
func (n Normalized) Entered(id int) bool {
	return n.Grades[id].State != StateCleared
}

// IDs returns the module ids present in the normalized state, ascending.
func (n Normalized) IDs() []int {
	ids := make([]int, 0, len(n.Grades))
	for id := range n.Grades {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Resolve computes the effective grade and repeat flag of a record.
func Resolve(rec GradeRecord) (EffectiveGrade, bool) {
	switch r := rec.(type) {
	case Normal:
		return EffectiveGrade{State: StateGraded, Letter: r.Letter}, false
	case Medical:
		if r.Resit != "" {
			return EffectiveGrade{State: StateGraded, Letter: r.Resit}, false
		}
		return EffectiveGrade{State: StateExempt}, false
	case Repeat:
		if r.Resit != "" {
			return EffectiveGrade{State: StateGraded, Letter: r.Resit}, true
		}
		return EffectiveGrade{State: StatePendingRepeat}, true
	default:
		return EffectiveGrade{State: StateCleared}, false
	}
}

// Normalize converts raw module states into effective grades and repeat flags.
// Every input key gets exactly one entry in each output map.
func Normalize(raw map[int]RawState) (Normalized, []Anomaly) {
	n := Normalized{
		Grades:  make(Grades, len(raw)),
		Repeats: make(Repeats, len(raw)),
	}
	var anomalies []Anomaly
	for id, rs := range raw {
		rec, a := Decode(id, rs)
		anomalies = append(anomalies, a...)
		n.Grades[id], n.Repeats[id] = Resolve(rec)
	}
	sort.Slice(anomalies, func(i, j int) bool { return anomalies[i].ModuleID < anomalies[j].ModuleID })
	return n, anomalies
}

// NormalizeRecords is Normalize for already decoded records.
func NormalizeRecords(records map[int]GradeRecord) Normalized {
	n := Normalized{
		Grades:  make(Grades, len(records)),
		Repeats: make(Repeats, len(records)),
	}
	for id, rec := range records {
		n.Grades[id], n.Repeats[id] = Resolve(rec)
	}
	return n
}
