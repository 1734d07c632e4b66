package academic

import (
	"math"
	"strconv"
)

// fold accumulates weighted grade points.
type fold struct {
	points  float64
	credits float64
}

func (f *fold) add(value, credits float64) {
	f.points += value * credits
	f.credits += credits
}

func (f fold) gpa() float64 {
	if f.credits == 0 {
		return 0
	}
	return f.points / f.credits
}

// FormatGPA formats a GPA with exactly two decimals.
func FormatGPA(gpa float64) string {
	return strconv.FormatFloat(gpa, 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// countingModules yields the modules that enter any GPA fold for the student type.
func countingModules(modules []Module, st StudentType) []Module {
	r := make([]Module, 0, len(modules))
	for _, m := range modules {
		if m.IsGPA.Counts() && st.Includes(m.Category) {
			r = append(r, m)
		}
	}
	return r
}

func currentFold(modules []Module, n Normalized, st StudentType) fold {
	var f fold
	for _, m := range countingModules(modules, st) {
		g := n.Grade(m.ID)
		if !g.Counts() {
			continue
		}
		f.add(g.Value(n.Repeat(m.ID)), m.Credits)
	}
	return f
}

// GPA returns the credit weighted GPA, 0 when no credits count.
func GPA(modules []Module, n Normalized, st StudentType) float64 {
	return currentFold(modules, n, st).gpa()
}

// CalculateGPA returns the GPA formatted with two decimals ("0.00" when no credits count).
// Cleared and medically exempted modules are left out of the denominator,
// unresolved repeats count as 0.0 and resolved repeats are capped.
func CalculateGPA(modules []Module, n Normalized, st StudentType) string {
	return FormatGPA(GPA(modules, n, st))
}

// MaxPossibleGPA assumes the best reachable outcome for every unfinished module.
func MaxPossibleGPA(modules []Module, n Normalized, st StudentType) float64 {
	var f fold
	for _, m := range countingModules(modules, st) {
		g := n.Grade(m.ID)
		switch g.State {
		case StateGraded:
			f.add(g.Value(n.Repeat(m.ID)), m.Credits)
		case StatePendingRepeat:
			f.add(RepeatCap, m.Credits)
		default:
			f.add(MaxGradePoint, m.Credits)
		}
	}
	return f.gpa()
}

// CalculateMaxPossibleGPA returns MaxPossibleGPA formatted with two decimals.
func CalculateMaxPossibleGPA(modules []Module, n Normalized, st StudentType) string {
	return FormatGPA(MaxPossibleGPA(modules, n, st))
}
