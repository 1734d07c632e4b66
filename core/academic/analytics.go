package academic

import (
	"math"
	"sort"
)

type ProgressStats struct {
	Earned  float64 `json:"earned"`
	Total   float64 `json:"total"`
	Percent int     `json:"percent"`
}

// Progress counts the credits of modules with a letter grade against all credits,
// including modules that do not count toward the GPA.
func Progress(modules []Module, n Normalized, st StudentType) ProgressStats {
	var p ProgressStats
	for _, m := range relevant(modules, st) {
		p.Total += m.Credits
		if n.Grade(m.ID).State == StateGraded {
			p.Earned += m.Credits
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(p.Earned / p.Total * 100))
	}
	return p
}

type CategoryScore struct {
	Category string  `json:"subject"`
	Average  float64 `json:"average"`
	FullMark float64 `json:"full_mark"`
}

type CategoryProfileStats struct {
	Scores    []CategoryScore `json:"scores"`
	Weakest   []CategoryScore `json:"weakest"`
	Strongest []CategoryScore `json:"strongest"`
}

// CategoryProfile averages counted grade points per category, module by module.
func CategoryProfile(modules []Module, n Normalized, st StudentType) CategoryProfileStats {
	stats := make(map[string]*categoryStats)
	var cats []string
	for _, m := range countingModules(modules, st) {
		g := n.Grade(m.ID)
		if !g.Counts() {
			continue
		}
		cat := m.CategoryOrDefault()
		if stats[cat] == nil {
			stats[cat] = new(categoryStats)
			cats = append(cats, cat)
		}
		stats[cat].total += g.Value(n.Repeat(m.ID))
		stats[cat].count++
	}

	profile := CategoryProfileStats{
		Scores:    make([]CategoryScore, 0, len(cats)),
		Weakest:   make([]CategoryScore, 0),
		Strongest: make([]CategoryScore, 0),
	}
	for _, cat := range cats {
		avg, _ := stats[cat].mean()
		profile.Scores = append(profile.Scores, CategoryScore{Category: cat, Average: round2(avg), FullMark: MaxGradePoint})
	}
	if len(profile.Scores) == 0 {
		return profile
	}

	sorted := append([]CategoryScore(nil), profile.Scores...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Average < sorted[j].Average })
	low, high := sorted[0].Average, sorted[len(sorted)-1].Average
	for _, s := range sorted {
		if s.Average == low {
			profile.Weakest = append(profile.Weakest, s)
		}
		if s.Average == high {
			profile.Strongest = append(profile.Strongest, s)
		}
	}
	return profile
}

type Supplementary struct {
	Repeats  []Module `json:"repeats"`
	Medicals []Module `json:"medicals"`
}

// PendingSupplementary lists the repeat and medical modules still waiting for a resit grade.
func PendingSupplementary(modules []Module, n Normalized, st StudentType) Supplementary {
	s := Supplementary{Repeats: make([]Module, 0), Medicals: make([]Module, 0)}
	for _, m := range relevant(modules, st) {
		switch n.Grade(m.ID).State {
		case StatePendingRepeat:
			s.Repeats = append(s.Repeats, m)
		case StateExempt:
			s.Medicals = append(s.Medicals, m)
		}
	}
	return s
}
