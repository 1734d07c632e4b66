package academic

import (
	"fmt"
	"sort"
	"strings"
)

// Tip kinds, in display order.
const (
	TipRisk     = "risk"
	TipStrategy = "strategy"
	TipStrength = "strength"
)

var tipOrder = map[string]int{TipRisk: 1, TipStrategy: 2, TipStrength: 3}

// Category thresholds on the historical average.
const (
	StrengthThreshold = 3.3
	RiskThreshold     = 2.7
)

type Target struct {
	Year     int `json:"year" query:"year"`
	Semester int `json:"semester" query:"semester"`
}

type InsightCounts struct {
	Strong int `json:"strong"`
	Weak   int `json:"weak"`
	New    int `json:"new"`
	Total  int `json:"total"`
}

type Tip struct {
	Kind  string `json:"type"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Insight struct {
	SemesterLabel string        `json:"semester_name"`
	Year          int           `json:"year"`
	Semester      int           `json:"semester"`
	Counts        InsightCounts `json:"counts"`
	Tips          []Tip         `json:"tips"`
}

type categoryStats struct {
	total float64
	count int
}

func (cs *categoryStats) mean() (float64, bool) {
	if cs == nil || cs.count == 0 {
		return 0, false
	}
	return cs.total / float64(cs.count), true
}

// history is what the student has done so far, per category.
type history struct {
	stats      map[string]*categoryStats
	experience map[string]bool
}

func buildHistory(modules []Module, n Normalized) history {
	h := history{
		stats:      make(map[string]*categoryStats),
		experience: make(map[string]bool),
	}
	for _, m := range modules {
		if !n.Entered(m.ID) {
			continue
		}
		cat := m.CategoryOrDefault()
		h.experience[cat] = true

		g := n.Grade(m.ID)
		if !m.IsGPA.Counts() || !g.Counts() {
			continue
		}
		if h.stats[cat] == nil {
			h.stats[cat] = new(categoryStats)
		}
		h.stats[cat].total += g.Value(n.Repeat(m.ID))
		h.stats[cat].count++
	}
	return h
}

// firstUngradedSemester returns the first semester in which no module has a grade entry.
func firstUngradedSemester(modules []Module, n Normalized) (Target, []Module, bool) {
	for _, y := range GroupModules(modules) {
		for _, s := range y.Semesters {
			entered := false
			for _, m := range s.Modules {
				if n.Entered(m.ID) {
					entered = true
					break
				}
			}
			if !entered && len(s.Modules) > 0 {
				return Target{Year: y.Year, Semester: s.Semester}, s.Modules, true
			}
		}
	}
	return Target{}, nil, false
}

// FutureInsights analyzes a semester against the student's history per category.
// Without a target it picks the first semester with no grade entry at all.
// It returns nil when there is nothing to analyze.
func FutureInsights(modules []Module, n Normalized, st StudentType, target *Target) *Insight {
	modules = relevant(modules, st)
	h := buildHistory(modules, n)

	var tgt Target
	var toAnalyze []Module
	if target != nil {
		tgt = *target
		toAnalyze = ModulesForSemester(modules, tgt.Year, tgt.Semester)
	} else {
		var ok bool
		if tgt, toAnalyze, ok = firstUngradedSemester(modules, n); !ok {
			return nil
		}
	}
	if len(toAnalyze) == 0 {
		return nil
	}

	insight := &Insight{
		SemesterLabel: fmt.Sprintf("Year %d Semester %d", tgt.Year, tgt.Semester),
		Year:          tgt.Year,
		Semester:      tgt.Semester,
		Counts:        InsightCounts{Total: len(toAnalyze)},
		Tips:          make([]Tip, 0),
	}

	// categories in order of first appearance
	var cats []string
	names := make(map[string][]string)
	for _, m := range toAnalyze {
		cat := m.CategoryOrDefault()
		if _, ok := names[cat]; !ok {
			cats = append(cats, cat)
		}
		names[cat] = append(names[cat], m.Name)
	}

	freshman := tgt.Year == 1 && tgt.Semester == 1
	for _, cat := range cats {
		list := strings.Join(names[cat], ", ")
		count := len(names[cat])

		if !h.experience[cat] {
			insight.Counts.New += count
			if !freshman {
				insight.Tips = append(insight.Tips, Tip{
					Kind:  TipStrategy,
					Title: "New Field: " + cat,
					Text:  fmt.Sprintf("You have never taken %s before. This semester includes: %s. Check the syllabus early.", cat, list),
				})
			}
			continue
		}

		avg, ok := h.stats[cat].mean()
		if !ok {
			continue
		}
		switch {
		case avg >= StrengthThreshold:
			insight.Counts.Strong += count
			insight.Tips = append(insight.Tips, Tip{
				Kind:  TipStrength,
				Title: "Strength: " + cat,
				Text:  fmt.Sprintf("You have a %.2f average in %s. Maintain this standard for: %s.", avg, cat, list),
			})
		case avg < RiskThreshold:
			insight.Counts.Weak += count
			insight.Tips = append(insight.Tips, Tip{
				Kind:  TipRisk,
				Title: "Risk Area: " + cat,
				Text:  fmt.Sprintf("You average %.2f in %s. Be extra careful with: %s.", avg, cat, list),
			})
		}
	}

	sort.SliceStable(insight.Tips, func(i, j int) bool {
		return tipOrder[insight.Tips[i].Kind] < tipOrder[insight.Tips[j].Kind]
	})
	return insight
}
