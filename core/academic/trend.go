package academic

import (
	"fmt"
	"sort"
)

type TrendModule struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// TrendPoint is the GPA of one semester.
type TrendPoint struct {
	Key      string        `json:"name"`
	Year     int           `json:"year"`
	Semester int           `json:"semester"`
	GPA      float64       `json:"gpa"`
	Credits  float64       `json:"credits"`
	Modules  []TrendModule `json:"modules"`
}

func SemesterKey(year, semester int) string {
	return fmt.Sprintf("Y%d S%d", year, semester)
}

// trendLabel is the grade shown for a module in the semester drill-down.
func trendLabel(g EffectiveGrade, repeat bool) string {
	switch {
	case g.State == StatePendingRepeat:
		return StatusRepeat
	case repeat:
		return g.Letter + " (R)"
	default:
		return g.Letter
	}
}

// SemesterTrend returns one GPA point per semester with counted credits, in (year, semester) order.
func SemesterTrend(modules []Module, n Normalized, st StudentType) []TrendPoint {
	type semKey struct{ year, sem int }
	folds := make(map[semKey]*fold)
	mods := make(map[semKey][]TrendModule)

	for _, m := range countingModules(modules, st) {
		g := n.Grade(m.ID)
		if !g.Counts() {
			continue
		}
		k := semKey{m.Year, m.Semester}
		if folds[k] == nil {
			folds[k] = new(fold)
		}
		repeat := n.Repeat(m.ID)
		folds[k].add(g.Value(repeat), m.Credits)
		mods[k] = append(mods[k], TrendModule{Name: m.Name, Grade: trendLabel(g, repeat)})
	}

	keys := make([]semKey, 0, len(folds))
	for k := range folds {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].sem < keys[j].sem
	})

	trend := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		f := folds[k]
		trend = append(trend, TrendPoint{
			Key:      SemesterKey(k.year, k.sem),
			Year:     k.year,
			Semester: k.sem,
			GPA:      round2(f.gpa()),
			Credits:  f.credits,
			Modules:  mods[k],
		})
	}
	return trend
}
