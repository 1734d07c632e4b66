package academic

import "sort"

type Semester struct {
	Semester int      `json:"semester"`
	Modules  []Module `json:"modules"`
}

type Year struct {
	Year      int        `json:"year"`
	Semesters []Semester `json:"semesters"`
}

// GroupModules groups modules by year then semester, both ascending.
// Modules keep their input order inside a semester; a missing year is grouped as year 1.
func GroupModules(modules []Module) []Year {
	groups := make(map[int]map[int][]Module)
	for _, m := range modules {
		year := m.Year
		if year == 0 {
			year = 1
		}
		if groups[year] == nil {
			groups[year] = make(map[int][]Module)
		}
		groups[year][m.Semester] = append(groups[year][m.Semester], m)
	}

	years := make([]Year, 0, len(groups))
	for _, y := range sortedKeys(groups) {
		sems := groups[y]
		semNums := make([]int, 0, len(sems))
		for s := range sems {
			semNums = append(semNums, s)
		}
		sort.Ints(semNums)

		year := Year{Year: y, Semesters: make([]Semester, 0, len(sems))}
		for _, s := range semNums {
			year.Semesters = append(year.Semesters, Semester{Semester: s, Modules: sems[s]})
		}
		years = append(years, year)
	}
	return years
}

func sortedKeys(m map[int]map[int][]Module) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
