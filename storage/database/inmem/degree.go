package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/degree"
)

type degreeRepository struct {
	db *DB
}

var _ degree.Repository = (*degreeRepository)(nil)

func NewDegreeRepository(db *DB) *degreeRepository {
	return &degreeRepository{db: db}
}

func (repo *degreeRepository) QueryDegrees(_ context.Context, ordering ...core.DBOrdering) ([]academic.Degree, error) {
	repo.db.degree.RLock()
	defer repo.db.degree.RUnlock()

	degrees := make([]academic.Degree, 0, len(repo.db.degree.table))
	for _, d := range repo.db.degree.table {
		degrees = append(degrees, *d)
	}

	byName := len(ordering) > 0 && ordering[0].Field == "name"
	asc := len(ordering) == 0 || ordering[0].Ascending
	sort.Slice(degrees, func(i, j int) bool {
		less := degrees[i].ID < degrees[j].ID
		if byName {
			less = strings.ToLower(degrees[i].Name) < strings.ToLower(degrees[j].Name)
		}
		if !asc {
			return !less
		}
		return less
	})
	return degrees, nil
}

func (repo *degreeRepository) GetDegree(_ context.Context, id int) (academic.Degree, error) {
	repo.db.degree.RLock()
	defer repo.db.degree.RUnlock()

	if d, ok := repo.db.degree.table[id]; ok {
		return *d, nil
	}
	return academic.Degree{}, degree.ErrNotFound
}

func (repo *degreeRepository) QueryModules(_ context.Context, degreeID int) ([]academic.Module, error) {
	repo.db.module.RLock()
	defer repo.db.module.RUnlock()

	modules := make([]academic.Module, 0)
	for _, m := range repo.db.module.table {
		if m.DegreeID == degreeID {
			modules = append(modules, *m)
		}
	}
	sort.Slice(modules, func(i, j int) bool {
		a, b := modules[i], modules[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Semester != b.Semester {
			return a.Semester < b.Semester
		}
		return a.ID < b.ID
	})
	return modules, nil
}

func (repo *degreeRepository) CreateDegree(_ context.Context, d academic.Degree) (academic.Degree, error) {
	repo.db.degree.Lock()
	defer repo.db.degree.Unlock()

	for id, existing := range repo.db.degree.table {
		if existing.Name == d.Name {
			d.ID = id
			repo.db.degree.table[id] = &d
			return d, nil
		}
	}
	repo.db.degree.lastPK++
	d.ID = repo.db.degree.lastPK
	repo.db.degree.table[d.ID] = &d
	return d, nil
}

func (repo *degreeRepository) CreateModules(_ context.Context, modules []academic.Module) ([]academic.Module, error) {
	repo.db.module.Lock()
	defer repo.db.module.Unlock()

	created := make([]academic.Module, 0, len(modules))
	for _, m := range modules {
		m := m
		m.ID = 0
		for id, existing := range repo.db.module.table {
			if existing.DegreeID == m.DegreeID && existing.Code == m.Code {
				m.ID = id
				break
			}
		}
		if m.ID == 0 {
			repo.db.module.lastPK++
			m.ID = repo.db.module.lastPK
		}
		repo.db.module.table[m.ID] = &m
		created = append(created, m)
	}
	return created, nil
}
