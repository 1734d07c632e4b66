package inmemdb

import (
	"context"
	"sort"

	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
)

type gradeRepository struct {
	db *DB
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) QueryGrades(_ context.Context, studentID string) ([]academic.GradeRow, error) {
	repo.db.grade.RLock()
	defer repo.db.grade.RUnlock()

	rows := make([]academic.GradeRow, 0)
	for key, row := range repo.db.grade.table {
		if key.studentID == studentID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ModuleID < rows[j].ModuleID })
	return rows, nil
}

func (repo *gradeRepository) UpsertGrades(_ context.Context, rows []academic.GradeRow) error {
	repo.db.grade.Lock()
	defer repo.db.grade.Unlock()

	if repo.db.grade.failWith != nil {
		return repo.db.grade.failWith
	}
	for _, row := range rows {
		repo.db.grade.table[gradeKey{row.StudentID, row.ModuleID}] = row
	}
	return nil
}

func (repo *gradeRepository) InitGrades(_ context.Context, studentID string, moduleIDs []int) (int, error) {
	repo.db.grade.Lock()
	defer repo.db.grade.Unlock()

	if repo.db.grade.failWith != nil {
		return 0, repo.db.grade.failWith
	}
	var created int
	for _, id := range moduleIDs {
		key := gradeKey{studentID, id}
		if _, ok := repo.db.grade.table[key]; ok {
			continue
		}
		repo.db.grade.table[key] = academic.GradeRow{StudentID: studentID, ModuleID: id}
		created++
	}
	return created, nil
}
