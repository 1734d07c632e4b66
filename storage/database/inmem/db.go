package inmemdb

import (
	"sync"

	"github.com/Himethwe/Gradely-Webapp/core/academic"
)

type (
	DB struct {
		degree *degreeTable
		module *moduleTable
		grade  *gradeTable
	}

	degreeTable struct {
		sync.RWMutex
		table  map[int]*academic.Degree
		lastPK int
	}

	moduleTable struct {
		sync.RWMutex
		table  map[int]*academic.Module
		lastPK int
	}

	gradeKey struct {
		studentID string
		moduleID  int
	}

	gradeTable struct {
		sync.RWMutex
		table map[gradeKey]academic.GradeRow
		// failWith is returned by every write when set
		failWith error
	}
)

func Open() (*DB, error) {
	db := &DB{
		degree: &degreeTable{table: make(map[int]*academic.Degree)},
		module: &moduleTable{table: make(map[int]*academic.Module)},
		grade:  &gradeTable{table: make(map[gradeKey]academic.GradeRow)},
	}
	return db, nil
}

// FailWrites makes grade writes fail with err until called with nil.
func (db *DB) FailWrites(err error) {
	db.grade.Lock()
	defer db.grade.Unlock()
	db.grade.failWith = err
}
