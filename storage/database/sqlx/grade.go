package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
)

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *sql.DB) *gradeRepository {
	return &gradeRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo *gradeRepository) QueryGrades(ctx context.Context, studentID string) ([]academic.GradeRow, error) {
	const q = `
		SELECT student_id, module_id, grade, grade_point, is_repeat, is_completed
		FROM student_grades
		WHERE student_id = $1
		ORDER BY module_id`

	rows := make([]academic.GradeRow, 0)
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(integrity(err), "selecting grades")
	}
	return rows, nil
}

// UpsertGrades writes all rows in one transaction, so a failed save leaves the stored record as it was.
func (repo *gradeRepository) UpsertGrades(ctx context.Context, rows []academic.GradeRow) error {
	const q = `
		INSERT INTO student_grades (student_id, module_id, grade, grade_point, is_repeat, is_completed)
		VALUES (:student_id, :module_id, :grade, :grade_point, :is_repeat, :is_completed)
		ON CONFLICT (student_id, module_id) DO UPDATE
		SET grade = EXCLUDED.grade, grade_point = EXCLUDED.grade_point, is_repeat = EXCLUDED.is_repeat,
			is_completed = EXCLUDED.is_completed, updated_at = NOW()`

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, row := range rows {
		if _, err = tx.NamedExecContext(ctx, q, row); err != nil {
			return errors.Wrapf(integrity(err), "upserting grade of module %d", row.ModuleID)
		}
	}
	return errors.Wrap(tx.Commit(), "committing grades")
}

func (repo *gradeRepository) InitGrades(ctx context.Context, studentID string, moduleIDs []int) (int, error) {
	const q = `
		INSERT INTO student_grades (student_id, module_id)
		SELECT $1::uuid, unnest($2::int[])
		ON CONFLICT (student_id, module_id) DO NOTHING`

	ids := make(pq.Int64Array, 0, len(moduleIDs))
	for _, id := range moduleIDs {
		ids = append(ids, int64(id))
	}
	res, err := repo.db.ExecContext(ctx, q, studentID, ids)
	if err != nil {
		return 0, errors.Wrap(integrity(err), "initializing grades")
	}
	n, err := res.RowsAffected()
	return int(n), errors.Wrap(err, "counting initialized grades")
}
