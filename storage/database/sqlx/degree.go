package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/degree"
)

var degreeOrderings = map[string]string{
	"id":             "id",
	"name":           "name",
	"duration_years": "duration_years",
	"total_credits":  "total_credits",
}

type degreeRepository struct {
	db *sqlx.DB
}

var _ degree.Repository = (*degreeRepository)(nil)

func NewDegreeRepository(db *sql.DB) *degreeRepository {
	return &degreeRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo *degreeRepository) QueryDegrees(ctx context.Context, ordering ...core.DBOrdering) ([]academic.Degree, error) {
	q := "SELECT id, name, duration_years, total_credits FROM degrees" +
		core.OrderBy(ordering, degreeOrderings, core.DBOrdering{Field: "id", Ascending: true})

	degrees := make([]academic.Degree, 0)
	if err := repo.db.SelectContext(ctx, &degrees, q); err != nil {
		return nil, errors.Wrap(integrity(err), "selecting degrees")
	}
	return degrees, nil
}

func (repo *degreeRepository) GetDegree(ctx context.Context, id int) (academic.Degree, error) {
	var d academic.Degree
	err := repo.db.GetContext(ctx, &d, "SELECT id, name, duration_years, total_credits FROM degrees WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return academic.Degree{}, degree.ErrNotFound
	}
	return d, errors.Wrap(integrity(err), "selecting degree")
}

func (repo *degreeRepository) QueryModules(ctx context.Context, degreeID int) ([]academic.Module, error) {
	const q = `
		SELECT id, degree_id, code, name, credits, year, semester, category, is_gpa
		FROM modules
		WHERE degree_id = $1
		ORDER BY year, semester, id`

	modules := make([]academic.Module, 0)
	if err := repo.db.SelectContext(ctx, &modules, q, degreeID); err != nil {
		return nil, errors.Wrap(integrity(err), "selecting modules")
	}
	return modules, nil
}

func (repo *degreeRepository) CreateDegree(ctx context.Context, d academic.Degree) (academic.Degree, error) {
	const q = `
		INSERT INTO degrees (name, duration_years, total_credits)
		VALUES (:name, :duration_years, :total_credits)
		ON CONFLICT (name) DO UPDATE
		SET duration_years = EXCLUDED.duration_years, total_credits = EXCLUDED.total_credits
		RETURNING id`

	rows, err := repo.db.NamedQueryContext(ctx, q, d)
	if err != nil {
		return academic.Degree{}, errors.Wrap(integrity(err), "inserting degree")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&d.ID); err != nil {
			return academic.Degree{}, errors.Wrap(err, "scanning degree id")
		}
	}
	return d, errors.Wrap(rows.Err(), "inserting degree")
}

// CreateModules upserts the modules in one transaction.
func (repo *degreeRepository) CreateModules(ctx context.Context, modules []academic.Module) ([]academic.Module, error) {
	const q = `
		INSERT INTO modules (degree_id, code, name, credits, year, semester, category, is_gpa)
		VALUES (:degree_id, :code, :name, :credits, :year, :semester, :category, :is_gpa)
		ON CONFLICT (degree_id, code) DO UPDATE
		SET name = EXCLUDED.name, credits = EXCLUDED.credits, year = EXCLUDED.year,
			semester = EXCLUDED.semester, category = EXCLUDED.category, is_gpa = EXCLUDED.is_gpa
		RETURNING id`

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareNamedContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(integrity(err), "preparing module insert")
	}
	defer func() { _ = stmt.Close() }()

	created := make([]academic.Module, 0, len(modules))
	for _, m := range modules {
		if err = stmt.QueryRowxContext(ctx, m).Scan(&m.ID); err != nil {
			return nil, errors.Wrapf(integrity(err), "inserting module %s", m.Code)
		}
		created = append(created, m)
	}
	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing modules")
	}
	return created, nil
}
