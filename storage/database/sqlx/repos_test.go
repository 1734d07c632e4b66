package sqlxrepos_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/storage/database"
	"github.com/Himethwe/Gradely-Webapp/storage/database/sqlx"
	"github.com/Himethwe/Gradely-Webapp/tests"
)

const studentID = "5b0b3a6e-4a52-4f6b-8c71-3f9d2f3c6a10"

// openDB connects to the database named by TEST_DBNAME, migrated from scratch.
// The tests are skipped when it is not set.
func openDB(t *testing.T) *sql.DB {
	t.Helper()
	name := os.Getenv("TEST_DBNAME")
	if name == "" {
		t.Skip("TEST_DBNAME not set")
	}

	conf := testutil.NewConfig()
	conf.Database = core.DatabaseConfig{
		Engine:     "postgres",
		Host:       getenv("TEST_DBHOST", "localhost"),
		Port:       getenv("TEST_DBPORT", "5432"),
		Name:       name,
		User:       getenv("TEST_DBUSER", "postgres"),
		Password:   getenv("TEST_DBPASSWORD", "postgres"),
		DisableTLS: true,
	}
	db, err := database.Open(conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("DROP TABLE IF EXISTS student_grades, modules, degrees, goose_db_version")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, conf))
	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestRepositories(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	degreeRepo := sqlxrepos.NewDegreeRepository(db)
	gradeRepo := sqlxrepos.NewGradeRepository(db)

	d, modules := testutil.SeedCurriculum(t, degreeRepo)

	t.Run("degrees", func(t *testing.T) {
		degrees, err := degreeRepo.QueryDegrees(ctx, core.DBOrdering{Field: "name", Ascending: false})
		require.NoError(t, err)
		assert.Equal(t, []academic.Degree{d}, degrees)

		got, err := degreeRepo.QueryModules(ctx, d.ID)
		require.NoError(t, err)
		require.Len(t, got, len(modules))
		assert.Equal(t, modules["MA1013"], got[0])
		assert.False(t, modules["EN1002"].IsGPA.Counts())
	})

	t.Run("upsert degree", func(t *testing.T) {
		again, err := degreeRepo.CreateDegree(ctx, academic.Degree{Name: d.Name, DurationYears: 4, TotalCredits: 120})
		require.NoError(t, err)
		assert.Equal(t, d.ID, again.ID)
	})

	t.Run("grades", func(t *testing.T) {
		created, err := gradeRepo.InitGrades(ctx, studentID, []int{modules["MA1013"].ID, modules["CS1012"].ID})
		require.NoError(t, err)
		assert.Equal(t, 2, created)

		row := academic.GradeRow{
			StudentID: studentID, ModuleID: modules["CS1012"].ID,
			Grade: null.StringFrom("B"), GradePoint: academic.RepeatCap, IsRepeat: true, IsCompleted: true,
		}
		require.NoError(t, gradeRepo.UpsertGrades(ctx, []academic.GradeRow{row}))

		created, err = gradeRepo.InitGrades(ctx, studentID, []int{modules["CS1012"].ID, modules["PH2012"].ID})
		require.NoError(t, err)
		assert.Equal(t, 1, created)

		rows, err := gradeRepo.QueryGrades(ctx, studentID)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		for _, r := range rows {
			if r.ModuleID == row.ModuleID {
				assert.Equal(t, row, r)
			} else {
				assert.False(t, r.Grade.Valid)
			}
		}
	})
}
