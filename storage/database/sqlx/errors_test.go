package sqlxrepos

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/Himethwe/Gradely-Webapp/core"
)

func TestIntegrity(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantShutdown bool
	}{
		{name: "nil", err: nil},
		{name: "no rows", err: sql.ErrNoRows},
		{name: "unique violation", err: &pq.Error{Code: "23505", Message: "duplicate key value"}},
		{name: "undefined table", err: &pq.Error{Code: "42P01", Message: `relation "student_grades" does not exist`}, wantShutdown: true},
		{name: "undefined column", err: &pq.Error{Code: "42703", Message: `column "is_gpa" does not exist`}, wantShutdown: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.Wrap(integrity(tt.err), "selecting grades")
			assert.Equal(t, tt.wantShutdown, core.IsShutdown(err))
			if !tt.wantShutdown {
				assert.Equal(t, tt.err, errors.Cause(err))
			}
		})
	}
}
