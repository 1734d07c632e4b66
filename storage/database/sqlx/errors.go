package sqlxrepos

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core"
)

// postgres error codes of a schema that no longer matches the migrations
var schemaErrorCodes = map[pq.ErrorCode]bool{
	"42P01": true, // undefined_table
	"42703": true, // undefined_column
}

// integrity turns errors caused by a missing or altered schema into shutdown errors.
func integrity(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && schemaErrorCodes[pqErr.Code] {
		return core.NewShutdownError(fmt.Sprintf("database schema integrity: %s", pqErr.Message))
	}
	return err
}
