package storage

import (
	"database/sql"
	"errors"
)

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

// rollbackWithError is safe to defer past a successful commit: the ErrTxDone
// a rollback reports then is not surfaced.
func rollbackWithError(rb interface{ Rollback() error }, err *error) {
	if cErr := rb.Rollback(); cErr != nil && !errors.Is(cErr, sql.ErrTxDone) && *err == nil {
		*err = cErr
	}
}
