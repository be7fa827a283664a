package sqlitestore

import (
	"fmt"

	"github.com/phrazzld/todo-api/internal/store"
	"zombiezen.com/go/sqlite"
)

// MapError classifies a SQLite error as a store error, keeping the original wrapped.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch code := sqlite.ErrCode(err); code.ToPrimary() {
	case sqlite.ResultConstraint:
		return fmt.Errorf("%w: constraint violation (%v): %w", store.ErrInvalidEntity, code, err)
	case sqlite.ResultBusy, sqlite.ResultLocked, sqlite.ResultInterrupt:
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return err
}
