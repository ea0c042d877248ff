package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"gorm.io/gorm"
)

const maxSerializableAttempts = 5

// RunSerializable executes fn inside a serializable transaction, retrying
// transparently on serialization conflicts. fn must be safe to re-run from
// scratch: all guards re-read state through tx, and no side effects happen
// outside the transaction body.
func RunSerializable(ctx context.Context, gdb *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxSerializableAttempts; attempt++ {
		err = gdb.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err == nil || !IsSerializationConflict(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}
	return err
}

// IsSerializationConflict matches Postgres serialization failures (SQLSTATE
// 40001) and deadlocks (40P01), plus sqlite's busy error in dev mode.
func IsSerializationConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "database is locked")
}
