package db

import (
	"errors"
	"testing"
)

func TestIsSerializationConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres serialization", errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"), true},
		{"postgres deadlock", errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), true},
		{"sqlite busy", errors.New("database is locked"), true},
		{"constraint violation", errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"), false},
		{"plain error", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSerializationConflict(tt.err); got != tt.want {
				t.Errorf("IsSerializationConflict(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
