package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "pgx unique", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "pgx other", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "pq unique", err: &pq.Error{Code: "23505"}, want: true},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: true},
		{name: "sqlite message", err: errors.New("UNIQUE constraint failed: professionals.phone"), want: true},
		{name: "generic message", err: errors.New(`duplicate key value violates unique constraint "idx_professionals_email"`), want: true},
		{name: "wrapped pgx unique", err: fmt.Errorf("inserting row: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "unrelated", err: errors.New("connection reset"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Fatalf("IsUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
