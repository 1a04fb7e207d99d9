package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
)

func TestIsTransientSQLError(t *testing.T) {
	t.Run("connection failure class", func(t *testing.T) {
		err := &pq.Error{Code: "08006"}
		if !isTransientSQLError(err) {
			t.Fatalf("expected true for connection failure")
		}
	})

	t.Run("serialization failure", func(t *testing.T) {
		err := &pq.Error{Code: "40001"}
		if !isTransientSQLError(err) {
			t.Fatalf("expected true for serialization failure")
		}
	})

	t.Run("deadlock detected", func(t *testing.T) {
		err := &pq.Error{Code: "40P01"}
		if !isTransientSQLError(err) {
			t.Fatalf("expected true for deadlock")
		}
	})

	t.Run("constraint violation is permanent", func(t *testing.T) {
		err := &pq.Error{Code: "23505"}
		if isTransientSQLError(err) {
			t.Fatalf("expected false for unique violation")
		}
	})

	t.Run("plain error is permanent", func(t *testing.T) {
		if isTransientSQLError(errors.New("boom")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("expected false for unrelated error")
	}
}
