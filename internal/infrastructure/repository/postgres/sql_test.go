package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get room: %w", sql.ErrNoRows)) {
		t.Fatal("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fmt.Errorf("connection refused")) {
		t.Fatal("expected false for unrelated error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	if !isUniqueViolation(uniqueErr) {
		t.Fatal("expected true for 23505")
	}
	if !isUniqueViolation(fmt.Errorf("join membership insert: %w", uniqueErr)) {
		t.Fatal("expected true for wrapped 23505")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("expected false for foreign key violation")
	}
	if isUniqueViolation(fmt.Errorf("connection refused")) {
		t.Fatal("expected false for non-pq error")
	}
}

func TestNullStringRoundTrip(t *testing.T) {
	if got := toNullString(""); got.Valid {
		t.Fatalf("expected invalid null string for empty value, got %+v", got)
	}
	got := toNullString("gw-idn-2025-01")
	if !got.Valid || got.String != "gw-idn-2025-01" {
		t.Fatalf("unexpected null string: %+v", got)
	}

	if nullStringToString(sql.NullString{}) != "" {
		t.Fatal("expected empty string for null")
	}
	if nullStringToString(sql.NullString{String: "room-1", Valid: true}) != "room-1" {
		t.Fatal("expected stored string for valid value")
	}
}
