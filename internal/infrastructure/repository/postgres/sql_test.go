package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := &pq.Error{Code: "23505"}
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation error")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(sql.ErrNoRows) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestUnixConversions(t *testing.T) {
	at := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)

	if got := timeToUnix(at); got != at.Unix() {
		t.Fatalf("unexpected unix value: %d", got)
	}
	if got := timeToUnix(time.Time{}); got != 0 {
		t.Fatalf("expected 0 for zero time, got %d", got)
	}
	if got := unixToTime(at.Unix()); !got.Equal(at) {
		t.Fatalf("unexpected round trip time: %s", got)
	}
	if got := unixToTime(0); !got.IsZero() {
		t.Fatalf("expected zero time for 0, got %s", got)
	}
}

func TestNullableHelpers(t *testing.T) {
	if v := nullableString(""); v.Valid {
		t.Fatalf("expected invalid NullString for empty string")
	}
	if v := nullableString("B"); !v.Valid || v.String != "B" {
		t.Fatalf("unexpected NullString: %+v", v)
	}
	if v := nullableInt64(0); v.Valid {
		t.Fatalf("expected invalid NullInt64 for 0")
	}
	if got := nullInt64ToInt64(sql.NullInt64{Int64: 42, Valid: true}); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := nullStringToString(sql.NullString{}); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}

	at := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)
	ptr := nullUnixToTimePtr(sql.NullInt64{Int64: at.Unix(), Valid: true})
	if ptr == nil || !ptr.Equal(at) {
		t.Fatalf("unexpected time pointer: %v", ptr)
	}
	if nullUnixToTimePtr(sql.NullInt64{}) != nil {
		t.Fatalf("expected nil pointer for invalid value")
	}
}

func TestInt64ArrayRoundTrip(t *testing.T) {
	in := []int{7, 6, 5, 4, 3}
	arr := int64Array(in)
	out := intSlice(arr)
	if len(out) != len(in) {
		t.Fatalf("unexpected length: %d", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("index %d: got %d want %d", i, out[i], in[i])
		}
	}
}
