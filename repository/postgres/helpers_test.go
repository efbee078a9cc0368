package postgres

import (
	"testing"
	"time"
)

func TestMarshalMapNeverProducesNull(t *testing.T) {
	// The users.preferences column is JSONB NOT NULL; a nil parameter would
	// reach Postgres as SQL NULL and fail the insert.
	tests := []struct {
		name string
		in   map[string]string
		want string
	}{
		{"nil map", nil, "{}"},
		{"empty map", map[string]string{}, "{}"},
		{"populated map", map[string]string{"theme": "dark"}, `{"theme":"dark"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := marshalMap(tt.in)
			if got == nil {
				t.Fatal("marshalMap returned nil")
			}
			if string(got) != tt.want {
				t.Fatalf("marshalMap = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNullDate(t *testing.T) {
	if nullDate("") != nil {
		t.Error("empty date should map to NULL")
	}
	if nullDate("not-a-date") != nil {
		t.Error("malformed date should map to NULL")
	}
	parsed, ok := nullDate("2024-03-01").(time.Time)
	if !ok || parsed.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("nullDate round trip = %v", parsed)
	}
}

func TestDateString(t *testing.T) {
	if dateString(nil) != "" {
		t.Error("nil scan should render empty")
	}
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := dateString(&d); got != "2024-03-01" {
		t.Errorf("dateString = %q", got)
	}
}
