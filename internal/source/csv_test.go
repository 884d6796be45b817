package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "series.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestCSVLoad(t *testing.T) {
	path := writeTemp(t, "date,value\n2021-02-01,20\n2021-01-01,10\n2021-03-01,30\n")
	s, err := NewCSV(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 3 {
		t.Fatalf("expected 3 points, got %d", len(s))
	}
	if !s[0].Date.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("points must be sorted by date, first is %v", s[0].Date)
	}
	if s[0].Value != 10 || s[2].Value != 30 {
		t.Errorf("unexpected values: %+v", s)
	}
}

func TestCSVSkipsInvalidRows(t *testing.T) {
	path := writeTemp(t, "date,value\n2021-01-01,10\n,\nnot-a-date,5\n2021-02-01,oops\n2021-03-01,30\n")
	s, err := NewCSV(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("expected invalid rows skipped, got %d points", len(s))
	}
}

func TestCSVNoData(t *testing.T) {
	path := writeTemp(t, "date,value\n")
	if _, err := NewCSV(path).Load(context.Background()); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestCSVMissingColumns(t *testing.T) {
	path := writeTemp(t, "ts,amount\n2021-01-01,10\n")
	if _, err := NewCSV(path).Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}

func TestCSVMissingFile(t *testing.T) {
	if _, err := NewCSV("/nonexistent/series.csv").Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
