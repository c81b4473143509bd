package leaderboard

import (
	"fmt"
	"testing"
)

func TestPagesEmpty(t *testing.T) {
	if got := Pages(nil); got != nil {
		t.Fatalf("expected nil pages, got %v", got)
	}
}

func TestPagesSplit(t *testing.T) {
	rows := make([]string, PageSize*2+3)
	for i := range rows {
		rows[i] = fmt.Sprintf("row %d", i)
	}

	pages := Pages(rows)
	if len(pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(pages))
	}
	if len(pages[0]) != PageSize || len(pages[1]) != PageSize {
		t.Fatalf("full pages sized %d/%d, want %d", len(pages[0]), len(pages[1]), PageSize)
	}
	if len(pages[2]) != 3 {
		t.Fatalf("last page sized %d, want 3", len(pages[2]))
	}
	if pages[2][0] != fmt.Sprintf("row %d", PageSize*2) {
		t.Fatalf("page boundary wrong, got %q", pages[2][0])
	}
}

func TestPagesExactMultiple(t *testing.T) {
	rows := make([]string, PageSize)
	for i := range rows {
		rows[i] = "r"
	}
	pages := Pages(rows)
	if len(pages) != 1 || len(pages[0]) != PageSize {
		t.Fatalf("exact page split wrong: %d pages", len(pages))
	}
}
