package leaderboard

import (
	"context"
	"math/rand"
	"testing"
)

func TestSortDescStability(t *testing.T) {
	cands := []Candidate{
		{UserID: "a", Value: 100},
		{UserID: "b", Value: 200},
		{UserID: "c", Value: 100},
		{UserID: "d", Value: 300},
	}
	sortDesc(cands)

	want := []string{"d", "b", "a", "c"}
	for i, id := range want {
		if cands[i].UserID != id {
			t.Fatalf("index %d = %q, want %q (ties must keep input order)", i, cands[i].UserID, id)
		}
	}
}

func TestSorterOffloadsLargeSlices(t *testing.T) {
	sorter, err := NewSorter(2)
	if err != nil {
		t.Fatalf("new sorter: %v", err)
	}
	defer sorter.Release()

	rng := rand.New(rand.NewSource(7))
	cands := make([]Candidate, WorkerSortThreshold*2)
	for i := range cands {
		cands[i] = Candidate{UserID: "u", Value: rng.Int63n(1_000_000)}
	}

	if err := sorter.SortDesc(context.Background(), cands); err != nil {
		t.Fatalf("sort: %v", err)
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].Value > cands[i-1].Value {
			t.Fatalf("not descending at %d: %d > %d", i, cands[i].Value, cands[i-1].Value)
		}
	}
}

func TestSorterNilPoolSortsInline(t *testing.T) {
	var sorter *Sorter
	cands := []Candidate{{Value: 1}, {Value: 3}, {Value: 2}}
	if err := sorter.SortDesc(context.Background(), cands); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if cands[0].Value != 3 || cands[2].Value != 1 {
		t.Fatalf("inline sort wrong: %v", cands)
	}
}
