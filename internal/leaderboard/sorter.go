package leaderboard

import (
	"context"
	"sort"

	"github.com/panjf2000/ants/v2"
)

// WorkerSortThreshold is the candidate count above which sorting moves off
// the caller's goroutine onto the shared pool, so a huge board never stalls
// a command handler.
const WorkerSortThreshold = 500

// Sorter sorts candidate slices, delegating big ones to an ants pool.
type Sorter struct {
	pool *ants.Pool
}

func NewSorter(size int) (*Sorter, error) {
	pool, err := ants.NewPool(size, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	return &Sorter{pool: pool}, nil
}

// SortDesc orders candidates by value descending, in place. The sort is
// stable so equal values keep their fetch order.
func (s *Sorter) SortDesc(ctx context.Context, cands []Candidate) error {
	if len(cands) <= WorkerSortThreshold || s == nil || s.pool == nil {
		sortDesc(cands)
		return nil
	}

	done := make(chan struct{})
	if err := s.pool.Submit(func() {
		defer close(done)
		sortDesc(cands)
	}); err != nil {
		// Pool saturated or closed; sort inline rather than fail the board.
		sortDesc(cands)
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sorter) Release() {
	if s != nil && s.pool != nil {
		s.pool.Release()
	}
}

func sortDesc(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Value > cands[j].Value
	})
}
