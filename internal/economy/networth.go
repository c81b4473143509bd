package economy

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// netWorthConcurrency bounds the fan-out when recomputing net worth for a
// whole roster; the per-account query is cheap but the roster is not.
const netWorthConcurrency = 10

// CalcNetWorth derives an account's net worth: wallet money plus the catalog
// worth of everything in the inventory. The cached net_worth column is
// refreshed as a side effect.
func (s *Service) CalcNetWorth(ctx context.Context, userID string) (int64, error) {
	money, err := s.Balance(ctx, userID)
	if err != nil {
		return 0, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT item, amount FROM inventory WHERE user_id = $1
	`, userID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	worth := money
	for rows.Next() {
		var item string
		var amount int64
		if err := rows.Scan(&item, &amount); err != nil {
			return 0, err
		}
		if def, ok := items[item]; ok {
			worth += def.Worth * amount
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE economy SET net_worth = $1 WHERE user_id = $2
	`, worth, userID)
	return worth, err
}

// NetWorthMany computes net worth for each id with bounded concurrency.
func (s *Service) NetWorthMany(ctx context.Context, userIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(userIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(netWorthConcurrency)
	for _, id := range userIDs {
		g.Go(func() error {
			worth, err := s.CalcNetWorth(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			out[id] = worth
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
