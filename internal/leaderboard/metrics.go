package leaderboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cookie-is-yummy/weed/internal/economy"
)

// globalBalanceFloor hides dust wallets from the global money board.
const globalBalanceFloor = int64(10_000)

// globalBalanceCharLimit is the display-length safety cutoff on the global
// money board.
const globalBalanceCharLimit = 1500

func fromMetricRows(rows []economy.MetricRow) []Candidate {
	out := make([]Candidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, Candidate{
			UserID:      r.UserID,
			Username:    r.Username,
			Value:       r.Value,
			BannedUntil: r.BannedUntil,
		})
	}
	return out
}

// Balance ranks wallet money.
func (b *Boards) Balance() Metric {
	return Metric{
		Name:      "balance",
		SkipZero:  true,
		CharLimit: globalBalanceCharLimit,
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			minMoney := int64(0)
			if scope.Global {
				minMoney = globalBalanceFloor
			}
			rows, err := b.eco.TopBalanceRows(ctx, scope.IDs(), minMoney)
			if err != nil {
				return nil, err
			}
			return fromMetricRows(rows), nil
		},
		Format: func(c Candidate) string {
			return "$" + commafy(c.Value)
		},
	}
}

// NetWorth ranks derived net worth. Global scope reads the cached column in
// sorted order; guild scope recomputes per member and sorts in the pipeline.
func (b *Boards) NetWorth() Metric {
	return Metric{
		Name:     "networth",
		SkipZero: true,
		Computed: false,
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			if scope.Global {
				rows, err := b.eco.TopNetWorthRows(ctx)
				if err != nil {
					return nil, err
				}
				return fromMetricRows(rows), nil
			}
			ids, err := b.eco.NetWorthCandidates(ctx, scope.IDs())
			if err != nil {
				return nil, err
			}
			amounts, err := b.eco.NetWorthMany(ctx, ids)
			if err != nil {
				return nil, err
			}
			cands := make([]Candidate, 0, len(amounts))
			for id, worth := range amounts {
				cands = append(cands, Candidate{UserID: id, Value: worth})
			}
			if err := b.sorter.SortDesc(ctx, cands); err != nil {
				return nil, err
			}
			return cands, nil
		},
		Format: func(c Candidate) string {
			return "$" + commafy(c.Value)
		},
	}
}

// Prestige ranks prestige level, rendered with an ordinal suffix.
func (b *Boards) Prestige() Metric {
	return Metric{
		Name: "prestige",
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			rows, err := b.eco.TopPrestigeRows(ctx, scope.IDs())
			if err != nil {
				return nil, err
			}
			return fromMetricRows(rows), nil
		},
		Format: func(c Candidate) string {
			return fmt.Sprintf("%d%s prestige", c.Value, ordinalSuffix(c.Value))
		},
	}
}

// DailyStreak ranks the daily claim streak.
func (b *Boards) DailyStreak() Metric {
	return Metric{
		Name: "streak",
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			rows, err := b.eco.TopDailyStreakRows(ctx, scope.IDs())
			if err != nil {
				return nil, err
			}
			return fromMetricRows(rows), nil
		},
		Format: func(c Candidate) string {
			return strconv.FormatInt(c.Value, 10)
		},
	}
}

// LottoWins ranks lottery wins tracked through the lucky achievement chain.
func (b *Boards) LottoWins() Metric {
	return Metric{
		Name: "lotto",
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			rows, err := b.eco.TopLottoWinsRows(ctx, scope.IDs())
			if err != nil {
				return nil, err
			}
			return fromMetricRows(rows), nil
		},
		Format: func(c Candidate) string {
			return strconv.FormatInt(c.Value, 10)
		},
	}
}

// Wordle ranks total wordle wins; the fetch is unsorted so the pipeline
// sorts, on the worker pool for big populations.
func (b *Boards) Wordle() Metric {
	return Metric{
		Name:     "wordle",
		Computed: true,
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			rows, err := b.eco.TopWordleRows(ctx, scope.IDs())
			if err != nil {
				return nil, err
			}
			return fromMetricRows(rows), nil
		},
		Format: func(c Candidate) string {
			if c.Value == 1 {
				return "1 win"
			}
			return commafy(c.Value) + " wins"
		},
	}
}

// Item ranks holdings of one inventory item.
func (b *Boards) Item(item string) Metric {
	return Metric{
		Name: "item-" + item,
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			rows, err := b.eco.TopItemRows(ctx, scope.IDs(), item)
			if err != nil {
				return nil, err
			}
			return fromMetricRows(rows), nil
		},
		Format: func(c Candidate) string {
			return fmt.Sprintf("%s %s", commafy(c.Value), economy.ItemName(item, c.Value))
		},
	}
}

// Command ranks per-user usage of one chat command.
func (b *Boards) Command(command string) Metric {
	return Metric{
		Name: "command-" + command,
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			rows, err := b.eco.TopCommandRows(ctx, scope.IDs(), command)
			if err != nil {
				return nil, err
			}
			return fromMetricRows(rows), nil
		},
		Format: func(c Candidate) string {
			if c.Value == 1 {
				return "1 use"
			}
			return commafy(c.Value) + " uses"
		},
	}
}

// Completion ranks achievement completion rate. Values are tenths of a
// percent; the metric is derived, so the pipeline sorts it.
func (b *Boards) Completion() Metric {
	return Metric{
		Name:     "completion",
		SkipZero: true,
		Computed: true,
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			total, err := b.eco.TotalAchievements(ctx)
			if err != nil {
				return nil, err
			}
			rows, err := b.eco.CompletionRateRows(ctx, scope.IDs(), total)
			if err != nil {
				return nil, err
			}
			return fromMetricRows(rows), nil
		},
		Format: func(c Candidate) string {
			return fmt.Sprintf("%.1f%%", float64(c.Value)/10)
		},
	}
}

// Guilds ranks economy guilds; names are plain (no privacy or tags) and
// the data layer already breaks ties by level, xp, then balance.
func (b *Boards) Guilds() Metric {
	return Metric{
		Name:      "guilds",
		PlainName: true,
		Fetch: func(ctx context.Context, scope Scope) ([]Candidate, error) {
			rows, err := b.eco.TopGuildRows(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]Candidate, 0, len(rows))
			for _, g := range rows {
				out = append(out, Candidate{UserID: g.Name, Username: "**" + g.Name + "**", Value: g.Level})
			}
			return out, nil
		},
		Format: func(c Candidate) string {
			return fmt.Sprintf("level %d", c.Value)
		},
	}
}

// ByName resolves a metric from its wire name, for the HTTP API and CLI.
func (b *Boards) ByName(name string) (Metric, error) {
	switch name {
	case "balance", "money":
		return b.Balance(), nil
	case "networth":
		return b.NetWorth(), nil
	case "prestige":
		return b.Prestige(), nil
	case "streak":
		return b.DailyStreak(), nil
	case "lotto":
		return b.LottoWins(), nil
	case "wordle":
		return b.Wordle(), nil
	case "completion":
		return b.Completion(), nil
	case "guilds":
		return b.Guilds(), nil
	default:
		return Metric{}, economy.ErrUnknownLeaderboard
	}
}

// commafy renders n with thousands separators.
func commafy(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// ordinalSuffix returns th/st/nd/rd for a rank or level.
func ordinalSuffix(n int64) string {
	suffixes := []string{"th", "st", "nd", "rd"}
	v := n % 100
	if idx := (v - 20) % 10; idx >= 1 && idx <= 3 {
		return suffixes[idx]
	}
	if v >= 1 && v <= 3 {
		return suffixes[v]
	}
	return suffixes[0]
}
