package economy

import (
	"context"
	"time"
)

// MetricRow is one leaderboard candidate as fetched from the data layer.
// Username is only populated by global queries; guild queries display the
// roster name instead. BannedUntil is carried so the ranking pipeline can
// drop accounts whose ban is still running.
type MetricRow struct {
	UserID      string
	Username    string
	Value       int64
	BannedUntil *time.Time
}

const topQueryLimit = 100

// scanMetricRows collects rows of (user_id, username, value, banned).
func (s *Service) scanMetricRows(ctx context.Context, query string, args ...any) ([]MetricRow, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MetricRow
	for rows.Next() {
		var r MetricRow
		if err := rows.Scan(&r.UserID, &r.Username, &r.Value, &r.BannedUntil); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TopBalanceRows returns wallet balances ordered descending. A nil roster
// means global scope; minMoney filters dust accounts on the global board.
func (s *Service) TopBalanceRows(ctx context.Context, roster []string, minMoney int64) ([]MetricRow, error) {
	if roster == nil {
		return s.scanMetricRows(ctx, `
			SELECT e.user_id, u.last_known_username, e.money, e.banned
			FROM economy e
			JOIN users u ON u.id = e.user_id
			WHERE e.money > $1 AND u.blacklisted = false
			ORDER BY e.money DESC
			LIMIT $2
		`, minMoney, topQueryLimit)
	}
	return s.scanMetricRows(ctx, `
		SELECT e.user_id, '', e.money, e.banned
		FROM economy e
		JOIN users u ON u.id = e.user_id
		WHERE e.money > 0 AND e.user_id = ANY($1) AND u.blacklisted = false
		ORDER BY e.money DESC
		LIMIT $2
	`, roster, topQueryLimit)
}

// TopNetWorthRows returns the cached net-worth column ordered descending
// (global scope only; guild scope recomputes via NetWorthMany).
func (s *Service) TopNetWorthRows(ctx context.Context) ([]MetricRow, error) {
	return s.scanMetricRows(ctx, `
		SELECT e.user_id, u.last_known_username, e.net_worth, e.banned
		FROM economy e
		JOIN users u ON u.id = e.user_id
		WHERE e.net_worth > 0 AND u.blacklisted = false
		ORDER BY e.net_worth DESC
	`)
}

// NetWorthCandidates returns the non-banned, non-blacklisted roster members
// whose net worth must be recomputed for a guild board.
func (s *Service) NetWorthCandidates(ctx context.Context, roster []string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT e.user_id
		FROM economy e
		JOIN users u ON u.id = e.user_id
		WHERE e.user_id = ANY($1) AND u.blacklisted = false
		  AND (e.banned IS NULL OR e.banned <= now())
	`, roster)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *Service) TopPrestigeRows(ctx context.Context, roster []string) ([]MetricRow, error) {
	if roster == nil {
		return s.scanMetricRows(ctx, `
			SELECT e.user_id, u.last_known_username, e.prestige, e.banned
			FROM economy e
			JOIN users u ON u.id = e.user_id
			WHERE e.prestige > 0 AND u.blacklisted = false
			ORDER BY e.prestige DESC
			LIMIT $1
		`, topQueryLimit)
	}
	return s.scanMetricRows(ctx, `
		SELECT e.user_id, '', e.prestige, e.banned
		FROM economy e
		JOIN users u ON u.id = e.user_id
		WHERE e.prestige > 0 AND e.user_id = ANY($1) AND u.blacklisted = false
		ORDER BY e.prestige DESC
		LIMIT $2
	`, roster, topQueryLimit)
}

func (s *Service) TopDailyStreakRows(ctx context.Context, roster []string) ([]MetricRow, error) {
	if roster == nil {
		return s.scanMetricRows(ctx, `
			SELECT e.user_id, u.last_known_username, e.daily_streak, e.banned
			FROM economy e
			JOIN users u ON u.id = e.user_id
			WHERE e.daily_streak > 0
			ORDER BY e.daily_streak DESC
			LIMIT $1
		`, topQueryLimit)
	}
	return s.scanMetricRows(ctx, `
		SELECT e.user_id, '', e.daily_streak, e.banned
		FROM economy e
		WHERE e.daily_streak > 0 AND e.user_id = ANY($1)
		ORDER BY e.daily_streak DESC
		LIMIT $2
	`, roster, topQueryLimit)
}

// TopLottoWinsRows ranks lottery wins, tracked as progress on the lucky_*
// achievement chain (the final tier keeps counting after completion).
func (s *Service) TopLottoWinsRows(ctx context.Context, roster []string) ([]MetricRow, error) {
	base := `
		SELECT a.user_id, COALESCE(u.last_known_username, ''), MAX(a.progress), NULL::timestamptz
		FROM achievements a
		JOIN users u ON u.id = a.user_id
		WHERE ((a.completed = false AND a.achievement_id LIKE 'lucky\_%')
		    OR (a.completed = true AND a.achievement_id = 'lucky_v'))
	`
	if roster == nil {
		return s.scanMetricRows(ctx, base+`
			GROUP BY a.user_id, u.last_known_username
			ORDER BY MAX(a.progress) DESC
			LIMIT $1
		`, topQueryLimit)
	}
	return s.scanMetricRows(ctx, base+`
		  AND a.user_id = ANY($1)
		GROUP BY a.user_id, u.last_known_username
		ORDER BY MAX(a.progress) DESC
		LIMIT $2
	`, roster, topQueryLimit)
}

// TopWordleRows returns total wordle wins per user, unsorted; the ranking
// pipeline sorts (offloading above its threshold).
func (s *Service) TopWordleRows(ctx context.Context, roster []string) ([]MetricRow, error) {
	if roster == nil {
		return s.scanMetricRows(ctx, `
			SELECT w.user_id, u.last_known_username,
			       w.win1 + w.win2 + w.win3 + w.win4 + w.win5 + w.win6, e.banned
			FROM wordle_stats w
			JOIN users u ON u.id = w.user_id
			LEFT JOIN economy e ON e.user_id = w.user_id
			WHERE u.blacklisted = false
			  AND w.win1 + w.win2 + w.win3 + w.win4 + w.win5 + w.win6 > 0
		`)
	}
	return s.scanMetricRows(ctx, `
		SELECT w.user_id, '',
		       w.win1 + w.win2 + w.win3 + w.win4 + w.win5 + w.win6, e.banned
		FROM wordle_stats w
		JOIN users u ON u.id = w.user_id
		LEFT JOIN economy e ON e.user_id = w.user_id
		WHERE u.blacklisted = false AND w.user_id = ANY($1)
		  AND w.win1 + w.win2 + w.win3 + w.win4 + w.win5 + w.win6 > 0
	`, roster)
}

func (s *Service) TopItemRows(ctx context.Context, roster []string, item string) ([]MetricRow, error) {
	if roster == nil {
		return s.scanMetricRows(ctx, `
			SELECT i.user_id, u.last_known_username, i.amount, e.banned
			FROM inventory i
			JOIN users u ON u.id = i.user_id
			LEFT JOIN economy e ON e.user_id = i.user_id
			WHERE i.item = $1
			ORDER BY i.amount DESC
			LIMIT $2
		`, item, topQueryLimit)
	}
	return s.scanMetricRows(ctx, `
		SELECT i.user_id, '', i.amount, e.banned
		FROM inventory i
		JOIN users u ON u.id = i.user_id
		LEFT JOIN economy e ON e.user_id = i.user_id
		WHERE i.item = $1 AND i.user_id = ANY($2) AND u.blacklisted = false
		ORDER BY i.amount DESC
		LIMIT $3
	`, item, roster, topQueryLimit)
}

func (s *Service) TopCommandRows(ctx context.Context, roster []string, command string) ([]MetricRow, error) {
	if roster == nil {
		return s.scanMetricRows(ctx, `
			SELECT c.user_id, u.last_known_username, c.uses, NULL::timestamptz
			FROM command_use c
			JOIN users u ON u.id = c.user_id
			WHERE c.command = $1 AND u.blacklisted = false
			ORDER BY c.uses DESC
			LIMIT $2
		`, command, topQueryLimit)
	}
	return s.scanMetricRows(ctx, `
		SELECT c.user_id, '', c.uses, NULL::timestamptz
		FROM command_use c
		JOIN users u ON u.id = c.user_id
		WHERE c.command = $1 AND c.user_id = ANY($2) AND u.blacklisted = false
		ORDER BY c.uses DESC
		LIMIT $3
	`, command, roster, topQueryLimit)
}

// CompletionRateRows returns achievement completion per user in tenths of a
// percent, unsorted; completion is derived so the pipeline sorts it.
func (s *Service) CompletionRateRows(ctx context.Context, roster []string, totalAchievements int) ([]MetricRow, error) {
	if totalAchievements <= 0 {
		return nil, nil
	}
	base := `
		SELECT a.user_id, COALESCE(u.last_known_username, ''),
		       (COUNT(*) * 1000) / $1, e.banned
		FROM achievements a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN economy e ON e.user_id = a.user_id
		WHERE a.completed = true AND u.blacklisted = false
	`
	if roster == nil {
		return s.scanMetricRows(ctx, base+`
			GROUP BY a.user_id, u.last_known_username, e.banned
		`, totalAchievements)
	}
	return s.scanMetricRows(ctx, base+`
		  AND a.user_id = ANY($2)
		GROUP BY a.user_id, u.last_known_username, e.banned
	`, totalAchievements, roster)
}

// TotalAchievements counts the distinct achievements in play.
func (s *Service) TotalAchievements(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT achievement_id) FROM achievements
	`).Scan(&n)
	return n, err
}

// GuildRow is one economy guild on the guild leaderboard.
type GuildRow struct {
	Name  string
	Level int64
}

// TopGuildRows ranks economy guilds, ties broken by level then xp then
// balance (the one board with an explicit secondary key).
func (s *Service) TopGuildRows(ctx context.Context) ([]GuildRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT guild_name, level
		FROM economy_guilds
		ORDER BY level DESC, xp DESC, balance DESC
		LIMIT $1
	`, topQueryLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GuildRow
	for rows.Next() {
		var g GuildRow
		if err := rows.Scan(&g.Name, &g.Level); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
