package economy

import (
	"context"
	"time"
)

// StreakAccount is one candidate for the daily-streak sweep: an account
// whose last claim is stale, with the inventory that can still save it.
type StreakAccount struct {
	UserID          string
	DailyStreak     int
	DMNotifications bool
	Calendars       int64
	WhiteGems       int64
}

// StaleStreakAccounts returns accounts whose last daily claim is at or
// before the cutoff and whose streak is worth protecting (> 1).
func (s *Service) StaleStreakAccounts(ctx context.Context, cutoff time.Time) ([]StreakAccount, error) {
	rows, err := s.db.Query(ctx, `
		SELECT e.user_id, e.daily_streak, u.dm_notifications,
		       COALESCE(cal.amount, 0), COALESCE(gem.amount, 0)
		FROM economy e
		JOIN users u ON u.id = e.user_id
		LEFT JOIN inventory cal ON cal.user_id = e.user_id AND cal.item = $2
		LEFT JOIN inventory gem ON gem.user_id = e.user_id AND gem.item = $3
		WHERE e.last_daily <= $1 AND e.daily_streak > 1
	`, cutoff, ItemCalendar, ItemWhiteGem)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StreakAccount
	for rows.Next() {
		var a StreakAccount
		if err := rows.Scan(&a.UserID, &a.DailyStreak, &a.DMNotifications, &a.Calendars, &a.WhiteGems); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ResetDailyStreak zeroes an account's streak.
func (s *Service) ResetDailyStreak(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE economy SET daily_streak = 0 WHERE user_id = $1
	`, userID)
	return err
}
