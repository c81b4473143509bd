package jobs

import (
	"context"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/cookie-is-yummy/weed/internal/economy"
	"github.com/cookie-is-yummy/weed/internal/notify"
)

const embedColor = 0x36393F

// streakGraceCutoff is how long after the last daily claim a streak
// survives before the sweep considers it stale.
const streakGraceCutoff = 26 * time.Hour

const gemShatterPercent = 7

// StreakStore is the slice of the economy service the sweep needs.
type StreakStore interface {
	StaleStreakAccounts(ctx context.Context, cutoff time.Time) ([]economy.StreakAccount, error)
	SetInventoryItem(ctx context.Context, userID, item string, amount int64) error
	ResetDailyStreak(ctx context.Context, userID string) error
}

// StreakSweep resets stale daily streaks, letting calendars and white gems
// save them. Notifications batch through the queue and flush after the
// full sweep so delivery never slows the scan.
type StreakSweep struct {
	store StreakStore
	queue *notify.Queue
	roll  func(n int) int
}

func NewStreakSweep(store StreakStore, queue *notify.Queue) *StreakSweep {
	var mu sync.Mutex
	rng := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	return &StreakSweep{
		store: store,
		queue: queue,
		roll: func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			return rng.Intn(n)
		},
	}
}

// Job wires the sweep to its schedule.
func (s *StreakSweep) Job() Job {
	return Job{Name: "daily streak", Spec: "0 0 * * *", Run: s.Run}
}

func (s *StreakSweep) Run(ctx context.Context, log *slog.Logger) error {
	cutoff := time.Now().Add(-streakGraceCutoff)

	accounts, err := s.store.StaleStreakAccounts(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("fetch stale streaks: %w", err)
	}

	for _, acct := range accounts {
		if err := s.sweepAccount(ctx, acct); err != nil {
			log.Error("streak sweep account failed", "user", acct.UserID, "err", err)
		}
	}

	sent := s.queue.Flush(ctx)
	log.Info("streak notifications sent", "count", sent)
	return nil
}

func (s *StreakSweep) sweepAccount(ctx context.Context, acct economy.StreakAccount) error {
	if acct.Calendars > 0 {
		if acct.DMNotifications {
			s.queue.Enqueue(acct.UserID, calendarSavedPayload())
		}
		return s.store.SetInventoryItem(ctx, acct.UserID, economy.ItemCalendar, acct.Calendars-1)
	}

	if acct.WhiteGems > 0 && s.roll(10) < 5 {
		if acct.DMNotifications {
			s.queue.Enqueue(acct.UserID, gemSavedPayload())
		}
		if s.roll(100) < gemShatterPercent {
			if acct.DMNotifications {
				s.queue.Enqueue(acct.UserID, gemShatteredPayload())
			}
			return s.store.SetInventoryItem(ctx, acct.UserID, economy.ItemWhiteGem, acct.WhiteGems-1)
		}
		return nil
	}

	if acct.DMNotifications {
		s.queue.Enqueue(acct.UserID, streakLostPayload())
	}
	return s.store.ResetDailyStreak(ctx, acct.UserID)
}

func calendarSavedPayload() notify.Payload {
	return notify.Payload{
		Title:       "your daily streak has been saved by a calendar!",
		Description: "calendars in your inventory protect your daily streak, make sure to do `$daily` to continue your streak",
		Color:       embedColor,
	}
}

func gemSavedPayload() notify.Payload {
	return notify.Payload{
		Title:       "your daily streak was saved by your white gem!",
		Description: "💎 white gems have a chance to protect your daily streak. make sure to do `$daily` to continue your streak",
		Color:       embedColor,
	}
}

func gemShatteredPayload() notify.Payload {
	return notify.Payload{
		Title:       "your white gem has shattered",
		Description: "💎 the power exerted by your white gem to save your streak has unfortunately caused it to shatter...",
		Color:       embedColor,
	}
}

func streakLostPayload() notify.Payload {
	return notify.Payload{
		Title:       "you have lost your daily streak!",
		Description: "you have lost your daily streak by not doing `$daily`. calendars can be used to protect your daily streak from being reset",
		Color:       embedColor,
	}
}
