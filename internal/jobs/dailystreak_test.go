package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/cookie-is-yummy/weed/internal/economy"
	"github.com/cookie-is-yummy/weed/internal/notify"
)

type fakeStreakStore struct {
	accounts []economy.StreakAccount

	inventory map[string]map[string]int64
	resets    []string
}

func newFakeStreakStore(accounts ...economy.StreakAccount) *fakeStreakStore {
	return &fakeStreakStore{
		accounts:  accounts,
		inventory: make(map[string]map[string]int64),
	}
}

func (f *fakeStreakStore) StaleStreakAccounts(context.Context, time.Time) ([]economy.StreakAccount, error) {
	return f.accounts, nil
}

func (f *fakeStreakStore) SetInventoryItem(_ context.Context, userID, item string, amount int64) error {
	if f.inventory[userID] == nil {
		f.inventory[userID] = make(map[string]int64)
	}
	f.inventory[userID][item] = amount
	return nil
}

func (f *fakeStreakStore) ResetDailyStreak(_ context.Context, userID string) error {
	f.resets = append(f.resets, userID)
	return nil
}

type recordingSender struct {
	sent []notify.Notification
}

func (r *recordingSender) SendDM(_ context.Context, recipientID string, p notify.Payload) error {
	r.sent = append(r.sent, notify.Notification{RecipientID: recipientID, Payload: p})
	return nil
}

func newTestSweep(store StreakStore, sender notify.Sender, rolls ...int) *StreakSweep {
	s := NewStreakSweep(store, notify.NewQueue(sender, nil))
	i := 0
	s.roll = func(int) int {
		if i >= len(rolls) {
			return 0
		}
		v := rolls[i]
		i++
		return v
	}
	return s
}

func TestSweepCalendarSavesStreak(t *testing.T) {
	store := newFakeStreakStore(economy.StreakAccount{
		UserID:          "u1",
		DailyStreak:     5,
		DMNotifications: true,
		Calendars:       2,
	})
	sender := &recordingSender{}
	sweep := newTestSweep(store, sender)

	if err := sweep.Run(context.Background(), slog.Default()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := store.inventory["u1"][economy.ItemCalendar]; got != 1 {
		t.Fatalf("calendars = %d, want 1 (one consumed)", got)
	}
	if len(store.resets) != 0 {
		t.Fatalf("streak reset despite calendar: %v", store.resets)
	}
	if len(sender.sent) != 1 || sender.sent[0].Payload.Title != "your daily streak has been saved by a calendar!" {
		t.Fatalf("unexpected notifications: %+v", sender.sent)
	}
}

func TestSweepGemSavesStreak(t *testing.T) {
	store := newFakeStreakStore(economy.StreakAccount{
		UserID:          "u1",
		DailyStreak:     3,
		DMNotifications: true,
		WhiteGems:       1,
	})
	sender := &recordingSender{}
	// save roll 4 (< 5 saves), shatter roll 50 (>= 7 keeps the gem)
	sweep := newTestSweep(store, sender, 4, 50)

	if err := sweep.Run(context.Background(), slog.Default()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(store.resets) != 0 {
		t.Fatalf("streak reset despite gem save: %v", store.resets)
	}
	if _, touched := store.inventory["u1"]; touched {
		t.Fatalf("gem should survive, inventory written: %v", store.inventory)
	}
	if len(sender.sent) != 1 || sender.sent[0].Payload.Title != "your daily streak was saved by your white gem!" {
		t.Fatalf("unexpected notifications: %+v", sender.sent)
	}
}

func TestSweepGemShatters(t *testing.T) {
	store := newFakeStreakStore(economy.StreakAccount{
		UserID:          "u1",
		DailyStreak:     3,
		DMNotifications: true,
		WhiteGems:       1,
	})
	sender := &recordingSender{}
	// save roll 0, shatter roll 3 (< 7 shatters)
	sweep := newTestSweep(store, sender, 0, 3)

	if err := sweep.Run(context.Background(), slog.Default()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := store.inventory["u1"][economy.ItemWhiteGem]; got != 0 {
		t.Fatalf("white gems = %d, want 0 after shatter", got)
	}
	if len(store.resets) != 0 {
		t.Fatalf("streak reset despite gem save: %v", store.resets)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("want save + shatter notifications, got %+v", sender.sent)
	}
	if sender.sent[1].Payload.Title != "your white gem has shattered" {
		t.Fatalf("second notification = %q", sender.sent[1].Payload.Title)
	}
}

func TestSweepGemFailsToSave(t *testing.T) {
	store := newFakeStreakStore(economy.StreakAccount{
		UserID:          "u1",
		DailyStreak:     3,
		DMNotifications: true,
		WhiteGems:       1,
	})
	sender := &recordingSender{}
	// save roll 9 (>= 5 fails)
	sweep := newTestSweep(store, sender, 9)

	if err := sweep.Run(context.Background(), slog.Default()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(store.resets) != 1 || store.resets[0] != "u1" {
		t.Fatalf("resets = %v, want [u1]", store.resets)
	}
	if len(sender.sent) != 1 || sender.sent[0].Payload.Title != "you have lost your daily streak!" {
		t.Fatalf("unexpected notifications: %+v", sender.sent)
	}
}

func TestSweepResetsWithoutItems(t *testing.T) {
	store := newFakeStreakStore(
		economy.StreakAccount{UserID: "u1", DailyStreak: 7, DMNotifications: true},
		economy.StreakAccount{UserID: "u2", DailyStreak: 4, DMNotifications: false},
	)
	sender := &recordingSender{}
	sweep := newTestSweep(store, sender)

	if err := sweep.Run(context.Background(), slog.Default()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(store.resets) != 2 {
		t.Fatalf("resets = %v, want both accounts", store.resets)
	}
	// u2 opted out of DMs; only u1 is notified.
	if len(sender.sent) != 1 || sender.sent[0].RecipientID != "u1" {
		t.Fatalf("unexpected notifications: %+v", sender.sent)
	}
}

func TestSweepCalendarOutranksGem(t *testing.T) {
	store := newFakeStreakStore(economy.StreakAccount{
		UserID:          "u1",
		DailyStreak:     3,
		DMNotifications: true,
		Calendars:       1,
		WhiteGems:       1,
	})
	sender := &recordingSender{}
	sweep := newTestSweep(store, sender)

	if err := sweep.Run(context.Background(), slog.Default()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := store.inventory["u1"][economy.ItemCalendar]; got != 0 {
		t.Fatalf("calendars = %d, want 0", got)
	}
	if got, ok := store.inventory["u1"][economy.ItemWhiteGem]; ok {
		t.Fatalf("white gem touched: %d", got)
	}
}
