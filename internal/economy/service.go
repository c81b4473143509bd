package economy

import (
	"context"
	"log/slog"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cookie-is-yummy/weed/internal/cache"
)

// Service owns the economy data access: accounts, inventory, achievements,
// usage counters and the robbery engine. Balance updates are plain
// read-then-write; no locking coordinates concurrent handlers touching the
// same account (accepted risk, stakes are virtual).
type Service struct {
	db        *pgxpool.Pool
	log       *slog.Logger
	cooldowns *Cooldowns

	mu   sync.Mutex
	rand *mathrand.Rand
}

func NewService(db *pgxpool.Pool, store cache.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:        db,
		log:       logger,
		cooldowns: NewCooldowns(store),
		rand:      mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
	}
}

// Cooldowns exposes the robbery cooldown tracker, for handlers that need to
// inspect remaining time without attempting a robbery.
func (s *Service) Cooldowns() *Cooldowns {
	return s.cooldowns
}

// EnsureAccount creates the user row and economy row on first interaction.
func (s *Service) EnsureAccount(ctx context.Context, userID, username string) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, last_known_username, blacklisted, dm_notifications, leaderboards_public)
		VALUES ($1, $2, false, true, true)
		ON CONFLICT (id) DO UPDATE SET last_known_username = $2
	`, userID, username)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO economy (user_id, money, net_worth, prestige, daily_streak, xp)
		VALUES ($1, 500, 500, 0, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Service) AccountExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM economy WHERE user_id = $1)
	`, userID).Scan(&exists)
	return exists, err
}

func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	var money int64
	err := s.db.QueryRow(ctx, `
		SELECT money FROM economy WHERE user_id = $1
	`, userID).Scan(&money)
	if err == pgx.ErrNoRows {
		return 0, ErrAccountNotFound
	}
	return money, err
}

func (s *Service) UpdateBalance(ctx context.Context, userID string, balance int64) error {
	_, err := s.db.Exec(ctx, `
		UPDATE economy SET money = $1 WHERE user_id = $2
	`, balance, userID)
	return err
}

func (s *Service) XP(ctx context.Context, userID string) (int64, error) {
	var xp int64
	err := s.db.QueryRow(ctx, `
		SELECT xp FROM economy WHERE user_id = $1
	`, userID).Scan(&xp)
	if err == pgx.ErrNoRows {
		return 0, ErrAccountNotFound
	}
	return xp, err
}

func (s *Service) UpdateXP(ctx context.Context, userID string, xp int64) error {
	_, err := s.db.Exec(ctx, `
		UPDATE economy SET xp = $1 WHERE user_id = $2
	`, xp, userID)
	return err
}

// VoteMultiplier returns the active reward multiplier. A vote in the last 12
// hours grants 0.1; otherwise 0.
func (s *Service) VoteMultiplier(ctx context.Context, userID string) (float64, error) {
	var lastVote *time.Time
	err := s.db.QueryRow(ctx, `
		SELECT last_vote FROM users WHERE id = $1
	`, userID).Scan(&lastVote)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if lastVote != nil && time.Since(*lastVote) < 12*time.Hour {
		return 0.1, nil
	}
	return 0, nil
}

func (s *Service) InventoryItem(ctx context.Context, userID, item string) (int64, error) {
	var amount int64
	err := s.db.QueryRow(ctx, `
		SELECT amount FROM inventory WHERE user_id = $1 AND item = $2
	`, userID, item).Scan(&amount)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return amount, err
}

// SetInventoryItem upserts an item quantity; zero or negative removes the row.
func (s *Service) SetInventoryItem(ctx context.Context, userID, item string, amount int64) error {
	if amount <= 0 {
		_, err := s.db.Exec(ctx, `
			DELETE FROM inventory WHERE user_id = $1 AND item = $2
		`, userID, item)
		return err
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO inventory (user_id, item, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item) DO UPDATE SET amount = $3
	`, userID, item, amount)
	return err
}

func (s *Service) HasPadlock(ctx context.Context, userID string) (bool, error) {
	amount, err := s.InventoryItem(ctx, userID, ItemPadlock)
	return amount > 0, err
}

func (s *Service) SetPadlock(ctx context.Context, userID string, locked bool) error {
	if !locked {
		return s.SetInventoryItem(ctx, userID, ItemPadlock, 0)
	}
	return s.SetInventoryItem(ctx, userID, ItemPadlock, 1)
}

// DMNotifications reports the user's DM preference for bot notifications.
func (s *Service) DMNotifications(ctx context.Context, userID string) (bool, error) {
	var enabled bool
	err := s.db.QueryRow(ctx, `
		SELECT dm_notifications FROM users WHERE id = $1
	`, userID).Scan(&enabled)
	if err == pgx.ErrNoRows {
		return true, nil
	}
	return enabled, err
}

// LeaderboardsPublic reports whether the user's name may appear on global
// leaderboards.
func (s *Service) LeaderboardsPublic(ctx context.Context, userID string) (bool, error) {
	var public bool
	err := s.db.QueryRow(ctx, `
		SELECT leaderboards_public FROM users WHERE id = $1
	`, userID).Scan(&public)
	if err == pgx.ErrNoRows {
		return true, nil
	}
	return public, err
}

// ActiveTag returns the user's active cosmetic tag, or ok=false.
func (s *Service) ActiveTag(ctx context.Context, userID string) (Tag, bool, error) {
	var tagID *string
	err := s.db.QueryRow(ctx, `
		SELECT active_tag FROM users WHERE id = $1
	`, userID).Scan(&tagID)
	if err == pgx.ErrNoRows || (err == nil && tagID == nil) {
		return Tag{}, false, nil
	}
	if err != nil {
		return Tag{}, false, err
	}
	tag, ok := tags[*tagID]
	return tag, ok, nil
}

// AddCommandUse increments the per-user usage counter for a command.
func (s *Service) AddCommandUse(ctx context.Context, userID, command string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO command_use (user_id, command, uses)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, command) DO UPDATE SET uses = command_use.uses + 1
	`, userID, command)
	return err
}

// RecordLeaderboardPositions persists each id's 1-based position on the named
// board, for later "your last known rank" lookups.
func (s *Service) RecordLeaderboardPositions(ctx context.Context, board string, userIDs []string) error {
	batch := &pgx.Batch{}
	for i, id := range userIDs {
		batch.Queue(`
			INSERT INTO leaderboard_positions (user_id, leaderboard, position, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (user_id, leaderboard) DO UPDATE SET position = $3, updated_at = now()
		`, id, board, i+1)
	}
	return s.db.SendBatch(ctx, batch).Close()
}

func (s *Service) rollInt(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Intn(n)
}
