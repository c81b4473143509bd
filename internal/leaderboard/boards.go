package leaderboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cookie-is-yummy/weed/internal/economy"
)

// Profile is the slice of the economy service the name formatter needs.
type Profile interface {
	LeaderboardsPublic(ctx context.Context, userID string) (bool, error)
	ActiveTag(ctx context.Context, userID string) (economy.Tag, bool, error)
}

// Boards is the leaderboard aggregator: one generic pipeline plus a metric
// constructor per ranked statistic.
type Boards struct {
	eco      *economy.Service
	profiles Profile
	sorter   *Sorter
	recorder *Recorder
	log      *slog.Logger
}

func New(eco *economy.Service, sorter *Sorter, recorder *Recorder, logger *slog.Logger) *Boards {
	if logger == nil {
		logger = slog.Default()
	}
	return &Boards{
		eco:      eco,
		profiles: eco,
		sorter:   sorter,
		recorder: recorder,
		log:      logger,
	}
}

// formatName renders a row owner's name. Global boards honor the owner's
// privacy preference; an active cosmetic tag prefixes its emoji.
func (b *Boards) formatName(ctx context.Context, userID, username string, global bool) (string, error) {
	if global {
		public, err := b.profiles.LeaderboardsPublic(ctx, userID)
		if err != nil {
			return "", err
		}
		if !public {
			return "**[hidden]**", nil
		}
	}
	tag, ok, err := b.profiles.ActiveTag(ctx, userID)
	if err != nil {
		return "", err
	}
	if ok {
		return fmt.Sprintf("**[%s] %s**", tag.Emoji, username), nil
	}
	return fmt.Sprintf("**%s**", username), nil
}
