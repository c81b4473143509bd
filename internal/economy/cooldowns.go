package economy

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cookie-is-yummy/weed/internal/cache"
)

const (
	cooldownKeyPrefix   = "rob:cooldown:"
	protectionKeyPrefix = "rob:shield:"
)

// Cooldowns tracks the per-actor robbery cooldown and the temporary
// protection flag a victim gains after being robbed. State lives in a TTL
// store so expiry is a property of the entry, not of a timer that dies with
// the process.
type Cooldowns struct {
	store cache.Store
}

func NewCooldowns(store cache.Store) *Cooldowns {
	return &Cooldowns{store: store}
}

// Remaining returns the time left on an actor's cooldown, or 0 when the
// actor may rob again.
func (c *Cooldowns) Remaining(ctx context.Context, actorID string) (time.Duration, error) {
	d, err := c.store.TTL(ctx, cooldownKeyPrefix+actorID)
	if errors.Is(err, cache.ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return d, nil
}

// Start stamps the actor's cooldown for the full RobCooldown window.
func (c *Cooldowns) Start(ctx context.Context, actorID string) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	return c.store.Set(ctx, cooldownKeyPrefix+actorID, []byte(now), RobCooldown)
}

// Protect shields a freshly robbed target for the given duration.
func (c *Cooldowns) Protect(ctx context.Context, targetID string, d time.Duration) error {
	return c.store.Set(ctx, protectionKeyPrefix+targetID, []byte("1"), d)
}

// Protected reports whether the target currently holds a protection flag.
func (c *Cooldowns) Protected(ctx context.Context, targetID string) (bool, error) {
	return c.store.Exists(ctx, protectionKeyPrefix+targetID)
}
