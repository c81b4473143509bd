package economy

import (
	"errors"
	"fmt"
	"time"
)

const (
	// RobCooldown is the per-actor gap between robbery attempts.
	RobCooldown = 600 * time.Second

	// MinTargetBalance is the wallet floor below which a target cannot be robbed.
	MinTargetBalance = int64(500)

	// MinActorBalance is the wallet minimum required to attempt a robbery.
	MinActorBalance = int64(750)

	// Victim protection lasts a uniform number of minutes in [ProtectionMinMinutes, ProtectionMaxMinutes].
	ProtectionMinMinutes = 2
	ProtectionMaxMinutes = 9
)

var (
	ErrInvalidTarget     = errors.New("invalid user")
	ErrSelfTarget        = errors.New("you cant rob yourself")
	ErrTargetFunds       = errors.New("this user doesnt have sufficient funds")
	ErrActorFunds        = fmt.Errorf("you need $%d in your wallet to rob someone", MinActorBalance)
	ErrAccountNotFound   = errors.New("account not found")
	ErrUnknownLeaderboard = errors.New("unknown leaderboard")
)

// CooldownError reports a rejected robbery attempt with the time left on the
// actor's cooldown.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("still on cooldown for %s", FormatShortDuration(e.Remaining))
}

// FormatShortDuration renders a duration as "4m20s" or "35s", the way the
// cooldown rejection message displays remaining time.
func FormatShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	minutes := total / 60
	seconds := total - minutes*60
	if minutes != 0 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
