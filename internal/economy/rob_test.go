package economy

import (
	"context"
	"errors"
	mathrand "math/rand"
	"testing"
	"time"

	"github.com/cookie-is-yummy/weed/internal/cache"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		bal     int64
		percent int
		want    int64
	}{
		{bal: 1000, percent: 15, want: 150},
		{bal: 2000, percent: 39, want: 780},
		{bal: 800, percent: 5, want: 40},
		{bal: 999, percent: 10, want: 100},
		{bal: 501, percent: 1, want: 5},
		{bal: 0, percent: 39, want: 0},
	}
	for _, tc := range tests {
		got := percentOf(tc.bal, tc.percent)
		if got != tc.want {
			t.Fatalf("percentOf(%d, %d) = %d, want %d", tc.bal, tc.percent, got, tc.want)
		}
	}
}

func TestResolveRobberyProtected(t *testing.T) {
	rolls := robRolls{protectedPercent: 7, chance: 19, successPercent: 39}
	got := resolveRobbery(1000, 2000, true, true, rolls)

	if got.Outcome != RobOutcomeProtected {
		t.Fatalf("outcome = %v, want protected", got.Outcome)
	}
	if got.Amount != 70 {
		t.Fatalf("amount = %d, want 70", got.Amount)
	}
	if got.ActorBalance != 930 || got.TargetBalance != 2070 {
		t.Fatalf("balances = %d/%d, want 930/2070", got.ActorBalance, got.TargetBalance)
	}
}

func TestResolveRobberyPadlockNoTransfer(t *testing.T) {
	rolls := robRolls{padlockPercent: 20, chance: 19, successPercent: 39}
	got := resolveRobbery(1000, 2000, false, true, rolls)

	if got.Outcome != RobOutcomePadlock {
		t.Fatalf("outcome = %v, want padlock", got.Outcome)
	}
	if got.ActorBalance != 1000 || got.TargetBalance != 2000 {
		t.Fatalf("padlock must not move money, balances = %d/%d", got.ActorBalance, got.TargetBalance)
	}
	if got.Amount != 200 {
		t.Fatalf("display amount = %d, want 200", got.Amount)
	}
}

func TestResolveRobberySuccess(t *testing.T) {
	rolls := robRolls{chance: 9, successPercent: 15}
	got := resolveRobbery(1000, 2000, false, false, rolls)

	if got.Outcome != RobOutcomeSuccess {
		t.Fatalf("outcome = %v, want success", got.Outcome)
	}
	if got.Amount != 300 {
		t.Fatalf("amount = %d, want 300 (15%% of target)", got.Amount)
	}
	if got.ActorBalance != 1300 || got.TargetBalance != 1700 {
		t.Fatalf("balances = %d/%d, want 1300/1700", got.ActorBalance, got.TargetBalance)
	}
}

func TestResolveRobberyFailure(t *testing.T) {
	rolls := robRolls{chance: 8, failPercent: 24}
	got := resolveRobbery(800, 600, false, false, rolls)

	if got.Outcome != RobOutcomeFailure {
		t.Fatalf("outcome = %v, want failure", got.Outcome)
	}
	if got.Amount != 192 {
		t.Fatalf("amount = %d, want 192 (24%% of actor)", got.Amount)
	}
	if got.ActorBalance != 608 || got.TargetBalance != 792 {
		t.Fatalf("balances = %d/%d, want 608/792", got.ActorBalance, got.TargetBalance)
	}
}

func TestResolveRobberyChanceBoundary(t *testing.T) {
	// chance 8 fails, chance 9 succeeds
	fail := resolveRobbery(1000, 2000, false, false, robRolls{chance: 8, failPercent: 5, successPercent: 5})
	if fail.Outcome != RobOutcomeFailure {
		t.Fatalf("chance 8 should fail, got %v", fail.Outcome)
	}
	win := resolveRobbery(1000, 2000, false, false, robRolls{chance: 9, failPercent: 5, successPercent: 5})
	if win.Outcome != RobOutcomeSuccess {
		t.Fatalf("chance 9 should succeed, got %v", win.Outcome)
	}
}

func TestResolveRobberyProtectionBeatsPadlock(t *testing.T) {
	rolls := robRolls{protectedPercent: 3, padlockPercent: 30, chance: 19}
	got := resolveRobbery(1000, 2000, true, true, rolls)
	if got.Outcome != RobOutcomeProtected {
		t.Fatalf("protection must settle before padlock, got %v", got.Outcome)
	}
}

func TestResolveRobberyTransferNeverExceedsSource(t *testing.T) {
	for percent := 5; percent <= 39; percent++ {
		got := resolveRobbery(1000, 2000, false, false, robRolls{chance: 9, successPercent: percent})
		if got.Amount < 0 || got.Amount > 2000 {
			t.Fatalf("success percent %d moved %d, outside [0,2000]", percent, got.Amount)
		}
	}
	for percent := 5; percent <= 24; percent++ {
		got := resolveRobbery(1000, 2000, false, false, robRolls{chance: 0, failPercent: percent})
		if got.Amount < 0 || got.Amount > 1000 {
			t.Fatalf("fail percent %d moved %d, outside [0,1000]", percent, got.Amount)
		}
	}
}

func TestDrawRobRollsRanges(t *testing.T) {
	s := &Service{rand: mathrand.New(mathrand.NewSource(1))}
	for i := 0; i < 1000; i++ {
		rolls := s.drawRobRolls()
		if rolls.protectedPercent < 1 || rolls.protectedPercent > 9 {
			t.Fatalf("protectedPercent %d out of [1,9]", rolls.protectedPercent)
		}
		if rolls.padlockPercent < 5 || rolls.padlockPercent > 39 {
			t.Fatalf("padlockPercent %d out of [5,39]", rolls.padlockPercent)
		}
		if rolls.chance < 0 || rolls.chance > 19 {
			t.Fatalf("chance %d out of [0,19]", rolls.chance)
		}
		if rolls.successPercent < 5 || rolls.successPercent > 39 {
			t.Fatalf("successPercent %d out of [5,39]", rolls.successPercent)
		}
		if rolls.failPercent < 5 || rolls.failPercent > 24 {
			t.Fatalf("failPercent %d out of [5,24]", rolls.failPercent)
		}
	}
}

func TestAttemptRobberyCooldownBeforeTargetChecks(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	defer store.Close()
	s := &Service{cooldowns: NewCooldowns(store)}

	if err := s.cooldowns.Start(ctx, "actor"); err != nil {
		t.Fatalf("start cooldown: %v", err)
	}

	// A bad target must not mask the cooldown rejection.
	var cd *CooldownError
	if _, err := s.AttemptRobbery(ctx, "actor", ""); !errors.As(err, &cd) {
		t.Fatalf("on cooldown with empty target, err = %v, want CooldownError", err)
	}
	if _, err := s.AttemptRobbery(ctx, "actor", "actor"); !errors.As(err, &cd) {
		t.Fatalf("on cooldown with self target, err = %v, want CooldownError", err)
	}
}

func TestAttemptRobberyTargetValidationOffCooldown(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	defer store.Close()
	s := &Service{cooldowns: NewCooldowns(store)}

	if _, err := s.AttemptRobbery(ctx, "actor", ""); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("empty target err = %v, want ErrInvalidTarget", err)
	}
	if _, err := s.AttemptRobbery(ctx, "actor", "actor"); !errors.Is(err, ErrSelfTarget) {
		t.Fatalf("self target err = %v, want ErrSelfTarget", err)
	}
}

func TestFormatShortDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: 4*time.Minute + 20*time.Second, want: "4m20s"},
		{d: 35 * time.Second, want: "35s"},
		{d: 10 * time.Minute, want: "10m0s"},
		{d: 0, want: "0s"},
	}
	for _, tc := range tests {
		if got := FormatShortDuration(tc.d); got != tc.want {
			t.Fatalf("FormatShortDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
