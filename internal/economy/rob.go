package economy

import (
	"context"
	"math"
	"time"
)

// RobOutcome is the resolved result of a robbery attempt that cleared the
// preconditions.
type RobOutcome int

const (
	// RobOutcomeProtected: the target was robbed recently; the actor pays.
	RobOutcomeProtected RobOutcome = iota
	// RobOutcomePadlock: the target's padlock absorbed the attempt and broke.
	RobOutcomePadlock
	// RobOutcomeSuccess: money moves target -> actor.
	RobOutcomeSuccess
	// RobOutcomeFailure: caught; money moves actor -> target.
	RobOutcomeFailure
)

// RobberyResult describes one settled robbery attempt. Amount is the money
// moved, except for the padlock branch where it is display-only (what would
// have been stolen).
type RobberyResult struct {
	Outcome       RobOutcome
	Percent       int
	Amount        int64
	XPBonus       bool
	ActorBalance  int64
	TargetBalance int64
	ProtectedFor  time.Duration
}

// robRolls carries every random draw a robbery can consume, so outcome
// resolution stays deterministic under test.
type robRolls struct {
	protectedPercent int // uniform [1,9]
	padlockPercent   int // uniform [5,39]
	chance           int // uniform [0,19], success when > 8
	successPercent   int // uniform [5,39]
	failPercent      int // uniform [5,24]
}

// percentOf rounds bal * percent/100 to the nearest whole currency unit.
func percentOf(bal int64, percent int) int64 {
	return int64(math.Round(float64(bal) * float64(percent) / 100))
}

// resolveRobbery settles an attempt against the given balances and state.
// Branch precedence: recent-victim protection, then padlock, then the chance
// roll. Balances in the result are post-transfer.
func resolveRobbery(actorBal, targetBal int64, protected, padlock bool, rolls robRolls) RobberyResult {
	switch {
	case protected:
		amount := percentOf(actorBal, rolls.protectedPercent)
		return RobberyResult{
			Outcome:       RobOutcomeProtected,
			Percent:       rolls.protectedPercent,
			Amount:        amount,
			ActorBalance:  actorBal - amount,
			TargetBalance: targetBal + amount,
		}
	case padlock:
		// Computed for the "they would have stolen" message only.
		amount := percentOf(actorBal, rolls.padlockPercent)
		return RobberyResult{
			Outcome:       RobOutcomePadlock,
			Percent:       rolls.padlockPercent,
			Amount:        amount,
			ActorBalance:  actorBal,
			TargetBalance: targetBal,
		}
	case rolls.chance > 8:
		amount := percentOf(targetBal, rolls.successPercent)
		return RobberyResult{
			Outcome:       RobOutcomeSuccess,
			Percent:       rolls.successPercent,
			Amount:        amount,
			ActorBalance:  actorBal + amount,
			TargetBalance: targetBal - amount,
		}
	default:
		amount := percentOf(actorBal, rolls.failPercent)
		return RobberyResult{
			Outcome:       RobOutcomeFailure,
			Percent:       rolls.failPercent,
			Amount:        amount,
			ActorBalance:  actorBal - amount,
			TargetBalance: targetBal + amount,
		}
	}
}

func (s *Service) drawRobRolls() robRolls {
	return robRolls{
		protectedPercent: s.rollInt(9) + 1,
		padlockPercent:   s.rollInt(35) + 5,
		chance:           s.rollInt(20),
		successPercent:   s.rollInt(35) + 5,
		failPercent:      s.rollInt(20) + 5,
	}
}

// AttemptRobbery runs one robbery of target by actor. Preconditions are
// checked in order and the first failure returns without mutating anything;
// once they pass the actor's cooldown starts unconditionally and the attempt
// settles. The two balance writes are independent read-then-write updates.
func (s *Service) AttemptRobbery(ctx context.Context, actorID, targetID string) (*RobberyResult, error) {
	remaining, err := s.cooldowns.Remaining(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, &CooldownError{Remaining: remaining}
	}

	if targetID == "" {
		return nil, ErrInvalidTarget
	}
	if targetID == actorID {
		return nil, ErrSelfTarget
	}

	targetExists, err := s.AccountExists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !targetExists {
		return nil, ErrTargetFunds
	}
	targetBal, err := s.Balance(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if targetBal <= MinTargetBalance {
		return nil, ErrTargetFunds
	}
	actorBal, err := s.Balance(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actorBal < MinActorBalance {
		return nil, ErrActorFunds
	}

	if err := s.cooldowns.Start(ctx, actorID); err != nil {
		return nil, err
	}

	protected, err := s.cooldowns.Protected(ctx, targetID)
	if err != nil {
		return nil, err
	}
	padlock, err := s.HasPadlock(ctx, targetID)
	if err != nil {
		return nil, err
	}

	result := resolveRobbery(actorBal, targetBal, protected, padlock, s.drawRobRolls())

	switch result.Outcome {
	case RobOutcomeProtected:
		if err := s.UpdateBalance(ctx, targetID, result.TargetBalance); err != nil {
			return nil, err
		}
		if err := s.UpdateBalance(ctx, actorID, result.ActorBalance); err != nil {
			return nil, err
		}
		if err := s.appendTransfer(ctx, actorID, targetID, result.Amount, "rob_protected"); err != nil {
			return nil, err
		}
	case RobOutcomePadlock:
		// The padlock breaks whether or not the attempt would have landed.
		if err := s.SetPadlock(ctx, targetID, false); err != nil {
			return nil, err
		}
	case RobOutcomeSuccess:
		if err := s.UpdateBalance(ctx, targetID, result.TargetBalance); err != nil {
			return nil, err
		}
		if err := s.UpdateBalance(ctx, actorID, result.ActorBalance); err != nil {
			return nil, err
		}
		if err := s.appendTransfer(ctx, targetID, actorID, result.Amount, "rob_success"); err != nil {
			return nil, err
		}

		multi, err := s.VoteMultiplier(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if multi > 0 {
			xp, err := s.XP(ctx, actorID)
			if err != nil {
				return nil, err
			}
			if err := s.UpdateXP(ctx, actorID, xp+1); err != nil {
				return nil, err
			}
			result.XPBonus = true
		}

		minutes := s.rollInt(ProtectionMaxMinutes-ProtectionMinMinutes+1) + ProtectionMinMinutes
		result.ProtectedFor = time.Duration(minutes) * time.Minute
		if err := s.cooldowns.Protect(ctx, targetID, result.ProtectedFor); err != nil {
			return nil, err
		}
	case RobOutcomeFailure:
		if err := s.UpdateBalance(ctx, targetID, result.TargetBalance); err != nil {
			return nil, err
		}
		if err := s.UpdateBalance(ctx, actorID, result.ActorBalance); err != nil {
			return nil, err
		}
		if err := s.appendTransfer(ctx, actorID, targetID, result.Amount, "rob_failed"); err != nil {
			return nil, err
		}
	}

	return &result, nil
}
