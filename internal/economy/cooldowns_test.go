package economy

import (
	"context"
	"testing"
	"time"

	"github.com/cookie-is-yummy/weed/internal/cache"
)

func TestCooldownsLifecycle(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	defer store.Close()
	cd := NewCooldowns(store)

	remaining, err := cd.Remaining(ctx, "actor")
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("fresh actor should have no cooldown, got %v", remaining)
	}

	if err := cd.Start(ctx, "actor"); err != nil {
		t.Fatalf("start: %v", err)
	}
	remaining, err = cd.Remaining(ctx, "actor")
	if err != nil {
		t.Fatalf("remaining after start: %v", err)
	}
	if remaining <= 0 || remaining > RobCooldown {
		t.Fatalf("remaining %v outside (0, %v]", remaining, RobCooldown)
	}
}

func TestCooldownsProtection(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	defer store.Close()
	cd := NewCooldowns(store)

	protected, err := cd.Protected(ctx, "target")
	if err != nil {
		t.Fatalf("protected: %v", err)
	}
	if protected {
		t.Fatalf("target should not start protected")
	}

	if err := cd.Protect(ctx, "target", 30*time.Millisecond); err != nil {
		t.Fatalf("protect: %v", err)
	}
	protected, err = cd.Protected(ctx, "target")
	if err != nil {
		t.Fatalf("protected after flag: %v", err)
	}
	if !protected {
		t.Fatalf("target should be protected")
	}

	time.Sleep(60 * time.Millisecond)
	protected, err = cd.Protected(ctx, "target")
	if err != nil {
		t.Fatalf("protected after expiry: %v", err)
	}
	if protected {
		t.Fatalf("protection should lapse after its window")
	}
}
