package memory

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
	c.Set(ctx, "k", 4, 0)
	got, err := c.Get(ctx, "k")
	if err != nil || got != "4" {
		t.Fatalf("expected \"4\", got %q, %v", got, err)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", "v", time.Minute)
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Fatalf("entry expired too early: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expired entry to miss, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry should be evicted, %d left", c.Len())
	}
}

func TestCacheSetSweepsExpiredEntries(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, k, 30*time.Second)
	}
	c.Set(ctx, "keep", "v", 0)

	// still inside the sweep interval: nothing is walked yet
	now = now.Add(45 * time.Second)
	c.Set(ctx, "d", "d", time.Hour)
	if c.Len() != 5 {
		t.Fatalf("expected 5 entries before the sweep, got %d", c.Len())
	}

	now = now.Add(sweepInterval)
	c.Set(ctx, "e", "e", time.Hour)
	if c.Len() != 3 {
		t.Fatalf("expected expired entries swept, %d left", c.Len())
	}
	if _, err := c.Get(ctx, "keep"); err != nil {
		t.Fatalf("entry without expiry was swept: %v", err)
	}
}

func TestCacheGetKeepsRefreshedEntry(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", "old", time.Minute)
	now = now.Add(2 * time.Minute)

	// refresh the key after Get has read the stale entry
	c.now = func() time.Time {
		c.now = func() time.Time { return now }
		c.entries["k"] = entry{value: "new", expiresAt: now.Add(time.Hour)}
		return now
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected the stale read to miss, got %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || got != "new" {
		t.Fatalf("refreshed entry was deleted: %q, %v", got, err)
	}
}
