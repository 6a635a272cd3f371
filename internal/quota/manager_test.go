package quota

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAllowUnderLimit(t *testing.T) {
	m := NewManager(NewInMemoryRepository(), 3)

	if err := m.Allow(context.Background(), "user-1"); err != nil {
		t.Fatalf("fresh user should be allowed, got %v", err)
	}
}

func TestAllowDeniesAtCeiling(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewInMemoryRepository(), 3)

	for i := 0; i < 3; i++ {
		if err := m.Allow(ctx, "user-1"); err != nil {
			t.Fatalf("analysis %d should be allowed, got %v", i+1, err)
		}
		if err := m.Commit(ctx, "user-1"); err != nil {
			t.Fatalf("commit %d failed: %v", i+1, err)
		}
	}

	err := m.Allow(ctx, "user-1")
	if !errors.Is(err, ErrDailyLimitReached) {
		t.Fatalf("expected ErrDailyLimitReached, got %v", err)
	}
}

func TestAllowWithoutCommitDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewInMemoryRepository(), 1)

	// Repeated pre-checks with no completed analysis never spend quota.
	for i := 0; i < 5; i++ {
		if err := m.Allow(ctx, "user-1"); err != nil {
			t.Fatalf("pre-check %d should pass, got %v", i+1, err)
		}
	}

	status, err := m.Snapshot(ctx, "user-1")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if status.Used != 0 {
		t.Fatalf("expected 0 used, got %d", status.Used)
	}
}

func TestQuotaIsPerUser(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewInMemoryRepository(), 1)

	if err := m.Commit(ctx, "user-1"); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if err := m.Allow(ctx, "user-1"); !errors.Is(err, ErrDailyLimitReached) {
		t.Fatalf("user-1 should be at the ceiling, got %v", err)
	}
	if err := m.Allow(ctx, "user-2"); err != nil {
		t.Fatalf("user-2 should be unaffected, got %v", err)
	}
}

func TestQuotaResetsNextDay(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewInMemoryRepository(), 1)

	now := time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	if err := m.Commit(ctx, "user-1"); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if err := m.Allow(ctx, "user-1"); !errors.Is(err, ErrDailyLimitReached) {
		t.Fatalf("expected ceiling before midnight, got %v", err)
	}

	now = now.Add(20 * time.Minute) // past UTC midnight
	if err := m.Allow(ctx, "user-1"); err != nil {
		t.Fatalf("expected fresh quota after midnight, got %v", err)
	}
}

func TestSnapshotFields(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewInMemoryRepository(), 10)

	for i := 0; i < 4; i++ {
		if err := m.Commit(ctx, "user-1"); err != nil {
			t.Fatalf("commit failed: %v", err)
		}
	}

	status, err := m.Snapshot(ctx, "user-1")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if status.Used != 4 || status.Limit != 10 || status.Remaining != 6 {
		t.Fatalf("unexpected snapshot: %+v", status)
	}
}
