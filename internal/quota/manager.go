package quota

import (
	"context"
	"errors"
	"time"
)

// ErrDailyLimitReached means the user has no analyses left today. The limit
// resets at the next UTC midnight.
var ErrDailyLimitReached = errors.New("daily analysis limit reached")

const DefaultDailyLimit = 10

// Status is the caller-visible quota snapshot.
type Status struct {
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Date      string `json:"date"`
}

// Manager enforces the per-user daily analysis ceiling. Quota is only
// consumed after a successful analysis: Allow pre-checks the counter, Commit
// records the usage afterwards.
type Manager struct {
	repo  Repository
	limit int
	now   func() time.Time
}

func NewManager(repo Repository, limit int) *Manager {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &Manager{repo: repo, limit: limit, now: time.Now}
}

// today returns the current UTC calendar day at midnight.
func (m *Manager) today() time.Time {
	return m.now().UTC().Truncate(24 * time.Hour)
}

// Allow returns ErrDailyLimitReached when the user's counter has hit the
// ceiling. It does not reserve anything; two racing requests may both pass
// and overshoot by one, which is an accepted bound.
func (m *Manager) Allow(ctx context.Context, userID string) error {
	used, err := m.repo.Used(ctx, userID, m.today())
	if err != nil {
		return err
	}
	if used >= m.limit {
		return ErrDailyLimitReached
	}
	return nil
}

// Commit records one completed analysis against today's counter.
func (m *Manager) Commit(ctx context.Context, userID string) error {
	return m.repo.Increment(ctx, userID, m.today())
}

// Snapshot reports the user's current usage for the quota endpoint.
func (m *Manager) Snapshot(ctx context.Context, userID string) (Status, error) {
	day := m.today()
	used, err := m.repo.Used(ctx, userID, day)
	if err != nil {
		return Status{}, err
	}
	remaining := m.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Used:      used,
		Limit:     m.limit,
		Remaining: remaining,
		Date:      day.Format("2006-01-02"),
	}, nil
}
