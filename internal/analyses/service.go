package analyses

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound means no record exists with the requested id.
	ErrNotFound = errors.New("analysis not found")
	// ErrForbidden means the record exists but belongs to another user.
	ErrForbidden = errors.New("analysis belongs to another user")
)

// Service scopes every read and delete to the requesting user. Ownership
// mismatches are distinguished from missing records so they can be logged
// as access attempts rather than stale links.
type Service struct {
	repo Repository
	log  *logrus.Logger
}

func NewService(repo Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Record, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	if record.UserID != userID {
		s.log.WithFields(logrus.Fields{
			"analysis_id": id,
			"owner_id":    record.UserID,
			"caller_id":   userID,
		}).Warn("cross-user analysis access denied")
		return nil, ErrForbidden
	}
	return record, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
