package analyses

import "context"

// Repository stores analysis records. Reads are always scoped by the
// service to the requesting user.
type Repository interface {
	Save(ctx context.Context, record *Record) error
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
}
