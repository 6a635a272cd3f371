package quota

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Used(ctx context.Context, userID string, day time.Time) (int, error) {
	var used int
	err := r.pool.QueryRow(ctx,
		`SELECT analyses_used FROM daily_usage WHERE user_id = $1 AND usage_date = $2`,
		userID, day.Format("2006-01-02"),
	).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return used, nil
}

func (r *PostgresRepository) Increment(ctx context.Context, userID string, day time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO daily_usage (user_id, usage_date, analyses_used, last_analysis_at)
		 VALUES ($1, $2, 1, NOW())
		 ON CONFLICT (user_id, usage_date)
		 DO UPDATE SET analyses_used = daily_usage.analyses_used + 1, last_analysis_at = NOW()`,
		userID, day.Format("2006-01-02"),
	)
	return err
}
