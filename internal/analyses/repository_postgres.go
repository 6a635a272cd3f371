package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veenakrishnan01/menu-analyser/internal/analysis"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Save(ctx context.Context, record *Record) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	payload, err := json.Marshal(record.Results)
	if err != nil {
		return fmt.Errorf("marshal analysis results: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO menu_analyses
		   (id, user_id, business_name, menu_source, menu_url, menu_file_name, analysis_results, revenue_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		record.ID, record.UserID, record.BusinessName, string(record.MenuSource),
		record.MenuURL, record.MenuFileName, payload, record.RevenueScore,
	).Scan(&record.CreatedAt)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, COALESCE(business_name, ''), menu_source,
		        COALESCE(menu_url, ''), COALESCE(menu_file_name, ''),
		        analysis_results, revenue_score, created_at
		 FROM menu_analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(business_name, ''), menu_source,
		        COALESCE(menu_url, ''), COALESCE(menu_file_name, ''),
		        analysis_results, revenue_score, created_at
		 FROM menu_analyses
		 WHERE id = $1`,
		id,
	)

	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM menu_analyses WHERE id = $1`, id)
	return err
}

func scanRecord(row pgx.Row) (*Record, error) {
	var record Record
	var source string
	var payload []byte

	err := row.Scan(&record.ID, &record.UserID, &record.BusinessName, &source,
		&record.MenuURL, &record.MenuFileName, &payload, &record.RevenueScore, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.MenuSource = SourceKind(source)
	var results analysis.Result
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, fmt.Errorf("unmarshal analysis results: %w", err)
	}
	record.Results = results
	return &record, nil
}
