package db

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres(dsn string) *pgxpool.Pool {
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			business_name VARCHAR(255),
			phone VARCHAR(50),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU ANALYSES
	// -------------------------------
	analysesSQL := `
		CREATE TABLE IF NOT EXISTS menu_analyses (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			business_name VARCHAR(255),
			menu_source VARCHAR(10) NOT NULL,
			menu_url VARCHAR(2048),
			menu_file_name VARCHAR(512),
			analysis_results JSONB NOT NULL,
			revenue_score INT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)
	`
	if _, err := db.Exec(ctx, analysesSQL); err != nil {
		return err
	}

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_menu_analyses_user_created
		ON menu_analyses (user_id, created_at DESC)
	`
	if _, err := db.Exec(ctx, indexSQL); err != nil {
		return err
	}

	// -------------------------------
	// DAILY USAGE
	// -------------------------------
	usageSQL := `
		CREATE TABLE IF NOT EXISTS daily_usage (
			user_id UUID NOT NULL,
			usage_date DATE NOT NULL,
			analyses_used INT NOT NULL DEFAULT 0,
			last_analysis_at TIMESTAMP,
			PRIMARY KEY (user_id, usage_date)
		)
	`
	if _, err := db.Exec(ctx, usageSQL); err != nil {
		return err
	}

	log.Println("schema initialized")
	return nil
}
