package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recognizer/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository stores the local utterance log. Expected schema:
//
//	CREATE TABLE utterance_logs (
//	    id               BIGSERIAL PRIMARY KEY,
//	    query            TEXT NOT NULL,
//	    top_intent       TEXT NOT NULL,
//	    top_score        DOUBLE PRECISION NOT NULL,
//	    intents          JSONB,
//	    response_time_ms INTEGER NOT NULL DEFAULT 0,
//	    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// LogUtterance records one recognition
func (r *PostgresRepository) LogUtterance(ctx context.Context, u *model.Utterance) error {
	query := `
		INSERT INTO utterance_logs (query, top_intent, top_score, intents, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, u.Query, u.TopIntent, u.TopScore, []byte(u.Intents), u.ResponseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log utterance: %w", err)
	}
	return nil
}

// ListUtterances returns a page of the utterance log, newest first
func (r *PostgresRepository) ListUtterances(ctx context.Context, limit, offset int) ([]model.Utterance, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM utterance_logs`); err != nil {
		return nil, 0, fmt.Errorf("failed to count utterances: %w", err)
	}

	utterances := []model.Utterance{}
	query := `
		SELECT id, query, top_intent, top_score, intents, response_time_ms, created_at
		FROM utterance_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	if err := r.db.SelectContext(ctx, &utterances, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list utterances: %w", err)
	}

	return utterances, total, nil
}

// IntentStats aggregates the log per intent
func (r *PostgresRepository) IntentStats(ctx context.Context) ([]model.IntentStats, error) {
	stats := []model.IntentStats{}
	query := `
		SELECT top_intent, COUNT(*) AS count, AVG(top_score) AS avg_score
		FROM utterance_logs
		GROUP BY top_intent
		ORDER BY count DESC
	`
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate intent stats: %w", err)
	}
	return stats, nil
}
