package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/epeers/scenarios/internal/scenario"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS scenario_session (
		id        TEXT PRIMARY KEY,
		created   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS scenario (
		seq         BIGSERIAL PRIMARY KEY,
		id          TEXT NOT NULL,
		session_id  TEXT NOT NULL REFERENCES scenario_session(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		assumptions JSONB NOT NULL,
		created     TIMESTAMPTZ NOT NULL,
		UNIQUE (session_id, id)
	);
`

// ScenarioRepository stores session-scoped scenarios in PostgreSQL.
// Rows are removed when their session ends or idles out, so nothing outlives a session.
type ScenarioRepository struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewScenarioRepository creates a new ScenarioRepository
func NewScenarioRepository(pool *pgxpool.Pool, ttl time.Duration) *ScenarioRepository {
	return &ScenarioRepository{pool: pool, ttl: ttl}
}

// EnsureSchema creates the session and scenario tables if missing
func (r *ScenarioRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *ScenarioRepository) ttlSeconds() float64 {
	return r.ttl.Seconds()
}

// CreateSession starts a new empty session
func (r *ScenarioRepository) CreateSession(ctx context.Context) (scenario.Session, error) {
	query := `
		INSERT INTO scenario_session (id, created, last_seen)
		VALUES ($1, NOW(), NOW())
		RETURNING id, created, last_seen
	`
	var s scenario.Session
	err := r.pool.QueryRow(ctx, query, uuid.NewString()).Scan(&s.ID, &s.CreatedAt, &s.LastSeen)
	if err != nil {
		return scenario.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

// TouchSession marks the session active. An idle session is deleted and reported missing.
func (r *ScenarioRepository) TouchSession(ctx context.Context, id string) (scenario.Session, error) {
	query := `
		UPDATE scenario_session
		SET last_seen = NOW()
		WHERE id = $1 AND ($2::float8 <= 0 OR last_seen >= NOW() - make_interval(secs => $2::float8))
		RETURNING id, created, last_seen
	`
	var s scenario.Session
	err := r.pool.QueryRow(ctx, query, id, r.ttlSeconds()).Scan(&s.ID, &s.CreatedAt, &s.LastSeen)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, delErr := r.pool.Exec(ctx, `DELETE FROM scenario_session WHERE id = $1`, id); delErr != nil {
			return scenario.Session{}, fmt.Errorf("failed to drop expired session: %w", delErr)
		}
		return scenario.Session{}, scenario.ErrSessionNotFound
	}
	if err != nil {
		return scenario.Session{}, fmt.Errorf("failed to touch session: %w", err)
	}
	return s, nil
}

// EndSession deletes the session; its scenarios cascade
func (r *ScenarioRepository) EndSession(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scenario_session WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scenario.ErrSessionNotFound
	}
	return nil
}

// SaveScenario inserts rec under the session
func (r *ScenarioRepository) SaveScenario(ctx context.Context, sessionID string, rec scenario.Record) error {
	if _, err := r.TouchSession(ctx, sessionID); err != nil {
		return err
	}

	payload, err := json.Marshal(rec.Assumptions)
	if err != nil {
		return fmt.Errorf("failed to marshal assumptions: %w", err)
	}

	query := `
		INSERT INTO scenario (id, session_id, name, assumptions, created)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.pool.Exec(ctx, query, rec.ID, sessionID, rec.Name, string(payload), rec.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	return nil
}

// SaveScenarios inserts recs under the session in one transaction; either all are stored or none
func (r *ScenarioRepository) SaveScenarios(ctx context.Context, sessionID string, recs []scenario.Record) error {
	if _, err := r.TouchSession(ctx, sessionID); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	query := `
		INSERT INTO scenario (id, session_id, name, assumptions, created)
		VALUES ($1, $2, $3, $4, $5)
	`
	batch := &pgx.Batch{}
	for _, rec := range recs {
		payload, err := json.Marshal(rec.Assumptions)
		if err != nil {
			return fmt.Errorf("failed to marshal assumptions for %q: %w", rec.Name, err)
		}
		batch.Queue(query, rec.ID, sessionID, rec.Name, string(payload), rec.CreatedAt)
	}

	// Start transaction
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	br := tx.SendBatch(ctx, batch)
	for _, rec := range recs {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert scenario %q: %w", rec.Name, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert scenarios: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (scenario.Record, error) {
	var rec scenario.Record
	var payload []byte
	if err := row.Scan(&rec.ID, &rec.Name, &payload, &rec.CreatedAt); err != nil {
		return scenario.Record{}, err
	}
	if err := json.Unmarshal(payload, &rec.Assumptions); err != nil {
		return scenario.Record{}, fmt.Errorf("failed to unmarshal assumptions for %s: %w", rec.ID, err)
	}
	return rec, nil
}

// ListScenarios returns the session's scenarios in save order
func (r *ScenarioRepository) ListScenarios(ctx context.Context, sessionID string) ([]scenario.Record, error) {
	if _, err := r.TouchSession(ctx, sessionID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, assumptions, created
		FROM scenario
		WHERE session_id = $1
		ORDER BY seq ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	records := []scenario.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetScenario looks up one scenario in the session
func (r *ScenarioRepository) GetScenario(ctx context.Context, sessionID, id string) (scenario.Record, error) {
	if _, err := r.TouchSession(ctx, sessionID); err != nil {
		return scenario.Record{}, err
	}

	query := `
		SELECT id, name, assumptions, created
		FROM scenario
		WHERE session_id = $1 AND id = $2
	`
	rec, err := scanRecord(r.pool.QueryRow(ctx, query, sessionID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return scenario.Record{}, scenario.ErrNotFound
	}
	if err != nil {
		return scenario.Record{}, fmt.Errorf("failed to get scenario: %w", err)
	}
	return rec, nil
}

// DeleteScenario removes one scenario from the session
func (r *ScenarioRepository) DeleteScenario(ctx context.Context, sessionID, id string) error {
	if _, err := r.TouchSession(ctx, sessionID); err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM scenario WHERE session_id = $1 AND id = $2`, sessionID, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scenario.ErrNotFound
	}
	return nil
}

// Sweep deletes idle sessions and reports how many were removed
func (r *ScenarioRepository) Sweep(ctx context.Context) (int, error) {
	if r.ttl <= 0 {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM scenario_session WHERE last_seen < NOW() - make_interval(secs => $1::float8)`,
		r.ttlSeconds())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
