package identity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the identity as a single row keyed by a fixed slot,
// for deployments that already run a database.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed identity store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load reads the persisted identity and its registration outcome.
func (s *PostgresStore) Load(ctx context.Context) (Record, error) {
	row := s.db.QueryRow(ctx, `SELECT account_id, registered FROM app_identity WHERE slot = 0`)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.Registered); err != nil {
		if err == pgx.ErrNoRows {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if rec.ID == "" {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Save upserts the identity row.
func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, `INSERT INTO app_identity (slot, account_id, registered, created_at)
        VALUES (0, $1, $2, now())
        ON CONFLICT (slot) DO UPDATE SET account_id = $1, registered = $2`, rec.ID, rec.Registered)
	return err
}
