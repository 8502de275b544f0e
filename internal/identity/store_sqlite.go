package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/migrations"
)

const (
	upsertKV = `
		INSERT INTO kv (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP;`

	selectKV = `SELECT value FROM kv WHERE key = $1;`

	deleteKV = `DELETE FROM kv WHERE key = $1;`
)

// SQLiteStore is the durable [KeyValueStore] backing real client sessions.
// A single active session per database file is assumed; concurrent writers
// from separate processes are a documented limitation.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
}

// NewSQLiteStore opens (creating if necessary) the SQLite database at dsn,
// runs schema migrations and returns the store.
func NewSQLiteStore(ctx context.Context, dsn string, log *logger.Logger) (*SQLiteStore, error) {
	if err := createLocalDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error connecting database (ping)")
		return nil, err
	}

	if err = migrations.Migrate(conn); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.Debug().Str("func", "NewSQLiteStore").Msg("connected to local store")
	return &SQLiteStore{db: conn, log: log}, nil
}

// Get implements [KeyValueStore].
func (s *SQLiteStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(selectKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set implements [KeyValueStore].
func (s *SQLiteStore) Set(key, value string) error {
	if _, err := s.db.Exec(upsertKV, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete implements [KeyValueStore].
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(deleteKV, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dbFile == ":memory:" {
		return nil
	}
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
