package identity

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "ghostkey.db")
	s, err := NewSQLiteStore(context.Background(), dsn, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_SetGetDelete(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set("ghostkey_address", "0xabc"))
	got, err := s.Get("ghostkey_address")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", got)

	// Overwrite.
	require.NoError(t, s.Set("ghostkey_address", "0xdef"))
	got, err = s.Get("ghostkey_address")
	require.NoError(t, err)
	assert.Equal(t, "0xdef", got)

	require.NoError(t, s.Delete("ghostkey_address"))
	_, err = s.Get("ghostkey_address")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete("ghostkey_address"))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "ghostkey.db")

	s1, err := NewSQLiteStore(context.Background(), dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s1.Set("ghostkey_user_salt", "deadbeef"))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(context.Background(), dsn, logger.Nop())
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get("ghostkey_user_salt")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", got)
}

func TestSQLiteStore_WorksAsDeriverBackend(t *testing.T) {
	s := newTestSQLiteStore(t)
	d := NewDeriver(s, &fakeEpochSource{epoch: 3}, logger.Nop())

	first, err := d.Derive(context.Background(), "subject-db", "token")
	require.NoError(t, err)

	second, err := d.Derive(context.Background(), "subject-db", "token")
	require.NoError(t, err)

	assert.Equal(t, first.Address, second.Address)
	assert.False(t, second.IsNew)
}
