package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(t *testing.T) adapter.Config
	}{
		{"empty target", func(_ *testing.T) adapter.Config { return adapter.Config{} }},
		{"memory dsn", func(_ *testing.T) adapter.Config { return adapter.Config{DSN: ":memory:"} }},
		{"file path", func(t *testing.T) adapter.Config {
			return adapter.Config{Path: filepath.Join(t.TempDir(), "diff.db")}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adp := New(nil)
			require.NoError(t, adp.Connect(context.Background(), tt.cfg(t)))
			assert.True(t, adp.IsConnected())
			assert.NoError(t, adp.Close())
			assert.False(t, adp.IsConnected())
		})
	}
}

func TestAdapter_JSONQuery(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, adapter.Config{}))
	defer func() { _ = adp.Close() }()

	conn, err := adp.Conn(ctx)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	var out string
	err = conn.QueryRowContext(ctx, "SELECT json_patch(?, ?)", `{"a":1}`, `{"b":2}`).Scan(&out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":2}`, out)
}

func TestAdapter_Registry(t *testing.T) {
	for _, name := range []string{"sqlite", "sqlite3"} {
		factory, ok := adapter.Get(name)
		require.True(t, ok, "%s should resolve", name)
		adp, ok := factory(nil).(*Adapter)
		require.True(t, ok)
		assert.Equal(t, "sqlite", adp.DialectName())
	}
}
