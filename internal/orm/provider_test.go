package orm

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedcli/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		EntityManagers: map[string]config.EntityManager{
			"default": {
				Driver: "sqlite",
				DSN:    ":memory:",
			},
			"sharded": {
				Driver: "sqlite",
				DSN:    ":memory:",
				Shards: map[string]string{
					"eu": ":memory:",
					"us": ":memory:",
				},
			},
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveDefaultManager(t *testing.T) {
	p := NewProvider(testConfig(), testLogger())

	s, err := p.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "default", s.Name())
	assert.Equal(t, "sqlite", s.Dialect())
	assert.False(t, s.Connection().SupportsSharding())
	assert.NotNil(t, s.DB())
}

func TestResolveUnknownManager(t *testing.T) {
	p := NewProvider(testConfig(), testLogger())

	_, err := p.Resolve("missing")
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "missing", cfgErr.Manager)
	assert.Contains(t, err.Error(), `entity manager "missing"`)
}

func TestResolveCachesSessions(t *testing.T) {
	p := NewProvider(testConfig(), testLogger())

	first, err := p.Resolve("default")
	require.NoError(t, err)
	second, err := p.Resolve("default")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestBindShard(t *testing.T) {
	p := NewProvider(testConfig(), testLogger())

	s, err := p.Resolve("sharded")
	require.NoError(t, err)
	conn := s.Connection()
	require.True(t, conn.SupportsSharding())

	primary := conn.DB()
	require.NoError(t, conn.BindShard("eu"))
	assert.NotSame(t, primary, conn.DB(), "bound shard should replace the primary handle")

	// Rebinding the same shard reuses the open handle
	bound := conn.DB()
	require.NoError(t, conn.BindShard("eu"))
	assert.Same(t, bound, conn.DB())
}

func TestBindShardUnknownID(t *testing.T) {
	p := NewProvider(testConfig(), testLogger())

	s, err := p.Resolve("sharded")
	require.NoError(t, err)

	err = s.Connection().BindShard("apac")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `shard "apac" is not configured`)
}

func TestOpenDBUnsupportedDriver(t *testing.T) {
	_, err := openDB("oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported driver "oracle"`)
}
