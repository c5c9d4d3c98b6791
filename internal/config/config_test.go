package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/spacetask/internal/config"
)

func TestParse(t *testing.T) {
	t.Run("YAML", func(t *testing.T) {
		s, err := config.Parse([]byte(`
log_level: debug
environment: campus.json
store:
  kind: redis
  redis:
    addr: redis:6379
    ttl: 1h
server:
  port: 9090
metrics: true
place_attributes:
  freeSeats: int
  zone: string
`), "spacetask.yaml")
		require.NoError(t, err)

		assert.Equal(t, "debug", s.LogLevel)
		assert.Equal(t, "campus.json", s.Environment)
		assert.Equal(t, config.StoreRedis, s.Store.Kind)
		assert.Equal(t, "redis:6379", s.Store.Redis.Addr)
		assert.Equal(t, time.Hour, s.Store.Redis.TTL)
		assert.Equal(t, "spacetask:diagram:", s.Store.Redis.Prefix, "defaults survive partial sections")
		assert.Equal(t, 9090, s.Server.Port)
		assert.True(t, s.Metrics)
		assert.Equal(t, "int", s.PlaceAttributes["freeSeats"].Name())
		assert.Equal(t, "${destination}", s.DefaultDestination)
	})

	t.Run("JSON", func(t *testing.T) {
		s, err := config.Parse([]byte(`{"store":{"kind":"file","dir":"/tmp/diagrams"},"default_destination":"TBD"}`), "spacetask.json")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/diagrams", s.Store.Dir)
		assert.Equal(t, "TBD", s.DefaultDestination)
		assert.Equal(t, 8080, s.Server.Port)
	})

	t.Run("Invalid values", func(t *testing.T) {
		cases := map[string]string{
			"Unknown store":      "store:\n  kind: etcd\n",
			"File store no dir":  "store:\n  kind: file\n",
			"Redis without addr": "store:\n  kind: redis\n  redis:\n    addr: \"\"\n",
			"Bad port":           "server:\n  port: 70000\n",
			"Bad level":          "log_level: loud\n",
			"Bad attribute type": "place_attributes:\n  zone: date\n",
			"Malformed":          "store: [",
		}
		for name, raw := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := config.Parse([]byte(raw), "spacetask.yaml")
				assert.Error(t, err)
			})
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("Explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0644))

		s, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", s.LogLevel)
		assert.Equal(t, path, s.Path)
	})

	t.Run("Missing explicit path", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("No default file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		s, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), s)
	})

	t.Run("Default file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "spacetask.json"), []byte(`{"metrics":true}`), 0644))
		t.Chdir(dir)

		s, err := config.Load("")
		require.NoError(t, err)
		assert.True(t, s.Metrics)
		assert.Equal(t, "spacetask.json", s.Path)
	})
}
