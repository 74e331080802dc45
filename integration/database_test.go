//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer starts a container and returns its host:port for the given port.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, port)
	require.NoError(t, err)
	return host, mapped.Port()
}

// exerciseBackends runs a tracked ranking and then the cache and analysis
// management commands against the configured backends.
func exerciseBackends(t *testing.T, env map[string]string) {
	t.Helper()

	_, err := runGridiron(t, env, "cache", "clear")
	require.NoError(t, err)

	_, err = runGridiron(t, env, "analysis", "clear")
	require.NoError(t, err)

	_, err = runGridiron(t, env, "analysis", "migrate")
	require.NoError(t, err)

	_, err = runGridiron(t, env, "rank", "--snapshot", leagueSnapshot, "--limit", "5")
	require.NoError(t, err)

	out, err := runGridiron(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Connected: true")

	out, err = runGridiron(t, env, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total Runs: 1")
}

// TestGridironWithMySQL tests the gridiron CLI with a MySQL backend.
func TestGridironWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gridiron",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/gridiron?parseTime=true", host, port)
	exerciseBackends(t, map[string]string{
		"GRIDIRON_CACHE_BACKEND":       "mysql",
		"GRIDIRON_CACHE_DB_CONNECT":    connStr,
		"GRIDIRON_ANALYSIS_BACKEND":    "mysql",
		"GRIDIRON_ANALYSIS_DB_CONNECT": connStr,
	})
}

// TestGridironWithPostgres tests the gridiron CLI with a PostgreSQL backend.
func TestGridironWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}, "5432")

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port)
	exerciseBackends(t, map[string]string{
		"GRIDIRON_CACHE_BACKEND":       "postgresql",
		"GRIDIRON_CACHE_DB_CONNECT":    connStr,
		"GRIDIRON_ANALYSIS_BACKEND":    "postgresql",
		"GRIDIRON_ANALYSIS_DB_CONNECT": connStr,
	})
}

// TestGridironWithRedis tests the Redis provider cache next to SQLite run tracking.
func TestGridironWithRedis(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}, "6379")

	exerciseBackends(t, map[string]string{
		"GRIDIRON_CACHE_BACKEND":       "redis",
		"GRIDIRON_CACHE_DB_CONNECT":    fmt.Sprintf("redis://%s:%s/0", host, port),
		"GRIDIRON_ANALYSIS_BACKEND":    "sqlite",
		"GRIDIRON_ANALYSIS_DB_CONNECT": t.TempDir() + "/analysis.db",
	})
}
