package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/gridiron/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"provider_cache", false},
		{"_private", false},
		{"Cache2", false},
		{"", true},
		{"2cache", true},
		{"cache; DROP TABLE x", true},
		{"cache-name", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`provider_cache`", quoteTableName("provider_cache", schema.MySQLBackend))
	assert.Equal(t, `"provider_cache"`, quoteTableName("provider_cache", schema.PostgreSQLBackend))
	assert.Equal(t, `"provider_cache"`, quoteTableName("provider_cache", schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$3", placeholder(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?", placeholder(schema.MySQLBackend, 3))
	assert.Equal(t, "$1, $2, $3", placeholderList(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?", placeholderList(schema.SQLiteBackend, 2))
	assert.Equal(t, "", placeholderList(schema.SQLiteBackend, 0))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 600, time.FixedZone("EST", -5*3600))

	stored := formatTime(ts, schema.SQLiteBackend)
	s, ok := stored.(string)
	require.True(t, ok)
	assert.Equal(t, "2025-01-02T08:04:05.0000006Z", s)

	parsed, err := parseSQLiteTime(s)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}

func TestOpenSQL_Unsupported(t *testing.T) {
	_, err := openSQL(schema.RedisBackend, "redis://localhost", "")
	assert.ErrorContains(t, err, "unsupported SQL backend")
}
