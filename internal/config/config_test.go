package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "DB_PATH", "DICTIONARY_FILE", "DEFAULT_WORD_LENGTH",
		"DEFAULT_MAX_GUESSES", "JWT_EXPIRES_DAYS", "APP_ENV", "NODE_ENV", "DEBUG_CANDIDATES",
	} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 5, c.DefaultLength)
	assert.Equal(t, 7, c.DefaultMaxGuesses)
	assert.Equal(t, 14*24*time.Hour, c.JWTExpiry)
	assert.Empty(t, c.DictionaryFile)
	assert.False(t, c.Production)
	assert.False(t, c.ShowCandidates)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_WORD_LENGTH", "8")
	t.Setenv("DEFAULT_MAX_GUESSES", "not-a-number")
	t.Setenv("JWT_EXPIRES_DAYS", "1")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("DEBUG_CANDIDATES", "true")
	t.Setenv("DICTIONARY_FILE", "/tmp/words.txt")

	c := FromEnv()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 8, c.DefaultLength)
	assert.Equal(t, 7, c.DefaultMaxGuesses)
	assert.Equal(t, 24*time.Hour, c.JWTExpiry)
	assert.True(t, c.Production)
	assert.True(t, c.ShowCandidates)
	assert.Equal(t, "/tmp/words.txt", c.DictionaryFile)
}
