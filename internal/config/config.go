// internal/config/config.go
//
// Environment-driven configuration for the hangman server.
// A .env file in the working directory is loaded first (if present), then
// every setting is read from the environment with a default.
//
// Environment variables:
//   PORT, LOG_LEVEL, DB_PATH, DICTIONARY_FILE,
//   DEFAULT_WORD_LENGTH, DEFAULT_MAX_GUESSES, DAILY_MAX_GUESSES, DAILY_SALT,
//   JWT_SECRET, JWT_EXPIRES_DAYS, COOKIE_NAME, CLIENT_ORIGIN,
//   NODE_ENV / APP_ENV, DEBUG_CANDIDATES

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const devSecret = "dev_secret_change_me"

// Config holds every tunable of the server.
type Config struct {
	Port     string
	LogLevel string
	DBPath   string

	DictionaryFile    string // empty means the embedded list
	DefaultLength     int
	DefaultMaxGuesses int
	DailyMaxGuesses   int
	DailySalt         string

	JWTSecret      string
	JWTExpiry      time.Duration
	CookieName     string
	AnonCookie     string
	ClientOrigin   string
	Production     bool
	ShowCandidates bool // expose candidate lists on ?debug=1
}

// Load reads .env (if any) and the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment without touching .env files.
func FromEnv() Config {
	env := strings.ToLower(getEnv("APP_ENV", getEnv("NODE_ENV", "development")))
	c := Config{
		Port:     getEnv("PORT", "5175"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DBPath:   getEnv("DB_PATH", "./data/hangman.db"),

		DictionaryFile:    os.Getenv("DICTIONARY_FILE"),
		DefaultLength:     getInt("DEFAULT_WORD_LENGTH", 5),
		DefaultMaxGuesses: getInt("DEFAULT_MAX_GUESSES", 7),
		DailyMaxGuesses:   getInt("DAILY_MAX_GUESSES", 6),
		DailySalt:         getEnv("DAILY_SALT", "local_dev_salt"),

		JWTSecret:      getEnv("JWT_SECRET", devSecret),
		JWTExpiry:      time.Duration(getInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:     getEnv("COOKIE_NAME", "hangman_token"),
		AnonCookie:     "hangman_anon",
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:     env == "production",
		ShowCandidates: getBool("DEBUG_CANDIDATES", false),
	}
	if c.Production && c.JWTSecret == devSecret {
		log.Warn().Msg("JWT_SECRET is not set in production; using the development secret")
	}
	return c
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return n
}

func getBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("invalid boolean, using default")
		return def
	}
	return b
}
