// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message.
type Config struct {
	Env           string  // application environment (e.g. "dev", "prod")
	Port          string  // HTTP port to listen on
	DBUser        string  // database username
	DBPass        string  // database password (optional)
	DBHost        string  // database host address
	DBPort        string  // database port number
	DBName        string  // database name
	JWTSecret     string  // secret used to sign admin access tokens
	AccessTTLMin  int     // admin access token time-to-live in minutes
	BcryptCost    int     // bcrypt cost for the admin credential hash
	AdminEmail    string  // operator login email
	AdminPassword string  // operator login password (hashed at startup)
	Booking       Booking // booking window and rota policy
}

// Booking groups the booking-rule settings. HorizonDays is always
// enforced; the rota rules are opt-in per deployment and default off so
// the core seat/date semantics stand alone.
type Booking struct {
	HorizonDays     int       // bookable window: [today, today+N] inclusive
	WeekdaysOnly    bool      // reject weekend dates
	BatchRotation   bool      // alternate office days between batches
	RotationBase    time.Time // Monday anchoring the week parity
	FloaterRules    bool      // floater seats: tomorrow only, after cutoff
	FloaterOpenHour int       // local hour from which floater seats open
}

// Load reads configuration values from environment variables and
// returns a Config.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:    envInt("BCRYPT_COST", 10),
		AdminEmail:    must("ADMIN_EMAIL"),
		AdminPassword: must("ADMIN_PASSWORD"),
		Booking:       loadBooking(),
	}
}

func loadBooking() Booking {
	return Booking{
		HorizonDays:     envInt("BOOKING_HORIZON_DAYS", 14),
		WeekdaysOnly:    envBool("BOOKING_WEEKDAYS_ONLY", false),
		BatchRotation:   envBool("BOOKING_BATCH_ROTATION", false),
		RotationBase:    envDate("BOOKING_ROTATION_BASE", "2024-01-01"),
		FloaterRules:    envBool("BOOKING_FLOATER_RULES", false),
		FloaterOpenHour: envInt("BOOKING_FLOATER_OPEN_HOUR", 15),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envDate parses a YYYY-MM-DD env var, falling back to def. An
// unparseable value is fatal since a silently wrong rotation anchor
// would misassign every batch.
func envDate(key, def string) time.Time {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		log.Fatalf("invalid date for %s: %q", key, s)
	}
	return t
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
