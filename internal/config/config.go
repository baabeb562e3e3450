package config

import (
	"os"
	"strings"
	"time"
)

// Config holds process settings read from FOLLOWUP_* environment variables.
type Config struct {
	DBPath    string
	LogLevel  string
	LogFormat string
	TimeZone  string
	BackupDir string
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Load reads the environment, falling back to defaults for unset keys.
func Load() Config {
	return Config{
		DBPath:    getEnv("FOLLOWUP_DB", "contacts.db"),
		LogLevel:  getEnv("FOLLOWUP_LOG_LEVEL", "info"),
		LogFormat: getEnv("FOLLOWUP_LOG_FORMAT", "console"),
		TimeZone:  getEnv("FOLLOWUP_TZ", "America/Sao_Paulo"),
		BackupDir: getEnv("FOLLOWUP_BACKUP_DIR", "."),
	}
}

// brt is Brasília time without DST, used when tzdata is missing.
var brt = time.FixedZone("BRT", -3*60*60)

// Location resolves TimeZone. An unknown zone falls back to UTC-3 so "today"
// still matches the school's calendar.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return brt
	}
	return loc
}
