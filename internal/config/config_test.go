package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"FOLLOWUP_DB", "FOLLOWUP_LOG_LEVEL", "FOLLOWUP_LOG_FORMAT", "FOLLOWUP_TZ", "FOLLOWUP_BACKUP_DIR"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, Config{
		DBPath:    "contacts.db",
		LogLevel:  "info",
		LogFormat: "console",
		TimeZone:  "America/Sao_Paulo",
		BackupDir: ".",
	}, c)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("FOLLOWUP_DB", "/tmp/x.db")
	t.Setenv("FOLLOWUP_LOG_LEVEL", " debug ")
	t.Setenv("FOLLOWUP_TZ", "UTC")
	c := Load()
	assert.Equal(t, "/tmp/x.db", c.DBPath)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "UTC", c.Location().String())
}

func TestLocation_Fallback(t *testing.T) {
	loc := Config{TimeZone: "Nowhere/Special"}.Location()
	_, off := time.Date(2024, 1, 1, 12, 0, 0, 0, loc).Zone()
	assert.Equal(t, -3*60*60, off)
}
