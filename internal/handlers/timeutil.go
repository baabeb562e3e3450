package handlers

import (
	"time"

	"github.com/fisk/followup/internal/normalize"
)

// today is the current calendar date in the configured zone.
func (a *App) today() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return normalize.Day(now(), a.Cfg.Location())
}

// stamp is the wall clock in the configured zone, used to name backups.
func (a *App) stamp() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return now().In(a.Cfg.Location())
}
