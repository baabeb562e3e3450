package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an id names no contact.
	ErrNotFound = errors.New("contact not found")

	// ErrDatabase wraps unexpected driver failures.
	ErrDatabase = errors.New("database error")
)

// mapErr translates gorm and sqlite driver errors into store errors while
// keeping the original in the chain.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return fmt.Errorf("%s: %w (sqlite code %d): %w", op, ErrDatabase, int(se.Code), err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrDatabase, err)
}
