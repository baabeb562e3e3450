package db

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN parameters for the contacts file. The rollback journal is kept so the
// single file is always a complete image for byte-for-byte backups.
const dsnParams = "?_journal_mode=DELETE&_busy_timeout=5000&_foreign_keys=on"

const baseTable = `
	CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL, phone TEXT, email TEXT, course TEXT,
		visit_date TEXT, status TEXT, followup_date TEXT, notes TEXT
	)`

// OptionalColumns were added after the first release and are created on
// demand so older files keep their data.
var OptionalColumns = []string{"monthly_fee", "how_found", "course_for", "attended_by"}

type Options struct {
	Path     string
	LogLevel logger.LogLevel
}

// Open opens (creating if needed) the contacts file and brings its schema up
// to date.
func Open(opts Options, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	level := opts.LogLevel
	if level == 0 {
		level = logger.Silent
	}
	// SQL traces go through zap so stdout stays free for command output.
	gormLog := logger.New(zap.NewStdLog(log), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
	conn, err := gorm.Open(sqlite.Open(opts.Path+dsnParams), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Path, err)
	}

	// One user, one writer: a single pooled connection is acquired and
	// released by each statement.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := EnsureSchema(conn, log); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Debug("database ready (sqlite)", zap.String("path", opts.Path))
	return conn, nil
}

// Close releases the underlying pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureSchema creates the base table and additively adds any missing
// optional column. It never drops or rewrites existing data.
func EnsureSchema(conn *gorm.DB, log *zap.Logger) error {
	if err := conn.Exec(baseTable).Error; err != nil {
		return fmt.Errorf("create contacts: %w", err)
	}
	have, err := Columns(conn)
	if err != nil {
		return err
	}
	for _, col := range OptionalColumns {
		if have[col] {
			continue
		}
		if err := conn.Exec("ALTER TABLE contacts ADD COLUMN " + col + " TEXT").Error; err != nil {
			return fmt.Errorf("add column %s: %w", col, err)
		}
		log.Info("added missing column", zap.String("column", col))
	}

	// Indexes for the exact-match filters.
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_contacts_status      ON contacts(status)")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_contacts_attended_by ON contacts(attended_by)")
	return nil
}

// Columns returns the column names currently present on the contacts table.
func Columns(conn *gorm.DB) (map[string]bool, error) {
	rows, err := conn.Raw("PRAGMA table_info(contacts)").Rows()
	if err != nil {
		return nil, fmt.Errorf("table_info: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("table_info scan: %w", err)
		}
		out[name] = true
	}
	return out, rows.Err()
}
