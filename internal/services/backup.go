package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

var ErrBackupSourceMissing = errors.New("database file not found")

// BackupName is the suggested file name for a backup taken at now.
func BackupName(now time.Time) string {
	return "backup_contacts_" + now.Format("2006-01-02_1504") + ".db"
}

// Backup copies the database file at src byte for byte to dest. When dest is
// an existing directory the suggested name is used inside it. The copy is
// written to a temp file next to dest and renamed into place, so a failure
// never leaves a partial backup. Returns the final path.
func Backup(src, dest string, now time.Time) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrBackupSourceMissing, src)
		}
		return "", fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrBackupSourceMissing, src)
	}
	if st, err := os.Stat(dest); err == nil && st.IsDir() {
		dest = filepath.Join(dest, BackupName(now))
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".backup-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create backup in %s: %w", filepath.Dir(dest), err)
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		return "", fmt.Errorf("copy to %s: %w", dest, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dest, err)
	}
	// keep the source timestamps, like cp -p
	if err := os.Chtimes(tmpName, info.ModTime(), info.ModTime()); err != nil {
		return "", fmt.Errorf("chtimes %s: %w", dest, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return "", fmt.Errorf("rename to %s: %w", dest, err)
	}
	ok = true
	return dest, nil
}
