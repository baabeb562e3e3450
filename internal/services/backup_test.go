package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backupNow = time.Date(2024, 3, 20, 14, 5, 0, 0, time.UTC)

func TestBackupName(t *testing.T) {
	assert.Equal(t, "backup_contacts_2024-03-20_1405.db", BackupName(backupNow))
}

func TestBackup_ByteIdentical(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "contacts.db")
	data := []byte("SQLite format 3\x00 not really, but bytes are bytes")
	require.NoError(t, os.WriteFile(src, data, 0o644))
	mtime := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	path, err := Backup(src, outDir, backupNow)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, BackupName(backupNow)), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, st.ModTime().Equal(mtime))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestBackup_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "contacts.db")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	dest := filepath.Join(dir, "copy.db")
	path, err := Backup(src, dest, backupNow)
	require.NoError(t, err)
	assert.Equal(t, dest, path)
}

func TestBackup_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Backup(filepath.Join(dir, "missing.db"), dir, backupNow)
	assert.ErrorIs(t, err, ErrBackupSourceMissing)

	src := filepath.Join(dir, "contacts.db")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	_, err = Backup(src, filepath.Join(dir, "no", "such", "dir", "b.db"), backupNow)
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
