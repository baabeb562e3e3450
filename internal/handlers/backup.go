package handlers

import (
	"go.uber.org/zap"

	"github.com/fisk/followup/internal/services"
)

// Backup copies the database file. --dest may be a directory, in which case
// the suggested backup_contacts_<date>.db name is used.
func (a *App) Backup(args []string) error {
	var dest string
	fs := a.flags("backup")
	fs.StringVar(&dest, "dest", a.Cfg.BackupDir, "destination file or directory")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	path, err := services.Backup(a.Cfg.DBPath, dest, a.stamp())
	if err != nil {
		return err
	}
	a.Log.Info("backup written", zap.String("src", a.Cfg.DBPath), zap.String("dest", path))
	a.ok("backup")
	a.println(path)
	return nil
}
