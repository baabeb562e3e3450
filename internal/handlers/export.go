package handlers

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/fisk/followup/internal/filter"
	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/services"
)

// ExportCSV writes the filtered contacts as CSV to --out, or stdout.
func (a *App) ExportCSV(args []string) error {
	var (
		c   filter.Criteria
		o   sortOpts
		out string
	)
	fs := a.flags("export-csv")
	filterFlags(fs, &c)
	sortFlags(fs, &o)
	fs.StringVar(&out, "out", "", "destination file (default stdout)")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	rows, err := a.search(c, o)
	if err != nil {
		return err
	}
	if out == "" {
		return services.WriteCSV(a.Out, rows)
	}
	return a.exportFile(out, rows, services.WriteCSV)
}

// ExportXLSX writes the filtered contacts as a workbook to --out.
func (a *App) ExportXLSX(args []string) error {
	var (
		c   filter.Criteria
		o   sortOpts
		out string
	)
	fs := a.flags("export-xlsx")
	filterFlags(fs, &c)
	sortFlags(fs, &o)
	fs.StringVar(&out, "out", "", "destination .xlsx file")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	if out == "" {
		return fmt.Errorf("%w: --out is required", ErrUsage)
	}
	rows, err := a.search(c, o)
	if err != nil {
		return err
	}
	return a.exportFile(out, rows, services.WriteContactsXLSX)
}

func (a *App) exportFile(path string, rows []models.Contact, write func(io.Writer, []models.Contact) error) error {
	if err := writeFile(path, func(w io.Writer) error { return write(w, rows) }); err != nil {
		return err
	}
	a.Log.Info("contacts exported", zap.String("path", path), zap.Int("rows", len(rows)))
	a.ok("exported")
	a.println(fmt.Sprintf("%s (%d contato(s))", path, len(rows)))
	return nil
}

// writeFile creates path and removes it again if write fails.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
