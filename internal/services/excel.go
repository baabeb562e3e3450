package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/report"
)

const (
	ContactsSheet = "Contatos"
	defaultSheet  = "Sheet1"
)

// WriteContactsXLSX writes contacts as a single-sheet workbook with a styled,
// frozen header row.
func WriteContactsXLSX(w io.Writer, contacts []models.Contact) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := newSheet(f, ContactsSheet); err != nil {
		return err
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	if err := writeHeader(f, ContactsSheet, models.Labels()); err != nil {
		return err
	}
	for i, c := range contacts {
		vals := c.Values()
		row := make([]any, len(vals))
		for j, v := range vals {
			row[j] = v
		}
		if err := setRow(f, ContactsSheet, i+2, row); err != nil {
			return err
		}
	}
	widths := map[string]float64{"A": 8, "B": 30, "C": 18, "D": 28, "E": 20, "L": 40}
	for col, wd := range widths {
		if err := f.SetColWidth(ContactsSheet, col, col, wd); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	if err := f.SetPanes(ContactsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze panes: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Report sheet names.
const (
	SheetVisits  = "Visitas"
	SheetStatus  = "Status"
	SheetSources = "Origem"
	SheetCourses = "Cursos"
)

// WriteReportXLSX writes one sheet per summary of s.
func WriteReportXLSX(w io.Writer, s report.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := newSheet(f, SheetVisits); err != nil {
		return err
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	if err := writeHeader(f, SheetVisits, []string{"Visitas", "Matrículas"}); err != nil {
		return err
	}
	if err := setRow(f, SheetVisits, 2, []any{s.Visits.Visits, s.Visits.Enrollments}); err != nil {
		return err
	}

	for _, sh := range []struct {
		name   string
		label  string
		counts []report.Count
	}{
		{SheetStatus, "Status", s.Status},
		{SheetSources, "Como conheceu", s.Sources},
		{SheetCourses, "Curso", s.Courses},
	} {
		if err := newSheet(f, sh.name); err != nil {
			return err
		}
		if err := writeHeader(f, sh.name, []string{sh.label, "Quantidade", "Percentual"}); err != nil {
			return err
		}
		for i, c := range sh.counts {
			if err := setRow(f, sh.name, i+2, []any{c.Label, c.Count, c.Share}); err != nil {
				return err
			}
		}
		if err := f.SetColWidth(sh.name, "A", "A", 28); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func newSheet(f *excelize.File, name string) error {
	idx, err := f.NewSheet(name)
	if err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	f.SetActiveSheet(idx)
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}
