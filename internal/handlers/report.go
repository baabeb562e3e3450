package handlers

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/fisk/followup/internal/normalize"
	"github.com/fisk/followup/internal/report"
	"github.com/fisk/followup/internal/services"
)

// Report prints the four dashboard summaries for the chosen period, and
// optionally saves them as a workbook.
func (a *App) Report(args []string) error {
	var (
		period string
		c      report.Criteria
		xlsx   string
	)
	fs := a.flags("report")
	fs.StringVar(&period, "period", string(report.Last30Days), "one of "+periodList())
	fs.StringVar(&c.Start, "start", "", "custom period start DD/MM/YYYY")
	fs.StringVar(&c.End, "end", "", "custom period end DD/MM/YYYY (default today)")
	fs.StringVar(&c.Attendant, "attendant", "", "attended by (Todos = any)")
	fs.StringVar(&c.Course, "course", "", "course (Todos = any)")
	fs.StringVar(&xlsx, "xlsx", "", "also write the summaries to this .xlsx file")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	c.Period = report.Period(period)
	c.Today = a.today()

	ds, err := a.Store.ExportAll()
	if err != nil {
		return err
	}
	s, err := report.Build(ds, c)
	if err != nil {
		return err
	}
	if err := a.printSummary(s); err != nil {
		return err
	}
	if xlsx != "" {
		if err := writeFile(xlsx, func(w io.Writer) error { return services.WriteReportXLSX(w, s) }); err != nil {
			return err
		}
		a.Log.Info("report exported", zap.String("path", xlsx))
		a.ok("exported")
		a.println(xlsx)
	}
	return nil
}

func (a *App) printSummary(s report.Summary) error {
	from := "início"
	if s.Window.HasFrom {
		from = normalize.DateString(s.Window.From)
	}
	a.println(fmt.Sprintf("Período: %s a %s (%d contato(s))", from, normalize.DateString(s.Window.To), s.Rows))
	a.println("")

	a.println(fmt.Sprintf("Visitas: %d  Matrículas: %d", s.Visits.Visits, s.Visits.Enrollments))
	for _, sec := range []struct {
		title  string
		counts []report.Count
	}{
		{"Status", s.Status},
		{"Como conheceu", s.Sources},
		{"Cursos mais procurados", s.Courses},
	} {
		a.println("")
		a.println(sec.title)
		if len(sec.counts) == 0 {
			a.println("  sem dados")
			continue
		}
		tw := a.table()
		for _, c := range sec.counts {
			fmt.Fprintf(tw, "  %s\t%d\t%.1f%%\n", c.Label, c.Count, c.Share*100)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func periodList() string {
	out := make([]string, len(report.Periods))
	for i, p := range report.Periods {
		out[i] = string(p)
	}
	return strings.Join(out, ", ")
}
