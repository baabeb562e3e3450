package handlers

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fisk/followup/internal/models"
)

func (a *App) println(s string) {
	fmt.Fprintln(a.Out, s)
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
}

// printContacts renders the list view columns, one contact per line.
func (a *App) printContacts(rows []models.Contact) error {
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNome\tTelefone\tCurso\tData da visita\tStatus\tAtendido por")
	for _, c := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, cell(c.Name), cell(c.Phone), cell(c.Course), cell(c.VisitDate), cell(c.Status), cell(c.AttendedBy))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "%d contato(s)\n", len(rows))
	return nil
}

// printContact renders every field of c, one per line.
func (a *App) printContact(c models.Contact) error {
	tw := a.table()
	for i, v := range c.Values() {
		fmt.Fprintf(tw, "%s:\t%s\n", models.Columns[i].Label, cell(v))
	}
	return tw.Flush()
}

// cell keeps multi-line notes on one table row.
func cell(s string) string {
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}
