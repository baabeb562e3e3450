package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

// Duplicates lists contacts sharing a phone or email. --delete removes the
// given ids afterwards.
func (a *App) Duplicates(args []string) error {
	var del string
	fs := a.flags("duplicates")
	fs.StringVar(&del, "delete", "", "comma-separated ids to delete")
	if err := parse(fs, args, 0); err != nil {
		return err
	}

	if del != "" {
		ids, err := parseIDs(del)
		if err != nil {
			return err
		}
		n, err := a.Contacts.ResolveDuplicates(ids)
		if err != nil {
			return err
		}
		a.println(fmt.Sprintf("%d contato(s) excluído(s).", n))
		return nil
	}

	dups, err := a.Contacts.Duplicates()
	if err != nil {
		return err
	}
	if len(dups) == 0 {
		a.println("Nenhum contato duplicado.")
		return nil
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNome\tTelefone\tEmail\tData da visita")
	for _, d := range dups {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, cell(d.Name), cell(d.Phone), cell(d.Email), cell(d.VisitDate))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.println(fmt.Sprintf("%d possível(is) duplicado(s).", len(dups)))
	return nil
}

func parseIDs(s string) ([]uint, error) {
	var out []uint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("%w: invalid id %q", ErrUsage, part)
		}
		out = append(out, uint(n))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no ids to delete", ErrUsage)
	}
	return out, nil
}
