package handlers

import (
	"flag"
	"fmt"
	"strings"

	"github.com/fisk/followup/internal/filter"
	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/services"
)

// formFlags binds one flag per contact field.
func formFlags(fs *flag.FlagSet, f *services.Form) {
	fs.StringVar(&f.Name, "name", "", "full name (required)")
	fs.StringVar(&f.Phone, "phone", "", "phone, digits or formatted")
	fs.StringVar(&f.Email, "email", "", "email")
	fs.StringVar(&f.Course, "course", "", "course of interest")
	fs.StringVar(&f.VisitDate, "visit-date", "", "visit date DD/MM/YYYY or DDMMYYYY")
	fs.StringVar(&f.Status, "status", "", "follow-up status")
	fs.StringVar(&f.MonthlyFee, "fee", "", "quoted monthly fee, e.g. 1.234,50")
	fs.StringVar(&f.HowFound, "how-found", "", "how the lead found the school")
	fs.StringVar(&f.CourseFor, "course-for", "", "who the course is for")
	fs.StringVar(&f.AttendedBy, "attended-by", "", "staff member")
	fs.StringVar(&f.Notes, "notes", "", "free notes")
}

// filterFlags binds the list filter fields.
func filterFlags(fs *flag.FlagSet, c *filter.Criteria) {
	fs.StringVar(&c.Name, "name", "", "name contains (case-insensitive)")
	fs.StringVar(&c.Phone, "phone", "", "phone digits contain")
	fs.StringVar(&c.AttendedBy, "attended-by", "", "attended by (Todos = any)")
	fs.StringVar(&c.Course, "course", "", "course (Todos = any)")
	fs.StringVar(&c.Status, "status", "", "status (Todos = any)")
	fs.StringVar(&c.VisitFrom, "from", "", "visit on or after DD/MM/YYYY")
	fs.StringVar(&c.VisitTo, "to", "", "visit on or before DD/MM/YYYY")
}

// sortOpts is the column sort shared by list and the exports.
type sortOpts struct {
	column string
	desc   bool
}

func sortFlags(fs *flag.FlagSet, o *sortOpts) {
	fs.StringVar(&o.column, "sort", "", "sort by column (default newest first)")
	fs.BoolVar(&o.desc, "desc", false, "sort descending")
}

// search runs the filter and applies the requested sort.
func (a *App) search(c filter.Criteria, o sortOpts) ([]models.Contact, error) {
	rows, err := a.Contacts.Search(c)
	if err != nil {
		return nil, err
	}
	if o.column != "" {
		if err := services.SortContacts(rows, o.column, o.desc); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (a *App) Add(args []string) error {
	var f services.Form
	fs := a.flags("add")
	formFlags(fs, &f)
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	id, err := a.Contacts.Create(f)
	if err != nil {
		return err
	}
	a.ok("saved")
	a.println(fmt.Sprintf("ID: %d", id))
	return nil
}

// Update rewrites only the fields given on the command line; the others keep
// their stored values.
func (a *App) Update(args []string) error {
	var (
		id  uint
		in  services.Form
		set = map[string]bool{}
	)
	fs := a.flags("update")
	fs.UintVar(&id, "id", 0, "contact id")
	formFlags(fs, &in)
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("%w: --id is required", ErrUsage)
	}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	cur, err := a.Contacts.Get(id)
	if err != nil {
		return err
	}
	f := services.FormFrom(cur)
	for name, dst := range map[string]*string{
		"name": &f.Name, "phone": &f.Phone, "email": &f.Email, "course": &f.Course,
		"visit-date": &f.VisitDate, "status": &f.Status, "fee": &f.MonthlyFee,
		"how-found": &f.HowFound, "course-for": &f.CourseFor,
		"attended-by": &f.AttendedBy, "notes": &f.Notes,
	} {
		if set[name] {
			*dst = fs.Lookup(name).Value.String()
		}
	}
	if err := a.Contacts.Save(id, f); err != nil {
		return err
	}
	a.ok("updated")
	return nil
}

func (a *App) Delete(args []string) error {
	var id uint
	fs := a.flags("delete")
	fs.UintVar(&id, "id", 0, "contact id")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("%w: --id is required", ErrUsage)
	}
	if err := a.Contacts.Remove(id); err != nil {
		return err
	}
	a.ok("deleted")
	return nil
}

// List prints the contacts matching the filters, newest first unless --sort
// is given. With --id it prints one contact in full.
func (a *App) List(args []string) error {
	var (
		c  filter.Criteria
		o  sortOpts
		id uint
	)
	fs := a.flags("list")
	filterFlags(fs, &c)
	sortFlags(fs, &o)
	fs.UintVar(&id, "id", 0, "show a single contact")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	if id != 0 {
		got, err := a.Contacts.Get(id)
		if err != nil {
			return err
		}
		return a.printContact(got)
	}
	rows, err := a.search(c, o)
	if err != nil {
		return err
	}
	return a.printContacts(rows)
}

// Distinct prints the choices offered for a filter column, led by Todos.
func (a *App) Distinct(args []string) error {
	fs := a.flags("distinct")
	if err := parse(fs, args, 1); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: distinct needs a column name", ErrUsage)
	}
	a.println(strings.Join(a.Contacts.Choices(fs.Arg(0)), "\n"))
	return nil
}
