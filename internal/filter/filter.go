// Package filter turns user-facing search criteria into a typed query
// descriptor. Only this package constructs descriptors; the store renders
// them into SQL.
package filter

import (
	"strings"
	"time"

	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/normalize"
)

// Criteria is one search request. Empty fields and the models.All sentinel
// leave a field unrestricted.
type Criteria struct {
	Name       string
	Phone      string
	AttendedBy string
	Course     string
	Status     string
	VisitFrom  string // DD/MM/YYYY or ddmmyyyy
	VisitTo    string
}

// Op is the comparison a Term applies to its column.
type Op int

const (
	// Contains is a case-insensitive substring match. Value: string.
	// SQLite LIKE folds ASCII letters only, so "érica" does not match "ÉRICA".
	Contains Op = iota
	// DigitsContain matches the digits of the stored value. Value: digit string.
	DigitsContain
	// Equals is exact equality. Value: string.
	Equals
	// OnOrAfter / OnOrBefore / Between compare calendar dates. Values: time.Time.
	OnOrAfter
	OnOrBefore
	Between
)

// Arity is the number of values a term with this operator carries.
func (o Op) Arity() int {
	if o == Between {
		return 2
	}
	return 1
}

func (o Op) String() string {
	switch o {
	case Contains:
		return "contains"
	case DigitsContain:
		return "digits-contain"
	case Equals:
		return "equals"
	case OnOrAfter:
		return "on-or-after"
	case OnOrBefore:
		return "on-or-before"
	case Between:
		return "between"
	}
	return "unknown"
}

// Term is one predicate on one column.
type Term struct {
	Column string
	Op     Op
	Values []any
}

// Descriptor is an ordered conjunction of terms. The zero value selects
// every contact.
type Descriptor struct {
	terms []Term
}

// OrderBy is applied to every contact query.
const OrderBy = "id DESC"

// Terms returns a copy of the terms in build order.
func (d Descriptor) Terms() []Term {
	out := make([]Term, len(d.terms))
	copy(out, d.terms)
	return out
}

// Empty reports whether d selects every contact.
func (d Descriptor) Empty() bool { return len(d.terms) == 0 }

func (d *Descriptor) add(column string, op Op, values ...any) {
	d.terms = append(d.terms, Term{Column: column, Op: op, Values: values})
}

// Build validates c and produces its descriptor. Text criteria go through
// normalize.Text so they compare equal to stored values. An unparseable
// visit-date bound fails the whole build.
func Build(c Criteria) (Descriptor, error) {
	var d Descriptor

	if name := normalize.Text(c.Name); name != "" {
		d.add("name", Contains, name)
	}
	if digits := normalize.Digits(c.Phone); digits != "" {
		d.add("phone", DigitsContain, digits)
	}
	if v := normalize.Text(c.AttendedBy); !models.IsAll(v) {
		d.add("attended_by", Equals, v)
	}
	if v := normalize.Text(c.Course); !models.IsAll(v) {
		d.add("course", Equals, v)
	}
	if v := normalize.Text(c.Status); !models.IsAll(v) {
		d.add("status", Equals, v)
	}

	from, hasFrom, err := bound("visit_from", c.VisitFrom)
	if err != nil {
		return Descriptor{}, err
	}
	to, hasTo, err := bound("visit_to", c.VisitTo)
	if err != nil {
		return Descriptor{}, err
	}
	switch {
	case hasFrom && hasTo:
		d.add("visit_date", Between, from, to)
	case hasFrom:
		d.add("visit_date", OnOrAfter, from)
	case hasTo:
		d.add("visit_date", OnOrBefore, to)
	}
	return d, nil
}

func bound(field, s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	t, ok := normalize.ParseDate(s)
	if !ok {
		return time.Time{}, false, models.Invalid(field, "invalid date "+s+", use DD/MM/YYYY")
	}
	return t, true, nil
}
