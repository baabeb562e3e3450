package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/fisk/followup/internal/filter"
	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/normalize"
)

// Stored phones keep whatever separators were typed; strip them on the fly.
const phoneDigitsExpr = `replace(replace(replace(replace(replace(replace(phone,'(',''),')',''),'-',''),' ',''),'.',''),'+','')`

// visit_date is DD/MM/YYYY text; re-slice it into sortable ISO order. The
// length guard keeps empty dates out of every date comparison.
const (
	visitISOExpr = `(substr(visit_date,7,4)||'-'||substr(visit_date,4,2)||'-'||substr(visit_date,1,2))`
	visitGuard   = `length(visit_date) = 10 AND `
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// fragment is one rendered predicate. Its placeholder count always equals
// len(args); newFragment refuses anything else.
type fragment struct {
	sql  string
	args []any
}

func newFragment(sql string, args ...any) (fragment, error) {
	if n := strings.Count(sql, "?"); n != len(args) {
		return fragment{}, fmt.Errorf("fragment %q: %d placeholders, %d args", sql, n, len(args))
	}
	return fragment{sql: sql, args: args}, nil
}

// whereClause is the only place descriptors become SQL.
func whereClause(d filter.Descriptor) (string, []any, error) {
	var (
		parts []string
		args  []any
	)
	for _, t := range d.Terms() {
		f, err := render(t)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, f.sql)
		args = append(args, f.args...)
	}
	return strings.Join(parts, " AND "), args, nil
}

func render(t filter.Term) (fragment, error) {
	if !models.IsColumn(t.Column) {
		return fragment{}, fmt.Errorf("unknown column %q", t.Column)
	}
	if len(t.Values) != t.Op.Arity() {
		return fragment{}, fmt.Errorf("%s on %s: want %d values, got %d", t.Op, t.Column, t.Op.Arity(), len(t.Values))
	}

	switch t.Op {
	case filter.Contains:
		s, err := stringValue(t, 0)
		if err != nil {
			return fragment{}, err
		}
		return newFragment(t.Column+` LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(s)+"%")

	case filter.DigitsContain:
		s, err := stringValue(t, 0)
		if err != nil {
			return fragment{}, err
		}
		if t.Column != "phone" {
			return fragment{}, fmt.Errorf("digits match only supported on phone, got %s", t.Column)
		}
		return newFragment(phoneDigitsExpr+" LIKE ?", "%"+normalize.Digits(s)+"%")

	case filter.Equals:
		s, err := stringValue(t, 0)
		if err != nil {
			return fragment{}, err
		}
		return newFragment(t.Column+" = ?", s)

	case filter.OnOrAfter, filter.OnOrBefore, filter.Between:
		if t.Column != "visit_date" {
			return fragment{}, fmt.Errorf("date comparison only supported on visit_date, got %s", t.Column)
		}
		dates := make([]any, len(t.Values))
		for i := range t.Values {
			d, ok := t.Values[i].(time.Time)
			if !ok {
				return fragment{}, fmt.Errorf("%s on %s: value %d is %T, want time.Time", t.Op, t.Column, i, t.Values[i])
			}
			dates[i] = normalize.ISODate(d)
		}
		switch t.Op {
		case filter.OnOrAfter:
			return newFragment(visitGuard+visitISOExpr+" >= ?", dates...)
		case filter.OnOrBefore:
			return newFragment(visitGuard+visitISOExpr+" <= ?", dates...)
		default:
			return newFragment(visitGuard+visitISOExpr+" BETWEEN ? AND ?", dates...)
		}
	}
	return fragment{}, fmt.Errorf("unsupported operator %s", t.Op)
}

func stringValue(t filter.Term, i int) (string, error) {
	s, ok := t.Values[i].(string)
	if !ok {
		return "", fmt.Errorf("%s on %s: value %d is %T, want string", t.Op, t.Column, i, t.Values[i])
	}
	return s, nil
}
