package services

import (
	"sort"
	"strings"
	"time"

	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/normalize"
)

// SortContacts orders rows in place by column, keeping the current order
// among equal keys. visit_date sorts as a calendar date with blank or
// unparseable dates first, id and monthly_fee numerically (unparseable fees
// count as zero) and every other column as case-insensitive text.
func SortContacts(rows []models.Contact, column string, desc bool) error {
	idx := -1
	for i, c := range models.Columns {
		if c.Name == column {
			idx = i
		}
	}
	if idx < 0 {
		return models.Invalid("sort", "unknown column "+column)
	}

	var less func(a, b models.Contact) bool
	switch column {
	case "id":
		less = func(a, b models.Contact) bool { return a.ID < b.ID }
	case "monthly_fee":
		less = func(a, b models.Contact) bool { return fee(a) < fee(b) }
	case "visit_date":
		less = func(a, b models.Contact) bool { return visit(a).Before(visit(b)) }
	default:
		less = func(a, b models.Contact) bool {
			return strings.ToLower(a.Values()[idx]) < strings.ToLower(b.Values()[idx])
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
	return nil
}

func fee(c models.Contact) float64 {
	v, _ := normalize.MoneyValue(c.MonthlyFee)
	return v
}

// visit is the zero time for blank or unparseable dates, which sorts first.
func visit(c models.Contact) time.Time {
	t, _ := normalize.ParseStoredDate(c.VisitDate)
	return t
}
