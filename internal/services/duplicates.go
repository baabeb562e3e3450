package services

import (
	"sort"

	"go.uber.org/zap"

	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/normalize"
)

// Duplicate is a contact that shares its phone digits or its email with at
// least one other contact.
type Duplicate struct {
	models.Contact
	PhoneDigits string
}

// FindDuplicates flags contacts sharing a non-empty digit-extracted phone,
// unioned by id with contacts sharing a non-empty email. The two rules are
// independent: a blank email never prevents a phone match.
func FindDuplicates(contacts []models.Contact) []Duplicate {
	byPhone := map[string][]int{}
	byEmail := map[string][]int{}
	digits := make([]string, len(contacts))
	for i, c := range contacts {
		digits[i] = normalize.Digits(c.Phone)
		if digits[i] != "" {
			byPhone[digits[i]] = append(byPhone[digits[i]], i)
		}
		if e := normalize.Email(c.Email); e != "" {
			byEmail[e] = append(byEmail[e], i)
		}
	}

	flagged := map[uint]int{}
	mark := func(groups map[string][]int) {
		for _, idx := range groups {
			if len(idx) < 2 {
				continue
			}
			for _, i := range idx {
				flagged[contacts[i].ID] = i
			}
		}
	}
	mark(byPhone)
	mark(byEmail)

	out := make([]Duplicate, 0, len(flagged))
	for _, i := range flagged {
		out = append(out, Duplicate{Contact: contacts[i], PhoneDigits: digits[i]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PhoneDigits != out[j].PhoneDigits {
			return out[i].PhoneDigits < out[j].PhoneDigits
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Duplicates scans the whole table.
func (s *Contacts) Duplicates() ([]Duplicate, error) {
	ds, err := s.store.ExportAll()
	if err != nil {
		return nil, err
	}
	return FindDuplicates(ds.Contacts()), nil
}

// ResolveDuplicates deletes the chosen contacts and reports how many went.
func (s *Contacts) ResolveDuplicates(ids []uint) (int64, error) {
	n, err := s.store.DeleteMany(ids)
	if err != nil {
		return 0, err
	}
	s.log.Info("duplicates removed", zap.Int("requested", len(ids)), zap.Int64("deleted", n))
	return n, nil
}
