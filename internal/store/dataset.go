package store

import (
	"time"

	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/normalize"
)

// Row is an exported contact plus its visit date parsed once at read time.
// VisitOK is false when visit_date is empty or not DD/MM/YYYY.
type Row struct {
	models.Contact
	Visit   time.Time
	VisitOK bool
}

// Dataset is the full-table export consumed by reporting and deduplication.
type Dataset []Row

func NewDataset(contacts []models.Contact) Dataset {
	out := make(Dataset, len(contacts))
	for i, c := range contacts {
		out[i] = Row{Contact: c}
		out[i].Visit, out[i].VisitOK = normalize.ParseStoredDate(c.VisitDate)
	}
	return out
}

// Contacts drops the derived column.
func (d Dataset) Contacts() []models.Contact {
	out := make([]models.Contact, len(d))
	for i := range d {
		out[i] = d[i].Contact
	}
	return out
}
