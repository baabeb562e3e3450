package services

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fisk/followup/internal/models"
)

// WriteCSV writes contacts as ';'-separated UTF-8 with the column labels as
// header. Values are written exactly as stored.
func WriteCSV(w io.Writer, contacts []models.Contact) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(models.Labels()); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, c := range contacts {
		if err := cw.Write(c.Values()); err != nil {
			return fmt.Errorf("csv row %d: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
