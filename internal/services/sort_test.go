package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisk/followup/internal/models"
)

func sortRows() []models.Contact {
	return []models.Contact{
		{ID: 1, Name: "bruno", VisitDate: "10/02/2024", MonthlyFee: "1.200,00"},
		{ID: 2, Name: "Ana", VisitDate: "", MonthlyFee: "350,00"},
		{ID: 10, Name: "carla", VisitDate: "05/03/2023", MonthlyFee: "a combinar"},
		{ID: 3, Name: "Ana", VisitDate: "ontem", MonthlyFee: "99,90"},
	}
}

func sortedIDs(t *testing.T, column string, desc bool) []uint {
	t.Helper()
	rows := sortRows()
	require.NoError(t, SortContacts(rows, column, desc))
	out := make([]uint, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestSortContacts_VisitDate(t *testing.T) {
	// blank and free-text dates sort first, keeping their relative order
	assert.Equal(t, []uint{2, 3, 10, 1}, sortedIDs(t, "visit_date", false))
	assert.Equal(t, []uint{1, 10, 2, 3}, sortedIDs(t, "visit_date", true))
}

func TestSortContacts_Numeric(t *testing.T) {
	assert.Equal(t, []uint{1, 2, 3, 10}, sortedIDs(t, "id", false))
	assert.Equal(t, []uint{10, 3, 2, 1}, sortedIDs(t, "id", true))

	// "a combinar" counts as zero
	assert.Equal(t, []uint{10, 3, 2, 1}, sortedIDs(t, "monthly_fee", false))
	assert.Equal(t, []uint{1, 2, 3, 10}, sortedIDs(t, "monthly_fee", true))
}

func TestSortContacts_TextIgnoresCase(t *testing.T) {
	assert.Equal(t, []uint{2, 3, 1, 10}, sortedIDs(t, "name", false))
	assert.Equal(t, []uint{10, 1, 2, 3}, sortedIDs(t, "name", true))
}

func TestSortContacts_UnknownColumn(t *testing.T) {
	err := SortContacts(sortRows(), "salary", false)
	assert.ErrorIs(t, err, models.ErrValidation)
}
