package store_test

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fisk/followup/internal/db"
	"github.com/fisk/followup/internal/filter"
	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/store"
)

// openTestStore returns a store over an isolated file in a temp directory.
func openTestStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.db")
	conn, err := db.Open(db.Options{Path: path}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	return store.New(conn, zap.NewNop()), conn
}

func mustQuery(t *testing.T, s *store.Store, c filter.Criteria) []models.Contact {
	t.Helper()
	d, err := filter.Build(c)
	require.NoError(t, err)
	rows, err := s.Query(d)
	require.NoError(t, err)
	return rows
}

func ids(rows []models.Contact) []uint {
	out := make([]uint, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Add(models.Contact{Name: "Older"})
	require.NoError(t, err)
	id, err := s.Add(models.Contact{
		Name: "Ana Souza", Phone: "(11) 91234-5678", Email: "ana@example.com",
		Course: "Inglês", VisitDate: "05/03/2024", Status: "Novo", MonthlyFee: "350,00",
		HowFound: "Google", CourseFor: "Próprio", AttendedBy: "Carla", Notes: "ligar à tarde",
	})
	require.NoError(t, err)

	rows := mustQuery(t, s, filter.Criteria{})
	require.Len(t, rows, 2)
	assert.Equal(t, id, rows[0].ID, "newest first")
	assert.Equal(t, "Ana Souza", rows[0].Name)
	assert.Equal(t, "ligar à tarde", rows[0].Notes)

	updated := rows[0]
	updated.Status = models.StatusEnrolled
	updated.Phone = ""
	require.NoError(t, s.Update(updated))

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	rows = mustQuery(t, s, filter.Criteria{})
	assert.Equal(t, id, rows[0].ID)
	assert.Equal(t, models.StatusEnrolled, rows[0].Status)
	assert.Equal(t, "", rows[0].Phone)

	require.NoError(t, s.Delete(id))
	rows = mustQuery(t, s, filter.Criteria{})
	assert.NotContains(t, ids(rows), id)
}

func TestNotFound(t *testing.T) {
	s, _ := openTestStore(t)

	err := s.Update(models.Contact{ID: 999, Name: "Ghost"})
	assert.True(t, errors.Is(err, store.ErrNotFound), "update: %v", err)

	err = s.Delete(999)
	assert.True(t, errors.Is(err, store.ErrNotFound), "delete: %v", err)

	_, err = s.Get(999)
	assert.True(t, errors.Is(err, store.ErrNotFound), "get: %v", err)
}

func TestIDsAreNotReused(t *testing.T) {
	s, _ := openTestStore(t)

	first, err := s.Add(models.Contact{Name: "A"})
	require.NoError(t, err)
	second, err := s.Add(models.Contact{Name: "B"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(second))

	third, err := s.Add(models.Contact{Name: "C"})
	require.NoError(t, err)
	assert.Greater(t, third, second)
	assert.Greater(t, second, first)
}

func TestAddIgnoresCallerID(t *testing.T) {
	s, _ := openTestStore(t)
	id, err := s.Add(models.Contact{ID: 500, Name: "A"})
	require.NoError(t, err)
	assert.NotEqual(t, uint(500), id)
}

func TestDeleteMany(t *testing.T) {
	s, _ := openTestStore(t)
	var all []uint
	for _, n := range []string{"A", "B", "C", "D"} {
		id, err := s.Add(models.Contact{Name: n})
		require.NoError(t, err)
		all = append(all, id)
	}

	n, err := s.DeleteMany([]uint{all[0], all[2], 12345})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.DeleteMany(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	assert.ElementsMatch(t, []uint{all[1], all[3]}, ids(mustQuery(t, s, filter.Criteria{})))
}

func TestQuery_PhoneDigits(t *testing.T) {
	s, _ := openTestStore(t)
	want, err := s.Add(models.Contact{Name: "Ana", Phone: "(11) 91234-5678"})
	require.NoError(t, err)
	dotted, err := s.Add(models.Contact{Name: "Bia", Phone: "+55 11.91234.5678"})
	require.NoError(t, err)
	_, err = s.Add(models.Contact{Name: "Caio", Phone: "(21) 99999-0000"})
	require.NoError(t, err)
	_, err = s.Add(models.Contact{Name: "Duda"})
	require.NoError(t, err)

	rows := mustQuery(t, s, filter.Criteria{Phone: "912345"})
	assert.ElementsMatch(t, []uint{want, dotted}, ids(rows))

	rows = mustQuery(t, s, filter.Criteria{Phone: "91234-5"})
	assert.ElementsMatch(t, []uint{want, dotted}, ids(rows))
}

func TestQuery_NameCaseInsensitiveAndEscaped(t *testing.T) {
	s, _ := openTestStore(t)
	ana, err := s.Add(models.Contact{Name: "Ana Paula"})
	require.NoError(t, err)
	pct, err := s.Add(models.Contact{Name: "Turma 100% online"})
	require.NoError(t, err)
	_, err = s.Add(models.Contact{Name: "Bruno"})
	require.NoError(t, err)

	assert.Equal(t, []uint{ana}, ids(mustQuery(t, s, filter.Criteria{Name: "PAULA"})))
	assert.Equal(t, []uint{pct}, ids(mustQuery(t, s, filter.Criteria{Name: "%"})))
	assert.Empty(t, mustQuery(t, s, filter.Criteria{Name: "a_a"}))
}

func TestQuery_VisitDateRange(t *testing.T) {
	s, _ := openTestStore(t)
	jan, err := s.Add(models.Contact{Name: "Jan", VisitDate: "15/01/2024"})
	require.NoError(t, err)
	feb, err := s.Add(models.Contact{Name: "Feb", VisitDate: "01/02/2024"})
	require.NoError(t, err)
	dec, err := s.Add(models.Contact{Name: "Dec", VisitDate: "31/12/2023"})
	require.NoError(t, err)
	_, err = s.Add(models.Contact{Name: "NoDate"})
	require.NoError(t, err)

	// inclusive on both ends, compared in calendar order not text order
	rows := mustQuery(t, s, filter.Criteria{VisitFrom: "15/01/2024", VisitTo: "01022024"})
	assert.Equal(t, []uint{feb, jan}, ids(rows))

	rows = mustQuery(t, s, filter.Criteria{VisitFrom: "01/01/2024"})
	assert.Equal(t, []uint{feb, jan}, ids(rows))

	// rows without a date never satisfy a date bound
	rows = mustQuery(t, s, filter.Criteria{VisitTo: "31/01/2024"})
	assert.Equal(t, []uint{dec, jan}, ids(rows))
}

// For every combination of two or more active criteria, a contact matches
// iff it matches each criterion alone.
func TestQuery_Conjunction(t *testing.T) {
	s, _ := openTestStore(t)
	seed := []models.Contact{
		{Name: "Ana", Phone: "(11) 91234-5678", AttendedBy: "Carla", Course: "Inglês", Status: "Novo", VisitDate: "10/01/2024"},
		{Name: "Anabela", Phone: "11 91234 0000", AttendedBy: "Rui", Course: "Inglês", Status: "Em contato", VisitDate: "20/01/2024"},
		{Name: "Bruna", Phone: "(11) 91234-1111", AttendedBy: "Carla", Course: "Espanhol", Status: "Novo", VisitDate: "05/02/2024"},
		{Name: "Diana", Phone: "21987650000", AttendedBy: "Carla", Course: "Inglês", Status: "Fechou matrícula", VisitDate: "25/01/2024"},
		{Name: "Caio", Phone: "", AttendedBy: "", Course: "Robótica", Status: "Novo"},
		{Name: "Ana Clara", Phone: "(11) 91234-2222", AttendedBy: "Carla", Course: "Inglês", Status: "Novo", VisitDate: "15/01/2024"},
	}
	for _, c := range seed {
		_, err := s.Add(c)
		require.NoError(t, err)
	}

	single := []filter.Criteria{
		{Name: "ana"},
		{Phone: "91234"},
		{AttendedBy: "Carla"},
		{Course: "Inglês"},
		{Status: "Novo"},
		{VisitFrom: "12/01/2024"},
		{VisitTo: "25/01/2024"},
	}
	merge := func(a, b filter.Criteria) filter.Criteria {
		if b.Name != "" {
			a.Name = b.Name
		}
		if b.Phone != "" {
			a.Phone = b.Phone
		}
		if b.AttendedBy != "" {
			a.AttendedBy = b.AttendedBy
		}
		if b.Course != "" {
			a.Course = b.Course
		}
		if b.Status != "" {
			a.Status = b.Status
		}
		if b.VisitFrom != "" {
			a.VisitFrom = b.VisitFrom
		}
		if b.VisitTo != "" {
			a.VisitTo = b.VisitTo
		}
		return a
	}

	matches := make([]map[uint]bool, len(single))
	for i, c := range single {
		matches[i] = map[uint]bool{}
		for _, id := range ids(mustQuery(t, s, c)) {
			matches[i][id] = true
		}
	}
	universe := ids(mustQuery(t, s, filter.Criteria{}))

	for mask := 1; mask < 1<<len(single); mask++ {
		var combined filter.Criteria
		var active []int
		for i := range single {
			if mask&(1<<i) != 0 {
				combined = merge(combined, single[i])
				active = append(active, i)
			}
		}
		if len(active) < 2 {
			continue
		}

		var want []uint
		for _, id := range universe {
			ok := true
			for _, i := range active {
				ok = ok && matches[i][id]
			}
			if ok {
				want = append(want, id)
			}
		}
		got := ids(mustQuery(t, s, combined))
		sort.Slice(want, func(i, j int) bool { return want[i] > want[j] })
		if len(want) == 0 {
			assert.Empty(t, got, "mask %b", mask)
			continue
		}
		assert.Equal(t, want, got, "mask %b", mask)
	}
}

func TestDistinctValues(t *testing.T) {
	s, _ := openTestStore(t)
	for _, att := range []string{"Rui", "Carla", "", "Carla", "Bia"} {
		_, err := s.Add(models.Contact{Name: "x", AttendedBy: att})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Bia", "Carla", "Rui"}, s.DistinctValues("attended_by"))
	assert.Equal(t, []string{}, s.DistinctValues("status"))
	assert.Equal(t, []string{}, s.DistinctValues("no_such_column"))
	assert.Equal(t, []string{}, s.DistinctValues("name FROM contacts; --"))
}

func TestDistinctValues_MissingColumn(t *testing.T) {
	s, conn := openTestStore(t)
	// Simulate a file older than the column: SQLite >= 3.35 can drop it.
	if err := conn.Exec("ALTER TABLE contacts DROP COLUMN course_for").Error; err != nil {
		t.Skipf("sqlite cannot drop columns: %v", err)
	}
	assert.Equal(t, []string{}, s.DistinctValues("course_for"))
}

func TestExportAll(t *testing.T) {
	s, conn := openTestStore(t)
	a, err := s.Add(models.Contact{Name: "A", VisitDate: "29/02/2024"})
	require.NoError(t, err)
	_, err = s.Add(models.Contact{Name: "B"})
	require.NoError(t, err)
	// legacy rows may hold NULLs and free text
	require.NoError(t, conn.Exec(`INSERT INTO contacts (name, visit_date) VALUES ('C', 'amanhã')`).Error)

	ds, err := s.ExportAll()
	require.NoError(t, err)
	require.Len(t, ds, 3)

	assert.Equal(t, a, ds[0].ID)
	assert.True(t, ds[0].VisitOK)
	assert.Equal(t, 29, ds[0].Visit.Day())
	assert.False(t, ds[1].VisitOK)
	assert.False(t, ds[2].VisitOK)
	assert.Equal(t, "", ds[2].Phone, "NULL reads as empty")
	assert.Len(t, ds.Contacts(), 3)
}

func TestQuery_LegacyNulls(t *testing.T) {
	s, conn := openTestStore(t)
	require.NoError(t, conn.Exec(`INSERT INTO contacts (name) VALUES ('Só nome')`).Error)

	rows := mustQuery(t, s, filter.Criteria{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Só nome", rows[0].Name)
	assert.Equal(t, "", rows[0].MonthlyFee)
}
