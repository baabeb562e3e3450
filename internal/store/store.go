package store

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fisk/followup/internal/db"
	"github.com/fisk/followup/internal/filter"
	"github.com/fisk/followup/internal/models"
)

// Store is the contacts table. It expects already-normalized fields; input
// validation lives in services.
type Store struct {
	conn *gorm.DB
	log  *zap.Logger
}

func New(conn *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{conn: conn, log: log}
}

// Add inserts c (its ID is ignored) and returns the assigned id.
func (s *Store) Add(c models.Contact) (uint, error) {
	c.ID = 0
	if err := s.conn.Create(&c).Error; err != nil {
		return 0, mapErr("add contact", err)
	}
	s.log.Debug("contact added", zap.Uint("id", c.ID))
	return c.ID, nil
}

// Update rewrites every field of the contact with c.ID.
func (s *Store) Update(c models.Contact) error {
	res := s.conn.Model(&models.Contact{}).
		Where("id = ?", c.ID).
		Updates(fields(c))
	if res.Error != nil {
		return mapErr("update contact", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr("update contact", gorm.ErrRecordNotFound)
	}
	s.log.Debug("contact updated", zap.Uint("id", c.ID))
	return nil
}

func (s *Store) Delete(id uint) error {
	res := s.conn.Delete(&models.Contact{}, id)
	if res.Error != nil {
		return mapErr("delete contact", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr("delete contact", gorm.ErrRecordNotFound)
	}
	s.log.Debug("contact deleted", zap.Uint("id", id))
	return nil
}

// DeleteMany removes every listed id and reports how many rows were
// actually deleted. Unknown ids are skipped.
func (s *Store) DeleteMany(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.conn.Where("id IN ?", ids).Delete(&models.Contact{})
	if res.Error != nil {
		return 0, mapErr("delete contacts", res.Error)
	}
	s.log.Debug("contacts deleted", zap.Int("requested", len(ids)), zap.Int64("deleted", res.RowsAffected))
	return res.RowsAffected, nil
}

func (s *Store) Get(id uint) (models.Contact, error) {
	var c models.Contact
	if err := s.conn.First(&c, id).Error; err != nil {
		return models.Contact{}, mapErr("get contact", err)
	}
	return c, nil
}

// Query returns the contacts matching d, newest first.
func (s *Store) Query(d filter.Descriptor) ([]models.Contact, error) {
	where, args, err := whereClause(d)
	if err != nil {
		return nil, err
	}
	q := s.conn.Model(&models.Contact{})
	if where != "" {
		q = q.Where(where, args...)
	}
	var out []models.Contact
	if err := q.Order(filter.OrderBy).Find(&out).Error; err != nil {
		return nil, mapErr("query contacts", err)
	}
	s.log.Debug("contacts queried", zap.Int("terms", len(d.Terms())), zap.Int("rows", len(out)))
	return out, nil
}

// DistinctValues lists the sorted non-empty values of column. It feeds
// choice lists, so an unknown or missing column yields an empty list.
func (s *Store) DistinctValues(column string) []string {
	out := []string{}
	if !models.IsColumn(column) {
		return out
	}
	have, err := db.Columns(s.conn)
	if err != nil || !have[column] {
		return out
	}
	err = s.conn.Model(&models.Contact{}).
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		Distinct().
		Order(column).
		Pluck(column, &out).Error
	if err != nil {
		s.log.Warn("distinct values", zap.String("column", column), zap.Error(err))
		return []string{}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// ExportAll reads every contact, oldest first, with its parsed visit date.
func (s *Store) ExportAll() (Dataset, error) {
	var all []models.Contact
	if err := s.conn.Order("id ASC").Find(&all).Error; err != nil {
		return nil, mapErr("export contacts", err)
	}
	return NewDataset(all), nil
}

func fields(c models.Contact) map[string]any {
	return map[string]any{
		"name":        c.Name,
		"phone":       c.Phone,
		"email":       c.Email,
		"course":      c.Course,
		"visit_date":  c.VisitDate,
		"status":      c.Status,
		"monthly_fee": c.MonthlyFee,
		"how_found":   c.HowFound,
		"course_for":  c.CourseFor,
		"attended_by": c.AttendedBy,
		"notes":       c.Notes,
	}
}
