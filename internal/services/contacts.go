package services

import (
	"strings"

	"go.uber.org/zap"

	"github.com/fisk/followup/internal/filter"
	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/normalize"
	"github.com/fisk/followup/internal/store"
)

var (
	ErrNameRequired     = models.Invalid("name", "name is required")
	ErrInvalidVisitDate = models.Invalid("visit_date", "invalid visit date, use DD/MM/YYYY")
)

// Form is the raw text of the contact form.
type Form struct {
	Name       string
	Phone      string
	Email      string
	Course     string
	VisitDate  string
	Status     string
	MonthlyFee string
	HowFound   string
	CourseFor  string
	AttendedBy string
	Notes      string
}

// FormFrom is the inverse of Contact, used to prefill an edit.
func FormFrom(c models.Contact) Form {
	return Form{
		Name: c.Name, Phone: c.Phone, Email: c.Email, Course: c.Course,
		VisitDate: c.VisitDate, Status: c.Status, MonthlyFee: c.MonthlyFee,
		HowFound: c.HowFound, CourseFor: c.CourseFor, AttendedBy: c.AttendedBy,
		Notes: c.Notes,
	}
}

// Contact validates and normalizes the form. Nothing is persisted.
func (f Form) Contact() (models.Contact, error) {
	c := models.Contact{
		Name:       normalize.Text(f.Name),
		Phone:      NormPhone(f.Phone),
		Email:      normalize.Text(f.Email),
		Course:     normalize.Text(f.Course),
		Status:     normalize.Text(f.Status),
		MonthlyFee: normalize.Money(f.MonthlyFee),
		HowFound:   normalize.Text(f.HowFound),
		CourseFor:  normalize.Text(f.CourseFor),
		AttendedBy: normalize.Text(f.AttendedBy),
		Notes:      normalize.Text(f.Notes),
	}
	if c.Name == "" {
		return models.Contact{}, ErrNameRequired
	}
	if v := strings.TrimSpace(f.VisitDate); v != "" {
		d, ok := normalize.FormatDate(v)
		if !ok {
			return models.Contact{}, ErrInvalidVisitDate
		}
		c.VisitDate = d
	}
	return c, nil
}

// Contacts is the use-case layer over the store.
type Contacts struct {
	store *store.Store
	log   *zap.Logger
}

func NewContacts(st *store.Store, log *zap.Logger) *Contacts {
	if log == nil {
		log = zap.NewNop()
	}
	return &Contacts{store: st, log: log}
}

// Create validates f, fills the form defaults and stores a new contact.
func (s *Contacts) Create(f Form) (uint, error) {
	c, err := f.Contact()
	if err != nil {
		return 0, err
	}
	if c.Status == "" {
		c.Status = models.StatusNew
	}
	if c.HowFound == "" {
		c.HowFound = models.HowFound[0]
	}
	if c.CourseFor == "" {
		c.CourseFor = models.CourseFor[0]
	}
	s.warnEmail(c.Email)
	id, err := s.store.Add(c)
	if err != nil {
		return 0, err
	}
	s.log.Info("contact saved", zap.Uint("id", id))
	return id, nil
}

// Save rewrites contact id with the form's fields.
func (s *Contacts) Save(id uint, f Form) error {
	c, err := f.Contact()
	if err != nil {
		return err
	}
	c.ID = id
	s.warnEmail(c.Email)
	if err := s.store.Update(c); err != nil {
		return err
	}
	s.log.Info("contact updated", zap.Uint("id", id))
	return nil
}

func (s *Contacts) Remove(id uint) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.log.Info("contact deleted", zap.Uint("id", id))
	return nil
}

func (s *Contacts) Get(id uint) (models.Contact, error) {
	return s.store.Get(id)
}

// Search builds the descriptor for c and runs it.
func (s *Contacts) Search(c filter.Criteria) ([]models.Contact, error) {
	d, err := filter.Build(c)
	if err != nil {
		return nil, err
	}
	return s.store.Query(d)
}

// Choices returns the values offered by a filter combo box, led by the
// models.All sentinel.
func (s *Contacts) Choices(column string) []string {
	var base []string
	switch column {
	case "course":
		base = models.Courses
	default:
		base = s.store.DistinctValues(column)
	}
	return append([]string{models.All}, base...)
}

func (s *Contacts) warnEmail(e string) {
	if !normalize.ValidEmail(e) {
		s.log.Warn("email looks malformed, stored as typed", zap.String("email", e))
	}
}
