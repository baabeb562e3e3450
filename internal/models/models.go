package models

import "strconv"

// Contact is a prospective-student lead. VisitDate is kept as DD/MM/YYYY
// text and MonthlyFee as X.XXX,XX text, as existing contacts.db files store
// them.
type Contact struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Course     string `json:"course"`
	VisitDate  string `json:"visit_date"`
	Status     string `json:"status"`
	MonthlyFee string `json:"monthly_fee"`
	HowFound   string `json:"how_found"`
	CourseFor  string `json:"course_for"`
	AttendedBy string `json:"attended_by"`
	Notes      string `json:"notes"`
}

func (Contact) TableName() string { return "contacts" }

// All is the choice-list sentinel meaning "no restriction".
const All = "Todos"

// IsAll reports whether a choice filter value leaves the field unrestricted.
func IsAll(v string) bool {
	return v == "" || v == All
}

const (
	StatusNew      = "Novo"
	StatusEnrolled = "Fechou matrícula"
)

var Courses = []string{"Inglês", "Espanhol", "Informática", "Profissionalizante", "Robótica"}

var Statuses = []string{StatusNew, "Em contato", "Retornar ligação", StatusEnrolled, "Sem interesse"}

var HowFound = []string{
	"Indicação", "Google", "Instagram", "Facebook", "WhatsApp", "Ligação",
	"Outdoor", "Passagem/Frente da unidade", "Outros",
}

var CourseFor = []string{"Próprio", "Filho(a)", "Neto(a)", "Sobrinho(a)", "Parceiro(a)", "Outro"}

// Column is a contacts table column with its display label.
type Column struct {
	Name  string
	Label string
}

// Columns lists every contact column in display/export order.
var Columns = []Column{
	{"id", "ID"},
	{"name", "Nome"},
	{"phone", "Telefone"},
	{"email", "Email"},
	{"course", "Curso/Interesse"},
	{"visit_date", "Data da visita"},
	{"status", "Status"},
	{"monthly_fee", "Valor mensalidade"},
	{"how_found", "Como conheceu"},
	{"course_for", "Para quem é"},
	{"attended_by", "Atendido por"},
	{"notes", "Observações"},
}

// IsColumn reports whether name is a known contacts column.
func IsColumn(name string) bool {
	for _, c := range Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Labels returns the export header row.
func Labels() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Label
	}
	return out
}

// Values returns c's fields as text in Columns order.
func (c Contact) Values() []string {
	return []string{
		strconv.FormatUint(uint64(c.ID), 10), c.Name, c.Phone, c.Email, c.Course, c.VisitDate,
		c.Status, c.MonthlyFee, c.HowFound, c.CourseFor, c.AttendedBy, c.Notes,
	}
}
