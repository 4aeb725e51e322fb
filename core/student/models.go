package student

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/trezcool/bursary/core"
)

type Student struct {
	ID           string          `json:"id"`
	Matricule    string          `json:"matricule"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	TuitionTotal decimal.Decimal `json:"tuition_total"`
	TuitionPaid  decimal.Decimal `json:"tuition_paid"`
	Version      int             `json:"-"`
	CreatedAt    time.Time       `json:"created_at"` // UTC
	UpdatedAt    time.Time       `json:"updated_at"` // UTC
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Status is recomputed on every call, never read from storage.
func (s Student) Status() Status {
	return CalculateStatus(s.TuitionTotal, s.TuitionPaid)
}

func (s Student) Remaining() decimal.Decimal {
	return s.TuitionTotal.Sub(s.TuitionPaid)
}

func (s Student) MarshalJSON() ([]byte, error) {
	type student Student
	return json.Marshal(struct {
		student
		Remaining       decimal.Decimal `json:"remaining"`
		FinancialStatus Status          `json:"financial_status"`
	}{
		student:         student(s),
		Remaining:       s.Remaining().Round(2),
		FinancialStatus: s.Status(),
	})
}

// NewStudent contains information needed to create a new Student.
// A tuition total is required: accounts are never silently given a default total.
type NewStudent struct {
	Matricule    string          `json:"matricule" validate:"omitempty,matricule"`
	FirstName    string          `json:"first_name" validate:"required,max=100"`
	LastName     string          `json:"last_name" validate:"required,max=100"`
	Email        string          `json:"email" validate:"omitempty,email"`
	Phone        string          `json:"phone" validate:"omitempty,max=32"`
	TuitionTotal decimal.Decimal `json:"tuition_total" validate:"money,cents"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Matricule = cleanMatricule(ns.Matricule)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	return validate.Struct(ns)
}

type GetFilter struct {
	ID        string
	Matricule string
}

type QueryFilter struct {
	Search   string   `query:"search"`
	Statuses []Status `query:"status"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	for i, s := range qf.Statuses {
		qf.Statuses[i] = Status(strings.ToUpper(core.CleanString(string(s))))
	}
}
