package payment

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/student"
)

// Payment is an immutable record of money received for a student's tuition.
type Payment struct {
	ID            string          `json:"id"`
	StudentID     string          `json:"student_id"`
	ReceiptNumber string          `json:"receipt_number"`
	BankName      string          `json:"bank_name"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	RecordedBy    string          `json:"recorded_by"`
	CreatedAt     time.Time       `json:"created_at"` // UTC
}

// NewPayment contains information needed to record a Payment.
type NewPayment struct {
	Matricule     string          `json:"matricule" validate:"required"`
	ReceiptNumber string          `json:"receipt_number" validate:"required,max=64"`
	BankName      string          `json:"bank_name" validate:"required,max=100"`
	Amount        decimal.Decimal `json:"amount" validate:"money,cents"`
	PaymentDate   string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.Matricule = core.CleanString(np.Matricule)
	np.ReceiptNumber = core.CleanString(np.ReceiptNumber)
	np.BankName = core.CleanString(np.BankName)
	np.PaymentDate = core.CleanString(np.PaymentDate)
	return validate.Struct(np)
}

// Result is returned for every accepted payment. Amounts are rounded to the currency minor unit.
type Result struct {
	PaymentID       string          `json:"payment_id"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Remaining       decimal.Decimal `json:"remaining"`
	FinancialStatus student.Status  `json:"financial_status"`
	OldPaid         decimal.Decimal `json:"old_paid"`
	PaymentAmount   decimal.Decimal `json:"payment_amount"`
}

// Statement is a student account with its payment history, most recent first.
type Statement struct {
	Student  student.Student `json:"student"`
	Payments []Payment       `json:"payments"`
}

// Reconciliation compares the cumulative paid amount of a student with the sum of its payments.
type Reconciliation struct {
	Matricule   string          `json:"matricule"`
	TuitionPaid decimal.Decimal `json:"tuition_paid"`
	PaymentsSum decimal.Decimal `json:"payments_sum"`
	Payments    int             `json:"payments"`
}

func (r Reconciliation) Balanced() bool {
	return r.TuitionPaid.Equal(r.PaymentsSum)
}

type GetFilter struct {
	ID            string
	ReceiptNumber string
}
