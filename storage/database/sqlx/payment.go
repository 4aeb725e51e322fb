package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/payment"
	"github.com/trezcool/bursary/storage/database"
)

const paymentColumns = "id, student_id, receipt_number, bank_name, amount, payment_date, recorded_by, created_at"

type paymentRow struct {
	ID            string          `db:"id"`
	StudentID     string          `db:"student_id"`
	ReceiptNumber string          `db:"receipt_number"`
	BankName      string          `db:"bank_name"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentDate   time.Time       `db:"payment_date"`
	RecordedBy    string          `db:"recorded_by"`
	CreatedAt     time.Time       `db:"created_at"`
}

func (row paymentRow) toPayment() payment.Payment {
	return payment.Payment{
		ID:            row.ID,
		StudentID:     row.StudentID,
		ReceiptNumber: row.ReceiptNumber,
		BankName:      row.BankName,
		Amount:        row.Amount,
		PaymentDate:   row.PaymentDate.UTC(),
		RecordedBy:    row.RecordedBy,
		CreatedAt:     row.CreatedAt.UTC(),
	}
}

type paymentRepository struct {
	repository
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(exec core.DBExecutor) *paymentRepository {
	return &paymentRepository{repository{exec: exec}}
}

func (repo paymentRepository) GetPayment(ctx context.Context, filter payment.GetFilter, exec ...core.DBExecutor) (payment.Payment, error) {
	exe := repo.getExec(exec)

	var where string
	var arg string
	switch {
	case filter.ID != "":
		where, arg = "id = ?", filter.ID
	case filter.ReceiptNumber != "":
		where, arg = "receipt_number = ?", filter.ReceiptNumber
	default:
		return payment.Payment{}, payment.ErrNotFound
	}

	var row paymentRow
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE ` + where
	if err := sqlx.GetContext(ctx, exe, &row, exe.Rebind(q), arg); err != nil {
		if err == sql.ErrNoRows {
			return payment.Payment{}, payment.ErrNotFound
		}
		return payment.Payment{}, errors.Wrap(err, "finding payment")
	}
	return row.toPayment(), nil
}

func (repo paymentRepository) CreatePayment(ctx context.Context, pmt payment.Payment, exec ...core.DBExecutor) (payment.Payment, error) {
	exe := repo.getExec(exec)
	q := `INSERT INTO payments (` + paymentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		pmt.ID,
		pmt.StudentID,
		pmt.ReceiptNumber,
		pmt.BankName,
		pmt.Amount,
		pmt.PaymentDate.UTC(),
		pmt.RecordedBy,
		pmt.CreatedAt.UTC(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return payment.Payment{}, payment.ErrReceiptExists
		}
		return payment.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return pmt, nil
}

func (repo paymentRepository) QueryPayments(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]payment.Payment, error) {
	exe := repo.getExec(exec)
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE student_id = ? ORDER BY payment_date DESC, created_at DESC`

	var rows []paymentRow
	if err := sqlx.SelectContext(ctx, exe, &rows, exe.Rebind(q), studentID); err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	pmts := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		pmts = append(pmts, row.toPayment())
	}
	return pmts, nil
}

// SumPayments adds the amounts in Go so that the sum is exact on every engine.
func (repo paymentRepository) SumPayments(ctx context.Context, studentID string, exec ...core.DBExecutor) (decimal.Decimal, int, error) {
	exe := repo.getExec(exec)
	q := `SELECT amount FROM payments WHERE student_id = ?`

	var amounts []decimal.Decimal
	if err := sqlx.SelectContext(ctx, exe, &amounts, exe.Rebind(q), studentID); err != nil {
		return decimal.Zero, 0, errors.Wrap(err, "summing payments")
	}
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	return sum, len(amounts), nil
}
