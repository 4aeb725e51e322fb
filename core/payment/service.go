package payment

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/student"
)

//go:generate mockgen -destination=mocks/service.go -package=mocks github.com/trezcool/bursary/core/payment ServiceInterface

var (
	// errors
	ErrNotFound         = errors.New("payment not found")
	ErrReceiptExists    = errors.New("a payment with this receipt number already exists")
	ErrConcurrentUpdate = errors.New("the student account was modified concurrently, please retry")
	ErrPersistence      = errors.New("failed to record payment")

	errActorRequired = "recorded_by is required"

	// recordTimeout bounds the recording transaction, which is detached from the caller's context.
	recordTimeout = 30 * time.Second
)

type (
	Repository interface {
		// GetPayment finds a payment by GetFilter.ID or GetFilter.ReceiptNumber.
		GetPayment(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Payment, error)
		// CreatePayment returns ErrReceiptExists when the receipt number is already taken.
		CreatePayment(ctx context.Context, pmt Payment, exec ...core.DBExecutor) (Payment, error)
		// QueryPayments lists the payments of a student, most recent payment date first.
		QueryPayments(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]Payment, error)
		SumPayments(ctx context.Context, studentID string, exec ...core.DBExecutor) (decimal.Decimal, int, error)
	}

	ServiceInterface interface {
		RecordPayment(ctx context.Context, np NewPayment, actorID string) (Result, error)
		History(ctx context.Context, matricule string) ([]Payment, error)
		Statement(ctx context.Context, matricule string) (Statement, error)
		Reconcile(ctx context.Context, matricule string) (Reconciliation, error)
	}

	Service struct {
		db       core.DB
		repo     Repository
		stdRepo  student.Repository
		mailSvc  core.EmailService
		logger   core.Logger
		validate *validator.Validate
		conf     *core.Config
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(
	db core.DB,
	repo Repository,
	stdRepo student.Repository,
	mailSvc core.EmailService,
	logger core.Logger,
	validate *validator.Validate,
	conf *core.Config,
) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		stdRepo:  stdRepo,
		mailSvc:  mailSvc,
		logger:   logger,
		validate: validate,
		conf:     conf,
	}
}

// RecordPayment validates np against the student's ledger and, in a single transaction,
// inserts the payment and updates the student's paid amount and status.
//
// Errors: *core.ValidationError, student.ErrNotFound, ErrReceiptExists, ErrConcurrentUpdate
// or ErrPersistence. Nothing is written unless the returned error is nil.
func (svc *Service) RecordPayment(ctx context.Context, np NewPayment, actorID string) (Result, error) {
	if err := np.Validate(svc.validate); err != nil {
		return Result{}, err
	}
	actorID = core.CleanString(actorID)
	if actorID == "" {
		return Result{}, core.NewValidationError(nil, core.FieldError{Field: "recorded_by", Error: errActorRequired})
	}
	paymentDate, err := time.Parse(core.DateLayout, np.PaymentDate)
	if err != nil {
		return Result{}, errors.Wrap(err, "parsing payment date")
	}

	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{Matricule: np.Matricule})
	if err != nil {
		return Result{}, errors.Wrap(err, "finding student")
	}
	// advisory: checked again inside the transaction
	if err := ValidateAmount(np.Amount, std.TuitionTotal, std.TuitionPaid); err != nil {
		return Result{}, err
	}

	// the outcome must not depend on the caller going away
	txCtx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	pmt, res, err := svc.record(txCtx, std.ID, np, paymentDate, actorID)
	if err != nil {
		return Result{}, err
	}

	svc.logger.Info(
		fmt.Sprintf("payment %s recorded for %s", pmt.ReceiptNumber, std.Matricule),
		map[string]interface{}{
			"payment_id":  pmt.ID,
			"amount":      pmt.Amount.StringFixed(2),
			"total_paid":  res.TotalPaid.StringFixed(2),
			"recorded_by": actorID,
		},
	)
	svc.sendReceipt(std, pmt, res)
	return res, nil
}

func (svc *Service) record(ctx context.Context, studentID string, np NewPayment, paymentDate time.Time, actorID string) (Payment, Result, error) {
	fail := func(err error, msg string) (Payment, Result, error) {
		return Payment{}, Result{}, svc.persistenceFailure(np, actorID, errors.Wrap(err, msg))
	}

	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		return fail(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }() // no-op once committed

	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{ID: studentID}, tx)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return Payment{}, Result{}, err
		}
		return fail(err, "reloading student")
	}
	if err := ValidateAmount(np.Amount, std.TuitionTotal, std.TuitionPaid); err != nil {
		return Payment{}, Result{}, err
	}

	if _, err := svc.repo.GetPayment(ctx, GetFilter{ReceiptNumber: np.ReceiptNumber}, tx); err == nil {
		return Payment{}, Result{}, ErrReceiptExists
	} else if errors.Cause(err) != ErrNotFound {
		return fail(err, "checking receipt number")
	}

	oldPaid := std.TuitionPaid
	newPaid := oldPaid.Add(np.Amount)
	newStatus := student.CalculateStatus(std.TuitionTotal, newPaid)

	pmt, err := svc.repo.CreatePayment(ctx, Payment{
		ID:            uuid.New().String(),
		StudentID:     std.ID,
		ReceiptNumber: np.ReceiptNumber,
		BankName:      np.BankName,
		Amount:        np.Amount,
		PaymentDate:   paymentDate,
		RecordedBy:    actorID,
		CreatedAt:     core.Now(),
	}, tx)
	if err != nil {
		if errors.Cause(err) == ErrReceiptExists {
			return Payment{}, Result{}, ErrReceiptExists
		}
		return fail(err, "inserting payment")
	}

	affected, err := svc.stdRepo.UpdatePaidAndStatus(ctx, std.ID, newPaid, newStatus, std.Version, tx)
	if err != nil {
		return fail(err, "updating student")
	}
	if affected != 1 {
		return Payment{}, Result{}, ErrConcurrentUpdate
	}

	if err := tx.Commit(); err != nil {
		return fail(err, "committing transaction")
	}

	return pmt, Result{
		PaymentID:       pmt.ID,
		TotalPaid:       newPaid.Round(2),
		Remaining:       std.TuitionTotal.Sub(newPaid).Round(2),
		FinancialStatus: newStatus,
		OldPaid:         oldPaid.Round(2),
		PaymentAmount:   np.Amount.Round(2),
	}, nil
}

// persistenceFailure logs the cause and returns the generic ErrPersistence.
func (svc *Service) persistenceFailure(np NewPayment, actorID string, cause error) error {
	svc.logger.Error(
		"recording payment failed",
		cause,
		map[string]interface{}{
			"matricule":      np.Matricule,
			"receipt_number": np.ReceiptNumber,
			"recorded_by":    actorID,
		},
	)
	return ErrPersistence
}

func (svc *Service) History(ctx context.Context, matricule string) ([]Payment, error) {
	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{Matricule: core.CleanString(matricule)})
	if err != nil {
		return nil, errors.Wrap(err, "finding student")
	}
	return svc.repo.QueryPayments(ctx, std.ID)
}

func (svc *Service) Statement(ctx context.Context, matricule string) (Statement, error) {
	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{Matricule: core.CleanString(matricule)})
	if err != nil {
		return Statement{}, errors.Wrap(err, "finding student")
	}
	pmts, err := svc.repo.QueryPayments(ctx, std.ID)
	if err != nil {
		return Statement{}, errors.Wrap(err, "querying payments")
	}
	if pmts == nil {
		pmts = []Payment{}
	}
	return Statement{Student: std, Payments: pmts}, nil
}

// Reconcile reads the student and the sum of its payments in one transaction.
func (svc *Service) Reconcile(ctx context.Context, matricule string) (Reconciliation, error) {
	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		return Reconciliation{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{Matricule: core.CleanString(matricule)}, tx)
	if err != nil {
		return Reconciliation{}, errors.Wrap(err, "finding student")
	}
	sum, count, err := svc.repo.SumPayments(ctx, std.ID, tx)
	if err != nil {
		return Reconciliation{}, errors.Wrap(err, "summing payments")
	}
	return Reconciliation{
		Matricule:   std.Matricule,
		TuitionPaid: std.TuitionPaid,
		PaymentsSum: sum,
		Payments:    count,
	}, nil
}

type receiptData struct {
	StudentName   string
	ReceiptNumber string
	BankName      string
	PaymentDate   string
	Amount        string
	TotalPaid     string
	Remaining     string
	Status        student.Status
	Currency      string
}

func (svc *Service) sendReceipt(std student.Student, pmt Payment, res Result) {
	if std.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: std.FullName(), Address: std.Email}},
		Subject:      "Payment receipt " + pmt.ReceiptNumber,
		TemplateName: "payment_receipt",
		TemplateData: receiptData{
			StudentName:   std.FullName(),
			ReceiptNumber: pmt.ReceiptNumber,
			BankName:      pmt.BankName,
			PaymentDate:   pmt.PaymentDate.Format(core.DateLayout),
			Amount:        res.PaymentAmount.StringFixed(2),
			TotalPaid:     res.TotalPaid.StringFixed(2),
			Remaining:     res.Remaining.StringFixed(2),
			Status:        res.FinancialStatus,
			Currency:      svc.conf.Tuition.Currency,
		},
	})
}
