package student

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/bursary/core"
)

//go:generate mockgen -destination=mocks/service.go -package=mocks github.com/trezcool/bursary/core/student ServiceInterface

var (
	// errors
	ErrNotFound        = errors.New("student not found")
	ErrMatriculeExists = errors.New("a student with this matricule already exists")

	errMatriculeExhausted = errors.New("could not generate a unique matricule")

	matriculeAttempts = 5
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student, exec ...core.DBExecutor) (Student, error)
		// GetStudent finds a student by GetFilter.ID or GetFilter.Matricule.
		GetStudent(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Student, error)
		// QueryStudents applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on the matricule and names.
		QueryStudents(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Student, error)
		MatriculeExists(ctx context.Context, matricule string, exec ...core.DBExecutor) (bool, error)
		// UpdatePaidAndStatus sets the paid amount and status of the student with the given version
		// and bumps the version. It returns the number of affected rows.
		UpdatePaidAndStatus(ctx context.Context, id string, paid decimal.Decimal, status Status, version int, exec ...core.DBExecutor) (int64, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, ns NewStudent) (Student, error)
		GetByMatricule(ctx context.Context, matricule string) (Student, error)
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Student, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}

	matricule := ns.Matricule
	if matricule == "" {
		var err error
		if matricule, err = svc.generateMatricule(ctx); err != nil {
			return Student{}, err
		}
	} else {
		exists, err := svc.repo.MatriculeExists(ctx, matricule)
		if err != nil {
			return Student{}, errors.Wrap(err, "checking matricule uniqueness")
		}
		if exists {
			return Student{}, core.NewValidationError(ErrMatriculeExists, core.FieldError{Field: "matricule", Error: ErrMatriculeExists.Error()})
		}
	}

	now := core.Now()
	std := Student{
		ID:           uuid.New().String(),
		Matricule:    matricule,
		FirstName:    ns.FirstName,
		LastName:     ns.LastName,
		Email:        ns.Email,
		Phone:        ns.Phone,
		TuitionTotal: ns.TuitionTotal,
		TuitionPaid:  decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) GetByMatricule(ctx context.Context, matricule string) (Student, error) {
	return svc.repo.GetStudent(ctx, GetFilter{Matricule: cleanMatricule(matricule)})
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, filter, ordering)
}

// generateMatricule returns an unused matricule of the form STU<year><6 digits>.
func (svc *Service) generateMatricule(ctx context.Context) (string, error) {
	year := core.Now().Year()
	for i := 0; i < matriculeAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", errors.Wrap(err, "generating matricule")
		}
		m := fmt.Sprintf("STU%d%06d", year, n.Int64())
		exists, err := svc.repo.MatriculeExists(ctx, m)
		if err != nil {
			return "", errors.Wrap(err, "checking matricule uniqueness")
		}
		if !exists {
			return m, nil
		}
	}
	return "", errMatriculeExhausted
}
