package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/student"
	"github.com/trezcool/bursary/storage/database"
)

const studentColumns = "id, matricule, first_name, last_name, email, phone, tuition_total, tuition_paid, version, created_at, updated_at"

type studentRow struct {
	ID           string      `db:"id"`
	Matricule    string      `db:"matricule"`
	FirstName    string      `db:"first_name"`
	LastName     string      `db:"last_name"`
	Email        null.String `db:"email"`
	Phone        null.String `db:"phone"`
	TuitionTotal null.String `db:"tuition_total"`
	TuitionPaid  null.String `db:"tuition_paid"`
	Version      int         `db:"version"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

type studentRepository struct {
	repository
	defaultTotal decimal.Decimal
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

// NewStudentRepository returns a student.Repository.
// Rows stored without a usable tuition total read as defaultTotal.
func NewStudentRepository(exec core.DBExecutor, defaultTotal decimal.Decimal) *studentRepository {
	return &studentRepository{repository: repository{exec: exec}, defaultTotal: defaultTotal}
}

func (repo studentRepository) toStudent(row studentRow) student.Student {
	// missing, non-numeric or non-positive legacy totals fall back to the default
	total := repo.defaultTotal
	if row.TuitionTotal.Valid {
		if t := student.ParseAmount(row.TuitionTotal.String); t.IsPositive() {
			total = t
		}
	}
	return student.Student{
		ID:           row.ID,
		Matricule:    row.Matricule,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email.String,
		Phone:        row.Phone.String,
		TuitionTotal: total,
		TuitionPaid:  student.ParseAmount(row.TuitionPaid.String),
		Version:      row.Version,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}

// trapNoRowsErr maps "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student, exec ...core.DBExecutor) (student.Student, error) {
	exe := repo.getExec(exec)
	q := `INSERT INTO students (` + studentColumns + `, financial_status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		std.ID,
		std.Matricule,
		std.FirstName,
		std.LastName,
		null.NewString(std.Email, std.Email != ""),
		null.NewString(std.Phone, std.Phone != ""),
		std.TuitionTotal,
		std.TuitionPaid,
		std.Version,
		std.CreatedAt.UTC(),
		std.UpdatedAt.UTC(),
		string(std.Status()),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return student.Student{}, student.ErrMatriculeExists
		}
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, filter student.GetFilter, exec ...core.DBExecutor) (student.Student, error) {
	exe := repo.getExec(exec)

	var where string
	var arg string
	switch {
	case filter.ID != "":
		where, arg = "id = ?", filter.ID
	case filter.Matricule != "":
		where, arg = "matricule = ?", strings.ToUpper(filter.Matricule)
	default:
		return student.Student{}, student.ErrNotFound
	}

	var row studentRow
	q := `SELECT ` + studentColumns + ` FROM students WHERE ` + where
	if err := sqlx.GetContext(ctx, exe, &row, exe.Rebind(q), arg); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student")
	}
	return repo.toStudent(row), nil
}

func (repo studentRepository) QueryStudents(
	ctx context.Context,
	filter *student.QueryFilter,
	ordering []core.DBOrdering,
	exec ...core.DBExecutor,
) ([]student.Student, error) {
	exe := repo.getExec(exec)

	var conds []string
	var args []interface{}
	if filter != nil {
		// students with matricule or names matching the search keyword
		if filter.Search != "" {
			val := likePattern(filter.Search)
			conds = append(conds, "(LOWER(matricule) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)")
			args = append(args, val, val, val)
		}
		if len(filter.Statuses) > 0 {
			conds = append(conds, "financial_status IN (?)")
			args = append(args, filter.Statuses)
		}
	}

	q := `SELECT ` + studentColumns + ` FROM students`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += orderBy(ordering, "matricule ASC",
		"matricule", "first_name", "last_name", "tuition_paid", "financial_status", "created_at")

	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "expanding query")
	}

	var rows []studentRow
	if err := sqlx.SelectContext(ctx, exe, &rows, exe.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, repo.toStudent(row))
	}
	return students, nil
}

func (repo studentRepository) MatriculeExists(ctx context.Context, matricule string, exec ...core.DBExecutor) (bool, error) {
	exe := repo.getExec(exec)
	var found bool
	q := `SELECT EXISTS (SELECT 1 FROM students WHERE matricule = ?)`
	if err := sqlx.GetContext(ctx, exe, &found, exe.Rebind(q), strings.ToUpper(matricule)); err != nil {
		return false, errors.Wrap(err, "checking matricule")
	}
	return found, nil
}

func (repo studentRepository) UpdatePaidAndStatus(
	ctx context.Context,
	id string,
	paid decimal.Decimal,
	status student.Status,
	version int,
	exec ...core.DBExecutor,
) (int64, error) {
	exe := repo.getExec(exec)
	q := `UPDATE students
		SET tuition_paid = ?, financial_status = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := exe.ExecContext(ctx, exe.Rebind(q), paid, string(status), core.Now(), id, version)
	if err != nil {
		return 0, errors.Wrap(err, "updating student")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "counting updated students")
	}
	return n, nil
}
