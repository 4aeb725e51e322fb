package sqlxrepos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/document"
	"github.com/trezcool/bursary/core/payment"
	"github.com/trezcool/bursary/core/student"
	"github.com/trezcool/bursary/core/user"
	"github.com/trezcool/bursary/tests"
)

var defaultTotal = decimal.NewFromInt(500000)

func TestStudentRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewStudentRepository(db, defaultTotal)
	ctx := context.Background()

	std := testutil.CreateStudent(t, repo, "STU-1", "ada@test.cd", "450000.50", "0")

	t.Run("duplicate matricule", func(t *testing.T) {
		dup := std
		dup.ID = uuid.New().String()
		_, err := repo.CreateStudent(ctx, dup)
		assert.Equal(t, student.ErrMatriculeExists, err)
	})

	t.Run("get", func(t *testing.T) {
		byID, err := repo.GetStudent(ctx, student.GetFilter{ID: std.ID})
		require.NoError(t, err)
		byMat, err := repo.GetStudent(ctx, student.GetFilter{Matricule: "stu-1"})
		require.NoError(t, err)
		assert.Equal(t, byID.ID, byMat.ID)
		assert.Equal(t, "ada@test.cd", byID.Email)
		assert.Empty(t, byID.Phone)
		assert.True(t, byID.TuitionTotal.Equal(decimal.RequireFromString("450000.5")))
		assert.Equal(t, 0, byID.Version)

		_, err = repo.GetStudent(ctx, student.GetFilter{Matricule: "NOPE"})
		assert.Equal(t, student.ErrNotFound, err)
		_, err = repo.GetStudent(ctx, student.GetFilter{})
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("missing total reads as default", func(t *testing.T) {
		now := core.Now()
		_, err := db.Exec(
			`INSERT INTO students (id, matricule, first_name, last_name, tuition_paid, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), "STU-LEGACY", "Old", "Row", "1000", now, now,
		)
		require.NoError(t, err)

		got, err := repo.GetStudent(ctx, student.GetFilter{Matricule: "STU-LEGACY"})
		require.NoError(t, err)
		assert.True(t, got.TuitionTotal.Equal(defaultTotal))
		assert.Equal(t, student.StatusPartiallyPaid, got.Status())
	})

	t.Run("matricule exists", func(t *testing.T) {
		found, err := repo.MatriculeExists(ctx, "stu-1")
		require.NoError(t, err)
		assert.True(t, found)
		found, err = repo.MatriculeExists(ctx, "STU-2")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("update paid and status", func(t *testing.T) {
		paid := decimal.RequireFromString("450000.50")
		n, err := repo.UpdatePaidAndStatus(ctx, std.ID, paid, student.StatusFullyPaid, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		// stale version
		n, err = repo.UpdatePaidAndStatus(ctx, std.ID, decimal.Zero, student.StatusNotPaid, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)

		got, err := repo.GetStudent(ctx, student.GetFilter{ID: std.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Version)
		assert.True(t, got.TuitionPaid.Equal(paid))

		res, err := repo.QueryStudents(ctx, &student.QueryFilter{Statuses: []student.Status{student.StatusFullyPaid}}, nil)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "STU-1", res[0].Matricule)
	})

	t.Run("query ordering", func(t *testing.T) {
		res, err := repo.QueryStudents(ctx, nil, []core.DBOrdering{{Field: "matricule"}, {Field: "dropped; --", Ascending: true}})
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "STU-LEGACY", res[0].Matricule)
		assert.Equal(t, "STU-1", res[1].Matricule)
	})
}

func TestStudentRepository_legacyTotals(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewStudentRepository(db, defaultTotal)
	ctx := context.Background()

	tests := []struct {
		name       string
		total      interface{}
		paid       interface{}
		wantTotal  string
		wantPaid   string
		wantStatus student.Status
	}{
		{name: "null total", total: nil, paid: "1000", wantTotal: "500000", wantPaid: "1000", wantStatus: student.StatusPartiallyPaid},
		{name: "empty total", total: "", paid: "1000", wantTotal: "500000", wantPaid: "1000", wantStatus: student.StatusPartiallyPaid},
		{name: "non-numeric total", total: "n/a", paid: "1000", wantTotal: "500000", wantPaid: "1000", wantStatus: student.StatusPartiallyPaid},
		{name: "zero total", total: "0", paid: "0", wantTotal: "500000", wantPaid: "0", wantStatus: student.StatusNotPaid},
		{name: "non-numeric paid", total: "300000", paid: "?", wantTotal: "300000", wantPaid: "0", wantStatus: student.StatusNotPaid},
		{name: "explicit total", total: "1000", paid: "1000", wantTotal: "1000", wantPaid: "1000", wantStatus: student.StatusFullyPaid},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matricule := fmt.Sprintf("LEG-%d", i)
			testutil.CreateLegacyStudent(t, db, matricule, tt.total, tt.paid)

			got, err := repo.GetStudent(ctx, student.GetFilter{Matricule: matricule})
			require.NoError(t, err)
			assert.True(t, got.TuitionTotal.Equal(decimal.RequireFromString(tt.wantTotal)), "tuition_total = %s, want %s", got.TuitionTotal, tt.wantTotal)
			assert.True(t, got.TuitionPaid.Equal(decimal.RequireFromString(tt.wantPaid)), "tuition_paid = %s, want %s", got.TuitionPaid, tt.wantPaid)
			assert.Equal(t, tt.wantStatus, got.Status())
			assert.False(t, got.Remaining().IsNegative())
		})
	}
}

func TestPaymentRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	stdRepo := NewStudentRepository(db, defaultTotal)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	std := testutil.CreateStudent(t, stdRepo, "STU-1", "", "500000", "0")
	other := testutil.CreateStudent(t, stdRepo, "STU-2", "", "500000", "0")

	newPmt := func(stdID, receipt, amount, date string) payment.Payment {
		d, _ := time.Parse(core.DateLayout, date)
		return payment.Payment{
			ID:            uuid.New().String(),
			StudentID:     stdID,
			ReceiptNumber: receipt,
			BankName:      "Rawbank",
			Amount:        decimal.RequireFromString(amount),
			PaymentDate:   d,
			RecordedBy:    uuid.New().String(),
			CreatedAt:     core.Now(),
		}
	}

	first, err := repo.CreatePayment(ctx, newPmt(std.ID, "R-1", "100.10", "2026-01-15"))
	require.NoError(t, err)
	_, err = repo.CreatePayment(ctx, newPmt(std.ID, "R-2", "0.20", "2026-02-15"))
	require.NoError(t, err)
	_, err = repo.CreatePayment(ctx, newPmt(other.ID, "R-3", "999", "2026-02-15"))
	require.NoError(t, err)

	t.Run("receipt numbers are unique", func(t *testing.T) {
		_, err := repo.CreatePayment(ctx, newPmt(other.ID, "R-1", "1", "2026-03-01"))
		assert.Equal(t, payment.ErrReceiptExists, err)
	})

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetPayment(ctx, payment.GetFilter{ReceiptNumber: "R-1"})
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("100.1")))
		assert.Equal(t, "2026-01-15", got.PaymentDate.Format(core.DateLayout))

		_, err = repo.GetPayment(ctx, payment.GetFilter{ID: "nope"})
		assert.Equal(t, payment.ErrNotFound, err)
	})

	t.Run("query", func(t *testing.T) {
		pmts, err := repo.QueryPayments(ctx, std.ID)
		require.NoError(t, err)
		require.Len(t, pmts, 2)
		assert.Equal(t, "R-2", pmts[0].ReceiptNumber)
		assert.Equal(t, "R-1", pmts[1].ReceiptNumber)
	})

	t.Run("sum", func(t *testing.T) {
		sum, n, err := repo.SumPayments(ctx, std.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, "100.30", sum.StringFixed(2))

		sum, n, err = repo.SumPayments(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.True(t, sum.IsZero())
	})

	t.Run("rolled back insert", func(t *testing.T) {
		tx, err := db.BeginTxx(ctx, nil)
		require.NoError(t, err)
		_, err = repo.CreatePayment(ctx, newPmt(std.ID, "R-TX", "5", "2026-03-01"), tx)
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		_, err = repo.GetPayment(ctx, payment.GetFilter{ReceiptNumber: "R-TX"})
		assert.Equal(t, payment.ErrNotFound, err)
	})
}

func TestCertificateRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewCertificateRepository(db)
	ctx := context.Background()
	std := testutil.CreateStudent(t, NewStudentRepository(db, defaultTotal), "STU-1", "", "500000", "500000")

	issuedAt := core.Now().Add(-time.Hour)
	for _, c := range []struct {
		kind document.Kind
		ref  string
		at   time.Time
	}{
		{document.KindCertificate, "CERT-2026-AAAAAAAA", issuedAt},
		{document.KindTranscript, "TRN-2026-BBBBBBBB", issuedAt.Add(time.Minute)},
	} {
		_, err := repo.CreateCertificate(ctx, document.Certificate{
			ID:        uuid.New().String(),
			StudentID: std.ID,
			Kind:      c.kind,
			Reference: c.ref,
			IssuedBy:  uuid.New().String(),
			IssuedAt:  c.at,
		})
		require.NoError(t, err)
	}

	certs, err := repo.QueryCertificates(ctx, std.ID)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, "TRN-2026-BBBBBBBB", certs[0].Reference)
	assert.Equal(t, document.KindCertificate, certs[1].Kind)
}

func TestUserRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "Jane Bursar", "jane", "jane@test.cd", "Burs4r-Pass!", []string{user.RoleAdmin, user.RoleAdminBursar}, true)

	t.Run("uniqueness", func(t *testing.T) {
		assert.Equal(t, user.ErrUserExists, repo.CheckUsernameUniqueness(ctx, "jane", ""))
		assert.Equal(t, user.ErrUserExists, repo.CheckUsernameUniqueness(ctx, "", "jane@test.cd"))
		assert.NoError(t, repo.CheckUsernameUniqueness(ctx, "john", "john@test.cd"))

		_, err := repo.CreateUser(ctx, user.User{Username: "jane", CreatedAt: core.Now(), UpdatedAt: core.Now()})
		assert.Equal(t, user.ErrUserExists, err)
	})

	t.Run("get", func(t *testing.T) {
		byID, err := repo.GetUser(ctx, user.GetFilter{ID: usr.ID})
		require.NoError(t, err)
		assert.Equal(t, "jane", byID.Username)
		assert.ElementsMatch(t, []string{user.RoleAdmin, user.RoleAdminBursar}, byID.Roles)
		assert.NoError(t, byID.CheckPassword("Burs4r-Pass!"))

		byEmail, err := repo.GetUser(ctx, user.GetFilter{UsernameOrEmail: "jane@test.cd"})
		require.NoError(t, err)
		assert.Equal(t, usr.ID, byEmail.ID)

		_, err = repo.GetUser(ctx, user.GetFilter{ID: "not-a-uuid"})
		assert.Equal(t, user.ErrNotFound, err)
		_, err = repo.GetUser(ctx, user.GetFilter{UsernameOrEmail: "nobody"})
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	})

	t.Run("update", func(t *testing.T) {
		usr.Name = "Jane B."
		usr.IsActive = false
		_, err := repo.UpdateUser(ctx, usr)
		require.NoError(t, err)

		got, err := repo.GetUser(ctx, user.GetFilter{ID: usr.ID})
		require.NoError(t, err)
		assert.Equal(t, "Jane B.", got.Name)
		assert.False(t, got.IsActive)

		ghost := usr
		ghost.ID = uuid.New().String()
		_, err = repo.UpdateUser(ctx, ghost)
		assert.Equal(t, user.ErrNotFound, err)
	})
}
