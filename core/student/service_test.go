package student_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/student"
	sqlxrepos "github.com/trezcool/bursary/storage/database/sqlx"
	"github.com/trezcool/bursary/tests"
)

func setup(t *testing.T) (*student.Service, student.Repository) {
	conf := core.NewTestConfig()
	validate, _ := testutil.NewValidator()
	db := testutil.PrepareDB(t)
	repo := sqlxrepos.NewStudentRepository(db, conf.Tuition.DefaultTotal)
	return student.NewService(repo, validate), repo
}

func TestService_Create(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	testutil.CreateStudent(t, repo, "STU-TAKEN", "", "500000", "0")

	tests := []struct {
		name       string
		ns         student.NewStudent
		wantFields []string
		wantErr    error
	}{
		{
			name:       "empty",
			ns:         student.NewStudent{},
			wantFields: []string{"first_name", "last_name", "tuition_total"},
		},
		{
			name:       "invalid fields",
			ns:         student.NewStudent{Matricule: "a b", FirstName: "Ada", LastName: "L", Email: "nope", TuitionTotal: decimal.RequireFromString("10.001")},
			wantFields: []string{"matricule", "email", "tuition_total"},
		},
		{
			name:    "matricule taken",
			ns:      student.NewStudent{Matricule: " stu-taken ", FirstName: "Ada", LastName: "L", TuitionTotal: decimal.NewFromInt(1)},
			wantErr: student.ErrMatriculeExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.ns)
			require.Error(t, err)
			if tt.wantFields != nil {
				var vErrs validator.ValidationErrors
				require.True(t, errors.As(err, &vErrs), "want validator.ValidationErrors, got %v", err)
				fields := make([]string, 0, len(vErrs))
				for _, fe := range vErrs {
					fields = append(fields, fe.Field())
				}
				assert.ElementsMatch(t, tt.wantFields, fields)
				return
			}
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr), "want *core.ValidationError, got %v", err)
			assert.Equal(t, tt.wantErr, vErr.Err)
		})
	}

	t.Run("with matricule", func(t *testing.T) {
		std, err := svc.Create(ctx, student.NewStudent{
			Matricule:    " stu-2026-001 ",
			FirstName:    " Ada ",
			LastName:     "Lovelace",
			Email:        "ADA@test.cd",
			TuitionTotal: decimal.RequireFromString("450000.50"),
		})
		require.NoError(t, err)
		assert.Equal(t, "STU-2026-001", std.Matricule)
		assert.Equal(t, "Ada", std.FirstName)
		assert.Equal(t, "ada@test.cd", std.Email)
		assert.Equal(t, student.StatusNotPaid, std.Status())

		got, err := svc.GetByMatricule(ctx, "stu-2026-001")
		require.NoError(t, err)
		assert.Equal(t, std.ID, got.ID)
		assert.True(t, got.TuitionTotal.Equal(decimal.RequireFromString("450000.5")))
		assert.True(t, got.TuitionPaid.IsZero())
	})

	t.Run("generated matricule", func(t *testing.T) {
		std, err := svc.Create(ctx, student.NewStudent{FirstName: "Grace", LastName: "Hopper", TuitionTotal: decimal.NewFromInt(300000)})
		require.NoError(t, err)
		assert.Regexp(t, `^STU\d{4}\d{6}$`, std.Matricule)
	})
}

func TestService_Query(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	testutil.CreateStudent(t, repo, "STU-B", "", "500000", "0")
	testutil.CreateStudent(t, repo, "STU-A", "", "500000", "500000")
	testutil.CreateStudent(t, repo, "STU-C", "", "500000", "1000")

	matricules := func(stds []student.Student) []string {
		ms := make([]string, 0, len(stds))
		for _, s := range stds {
			ms = append(ms, s.Matricule)
		}
		return ms
	}

	tests := []struct {
		name     string
		filter   *student.QueryFilter
		ordering []core.DBOrdering
		want     []string
	}{
		{name: "all", want: []string{"STU-A", "STU-B", "STU-C"}},
		{name: "descending", ordering: []core.DBOrdering{{Field: "matricule", Ascending: false}}, want: []string{"STU-C", "STU-B", "STU-A"}},
		{name: "search", filter: &student.QueryFilter{Search: "stu-b"}, want: []string{"STU-B"}},
		{name: "status", filter: &student.QueryFilter{Statuses: []student.Status{student.StatusFullyPaid, student.StatusPartiallyPaid}}, want: []string{"STU-A", "STU-C"}},
		{name: "no match", filter: &student.QueryFilter{Search: "zzz"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Query(ctx, tt.filter, tt.ordering)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matricules(got))
		})
	}

	_, err := svc.GetByMatricule(ctx, "STU-Z")
	assert.Equal(t, student.ErrNotFound, errors.Cause(err))
}
