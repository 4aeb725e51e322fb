package document_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/document"
	"github.com/trezcool/bursary/core/student"
	appfs "github.com/trezcool/bursary/fs"
	sqlxrepos "github.com/trezcool/bursary/storage/database/sqlx"
	"github.com/trezcool/bursary/tests"
)

const actor = "4f9a1c2e-0000-4000-8000-000000000001"

func setup(t *testing.T) (*document.Service, student.Repository, *sqlx.DB) {
	conf := core.NewTestConfig()
	db := testutil.PrepareDB(t)
	stdRepo := sqlxrepos.NewStudentRepository(db, conf.Tuition.DefaultTotal)
	svc, err := document.NewService(db, sqlxrepos.NewCertificateRepository(db), stdRepo, conf, appfs.FS)
	require.NoError(t, err)
	return svc, stdRepo, db
}

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		name    string
		paid    string
		wantErr error
	}{
		{name: "not paid", paid: "0", wantErr: document.ErrNotEligible},
		{name: "partially paid", paid: "499999.99", wantErr: document.ErrNotEligible},
		{name: "fully paid", paid: "500000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			std := student.Student{TuitionTotal: decimal.NewFromInt(500000), TuitionPaid: decimal.RequireFromString(tt.paid)}
			assert.Equal(t, tt.wantErr, document.CheckEligibility(std))
		})
	}
}

func TestNewReference(t *testing.T) {
	at := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	assert.Regexp(t, `^CERT-2026-[0-9A-F]{8}$`, document.NewReference(document.KindCertificate, at))
	assert.Regexp(t, `^TRN-2026-[0-9A-F]{8}$`, document.NewReference(document.KindTranscript, at))
}

func TestService_Issue(t *testing.T) {
	svc, stdRepo, db := setup(t)
	ctx := context.Background()
	testutil.CreateStudent(t, stdRepo, "STU-PAID", "", "500000", "500000")
	testutil.CreateStudent(t, stdRepo, "STU-OWES", "", "500000", "1000")
	testutil.CreateLegacyStudent(t, db, "LEG-EMPTY", "", "1000")
	testutil.CreateLegacyStudent(t, db, "LEG-NA", "n/a", "1000")
	testutil.CreateLegacyStudent(t, db, "LEG-PAID", nil, "500000")

	tests := []struct {
		name      string
		matricule string
		kind      document.Kind
		wantErr   error
	}{
		{name: "unknown kind", matricule: "STU-PAID", kind: "diploma", wantErr: document.ErrUnknownKind},
		{name: "unknown student", matricule: "STU-NONE", kind: document.KindCertificate, wantErr: student.ErrNotFound},
		{name: "not eligible", matricule: "STU-OWES", kind: document.KindCertificate, wantErr: document.ErrNotEligible},
		{name: "empty legacy total", matricule: "LEG-EMPTY", kind: document.KindCertificate, wantErr: document.ErrNotEligible},
		{name: "non-numeric legacy total", matricule: "LEG-NA", kind: document.KindTranscript, wantErr: document.ErrNotEligible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Issue(ctx, tt.matricule, tt.kind, actor)
			assert.Equal(t, tt.wantErr, errors.Cause(err))
		})
	}

	t.Run("issued", func(t *testing.T) {
		doc, err := svc.Issue(ctx, "stu-paid", document.KindCertificate, actor)
		require.NoError(t, err)
		assert.Regexp(t, `^CERT-\d{4}-[0-9A-F]{8}$`, doc.Reference)
		assert.Equal(t, actor, doc.IssuedBy)
		assert.Equal(t, "STU-PAID", doc.Student.Matricule)
		assert.Equal(t, "text/html; charset=UTF-8", doc.ContentType)
		content := string(doc.Content)
		assert.Contains(t, content, doc.Reference)
		assert.Contains(t, content, "STU-PAID")
		assert.Contains(t, content, "500000.00 XAF")

		_, err = svc.Issue(ctx, "STU-PAID", document.KindTranscript, actor)
		require.NoError(t, err)

		certs, err := svc.Issued(ctx, "STU-PAID")
		require.NoError(t, err)
		require.Len(t, certs, 2)
		kinds := []document.Kind{certs[0].Kind, certs[1].Kind}
		assert.ElementsMatch(t, []document.Kind{document.KindCertificate, document.KindTranscript}, kinds)
	})

	t.Run("legacy account paid up to the default total", func(t *testing.T) {
		doc, err := svc.Issue(ctx, "LEG-PAID", document.KindCertificate, actor)
		require.NoError(t, err)
		assert.Contains(t, string(doc.Content), "500000.00 XAF")
	})

	t.Run("none issued", func(t *testing.T) {
		certs, err := svc.Issued(ctx, "STU-OWES")
		require.NoError(t, err)
		assert.NotNil(t, certs)
		assert.Empty(t, certs)

		_, err = svc.Issued(ctx, "STU-NONE")
		assert.Equal(t, student.ErrNotFound, errors.Cause(err))
	})
}
