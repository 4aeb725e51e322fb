package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/document"
)

type certificateRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	Kind      string    `db:"kind"`
	Reference string    `db:"reference"`
	IssuedBy  string    `db:"issued_by"`
	IssuedAt  time.Time `db:"issued_at"`
}

type certificateRepository struct {
	repository
}

var _ document.Repository = (*certificateRepository)(nil) // interface compliance check

func NewCertificateRepository(exec core.DBExecutor) *certificateRepository {
	return &certificateRepository{repository{exec: exec}}
}

func (repo certificateRepository) CreateCertificate(ctx context.Context, cert document.Certificate, exec ...core.DBExecutor) (document.Certificate, error) {
	exe := repo.getExec(exec)
	q := `INSERT INTO certificates (id, student_id, kind, reference, issued_by, issued_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		cert.ID, cert.StudentID, string(cert.Kind), cert.Reference, cert.IssuedBy, cert.IssuedAt.UTC())
	if err != nil {
		return document.Certificate{}, errors.Wrap(err, "inserting certificate")
	}
	return cert, nil
}

func (repo certificateRepository) QueryCertificates(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]document.Certificate, error) {
	exe := repo.getExec(exec)
	q := `SELECT id, student_id, kind, reference, issued_by, issued_at FROM certificates WHERE student_id = ? ORDER BY issued_at DESC`

	var rows []certificateRow
	if err := sqlx.SelectContext(ctx, exe, &rows, exe.Rebind(q), studentID); err != nil {
		return nil, errors.Wrap(err, "querying certificates")
	}
	certs := make([]document.Certificate, 0, len(rows))
	for _, row := range rows {
		certs = append(certs, document.Certificate{
			ID:        row.ID,
			StudentID: row.StudentID,
			Kind:      document.Kind(row.Kind),
			Reference: row.Reference,
			IssuedBy:  row.IssuedBy,
			IssuedAt:  row.IssuedAt.UTC(),
		})
	}
	return certs, nil
}
