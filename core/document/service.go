package document

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/student"
)

//go:generate mockgen -destination=mocks/service.go -package=mocks github.com/trezcool/bursary/core/document ServiceInterface

var (
	// errors
	ErrNotEligible = errors.New("tuition must be fully paid before documents can be issued")
	ErrUnknownKind = errors.New("unknown document kind")
)

type (
	Repository interface {
		CreateCertificate(ctx context.Context, cert Certificate, exec ...core.DBExecutor) (Certificate, error)
		QueryCertificates(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]Certificate, error)
	}

	ServiceInterface interface {
		Issue(ctx context.Context, matricule string, kind Kind, actorID string) (Document, error)
		Issued(ctx context.Context, matricule string) ([]Certificate, error)
	}

	Service struct {
		db        core.DB
		repo      Repository
		stdRepo   student.Repository
		conf      *core.Config
		templates map[Kind]*template.Template
	}
)

var _ ServiceInterface = (*Service)(nil)

// CheckEligibility only lets fully paid students through.
func CheckEligibility(std student.Student) error {
	if std.Status() != student.StatusFullyPaid {
		return ErrNotEligible
	}
	return nil
}

// NewService parses the document templates found under templates/documents in fsys.
func NewService(db core.DB, repo Repository, stdRepo student.Repository, conf *core.Config, fsys fs.FS) (*Service, error) {
	tmpls := make(map[Kind]*template.Template, len(refPrefixes))
	for kind := range refPrefixes {
		tmpl, err := template.ParseFS(fsys, "templates/documents/"+string(kind)+".gohtml")
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s template", kind)
		}
		tmpls[kind] = tmpl.Option("missingkey=error")
	}
	return &Service{
		db:        db,
		repo:      repo,
		stdRepo:   stdRepo,
		conf:      conf,
		templates: tmpls,
	}, nil
}

type renderData struct {
	SchoolName string
	Currency   string
	Certificate
	Student student.Student
}

// Issue renders a document for a fully paid student and journals it.
func (svc *Service) Issue(ctx context.Context, matricule string, kind Kind, actorID string) (Document, error) {
	if !kind.Valid() {
		return Document{}, ErrUnknownKind
	}

	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		return Document{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{Matricule: core.CleanString(matricule)}, tx)
	if err != nil {
		return Document{}, errors.Wrap(err, "finding student")
	}
	if err := CheckEligibility(std); err != nil {
		return Document{}, err
	}

	now := core.Now()
	cert := Certificate{
		ID:        uuid.New().String(),
		StudentID: std.ID,
		Kind:      kind,
		Reference: NewReference(kind, now),
		IssuedBy:  actorID,
		IssuedAt:  now,
	}

	var buf bytes.Buffer
	data := renderData{
		SchoolName:  svc.conf.AppName,
		Currency:    svc.conf.Tuition.Currency,
		Certificate: cert,
		Student:     std,
	}
	if err := svc.templates[kind].Execute(&buf, data); err != nil {
		return Document{}, errors.Wrap(err, "rendering document")
	}

	if cert, err = svc.repo.CreateCertificate(ctx, cert, tx); err != nil {
		return Document{}, errors.Wrap(err, "journaling document")
	}
	if err := tx.Commit(); err != nil {
		return Document{}, errors.Wrap(err, "committing transaction")
	}

	return Document{
		Certificate: cert,
		Student:     std,
		ContentType: "text/html; charset=UTF-8",
		Content:     buf.Bytes(),
	}, nil
}

// Issued lists the documents issued to a student, most recent first.
func (svc *Service) Issued(ctx context.Context, matricule string) ([]Certificate, error) {
	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{Matricule: core.CleanString(matricule)})
	if err != nil {
		return nil, errors.Wrap(err, "finding student")
	}
	certs, err := svc.repo.QueryCertificates(ctx, std.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying certificates")
	}
	if certs == nil {
		certs = []Certificate{}
	}
	return certs, nil
}
