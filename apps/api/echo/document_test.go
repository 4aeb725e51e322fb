package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/bursary/core/document"
)

func TestDocumentApi_issue(t *testing.T) {
	env := setup(t)

	doc := document.Document{
		Certificate: document.Certificate{
			ID:        "c1",
			Kind:      document.KindCertificate,
			Reference: "CERT-2026-0A1B2C3D",
			IssuedBy:  env.admin.ID,
			IssuedAt:  time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC),
		},
		ContentType: "text/html; charset=UTF-8",
		Content:     []byte("<html>certificate</html>"),
	}

	env.docSvc.EXPECT().Issue(gomock.Any(), "STU-001", document.KindCertificate, env.admin.ID).Return(doc, nil)
	env.docSvc.EXPECT().Issue(gomock.Any(), "STU-002", document.KindCertificate, env.admin.ID).Return(document.Document{}, document.ErrNotEligible)
	env.docSvc.EXPECT().Issue(gomock.Any(), "STU-001", document.Kind("diploma"), env.admin.ID).Return(document.Document{}, document.ErrUnknownKind)

	tests := []httpTest{
		{name: "no token", path: "/v1/documents/certificate/STU-001", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "teacher forbidden", path: "/v1/documents/certificate/STU-001", token: env.token(t, env.teacher), wantCode: http.StatusForbidden},
		{
			name:     "not fully paid",
			path:     "/v1/documents/certificate/STU-002",
			token:    env.token(t, env.admin),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: document.ErrNotEligible.Error()}),
		},
		{
			name:     "unknown kind",
			path:     "/v1/documents/diploma/STU-001",
			token:    env.token(t, env.admin),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: document.ErrUnknownKind.Error()}),
		},
		{name: "issued", path: "/v1/documents/certificate/STU-001", token: env.token(t, env.admin), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodGet, tt.path, tt.token)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "text/html; charset=UTF-8", rec.Header().Get("Content-Type"))
				assert.Equal(t, "CERT-2026-0A1B2C3D", rec.Header().Get(documentRefHeader))
				assert.Equal(t, "<html>certificate</html>", rec.Body.String())
			}
		})
	}
}

func TestDocumentApi_issued(t *testing.T) {
	env := setup(t)
	certs := []document.Certificate{{ID: "c1", StudentID: "s1", Kind: document.KindTranscript, Reference: "TRN-2026-00000001"}}

	env.docSvc.EXPECT().Issued(gomock.Any(), "STU-001").Return(certs, nil)
	env.docSvc.EXPECT().Issued(gomock.Any(), "NOPE").Return(nil, errors.New("boom"))

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, certs)}
	checkCodeAndData(t, tt, env.do(http.MethodGet, "/v1/students/STU-001/documents", env.token(t, env.admin)))

	tt = httpTest{wantCode: http.StatusInternalServerError, wantData: marchallObj(t, httpErr{Error: "Internal Server Error"})}
	checkCodeAndData(t, tt, env.do(http.MethodGet, "/v1/students/NOPE/documents", env.token(t, env.admin)))
}
