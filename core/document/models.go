package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/bursary/core/student"
)

type Kind string

const (
	KindCertificate Kind = "certificate"
	KindTranscript  Kind = "transcript"
)

var refPrefixes = map[Kind]string{
	KindCertificate: "CERT",
	KindTranscript:  "TRN",
}

func (k Kind) Valid() bool {
	_, ok := refPrefixes[k]
	return ok
}

// Certificate is the journal entry of an issued document.
type Certificate struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Kind      Kind      `json:"kind"`
	Reference string    `json:"reference"`
	IssuedBy  string    `json:"issued_by"`
	IssuedAt  time.Time `json:"issued_at"` // UTC
}

// Document is a rendered Certificate.
type Document struct {
	Certificate
	Student     student.Student
	ContentType string
	Content     []byte
}

var newRefSuffix = func() string { // mockable
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// NewReference returns a reference of the form <PREFIX>-<year>-<8 uppercase hex chars>.
func NewReference(kind Kind, at time.Time) string {
	return fmt.Sprintf("%s-%d-%s", refPrefixes[kind], at.Year(), newRefSuffix())
}
