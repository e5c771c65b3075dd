package applicant

import (
	"fmt"

	"github.com/google/uuid"
)

// Lifecycle states of a submitted application.
const (
	StatusReceived = "received"
	StatusScreened = "screened"
)

// Verdict is the evaluation bundle attached to an application.
type Verdict struct {
	Score   int      `json:"score"`
	Passed  bool     `json:"passed"`
	Reasons []string `json:"reasons"`
	Missing []string `json:"missing"`
}

// Application 表示一位候选人对一个职位的投递记录。
// 字段名与前端持久化的 JSON 结构保持一致，不做重命名。
type Application struct {
	ID             string  `json:"id"`
	JobID          string  `json:"jobId"`
	ApplicantEmail string  `json:"applicantEmail"`
	ApplicantName  string  `json:"applicantName"`
	JobTitle       string  `json:"jobTitle"`
	FileName       string  `json:"fileName"`
	PDFDataURL     string  `json:"pdfDataUrl"`
	CreatedAt      int64   `json:"createdAt"`
	Status         string  `json:"status"`
	AI             Verdict `json:"ai"`
}

// Patch carries the fields a partial update may overwrite. A nil field
// leaves the stored value untouched; the identifier is never patchable.
type Patch struct {
	JobID          *string  `json:"jobId,omitempty"`
	ApplicantEmail *string  `json:"applicantEmail,omitempty"`
	ApplicantName  *string  `json:"applicantName,omitempty"`
	JobTitle       *string  `json:"jobTitle,omitempty"`
	FileName       *string  `json:"fileName,omitempty"`
	PDFDataURL     *string  `json:"pdfDataUrl,omitempty"`
	Status         *string  `json:"status,omitempty"`
	AI             *Verdict `json:"ai,omitempty"`
}

// NewID returns a collision-resistant application identifier.
func NewID() string {
	return fmt.Sprintf("app-%s", uuid.NewString())
}

// Apply merges the patch over the application, field by field.
func (p Patch) Apply(app Application) Application {
	if p.JobID != nil {
		app.JobID = *p.JobID
	}
	if p.ApplicantEmail != nil {
		app.ApplicantEmail = *p.ApplicantEmail
	}
	if p.ApplicantName != nil {
		app.ApplicantName = *p.ApplicantName
	}
	if p.JobTitle != nil {
		app.JobTitle = *p.JobTitle
	}
	if p.FileName != nil {
		app.FileName = *p.FileName
	}
	if p.PDFDataURL != nil {
		app.PDFDataURL = *p.PDFDataURL
	}
	if p.Status != nil {
		app.Status = *p.Status
	}
	if p.AI != nil {
		app.AI = *p.AI
	}
	return app
}
