package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"vectorhire/internal/applicant"
	"vectorhire/internal/auth"
	"vectorhire/internal/evaluate"
	"vectorhire/internal/session"
	"vectorhire/internal/store"
)

type testEnv struct {
	router      *gin.Engine
	store       *store.RecordStore
	holder      *session.Holder
	authService *auth.AuthService
}

type fakeEvaluator struct {
	verdict applicant.Verdict
}

func (f fakeEvaluator) Evaluate(_, _ string) applicant.Verdict {
	return f.verdict
}

func newTestEnv(t *testing.T, evaluator Evaluator) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recordStore := store.NewRecordStore(store.NewMemorySlot())

	holder, err := session.NewHolder(store.NewMemorySlot(), store.NewMemorySlot(), "admin@demo.com", "Admin@123", "Hashim")
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}

	authService, err := auth.NewAuthService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}

	if evaluator == nil {
		evaluator = evaluate.New()
	}

	router := gin.New()
	RegisterRoutes(router, Deps{
		Store:       recordStore,
		Holder:      holder,
		AuthService: authService,
		Evaluator:   evaluator,
		Archive:     nil,
		Hub:         nil,
		Logger:      nil,
		MaxBytes:    10 * 1024 * 1024,
		ClamdAddr:   "",
	})

	return &testEnv{
		router:      router,
		store:       recordStore,
		holder:      holder,
		authService: authService,
	}
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := e.authService.GenerateAccessToken(session.Session{
		ID:    "admin-1",
		Email: "admin@demo.com",
		Name:  "Hashim",
		Role:  session.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("generate admin token: %v", err)
	}
	return token
}

func (e *testEnv) applicantToken(t *testing.T) string {
	t.Helper()
	token, err := e.authService.GenerateAccessToken(session.Session{
		ID:    "u-1",
		Email: "layla@example.com",
		Name:  "Layla",
		Role:  session.RoleApplicant,
	})
	if err != nil {
		t.Fatalf("generate applicant token: %v", err)
	}
	return token
}

// newMultipartSubmission builds a submission body with an explicit part
// content type, since the boundary checks the declared MIME type exactly.
func newMultipartSubmission(t *testing.T, filename, contentType string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}
