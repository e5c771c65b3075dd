package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vectorhire/internal/applicant"
)

func passingVerdict() applicant.Verdict {
	return applicant.Verdict{
		Score:   88,
		Passed:  true,
		Reasons: []string{"relevant experience", "matching skills", "good education"},
		Missing: []string{"certifications"},
	}
}

func TestEvaluate_HappyPath(t *testing.T) {
	env := newTestEnv(t, fakeEvaluator{verdict: passingVerdict()})

	body, contentType := newMultipartSubmission(t, "cv.pdf", "application/pdf", []byte("%PDF-1.4 test"), map[string]string{
		"jobDescription": "React/TS and design systems.",
		"jobId":          "1",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		OK            bool                  `json:"ok"`
		Score         int                   `json:"score"`
		Passed        bool                  `json:"passed"`
		ApplicationID string                `json:"applicationId"`
		Application   applicant.Application `json:"application"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || !resp.Passed || resp.Score != 88 {
		t.Fatalf("unexpected verdict in response: %+v", resp)
	}
	if resp.ApplicationID == "" {
		t.Fatalf("missing application id")
	}
	if resp.Application.JobTitle != "Frontend Engineer" {
		t.Fatalf("job title not denormalized: %q", resp.Application.JobTitle)
	}
	if !strings.HasPrefix(resp.Application.PDFDataURL, "data:application/pdf;base64,") {
		t.Fatalf("pdf not embedded as data uri: %q", resp.Application.PDFDataURL[:40])
	}
	if resp.Application.Status != applicant.StatusScreened {
		t.Fatalf("expected screened status got %q", resp.Application.Status)
	}

	stored := env.store.List(context.Background())
	if len(stored) != 1 || stored[0].ID != resp.ApplicationID {
		t.Fatalf("application not persisted: %+v", stored)
	}
}

func TestEvaluate_UsesAuthenticatedIdentity(t *testing.T) {
	env := newTestEnv(t, fakeEvaluator{verdict: passingVerdict()})

	body, contentType := newMultipartSubmission(t, "cv.pdf", "application/pdf", []byte("%PDF"), map[string]string{
		"jobDescription": "desc",
		"jobId":          "2",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+env.applicantToken(t))

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	stored := env.store.List(context.Background())
	if len(stored) != 1 || stored[0].ApplicantEmail != "layla@example.com" {
		t.Fatalf("expected authenticated identity on record: %+v", stored)
	}
}

func TestEvaluate_AnonymousFallsBackToDemoIdentity(t *testing.T) {
	env := newTestEnv(t, fakeEvaluator{verdict: passingVerdict()})

	body, contentType := newMultipartSubmission(t, "cv.pdf", "application/pdf", []byte("%PDF"), map[string]string{
		"jobDescription": "desc",
		"jobId":          "1",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	stored := env.store.List(context.Background())
	if len(stored) != 1 || stored[0].ApplicantEmail != "demo@example.com" {
		t.Fatalf("expected demo identity on record: %+v", stored)
	}
}

func TestEvaluate_MissingFields(t *testing.T) {
	env := newTestEnv(t, fakeEvaluator{verdict: passingVerdict()})

	cases := map[string]map[string]string{
		"missing jobDescription": {"jobId": "1"},
		"missing jobId":          {"jobDescription": "desc"},
	}
	for name, fields := range cases {
		body, contentType := newMultipartSubmission(t, "cv.pdf", "application/pdf", []byte("%PDF"), fields)
		req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", body)
		req.Header.Set("Content-Type", contentType)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", name, w.Code)
		}
	}

	// Missing file entirely.
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing file: expected 400 got %d", w.Code)
	}

	if got := env.store.List(context.Background()); len(got) != 0 {
		t.Fatalf("rejected submissions must not persist: %d records", len(got))
	}
}

func TestEvaluate_RejectsNonPDF(t *testing.T) {
	env := newTestEnv(t, fakeEvaluator{verdict: passingVerdict()})

	body, contentType := newMultipartSubmission(t, "cv.docx", "application/msword", []byte("doc"), map[string]string{
		"jobDescription": "desc",
		"jobId":          "1",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestEvaluate_RejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t, fakeEvaluator{verdict: passingVerdict()})

	big := make([]byte, 10*1024*1024+1)
	body, contentType := newMultipartSubmission(t, "cv.pdf", "application/pdf", big, map[string]string{
		"jobDescription": "desc",
		"jobId":          "1",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if got := env.store.List(context.Background()); len(got) != 0 {
		t.Fatalf("oversized submission must not persist: %d records", len(got))
	}
}
