package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGenerateReport(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, 5*1024*1024, Routes{})

	payload := `{"match_score": 62, "matched_keywords": ["python"], "missing_keywords": ["kubernetes"], "resume_name": "My Resume", "job_role": "Backend"}`
	status, body, header := do(t, env.app, jsonRequest(http.MethodPost, "/api/v1/generate-report", payload), "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d: %s", status, body)
	}
	if ct := header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := header.Get("Content-Disposition"); !strings.Contains(cd, "ATS_Report_My_Resume.pdf") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("body is not a PDF")
	}
	if env.stats.Snapshot().ReportsRendered != 1 {
		t.Fatal("render not counted")
	}
}

func TestGenerateReportWithoutScore(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, 5*1024*1024, Routes{})

	payload := `{"matched_keywords": ["python"], "resume_name": "cv"}`
	status, body, _ := do(t, env.app, jsonRequest(http.MethodPost, "/api/v1/generate-report", payload), "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d: %s", status, body)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("body is not a PDF")
	}
}

func TestGenerateReportErrors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, 5*1024*1024, Routes{})

	status, _, _ := do(t, env.app, jsonRequest(http.MethodPost, "/api/v1/generate-report", "{"), "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("bad payload status = %d", status)
	}

	status, body, _ := do(t, env.app, jsonRequest(http.MethodPost, "/api/v1/generate-report", `{"match_score": 150}`), "")
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d: %s", status, body)
	}
	if msg := errorMessage(t, body); !strings.HasPrefix(msg, "Error generating report") {
		t.Fatalf("error = %q", msg)
	}
	if env.stats.Snapshot().ErrorsByStage["render"] != 1 {
		t.Fatalf("render error not recorded: %+v", env.stats.Snapshot())
	}
}

func TestReportFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":               "ATS_Report_Resume.pdf",
		"Jane Doe":       "ATS_Report_Jane_Doe.pdf",
		`a "quoted"/cv`:  "ATS_Report_a_quoted_cv.pdf",
		"  padded name ": "ATS_Report_padded_name.pdf",
	}
	for in, want := range tests {
		if got := ReportFilename(in); got != want {
			t.Fatalf("ReportFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHealthAndStats(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, 5*1024*1024, Routes{})
	startSession(t, env)

	status, body, _ := do(t, env.app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), "")
	if status != fiber.StatusOK {
		t.Fatalf("health status = %d", status)
	}
	health := decode[map[string]any](t, body)
	if health["status"] != "healthy" || health["ai_enabled"] != false {
		t.Fatalf("unexpected health: %s", body)
	}

	status, body, _ = do(t, env.app, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil), "")
	if status != fiber.StatusOK {
		t.Fatalf("stats status = %d", status)
	}
	stats := decode[map[string]any](t, body)
	if stats["resumes_extracted"] != float64(1) {
		t.Fatalf("unexpected stats: %s", body)
	}
}
