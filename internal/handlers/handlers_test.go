package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/observability"
	"alfredoptarigan/ats-analyzer/internal/scoring"
	"alfredoptarigan/ats-analyzer/internal/services"
	"alfredoptarigan/ats-analyzer/internal/session"
)

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	testResume = "Senior Python developer with Docker and AWS experience. Built REST APIs and led a team."
	testJob    = "We are looking for a Python developer with Docker, Kubernetes and AWS experience."
)

type stubCoach struct {
	enabled bool
	summary string
	err     error
}

func (s *stubCoach) Enabled() bool {
	return s.enabled
}

func (s *stubCoach) Summarize(context.Context, *scoring.Report, string) (string, error) {
	return s.summary, s.err
}

type testEnv struct {
	app   *fiber.App
	store *session.MemoryStore
	stats *observability.Stats
}

func newTestEnv(t *testing.T, coach services.CoachService, maxFileSize int64, routes Routes) *testEnv {
	t.Helper()

	store := session.NewMemoryStore(session.DefaultTTL)
	stats := observability.NewStats()
	log := zap.NewNop()

	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(stats, log)})

	routes.Session = NewSessionHandler(store, scoring.NewAnalyzer(nil), services.NewExtractorService(),
		coach, stats, log, maxFileSize, scoring.DefaultThreshold)
	routes.Report = NewReportHandler(services.NewRendererService(), stats)
	routes.System = NewSystemHandler(stats, scoring.DefaultLexicon().Version, coach != nil && coach.Enabled(), routes.Evaluation != nil)
	Register(app.Group("/api/v1"), routes)

	return &testEnv{app: app, store: store, stats: stats}
}

func docxBytes(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	fmt.Fprintf(w, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:body></w:document>`, text)
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func multipartRequest(t *testing.T, target, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request, sessionID string) (int, []byte, http.Header) {
	t.Helper()

	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body, resp.Header
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return v
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	return decode[map[string]any](t, body)["error"].(string)
}

// startSession uploads the resume and submits the job description.
func startSession(t *testing.T, env *testEnv) string {
	t.Helper()

	req := multipartRequest(t, "/api/v1/upload-resume", "file", "resume.docx", docxContentType, docxBytes(t, testResume))
	status, body, _ := do(t, env.app, req, "")
	if status != fiber.StatusOK {
		t.Fatalf("upload status = %d: %s", status, body)
	}
	id := decode[map[string]string](t, body)["session_id"]

	status, body, _ = do(t, env.app, formRequest("/api/v1/submit-job", url.Values{"description": {testJob}}), id)
	if status != fiber.StatusOK {
		t.Fatalf("submit status = %d: %s", status, body)
	}
	return id
}
