package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/archithareddy21/portfolio-project/internal/config"
	"github.com/archithareddy21/portfolio-project/internal/extract"
	"github.com/archithareddy21/portfolio-project/internal/pipeline"
	"github.com/archithareddy21/portfolio-project/internal/store"
)

func newTestServer(t *testing.T, cfg config.Config) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 1 << 20
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}
	if cfg.MaxQueueSize == 0 {
		cfg.MaxQueueSize = 10
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor := extract.NewService(true)
	orch := pipeline.NewOrchestrator(cfg, st, extractor, log)
	return NewServer(st, orch, extractor, log, cfg), st
}

func uploadResume(t *testing.T, srv *Server, field, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/parse-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

const sampleResume = `Experience
Software Engineer, Initech | Austin, TX | Mar 2021 - Present
- Built internal billing tools
Projects
Chart Builder
- Interactive dashboards for sales data
`

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestParseResumeUpload(t *testing.T) {
	srv, st := newTestServer(t, config.Config{})
	rec := uploadResume(t, srv, "resume", "resume.txt", sampleResume)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ResumeID        string   `json:"resume_id"`
		ExperienceCount int      `json:"experience_count"`
		ProjectCount    int      `json:"project_count"`
		ProjectPreview  []string `json:"project_preview"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ResumeID == "" {
		t.Fatal("expected a resume id")
	}
	if resp.ExperienceCount == 0 || resp.ProjectCount == 0 {
		t.Errorf("expected non-empty parse, got %+v", resp)
	}

	// The upload became the current snapshot.
	id, err := st.CurrentID(context.Background())
	if err != nil {
		t.Fatalf("current id: %v", err)
	}
	if id != resp.ResumeID {
		t.Errorf("expected current %q, got %q", resp.ResumeID, id)
	}
}

func TestParseResumeAcceptsFileField(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})
	rec := uploadResume(t, srv, "file", "resume.txt", sampleResume)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestParseResumeUnsupportedType(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})
	rec := uploadResume(t, srv, "resume", "resume.exe", "MZ")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListAndUseResume(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})
	first := uploadResume(t, srv, "resume", "first.txt", sampleResume)
	second := uploadResume(t, srv, "resume", "second.txt", sampleResume)

	var a, b struct {
		ResumeID string `json:"resume_id"`
	}
	json.Unmarshal(first.Body.Bytes(), &a)
	json.Unmarshal(second.Body.Bytes(), &b)

	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list struct {
		Current string `json:"current"`
		Resumes []struct {
			ID string `json:"id"`
		} `json:"resumes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Resumes) != 2 {
		t.Fatalf("expected 2 resumes, got %d", len(list.Resumes))
	}
	if list.Current != b.ResumeID {
		t.Errorf("expected current %q, got %q", b.ResumeID, list.Current)
	}

	// Switch back to the first upload.
	body := strings.NewReader(`{"resume_id":"` + a.ResumeID + `"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/use-resume", body)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/use-resume?resume_id=missing", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})

	body := strings.NewReader(`{"name":"Jane Doe","skills":["Go"]}`)
	req := httptest.NewRequest(http.MethodPut, "/api/profile", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	uploadResume(t, srv, "resume", "resume.txt", sampleResume)

	req = httptest.NewRequest(http.MethodGet, "/api/profile-data", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var data struct {
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
		ResumeID   string   `json:"resume_id"`
		Experience []string `json:"experience"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode profile data: %v", err)
	}
	if data.Profile.Name != "Jane Doe" {
		t.Errorf("expected profile name, got %q", data.Profile.Name)
	}
	if data.ResumeID == "" || len(data.Experience) == 0 {
		t.Errorf("expected merged parse data, got %+v", data)
	}
}

func TestSnapshotDataAndDocument(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})
	rec := uploadResume(t, srv, "resume", "resume.txt", sampleResume)
	var resp struct {
		ResumeID string `json:"resume_id"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)

	req := httptest.NewRequest(http.MethodGet, "/snapshots/"+resp.ResumeID+"/data.json", nil)
	rec2 := httptest.NewRecorder()
	srv.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec2.Code)
	}
	var snap struct {
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(rec2.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Filename != "resume.txt" {
		t.Errorf("expected filename resume.txt, got %q", snap.Filename)
	}

	req = httptest.NewRequest(http.MethodGet, "/snapshots/"+resp.ResumeID+"/resume.pdf", nil)
	rec3 := httptest.NewRecorder()
	srv.ServeHTTP(rec3, req)
	if rec3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec3.Code)
	}
	if rec3.Body.String() != sampleResume {
		t.Errorf("expected original document bytes back")
	}

	req = httptest.NewRequest(http.MethodGet, "/snapshots/missing/data.json", nil)
	rec4 := httptest.NewRecorder()
	srv.ServeHTTP(rec4, req)
	if rec4.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec4.Code)
	}
}

func TestAuthMiddlewareEnforcedWhenConfigured(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{APIKey: "secret"})

	// Health stays public.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for health, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
}

func TestReparseEnqueuesJobs(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 10}
	srv, _ := newTestServer(t, cfg)
	uploadResume(t, srv, "resume", "resume.txt", sampleResume)

	req := httptest.NewRequest(http.MethodPost, "/api/reparse", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Jobs []struct {
			JobID  string `json:"job_id"`
			Status string `json:"status"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(resp.Jobs))
	}

	// The job is visible immediately; workers were never started in this
	// test, so it stays queued.
	req = httptest.NewRequest(http.MethodGet, "/api/jobs/"+resp.Jobs[0].JobID, nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReparseEmptyStore(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})
	req := httptest.NewRequest(http.MethodPost, "/api/reparse", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExtractStats(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})
	uploadResume(t, srv, "resume", "resume.txt", sampleResume)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/extract", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Stats struct {
			Count int `json:"count"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if resp.Stats.Count != 1 {
		t.Errorf("expected 1 extraction sample, got %d", resp.Stats.Count)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/sub/file.txt", "file.txt"},
		{"", "unnamed"},
		{".", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
