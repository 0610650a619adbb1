package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"doc_auditor/internal/audit"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(audit.New(audit.Options{Workers: 1}), t.TempDir())
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuditEndpoint(t *testing.T) {
	s := newTestServer(t)
	body := `{
		"doc_id": "doc-1",
		"sections": [
			{"section_id": 1, "type": "body", "text": "实验显示图象质量很高,符合预期。", "level": 1}
		],
		"references": ["2023 (4) untitled fragment"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/audit", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res audit.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Issues) == 0 {
		t.Fatal("no issues reported for defective input")
	}
	if len(res.References) != 1 || res.References[0].IsValid {
		t.Fatalf("reference results = %+v", res.References)
	}
	if res.ProcessedWindows != 1 {
		t.Errorf("processed windows = %d, want 1", res.ProcessedWindows)
	}
}

func TestAuditEndpointBadBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/audit", bytes.NewBufferString("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(s, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSemanticsEndpoint(t *testing.T) {
	s := newTestServer(t)
	body := `{"sections": [{"section_id": 3, "type": "body", "text": "图象处理流程如下。", "level": 1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/semantics", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res audit.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Issues) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(res.Issues), res.Issues)
	}
	if res.Issues[0].SectionID != 3 {
		t.Errorf("section id = %d, want 3", res.Issues[0].SectionID)
	}
}

func TestUploadAndReport(t *testing.T) {
	s := newTestServer(t)
	go s.worker()

	manuscript := "Abstract\n本文研究排序问题。\nConclusion\n排序问题已解决。\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "paper.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(manuscript)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())

	rec := doRequest(s, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	id := created["task_id"]
	if id == "" {
		t.Fatal("no task id returned")
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		statusRec := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil))
		if statusRec.Code != http.StatusOK {
			t.Fatalf("status endpoint = %d", statusRec.Code)
		}
		var task Task
		if err := json.Unmarshal(statusRec.Body.Bytes(), &task); err != nil {
			t.Fatalf("decode task: %v", err)
		}
		if task.Status == "Completed" {
			break
		}
		if task.Status == "Error" {
			t.Fatalf("task failed: %s", task.Error)
		}
		if time.Now().After(deadline) {
			t.Fatalf("task stuck in %q", task.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	repRec := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/report", nil))
	if repRec.Code != http.StatusOK {
		t.Fatalf("report status = %d", repRec.Code)
	}
	var report audit.Result
	if err := json.Unmarshal(repRec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.ProcessedWindows == 0 {
		t.Error("report carries no traversal state")
	}
}

func TestUploadAfterShutdownRejected(t *testing.T) {
	s := newTestServer(t)
	go s.worker()
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "paper.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("Abstract\n正文。\n")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())

	rec := doRequest(s, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 after shutdown", rec.Code)
	}

	// shutting down twice stays safe
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}

func TestUploadWithoutFile(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/documents", nil)
	rec := doRequest(s, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestStatusUnknownTask(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/documents/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestReportBeforeCompletion(t *testing.T) {
	s := newTestServer(t) // no worker running
	s.store.Add(&Task{ID: "t1", Status: "Pending", SourcePath: filepath.Join(os.TempDir(), "x.txt")})

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/documents/t1/report", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 while pending", rec.Code)
	}
}
