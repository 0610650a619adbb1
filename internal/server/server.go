package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"doc_auditor/internal/audit"
	"doc_auditor/internal/ingest"
)

const taskQueueDepth = 16

// Server is the thin RPC layer over the audit core. Request failures stay
// request-scoped: a bad upload or audit never takes the process down.
type Server struct {
	echo     *echo.Echo
	auditor  *audit.Auditor
	store    *TaskStore
	tasks    chan string
	done     chan struct{}
	stopOnce sync.Once
	tmpDir   string
}

func New(auditor *audit.Auditor, tmpDir string) *Server {
	if tmpDir == "" {
		tmpDir = filepath.Join(os.TempDir(), "doc_auditor")
	}
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s := &Server{
		echo:    e,
		auditor: auditor,
		store:   NewTaskStore(),
		tasks:   make(chan string, taskQueueDepth),
		done:    make(chan struct{}),
		tmpDir:  tmpDir,
	}

	e.GET("/healthz", s.handleHealth)
	e.POST("/api/audit", s.handleAudit)
	e.POST("/api/semantics", s.handleSemantics)
	e.POST("/api/documents", s.handleUpload)
	e.GET("/api/documents/:id", s.handleStatus)
	e.GET("/api/documents/:id/report", s.handleReport)

	return s
}

// Start runs the upload worker and blocks serving addr.
func (s *Server) Start(addr string) error {
	go s.worker()
	return s.echo.Start(addr)
}

// Shutdown stops the upload worker and the HTTP listener. The task channel is
// never closed: late enqueue paths select against done instead, so an in-flight
// upload can never hit a closed channel.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	return s.echo.Shutdown(ctx)
}

// worker drains the upload queue: parse, audit, record the report.
func (s *Server) worker() {
	for {
		select {
		case <-s.done:
			return
		case id := <-s.tasks:
			s.runTask(id)
		}
	}
}

func (s *Server) runTask(id string) {
	t, ok := s.store.Get(id)
	if !ok {
		return
	}
	s.store.Update(id, func(t *Task) {
		t.Status = "Parsing"
		t.Progress = 10
	})

	doc, err := ingest.ParseDocument(t.SourcePath)
	if err != nil {
		log.Printf("task %s: parse failed: %v", id, err)
		s.store.Update(id, func(t *Task) {
			t.Status = "Error"
			t.Error = "parse: " + err.Error()
		})
		return
	}

	s.store.Update(id, func(t *Task) {
		t.Status = "Auditing"
		t.Progress = 40
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	result := s.auditor.AuditRules(ctx, *doc)
	cancel()

	s.store.Update(id, func(t *Task) {
		t.Status = "Completed"
		t.Progress = 100
		t.Report = &result
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(c echo.Context) error {
	f, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file required"})
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(s.tmpDir, 0o755); err != nil {
		return err
	}
	id := uuid.New().String()
	dstPath := filepath.Join(s.tmpDir, id+filepath.Ext(f.Filename))
	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	select {
	case <-s.done:
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "server is shutting down"})
	default:
	}

	s.store.Add(&Task{
		ID:         id,
		Status:     "Pending",
		SourcePath: dstPath,
		FileName:   f.Filename,
	})

	select {
	case s.tasks <- id:
	default:
		// queue full: mark queued and enqueue asynchronously
		s.store.Update(id, func(t *Task) { t.Status = "Queued" })
		go func() {
			select {
			case s.tasks <- id:
			case <-s.done:
			}
		}()
	}

	return c.JSON(http.StatusAccepted, map[string]string{"task_id": id})
}

func (s *Server) handleStatus(c echo.Context) error {
	t, ok := s.store.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "task not found"})
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleReport(c echo.Context) error {
	t, ok := s.store.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "task not found"})
	}
	if t.Status != "Completed" || t.Report == nil {
		return c.JSON(http.StatusAccepted, map[string]string{"status": t.Status})
	}
	return c.JSON(http.StatusOK, t.Report)
}
