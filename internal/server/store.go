package server

import (
	"sync"

	"doc_auditor/internal/audit"
)

// Task tracks one uploaded document through the async audit flow.
type Task struct {
	ID         string        `json:"task_id"`
	Status     string        `json:"status"`
	Progress   int           `json:"progress"`
	SourcePath string        `json:"-"`
	FileName   string        `json:"file_name"`
	Error      string        `json:"error,omitempty"`
	Report     *audit.Result `json:"-"`
}

// TaskStore is the in-memory task registry. One instance per server.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: map[string]*Task{}}
}

func (s *TaskStore) Add(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
}

// Get returns a copy so callers never race with the worker.
func (s *TaskStore) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

func (s *TaskStore) Update(id string, fn func(t *Task)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	fn(t)
	return true
}
