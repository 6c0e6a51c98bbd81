package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if m.registry == nil {
		t.Error("registry is nil")
	}
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("failed to read metrics body: %v", err)
	}
	return string(body)
}

func TestHandler(t *testing.T) {
	m := NewMetrics()

	body := scrape(t, m)
	if !strings.Contains(body, "nfs_source_") {
		t.Error("metrics response should contain nfs_source_ namespace")
	}
}

func TestRecordTask(t *testing.T) {
	m := NewMetrics()

	m.RecordTask("Set up NFS installation source", nil, 100*time.Millisecond)
	m.RecordTask("Set up NFS installation source", errors.New("test error"), 50*time.Millisecond)

	body := scrape(t, m)
	if !strings.Contains(body, `nfs_source_tasks_total{status="success",task="Set up NFS installation source"} 1`) {
		t.Errorf("missing success counter in:\n%s", body)
	}
	if !strings.Contains(body, `nfs_source_tasks_total{status="failure",task="Set up NFS installation source"} 1`) {
		t.Errorf("missing failure counter in:\n%s", body)
	}
	if !strings.Contains(body, "nfs_source_task_duration_seconds") {
		t.Error("missing task duration histogram")
	}
}

func TestSetReady(t *testing.T) {
	m := NewMetrics()

	m.SetReady(true)
	if !strings.Contains(scrape(t, m), "nfs_source_ready 1") {
		t.Error("ready gauge should be 1")
	}

	m.SetReady(false)
	if !strings.Contains(scrape(t, m), "nfs_source_ready 0") {
		t.Error("ready gauge should be 0")
	}
}
