package client

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newDaemon(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = w.Write([]byte(`{"total": 42, "activeDays": 7, "longestStreak": 3}`))
	})
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"schedule": "@every 6h", "nextRun": "2024-05-01T12:00:00Z", "running": true}`))
	})
	mux.HandleFunc("/schedule/skip", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`"no active schedule to skip"`))
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"version": "v1.2.3", "commit": "abc"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	srv := newDaemon(t)
	c := NewClient(strings.TrimPrefix(srv.URL, "http://"))

	s, err := c.Refresh()
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if s.Total != 42 || s.ActiveDays != 7 || s.LongestStreak != 3 {
		t.Fatalf("unexpected summary %+v", s)
	}

	sch, err := c.GetSchedule()
	if err != nil {
		t.Fatalf("GetSchedule returned error: %v", err)
	}
	if sch.Schedule != "@every 6h" || !sch.Running || !sch.NextRun.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected schedule %+v", sch)
	}

	if _, err := c.SkipSchedule(); err == nil || !strings.Contains(err.Error(), "409") {
		t.Fatalf("expected a 409 error, got %v", err)
	}

	v, commit, err := c.GetVersion()
	if err != nil || v != "v1.2.3" || commit != "abc" {
		t.Fatalf("unexpected version %q %q %v", v, commit, err)
	}

	if _, err := c.GetSnapshot(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientDaemonNotRunning(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()

	if _, err := NewClient("http://" + addr).Refresh(); !errors.Is(err, ErrDaemonNotRunning) {
		t.Fatalf("expected ErrDaemonNotRunning, got %v", err)
	}
}
