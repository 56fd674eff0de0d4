// Package daemon keeps a contribution graph fresh: it regenerates the output
// file on a cron schedule and serves the latest document over HTTP.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/contribgrid/contribgrid/pkg/config"
	"github.com/contribgrid/contribgrid/pkg/events"
	"github.com/contribgrid/contribgrid/pkg/generator"
)

// refreshTimeout bounds a single fetch-render-write cycle.
const refreshTimeout = time.Minute

// ErrNotReady is returned while no refresh has succeeded yet.
var ErrNotReady = errors.New("no contribution graph generated yet")

// Server holds the latest generated graph and the machinery refreshing it.
type Server struct {
	conf  config.Config
	input string

	hub       *events.EventHub
	scheduler *Scheduler

	// newGenerator is swapped in tests.
	newGenerator func(conf config.Config, input string) (*generator.Generator, error)

	mu      sync.RWMutex
	latest  *generator.Result
	lastErr error

	refreshMu sync.Mutex
}

// NewServer creates a Server. When input is set the grid is read from that
// file instead of the GitHub API.
func NewServer(conf config.Config, input string) *Server {
	s := &Server{
		conf:         conf,
		input:        input,
		hub:          events.NewEventHub(),
		newGenerator: generator.FromConfig,
	}
	s.scheduler = NewScheduler(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		return s.Refresh(ctx)
	}, func(data any) {
		logrus.Errorf("scheduled refresh: %v", data)
	})
	return s
}

// Refresh runs one generation cycle. On failure the previous graph stays
// available.
func (s *Server) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	login := s.conf.Login()
	res, err := s.refresh(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()

		s.hub.Publish(events.RefreshFailed, events.RefreshFailedEvent{
			Login: login,
			Error: err.Error(),
			Ts:    time.Now().Unix(),
		})
		return err
	}

	s.mu.Lock()
	s.latest = res
	s.lastErr = nil
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"login":  res.Login,
		"weeks":  len(res.Grid),
		"total":  res.Summary.Total,
		"output": s.conf.Output(),
	}).Info("contribution graph refreshed")

	s.hub.Publish(events.GridRefreshed, events.GridRefreshedEvent{
		Login: res.Login,
		Weeks: len(res.Grid),
		Total: res.Summary.Total,
		Ts:    res.GeneratedAt.Unix(),
	})
	return nil
}

func (s *Server) refresh(ctx context.Context) (*generator.Result, error) {
	g, err := s.newGenerator(s.conf, s.input)
	if err != nil {
		return nil, err
	}
	return g.Run(ctx)
}

// Latest returns the last successful result and the error of the last
// attempt, if it failed.
func (s *Server) Latest() (*generator.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.lastErr
}

func Run(conf *config.File, input string) error {
	s := NewServer(conf, input)
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	if err := s.scheduler.Schedule(conf.Schedule()); err != nil {
		return err
	}

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			if err := s.scheduler.Schedule(conf.Schedule()); err != nil {
				logrus.Errorf("failed to apply schedule from reloaded config: %v", err)
			}
			logrus.Infof("config reloaded")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	if err := s.Refresh(ctx); err != nil {
		logrus.Errorf("initial refresh failed: %v", err)
	}
	cancel()

	s.scheduler.Start()
	next, _ := s.scheduler.Status()
	logrus.Infof("next refresh at %s", next.Local().Format(time.DateTime))

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	l, err := net.Listen("tcp", conf.Listen())
	if err != nil {
		s.scheduler.Stop()
		return err
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("stopping scheduler")
	s.scheduler.Stop()

	logrus.Info("shutting down http server")
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}
