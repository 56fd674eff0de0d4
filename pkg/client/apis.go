package client

import (
	"encoding/json"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/contribgrid/contribgrid/pkg/grid"
)

// Schedule is the refresh schedule reported by the daemon.
type Schedule struct {
	Schedule string    `json:"schedule"`
	NextRun  time.Time `json:"nextRun"`
	Running  bool      `json:"running"`
}

// Snapshot is the latest graph held by the daemon.
type Snapshot struct {
	Login       string       `json:"login"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Summary     grid.Summary `json:"summary"`
	Weeks       grid.Grid    `json:"weeks"`
	GeneratedAt time.Time    `json:"generatedAt"`
	LastError   string       `json:"lastError,omitempty"`
}

// Refresh asks the daemon to regenerate the graph now and returns the new
// statistics.
func (c *Client) Refresh() (*grid.Summary, error) {
	ret, err := c.Post("/refresh")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to refresh")
	}

	var s grid.Summary
	if err := json.Unmarshal([]byte(ret), &s); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal summary")
	}
	return &s, nil
}

func (c *Client) GetSnapshot() (*Snapshot, error) {
	ret, err := c.Get("/contributions.json")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get contributions")
	}

	var s Snapshot
	if err := json.Unmarshal([]byte(ret), &s); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal contributions")
	}
	return &s, nil
}

func (c *Client) GetSchedule() (*Schedule, error) {
	ret, err := c.Get("/schedule")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get schedule")
	}

	var s Schedule
	if err := json.Unmarshal([]byte(ret), &s); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal schedule")
	}
	return &s, nil
}

// SkipSchedule skips the next scheduled refresh and returns the new next run.
func (c *Client) SkipSchedule() (time.Time, error) {
	ret, err := c.Post("/schedule/skip")
	if err != nil {
		return time.Time{}, pkgerrors.Wrapf(err, "failed to skip schedule")
	}

	var s Schedule
	if err := json.Unmarshal([]byte(ret), &s); err != nil {
		return time.Time{}, pkgerrors.Wrapf(err, "failed to unmarshal schedule")
	}
	return s.NextRun, nil
}

func (c *Client) GetVersion() (version, commit string, err error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v struct {
		Version string `json:"version"`
		Commit  string `json:"commit"`
	}
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v.Version, v.Commit, nil
}
