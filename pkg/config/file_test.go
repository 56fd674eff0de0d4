package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/contribgrid/contribgrid/pkg/render"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(name string) string {
		return vars[name]
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "contribgrid.json")
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return p
}

func TestFileDefaults(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}
	f.getenv = fakeEnv(nil)

	if f.Login() != "" || f.Token() != "" {
		t.Fatalf("expected no credentials, got %q/%q", f.Login(), f.Token())
	}
	if f.Output() != DefaultOutput {
		t.Fatalf("Output() = %q, want %q", f.Output(), DefaultOutput)
	}
	if f.Endpoint() != DefaultEndpoint || f.Schedule() != DefaultSchedule || f.Listen() != DefaultListen {
		t.Fatalf("unexpected defaults: %v", f.LogrusFields())
	}
	if err := f.Style().Validate(); err != nil {
		t.Fatalf("default style is invalid: %v", err)
	}
	if !errors.Is(f.CheckCredentials(), ErrMissingLogin) {
		t.Fatalf("expected ErrMissingLogin")
	}
}

func TestFileEmpty(t *testing.T) {
	f, err := NewFile(writeConfig(t, "  \n"))
	if err != nil {
		t.Fatalf("empty file should yield defaults, got %v", err)
	}
	f.getenv = fakeEnv(nil)
	if f.Output() != DefaultOutput {
		t.Fatalf("Output() = %q, want %q", f.Output(), DefaultOutput)
	}
}

func TestFileInvalidJSON(t *testing.T) {
	_, err := NewFile(writeConfig(t, "{login: nope"))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestFilePrecedence(t *testing.T) {
	p := writeConfig(t, `{"login": "from-file", "output": "file.svg", "schedule": "@daily"}`)
	f, err := NewFile(p)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	f.getenv = fakeEnv(nil)
	if f.Login() != "from-file" || f.Output() != "file.svg" || f.Schedule() != "@daily" {
		t.Fatalf("file values not used: %v", f.LogrusFields())
	}

	f.getenv = fakeEnv(map[string]string{
		"USERNAME":           "fallback-user",
		"GITHUB_TOKEN":       "gh-token",
		"CONTRIBGRID_OUTPUT": "env.svg",
	})
	if f.Login() != "fallback-user" {
		t.Fatalf("USERNAME should beat the file, got %q", f.Login())
	}
	if f.Token() != "gh-token" || f.Output() != "env.svg" {
		t.Fatalf("env values not used: token=%q output=%q", f.Token(), f.Output())
	}

	f.getenv = fakeEnv(map[string]string{
		"USERNAME":          "fallback-user",
		"CONTRIBGRID_LOGIN": "primary-user",
		"CONTRIBGRID_TOKEN": "primary-token",
		"GITHUB_TOKEN":      "gh-token",
	})
	if f.Login() != "primary-user" || f.Token() != "primary-token" {
		t.Fatalf("primary env names should win, got %q/%q", f.Login(), f.Token())
	}
	if err := f.CheckCredentials(); err != nil {
		t.Fatalf("credentials should be complete: %v", err)
	}

	f.SetLogin("from-flag")
	f.SetOutput("flag.svg")
	if f.Login() != "from-flag" || f.Output() != "flag.svg" {
		t.Fatalf("overrides should win, got %q/%q", f.Login(), f.Output())
	}
}

func TestFileMissingToken(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	f.getenv = fakeEnv(map[string]string{"CONTRIBGRID_LOGIN": "octocat"})
	if err := f.CheckCredentials(); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestFileStyle(t *testing.T) {
	p := writeConfig(t, `{
  "style": {
    "background": true,
    "title": "Contributions",
    "legend": false,
    "dayLabelRows": [],
    "cell": 10,
    "levels": [{"min": 0, "level": 0}, {"min": 5, "level": 1}],
    "colors": ["#eeeeee", "#216e39"]
  }
}`)
	f, err := NewFile(p)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	s := f.Style()
	def := render.DefaultStyle()
	if !s.Background || s.Legend || s.Title != "Contributions" || s.Cell != 10 {
		t.Fatalf("style overrides not applied: %+v", s)
	}
	if len(s.DayLabelRows) != 0 {
		t.Fatalf("explicit empty dayLabelRows should disable labels, got %v", s.DayLabelRows)
	}
	if s.Gap != def.Gap || s.Padding != def.Padding {
		t.Fatalf("unset fields should keep defaults: %+v", s)
	}
	if s.Levels.Level(4) != 0 || s.Levels.Level(5) != 1 {
		t.Fatalf("custom levels not applied: %+v", s.Levels)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("style should be valid: %v", err)
	}
}

func TestFileSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "contribgrid.json")
	raw := DefaultRawFileConfig()
	f := NewFileFromConfig(raw, p)
	f.SetLogin("not-persisted")

	if err := f.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := NewFile(p)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	loaded.getenv = fakeEnv(nil)

	if loaded.Login() != "" {
		t.Fatalf("override was persisted: %q", loaded.Login())
	}
	if loaded.Output() != DefaultOutput || loaded.Schedule() != DefaultSchedule {
		t.Fatalf("defaults not persisted: %v", loaded.LogrusFields())
	}

	want := render.DefaultStyle()
	got := loaded.Style()
	if got.Cell != want.Cell || got.FontFamily != want.FontFamily || len(got.Colors) != len(want.Colors) {
		t.Fatalf("style not persisted: %+v", got)
	}
}
