package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/contribgrid/contribgrid/pkg/render"
	"github.com/contribgrid/contribgrid/pkg/utils/ptr"
)

const (
	DefaultEndpoint = "https://api.github.com/graphql"
	DefaultOutput   = "assets/contributions.svg"
	DefaultSchedule = "@every 6h"
	DefaultListen   = "127.0.0.1:8080"
)

// Environment variables consulted before the config file. The second name of
// each pair is a fallback.
var (
	envLogin  = []string{"CONTRIBGRID_LOGIN", "USERNAME"}
	envToken  = []string{"CONTRIBGRID_TOKEN", "GITHUB_TOKEN"}
	envOutput = []string{"CONTRIBGRID_OUTPUT"}
)

var (
	defaultFileConfig = &RawFileConfig{
		Endpoint: ptr.To(DefaultEndpoint),
		Output:   ptr.To(DefaultOutput),
		Schedule: ptr.To(DefaultSchedule),
		Listen:   ptr.To(DefaultListen),
	}
)

var _ Config = &File{}

// File is a Config backed by a JSON file. Values set through the Set* methods
// take precedence over the environment, which takes precedence over the file.
type File struct {
	c         *RawFileConfig
	overrides RawFileConfig
	mu        *sync.RWMutex
	filepath  string
	getenv    func(string) string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
		getenv:   os.Getenv,
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
		getenv:   os.Getenv,
	}

	return f
}

type RawFileConfig struct {
	Login    *string   `json:"login,omitempty"`
	Token    *string   `json:"token,omitempty"`
	Endpoint *string   `json:"endpoint,omitempty"`
	Output   *string   `json:"output,omitempty"`
	Schedule *string   `json:"schedule,omitempty"`
	Listen   *string   `json:"listen,omitempty"`
	Style    *RawStyle `json:"style,omitempty"`
}

// DefaultRawFileConfig returns a fully populated config holding the defaults,
// without credentials.
func DefaultRawFileConfig() *RawFileConfig {
	return &RawFileConfig{
		Endpoint: ptr.To(*defaultFileConfig.Endpoint),
		Output:   ptr.To(*defaultFileConfig.Output),
		Schedule: ptr.To(*defaultFileConfig.Schedule),
		Listen:   ptr.To(*defaultFileConfig.Listen),
		Style:    NewRawStyle(render.DefaultStyle()),
	}
}

// lookup resolves a string setting: override, environment, file, default.
func (f *File) lookup(field func(*RawFileConfig) *string, env []string) string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if v := field(&f.overrides); v != nil {
		return *v
	}
	for _, name := range env {
		if v := strings.TrimSpace(f.getenv(name)); v != "" {
			return v
		}
	}
	if v := field(f.c); v != nil {
		return *v
	}
	if v := field(defaultFileConfig); v != nil {
		return *v
	}
	return ""
}

func (f *File) Login() string {
	return f.lookup(func(c *RawFileConfig) *string { return c.Login }, envLogin)
}

func (f *File) Token() string {
	return f.lookup(func(c *RawFileConfig) *string { return c.Token }, envToken)
}

func (f *File) Endpoint() string {
	return f.lookup(func(c *RawFileConfig) *string { return c.Endpoint }, nil)
}

func (f *File) Output() string {
	return f.lookup(func(c *RawFileConfig) *string { return c.Output }, envOutput)
}

func (f *File) Schedule() string {
	return f.lookup(func(c *RawFileConfig) *string { return c.Schedule }, nil)
}

func (f *File) Listen() string {
	return f.lookup(func(c *RawFileConfig) *string { return c.Listen }, nil)
}

func (f *File) Style() render.Style {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.c.Style.Apply(render.DefaultStyle())
}

func (f *File) SetLogin(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides.Login = &s
}

func (f *File) SetToken(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides.Token = &s
}

func (f *File) SetOutput(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides.Output = &s
}

func (f *File) SetSchedule(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides.Schedule = &s
}

func (f *File) SetListen(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides.Listen = &s
}

func (f *File) CheckCredentials() error {
	if f.Login() == "" {
		return pkgerrors.Wrapf(ErrMissingLogin, "set --login, %s or \"login\" in %s", envLogin[0], f.filepath)
	}
	if f.Token() == "" {
		return pkgerrors.Wrapf(ErrMissingToken, "set %s or %s", envToken[0], envToken[1])
	}
	return nil
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing file means defaults.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(ErrInvalid, "failed to open file %s: %v", f.filepath, err)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(ErrInvalid, "failed to read file %s: %v", f.filepath, err)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(ErrInvalid, "failed to unmarshal config from file %s: %v", f.filepath, err)
	}
	if conf.Token != nil {
		logrus.Warnf("config file %s contains an access token, prefer the %s environment variable", f.filepath, envToken[0])
	}
	f.c = &conf

	return nil
}

// Save writes the file part of the configuration. Overrides and environment
// values are never persisted.
func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	if dir := filepath.Dir(f.filepath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return pkgerrors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	s := f.Style()
	return logrus.Fields{
		"login":      f.Login(),
		"tokenSet":   f.Token() != "",
		"endpoint":   f.Endpoint(),
		"output":     f.Output(),
		"schedule":   f.Schedule(),
		"listen":     f.Listen(),
		"background": s.Background,
		"legend":     s.Legend,
	}
}
