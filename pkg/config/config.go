package config

import (
	"errors"

	"github.com/contribgrid/contribgrid/pkg/render"
)

var (
	// ErrMissingLogin is returned when no account login is configured.
	ErrMissingLogin = errors.New("missing account login")

	// ErrMissingToken is returned when the GitHub source has no token.
	ErrMissingToken = errors.New("missing access token")

	// ErrInvalid is returned when the config file cannot be read or parsed.
	ErrInvalid = errors.New("invalid configuration")
)

type Config interface {
	// Login is the account whose contributions are fetched.
	Login() string
	// Token authenticates against the GraphQL endpoint.
	Token() string
	Endpoint() string
	// Output is where the rendered SVG is written.
	Output() string
	// Schedule is the cron expression of the daemon refresh.
	Schedule() string
	// Listen is the daemon HTTP address.
	Listen() string
	Style() render.Style

	SetLogin(string)
	SetToken(string)
	SetOutput(string)
	SetSchedule(string)
	SetListen(string)

	// CheckCredentials reports a missing login or token.
	CheckCredentials() error

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
