package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"

	"github.com/contribgrid/contribgrid/pkg/grid"
	"github.com/contribgrid/contribgrid/pkg/version"
)

// DefaultTimeout bounds a single GraphQL request.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is quoted in errors.
const maxErrorBody = 4 << 10

// GitHub fetches contribution calendars from the GitHub GraphQL API.
type GitHub struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

var _ Source = &GitHub{}

// NewGitHub is a constructor for a GitHub source talking to endpoint.
func NewGitHub(endpoint, token string) *GitHub {
	return &GitHub{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithHTTPClient replaces the HTTP client, e.g. for tests.
func (g *GitHub) WithHTTPClient(c *http.Client) *GitHub {
	g.httpClient = c
	return g
}

// Fetch runs the contribution calendar query for login.
func (g *GitHub) Fetch(ctx context.Context, login string) (grid.Grid, error) {
	base := g.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc := *g.httpClient
	hc.Transport = &authTransport{token: g.token, base: base}

	logrus.WithFields(logrus.Fields{
		"endpoint": g.endpoint,
		"login":    login,
	}).Debug("sending contribution calendar query")

	var q calendarQuery
	err := githubv4.NewEnterpriseClient(g.endpoint, &hc).Query(ctx, &q, map[string]interface{}{
		"login": githubv4.String(login),
	})
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("%w: got %d: %s", ErrDataSource, se.code, se.body)
		}
		return nil, fmt.Errorf("%w: query failed: %v", ErrDataSource, err)
	}

	return q.toGrid(login)
}

// statusError is a non-2xx answer of the GraphQL endpoint.
type statusError struct {
	code int
	body []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("got %d: %s", e.code, e.body)
}

// authTransport adds the token and user agent to every request and turns
// non-2xx answers into a statusError.
type authTransport struct {
	token string
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("User-Agent", "contribgrid/"+version.Version)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"statusCode": resp.StatusCode,
		"latency":    time.Since(start).String(),
	}).Debug("received contribution calendar response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
		return nil, &statusError{code: resp.StatusCode, body: bytes.TrimSpace(body)}
	}

	return resp, nil
}
