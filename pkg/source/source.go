// Package source fetches contribution grids.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/contribgrid/contribgrid/pkg/grid"
)

// ErrDataSource is returned when a grid cannot be fetched or decoded.
var ErrDataSource = errors.New("data source error")

// Source returns the contribution grid of an account.
type Source interface {
	Fetch(ctx context.Context, login string) (grid.Grid, error)
}

// calendarQuery is the contribution calendar query. The GitHub source sends it
// through githubv4; File decodes saved responses into the same shape.
type calendarQuery struct {
	User *struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				Weeks []struct {
					ContributionDays []struct {
						ContributionCount int
						Date              string
					}
				}
			}
		}
	} `graphql:"user(login: $login)"`
}

// calendarResponse is a raw GraphQL response body holding calendarQuery.
type calendarResponse struct {
	Data   calendarQuery  `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}

type graphqlError struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// decodeCalendar turns a raw GraphQL response body into a grid.
func decodeCalendar(body []byte, login string) (grid.Grid, error) {
	var resp calendarResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrDataSource, err)
	}
	if len(resp.Errors) > 0 {
		e := resp.Errors[0]
		if e.Type != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrDataSource, e.Type, e.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrDataSource, e.Message)
	}
	return resp.Data.toGrid(login)
}

// toGrid flattens the calendar weeks and normalizes them.
func (q *calendarQuery) toGrid(login string) (grid.Grid, error) {
	if q.User == nil {
		return nil, fmt.Errorf("%w: user %q not found", ErrDataSource, login)
	}

	var days []grid.Day
	for _, w := range q.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, d := range w.ContributionDays {
			date, err := grid.ParseDate(d.Date)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
			}
			days = append(days, grid.Day{Date: date, Count: d.ContributionCount})
		}
	}

	return normalize(days)
}

// normalize pads partial weeks and checks the result.
func normalize(days []grid.Day) (grid.Grid, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no contribution days returned", ErrDataSource)
	}
	g := grid.FromDays(days)
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	return g, nil
}
