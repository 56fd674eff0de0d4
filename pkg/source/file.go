package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/contribgrid/contribgrid/pkg/grid"
)

// File reads a grid saved on disk. Both a raw GraphQL response and a plain
// list of weeks ([[{"date":"2024-01-07","count":3}, ...], ...]) are accepted.
type File struct {
	path string
}

var _ Source = &File{}

func NewFile(path string) *File {
	return &File{path: path}
}

// Fetch ignores login, the file holds a single account.
func (f *File) Fetch(_ context.Context, login string) (grid.Grid, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrDataSource, f.path, err)
	}

	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		return decodeCalendar(b, login)
	}

	var weeks []grid.Week
	if err := json.Unmarshal(b, &weeks); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrDataSource, f.path, err)
	}

	var days []grid.Day
	for _, w := range weeks {
		days = append(days, w...)
	}
	return normalize(days)
}
