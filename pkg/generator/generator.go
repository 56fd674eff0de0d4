// Package generator runs one fetch, render and write cycle.
package generator

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/contribgrid/contribgrid/pkg/config"
	"github.com/contribgrid/contribgrid/pkg/grid"
	"github.com/contribgrid/contribgrid/pkg/output"
	"github.com/contribgrid/contribgrid/pkg/render"
	"github.com/contribgrid/contribgrid/pkg/source"
)

// Generator fetches the grid of Login from Source and renders it.
type Generator struct {
	Source   source.Source
	Renderer *render.Renderer
	Login    string
	// Output is the destination file, empty to skip writing.
	Output string
}

// Result is the outcome of one cycle.
type Result struct {
	Login       string       `json:"login"`
	Grid        grid.Grid    `json:"weeks"`
	Summary     grid.Summary `json:"summary"`
	SVG         string       `json:"-"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// FromConfig builds a Generator. When input is set the grid is read from that
// file and no token is needed, otherwise the GitHub source is used.
func FromConfig(conf config.Config, input string) (*Generator, error) {
	r, err := render.New(conf.Style())
	if err != nil {
		return nil, err
	}

	var src source.Source
	if input != "" {
		src = source.NewFile(input)
	} else {
		if err := conf.CheckCredentials(); err != nil {
			return nil, err
		}
		src = source.NewGitHub(conf.Endpoint(), conf.Token())
	}

	return &Generator{
		Source:   src,
		Renderer: r,
		Login:    conf.Login(),
		Output:   conf.Output(),
	}, nil
}

// Build fetches and renders without touching the file system.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	weeks, err := g.Source.Fetch(ctx, g.Login)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to fetch contributions of %q", g.Login)
	}

	svg, err := g.Renderer.Render(weeks)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to render contributions of %q", g.Login)
	}

	res := &Result{
		Login:       g.Login,
		Grid:        weeks,
		Summary:     grid.Summarize(weeks),
		SVG:         svg,
		GeneratedAt: time.Now().UTC(),
	}

	from, to := weeks.Span()
	logrus.WithFields(logrus.Fields{
		"login": g.Login,
		"weeks": len(weeks),
		"from":  from.Format(grid.DateLayout),
		"to":    to.Format(grid.DateLayout),
		"total": res.Summary.Total,
	}).Debug("contribution grid rendered")

	return res, nil
}

// Run builds the document and writes it to Output, if set.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	res, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}

	if g.Output == "" {
		return res, nil
	}
	if err := output.WriteFile(g.Output, []byte(res.SVG)); err != nil {
		return nil, err
	}

	return res, nil
}
