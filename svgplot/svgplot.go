// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package svgplot draws a city map, an optional route and its direction
// arrows as an SVG document.

package svgplot

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/2dChan/citymap"
	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
)

const (
	backgroundStyle = "fill:#F0F8FF"
	outlineStyle    = "fill:#E3EEF7;stroke:#B8CCE0;stroke-width:1"
	edgeStyle       = "stroke:#FFD700;stroke-width:2"
	pathStyle       = "stroke:#FF4500;stroke-width:3"
	arrowStyle      = "fill:#FF4500;stroke:#FF4500;stroke-width:1"
	startStyle      = "fill:#FF0000;stroke:#FF0000"
	destStyle       = "fill:#00FF00;stroke:#00FF00"
	cityStyle       = "fill:#FFD700;stroke:#FFD700"
	labelStyle      = "font-family:Helvetica;font-size:10px;fill:#000080;dominant-baseline:middle"

	endpointRadius = 6
	cityRadius     = 4
)

type Options struct {
	Viewport citymap.Viewport
	Start    string
	Dest     string
	Path     []string
	Outline  bool
}

type Option func(*Options) error

// WithViewport sets the size of the document.
func WithViewport(vp citymap.Viewport) Option {
	return func(o *Options) error {
		if err := vp.Validate(); err != nil {
			return fmt.Errorf("WithViewport: %w", err)
		}
		o.Viewport = vp
		return nil
	}
}

// WithStart highlights the start node.
func WithStart(city string) Option {
	return func(o *Options) error {
		o.Start = city
		return nil
	}
}

// WithDest highlights the destination node.
func WithDest(city string) Option {
	return func(o *Options) error {
		o.Dest = city
		return nil
	}
}

// WithPath draws a route through the given nodes with an arrow on every step.
func WithPath(path []string) Option {
	return func(o *Options) error {
		o.Path = path
		return nil
	}
}

// WithOutline shades the convex region covered by the map.
func WithOutline(enabled bool) Option {
	return func(o *Options) error {
		o.Outline = enabled
		return nil
	}
}

// Render writes m as an SVG document to w. Nothing is written when the
// options are invalid for m.
func Render(w io.Writer, m *citymap.Map, setters ...Option) error {
	if m == nil {
		return errNilMap
	}
	opts := Options{Viewport: citymap.DefaultViewport}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return err
		}
	}

	for _, city := range []string{opts.Start, opts.Dest} {
		if _, ok := m.Locations[city]; city != "" && !ok {
			return fmt.Errorf("svgplot: node %q not in map %q", city, m.Name)
		}
	}
	if err := m.ValidatePath(opts.Path); err != nil {
		return fmt.Errorf("svgplot: %w", err)
	}

	t, err := m.Transform(opts.Viewport)
	if err != nil {
		return fmt.Errorf("svgplot: %w", err)
	}
	pos := make(map[string]r2.Point, m.NumNodes())
	for city, p := range m.Locations {
		pos[city] = t.Apply(p)
	}
	arrows, err := citymap.PathArrows(opts.Path, pos, m.Profile)
	if err != nil {
		return fmt.Errorf("svgplot: %w", err)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	vp := opts.Viewport
	canvas.Start(px(vp.Width), px(vp.Height))
	canvas.Title(m.Name)
	canvas.Rect(0, 0, px(vp.Width), px(vp.Height), backgroundStyle)

	nodes := m.Nodes()
	if opts.Outline {
		points := make([]r2.Point, len(nodes))
		for i, city := range nodes {
			points[i] = pos[city]
		}
		// Maps with fewer than three non-collinear nodes have no region to shade.
		if hull, err := citymap.Outline(points); err == nil {
			xs, ys := polygon(hull)
			canvas.Polygon(xs, ys, outlineStyle)
		}
	}

	canvas.Gid("edges")
	for _, e := range m.Edges() {
		a, b := pos[e.A], pos[e.B]
		canvas.Line(px(a.X), px(a.Y), px(b.X), px(b.Y), edgeStyle)
	}
	canvas.Gend()

	if len(opts.Path) > 1 {
		canvas.Gid("path")
		for i := 1; i < len(opts.Path); i++ {
			a, b := pos[opts.Path[i-1]], pos[opts.Path[i]]
			canvas.Line(px(a.X), px(a.Y), px(b.X), px(b.Y), pathStyle)
		}
		for _, arrow := range arrows {
			xs, ys := polygon(arrow.Vertices())
			canvas.Polygon(xs, ys, arrowStyle)
		}
		canvas.Gend()
	}

	canvas.Gid("nodes")
	for _, city := range nodes {
		p := pos[city]
		switch city {
		case opts.Start:
			canvas.Circle(px(p.X), px(p.Y), endpointRadius, startStyle)
		case opts.Dest:
			canvas.Circle(px(p.X), px(p.Y), endpointRadius, destStyle)
		default:
			canvas.Circle(px(p.X), px(p.Y), cityRadius, cityStyle)
		}
	}
	canvas.Gend()

	canvas.Gid("labels")
	for _, city := range nodes {
		p := pos[city].Add(m.LabelOffset(city))
		canvas.Text(px(p.X), px(p.Y), city, labelStyle)
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

func px(v float64) int {
	return int(math.Round(v))
}

func polygon(points []r2.Point) ([]int, []int) {
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	return xs, ys
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = fmt.Errorf("svgplot: write: %w", err)
	}
	return n, err
}

var errNilMap = errors.New("svgplot: nil map")
