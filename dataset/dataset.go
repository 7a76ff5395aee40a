// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package dataset loads city maps from YAML documents and provides the
// built-in maps.
//
// A document lists nodes with source coordinates, optional label offsets in
// device units, and undirected edges:
//
//	name: Romania
//	projection: planar
//	nodes:
//	  - {name: Arad, x: 91, y: 492, label: {dx: -20, dy: 18}}
//	edges:
//	  - [Arad, Zerind]
//
// With the mercator and platecarree projections x is longitude and y is
// latitude, both in degrees.
package dataset

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/2dChan/citymap"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"
	"gopkg.in/yaml.v3"
)

// Projection selects how node coordinates are turned into planar source space.
type Projection string

const (
	Planar      Projection = "planar"
	Mercator    Projection = "mercator"
	PlateCarree Projection = "platecarree"
)

// Projected x spans [-maxX, maxX], so longitudes keep their degree values.
const maxX = 180

//go:embed data/*.yaml
var builtinFS embed.FS

var builtins = map[string]string{
	string(citymap.ProfileRomania):       "data/romania.yaml",
	string(citymap.ProfileHoChiMinhCity): "data/hochiminh.yaml",
}

type document struct {
	Name       string     `yaml:"name"`
	Profile    string     `yaml:"profile,omitempty"`
	Projection Projection `yaml:"projection,omitempty"`
	Nodes      []node     `yaml:"nodes"`
	Edges      [][]string `yaml:"edges"`
}

type node struct {
	Name  string  `yaml:"name"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Label *label  `yaml:"label,omitempty"`
}

type label struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

// Decode reads a single YAML map document from r.
func Decode(r io.Reader) (*citymap.Map, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset: empty document")
		}
		return nil, fmt.Errorf("dataset: decode: %w", err)
	}
	return doc.toMap()
}

// LoadFile reads a YAML map document from path.
func LoadFile(path string) (*citymap.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return m, nil
}

// Builtin returns the embedded map with the given name.
func Builtin(name string) (*citymap.Map, error) {
	path, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("dataset: no built-in map %q", name)
	}
	f, err := builtinFS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// BuiltinNames returns the names accepted by Builtin, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (doc *document) toMap() (*citymap.Map, error) {
	if doc.Name == "" {
		return nil, errors.New("dataset: map name is required")
	}

	project, err := projector(doc.Projection)
	if err != nil {
		return nil, err
	}

	locations := make(map[string]r2.Point, len(doc.Nodes))
	offsets := make(map[string]r2.Point)
	for i, n := range doc.Nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("dataset: node %d has no name", i)
		}
		if _, dup := locations[n.Name]; dup {
			return nil, fmt.Errorf("dataset: duplicate node %q", n.Name)
		}
		p, err := project(n.X, n.Y)
		if err != nil {
			return nil, fmt.Errorf("dataset: node %q: %w", n.Name, err)
		}
		locations[n.Name] = p
		if n.Label != nil {
			offsets[n.Name] = r2.Point{X: n.Label.DX, Y: n.Label.DY}
		}
	}

	edges := make([]citymap.Edge, 0, len(doc.Edges))
	for i, e := range doc.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("dataset: edge %d has %d endpoints, want 2", i, len(e))
		}
		edges = append(edges, citymap.Edge{A: e[0], B: e[1]})
	}

	opts := []citymap.MapOption{citymap.WithLabelOffsets(offsets)}
	if doc.Profile != "" {
		opts = append(opts, citymap.WithProfile(citymap.ScaleProfile(doc.Profile)))
	}
	m, err := citymap.NewMap(doc.Name, locations, edges, opts...)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return m, nil
}

type projectFunc func(x, y float64) (r2.Point, error)

func projector(p Projection) (projectFunc, error) {
	switch p {
	case "", Planar:
		return func(x, y float64) (r2.Point, error) {
			p := r2.Point{X: x, Y: y}
			if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
				return r2.Point{}, fmt.Errorf("coordinate %v is not finite", p)
			}
			return p, nil
		}, nil
	case Mercator:
		proj := s2.NewMercatorProjection(maxX)
		return func(lng, lat float64) (r2.Point, error) {
			// Mercator diverges at the poles.
			if !(lat > -90 && lat < 90) {
				return r2.Point{}, fmt.Errorf("latitude %v out of range (-90, 90)", lat)
			}
			if !(lng >= -180 && lng <= 180) {
				return r2.Point{}, fmt.Errorf("longitude %v out of range [-180, 180]", lng)
			}
			return proj.FromLatLng(s2.LatLngFromDegrees(lat, lng)), nil
		}, nil
	case PlateCarree:
		proj := s2.NewPlateCarreeProjection(maxX)
		return func(lng, lat float64) (r2.Point, error) {
			if !(lat >= -90 && lat <= 90) {
				return r2.Point{}, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
			}
			if !(lng >= -180 && lng <= 180) {
				return r2.Point{}, fmt.Errorf("longitude %v out of range [-180, 180]", lng)
			}
			return proj.FromLatLng(s2.LatLngFromDegrees(lat, lng)), nil
		}, nil
	}
	return nil, fmt.Errorf("dataset: unknown projection %q", p)
}
