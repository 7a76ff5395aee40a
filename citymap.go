// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package citymap maps road and city graphs into drawing viewports and builds
// the arrowheads used to show travel direction along their edges.

package citymap

import (
	"errors"
	"fmt"
	"slices"

	"github.com/golang/geo/r2"
)

// Edge is an undirected connection between two nodes. Edges returned by a Map
// always have A < B.
type Edge struct {
	A, B string
}

// Map is a labeled node-and-edge graph in source space (y up).
type Map struct {
	Name    string
	Profile ScaleProfile

	Locations map[string]r2.Point
	// NOTE: Sorted and free of duplicates per node.
	Neighbors map[string][]string
	// Label offsets are in device units (y down), relative to the node.
	LabelOffsets map[string]r2.Point

	defaultLabelOffset r2.Point
}

type MapOptions struct {
	Profile            ScaleProfile
	LabelOffsets       map[string]r2.Point
	DefaultLabelOffset r2.Point
}

type MapOption func(*MapOptions) error

// WithProfile overrides the arrow scale profile. By default the map name is used.
func WithProfile(p ScaleProfile) MapOption {
	return func(o *MapOptions) error {
		o.Profile = p
		return nil
	}
}

// WithLabelOffsets sets per-node label offsets in device units.
func WithLabelOffsets(offsets map[string]r2.Point) MapOption {
	return func(o *MapOptions) error {
		for name, off := range offsets {
			if !isFinite(off) {
				return fmt.Errorf("WithLabelOffsets: offset for %q is not finite", name)
			}
		}
		o.LabelOffsets = offsets
		return nil
	}
}

// WithDefaultLabelOffset sets the offset used for nodes without their own.
func WithDefaultLabelOffset(off r2.Point) MapOption {
	return func(o *MapOptions) error {
		if !isFinite(off) {
			return errors.New("WithDefaultLabelOffset: offset is not finite")
		}
		o.DefaultLabelOffset = off
		return nil
	}
}

var defaultLabelOffset = r2.Point{X: 8, Y: 0}

// NewMap builds a Map from node locations and undirected edges.
// Every edge and label offset must refer to a known node.
func NewMap(name string, locations map[string]r2.Point, edges []Edge, setters ...MapOption) (*Map, error) {
	opts := MapOptions{
		Profile:            ScaleProfile(name),
		DefaultLabelOffset: defaultLabelOffset,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	m := &Map{
		Name:               name,
		Profile:            opts.Profile,
		Locations:          make(map[string]r2.Point, len(locations)),
		Neighbors:          make(map[string][]string, len(locations)),
		LabelOffsets:       make(map[string]r2.Point, len(opts.LabelOffsets)),
		defaultLabelOffset: opts.DefaultLabelOffset,
	}
	for city, p := range locations {
		m.Locations[city] = p
	}

	for _, e := range edges {
		if _, ok := m.Locations[e.A]; !ok {
			return nil, fmt.Errorf("citymap: edge %q-%q references unknown node %q", e.A, e.B, e.A)
		}
		if _, ok := m.Locations[e.B]; !ok {
			return nil, fmt.Errorf("citymap: edge %q-%q references unknown node %q", e.A, e.B, e.B)
		}
		if e.A == e.B {
			return nil, fmt.Errorf("citymap: self loop on %q", e.A)
		}
		m.Neighbors[e.A] = append(m.Neighbors[e.A], e.B)
		m.Neighbors[e.B] = append(m.Neighbors[e.B], e.A)
	}
	for city, nbrs := range m.Neighbors {
		slices.Sort(nbrs)
		m.Neighbors[city] = slices.Compact(nbrs)
	}

	for city, off := range opts.LabelOffsets {
		if _, ok := m.Locations[city]; !ok {
			return nil, fmt.Errorf("citymap: label offset for unknown node %q", city)
		}
		m.LabelOffsets[city] = off
	}

	return m, nil
}

// NumNodes returns the number of nodes in the map.
func (m *Map) NumNodes() int {
	return len(m.Locations)
}

// Nodes returns the node names in sorted order.
func (m *Map) Nodes() []string {
	names := make([]string, 0, len(m.Locations))
	for city := range m.Locations {
		names = append(names, city)
	}
	slices.Sort(names)
	return names
}

// Edges returns every undirected edge once, sorted by A then B.
func (m *Map) Edges() []Edge {
	var edges []Edge
	for _, a := range m.Nodes() {
		for _, b := range m.Neighbors[a] {
			if a < b {
				edges = append(edges, Edge{A: a, B: b})
			}
		}
	}
	return edges
}

// Adjacent reports whether a and b share an edge.
func (m *Map) Adjacent(a, b string) bool {
	_, found := slices.BinarySearch(m.Neighbors[a], b)
	return found
}

// LabelOffset returns where the label of city is drawn relative to the node.
func (m *Map) LabelOffset(city string) r2.Point {
	if off, ok := m.LabelOffsets[city]; ok {
		return off
	}
	return m.defaultLabelOffset
}

// ValidatePath returns an error unless every node in path exists and each
// consecutive pair is connected by an edge.
func (m *Map) ValidatePath(path []string) error {
	for i, city := range path {
		if _, ok := m.Locations[city]; !ok {
			return fmt.Errorf("citymap: path node %d %q not in map %q", i, city, m.Name)
		}
		if i > 0 && !m.Adjacent(path[i-1], city) {
			return fmt.Errorf("citymap: path step %q -> %q is not an edge", path[i-1], city)
		}
	}
	return nil
}

// Normalize maps the node locations into vp. See Normalize.
func (m *Map) Normalize(vp Viewport) (map[string]r2.Point, error) {
	return Normalize(m.Locations, vp)
}

// Transform returns the transform used to draw the map into vp. Maps that
// NewTransform rejects for zero extent, a single node, or no nodes at all are
// placed with FallbackTransform instead.
func (m *Map) Transform(vp Viewport) (Transform, error) {
	t, err := NewTransform(m.Locations, vp)
	var de *DegenerateInputError
	if errors.As(err, &de) {
		return FallbackTransform(m.Locations, vp)
	}
	return t, err
}
