// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package roadnet generates road networks for maps without recorded roads.
// Roads follow the Delaunay triangulation of the node locations, taken as the
// lower convex hull of the locations lifted onto the paraboloid z = x² + y².

package roadnet

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/2dChan/citymap"
	"github.com/2dChan/citymap/utils"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
)

type Triangulation struct {
	Vertices []r2.Point
	// Vertex indices, counter-clockwise in y-up space.
	Triangles [][3]int
}

func (t *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(t.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	tri := t.Triangles[tIdx]
	return t.Vertices[tri[0]], t.Vertices[tri[1]], t.Vertices[tri[2]]
}

// Edges returns every triangle side once as a pair of vertex indices {i, j}
// with i < j, sorted.
func (t *Triangulation) Edges() [][2]int {
	edges := make([][2]int, 0, len(t.Triangles)*3)
	for _, tri := range t.Triangles {
		for j := range 3 {
			a, b := tri[j], tri[(j+1)%3]
			edges = append(edges, [2]int{min(a, b), max(a, b)})
		}
	}
	slices.SortFunc(edges, func(x, y [2]int) int {
		if x[0] != y[0] {
			return x[0] - y[0]
		}
		return x[1] - y[1]
	})
	return slices.Compact(edges)
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return errors.New("WithEps: eps must be positive")
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation computes the Delaunay triangulation of vertices. At least
// three finite, non-collinear vertices are required.
func NewTriangulation(vertices []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	n := len(vertices)
	if n < 3 {
		return nil, errors.New("roadnet: insufficient vertices for triangulation (minimum 3 required)")
	}
	bounds := r2.EmptyRect()
	for _, p := range vertices {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, fmt.Errorf("roadnet: non-finite vertex %v", p)
		}
		bounds = bounds.AddPoint(p)
	}
	size := bounds.Size()
	half := max(size.X, size.Y) / 2
	if math.IsInf(half, 0) {
		return nil, errors.New("roadnet: vertex extent overflows float64")
	}
	if half == 0 || collinear(vertices, opts.Eps) {
		return nil, errors.New("roadnet: vertices are collinear")
	}
	if n == 3 {
		tri := [3]int{0, 1, 2}
		sortTriangleVerticesCCW(&tri, vertices)
		return &Triangulation{Vertices: vertices, Triangles: [][3]int{tri}}, nil
	}

	// Lift into [-1, 1]² first so the paraboloid stays well conditioned.
	center := bounds.Center()
	lifted := make([]r3.Vector, n)
	var centroid r3.Vector
	for i, p := range vertices {
		u := p.Sub(center).Mul(1 / half)
		lifted[i] = r3.Vector{X: u.X, Y: u.Y, Z: u.X*u.X + u.Y*u.Y}
		centroid = centroid.Add(lifted[i])
	}
	centroid = centroid.Mul(1 / float64(n))

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, opts.Eps)
	if len(ch.Indices)%3 != 0 {
		return nil, errors.New("roadnet: inconsistent number of indices returned from QuickHull")
	}

	t := &Triangulation{Vertices: vertices}
	for i := 0; i < len(ch.Indices); i += 3 {
		tri := [3]int{ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]}
		if tri[0] >= n || tri[1] >= n || tri[2] >= n {
			continue
		}
		a, b, c := lifted[tri[0]], lifted[tri[1]], lifted[tri[2]]
		norm := b.Sub(a).Cross(c.Sub(a))
		if norm.Dot(centroid.Sub(a)) > 0 {
			norm = norm.Mul(-1)
		}
		// Only faces looking down belong to the lower hull.
		if norm.Z >= -opts.Eps*norm.Norm() {
			continue
		}
		sortTriangleVerticesCCW(&tri, vertices)
		t.Triangles = append(t.Triangles, tri)
	}
	if len(t.Triangles) == 0 {
		return nil, errors.New("roadnet: triangulation is empty")
	}
	return t, nil
}

func collinear(points []r2.Point, eps float64) bool {
	p0 := points[0]
	var dir r2.Point
	for _, p := range points[1:] {
		if p != p0 {
			dir = p.Sub(p0)
			break
		}
	}
	tol := eps * dir.Norm()
	for _, p := range points[1:] {
		if math.Abs(dir.Cross(p.Sub(p0))) > tol*p.Sub(p0).Norm() {
			return false
		}
	}
	return true
}

func sortTriangleVerticesCCW(t *[3]int, v []r2.Point) {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	if p1.Sub(p0).Cross(p2.Sub(p0)) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

// RandomMap returns a map of cnt random locations from
// utils.GenerateRandomLocations joined by Delaunay roads.
func RandomMap(name string, cnt int, seed int64) (*citymap.Map, error) {
	if cnt < 3 {
		return nil, fmt.Errorf("roadnet: random map needs at least 3 nodes, got %d", cnt)
	}
	locations := utils.GenerateRandomLocations(cnt, seed)
	names := make([]string, 0, len(locations))
	for city := range locations {
		names = append(names, city)
	}
	slices.Sort(names)

	vertices := make([]r2.Point, len(names))
	for i, city := range names {
		vertices[i] = locations[city]
	}
	t, err := NewTriangulation(vertices)
	if err != nil {
		return nil, err
	}

	var edges []citymap.Edge
	for _, e := range t.Edges() {
		edges = append(edges, citymap.Edge{A: names[e[0]], B: names[e[1]]})
	}
	return citymap.NewMap(name, locations, edges)
}
