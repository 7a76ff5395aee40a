// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package citymap

import (
	"errors"
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-9
)

// Outline returns the convex hull of points in counter-clockwise order
// (y up). It requires at least three points that are not all collinear.
//
// The hull is taken in 3D over a prism: every point is lifted to two layers,
// so the hull vertices of the prism are exactly the 2D hull vertices twice.
func Outline(points []r2.Point) ([]r2.Point, error) {
	if len(points) < 3 {
		return nil, errors.New("citymap: insufficient points for outline (minimum 3 required)")
	}
	for _, p := range points {
		if !isFinite(p) {
			return nil, errors.New("citymap: outline of non-finite points is undefined")
		}
	}
	bounds := r2.RectFromPoints(points...)
	size := bounds.Size()
	extent := math.Max(size.X, size.Y)
	if !isPlanar(points, extent) {
		return nil, errors.New("citymap: outline of collinear points is undefined")
	}

	n := len(points)
	prism := make([]r3.Vector, 2*n)
	for i, p := range points {
		prism[i] = r3.Vector{X: p.X, Y: p.Y, Z: 0}
		prism[n+i] = r3.Vector{X: p.X, Y: p.Y, Z: extent}
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(prism, true, true, defaultEps)
	if len(ch.Indices) == 0 {
		return nil, errors.New("citymap: empty hull returned from QuickHull")
	}

	seen := make(map[r2.Point]bool)
	var hull []r2.Point
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		face := ch.Indices[i : i+3]
		// Cap faces triangulate the whole layer, interior points included;
		// only side faces touch both layers.
		if (face[0] >= n) == (face[1] >= n) && (face[1] >= n) == (face[2] >= n) {
			continue
		}
		for _, idx := range face {
			p := points[idx%n]
			if !seen[p] {
				seen[p] = true
				hull = append(hull, p)
			}
		}
	}
	if len(hull) < 3 {
		return nil, errors.New("citymap: degenerate hull returned from QuickHull")
	}

	sortCCW(hull)
	return hull, nil
}

// isPlanar reports whether points span a 2D area rather than a line or a single point.
func isPlanar(points []r2.Point, extent float64) bool {
	if extent == 0 {
		return false
	}
	p0 := points[0]
	var dir r2.Point
	for _, p := range points[1:] {
		if p != p0 {
			dir = p.Sub(p0)
			break
		}
	}
	tol := defaultEps * extent * extent
	for _, p := range points[1:] {
		if math.Abs(dir.Cross(p.Sub(p0))) > tol {
			return true
		}
	}
	return false
}

func sortCCW(hull []r2.Point) {
	var c r2.Point
	for _, p := range hull {
		c = c.Add(p)
	}
	c = c.Mul(1 / float64(len(hull)))

	slices.SortFunc(hull, func(a, b r2.Point) int {
		aa := math.Atan2(a.Y-c.Y, a.X-c.X)
		ba := math.Atan2(b.Y-c.Y, b.X-c.X)
		switch {
		case aa < ba:
			return -1
		case aa > ba:
			return 1
		}
		return 0
	})
}
