// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package citymap

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// ScaleProfile names the map dataset an arrow is drawn on and selects its size.
type ScaleProfile string

const (
	ProfileRomania       ScaleProfile = "Romania"
	ProfileHoChiMinhCity ScaleProfile = "Ho Chi Minh City"

	// DefaultArrowScale applies to every other profile, including the empty one.
	DefaultArrowScale = 0.75
)

// Scale returns the arrow size multiplier for the profile.
func (p ScaleProfile) Scale() float64 {
	switch p {
	case ProfileRomania:
		return 1.0
	case ProfileHoChiMinhCity:
		return 2.5
	default:
		return DefaultArrowScale
	}
}

// arrowTemplate points along +x with its apex at the origin, at scale 1.
var arrowTemplate = [4]r2.Point{
	{X: 0, Y: 0},
	{X: -20, Y: 10},
	{X: -15, Y: 0},
	{X: -20, Y: -10},
}

// Arrow is an arrowhead polygon in device coordinates, ordered as
// tip, upper wing, mid back, lower wing.
type Arrow [4]r2.Point

// Tip returns the apex of the arrow.
func (a Arrow) Tip() r2.Point {
	return a[0]
}

// Vertices returns the polygon vertices as a slice.
func (a Arrow) Vertices() []r2.Point {
	return a[:]
}

// BuildArrow returns an arrowhead anchored at tip and rotated to point along
// direction. Only the angle of direction matters; the zero vector yields an
// arrow pointing along +x.
func BuildArrow(direction, tip r2.Point, profile ScaleProfile) Arrow {
	s := profile.Scale()
	sin, cos := math.Sincos(math.Atan2(direction.Y, direction.X))

	a := Arrow{tip}
	for i := 1; i < len(arrowTemplate); i++ {
		x, y := arrowTemplate[i].X*s, arrowTemplate[i].Y*s
		a[i] = r2.Point{
			X: cos*x - sin*y + tip.X,
			Y: sin*x + cos*y + tip.Y,
		}
	}
	return a
}

// PathArrows builds one arrow per consecutive pair of path nodes. Each arrow
// points from the previous node to the next one and has its tip on the next node.
func PathArrows(path []string, positions map[string]r2.Point, profile ScaleProfile) ([]Arrow, error) {
	if len(path) < 2 {
		return nil, nil
	}

	arrows := make([]Arrow, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		from, ok := positions[path[i-1]]
		if !ok {
			return nil, fmt.Errorf("citymap: unknown path node %q", path[i-1])
		}
		to, ok := positions[path[i]]
		if !ok {
			return nil, fmt.Errorf("citymap: unknown path node %q", path[i])
		}
		arrows = append(arrows, BuildArrow(to.Sub(from), to, profile))
	}
	return arrows, nil
}
