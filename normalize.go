// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package citymap

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Viewport is the target drawing rectangle in device units.
type Viewport struct {
	Width  float64
	Height float64
	Margin float64
}

// DefaultViewport is the desktop canvas size the built-in maps are laid out for.
var DefaultViewport = Viewport{Width: 900, Height: 530, Margin: 20}

// Validate returns an error if the viewport leaves no usable area inside its margins.
func (vp Viewport) Validate() error {
	if vp.Margin < 0 || math.IsNaN(vp.Margin) {
		return fmt.Errorf("citymap: viewport margin %v must be non-negative", vp.Margin)
	}
	if !(vp.Width > 2*vp.Margin) || !(vp.Height > 2*vp.Margin) {
		return fmt.Errorf("citymap: viewport %vx%v has no usable area with margin %v",
			vp.Width, vp.Height, vp.Margin)
	}
	return nil
}

// DegenerateInputError reports a point set that cannot be scaled into a viewport:
// it is empty, contains non-finite coordinates, or has a zero or overflowing
// extent on an axis.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "citymap: degenerate input: " + e.Reason
}

// Transform maps source space (y up) into device space (y down).
// A single uniform Scale is used for both axes.
type Transform struct {
	Min    r2.Point
	Scale  float64
	Offset r2.Point
	Height float64
}

// NewTransform computes the transform that fits points into vp, preserving
// aspect ratio and centering the result.
func NewTransform(points map[string]r2.Point, vp Viewport) (Transform, error) {
	if err := vp.Validate(); err != nil {
		return Transform{}, err
	}
	if len(points) == 0 {
		return Transform{}, &DegenerateInputError{Reason: "empty point set"}
	}

	bounds := r2.EmptyRect()
	for name, p := range points {
		if !isFinite(p) {
			return Transform{}, &DegenerateInputError{
				Reason: fmt.Sprintf("non-finite coordinate %v for %q", p, name),
			}
		}
		bounds = bounds.AddPoint(p)
	}

	size := bounds.Size()
	if math.IsInf(size.X, 0) || math.IsInf(size.Y, 0) {
		return Transform{}, &DegenerateInputError{Reason: "extent overflows float64"}
	}
	if size.X == 0 {
		return Transform{}, &DegenerateInputError{Reason: "zero x extent"}
	}
	if size.Y == 0 {
		return Transform{}, &DegenerateInputError{Reason: "zero y extent"}
	}

	scaleX := (vp.Width - 2*vp.Margin) / size.X
	scaleY := (vp.Height - 2*vp.Margin) / size.Y
	scale := math.Min(scaleX, scaleY)

	return Transform{
		Min:   bounds.Lo(),
		Scale: scale,
		Offset: r2.Point{
			X: (vp.Width - size.X*scale) / 2,
			Y: (vp.Height - size.Y*scale) / 2,
		},
		Height: vp.Height,
	}, nil
}

// Apply maps a source point into device space.
func (t Transform) Apply(p r2.Point) r2.Point {
	return r2.Point{
		X: t.Offset.X + (p.X-t.Min.X)*t.Scale,
		Y: t.Height - (t.Offset.Y + (p.Y-t.Min.Y)*t.Scale),
	}
}

// Normalize maps every labeled point into vp. The result has the same key set as points.
// It returns a *DegenerateInputError if points is empty or spans zero width or height.
func Normalize(points map[string]r2.Point, vp Viewport) (map[string]r2.Point, error) {
	t, err := NewTransform(points, vp)
	if err != nil {
		return nil, err
	}

	scaled := make(map[string]r2.Point, len(points))
	for name, p := range points {
		scaled[name] = t.Apply(p)
	}
	return scaled, nil
}

func isFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// FallbackTransform places points at scale 1, centered in vp. Renderers use it
// when NewTransform reports zero extent on an axis or an empty point set.
func FallbackTransform(points map[string]r2.Point, vp Viewport) (Transform, error) {
	if err := vp.Validate(); err != nil {
		return Transform{}, err
	}

	bounds := r2.EmptyRect()
	for name, p := range points {
		if !isFinite(p) {
			return Transform{}, fmt.Errorf("citymap: non-finite coordinate %v for %q", p, name)
		}
		bounds = bounds.AddPoint(p)
	}

	var lo, size r2.Point
	if !bounds.IsEmpty() {
		lo, size = bounds.Lo(), bounds.Size()
	}
	if math.IsInf(size.X, 0) || math.IsInf(size.Y, 0) {
		return Transform{}, errors.New("citymap: point extent overflows float64")
	}
	return Transform{
		Min:   lo,
		Scale: 1,
		Offset: r2.Point{
			X: (vp.Width - size.X) / 2,
			Y: (vp.Height - size.Y) / 2,
		},
		Height: vp.Height,
	}, nil
}
