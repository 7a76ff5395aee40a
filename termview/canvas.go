// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package termview

import (
	"math"

	"github.com/golang/geo/r2"
)

const (
	// Braille cells hold a 2x4 grid of dots.
	dotsX = 2
	dotsY = 4

	brailleBase = 0x2800
)

// dotBits maps a dot position inside a cell to its braille bit.
var dotBits = [dotsY][dotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a monochrome bitmap drawn with braille characters.
// Coordinates are in dots; the origin is the top-left corner.
type Canvas struct {
	cols, rows int
	cells      [][]uint8
}

// NewCanvas returns a blank canvas of cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	cells := make([][]uint8, rows)
	for i := range cells {
		cells[i] = make([]uint8, cols)
	}
	return &Canvas{cols: cols, rows: rows, cells: cells}
}

// Size returns the canvas size in dots.
func (c *Canvas) Size() (int, int) {
	return c.cols * dotsX, c.rows * dotsY
}

// Set turns on the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.cols*dotsX || y >= c.rows*dotsY {
		return
	}
	c.cells[y/dotsY][x/dotsX] |= dotBits[y%dotsY][x%dotsX]
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.cols*dotsX || y >= c.rows*dotsY {
		return false
	}
	return c.cells[y/dotsY][x/dotsX]&dotBits[y%dotsY][x%dotsX] != 0
}

// Line draws a segment between two dots (Bresenham).
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// LineP draws a segment between two points given in dot units.
func (c *Canvas) LineP(a, b r2.Point) {
	ax, ay := dot(a)
	bx, by := dot(b)
	c.Line(ax, ay, bx, by)
}

// Polygon draws the closed outline through points.
func (c *Canvas) Polygon(points []r2.Point) {
	for i := range points {
		c.LineP(points[i], points[(i+1)%len(points)])
	}
}

// Dot draws a square of side 2·r+1 dots centered on p.
func (c *Canvas) Dot(p r2.Point, r int) {
	x, y := dot(p)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

// Runes returns the canvas as rows of braille runes; empty cells are spaces.
func (c *Canvas) Runes() [][]rune {
	out := make([][]rune, c.rows)
	for y, row := range c.cells {
		out[y] = make([]rune, c.cols)
		for x, mask := range row {
			if mask == 0 {
				out[y][x] = ' '
			} else {
				out[y][x] = rune(brailleBase + int(mask))
			}
		}
	}
	return out
}

// Lines returns the canvas as strings, one per terminal row.
func (c *Canvas) Lines() []string {
	runes := c.Runes()
	out := make([]string, len(runes))
	for i, row := range runes {
		out[i] = string(row)
	}
	return out
}

// cell returns the terminal cell containing a point given in dot units.
func cell(p r2.Point) (int, int) {
	x, y := dot(p)
	return x / dotsX, y / dotsY
}

func dot(p r2.Point) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
