// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating random city locations for maps.

package utils

import (
	"fmt"
	"math/rand"

	"github.com/golang/geo/r2"
)

const (
	// Side of the square the random locations are drawn from.
	Extent = 1000.0
)

// GenerateRandomLocations generates cnt labeled points in [0, Extent)².
// Labels are "N0000", "N0001", ... The seed parameter ensures reproducibility.
func GenerateRandomLocations(cnt int, seed int64) map[string]r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	locations := make(map[string]r2.Point, cnt)

	for i := range cnt {
		locations[Label(i)] = r2.Point{
			X: random.Float64() * Extent,
			Y: random.Float64() * Extent,
		}
	}

	return locations
}

// Label returns the name GenerateRandomLocations gives to the i-th point.
func Label(i int) string {
	return fmt.Sprintf("N%04d", i)
}
