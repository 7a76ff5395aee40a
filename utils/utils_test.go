// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateRandomLocations_Length(t *testing.T) {
	tests := []struct {
		name string
		cnt  int
		seed int64
	}{
		{"zero points", 0, 42},
		{"one point", 1, 42},
		{"ten points", 10, 0},
		{"hundred points", 100, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locations := GenerateRandomLocations(tt.cnt, tt.seed)
			if len(locations) != tt.cnt {
				t.Errorf("GenerateRandomLocations(%v, %v) len = %v, want %v", tt.cnt, tt.seed,
					len(locations), tt.cnt)
			}
			for i := range tt.cnt {
				if _, ok := locations[Label(i)]; !ok {
					t.Errorf("GenerateRandomLocations(%v, %v) missing label %q", tt.cnt, tt.seed, Label(i))
				}
			}
		})
	}
}

func TestGenerateRandomLocations_InExtent(t *testing.T) {
	const (
		cnt  = 100
		seed = 0
	)
	locations := GenerateRandomLocations(cnt, seed)
	for name, p := range locations {
		if p.X < 0 || p.X >= Extent || p.Y < 0 || p.Y >= Extent {
			t.Errorf("GenerateRandomLocations(%v, %v)[%q] = %v, want in [0, %v)", cnt, seed,
				name, p, Extent)
		}
	}
}

func TestGenerateRandomLocations_Determinism(t *testing.T) {
	const (
		cnt  = 10
		seed = 0
	)
	a := GenerateRandomLocations(cnt, seed)
	b := GenerateRandomLocations(cnt, seed)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("GenerateRandomLocations(%v, %v) mismatch (-want +got):\n%v", cnt, seed, diff)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "N0000"},
		{42, "N0042"},
		{12345, "N12345"},
	}
	for _, tt := range tests {
		if got := Label(tt.i); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.i, got, tt.want)
		}
	}
}
