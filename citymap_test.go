// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package citymap

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

// MapOptions

func TestWithLabelOffsets(t *testing.T) {
	tests := []struct {
		name    string
		offsets map[string]r2.Point
		wantErr bool
	}{
		{"nil", nil, false},
		{"finite", map[string]r2.Point{"A": {X: -5, Y: 10}}, false},
		{"nan", map[string]r2.Point{"A": {X: math.NaN(), Y: 10}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &MapOptions{}
			err := WithLabelOffsets(tt.offsets)(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithLabelOffsets(%v) error = %v, wantErr %v", tt.offsets, err, tt.wantErr)
			}
		})
	}
}

func TestWithDefaultLabelOffset(t *testing.T) {
	tests := []struct {
		name    string
		off     r2.Point
		wantErr bool
	}{
		{"zero", r2.Point{}, false},
		{"positive", r2.Point{X: 3, Y: 4}, false},
		{"inf", r2.Point{X: math.Inf(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &MapOptions{}
			err := WithDefaultLabelOffset(tt.off)(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithDefaultLabelOffset(%v) error = %v, wantErr %v", tt.off, err, tt.wantErr)
			}
			if err == nil && opts.DefaultLabelOffset != tt.off {
				t.Errorf("WithDefaultLabelOffset(%v) opts.DefaultLabelOffset = %v, want %v", tt.off,
					opts.DefaultLabelOffset, tt.off)
			}
		})
	}
}

// Map

func TestNewMap_Errors(t *testing.T) {
	locations := map[string]r2.Point{"A": {X: 0, Y: 0}, "B": {X: 1, Y: 1}}
	tests := []struct {
		name  string
		edges []Edge
		opts  []MapOption
	}{
		{"unknown edge endpoint", []Edge{{A: "A", B: "Z"}}, nil},
		{"unknown edge start", []Edge{{A: "Z", B: "A"}}, nil},
		{"self loop", []Edge{{A: "A", B: "A"}}, nil},
		{"unknown label", nil, []MapOption{WithLabelOffsets(map[string]r2.Point{"Z": {}})}},
		{"bad option", nil, []MapOption{WithDefaultLabelOffset(r2.Point{X: math.NaN()})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMap("test", locations, tt.edges, tt.opts...); err == nil {
				t.Errorf("NewMap(...) error = nil, want non-nil")
			}
		})
	}
}

func TestNewMap_DefaultProfileFromName(t *testing.T) {
	tests := []struct {
		name string
		opts []MapOption
		want ScaleProfile
	}{
		{"Romania", nil, ProfileRomania},
		{"Somewhere", nil, "Somewhere"},
		{"Somewhere", []MapOption{WithProfile(ProfileHoChiMinhCity)}, ProfileHoChiMinhCity},
	}
	for _, tt := range tests {
		m, err := NewMap(tt.name, nil, nil, tt.opts...)
		if err != nil {
			t.Fatalf("NewMap(%q, ...) error = %v, want nil", tt.name, err)
		}
		if m.Profile != tt.want {
			t.Errorf("NewMap(%q, ...).Profile = %q, want %q", tt.name, m.Profile, tt.want)
		}
	}
}

func TestMap_NodesAndEdges(t *testing.T) {
	m := mustNewTriangleMap(t)

	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, m.Nodes()); diff != "" {
		t.Errorf("m.Nodes() mismatch (-want +got):\n%s", diff)
	}
	wantEdges := []Edge{{A: "A", B: "B"}, {A: "A", B: "C"}, {A: "B", B: "C"}}
	if diff := cmp.Diff(wantEdges, m.Edges()); diff != "" {
		t.Errorf("m.Edges() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "C"}, m.Neighbors["B"]); diff != "" {
		t.Errorf("m.Neighbors[B] mismatch (-want +got):\n%s", diff)
	}
	if got := m.NumNodes(); got != 4 {
		t.Errorf("m.NumNodes() = %v, want 4", got)
	}
}

func TestMap_Adjacent(t *testing.T) {
	m := mustNewTriangleMap(t)
	tests := []struct {
		a, b string
		want bool
	}{
		{"A", "B", true},
		{"B", "A", true},
		{"C", "A", true},
		{"A", "D", false},
		{"D", "D", false},
		{"A", "Z", false},
	}
	for _, tt := range tests {
		if got := m.Adjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("m.Adjacent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMap_LabelOffset(t *testing.T) {
	m := mustNewTriangleMap(t)
	if got, want := m.LabelOffset("A"), (r2.Point{X: -10, Y: 12}); got != want {
		t.Errorf("m.LabelOffset(A) = %v, want %v", got, want)
	}
	if got := m.LabelOffset("B"); got != defaultLabelOffset {
		t.Errorf("m.LabelOffset(B) = %v, want %v", got, defaultLabelOffset)
	}
}

func TestMap_ValidatePath(t *testing.T) {
	m := mustNewTriangleMap(t)
	tests := []struct {
		name    string
		path    []string
		wantErr bool
	}{
		{"empty", nil, false},
		{"single", []string{"D"}, false},
		{"connected", []string{"A", "B", "C", "A"}, false},
		{"unknown node", []string{"A", "Z"}, true},
		{"not adjacent", []string{"A", "D"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("m.ValidatePath(%v) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestMap_Normalize(t *testing.T) {
	m := mustNewTriangleMap(t)
	got, err := m.Normalize(DefaultViewport)
	if err != nil {
		t.Fatalf("m.Normalize(...) error = %v, want nil", err)
	}
	want, err := Normalize(m.Locations, DefaultViewport)
	if err != nil {
		t.Fatalf("Normalize(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("m.Normalize(...) mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_Transform(t *testing.T) {
	tests := []struct {
		name      string
		locations map[string]r2.Point
		vp        Viewport
		wantScale float64
		wantErr   bool
	}{
		{"regular", map[string]r2.Point{"A": {X: 0, Y: 0}, "B": {X: 10, Y: 10}}, Viewport{Width: 120, Height: 120, Margin: 10}, 10, false},
		{"single node", map[string]r2.Point{"A": {X: 3, Y: 3}}, DefaultViewport, 1, false},
		{"empty", nil, DefaultViewport, 1, false},
		{"non-finite", map[string]r2.Point{"A": {X: math.NaN(), Y: 3}}, DefaultViewport, 0, true},
		{"bad viewport", map[string]r2.Point{"A": {X: 0, Y: 0}, "B": {X: 1, Y: 1}}, Viewport{}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMap(tt.name, tt.locations, nil)
			if err != nil {
				t.Fatalf("NewMap(...) error = %v, want nil", err)
			}
			tr, err := m.Transform(tt.vp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("m.Transform(%+v) error = %v, wantErr %v", tt.vp, err, tt.wantErr)
			}
			if err == nil && tr.Scale != tt.wantScale {
				t.Errorf("m.Transform(%+v).Scale = %v, want %v", tt.vp, tr.Scale, tt.wantScale)
			}
		})
	}
}

// Helpers

func mustNewTriangleMap(t *testing.T) *Map {
	t.Helper()
	locations := map[string]r2.Point{
		"A": {X: 0, Y: 0},
		"B": {X: 4, Y: 0},
		"C": {X: 2, Y: 3},
		"D": {X: 9, Y: 9},
	}
	edges := []Edge{
		{A: "A", B: "B"},
		{A: "B", B: "C"},
		{A: "C", B: "A"},
		{A: "B", B: "A"},
	}
	m, err := NewMap("triangle", locations, edges,
		WithLabelOffsets(map[string]r2.Point{"A": {X: -10, Y: 12}}))
	if err != nil {
		t.Fatalf("NewMap(...) error = %v, want nil", err)
	}
	return m
}
