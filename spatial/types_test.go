// Copyright 2026 The GsePod Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPolygonIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		poly *Polygon
		want bool
	}{
		{"nil polygon", nil, true},
		{"no rings", &Polygon{}, true},
		{"degenerate ring", &Polygon{Rings: [][][]float64{{{12, 45}, {12.1, 45}}}}, true},
		{
			"triangle",
			&Polygon{Rings: [][][]float64{{{12, 45}, {12.1, 45}, {12.1, 45.1}, {12, 45}}}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygonCentroid(t *testing.T) {
	// unit square centered at (0.5, 0.5)
	poly := &Polygon{Rings: [][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}}

	c, ok := poly.Centroid()
	if !ok {
		t.Fatal("Centroid() not ok for a valid square")
	}

	if math.Abs(c.Lng-0.5) > 1e-9 || math.Abs(c.Lat-0.5) > 1e-9 {
		t.Errorf("Centroid() = %v, want (0.5, 0.5)", c)
	}
}

func TestPolygonCentroidEmpty(t *testing.T) {
	var poly *Polygon
	if _, ok := poly.Centroid(); ok {
		t.Error("Centroid() ok for nil polygon")
	}
}

func TestPolygonJSONRoundsWGS84(t *testing.T) {
	raw := `{"rings":[[[12.3,45.4],[12.5,45.4],[12.5,45.6],[12.3,45.4]]],"spatialReference":{"wkid":4326}}`

	var poly Polygon
	if err := json.Unmarshal([]byte(raw), &poly); err != nil {
		t.Fatal(err)
	}

	if poly.SpatialReference == nil || poly.SpatialReference.WKID != WGS84.WKID {
		t.Errorf("SpatialReference = %+v, want wkid %d", poly.SpatialReference, WGS84.WKID)
	}

	if poly.IsEmpty() {
		t.Error("IsEmpty() = true for a polygon with a valid ring")
	}
}

func TestHaversineDistance(t *testing.T) {
	// Venezia ↔ Padova is about 35 km
	venezia := &Point{Lat: 45.4408, Lng: 12.3155}
	padova := &Point{Lat: 45.4064, Lng: 11.8768}

	d := venezia.HaversineDistance(padova)
	if d < 33e3 || d > 37e3 {
		t.Errorf("HaversineDistance() = %f, want ~35km", d)
	}
}
