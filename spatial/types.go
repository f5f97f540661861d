// Copyright 2026 The GsePod Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"
)

const earthRadius = 6371e3 // meters

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p *Point) HaversineDistance(other *Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// SpatialReference identifies the coordinate system of an esri geometry.
type SpatialReference struct {
	WKID int `json:"wkid,omitempty"`
}

// WGS84 is assumed whenever the upstream omits the spatial reference.
var WGS84 = SpatialReference{WKID: 4326}

// Polygon is an esri-JSON polygon: each ring is a closed sequence of
// [x y] vertices, x being longitude.
type Polygon struct {
	Rings            [][][]float64     `json:"rings"`
	SpatialReference *SpatialReference `json:"spatialReference,omitempty"`
}

// IsEmpty reports whether the polygon carries no usable ring.
func (p *Polygon) IsEmpty() bool {
	if p == nil || len(p.Rings) == 0 {
		return true
	}

	for _, ring := range p.Rings {
		if len(ring) >= 3 {
			return false
		}
	}

	return true
}

// Centroid computes the centroid of the outer ring. When the ring is
// degenerate (zero area or malformed vertices) the vertex mean is used.
func (p *Polygon) Centroid() (Point, bool) {
	if p.IsEmpty() {
		return Point{}, false
	}

	var ring [][]float64
	for _, r := range p.Rings {
		if len(r) >= 3 {
			ring = r

			break
		}
	}

	var area, cx, cy float64

	for i := range ring {
		j := (i + 1) % len(ring)
		if len(ring[i]) < 2 || len(ring[j]) < 2 {
			return Point{}, false
		}

		cross := ring[i][0]*ring[j][1] - ring[j][0]*ring[i][1]
		area += cross
		cx += (ring[i][0] + ring[j][0]) * cross
		cy += (ring[i][1] + ring[j][1]) * cross
	}

	if math.Abs(area) < 1e-12 {
		var sx, sy float64
		for _, v := range ring {
			sx += v[0]
			sy += v[1]
		}

		n := float64(len(ring))

		return Point{Lat: sy / n, Lng: sx / n}, true
	}

	area /= 2

	return Point{Lat: cy / (6 * area), Lng: cx / (6 * area)}, true
}
