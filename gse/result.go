// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package gse

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mrovere/gsepod/spatial"
)

// Municipality is one comune record returned by the spatial intersection.
type Municipality struct {
	Name         string `json:"comune"`
	RegionCode   int    `json:"cod_reg"`
	ProvinceCode int    `json:"cod_prov"`
	NationalCode string `json:"pro_com,omitempty"`
}

// PODResult is the assembled outcome of a resolution. It is a pure output
// value: never mutated after Resolve returns it.
type PODResult struct {
	POD            string           `json:"pod"`
	CabinaPrimaria string           `json:"cabina_primaria"`
	Fornitore      string           `json:"fornitore,omitempty"`
	Regioni        []string         `json:"regioni"`
	Province       []string         `json:"province"`
	Comuni         []string         `json:"comuni"`
	Municipalities []Municipality   `json:"municipalities,omitempty"`
	Centroid       *spatial.Point   `json:"centroid,omitempty"`
	Geometry       *spatial.Polygon `json:"-"`
}

// attrString reads a string attribute, tolerating absent or null fields.
func attrString(attrs map[string]any, key string) (string, bool) {
	v, ok := attrs[key]
	if !ok || v == nil {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// attrInt reads a numeric attribute. The feature server is not consistent
// about numeric encoding, so float64, integer, json.Number and numeric
// strings are all accepted.
func attrInt(attrs map[string]any, key string) (int, bool) {
	v, ok := attrs[key]
	if !ok || v == nil {
		return 0, false
	}

	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}

		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}

		return i, true
	default:
		return 0, false
	}
}
