// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package gse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mrovere/gsepod/spatial"
)

// Feature is one attribute/geometry record returned by a feature-server
// layer query.
type Feature struct {
	Attributes map[string]any   `json:"attributes"`
	Geometry   *spatial.Polygon `json:"geometry,omitempty"`
}

// Query describes a single feature-server layer query: an attribute filter
// or a spatial-intersects filter, plus the output field list.
type Query struct {
	// Where is an attribute equality filter, e.g. COD_POD='IT001E…'.
	Where string

	// OutFields lists the attribute fields to return.
	OutFields []string

	// ReturnGeometry asks the server to include feature geometries.
	ReturnGeometry bool

	// Intersects, when set, turns the query into a spatial-intersects
	// filter against the given polygon.
	Intersects *spatial.Polygon
}

// FeatureQuerier is the capability the resolution pipeline needs from the
// upstream: issue one layer query, get back attribute/geometry records.
// Tests substitute a deterministic fake here.
type FeatureQuerier interface {
	QueryFeatures(ctx context.Context, layer string, q Query) ([]Feature, error)
}

// featureServerError is the error object the feature server embeds in an
// HTTP-200 body when a query is rejected.
type featureServerError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type featureResponse struct {
	Features []Feature           `json:"features"`
	Error    *featureServerError `json:"error,omitempty"`
}

// featureServerClient speaks the GSE ArcGIS feature-server JSON contract.
// Attribute queries go out as GET; spatial queries carry the polygon in a
// POST form body, as geometries routinely exceed URL length limits.
type featureServerClient struct {
	baseURL string
	client  *http.Client
}

func (c *featureServerClient) QueryFeatures(ctx context.Context, layer string, q Query) ([]Feature, error) {
	params := url.Values{}
	params.Set("f", "json")
	params.Set("outFields", strings.Join(q.OutFields, ","))

	if q.Where != "" {
		params.Set("where", q.Where)
	}

	if q.ReturnGeometry {
		params.Set("returnGeometry", "true")
	}

	if q.Intersects != nil {
		geom := *q.Intersects
		if geom.SpatialReference == nil {
			sr := spatial.WGS84
			geom.SpatialReference = &sr
		}

		encoded, err := json.Marshal(&geom)
		if err != nil {
			return nil, fmt.Errorf("encoding filter geometry: %w", err)
		}

		params.Set("geometry", string(encoded))
		params.Set("geometryType", "esriGeometryPolygon")
		params.Set("spatialRel", "esriSpatialRelIntersects")
	}

	queryURL := fmt.Sprintf("%s/%s/query", c.baseURL, layer)

	var req *http.Request
	var err error

	if q.Intersects != nil {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, queryURL,
			strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, queryURL+"?"+params.Encode(), nil)
	}

	if err != nil {
		return nil, fmt.Errorf("building query for %s: %w", layer, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", layer, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying %s: %w", layer,
			&StatusError{Status: resp.StatusCode})
	}

	var body featureResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", layer, err)
	}

	if body.Error != nil {
		return nil, fmt.Errorf("querying %s: %w", layer,
			&StatusError{Status: body.Error.Code, Message: body.Error.Message})
	}

	return body.Features, nil
}
