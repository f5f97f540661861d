// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

// Package gse resolves Italian POD codes against the GSE feature-server
// services: POD → cabina primaria (area convenzionale), area → fornitore and
// boundary geometry, geometry → intersecting comuni, with ISTAT code
// translation on top.
package gse

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/mrovere/gsepod/istat"
	"github.com/mrovere/gsepod/spatial"
	"github.com/mrovere/gsepod/utils/httputils"
)

// DefaultBaseURL is the root of the GSE feature services.
const DefaultBaseURL = "https://mappe.gse.it/srvf/rest/services"

// DefaultTimeout applies per network call, not across the three-step chain.
const DefaultTimeout = 45 * time.Second

// Layer paths under the service root. Numbers are the published layer ids.
const (
	layerPodArea        = "TIAD2/POD_AC/FeatureServer/12"
	layerAreas          = "TIAD2/Aree_Convenzionali/FeatureServer/0"
	layerMunicipalities = "TIAD2/Comuni/FeatureServer/10"
)

// Options configuration for the Resolver.
type Options struct {
	// BaseURL overrides the GSE service root. Empty means DefaultBaseURL.
	BaseURL string

	// Timeout applies to each individual upstream call
	Timeout time.Duration

	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool
}

// Resolver resolves POD codes through the GSE feature services. It owns one
// reusable HTTP client; callers should defer Close. A single Resolver is
// safe for concurrent Resolve calls: per-call state lives on the stack, and
// the ISTAT tables are read-only.
type Resolver struct {
	options   *Options
	client    *http.Client
	fs        FeatureQuerier
	closeOnce sync.Once
}

// NewResolver creates a Resolver with the provided options. A nil options
// means defaults.
func NewResolver(options *Options) *Resolver {
	if options == nil {
		options = &Options{}
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace {
		httpLogWriter = os.Stderr
	}

	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = "gsepod (+https://github.com/mrovere/gsepod)"
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &httputils.LoggingRoundTripper{
			Writer:   httpLogWriter,
			DumpBody: options.EnableHTTPBodyTrace,
			Transport: &httputils.AppendRequestHeadersRoundTripper{
				Transport: http.DefaultTransport,
				Headers:   map[string]string{"User-Agent": userAgent},
			},
		},
	}

	return &Resolver{
		options: options,
		client:  client,
		fs:      &featureServerClient{baseURL: baseURL, client: client},
	}
}

// Close releases the underlying HTTP session. Idempotent.
func (r *Resolver) Close() {
	r.closeOnce.Do(func() {
		r.client.CloseIdleConnections()
	})
}

// Resolve runs the three-step pipeline for pod and assembles the result.
// Invalid input fails before any network call; a missing area mapping or
// area detail is a NotFoundError; transport and upstream failures surface
// as ResolutionError. No retries are attempted.
func (r *Resolver) Resolve(ctx context.Context, pod string) (*PODResult, error) {
	if err := ValidatePOD(pod); err != nil {
		return nil, err
	}

	areaCode, err := r.lookupArea(ctx, pod)
	if err != nil {
		return nil, wrapStep(StepAreaLookup, err)
	}

	fornitore, geometry, err := r.areaDetail(ctx, areaCode)
	if err != nil {
		return nil, wrapStep(StepAreaDetail, err)
	}

	municipalities, err := r.intersectingMunicipalities(ctx, geometry)
	if err != nil {
		return nil, wrapStep(StepMunicipalities, err)
	}

	result := &PODResult{
		POD:            pod,
		CabinaPrimaria: areaCode,
		Fornitore:      fornitore,
		Geometry:       geometry,
		Municipalities: municipalities,
	}

	if c, ok := geometry.Centroid(); ok {
		result.Centroid = &c
	}

	aggregate(result)

	return result, nil
}

// lookupArea is step A: find the area convenzionale the POD belongs to.
func (r *Resolver) lookupArea(ctx context.Context, pod string) (string, error) {
	features, err := r.fs.QueryFeatures(ctx, layerPodArea, Query{
		Where:     fmt.Sprintf("COD_POD='%s'", pod),
		OutFields: []string{"COD_POD", "COD_AC"},
	})
	if err != nil {
		return "", err
	}

	if len(features) == 0 {
		return "", &NotFoundError{Step: StepAreaLookup, Key: pod}
	}

	// Upstream should guarantee uniqueness but that is unverified; take
	// the first deterministically and leave a trace.
	if len(features) > 1 {
		log.Printf("POD %s maps to %d areas, using the first", pod, len(features))
	}

	code, ok := attrString(features[0].Attributes, "COD_AC")
	if !ok || code == "" {
		return "", &NotFoundError{Step: StepAreaLookup, Key: pod}
	}

	return code, nil
}

// areaDetail is step B: fornitore and boundary geometry of the area.
// A missing RAG_SOC is tolerated; a missing record is not.
func (r *Resolver) areaDetail(ctx context.Context, areaCode string) (string, *spatial.Polygon, error) {
	features, err := r.fs.QueryFeatures(ctx, layerAreas, Query{
		Where:          fmt.Sprintf("COD_AC='%s'", areaCode),
		OutFields:      []string{"COD_AC", "RAG_SOC"},
		ReturnGeometry: true,
	})
	if err != nil {
		return "", nil, err
	}

	if len(features) == 0 {
		return "", nil, &NotFoundError{Step: StepAreaDetail, Key: areaCode}
	}

	fornitore, _ := attrString(features[0].Attributes, "RAG_SOC")

	return fornitore, features[0].Geometry, nil
}

// intersectingMunicipalities is step C: comuni whose boundary intersects the
// area geometry. An empty geometry short-circuits to an empty list, and so
// does an empty intersection: an area without enclosed comuni is valid.
func (r *Resolver) intersectingMunicipalities(ctx context.Context, geometry *spatial.Polygon) ([]Municipality, error) {
	if geometry.IsEmpty() {
		log.Print("area geometry has no rings, skipping spatial query")

		return nil, nil
	}

	features, err := r.fs.QueryFeatures(ctx, layerMunicipalities, Query{
		OutFields:  []string{"COMUNE", "COD_REG", "COD_PROV", "PRO_COM"},
		Intersects: geometry,
	})
	if err != nil {
		return nil, err
	}

	municipalities := make([]Municipality, 0, len(features))

	for _, f := range features {
		name, ok := attrString(f.Attributes, "COMUNE")
		if !ok || name == "" {
			log.Printf("skipping municipality record without COMUNE: %v", f.Attributes)

			continue
		}

		m := Municipality{Name: name}
		m.RegionCode, _ = attrInt(f.Attributes, "COD_REG")
		m.ProvinceCode, _ = attrInt(f.Attributes, "COD_PROV")

		if code, ok := attrInt(f.Attributes, "PRO_COM"); ok {
			m.NationalCode = strconv.Itoa(code)
		} else if s, ok := attrString(f.Attributes, "PRO_COM"); ok {
			m.NationalCode = s
		}

		municipalities = append(municipalities, m)
	}

	return municipalities, nil
}

// aggregate derives the name lists from the municipality records: comuni in
// upstream order, regioni/province deduplicated preserving first-seen order.
// Unknown codes degrade to placeholders, they never abort the resolution.
func aggregate(result *PODResult) {
	result.Comuni = make([]string, 0, len(result.Municipalities))
	result.Regioni = []string{}
	result.Province = []string{}

	seenRegion := make(map[int]bool)
	seenProvince := make(map[int]bool)

	for _, m := range result.Municipalities {
		result.Comuni = append(result.Comuni, m.Name)

		if !seenRegion[m.RegionCode] {
			seenRegion[m.RegionCode] = true

			if !istat.KnownRegion(m.RegionCode) {
				log.Printf("unmapped region code %d for comune %q", m.RegionCode, m.Name)
			}

			result.Regioni = append(result.Regioni, istat.RegionName(m.RegionCode))
		}

		if !seenProvince[m.ProvinceCode] {
			seenProvince[m.ProvinceCode] = true

			if !istat.KnownProvince(m.ProvinceCode) {
				log.Printf("unmapped province code %d for comune %q", m.ProvinceCode, m.Name)
			}

			result.Province = append(result.Province, istat.ProvinceName(m.ProvinceCode))
		}
	}
}
