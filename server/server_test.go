// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrovere/gsepod/gse"
	"github.com/mrovere/gsepod/history"
)

type stubResolver struct {
	result *gse.PODResult
	err    error
}

func (s *stubResolver) Resolve(_ context.Context, pod string) (*gse.PODResult, error) {
	if err := gse.ValidatePOD(pod); err != nil {
		return nil, err
	}

	return s.result, s.err
}

func fixtureResult() *gse.PODResult {
	return &gse.PODResult{
		POD:            "IT001E32728586",
		CabinaPrimaria: "AC001E00912",
		Fornitore:      "E-DISTRIBUZIONE S.P.A.",
		Regioni:        []string{"Veneto"},
		Province:       []string{"Venezia"},
		Comuni:         []string{"Venezia", "Mira"},
	}
}

func setupHistory(t *testing.T) history.Repository {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	repo := history.NewRepository(db)
	require.NoError(t, repo.CreateSchema())

	return repo
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	return w
}

func TestResolveEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(&stubResolver{result: fixtureResult()}, nil)
	router := srv.Router()

	w := get(router, "/api/pod/IT001E32728586")
	assert.Equal(t, http.StatusOK, w.Code)

	var got gse.PODResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "AC001E00912", got.CabinaPrimaria)
	assert.Equal(t, []string{"Venezia", "Mira"}, got.Comuni)
}

func TestResolveEndpointInvalidPOD(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(&stubResolver{result: fixtureResult()}, nil)

	w := get(srv.Router(), "/api/pod/banana")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveEndpointNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(&stubResolver{
		err: &gse.NotFoundError{Step: gse.StepAreaLookup, Key: "IT001E32728586"},
	}, nil)

	w := get(srv.Router(), "/api/pod/IT001E32728586")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveEndpointUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(&stubResolver{
		err: &gse.ResolutionError{Step: gse.StepAreaDetail, Status: 503},
	}, nil)

	w := get(srv.Router(), "/api/pod/IT001E32728586")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestIstatEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(&stubResolver{}, nil)
	router := srv.Router()

	w := get(router, "/api/istat/regioni")
	require.Equal(t, http.StatusOK, w.Code)

	var regioni map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regioni))
	assert.Len(t, regioni, 20)
	assert.Equal(t, "Veneto", regioni["5"])

	w = get(router, "/api/istat/province")
	require.Equal(t, http.StatusOK, w.Code)

	var province map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &province))
	assert.Equal(t, "Venezia", province["27"])
}

func TestResolveRecordsHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := setupHistory(t)
	srv := NewServer(&stubResolver{result: fixtureResult()}, repo)
	router := srv.Router()

	w := get(router, "/api/pod/IT001E32728586")
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := repo.FindByPOD("IT001E32728586")
	require.NoError(t, err)
	assert.Equal(t, "AC001E00912", stored.CabinaPrimaria)

	w = get(router, "/api/history/recent")
	require.Equal(t, http.StatusOK, w.Code)

	var records []*history.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "IT001E32728586", records[0].POD)

	w = get(router, "/api/history/search?comune=mira")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
}

func TestHistorySearchRequiresComune(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(&stubResolver{result: fixtureResult()}, setupHistory(t))

	w := get(srv.Router(), "/api/history/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryEndpointsAbsentWithoutRepo(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(&stubResolver{result: fixtureResult()}, nil)

	w := get(srv.Router(), "/api/history/recent")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
