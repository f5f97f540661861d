// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the resolver and the resolution history over a
// small JSON HTTP API.
package server

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrovere/gsepod/gse"
	"github.com/mrovere/gsepod/history"
	"github.com/mrovere/gsepod/istat"
)

// PodResolver is the slice of gse.Resolver the server needs; tests plug a
// deterministic fake here.
type PodResolver interface {
	Resolve(ctx context.Context, pod string) (*gse.PODResult, error)
}

type Server struct {
	resolver PodResolver
	history  history.Repository
}

// NewServer wires a server around a resolver and an optional history
// repository. When historyRepo is nil the history endpoints answer 404 and
// resolutions are not recorded.
func NewServer(resolver PodResolver, historyRepo history.Repository) *Server {
	return &Server{resolver: resolver, history: historyRepo}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/api/pod/:pod", s.resolvePOD)
	r.GET("/api/istat/regioni", s.listRegioni)
	r.GET("/api/istat/province", s.listProvince)

	if s.history != nil {
		r.GET("/api/history/recent", s.listRecentResolutions)
		r.GET("/api/history/search", s.searchResolutions)
	}

	return r
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) resolvePOD(ctx *gin.Context) {
	pod := ctx.Param("pod")

	result, err := s.resolver.Resolve(ctx.Request.Context(), pod)
	if err != nil {
		switch {
		case gse.IsInvalidPOD(err):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case gse.IsNotFound(err):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}

		return
	}

	if s.history != nil {
		if err := s.history.SaveResolution(history.FromResult(result)); err != nil {
			// recording is best effort, the resolution itself succeeded
			log.Printf("recording resolution for %s: %v", result.POD, err)
		}
	}

	ctx.JSON(http.StatusOK, result)
}

func (s *Server) listRegioni(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, istat.Regions)
}

func (s *Server) listProvince(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, istat.Provinces)
}

func queryLimit(ctx *gin.Context) int {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		return 50
	}

	return limit
}

func (s *Server) listRecentResolutions(ctx *gin.Context) {
	records, err := s.history.ListRecent(queryLimit(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list resolutions"})

		return
	}

	if records == nil {
		records = []*history.Record{}
	}

	ctx.JSON(http.StatusOK, records)
}

func (s *Server) searchResolutions(ctx *gin.Context) {
	comune := ctx.Query("comune")
	if comune == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "comune query parameter is required"})

		return
	}

	records, err := s.history.SearchByComune(comune, queryLimit(ctx))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search resolutions"})

		return
	}

	if records == nil {
		records = []*history.Record{}
	}

	ctx.JSON(http.StatusOK, records)
}
