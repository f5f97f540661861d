// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

// Package history persists completed POD resolutions so earlier lookups can
// be consulted offline, searched by comune, and grouped spatially through
// the H3 cells of the area centroid.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uber/h3-go/v4"

	"github.com/mrovere/gsepod/gse"
	"github.com/mrovere/gsepod/spatial"
	"github.com/mrovere/gsepod/utils/textutils"
)

// listSeparator joins the name lists into their storage columns. Comune and
// province names never contain a comma.
const listSeparator = ", "

// Record is one stored resolution.
type Record struct {
	POD            string         `json:"pod"`
	CabinaPrimaria string         `json:"cabina_primaria"`
	Fornitore      string         `json:"fornitore,omitempty"`
	Regioni        []string       `json:"regioni"`
	Province       []string       `json:"province"`
	Comuni         []string       `json:"comuni"`
	Centroid       *spatial.Point `json:"centroid,omitempty"`
	ResolvedAt     time.Time      `json:"resolved_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	H3Res3         int64          `json:"-"`
	H3Res5         int64          `json:"-"`
	H3Res7         int64          `json:"-"`
}

// FromResult builds a Record from a finished resolution.
func FromResult(result *gse.PODResult) *Record {
	return &Record{
		POD:            result.POD,
		CabinaPrimaria: result.CabinaPrimaria,
		Fornitore:      result.Fornitore,
		Regioni:        result.Regioni,
		Province:       result.Province,
		Comuni:         result.Comuni,
		Centroid:       result.Centroid,
	}
}

func (r *Record) computeH3() error {
	if r.Centroid == nil {
		r.H3Res3, r.H3Res5, r.H3Res7 = 0, 0, 0

		return nil
	}

	latLng := h3.NewLatLng(r.Centroid.Lat, r.Centroid.Lng)

	for _, res := range []int{3, 5, 7} {
		cell, err := h3.LatLngToCell(latLng, res)
		if err != nil {
			return fmt.Errorf("converting centroid to h3 cell at res %d: %w", res, err)
		}

		switch res {
		case 3:
			r.H3Res3 = int64(cell)
		case 5:
			r.H3Res5 = int64(cell)
		case 7:
			r.H3Res7 = int64(cell)
		}
	}

	return nil
}

// foldedComuni is the search column: accent-folded, lowercase comune names.
func (r *Record) foldedComuni() string {
	folded := make([]string, 0, len(r.Comuni))
	for _, comune := range r.Comuni {
		folded = append(folded, textutils.LowerASCIIFolding(comune))
	}

	return strings.Join(folded, listSeparator)
}

// Repository handles persistence of resolution records.
type Repository interface {
	// CreateSchema creates the resolutions table
	CreateSchema() error

	// SaveResolution inserts or updates the record for its POD
	SaveResolution(record *Record) error

	// FindByPOD returns the stored record, or sql.ErrNoRows
	FindByPOD(pod string) (*Record, error)

	// SearchByComune returns records whose comuni match the query,
	// case- and accent-insensitively
	SearchByComune(query string, limit int) ([]*Record, error)

	// ListRecent returns the most recently updated records
	ListRecent(limit int) ([]*Record, error)

	// Count returns the number of stored records
	Count() (int, error)

	// DB returns the underlying database connection
	DB() *sql.DB
}

type sqlHistoryRepository struct {
	db *sql.DB
}

// NewRepository creates a resolution-history repository over db.
func NewRepository(db *sql.DB) Repository {
	return &sqlHistoryRepository{db: db}
}

// DB returns the underlying database connection for advanced queries.
func (r *sqlHistoryRepository) DB() *sql.DB {
	return r.db
}

func (r *sqlHistoryRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS resolutions (
			pod VARCHAR PRIMARY KEY,
			cod_ac VARCHAR NOT NULL,
			fornitore VARCHAR NOT NULL,
			regioni VARCHAR NOT NULL,
			province VARCHAR NOT NULL,
			comuni VARCHAR NOT NULL,
			comuni_folded VARCHAR NOT NULL,
			centroid_lat DOUBLE,
			centroid_lng DOUBLE,
			h3_res3 UBIGINT,
			h3_res5 UBIGINT,
			h3_res7 UBIGINT,
			resolved_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)

	return err
}

func (r *sqlHistoryRepository) SaveResolution(record *Record) error {
	if record.POD == "" {
		return errors.New("record without POD")
	}

	if err := record.computeH3(); err != nil {
		return err
	}

	record.UpdatedAt = time.Now()

	existing, err := r.FindByPOD(record.POD)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var lat, lng any
	if record.Centroid != nil {
		lat, lng = record.Centroid.Lat, record.Centroid.Lng
	}

	if existing != nil {
		record.ResolvedAt = existing.ResolvedAt

		_, err = r.db.Exec(`
			UPDATE resolutions
			SET cod_ac = ?, fornitore = ?, regioni = ?, province = ?,
			    comuni = ?, comuni_folded = ?, centroid_lat = ?, centroid_lng = ?,
			    h3_res3 = ?, h3_res5 = ?, h3_res7 = ?, updated_at = ?
			WHERE pod = ?
		`,
			record.CabinaPrimaria,
			record.Fornitore,
			strings.Join(record.Regioni, listSeparator),
			strings.Join(record.Province, listSeparator),
			strings.Join(record.Comuni, listSeparator),
			record.foldedComuni(),
			lat,
			lng,
			record.H3Res3,
			record.H3Res5,
			record.H3Res7,
			record.UpdatedAt,
			record.POD,
		)

		return err
	}

	record.ResolvedAt = record.UpdatedAt

	_, err = r.db.Exec(`
		INSERT INTO resolutions(
			pod, cod_ac, fornitore, regioni, province,
			comuni, comuni_folded, centroid_lat, centroid_lng,
			h3_res3, h3_res5, h3_res7, resolved_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.POD,
		record.CabinaPrimaria,
		record.Fornitore,
		strings.Join(record.Regioni, listSeparator),
		strings.Join(record.Province, listSeparator),
		strings.Join(record.Comuni, listSeparator),
		record.foldedComuni(),
		lat,
		lng,
		record.H3Res3,
		record.H3Res5,
		record.H3Res7,
		record.ResolvedAt,
		record.UpdatedAt,
	)

	return err
}

const selectColumns = `
	pod, cod_ac, fornitore, regioni, province, comuni,
	centroid_lat, centroid_lng, h3_res3, h3_res5, h3_res7,
	resolved_at, updated_at
`

func scanRecord(row interface{ Scan(dest ...any) error }) (*Record, error) {
	var record Record
	var regioni, province, comuni string
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&record.POD,
		&record.CabinaPrimaria,
		&record.Fornitore,
		&regioni,
		&province,
		&comuni,
		&lat,
		&lng,
		&record.H3Res3,
		&record.H3Res5,
		&record.H3Res7,
		&record.ResolvedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Regioni = splitList(regioni)
	record.Province = splitList(province)
	record.Comuni = splitList(comuni)

	if lat.Valid && lng.Valid {
		record.Centroid = &spatial.Point{Lat: lat.Float64, Lng: lng.Float64}
	}

	return &record, nil
}

func splitList(joined string) []string {
	if joined == "" {
		return []string{}
	}

	return strings.Split(joined, listSeparator)
}

func (r *sqlHistoryRepository) FindByPOD(pod string) (*Record, error) {
	row := r.db.QueryRow(
		`SELECT `+selectColumns+` FROM resolutions WHERE pod = ?`, pod)

	return scanRecord(row)
}

func (r *sqlHistoryRepository) SearchByComune(query string, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}

	folded := textutils.LowerASCIIFolding(query)

	rows, err := r.db.Query(
		`SELECT `+selectColumns+`
		 FROM resolutions
		 WHERE comuni_folded LIKE '%' || ? || '%'
		 ORDER BY updated_at DESC
		 LIMIT ?`, folded, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return collectRecords(rows)
}

func (r *sqlHistoryRepository) ListRecent(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT `+selectColumns+`
		 FROM resolutions
		 ORDER BY updated_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return collectRecords(rows)
}

func collectRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *sqlHistoryRepository) Count() (int, error) {
	var count int

	err := r.db.QueryRow(`SELECT COUNT(*) FROM resolutions`).Scan(&count)

	return count, err
}
