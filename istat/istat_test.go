// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package istat

import "testing"

func TestRegionName(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"first region", 1, "Piemonte"},
		{"veneto", 5, "Veneto"},
		{"last region", 20, "Sardegna"},
		{"unmapped", 999, "Unknown (code 999)"},
		{"zero", 0, "Unknown (code 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RegionName(tt.code); got != tt.want {
				t.Errorf("RegionName(%d) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestProvinceName(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"torino", 1, "Torino"},
		{"venezia", 27, "Venezia"},
		{"newest province", 111, "Sud Sardegna"},
		{"gap in the numbering", 105, "Unknown (code 105)"},
		{"unmapped", 999, "Unknown (code 999)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProvinceName(tt.code); got != tt.want {
				t.Errorf("ProvinceName(%d) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestTableCardinality(t *testing.T) {
	// Italy has exactly 20 regions; the province table carries every code
	// GSE can legitimately return.
	if len(Regions) != 20 {
		t.Errorf("len(Regions) = %d, want 20", len(Regions))
	}

	if len(Provinces) < 100 {
		t.Errorf("len(Provinces) = %d, want at least 100", len(Provinces))
	}
}

func TestKnownPredicates(t *testing.T) {
	if !KnownRegion(5) || KnownRegion(21) {
		t.Error("KnownRegion misclassifies codes")
	}

	if !KnownProvince(111) || KnownProvince(104) {
		t.Error("KnownProvince misclassifies codes")
	}
}
