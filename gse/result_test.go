// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package gse

import (
	"encoding/json"
	"testing"
)

func TestAttrInt(t *testing.T) {
	attrs := map[string]any{
		"float":   27.0,
		"int":     27,
		"int64":   int64(27),
		"number":  json.Number("27"),
		"string":  "27",
		"padded":  " 27 ",
		"text":    "venezia",
		"null":    nil,
		"decimal": json.Number("2.7"),
	}

	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"float", 27, true},
		{"int", 27, true},
		{"int64", 27, true},
		{"number", 27, true},
		{"string", 27, true},
		{"padded", 27, true},
		{"text", 0, false},
		{"null", 0, false},
		{"decimal", 0, false},
		{"missing", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := attrInt(attrs, tt.key)
			if got != tt.want || ok != tt.ok {
				t.Errorf("attrInt(%q) = (%d, %v), want (%d, %v)", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAttrString(t *testing.T) {
	attrs := map[string]any{
		"name":   "Venezia",
		"number": 27.0,
		"null":   nil,
	}

	if got, ok := attrString(attrs, "name"); !ok || got != "Venezia" {
		t.Errorf("attrString(name) = (%q, %v)", got, ok)
	}

	if _, ok := attrString(attrs, "number"); ok {
		t.Error("attrString accepted a numeric attribute")
	}

	if _, ok := attrString(attrs, "null"); ok {
		t.Error("attrString accepted a null attribute")
	}

	if _, ok := attrString(attrs, "missing"); ok {
		t.Error("attrString accepted a missing attribute")
	}
}

func TestPODResultJSONShape(t *testing.T) {
	result := &PODResult{
		POD:            "IT001E32728586",
		CabinaPrimaria: "AC001E00912",
		Regioni:        []string{"Veneto"},
		Province:       []string{"Venezia"},
		Comuni:         []string{"Venezia"},
	}

	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"pod", "cabina_primaria", "regioni", "province", "comuni"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("marshalled result misses %q", key)
		}
	}

	// an absent fornitore stays out of the document
	if _, ok := decoded["fornitore"]; ok {
		t.Error("empty fornitore serialized")
	}
}
