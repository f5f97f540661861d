// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package gse

import "regexp"

// podPattern is the national POD grammar: "IT", the three-digit distributor
// code, one letter for the service type (E for electricity), and an 8 or 9
// character alphanumeric delivery-point tail.
var podPattern = regexp.MustCompile(`^IT[0-9]{3}[A-Z][A-Z0-9]{8,9}$`)

// ValidatePOD checks pod against the POD grammar. The returned error, if
// any, is an *InvalidPODError. Validation happens before any network I/O,
// and a valid POD is guaranteed safe to interpolate into an attribute
// filter (uppercase alphanumerics only).
func ValidatePOD(pod string) error {
	if !podPattern.MatchString(pod) {
		return &InvalidPODError{POD: pod}
	}

	return nil
}
