// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package gse

import (
	"errors"
	"fmt"
	"strings"
)

// Step identifica lo stadio della pipeline di risoluzione.
type Step int

const (
	// StepAreaLookup POD → codice area convenzionale.
	StepAreaLookup Step = iota + 1
	// StepAreaDetail area convenzionale → fornitore e geometria.
	StepAreaDetail
	// StepMunicipalities geometria → comuni intersecanti.
	StepMunicipalities
)

func (s Step) String() string {
	switch s {
	case StepAreaLookup:
		return "area lookup"
	case StepAreaDetail:
		return "area detail"
	case StepMunicipalities:
		return "municipality intersection"
	default:
		return fmt.Sprintf("step %d", int(s))
	}
}

// InvalidPODError reports a POD that fails grammar validation. It is always
// returned before any network call is made.
type InvalidPODError struct {
	POD string
}

func (e *InvalidPODError) Error() string {
	return fmt.Sprintf("invalid POD %q: expected ITxxxE followed by 8-9 alphanumerics", e.POD)
}

// NotFoundError reports a required upstream record that is absent: either
// the POD has no area mapping, or the area has no detail record.
type NotFoundError struct {
	Step Step
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record for %q", e.Step, e.Key)
}

// StatusError reports a non-2xx HTTP status (or an error object embedded in
// a 200 body, which the feature server also produces) from the upstream.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
	}

	return fmt.Sprintf("upstream status %d", e.Status)
}

// ResolutionError wraps a transport or upstream failure of one pipeline
// step. Callers get the failing step and the underlying cause instead of a
// bare network error.
type ResolutionError struct {
	Step   Step
	Status int
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %s: %v", e.Step, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// wrapStep classifies err as a ResolutionError for the given step, lifting
// the upstream HTTP status when one is known. NotFound and already-wrapped
// errors pass through untouched.
func wrapStep(step Step, err error) error {
	if err == nil {
		return nil
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return err
	}

	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		return err
	}

	wrapped := &ResolutionError{Step: step, Err: err}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		wrapped.Status = statusErr.Status
	}

	return wrapped
}

// IsInvalidPOD reports whether err is a POD validation failure.
func IsInvalidPOD(err error) bool {
	var invalid *InvalidPODError

	return errors.As(err, &invalid)
}

// IsNotFound reports whether err means a required upstream record is absent.
func IsNotFound(err error) bool {
	var notFound *NotFoundError

	return errors.As(err, &notFound)
}

// IsTimeout reports whether err was ultimately caused by a timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}
