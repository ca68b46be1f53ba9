// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two driver-side failure points.
var (
	// ErrCompile is returned when the driver rejects the shader source.
	ErrCompile = errors.New("glprog: shader compilation failed")

	// ErrLink is returned when the driver rejects an otherwise-valid set of
	// compiled units when combined.
	ErrLink = errors.New("glprog: program linking failed")
)

// BuildError describes a failed compile or link. It wraps ErrCompile or
// ErrLink, so errors.Is works against the sentinels, and carries the driver
// log and the diagnostics buffer when one was requested.
type BuildError struct {
	// Op is "compile" or "link".
	Op string

	// Name is the shader name the failure belongs to.
	Name string

	// Log is the driver's info log.
	Log string

	// Diagnostics is the log followed by the full source, when a
	// diagnostics buffer was requested at creation. Nil otherwise.
	Diagnostics []byte

	sentinel error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("glprog: failed to %s shader %q (no log available)", e.Op, e.Name)
	}
	return fmt.Sprintf("glprog: failed to %s shader %q:\n%s", e.Op, e.Name, e.Log)
}

// Unwrap returns ErrCompile or ErrLink.
func (e *BuildError) Unwrap() error { return e.sentinel }
