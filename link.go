// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"fmt"

	"github.com/gogpu/glprog/driver"
)

// linkUnits attaches the units' compiled objects to a new program object
// and starts the link. A separable program must be built from exactly one
// unit; violating that is a programming error and panics.
//
// The separable flag is set before linking. Setting it afterwards has no
// effect on most drivers.
func linkUnits(dev driver.Device, units []*compileUnit, separable bool) (driver.Program, error) {
	if separable && len(units) != 1 {
		panic("glprog: a separable program must be linked from exactly one shader")
	}

	prog, err := dev.CreateProgram()
	if err != nil {
		return nil, fmt.Errorf("glprog: create program: %w", err)
	}

	if separable {
		prog.SetSeparable(true)
	}
	for _, u := range units {
		prog.Attach(u.obj)
	}
	prog.Link()
	return prog, nil
}

// pollLinked reports whether the driver finished processing the link,
// mirroring the compile poll: always true in blocking mode.
func pollLinked(prog driver.Program, async bool) bool {
	if !async {
		return true
	}
	return prog.CompletionStatus()
}

// checkLinkResult queries the link result. On success every unit is
// detached from the program: once linked, the compiled objects are no
// longer needed by the program and remain individually reusable. On
// failure the full link log is retrieved and wrapped in a *BuildError.
func checkLinkResult(prog driver.Program, units []*compileUnit, name string) (bool, *BuildError) {
	if prog.LinkStatus() {
		for _, u := range units {
			prog.Detach(u.obj)
		}
		return true, nil
	}

	return false, &BuildError{
		Op:       "link",
		Name:     name,
		Log:      prog.InfoLog(),
		sentinel: ErrLink,
	}
}

// Link links the compiled objects of one or more ready shaders into a new
// program object and starts the driver-side link. Completion and status
// are observed on the returned program; use [CheckLink] once the program's
// CompletionStatus reports true (immediately, for blocking devices).
//
// Calling Link with a shader that has not reached a terminal state is a
// usage fault and panics; a shader that failed compilation yields an error.
// Requesting a separable program from more than one shader panics.
//
// The returned program is owned by the caller and must be released.
func Link(dev driver.Device, shaders []*Shader, separable bool) (driver.Program, error) {
	if separable && len(shaders) != 1 {
		panic("glprog: a separable program must be linked from exactly one shader")
	}

	units := make([]*compileUnit, 0, len(shaders))
	for _, sh := range shaders {
		if sh.builder != nil {
			panic("glprog: shader is still compiling; use Status to check before linking")
		}
		if sh.unit.obj == nil {
			return nil, fmt.Errorf("%w: shader %q failed compilation", ErrLink, sh.name)
		}
		units = append(units, &compileUnit{name: sh.name, source: sh.source, obj: sh.unit.obj})
	}
	return linkUnits(dev, units, separable)
}

// CheckLink queries the link status of a program built by [Link]. On
// success the shaders are detached from the program; on failure the full
// link log is returned as a *BuildError.
func CheckLink(prog driver.Program, shaders []*Shader) (bool, error) {
	units := make([]*compileUnit, 0, len(shaders))
	for _, sh := range shaders {
		units = append(units, &compileUnit{name: sh.name, obj: sh.unit.obj})
	}
	ok, berr := checkLinkResult(prog, units, linkName(shaders))
	if !ok {
		return false, berr
	}
	return true, nil
}

func linkName(shaders []*Shader) string {
	if len(shaders) == 1 {
		return shaders[0].name
	}
	return "program"
}
