// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"github.com/gogpu/glprog/driver"
)

// builderState is the compile/link progress of one shader. Transitions are
// strictly forward; a terminal state is never left or re-entered.
type builderState uint8

const (
	stateDefault builderState = iota
	stateCompiling
	stateLinking
	stateComplete
	stateFailed
)

// builder drives one shader from source to a reflected, linked result.
// It lives only until a terminal state is reached; the owning facade
// discards it the moment tick returns true, together with any
// builder-only resources.
//
// All mutation happens from the single goroutine that calls tick, so the
// builder needs no locking.
type builder struct {
	sh *Shader

	// async is the construction-time AND of the caller's request and the
	// device capability. When false, every poll short-circuits to
	// complete and the whole pipeline collapses to one synchronous tick.
	async bool
	// wantDiag requests a diagnostics buffer (log + source) on the facade.
	wantDiag bool
	// withLayouts requests constant-buffer member layouts in reflection.
	withLayouts bool
	// raise makes failures the caller's error instead of a logged,
	// recorded condition. Only ever true in blocking mode: raising across
	// a poll boundary would violate the non-blocking contract.
	raise bool

	// prog is the transient program object used to reflect the shader.
	// It exists only within the linking phase.
	prog driver.Program

	state builderState
	err   error
}

// tick advances the state machine. It executes at most one state's handler
// per call but falls through freshly-reached states, so a fully blocking
// configuration runs Default, Compiling, and Linking in a single call.
// Returns true once a terminal state is reached; the caller must stop
// calling tick after that.
func (b *builder) tick() bool {
	if b.state == stateDefault {
		b.handleDefault()
	}
	if b.state == stateCompiling {
		b.handleCompiling()
	}
	if b.state == stateLinking {
		b.handleLinking()
	}
	if b.state == stateFailed {
		b.cleanup()
	}
	return b.state == stateComplete || b.state == stateFailed
}

func (b *builder) handleDefault() {
	b.sh.unit.submit()
	b.state = stateCompiling
}

func (b *builder) handleCompiling() {
	if !b.sh.unit.pollCompiled() {
		return
	}

	ok, diag, berr := b.sh.unit.checkResult(b.wantDiag)
	if diag != nil {
		b.sh.diag = diag
	}
	if ok {
		b.state = stateLinking
	} else {
		b.fail(berr)
	}
}

func (b *builder) handleLinking() {
	dev := b.sh.dev

	if !dev.Caps().SeparablePrograms {
		// Per-stage reflection needs a separable program. Without the
		// capability, binding resolution is deferred to full-program link
		// time and the shader completes with no resource set.
		b.state = stateComplete
		return
	}

	if b.prog == nil {
		prog, err := linkUnits(dev, []*compileUnit{b.sh.unit}, true)
		if err != nil {
			b.failErr(err)
			return
		}
		b.prog = prog
	}

	if !pollLinked(b.prog, b.async) {
		return
	}

	ok, berr := checkLinkResult(b.prog, []*compileUnit{b.sh.unit}, b.sh.name)
	if !ok {
		b.fail(berr)
		return
	}

	rs, err := reflectProgram(b.prog, dev.ContextState(), b.sh.dialect, b.withLayouts)
	if err != nil {
		b.failErr(err)
		return
	}
	b.sh.resources = rs

	// The program existed only to reflect the shader; discard it.
	b.prog.Release()
	b.prog = nil
	b.state = stateComplete
}

// fail records a compile or link failure and enters the failed state.
// When the failure is not being raised to the caller it is reported
// through the package logger, since the status query alone carries no log.
func (b *builder) fail(berr *BuildError) {
	b.err = berr
	if !b.raise {
		Logger().Error(berr.Error())
	}
	b.state = stateFailed
}

// failErr is fail for driver-level errors with no info log attached.
func (b *builder) failErr(err error) {
	b.err = err
	if !b.raise {
		Logger().Error(err.Error())
	}
	b.state = stateFailed
}

// cleanup runs on entering the failed state: the compiled object and the
// transient program are released immediately so a failed shader holds no
// driver handles.
func (b *builder) cleanup() {
	if b.prog != nil {
		b.prog.Release()
		b.prog = nil
	}
	b.sh.unit.release()
}

// destroy releases builder-only resources when the owning facade is
// released mid-flight. The driver guarantees releasing an object with
// work still queued is safe.
func (b *builder) destroy() {
	if b.prog != nil {
		b.prog.Release()
		b.prog = nil
	}
}
