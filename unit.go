// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"github.com/gogpu/glprog/driver"
)

// compileUnit owns one shader's source text and the driver compile object
// it is submitted to. The driver handle is acquired at construction and
// released exactly once, by the owning facade or by the state machine's
// failure cleanup.
type compileUnit struct {
	name   string
	source string
	obj    driver.Shader
	// async selects the non-blocking poll strategy. Fixed at construction;
	// the blocking and non-blocking paths differ only in the wait
	// condition, so this is a tagged branch rather than dispatch.
	async bool
}

// newCompileUnit acquires the driver compile object for the source's stage.
func newCompileUnit(dev driver.Device, src Source, async bool) (*compileUnit, error) {
	obj, err := dev.CreateShader(src.Stage)
	if err != nil {
		return nil, err
	}
	return &compileUnit{
		name:   src.Name,
		source: src.Text,
		obj:    obj,
		async:  async,
	}, nil
}

// submit hands the source to the driver and starts the compile. Completion
// is observed separately through pollCompiled.
func (u *compileUnit) submit() {
	u.obj.Source(u.source)
	u.obj.Compile()
}

// pollCompiled reports whether the driver finished processing the compile.
// In blocking mode the driver already finished inside submit, so the poll
// short-circuits to true.
func (u *compileUnit) pollCompiled() bool {
	if !u.async {
		return true
	}
	return u.obj.CompletionStatus()
}

// checkResult queries the compile result and reads the driver log once,
// even on success, since some drivers emit warnings for sources that
// compile. When wantDiagnostics is set and the driver produced a log, the
// returned diagnostics buffer holds the log, a NUL separator, and the full
// source. On failure it also returns a *BuildError; without a requested
// diagnostics buffer the full source is dumped to the package logger for
// local debugging instead.
func (u *compileUnit) checkResult(wantDiagnostics bool) (ok bool, diag []byte, berr *BuildError) {
	compiled := u.obj.CompileStatus()
	log := u.obj.InfoLog()

	if wantDiagnostics && log != "" {
		diag = diagnosticsBuffer(log, u.source)
	}

	if compiled {
		if log != "" {
			Logger().Info("compiler output for shader", "shader", u.name, "log", log)
		}
		return true, diag, nil
	}

	berr = &BuildError{
		Op:       "compile",
		Name:     u.name,
		Log:      log,
		sentinel: ErrCompile,
	}
	if wantDiagnostics {
		berr.Diagnostics = diag
	} else {
		// Dump the full source so the failure can be reproduced from the
		// log alone.
		Logger().Info("failed shader full source:\n\n>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>\n" +
			u.source + "\n<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<\n")
	}
	return false, diag, berr
}

// release frees the driver handle. Safe to call while a compile is still
// in flight; drivers guarantee release without waiting.
func (u *compileUnit) release() {
	if u.obj != nil {
		u.obj.Release()
		u.obj = nil
	}
}

// diagnosticsBuffer builds the failure triage buffer tooling consumes:
// the driver log, a NUL separator, and the full source text.
func diagnosticsBuffer(log, source string) []byte {
	buf := make([]byte, 0, len(log)+1+len(source))
	buf = append(buf, log...)
	buf = append(buf, 0)
	buf = append(buf, source...)
	return buf
}
