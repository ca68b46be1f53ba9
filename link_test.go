// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"errors"
	"testing"

	"github.com/gogpu/glprog/driver"
)

func compiledShader(t *testing.T, dev *mockDevice, name string, stage driver.Stage) *Shader {
	t.Helper()
	sh, err := New(dev, Source{Name: name, Stage: stage, Text: "fn main() {}"})
	if err != nil {
		t.Fatalf("New(%s): %v", name, err)
	}
	t.Cleanup(sh.Release)
	return sh
}

func TestLinkTwoStages(t *testing.T) {
	dev := newMockDevice()
	vs := compiledShader(t, dev, "vs", driver.StageVertex)
	fs := compiledShader(t, dev, "fs", driver.StageFragment)

	prog, err := Link(dev, []*Shader{vs, fs}, false)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	defer prog.Release()

	mp := prog.(*mockProgram)
	if len(mp.attached) != 2 {
		t.Fatalf("attached %d shaders, want 2", len(mp.attached))
	}
	if mp.separable {
		t.Error("non-separable link set the separable flag")
	}

	ok, err := CheckLink(prog, []*Shader{vs, fs})
	if !ok || err != nil {
		t.Fatalf("CheckLink = %v, %v", ok, err)
	}
	if len(mp.detached) != 2 {
		t.Errorf("detached %d shaders after success, want 2", len(mp.detached))
	}
}

func TestLinkFailureReportsLog(t *testing.T) {
	dev := newMockDevice()
	vs := compiledShader(t, dev, "vs", driver.StageVertex)

	dev.linkOK = false
	dev.linkLog = "error: unresolved interface block"

	prog, err := Link(dev, []*Shader{vs}, false)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	defer prog.Release()

	ok, err := CheckLink(prog, []*Shader{vs})
	if ok {
		t.Fatal("CheckLink succeeded, want failure")
	}
	if !errors.Is(err, ErrLink) {
		t.Fatalf("err = %v, want ErrLink", err)
	}
	var berr *BuildError
	if !errors.As(err, &berr) {
		t.Fatalf("err = %T, want *BuildError", err)
	}
	if berr.Log != dev.linkLog {
		t.Errorf("Log = %q, want %q", berr.Log, dev.linkLog)
	}
	mp := prog.(*mockProgram)
	if len(mp.detached) != 0 {
		t.Error("shaders detached from a failed program")
	}
}

func TestLinkSeparableMultiplePanics(t *testing.T) {
	dev := newMockDevice()
	vs := compiledShader(t, dev, "vs", driver.StageVertex)
	fs := compiledShader(t, dev, "fs", driver.StageFragment)

	defer func() {
		if recover() == nil {
			t.Error("separable link of two shaders did not panic")
		}
	}()
	Link(dev, []*Shader{vs, fs}, true)
}

func TestLinkWhileCompilingPanics(t *testing.T) {
	dev := newMockDevice()
	dev.compileLatency = 100

	sh, err := New(dev, testSource(), WithAsyncCompile())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer sh.Release()

	defer func() {
		if recover() == nil {
			t.Error("linking an in-flight shader did not panic")
		}
	}()
	Link(dev, []*Shader{sh}, false)
}

func TestLinkFailedShaderReturnsError(t *testing.T) {
	captureLogs(t)
	dev := newMockDevice()
	dev.compileOK = false

	sh, err := New(dev, testSource(), WithDeferredErrors())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sh.Status() != StatusFailed {
		t.Fatal("shader did not fail")
	}

	dev.compileOK = true
	if _, err := Link(dev, []*Shader{sh}, false); !errors.Is(err, ErrLink) {
		t.Fatalf("Link err = %v, want ErrLink", err)
	}
}
