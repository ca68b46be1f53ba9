// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package driver

import (
	"testing"
)

// stubDevice implements Device for registry testing.
type stubDevice struct {
	name string
}

func (d *stubDevice) Name() string                       { return d.name }
func (d *stubDevice) Caps() Capabilities                 { return Capabilities{} }
func (d *stubDevice) CreateShader(Stage) (Shader, error) { return nil, ErrDriverNotAvailable }
func (d *stubDevice) CreateProgram() (Program, error)    { return nil, ErrDriverNotAvailable }
func (d *stubDevice) ContextState() ContextState         { return nil }

func TestRegisterAndGet(t *testing.T) {
	Register("test-driver", func() Device { return &stubDevice{name: "test-driver"} })
	defer Unregister("test-driver")

	if !IsRegistered("test-driver") {
		t.Error("IsRegistered = false after Register")
	}
	d := Get("test-driver")
	if d == nil {
		t.Fatal("Get returned nil for a registered driver")
	}
	if d.Name() != "test-driver" {
		t.Errorf("Name = %q, want %q", d.Name(), "test-driver")
	}
}

func TestGetUnregistered(t *testing.T) {
	if d := Get("no-such-driver"); d != nil {
		t.Errorf("Get returned %v for an unregistered name", d)
	}
}

func TestUnregister(t *testing.T) {
	Register("transient", func() Device { return &stubDevice{name: "transient"} })
	Unregister("transient")

	if IsRegistered("transient") {
		t.Error("IsRegistered = true after Unregister")
	}
}

func TestAvailable(t *testing.T) {
	Register("avail-a", func() Device { return &stubDevice{name: "avail-a"} })
	Register("avail-b", func() Device { return &stubDevice{name: "avail-b"} })
	defer Unregister("avail-a")
	defer Unregister("avail-b")

	names := Available()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["avail-a"] || !found["avail-b"] {
		t.Errorf("Available() = %v, missing registered drivers", names)
	}
}

func TestDefaultPrefersGL(t *testing.T) {
	Register(DriverGL, func() Device { return &stubDevice{name: DriverGL} })
	Register(DriverNaga, func() Device { return &stubDevice{name: DriverNaga} })
	defer Unregister(DriverGL)
	defer Unregister(DriverNaga)

	d := Default()
	if d == nil {
		t.Fatal("Default returned nil with drivers registered")
	}
	if d.Name() != DriverGL {
		t.Errorf("Default picked %q, want %q", d.Name(), DriverGL)
	}
}

func TestDefaultFallsBackToAnyDriver(t *testing.T) {
	Register("oddball", func() Device { return &stubDevice{name: "oddball"} })
	defer Unregister("oddball")

	d := Default()
	if d == nil {
		t.Fatal("Default returned nil with a non-priority driver registered")
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageVertex, "vertex"},
		{StageFragment, "fragment"},
		{StageCompute, "compute"},
		{Stage(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestResourceKindString(t *testing.T) {
	tests := []struct {
		kind ResourceKind
		want string
	}{
		{KindUniformBuffer, "uniform-buffer"},
		{KindStorageBuffer, "storage-buffer"},
		{KindTexture, "texture"},
		{KindSampler, "sampler"},
		{KindCombinedTextureSampler, "combined-texture-sampler"},
		{KindStorageImage, "storage-image"},
		{ResourceKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ResourceKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
