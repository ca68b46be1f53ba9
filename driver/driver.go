// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package driver defines the device abstraction the glprog pipeline is built
// on. A Driver wraps one GL-family device: it reports capabilities, creates
// shader and program objects, and exposes the active context state that
// program introspection needs.
//
// Drivers are registered by name via Register, typically from an init()
// function in the driver's package, and selected via Get or Default.
package driver

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Common driver errors.
var (
	// ErrDriverNotAvailable is returned when a requested driver is not available.
	ErrDriverNotAvailable = errors.New("driver: not available")

	// ErrBadContextState is returned when a reflection query receives a
	// context state handle that does not belong to the device.
	ErrBadContextState = errors.New("driver: foreign context state")
)

// Capabilities describes the device features the pipeline adapts to.
// Both flags are fixed for the lifetime of the device.
type Capabilities struct {
	// AsyncCompile reports whether the driver can compile and link in the
	// background, with completion observed by polling. Without it every
	// compile and link call blocks until the driver finishes.
	AsyncCompile bool

	// SeparablePrograms reports whether a single stage can be linked into
	// its own program. Per-stage reflection requires this; without it
	// reflection is skipped and bindings resolve at full-program link time.
	SeparablePrograms bool
}

// Stage identifies a shader stage.
type Stage uint8

const (
	// StageVertex is the vertex shader stage.
	StageVertex Stage = iota
	// StageFragment is the fragment (pixel) shader stage.
	StageFragment
	// StageCompute is the compute shader stage.
	StageCompute
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// ContextState is an opaque handle to a device's active context. Program
// introspection may need to bind objects through it. The pipeline only
// threads it from Device.ContextState into Program.Resources; it never
// inspects it. Keeping the handle explicit (rather than relying on an
// ambient "current context") keeps drivers testable without a live GPU.
type ContextState any

// Device is the driver-side entry point. One Device instance wraps one
// underlying context; shader and program objects created from it must only
// be used with that device.
type Device interface {
	// Name returns the driver identifier (e.g., "naga", "gl").
	Name() string

	// Caps returns the device capability set. The result never changes.
	Caps() Capabilities

	// CreateShader creates an empty shader object for the given stage.
	CreateShader(stage Stage) (Shader, error)

	// CreateProgram creates an empty program object.
	CreateProgram() (Program, error)

	// ContextState returns the handle to the device's active context,
	// for use with Program.Resources.
	ContextState() ContextState
}

// Shader is one driver-side compile unit. The calling pattern is
// Source, Compile, then CompletionStatus until true, then CompileStatus
// and InfoLog. Release must be safe to call at any point after creation,
// including while a compile is still in flight, and releases the
// underlying handle exactly once.
type Shader interface {
	// Source replaces the shader's source text.
	Source(src string)

	// Compile starts compiling the current source. In an async-capable
	// driver it returns immediately; otherwise it blocks until done.
	Compile()

	// CompletionStatus reports whether the driver has finished processing
	// the last Compile call. It does not imply success.
	CompletionStatus() bool

	// CompileStatus reports whether the last compile succeeded.
	// Only meaningful once CompletionStatus returns true.
	CompileStatus() bool

	// InfoLog returns the compile log. May be non-empty on success if the
	// driver emitted warnings.
	InfoLog() string

	// Release frees the underlying handle. Safe to call exactly once.
	Release()
}

// Program is one driver-side program object.
type Program interface {
	// SetSeparable marks the program as separable. Must be called before
	// Link; calling it afterwards has no effect on most drivers.
	SetSeparable(separable bool)

	// Attach attaches a compiled shader to the program.
	Attach(sh Shader)

	// Detach detaches a previously attached shader.
	Detach(sh Shader)

	// Link starts linking the attached shaders. In an async-capable driver
	// it returns immediately; otherwise it blocks until done.
	Link()

	// CompletionStatus reports whether the driver has finished processing
	// the last Link call. It does not imply success.
	CompletionStatus() bool

	// LinkStatus reports whether the last link succeeded.
	// Only meaningful once CompletionStatus returns true.
	LinkStatus() bool

	// InfoLog returns the link log.
	InfoLog() string

	// Resources enumerates the program's active resources. Must only be
	// called on a successfully linked program. When withLayouts is set,
	// buffer-typed resources carry their member layout. The order of the
	// returned slice is driver-defined; callers impose their own ordering.
	Resources(ctx ContextState, withLayouts bool) ([]Resource, error)

	// Release frees the underlying handle. Safe to call exactly once,
	// at any point after creation.
	Release()
}

// ResourceKind classifies a reflected resource.
type ResourceKind uint8

const (
	// KindUniformBuffer is a uniform (constant) buffer binding.
	KindUniformBuffer ResourceKind = iota
	// KindStorageBuffer is a read/write storage buffer binding.
	KindStorageBuffer
	// KindTexture is a sampled texture binding without sampler state.
	KindTexture
	// KindSampler is a standalone sampler binding.
	KindSampler
	// KindCombinedTextureSampler is a texture and its sampler reported as
	// one resource (GL-style sampler2D uniforms).
	KindCombinedTextureSampler
	// KindStorageImage is a storage image binding.
	KindStorageImage
)

// String returns the kind name.
func (k ResourceKind) String() string {
	switch k {
	case KindUniformBuffer:
		return "uniform-buffer"
	case KindStorageBuffer:
		return "storage-buffer"
	case KindTexture:
		return "texture"
	case KindSampler:
		return "sampler"
	case KindCombinedTextureSampler:
		return "combined-texture-sampler"
	case KindStorageImage:
		return "storage-image"
	default:
		return "unknown"
	}
}

// Resource is one raw reflected binding as the driver reports it, before
// the pipeline applies its sampler-combining policy and ordering contract.
type Resource struct {
	// Name is the resource name as declared in source.
	Name string

	// Kind classifies the resource.
	Kind ResourceKind

	// Binding is the binding slot within the group.
	Binding uint32

	// Group is the binding group (descriptor set). Zero on drivers whose
	// source model has no groups.
	Group uint32

	// ArraySize is the declared array size, 1 for non-arrays.
	ArraySize uint32

	// PairedSampler names the sampler a KindTexture resource is sampled
	// with, when the driver can determine it. Used by combined-sampler
	// reflection to pair the two into one resource.
	PairedSampler string

	// TexFormat is the texel format of a KindStorageImage resource, or
	// gputypes.TextureFormatUndefined when the driver does not report it.
	TexFormat gputypes.TextureFormat

	// Layout is the member layout of a buffer-typed resource. Present only
	// when layouts were requested and the resource is a buffer.
	Layout *BufferLayout
}

// BufferLayout describes the memory layout of a uniform or storage buffer.
type BufferLayout struct {
	// Name is the buffer's type name, when the source declares one.
	Name string

	// Size is the buffer span in bytes.
	Size uint32

	// Members lists the buffer members in declaration order.
	Members []BufferMember
}

// BufferMember is one field of a buffer layout.
type BufferMember struct {
	// Name is the member name.
	Name string

	// Type is the member's type spelled in source syntax (e.g. "vec4<f32>").
	Type string

	// Offset is the byte offset from the start of the buffer.
	Offset uint32

	// Size is the member size in bytes.
	Size uint32

	// ArraySize is the declared array element count, 1 for non-arrays.
	ArraySize uint32
}
