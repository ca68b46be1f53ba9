// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glprog turns textual shader programs into validated,
// introspectable GPU program objects, without blocking the calling thread
// when the underlying driver supports non-blocking compilation.
//
// # Overview
//
// glprog drives a GL-family driver through the compile, link, and
// reflection steps of shader creation. The driver performs the work on its
// own schedule; glprog interleaves polling-based asynchronous driver
// operations with synchronous fallback paths, and produces the same
// reflection metadata (resource bindings, constant-buffer layouts) no
// matter which path was taken.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glprog"
//	    "github.com/gogpu/glprog/driver"
//	    _ "github.com/gogpu/glprog/driver/nagadriver" // register software driver
//	)
//
//	dev := driver.MustDefault()
//	sh, err := glprog.New(dev, glprog.Source{
//	    Name:    "blit",
//	    Stage:   driver.StageFragment,
//	    Text:    src,
//	    Dialect: glprog.DialectWGSL,
//	}, glprog.WithAsyncCompile())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for sh.Status() == glprog.StatusCompiling {
//	    // poll on your own cadence, e.g. once per frame
//	}
//	if sh.Status() == glprog.StatusReady {
//	    n := sh.ResourceCount()
//	    ...
//	}
//
// # Asynchronous Compilation
//
// Non-blocking mode is fixed at construction: the caller must request it
// with [WithAsyncCompile] AND the device must advertise the capability.
// If either is missing, every poll short-circuits to "complete" and the
// whole pipeline finishes inside [New]. There is no background goroutine;
// "asynchronous" means the driver works on its own thread or hardware
// queue while the caller polls [Shader.Status] from a single goroutine.
//
// # Reflection
//
// On devices with separable programs, a successful compile is linked into
// a transient single-stage program and its resource interface is extracted
// once, at completion. Uniform (constant) buffers always occupy the
// leading indices of the resource set. The shader's source dialect decides
// whether texture+sampler pairs are reported combined (GLSL) or as
// independent resources (HLSL, WGSL).
//
// # Architecture
//
// The module is organized into:
//   - Public API: Shader, Source, ResourceDesc, Status
//   - driver: the device abstraction and named driver registry
//   - driver/nagadriver: pure Go software driver backed by gogpu/naga
//
// # Error Handling
//
// Driver failures wrap the [ErrCompile] and [ErrLink] sentinels as a
// [BuildError] carrying the driver log. In blocking mode failures return
// from [New]; in non-blocking mode they surface only through
// [Shader.Status] and [Shader.Err]. Misusing the API (querying resources
// mid-compile, linking multiple shaders separably) panics.
package glprog
