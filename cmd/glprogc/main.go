// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command glprogc compiles a shader through the glprog pipeline and prints
// its reflected resource interface.
//
// Usage:
//
//	glprogc [options] <input>
//
// Examples:
//
//	glprogc shader.wgsl                  # Compile a fragment shader
//	glprogc -stage compute kernel.wgsl   # Compile a compute shader
//	glprogc -layouts -v shader.wgsl      # Print buffer layouts, verbose
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/glprog"
	"github.com/gogpu/glprog/driver"
	_ "github.com/gogpu/glprog/driver/nagadriver"
)

var (
	stage      = flag.String("stage", "fragment", "shader stage: vertex, fragment, or compute")
	dialect    = flag.String("dialect", "wgsl", "source dialect: glsl, hlsl, or wgsl")
	layouts    = flag.Bool("layouts", false, "print constant buffer member layouts")
	diag       = flag.Bool("diag", false, "dump the diagnostics buffer on failure")
	async      = flag.Bool("async", false, "compile asynchronously and poll to completion")
	driverName = flag.String("driver", "", "driver to use (default: best available)")
	verbose    = flag.Bool("v", false, "log pipeline output to stderr")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	if *verbose {
		glprog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	text, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	dev := pickDevice(*driverName)
	if dev == nil {
		fmt.Fprintf(os.Stderr, "Error: driver %q is not available\n", *driverName)
		os.Exit(1)
	}

	src := glprog.Source{
		Name:    filepath.Base(inputPath),
		Stage:   parseStage(*stage),
		Text:    string(text),
		Dialect: parseDialect(*dialect),
	}

	opts := []glprog.Option{glprog.WithDeferredErrors()}
	if *async {
		opts = append(opts, glprog.WithAsyncCompile())
	}
	if *diag {
		opts = append(opts, glprog.WithDiagnostics())
	}
	if *layouts {
		opts = append(opts, glprog.WithBufferLayouts())
	}

	sh, err := glprog.New(dev, src, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sh.Release()

	for sh.Status() == glprog.StatusCompiling {
		time.Sleep(time.Millisecond)
	}
	if sh.Status() == glprog.StatusFailed {
		fmt.Fprintf(os.Stderr, "Error: %v\n", sh.Err())
		if *diag && sh.Diagnostics() != nil {
			fmt.Fprintf(os.Stderr, "\nDiagnostics:\n%s\n", sh.Diagnostics())
		}
		os.Exit(1)
	}

	printResources(sh)
}

func pickDevice(name string) driver.Device {
	if name != "" {
		return driver.Get(name)
	}
	return driver.Default()
}

func parseStage(s string) driver.Stage {
	switch s {
	case "vertex":
		return driver.StageVertex
	case "fragment":
		return driver.StageFragment
	case "compute":
		return driver.StageCompute
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown stage %q\n", s)
		os.Exit(1)
		return 0
	}
}

func parseDialect(s string) glprog.Dialect {
	switch s {
	case "glsl":
		return glprog.DialectGLSL
	case "hlsl":
		return glprog.DialectHLSL
	case "wgsl":
		return glprog.DialectWGSL
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown dialect %q\n", s)
		os.Exit(1)
		return 0
	}
}

func printResources(sh *glprog.Shader) {
	n := sh.ResourceCount()
	fmt.Printf("%s: %d resources\n", sh.Name(), n)
	for i := 0; i < n; i++ {
		r := sh.ResourceAt(i)
		fmt.Printf("  [%d] %-28s %-24s group=%d binding=%d", i, r.Name, r.Kind, r.Group, r.Binding)
		if r.ArraySize > 1 {
			fmt.Printf(" array=%d", r.ArraySize)
		}
		fmt.Println()

		if !*layouts || r.Kind != driver.KindUniformBuffer {
			continue
		}
		lay := sh.ConstantBufferLayoutAt(i)
		if lay == nil {
			continue
		}
		fmt.Printf("      %s (%d bytes)\n", lay.Name, lay.Size)
		for _, m := range lay.Members {
			fmt.Printf("      +%-4d %-16s %s\n", m.Offset, m.Name, m.Type)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `glprogc - shader pipeline compiler

Usage:
  glprogc [options] <input>

Options:
`)
	flag.PrintDefaults()
}
