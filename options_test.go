// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"testing"
)

func TestOptionDefaults(t *testing.T) {
	var cfg config
	if cfg.async || cfg.diagnostics || cfg.bufferLayouts || cfg.deferredErrors {
		t.Errorf("zero config has options set: %+v", cfg)
	}
}

func TestOptionsApply(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		check func(config) bool
	}{
		{"WithAsyncCompile", WithAsyncCompile(), func(c config) bool { return c.async }},
		{"WithDiagnostics", WithDiagnostics(), func(c config) bool { return c.diagnostics }},
		{"WithBufferLayouts", WithBufferLayouts(), func(c config) bool { return c.bufferLayouts }},
		{"WithDeferredErrors", WithDeferredErrors(), func(c config) bool { return c.deferredErrors }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config
			tt.opt(&cfg)
			if !tt.check(cfg) {
				t.Errorf("%s did not set its field: %+v", tt.name, cfg)
			}
		})
	}
}

func TestOptionsCompose(t *testing.T) {
	var cfg config
	for _, opt := range []Option{WithAsyncCompile(), WithDiagnostics(), WithBufferLayouts()} {
		opt(&cfg)
	}
	if !cfg.async || !cfg.diagnostics || !cfg.bufferLayouts {
		t.Errorf("composed options lost a field: %+v", cfg)
	}
	if cfg.deferredErrors {
		t.Errorf("unset option appeared: %+v", cfg)
	}
}
