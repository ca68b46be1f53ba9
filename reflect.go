// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"fmt"

	"github.com/gogpu/glprog/driver"
)

// reflectProgram extracts the resource interface of a successfully linked
// program into an ordered, immutable resource set. The context state must
// belong to the device the program was created from; it is threaded in
// explicitly so reflection never depends on an ambient current context.
//
// The shader's dialect selects the sampler-combining policy, which must be
// stable across repeated compilations of equivalent sources for
// consistency with other backend implementations.
func reflectProgram(prog driver.Program, ctx driver.ContextState, dialect Dialect, withLayouts bool) (*resourceSet, error) {
	raw, err := prog.Resources(ctx, withLayouts)
	if err != nil {
		return nil, fmt.Errorf("glprog: reflect program: %w", err)
	}
	return newResourceSet(raw, dialect.CombinedSamplers()), nil
}
