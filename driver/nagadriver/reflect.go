// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nagadriver

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/glprog/driver"
)

// moduleResources converts a module's bindable globals into raw driver
// resources. Non-bindable spaces (private, workgroup, push constants) are
// skipped.
func moduleResources(m *ir.Module, paired map[string]string, withLayouts bool) []driver.Resource {
	var out []driver.Resource
	for _, gv := range m.GlobalVariables {
		r := driver.Resource{
			Name:      gv.Name,
			ArraySize: 1,
			TexFormat: gputypes.TextureFormatUndefined,
		}
		if gv.Binding != nil {
			r.Group = gv.Binding.Group
			r.Binding = gv.Binding.Binding
		}

		switch gv.Space {
		case ir.SpaceUniform:
			r.Kind = driver.KindUniformBuffer
			if withLayouts {
				r.Layout = bufferLayout(m, gv.Type)
			}
		case ir.SpaceStorage:
			r.Kind = driver.KindStorageBuffer
			if withLayouts {
				r.Layout = bufferLayout(m, gv.Type)
			}
		case ir.SpaceHandle:
			switch t := resolveType(m, gv.Type).(type) {
			case ir.SamplerType:
				r.Kind = driver.KindSampler
			case ir.ImageType:
				if t.Class == ir.ImageClassStorage {
					// The IR does not retain the declared texel format.
					r.Kind = driver.KindStorageImage
				} else {
					r.Kind = driver.KindTexture
					r.PairedSampler = paired[gv.Name]
				}
			default:
				continue
			}
		default:
			continue
		}

		out = append(out, r)
	}
	return out
}

func resolveType(m *ir.Module, h ir.TypeHandle) ir.TypeInner {
	if int(h) >= len(m.Types) {
		return nil
	}
	return m.Types[h].Inner
}

func typeName(m *ir.Module, h ir.TypeHandle) string {
	if int(h) >= len(m.Types) {
		return ""
	}
	return m.Types[h].Name
}

// bufferLayout extracts the member layout of a buffer-typed global.
func bufferLayout(m *ir.Module, h ir.TypeHandle) *driver.BufferLayout {
	st, ok := resolveType(m, h).(ir.StructType)
	if !ok {
		// Non-struct buffer, e.g. var<storage> data: array<f32>.
		return &driver.BufferLayout{
			Name: typeName(m, h),
			Size: typeSize(m, h),
		}
	}

	lay := &driver.BufferLayout{
		Name: typeName(m, h),
		Size: st.Span,
	}
	for _, mem := range st.Members {
		lay.Members = append(lay.Members, driver.BufferMember{
			Name:      mem.Name,
			Type:      typeString(m, mem.Type),
			Offset:    mem.Offset,
			Size:      typeSize(m, mem.Type),
			ArraySize: arrayCount(m, mem.Type),
		})
	}
	return lay
}

// typeString spells a type the way WGSL source does.
func typeString(m *ir.Module, h ir.TypeHandle) string {
	switch t := resolveType(m, h).(type) {
	case ir.ScalarType:
		return scalarString(t)
	case ir.VectorType:
		return fmt.Sprintf("vec%d<%s>", int(t.Size), scalarString(t.Scalar))
	case ir.MatrixType:
		return fmt.Sprintf("mat%dx%d<%s>", int(t.Columns), int(t.Rows), scalarString(t.Scalar))
	case ir.ArrayType:
		if t.Size.Constant != nil {
			return fmt.Sprintf("array<%s, %d>", typeString(m, t.Base), *t.Size.Constant)
		}
		return fmt.Sprintf("array<%s>", typeString(m, t.Base))
	case ir.StructType:
		if name := typeName(m, h); name != "" {
			return name
		}
		return "struct"
	case ir.AtomicType:
		return fmt.Sprintf("atomic<%s>", scalarString(t.Scalar))
	default:
		return "unknown"
	}
}

func scalarString(t ir.ScalarType) string {
	switch t.Kind {
	case ir.ScalarFloat:
		if t.Width == 2 {
			return "f16"
		}
		return "f32"
	case ir.ScalarSint:
		return "i32"
	case ir.ScalarUint:
		return "u32"
	case ir.ScalarBool:
		return "bool"
	default:
		return "unknown"
	}
}

// typeSize returns the natural size of a type in bytes, without trailing
// struct padding. Runtime-sized arrays report zero.
func typeSize(m *ir.Module, h ir.TypeHandle) uint32 {
	switch t := resolveType(m, h).(type) {
	case ir.ScalarType:
		return uint32(t.Width)
	case ir.VectorType:
		return uint32(t.Size) * uint32(t.Scalar.Width)
	case ir.MatrixType:
		return uint32(t.Columns) * uint32(t.Rows) * uint32(t.Scalar.Width)
	case ir.ArrayType:
		if t.Size.Constant != nil {
			return t.Stride * *t.Size.Constant
		}
		return 0
	case ir.StructType:
		return t.Span
	case ir.AtomicType:
		return uint32(t.Scalar.Width)
	default:
		return 0
	}
}

func arrayCount(m *ir.Module, h ir.TypeHandle) uint32 {
	if t, ok := resolveType(m, h).(ir.ArrayType); ok && t.Size.Constant != nil {
		return *t.Size.Constant
	}
	return 1
}
