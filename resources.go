// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"sort"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glprog/driver"
)

// ResourceDesc describes one reflected shader resource.
//
// Within a shader's resource set, uniform (constant) buffer resources
// always occupy the leading indices [0, bufferCount); consumers rely on
// this for indexed constant-buffer lookup.
type ResourceDesc struct {
	// Name is the resource name. Combined texture+sampler resources are
	// named "texture_sampler" after the GL lowering convention.
	Name string

	// Kind classifies the resource.
	Kind driver.ResourceKind

	// Binding is the binding slot within the group.
	Binding uint32

	// Group is the binding group, zero for group-less source models.
	Group uint32

	// ArraySize is the declared array size, 1 for non-arrays.
	ArraySize uint32

	// TexFormat is the texel format of a storage image, or
	// gputypes.TextureFormatUndefined when the driver does not report it.
	TexFormat gputypes.TextureFormat
}

// BufferLayout describes a constant buffer's member layout.
// It is the driver-level layout type re-exported under the public API.
type BufferLayout = driver.BufferLayout

// BufferMember is one field of a BufferLayout.
type BufferMember = driver.BufferMember

// resourceSet is the immutable reflection result. Built once on the single
// transition into the complete state, never mutated afterwards.
type resourceSet struct {
	descs []ResourceDesc
	// layouts is parallel to descs; nil for non-buffer entries and when
	// layouts were not requested.
	layouts []*BufferLayout
	// bufferCount is the number of leading uniform-buffer entries.
	bufferCount int
}

// kindRank orders resource kinds for the reflection contract: uniform
// buffers first, then the remaining kinds in a fixed order so repeated
// reflection of the same source is index-stable.
func kindRank(k driver.ResourceKind) int {
	switch k {
	case driver.KindUniformBuffer:
		return 0
	case driver.KindStorageBuffer:
		return 1
	case driver.KindCombinedTextureSampler:
		return 2
	case driver.KindTexture:
		return 3
	case driver.KindSampler:
		return 4
	case driver.KindStorageImage:
		return 5
	default:
		return 6
	}
}

// newResourceSet applies the sampler-combining policy and the ordering
// contract to the driver's raw resource list.
func newResourceSet(raw []driver.Resource, combinedSamplers bool) *resourceSet {
	if combinedSamplers {
		raw = combineSamplers(raw)
	}

	sort.SliceStable(raw, func(i, j int) bool {
		a, b := raw[i], raw[j]
		if ra, rb := kindRank(a.Kind), kindRank(b.Kind); ra != rb {
			return ra < rb
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Binding != b.Binding {
			return a.Binding < b.Binding
		}
		return a.Name < b.Name
	})

	rs := &resourceSet{
		descs:   make([]ResourceDesc, 0, len(raw)),
		layouts: make([]*BufferLayout, 0, len(raw)),
	}
	for _, r := range raw {
		rs.descs = append(rs.descs, ResourceDesc{
			Name:      r.Name,
			Kind:      r.Kind,
			Binding:   r.Binding,
			Group:     r.Group,
			ArraySize: r.ArraySize,
			TexFormat: r.TexFormat,
		})
		rs.layouts = append(rs.layouts, r.Layout)
		if r.Kind == driver.KindUniformBuffer {
			rs.bufferCount++
		}
	}
	return rs
}

// combineSamplers merges each texture with the sampler it is sampled with
// into one combined resource, the way a GL driver reports sampler uniforms.
// Samplers consumed by a pairing are dropped; so are leftover standalone
// samplers, which have no GL-side identity. A texture whose pairing the
// driver could not determine falls back to the sole sampler when exactly
// one exists.
func combineSamplers(raw []driver.Resource) []driver.Resource {
	var soleSampler string
	samplerCount := 0
	for _, r := range raw {
		if r.Kind == driver.KindSampler {
			samplerCount++
			soleSampler = r.Name
		}
	}

	out := make([]driver.Resource, 0, len(raw))
	for _, r := range raw {
		switch r.Kind {
		case driver.KindSampler:
			continue
		case driver.KindTexture:
			samp := r.PairedSampler
			if samp == "" && samplerCount == 1 {
				samp = soleSampler
			}
			if samp != "" {
				r.Kind = driver.KindCombinedTextureSampler
				r.Name = r.Name + "_" + samp
				r.PairedSampler = ""
			}
			out = append(out, r)
		default:
			out = append(out, r)
		}
	}
	return out
}
