// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package barrier builds batches of native resource barriers from usage
// transitions.
//
// A Batch is scratch memory owned by one encoder. Every barrier-emitting
// call starts with Reset, adds its transitions and ends with Flush, which
// records the whole batch as a single native call, or nothing when the
// batch is empty.
package barrier

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/halcmd/native"
	"github.com/gogpu/halcmd/usage"
)

// Texture describes the subresource geometry of a texture resource.
type Texture struct {
	Resource    native.Resource
	MipLevels   uint32
	ArrayLayers uint32
	Format      gputypes.TextureFormat
}

// Subresource returns the native subresource index of (mip, layer, plane).
func (t Texture) Subresource(mip, layer, plane uint32) uint32 {
	return mip + (layer+plane*t.ArrayLayers)*t.MipLevels
}

// Plane returns the plane that holds aspect. Every stencil format is
// stored as depth plus stencil, with stencil in plane 1.
func (t Texture) Plane(aspect gputypes.TextureAspect) uint32 {
	if aspect == gputypes.TextureAspectStencilOnly && t.Format.HasStencil() {
		return 1
	}
	return 0
}

// Covers reports whether rng spans every aspect, mip level and array layer
// of the texture.
func (t Texture) Covers(rng gputypes.ImageSubresourceRange) bool {
	return t.coversAspects(rng.Aspect) && rng.IsFullResource(t.MipLevels, t.ArrayLayers)
}

// coversAspects reports whether aspect addresses every aspect of the format.
func (t Texture) coversAspects(aspect gputypes.TextureAspect) bool {
	switch aspect {
	case gputypes.TextureAspectDepthOnly:
		return !t.Format.HasStencil()
	case gputypes.TextureAspectStencilOnly:
		return !t.Format.HasDepth()
	default:
		return true
	}
}

// Batch accumulates barriers for one native ResourceBarrier call.
type Batch struct {
	barriers []native.ResourceBarrier
}

// New returns a batch with room for capacity barriers.
func New(capacity int) *Batch {
	return &Batch{barriers: make([]native.ResourceBarrier, 0, capacity)}
}

// Reset empties the batch, keeping its memory.
func (b *Batch) Reset() {
	b.barriers = b.barriers[:0]
}

// Len returns the number of pending barriers.
func (b *Batch) Len() int { return len(b.barriers) }

// Barriers returns the pending barriers. The slice is only valid until the
// next call that modifies the batch.
func (b *Batch) Barriers() []native.ResourceBarrier { return b.barriers }

// AddTransition appends a transition barrier for one subresource.
func (b *Batch) AddTransition(res native.Resource, sub uint32, before, after native.ResourceStates) {
	b.barriers = append(b.barriers, native.Transition(res, sub, before, after))
}

// AddBuffer appends the barrier needed between two buffer usages: a
// whole-resource transition when the native states differ, a UAV barrier
// when both usages are storage writes, nothing otherwise.
func (b *Batch) AddBuffer(res native.Resource, from, to usage.BufferUses) {
	s0, s1 := usage.BufferState(from), usage.BufferState(to)
	switch {
	case s0 != s1:
		b.AddTransition(res, native.AllSubresources, s0, s1)
	case from == usage.BufferStorageWrite:
		b.barriers = append(b.barriers, native.UAV(res))
	}
}

// AddTexture appends the barriers needed between two texture usages over
// rng. A transition that covers the whole texture is one barrier on all
// subresources. A partial one is split into one barrier per mip level and
// array layer in the range, on the stencil plane for a stencil-only range
// and on plane 0 otherwise.
func (b *Batch) AddTexture(tex Texture, rng gputypes.ImageSubresourceRange, from, to usage.TextureUses) {
	s0, s1 := usage.TextureState(from), usage.TextureState(to)
	if s0 == s1 {
		if from == usage.TextureStorageWrite {
			b.barriers = append(b.barriers, native.UAV(tex.Resource))
		}
		return
	}

	if tex.Covers(rng) {
		b.AddTransition(tex.Resource, native.AllSubresources, s0, s1)
		return
	}

	mipEnd := tex.MipLevels
	if rng.MipLevelCount != nil {
		mipEnd = rng.BaseMipLevel + *rng.MipLevelCount
	}
	layerEnd := tex.ArrayLayers
	if rng.ArrayLayerCount != nil {
		layerEnd = rng.BaseArrayLayer + *rng.ArrayLayerCount
	}
	plane := tex.Plane(rng.Aspect)
	for mip := rng.BaseMipLevel; mip < mipEnd; mip++ {
		for layer := rng.BaseArrayLayer; layer < layerEnd; layer++ {
			b.AddTransition(tex.Resource, tex.Subresource(mip, layer, plane), s0, s1)
		}
	}
}

// Reverse swaps the before and after states of every pending transition.
func (b *Batch) Reverse() {
	for i := range b.barriers {
		b.barriers[i] = b.barriers[i].Reversed()
	}
}

// Flush records the pending barriers on list as one call. An empty batch
// records nothing. The batch is left unchanged so it can be reversed and
// flushed again.
func (b *Batch) Flush(list native.GraphicsCommandList) int {
	if len(b.barriers) == 0 {
		return 0
	}
	list.ResourceBarrier(b.barriers)
	return len(b.barriers)
}
