// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pass holds the state of the render or compute pass open on a
// command list.
package pass

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/halcmd/internal/rootbind"
	"github.com/gogpu/halcmd/native"
)

// MaxVertexBuffers is the number of input-assembler vertex buffer slots.
const MaxVertexBuffers = 16

// Kind is the kind of the open pass. Transfer means no render or compute
// pass is open; only copies, barriers and queries are recorded.
type Kind uint8

const (
	Transfer Kind = iota
	Render
	Compute
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Transfer:
		return "Transfer"
	case Render:
		return "Render"
	case Compute:
		return "Compute"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Resolve is a multisample resolve recorded at render pass begin and
// performed at render pass end.
type Resolve struct {
	Src            native.Resource
	SrcSubresource uint32
	Dst            native.Resource
	DstSubresource uint32
	Format         native.Format
}

// State is the pass-local state of an encoder. The zero value is a closed
// pass.
type State struct {
	Kind Kind

	// Signature is the bound root signature, zero when none is bound.
	Signature native.RootSignature
	Root      rootbind.Table

	VertexBuffers      [MaxVertexBuffers]native.VertexBufferView
	DirtyVertexBuffers uint32

	Resolves []Resolve
	HasLabel bool
}

// Clear returns the state to a closed pass with no signature bound.
func (s *State) Clear() {
	resolves := s.Resolves[:0]
	*s = State{}
	s.Resolves = resolves
}

// Open reports whether a render or compute pass is open.
func (s *State) Open() bool {
	return s.Kind != Transfer
}

// Begin opens a pass of the given kind. A non-nil label is recorded as an
// event scope around the pass. The shader-visible heaps stay bound until
// End. It panics if a pass is already open.
func (s *State) Begin(list native.GraphicsCommandList, kind Kind, label []byte, heaps []native.DescriptorHeap) {
	if s.Open() {
		panic(fmt.Sprintf("halcmd: %v pass begun while a %v pass is open", kind, s.Kind))
	}
	if label != nil {
		list.BeginEvent(0, label)
		s.HasLabel = true
	}
	list.SetDescriptorHeaps(heaps)
	s.Kind = kind
}

// End unbinds the heaps, closes the label scope and clears the state.
func (s *State) End(list native.GraphicsCommandList) {
	list.SetDescriptorHeaps(nil)
	if s.HasLabel {
		list.EndEvent()
	}
	s.Clear()
}

// Target returns the root binding point of the pass.
func (s *State) Target() rootbind.Target {
	switch s.Kind {
	case Render:
		return rootbind.TargetGraphics
	case Compute:
		return rootbind.TargetCompute
	default:
		return rootbind.TargetNone
	}
}

// SetVertexBuffer records the address and size of a vertex buffer slot and
// marks the slot dirty. The stride comes from the pipeline.
func (s *State) SetVertexBuffer(index uint32, addr native.GPUAddress, size uint32) {
	if index >= MaxVertexBuffers {
		panic(fmt.Sprintf("halcmd: vertex buffer slot %d out of range", index))
	}
	vb := &s.VertexBuffers[index]
	vb.BufferLocation = addr
	vb.SizeInBytes = size
	s.DirtyVertexBuffers |= 1 << index
}

// ApplyStrides sets the per-slot strides declared by a pipeline and marks
// every slot whose stride changed. A zero stride leaves the slot as is.
func (s *State) ApplyStrides(strides []uint32) {
	for i, stride := range strides {
		if i >= MaxVertexBuffers {
			break
		}
		if stride != 0 && s.VertexBuffers[i].StrideInBytes != stride {
			s.VertexBuffers[i].StrideInBytes = stride
			s.DirtyVertexBuffers |= 1 << i
		}
	}
}

// FlushVertexBuffers binds every dirty slot, one native call per slot in
// ascending order, and clears the dirty mask. It returns the number of
// slots bound.
func (s *State) FlushVertexBuffers(list native.GraphicsCommandList) int {
	n := 0
	for mask := s.DirtyVertexBuffers; mask != 0; mask &= mask - 1 {
		i := uint32(bits.TrailingZeros32(mask))
		list.IASetVertexBuffers(i, s.VertexBuffers[i:i+1])
		n++
	}
	s.DirtyVertexBuffers = 0
	return n
}

// AddResolve records a resolve to perform when the render pass ends.
func (s *State) AddResolve(r Resolve) {
	s.Resolves = append(s.Resolves, r)
}
