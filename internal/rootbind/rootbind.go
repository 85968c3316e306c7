// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package rootbind mirrors the root parameters bound on a command list.
//
// A Table holds the last value written to each root parameter slot of the
// current root signature. Bind-group changes overwrite the slots a group
// owns and report the range that must be re-emitted; Flush then records the
// native setter for every non-empty slot of that range. Slots are never
// diffed: a written slot is always re-emitted.
package rootbind

import (
	"fmt"

	"github.com/gogpu/halcmd/native"
)

// MaxRootElements bounds the number of root parameters of one signature.
// A root signature is limited to 64 DWORDs and every parameter costs at
// least one.
const MaxRootElements = 64

// Kind is the type of a root descriptor bound from a dynamic-offset buffer.
type Kind uint8

const (
	KindConstant Kind = iota
	KindShaderResource
	KindUnorderedAccess
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindShaderResource:
		return "ShaderResource"
	case KindUnorderedAccess:
		return "UnorderedAccess"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ElementType tags an Element.
type ElementType uint8

const (
	ElementEmpty ElementType = iota
	ElementTable
	ElementDynamicBuffer
)

// Element is the value of one root parameter slot.
//
// Table is set for ElementTable; Kind and Address for ElementDynamicBuffer.
type Element struct {
	Type    ElementType
	Table   native.GPUDescriptor
	Kind    Kind
	Address native.GPUAddress
}

// TableElement returns a descriptor table element.
func TableElement(base native.GPUDescriptor) Element {
	return Element{Type: ElementTable, Table: base}
}

// DynamicBufferElement returns a root descriptor element.
func DynamicBufferElement(kind Kind, addr native.GPUAddress) Element {
	return Element{Type: ElementDynamicBuffer, Kind: kind, Address: addr}
}

// TableTypes records which descriptor tables a bind group owns.
type TableTypes uint8

const (
	// ViewsTable is a table of constant, shader-resource and
	// unordered-access views.
	ViewsTable TableTypes = 1 << iota
	// SamplersTable is a table of samplers.
	SamplersTable
)

// Count returns the number of tables, which is also the number of root
// slots they occupy.
func (t TableTypes) Count() uint32 {
	var n uint32
	if t&ViewsTable != 0 {
		n++
	}
	if t&SamplersTable != 0 {
		n++
	}
	return n
}

// GroupInfo is the root layout of one bind group in a pipeline layout.
// The group owns the contiguous slots starting at BaseRootIndex: the views
// table, the samplers table, then one slot per dynamic buffer.
type GroupInfo struct {
	BaseRootIndex  uint32
	Tables         TableTypes
	DynamicBuffers []Kind
}

// Slots returns the number of root slots the group occupies.
func (g GroupInfo) Slots() uint32 {
	return g.Tables.Count() + uint32(len(g.DynamicBuffers))
}

// Group is the GPU-visible content of a bind group.
type Group struct {
	Views          native.GPUDescriptor
	Samplers       native.GPUDescriptor
	DynamicBuffers []native.GPUAddress
}

// Invalidation tells SetGroup which slots of the group changed.
type Invalidation uint8

const (
	// InvalidateAll rewrites the tables and the dynamic buffers.
	InvalidateAll Invalidation = iota
	// InvalidateDynamicOffsetsOnly rewrites only the dynamic buffers; the
	// tables are assumed bound already.
	InvalidateDynamicOffsetsOnly
)

// Range is a half-open range of root indices.
type Range struct {
	Start, End uint32
}

// Len returns the number of indices in the range.
func (r Range) Len() uint32 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Target selects the bind point Flush records setters for.
type Target uint8

const (
	// TargetNone records nothing.
	TargetNone Target = iota
	TargetGraphics
	TargetCompute
)

// Table is the root parameter table of the bound signature.
type Table [MaxRootElements]Element

// Clear empties every slot.
func (t *Table) Clear() {
	*t = Table{}
}

// SetGroup writes the slots owned by a bind group and returns the range it
// touched. With InvalidateDynamicOffsetsOnly the table slots are left
// alone and the range starts after them. Dynamic buffer addresses are the
// group's base address plus the matching offset. It panics when the
// offsets or the group do not match info.
func (t *Table) SetGroup(info GroupInfo, group Group, offsets []uint32, inv Invalidation) Range {
	if len(offsets) != len(info.DynamicBuffers) {
		panic(fmt.Sprintf("halcmd: bind group has %d dynamic buffers, got %d offsets",
			len(info.DynamicBuffers), len(offsets)))
	}
	if len(group.DynamicBuffers) != len(info.DynamicBuffers) {
		panic(fmt.Sprintf("halcmd: bind group has %d dynamic buffer addresses, layout declares %d",
			len(group.DynamicBuffers), len(info.DynamicBuffers)))
	}
	if info.BaseRootIndex+info.Slots() > MaxRootElements {
		panic(fmt.Sprintf("halcmd: root index %d out of range", info.BaseRootIndex+info.Slots()))
	}

	idx := info.BaseRootIndex
	start := idx
	if inv == InvalidateAll {
		if info.Tables&ViewsTable != 0 {
			t[idx] = TableElement(group.Views)
			idx++
		}
		if info.Tables&SamplersTable != 0 {
			t[idx] = TableElement(group.Samplers)
			idx++
		}
	} else {
		idx += info.Tables.Count()
		start = idx
	}
	for i, kind := range info.DynamicBuffers {
		t[idx] = DynamicBufferElement(kind, group.DynamicBuffers[i]+native.GPUAddress(offsets[i]))
		idx++
	}
	return Range{Start: start, End: idx}
}

// Flush records the native setter of every non-empty slot in rng for the
// target bind point and returns how many it recorded.
func (t *Table) Flush(list native.GraphicsCommandList, target Target, rng Range) int {
	if target == TargetNone {
		return 0
	}
	if rng.End > MaxRootElements {
		panic(fmt.Sprintf("halcmd: root range %d..%d out of range", rng.Start, rng.End))
	}
	n := 0
	for i := rng.Start; i < rng.End; i++ {
		e := t[i]
		switch e.Type {
		case ElementEmpty:
			continue
		case ElementTable:
			if target == TargetGraphics {
				list.SetGraphicsRootDescriptorTable(i, e.Table)
			} else {
				list.SetComputeRootDescriptorTable(i, e.Table)
			}
		case ElementDynamicBuffer:
			setRootView(list, target, e.Kind, i, e.Address)
		}
		n++
	}
	return n
}

func setRootView(list native.GraphicsCommandList, target Target, kind Kind, index uint32, addr native.GPUAddress) {
	graphics := target == TargetGraphics
	switch kind {
	case KindConstant:
		if graphics {
			list.SetGraphicsRootConstantBufferView(index, addr)
		} else {
			list.SetComputeRootConstantBufferView(index, addr)
		}
	case KindShaderResource:
		if graphics {
			list.SetGraphicsRootShaderResourceView(index, addr)
		} else {
			list.SetComputeRootShaderResourceView(index, addr)
		}
	case KindUnorderedAccess:
		if graphics {
			list.SetGraphicsRootUnorderedAccessView(index, addr)
		} else {
			list.SetComputeRootUnorderedAccessView(index, addr)
		}
	}
}
