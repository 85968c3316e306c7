// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"strings"
)

// Resource is an opaque handle to a buffer or texture resource.
type Resource uintptr

// RootSignature is an opaque root signature handle. The zero value means
// no signature is bound.
type RootSignature uintptr

// PipelineState is an opaque compiled pipeline state handle.
type PipelineState uintptr

// DescriptorHeap is an opaque shader-visible descriptor heap handle.
type DescriptorHeap uintptr

// CommandSignature is an opaque ExecuteIndirect argument layout.
type CommandSignature uintptr

// QueryHeap is an opaque query heap handle.
type QueryHeap uintptr

// CPUDescriptor addresses a CPU-side descriptor (RTV/DSV).
type CPUDescriptor uintptr

// GPUDescriptor addresses the base of a GPU-visible descriptor table.
type GPUDescriptor uint64

// GPUAddress is a raw GPU virtual address.
type GPUAddress uint64

// AllSubresources addresses every subresource of a resource in a barrier.
const AllSubresources uint32 = 0xFFFFFFFF

// TextureDataPitchAlignment is the required row pitch alignment, in bytes,
// of placed footprints.
const TextureDataPitchAlignment uint32 = 256

// ResourceStates is the set of driver-visible states a resource can be in.
type ResourceStates uint32

// Resource states. Values match D3D12_RESOURCE_STATES.
const (
	StateCommon                  ResourceStates = 0
	StateVertexAndConstantBuffer ResourceStates = 0x1
	StateIndexBuffer             ResourceStates = 0x2
	StateRenderTarget            ResourceStates = 0x4
	StateUnorderedAccess         ResourceStates = 0x8
	StateDepthWrite              ResourceStates = 0x10
	StateDepthRead               ResourceStates = 0x20
	StateNonPixelShaderResource  ResourceStates = 0x40
	StatePixelShaderResource     ResourceStates = 0x80
	StateIndirectArgument        ResourceStates = 0x200
	StateCopyDest                ResourceStates = 0x400
	StateCopySource              ResourceStates = 0x800
	StateResolveDest             ResourceStates = 0x1000
	StateResolveSource           ResourceStates = 0x2000

	// StatePresent is an alias of StateCommon.
	StatePresent = StateCommon
)

var stateNames = []struct {
	state ResourceStates
	name  string
}{
	{StateVertexAndConstantBuffer, "VertexAndConstantBuffer"},
	{StateIndexBuffer, "IndexBuffer"},
	{StateRenderTarget, "RenderTarget"},
	{StateUnorderedAccess, "UnorderedAccess"},
	{StateDepthWrite, "DepthWrite"},
	{StateDepthRead, "DepthRead"},
	{StateNonPixelShaderResource, "NonPixelShaderResource"},
	{StatePixelShaderResource, "PixelShaderResource"},
	{StateIndirectArgument, "IndirectArgument"},
	{StateCopyDest, "CopyDest"},
	{StateCopySource, "CopySource"},
	{StateResolveDest, "ResolveDest"},
	{StateResolveSource, "ResolveSource"},
}

// String returns the state names joined by '|'.
func (s ResourceStates) String() string {
	if s == StateCommon {
		return "Common"
	}
	var b strings.Builder
	rest := s
	for _, n := range stateNames {
		if s&n.state == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n.name)
		rest &^= n.state
	}
	if rest != 0 {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "0x%x", uint32(rest))
	}
	return b.String()
}
