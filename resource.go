// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/halcmd/internal/barrier"
	"github.com/gogpu/halcmd/internal/rootbind"
	"github.com/gogpu/halcmd/native"
	"github.com/gogpu/halcmd/usage"
)

// The resource types below are created and owned by the device layer. The
// encoder only reads them; Destroy is a no-op on every one of them.

// ZeroBufferSize is the default size of the shared zero-filled buffer and
// so the largest single copy FillBuffer records.
const ZeroBufferSize uint64 = 256 << 10

// Buffer is a buffer resource.
type Buffer struct {
	Raw     native.Resource
	Address native.GPUAddress
	Size    uint64
}

// Destroy implements hal.Buffer.
func (b *Buffer) Destroy() {}

// NativeHandle implements hal.Buffer.
func (b *Buffer) NativeHandle() uintptr { return uintptr(b.Raw) }

// resolve returns the address and byte size of the buffer from offset to
// its end, or of size bytes when size is non-zero.
func (b *Buffer) resolve(offset, size uint64) (native.GPUAddress, uint32) {
	if size == 0 {
		size = b.Size - offset
	}
	return b.Address + native.GPUAddress(offset), uint32(size)
}

// Texture is a texture resource.
type Texture struct {
	Raw         native.Resource
	Format      gputypes.TextureFormat
	Dimension   gputypes.TextureDimension
	Size        gputypes.Extent3D
	MipLevels   uint32
	SampleCount uint32

	uses    atomic.Uint32
	pending atomic.Int32
}

// ArrayLayers returns the number of array layers; 3-D textures have one.
func (t *Texture) ArrayLayers() uint32 {
	if t.Dimension == gputypes.TextureDimension3D || t.Size.DepthOrArrayLayers == 0 {
		return 1
	}
	return t.Size.DepthOrArrayLayers
}

func (t *Texture) subresources() barrier.Texture {
	mips := t.MipLevels
	if mips == 0 {
		mips = 1
	}
	return barrier.Texture{
		Resource:    t.Raw,
		MipLevels:   mips,
		ArrayLayers: t.ArrayLayers(),
		Format:      t.Format,
	}
}

// subresource returns the native index of one mip level and array layer
// of the plane holding aspect.
func (t *Texture) subresource(mip, layer uint32, aspect gputypes.TextureAspect) uint32 {
	s := t.subresources()
	return s.Subresource(mip, layer, s.Plane(aspect))
}

// Uses returns the usage the texture was last transitioned to by an encoder.
func (t *Texture) Uses() usage.TextureUses {
	return usage.TextureUses(t.uses.Load())
}

// SetUses records the texture's current usage, for textures whose state
// changed outside an encoder.
func (t *Texture) SetUses(u usage.TextureUses) {
	t.uses.Store(uint32(u))
}

// Destroy implements hal.Texture.
func (t *Texture) Destroy() {}

// NativeHandle implements hal.Texture.
func (t *Texture) NativeHandle() uintptr { return uintptr(t.Raw) }

// CurrentUsage implements hal.Texture.
func (t *Texture) CurrentUsage() gputypes.TextureUsage { return t.Uses().TextureUsage() }

// AddPendingRef implements hal.Texture.
func (t *Texture) AddPendingRef() { t.pending.Add(1) }

// DecPendingRef implements hal.Texture.
func (t *Texture) DecPendingRef() { t.pending.Add(-1) }

// PendingRefs returns the number of in-flight references.
func (t *Texture) PendingRefs() int32 { return t.pending.Load() }

// TextureView is a view of one subresource base of a texture, with the
// CPU descriptors it can be bound through. A zero descriptor means the
// view has no such binding.
type TextureView struct {
	Texture        *Texture
	Format         gputypes.TextureFormat
	BaseMipLevel   uint32
	BaseArrayLayer uint32
	Aspect         gputypes.TextureAspect

	RTV          native.CPUDescriptor
	DSVReadOnly  native.CPUDescriptor
	DSVReadWrite native.CPUDescriptor
}

// Destroy implements hal.TextureView.
func (v *TextureView) Destroy() {}

// NativeHandle implements hal.TextureView.
func (v *TextureView) NativeHandle() uintptr { return uintptr(v.Texture.Raw) }

// targetBase returns the resource and subresource the view renders to.
func (v *TextureView) targetBase() (native.Resource, uint32) {
	return v.Texture.Raw, v.Texture.subresource(v.BaseMipLevel, v.BaseArrayLayer, v.Aspect)
}

func (v *TextureView) format() native.Format {
	if v.Format != gputypes.TextureFormatUndefined {
		return native.MapTextureFormat(v.Format)
	}
	return native.MapTextureFormat(v.Texture.Format)
}

// Root layout vocabulary shared with pipeline layout creation.
type (
	RootKind      = rootbind.Kind
	TableTypes    = rootbind.TableTypes
	BindGroupInfo = rootbind.GroupInfo
	Invalidation  = rootbind.Invalidation
)

const (
	RootConstant        = rootbind.KindConstant
	RootShaderResource  = rootbind.KindShaderResource
	RootUnorderedAccess = rootbind.KindUnorderedAccess

	ViewsTable    = rootbind.ViewsTable
	SamplersTable = rootbind.SamplersTable

	InvalidateAll                = rootbind.InvalidateAll
	InvalidateDynamicOffsetsOnly = rootbind.InvalidateDynamicOffsetsOnly
)

// BindGroup holds the GPU-visible descriptor tables of a bind group and
// the base address of each of its dynamic-offset buffers.
type BindGroup struct {
	Views          native.GPUDescriptor
	Samplers       native.GPUDescriptor
	DynamicBuffers []native.GPUAddress
}

// Destroy implements hal.BindGroup.
func (g *BindGroup) Destroy() {}

func (g *BindGroup) root() rootbind.Group {
	return rootbind.Group{Views: g.Views, Samplers: g.Samplers, DynamicBuffers: g.DynamicBuffers}
}

// PipelineLayout is a root signature and the root layout of each of its
// bind groups.
type PipelineLayout struct {
	Signature         native.RootSignature
	Groups            []BindGroupInfo
	TotalRootElements uint32
}

// Destroy implements hal.PipelineLayout.
func (l *PipelineLayout) Destroy() {}

// RenderPipeline is a graphics pipeline state object. VertexStrides holds
// the stride of each vertex buffer slot, zero for slots it does not use.
type RenderPipeline struct {
	Raw           native.PipelineState
	Layout        *PipelineLayout
	Topology      native.PrimitiveTopology
	VertexStrides []uint32
}

// Destroy implements hal.RenderPipeline.
func (p *RenderPipeline) Destroy() {}

// ComputePipeline is a compute pipeline state object.
type ComputePipeline struct {
	Raw    native.PipelineState
	Layout *PipelineLayout
}

// Destroy implements hal.ComputePipeline.
func (p *ComputePipeline) Destroy() {}

// QuerySet is a query heap and the type of its queries.
type QuerySet struct {
	Raw  native.QueryHeap
	Type native.QueryType
}

// Destroy implements hal.QuerySet.
func (q *QuerySet) Destroy() {}

// Shared holds the per-device objects every encoder of a device uses.
type Shared struct {
	ViewHeap    native.DescriptorHeap
	SamplerHeap native.DescriptorHeap

	DrawSignature        native.CommandSignature
	DrawIndexedSignature native.CommandSignature
	DispatchSignature    native.CommandSignature

	// NullRTV is bound for color attachment slots without a view.
	NullRTV native.CPUDescriptor

	// ZeroBuffer is a zero-filled buffer of ZeroBufferSize bytes, or of
	// ZeroSize bytes when that is set.
	ZeroBuffer native.Resource
	ZeroSize   uint64
}

func (s *Shared) zeroChunk() uint64 {
	if s.ZeroSize != 0 {
		return s.ZeroSize
	}
	return ZeroBufferSize
}

func (s *Shared) heaps(dst []native.DescriptorHeap) []native.DescriptorHeap {
	dst = dst[:0]
	if s.ViewHeap != 0 {
		dst = append(dst, s.ViewHeap)
	}
	if s.SamplerHeap != 0 {
		dst = append(dst, s.SamplerHeap)
	}
	return dst
}

// CommandBuffer is a closed command list produced by EndEncoding. It owns
// the list until the buffer is handed back with ResetAll.
type CommandBuffer struct {
	list native.GraphicsCommandList
}

// List returns the closed native list, or nil once the buffer was reset.
func (c *CommandBuffer) List() native.GraphicsCommandList { return c.list }

// Destroy implements hal.CommandBuffer. It drops the list without
// returning it to a pool.
func (c *CommandBuffer) Destroy() { c.list = nil }
