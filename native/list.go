// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

// GraphicsCommandList is an append-only native command list.
//
// Implementations are not safe for concurrent use. A list is either open
// (between creation or Reset and Close) or closed; recording into a closed
// list is a driver error the encoder never triggers.
type GraphicsCommandList interface {
	// Reset reopens a closed list for recording with its owning allocator.
	Reset() error
	// Close finishes recording.
	Close() error
	// SetName attaches a debug name.
	SetName(name string)

	// ResourceBarrier records all barriers as one batch.
	ResourceBarrier(barriers []ResourceBarrier)

	CopyBufferRegion(dst Resource, dstOffset uint64, src Resource, srcOffset, size uint64)
	CopyTextureRegion(dst *TextureCopyLocation, dstX, dstY, dstZ uint32, src *TextureCopyLocation, srcBox *Box)

	BeginQuery(heap QueryHeap, ty QueryType, index uint32)
	EndQuery(heap QueryHeap, ty QueryType, index uint32)
	ResolveQueryData(heap QueryHeap, ty QueryType, start, count uint32, dst Resource, dstOffset uint64)

	// SetDescriptorHeaps binds shader-visible heaps; an empty slice unbinds.
	SetDescriptorHeaps(heaps []DescriptorHeap)

	// BeginEvent, SetMarker: data is a NUL-terminated UTF-16LE string when
	// metadata is 0.
	BeginEvent(metadata uint32, data []byte)
	EndEvent()
	SetMarker(metadata uint32, data []byte)

	// OMSetRenderTargets binds color targets and an optional depth-stencil
	// view (nil for none).
	OMSetRenderTargets(rtvs []CPUDescriptor, dsv *CPUDescriptor)
	ClearRenderTargetView(rtv CPUDescriptor, color [4]float32)
	ClearDepthStencilView(dsv CPUDescriptor, flags ClearFlags, depth float32, stencil uint8)
	ResolveSubresource(dst Resource, dstSub uint32, src Resource, srcSub uint32, format Format)

	SetGraphicsRootSignature(sig RootSignature)
	SetComputeRootSignature(sig RootSignature)
	SetGraphicsRootDescriptorTable(index uint32, base GPUDescriptor)
	SetComputeRootDescriptorTable(index uint32, base GPUDescriptor)
	SetGraphicsRootConstantBufferView(index uint32, addr GPUAddress)
	SetComputeRootConstantBufferView(index uint32, addr GPUAddress)
	SetGraphicsRootShaderResourceView(index uint32, addr GPUAddress)
	SetComputeRootShaderResourceView(index uint32, addr GPUAddress)
	SetGraphicsRootUnorderedAccessView(index uint32, addr GPUAddress)
	SetComputeRootUnorderedAccessView(index uint32, addr GPUAddress)

	SetPipelineState(pso PipelineState)
	IASetPrimitiveTopology(topology PrimitiveTopology)
	IASetVertexBuffers(startSlot uint32, views []VertexBufferView)
	IASetIndexBuffer(view *IndexBufferView)
	RSSetViewports(viewports []Viewport)
	RSSetScissorRects(rects []Rect)
	OMSetStencilRef(ref uint32)
	OMSetBlendFactor(factor [4]float32)

	DrawInstanced(vertexCount, instanceCount, startVertex, startInstance uint32)
	DrawIndexedInstanced(indexCount, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32)
	Dispatch(x, y, z uint32)

	// ExecuteIndirect runs up to maxCount commands described by sig from
	// args. countBuffer is zero when the count is maxCount.
	ExecuteIndirect(sig CommandSignature, maxCount uint32, args Resource, argsOffset uint64, countBuffer Resource, countOffset uint64)
}

// Device creates native command lists. It is the only device-level
// collaborator the encoder talks to.
type Device interface {
	// CreateCommandList creates an open command list of the given type.
	CreateCommandList(ty ListType) (GraphicsCommandList, error)
}
