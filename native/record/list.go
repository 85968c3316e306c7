// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package record

import (
	"fmt"

	"github.com/gogpu/halcmd/native"
)

// Op names a recorded native call.
type Op string

// Recorded operations, one per native.GraphicsCommandList method that
// records a command.
const (
	OpResourceBarrier                    Op = "ResourceBarrier"
	OpCopyBufferRegion                   Op = "CopyBufferRegion"
	OpCopyTextureRegion                  Op = "CopyTextureRegion"
	OpBeginQuery                         Op = "BeginQuery"
	OpEndQuery                           Op = "EndQuery"
	OpResolveQueryData                   Op = "ResolveQueryData"
	OpSetDescriptorHeaps                 Op = "SetDescriptorHeaps"
	OpBeginEvent                         Op = "BeginEvent"
	OpEndEvent                           Op = "EndEvent"
	OpSetMarker                          Op = "SetMarker"
	OpOMSetRenderTargets                 Op = "OMSetRenderTargets"
	OpClearRenderTargetView              Op = "ClearRenderTargetView"
	OpClearDepthStencilView              Op = "ClearDepthStencilView"
	OpResolveSubresource                 Op = "ResolveSubresource"
	OpSetGraphicsRootSignature           Op = "SetGraphicsRootSignature"
	OpSetComputeRootSignature            Op = "SetComputeRootSignature"
	OpSetGraphicsRootDescriptorTable     Op = "SetGraphicsRootDescriptorTable"
	OpSetComputeRootDescriptorTable      Op = "SetComputeRootDescriptorTable"
	OpSetGraphicsRootConstantBufferView  Op = "SetGraphicsRootConstantBufferView"
	OpSetComputeRootConstantBufferView   Op = "SetComputeRootConstantBufferView"
	OpSetGraphicsRootShaderResourceView  Op = "SetGraphicsRootShaderResourceView"
	OpSetComputeRootShaderResourceView   Op = "SetComputeRootShaderResourceView"
	OpSetGraphicsRootUnorderedAccessView Op = "SetGraphicsRootUnorderedAccessView"
	OpSetComputeRootUnorderedAccessView  Op = "SetComputeRootUnorderedAccessView"
	OpSetPipelineState                   Op = "SetPipelineState"
	OpIASetPrimitiveTopology             Op = "IASetPrimitiveTopology"
	OpIASetVertexBuffers                 Op = "IASetVertexBuffers"
	OpIASetIndexBuffer                   Op = "IASetIndexBuffer"
	OpRSSetViewports                     Op = "RSSetViewports"
	OpRSSetScissorRects                  Op = "RSSetScissorRects"
	OpOMSetStencilRef                    Op = "OMSetStencilRef"
	OpOMSetBlendFactor                   Op = "OMSetBlendFactor"
	OpDrawInstanced                      Op = "DrawInstanced"
	OpDrawIndexedInstanced               Op = "DrawIndexedInstanced"
	OpDispatch                           Op = "Dispatch"
	OpExecuteIndirect                    Op = "ExecuteIndirect"
)

// Call is one recorded native call. Args hold the call's arguments in
// declaration order; slices and pointed-to structs are copied, so later
// reuse of caller scratch memory does not alter a recording.
type Call struct {
	Op   Op
	Args []any
}

// String formats the call as Op(args...).
func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// List records native calls. It is not safe for concurrent use, like the
// driver list it stands in for.
type List struct {
	Type native.ListType

	id       int
	name     string
	closed   bool
	resets   int
	resetErr error
	closeErr error
	calls    []Call
}

var _ native.GraphicsCommandList = (*List)(nil)

// ID returns the creation index of the list within its device, from 1.
func (l *List) ID() int { return l.id }

// Name returns the debug name set with SetName.
func (l *List) Name() string { return l.name }

// Closed reports whether Close was called since the last Reset.
func (l *List) Closed() bool { return l.closed }

// Resets returns how many times the list was reset.
func (l *List) Resets() int { return l.resets }

// FailReset makes the following Reset calls return err.
func (l *List) FailReset(err error) { l.resetErr = err }

// FailClose makes every following Close return err, leaving the list open.
func (l *List) FailClose(err error) { l.closeErr = err }

// Calls returns the calls recorded since the last Reset.
func (l *List) Calls() []Call { return l.calls }

// Ops returns the operation of every recorded call, in order.
func (l *List) Ops() []Op {
	ops := make([]Op, len(l.calls))
	for i, c := range l.calls {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the recorded calls with the given operation.
func (l *List) Filter(op Op) []Call {
	var out []Call
	for _, c := range l.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls with the given operation were recorded.
func (l *List) Count(op Op) int {
	n := 0
	for _, c := range l.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// BarrierBatches returns the argument of every ResourceBarrier call.
func (l *List) BarrierBatches() [][]native.ResourceBarrier {
	var out [][]native.ResourceBarrier
	for _, c := range l.Filter(OpResourceBarrier) {
		out = append(out, c.Args[0].([]native.ResourceBarrier))
	}
	return out
}

func (l *List) record(op Op, args ...any) {
	l.calls = append(l.calls, Call{Op: op, Args: args})
}

// Reset implements native.GraphicsCommandList. It drops the recorded calls.
func (l *List) Reset() error {
	if l.resetErr != nil {
		return l.resetErr
	}
	l.resets++
	l.closed = false
	l.calls = nil
	return nil
}

// Close implements native.GraphicsCommandList.
func (l *List) Close() error {
	if l.closeErr != nil {
		return l.closeErr
	}
	if l.closed {
		return ErrListClosed
	}
	l.closed = true
	return nil
}

// SetName implements native.GraphicsCommandList.
func (l *List) SetName(name string) { l.name = name }

func (l *List) ResourceBarrier(barriers []native.ResourceBarrier) {
	l.record(OpResourceBarrier, append([]native.ResourceBarrier(nil), barriers...))
}

func (l *List) CopyBufferRegion(dst native.Resource, dstOffset uint64, src native.Resource, srcOffset, size uint64) {
	l.record(OpCopyBufferRegion, dst, dstOffset, src, srcOffset, size)
}

func (l *List) CopyTextureRegion(dst *native.TextureCopyLocation, dstX, dstY, dstZ uint32, src *native.TextureCopyLocation, srcBox *native.Box) {
	var box *native.Box
	if srcBox != nil {
		b := *srcBox
		box = &b
	}
	l.record(OpCopyTextureRegion, *dst, dstX, dstY, dstZ, *src, box)
}

func (l *List) BeginQuery(heap native.QueryHeap, ty native.QueryType, index uint32) {
	l.record(OpBeginQuery, heap, ty, index)
}

func (l *List) EndQuery(heap native.QueryHeap, ty native.QueryType, index uint32) {
	l.record(OpEndQuery, heap, ty, index)
}

func (l *List) ResolveQueryData(heap native.QueryHeap, ty native.QueryType, start, count uint32, dst native.Resource, dstOffset uint64) {
	l.record(OpResolveQueryData, heap, ty, start, count, dst, dstOffset)
}

func (l *List) SetDescriptorHeaps(heaps []native.DescriptorHeap) {
	l.record(OpSetDescriptorHeaps, append([]native.DescriptorHeap(nil), heaps...))
}

func (l *List) BeginEvent(metadata uint32, data []byte) {
	l.record(OpBeginEvent, metadata, append([]byte(nil), data...))
}

func (l *List) EndEvent() { l.record(OpEndEvent) }

func (l *List) SetMarker(metadata uint32, data []byte) {
	l.record(OpSetMarker, metadata, append([]byte(nil), data...))
}

func (l *List) OMSetRenderTargets(rtvs []native.CPUDescriptor, dsv *native.CPUDescriptor) {
	var ds *native.CPUDescriptor
	if dsv != nil {
		d := *dsv
		ds = &d
	}
	l.record(OpOMSetRenderTargets, append([]native.CPUDescriptor(nil), rtvs...), ds)
}

func (l *List) ClearRenderTargetView(rtv native.CPUDescriptor, color [4]float32) {
	l.record(OpClearRenderTargetView, rtv, color)
}

func (l *List) ClearDepthStencilView(dsv native.CPUDescriptor, flags native.ClearFlags, depth float32, stencil uint8) {
	l.record(OpClearDepthStencilView, dsv, flags, depth, stencil)
}

func (l *List) ResolveSubresource(dst native.Resource, dstSub uint32, src native.Resource, srcSub uint32, format native.Format) {
	l.record(OpResolveSubresource, dst, dstSub, src, srcSub, format)
}

func (l *List) SetGraphicsRootSignature(sig native.RootSignature) {
	l.record(OpSetGraphicsRootSignature, sig)
}

func (l *List) SetComputeRootSignature(sig native.RootSignature) {
	l.record(OpSetComputeRootSignature, sig)
}

func (l *List) SetGraphicsRootDescriptorTable(index uint32, base native.GPUDescriptor) {
	l.record(OpSetGraphicsRootDescriptorTable, index, base)
}

func (l *List) SetComputeRootDescriptorTable(index uint32, base native.GPUDescriptor) {
	l.record(OpSetComputeRootDescriptorTable, index, base)
}

func (l *List) SetGraphicsRootConstantBufferView(index uint32, addr native.GPUAddress) {
	l.record(OpSetGraphicsRootConstantBufferView, index, addr)
}

func (l *List) SetComputeRootConstantBufferView(index uint32, addr native.GPUAddress) {
	l.record(OpSetComputeRootConstantBufferView, index, addr)
}

func (l *List) SetGraphicsRootShaderResourceView(index uint32, addr native.GPUAddress) {
	l.record(OpSetGraphicsRootShaderResourceView, index, addr)
}

func (l *List) SetComputeRootShaderResourceView(index uint32, addr native.GPUAddress) {
	l.record(OpSetComputeRootShaderResourceView, index, addr)
}

func (l *List) SetGraphicsRootUnorderedAccessView(index uint32, addr native.GPUAddress) {
	l.record(OpSetGraphicsRootUnorderedAccessView, index, addr)
}

func (l *List) SetComputeRootUnorderedAccessView(index uint32, addr native.GPUAddress) {
	l.record(OpSetComputeRootUnorderedAccessView, index, addr)
}

func (l *List) SetPipelineState(pso native.PipelineState) {
	l.record(OpSetPipelineState, pso)
}

func (l *List) IASetPrimitiveTopology(topology native.PrimitiveTopology) {
	l.record(OpIASetPrimitiveTopology, topology)
}

func (l *List) IASetVertexBuffers(startSlot uint32, views []native.VertexBufferView) {
	l.record(OpIASetVertexBuffers, startSlot, append([]native.VertexBufferView(nil), views...))
}

func (l *List) IASetIndexBuffer(view *native.IndexBufferView) {
	l.record(OpIASetIndexBuffer, *view)
}

func (l *List) RSSetViewports(viewports []native.Viewport) {
	l.record(OpRSSetViewports, append([]native.Viewport(nil), viewports...))
}

func (l *List) RSSetScissorRects(rects []native.Rect) {
	l.record(OpRSSetScissorRects, append([]native.Rect(nil), rects...))
}

func (l *List) OMSetStencilRef(ref uint32) { l.record(OpOMSetStencilRef, ref) }

func (l *List) OMSetBlendFactor(factor [4]float32) { l.record(OpOMSetBlendFactor, factor) }

func (l *List) DrawInstanced(vertexCount, instanceCount, startVertex, startInstance uint32) {
	l.record(OpDrawInstanced, vertexCount, instanceCount, startVertex, startInstance)
}

func (l *List) DrawIndexedInstanced(indexCount, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32) {
	l.record(OpDrawIndexedInstanced, indexCount, instanceCount, startIndex, baseVertex, startInstance)
}

func (l *List) Dispatch(x, y, z uint32) { l.record(OpDispatch, x, y, z) }

func (l *List) ExecuteIndirect(sig native.CommandSignature, maxCount uint32, args native.Resource, argsOffset uint64, countBuffer native.Resource, countOffset uint64) {
	l.record(OpExecuteIndirect, sig, maxCount, args, argsOffset, countBuffer, countOffset)
}
