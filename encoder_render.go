// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/halcmd/internal/pass"
	"github.com/gogpu/halcmd/internal/rootbind"
	"github.com/gogpu/halcmd/native"
	"github.com/gogpu/halcmd/usage"
)

// MaxColorAttachments is the largest number of color attachments a render
// pass can bind.
const MaxColorAttachments = 8

// AttachmentOps are the load and store operations of an attachment.
type AttachmentOps uint8

const (
	// OpLoad keeps the previous contents. Without it the attachment is
	// cleared at the start of the pass.
	OpLoad AttachmentOps = 1 << iota
	// OpStore keeps the rendered contents after the pass.
	OpStore
)

// ColorAttachment is one color target of a render pass. A nil View
// leaves the slot unbound.
type ColorAttachment struct {
	View          *TextureView
	ResolveTarget *TextureView
	Ops           AttachmentOps
	ClearValue    gputypes.Color
}

// DepthStencilAttachment is the depth-stencil target of a render pass.
// Usage selects the read-write view when it is exactly
// usage.TextureDepthStencilWrite and the read-only view otherwise.
type DepthStencilAttachment struct {
	View         *TextureView
	Usage        usage.TextureUses
	DepthOps     AttachmentOps
	StencilOps   AttachmentOps
	ClearDepth   float32
	ClearStencil uint32
}

// TimestampWrites names the queries written at the start and end of a
// pass. A nil index writes nothing.
type TimestampWrites struct {
	QuerySet  *QuerySet
	Beginning *uint32
	End       *uint32
}

// RenderPassDescriptor describes a render pass.
type RenderPassDescriptor struct {
	Label            string
	ColorAttachments []ColorAttachment
	DepthStencil     *DepthStencilAttachment
	TimestampWrites  *TimestampWrites
}

// BeginRenderPass opens a render pass. It binds the attachments, clears
// every attachment whose ops lack OpLoad and remembers the resolves to run
// at EndRenderPass.
func (e *Encoder) BeginRenderPass(desc *RenderPassDescriptor) {
	list := e.mustList("BeginRenderPass")
	if len(desc.ColorAttachments) > MaxColorAttachments {
		panic(fmt.Sprintf("halcmd: %d color attachments, at most %d", len(desc.ColorAttachments), MaxColorAttachments))
	}
	e.pass.Begin(list, pass.Render, e.passLabel(desc.Label), e.shared.heaps(e.heaps[:]))
	e.writePassTimestamp(desc.TimestampWrites, beginningIndex(desc.TimestampWrites))

	var rtvs [MaxColorAttachments]native.CPUDescriptor
	for i, ca := range desc.ColorAttachments {
		rtvs[i] = e.shared.NullRTV
		if ca.View != nil {
			rtvs[i] = ca.View.RTV
		}
	}
	var dsv *native.CPUDescriptor
	ds := desc.DepthStencil
	if ds != nil {
		if ds.Usage == usage.TextureDepthStencilWrite {
			dsv = &ds.View.DSVReadWrite
		} else {
			dsv = &ds.View.DSVReadOnly
		}
	}
	list.OMSetRenderTargets(rtvs[:len(desc.ColorAttachments)], dsv)

	for i, ca := range desc.ColorAttachments {
		if ca.View == nil {
			continue
		}
		if ca.Ops&OpLoad == 0 {
			c := ca.ClearValue
			list.ClearRenderTargetView(rtvs[i], [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)})
		}
		if ca.ResolveTarget != nil {
			src, srcSub := ca.View.targetBase()
			dst, dstSub := ca.ResolveTarget.targetBase()
			e.pass.AddResolve(pass.Resolve{
				Src:            src,
				SrcSubresource: srcSub,
				Dst:            dst,
				DstSubresource: dstSub,
				Format:         ca.ResolveTarget.format(),
			})
		}
	}

	if ds != nil {
		var flags native.ClearFlags
		if ds.DepthOps&OpLoad == 0 {
			flags |= native.ClearDepth
		}
		if ds.StencilOps&OpLoad == 0 {
			flags |= native.ClearStencil
		}
		if flags != 0 {
			list.ClearDepthStencilView(*dsv, flags, ds.ClearDepth, uint8(ds.ClearStencil))
		}
	}
	e.passTimestamps = desc.TimestampWrites
}

// EndRenderPass runs the pending resolves and closes the pass. Resolve
// sources and destinations must be in the render target state; they are
// moved to the resolve states for the copy and back again afterwards.
func (e *Encoder) EndRenderPass() {
	list := e.mustPass("EndRenderPass", pass.Render)
	if len(e.pass.Resolves) > 0 {
		b := e.temp.barriers
		b.Reset()
		for _, r := range e.pass.Resolves {
			b.AddTransition(r.Src, r.SrcSubresource, native.StateRenderTarget, native.StateResolveSource)
			b.AddTransition(r.Dst, r.DstSubresource, native.StateRenderTarget, native.StateResolveDest)
		}
		b.Flush(list)
		for _, r := range e.pass.Resolves {
			list.ResolveSubresource(r.Dst, r.DstSubresource, r.Src, r.SrcSubresource, r.Format)
		}
		b.Reverse()
		b.Flush(list)
		Logger().Debug("halcmd: render pass resolves", "label", e.label, "count", len(e.pass.Resolves))
	}
	e.endPass(list)
}

// endPass writes the end-of-pass timestamp and closes the pass.
func (e *Encoder) endPass(list native.GraphicsCommandList) {
	if tw := e.passTimestamps; tw != nil {
		e.writePassTimestamp(tw, tw.End)
		e.passTimestamps = nil
	}
	e.pass.End(list)
}

func beginningIndex(tw *TimestampWrites) *uint32 {
	if tw == nil {
		return nil
	}
	return tw.Beginning
}

// setSignature binds sig if it differs from the pass's current root
// signature. It reports whether it did, in which case every root slot
// must be rebound.
func (e *Encoder) setSignature(list native.GraphicsCommandList, sig native.RootSignature) bool {
	if e.pass.Signature == sig {
		return false
	}
	e.pass.Signature = sig
	if e.pass.Kind == pass.Compute {
		list.SetComputeRootSignature(sig)
	} else {
		list.SetGraphicsRootSignature(sig)
	}
	return true
}

// flushRoot records root slots: all of the layout's after a signature
// change, only rng otherwise.
func (e *Encoder) flushRoot(list native.GraphicsCommandList, layout *PipelineLayout, changed bool, rng rootbind.Range) {
	if changed {
		rng = rootbind.Range{Start: 0, End: layout.TotalRootElements}
	}
	e.pass.Root.Flush(list, e.pass.Target(), rng)
}

// SetRenderPipeline binds a graphics pipeline. A root signature change
// rebinds every root slot; vertex buffer slots whose stride changed are
// bound again before the next draw.
func (e *Encoder) SetRenderPipeline(p *RenderPipeline) {
	list := e.mustPass("SetRenderPipeline", pass.Render)
	if e.setSignature(list, p.Layout.Signature) {
		e.flushRoot(list, p.Layout, true, rootbind.Range{})
	}
	list.SetPipelineState(p.Raw)
	list.IASetPrimitiveTopology(p.Topology)
	e.pass.ApplyStrides(p.VertexStrides)
}

// SetBindGroup binds group as bind group index of layout. Dynamic buffers
// are bound at their base address plus the matching entry of offsets.
// With InvalidateDynamicOffsetsOnly the group's tables are assumed to be
// bound already.
//
// Outside a pass only the root table is updated. The first pipeline of the
// next pass binds its signature and with it every slot of the table.
func (e *Encoder) SetBindGroup(layout *PipelineLayout, index uint32, group *BindGroup, offsets []uint32, inv Invalidation) {
	list := e.mustList("SetBindGroup")
	if int(index) >= len(layout.Groups) {
		panic(fmt.Sprintf("halcmd: bind group index %d out of range, layout has %d", index, len(layout.Groups)))
	}
	rng := e.pass.Root.SetGroup(layout.Groups[index], group.root(), offsets, inv)
	if !e.pass.Open() {
		return
	}
	changed := e.setSignature(list, layout.Signature)
	e.flushRoot(list, layout, changed, rng)
}

// SetPushConstants is accepted for API parity and records nothing.
func (e *Encoder) SetPushConstants(layout *PipelineLayout, stages gputypes.ShaderStages, offset uint32, data []byte) {
}

// SetIndexBuffer binds size bytes of buf from offset as the index buffer.
// A zero size binds to the end of the buffer.
func (e *Encoder) SetIndexBuffer(buf *Buffer, format gputypes.IndexFormat, offset, size uint64) {
	list := e.mustPass("SetIndexBuffer", pass.Render)
	addr, n := buf.resolve(offset, size)
	list.IASetIndexBuffer(&native.IndexBufferView{
		BufferLocation: addr,
		SizeInBytes:    n,
		Format:         native.MapIndexFormat(format),
	})
}

// SetVertexBuffer stages size bytes of buf from offset for vertex buffer
// slot index. The slot is bound before the next draw. A zero size binds
// to the end of the buffer.
func (e *Encoder) SetVertexBuffer(index uint32, buf *Buffer, offset, size uint64) {
	e.mustPass("SetVertexBuffer", pass.Render)
	addr, n := buf.resolve(offset, size)
	e.pass.SetVertexBuffer(index, addr, n)
}

// SetViewport sets the single viewport.
func (e *Encoder) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	list := e.mustPass("SetViewport", pass.Render)
	list.RSSetViewports([]native.Viewport{{
		TopLeftX: x,
		TopLeftY: y,
		Width:    width,
		Height:   height,
		MinDepth: minDepth,
		MaxDepth: maxDepth,
	}})
}

// SetScissorRect sets the single scissor rectangle.
func (e *Encoder) SetScissorRect(x, y, width, height uint32) {
	list := e.mustPass("SetScissorRect", pass.Render)
	list.RSSetScissorRects([]native.Rect{{
		Left:   int32(x),
		Top:    int32(y),
		Right:  int32(x + width),
		Bottom: int32(y + height),
	}})
}

// SetStencilReference sets the stencil reference value.
func (e *Encoder) SetStencilReference(ref uint32) {
	e.mustPass("SetStencilReference", pass.Render).OMSetStencilRef(ref)
}

// SetBlendConstants sets the blend factor.
func (e *Encoder) SetBlendConstants(c [4]float32) {
	e.mustPass("SetBlendConstants", pass.Render).OMSetBlendFactor(c)
}

// prepareDraw binds the vertex buffer slots changed since the last draw.
func (e *Encoder) prepareDraw(op string) native.GraphicsCommandList {
	list := e.mustPass(op, pass.Render)
	e.pass.FlushVertexBuffers(list)
	return list
}

// Draw draws non-indexed primitives.
func (e *Encoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	e.prepareDraw("Draw").DrawInstanced(vertexCount, instanceCount, firstVertex, firstInstance)
}

// DrawIndexed draws indexed primitives.
func (e *Encoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	e.prepareDraw("DrawIndexed").DrawIndexedInstanced(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

// DrawIndirect runs drawCount draws whose arguments are read from buf at
// offset.
func (e *Encoder) DrawIndirect(buf *Buffer, offset uint64, drawCount uint32) {
	list := e.prepareDraw("DrawIndirect")
	list.ExecuteIndirect(e.shared.DrawSignature, drawCount, buf.Raw, offset, 0, 0)
}

// DrawIndexedIndirect is DrawIndirect for indexed draws.
func (e *Encoder) DrawIndexedIndirect(buf *Buffer, offset uint64, drawCount uint32) {
	list := e.prepareDraw("DrawIndexedIndirect")
	list.ExecuteIndirect(e.shared.DrawIndexedSignature, drawCount, buf.Raw, offset, 0, 0)
}

// DrawIndirectCount runs up to maxCount draws, the actual count being read
// from countBuf at countOffset.
func (e *Encoder) DrawIndirectCount(buf *Buffer, offset uint64, countBuf *Buffer, countOffset uint64, maxCount uint32) {
	list := e.prepareDraw("DrawIndirectCount")
	list.ExecuteIndirect(e.shared.DrawSignature, maxCount, buf.Raw, offset, countBuf.Raw, countOffset)
}

// DrawIndexedIndirectCount is DrawIndirectCount for indexed draws.
func (e *Encoder) DrawIndexedIndirectCount(buf *Buffer, offset uint64, countBuf *Buffer, countOffset uint64, maxCount uint32) {
	list := e.prepareDraw("DrawIndexedIndirectCount")
	list.ExecuteIndirect(e.shared.DrawIndexedSignature, maxCount, buf.Raw, offset, countBuf.Raw, countOffset)
}
