// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/halcmd/usage"
)

// Compile-time interface assertions.
var (
	_ hal.CommandEncoder     = (*halEncoder)(nil)
	_ hal.RenderPassEncoder  = (*halRenderPass)(nil)
	_ hal.ComputePassEncoder = (*halComputePass)(nil)

	_ hal.Buffer          = (*Buffer)(nil)
	_ hal.Texture         = (*Texture)(nil)
	_ hal.TextureView     = (*TextureView)(nil)
	_ hal.BindGroup       = (*BindGroup)(nil)
	_ hal.PipelineLayout  = (*PipelineLayout)(nil)
	_ hal.RenderPipeline  = (*RenderPipeline)(nil)
	_ hal.ComputePipeline = (*ComputePipeline)(nil)
	_ hal.QuerySet        = (*QuerySet)(nil)
	_ hal.CommandBuffer   = (*CommandBuffer)(nil)
)

// NewHALEncoder exposes e as a hal.CommandEncoder. Resources passed to it
// must be the types of this package; others are ignored.
//
// Bind groups are bound against the layout of the pipeline set in the
// pass. Groups set before any pipeline are bound when one is set.
func NewHALEncoder(e *Encoder) hal.CommandEncoder {
	h := &halEncoder{enc: e}
	h.render.binder.enc = e
	h.compute.binder.enc = e
	return h
}

type halEncoder struct {
	enc *Encoder

	render  halRenderPass
	compute halComputePass

	bufBarriers []BufferBarrier
	texBarriers []TextureBarrier
	regions     []BufferTextureCopy
	texRegions  []TextureCopy
	bufRegions  []BufferCopy
}

func (h *halEncoder) BeginEncoding(label string) error { return h.enc.BeginEncoding(label) }

func (h *halEncoder) EndEncoding() (hal.CommandBuffer, error) {
	cb, err := h.enc.EndEncoding()
	if err != nil {
		return nil, err
	}
	return cb, nil
}

func (h *halEncoder) DiscardEncoding() { h.enc.DiscardEncoding() }

func (h *halEncoder) ResetAll(commandBuffers []hal.CommandBuffer) {
	cbs := make([]*CommandBuffer, 0, len(commandBuffers))
	for _, c := range commandBuffers {
		if cb, ok := c.(*CommandBuffer); ok {
			cbs = append(cbs, cb)
		}
	}
	h.enc.ResetAll(cbs)
}

func (h *halEncoder) Destroy() { h.enc.Destroy() }

func (h *halEncoder) TransitionBuffers(barriers []hal.BufferBarrier) {
	out := h.bufBarriers[:0]
	for _, b := range barriers {
		buf, ok := b.Buffer.(*Buffer)
		if !ok {
			continue
		}
		out = append(out, BufferBarrier{
			Buffer: buf,
			From:   usage.FromBufferUsage(b.Usage.OldUsage),
			To:     usage.FromBufferUsage(b.Usage.NewUsage),
		})
	}
	h.bufBarriers = out
	h.enc.TransitionBuffers(out)
}

func (h *halEncoder) TransitionTextures(barriers []hal.TextureBarrier) {
	out := h.texBarriers[:0]
	for i := range barriers {
		b := &barriers[i]
		tex, ok := b.Texture.(*Texture)
		if !ok {
			continue
		}
		out = append(out, TextureBarrier{
			Texture: tex,
			Range:   subresourceRange(&b.Range),
			From:    usage.FromTextureUsage(b.Usage.OldUsage, tex.Format),
			To:      usage.FromTextureUsage(b.Usage.NewUsage, tex.Format),
		})
	}
	h.texBarriers = out
	h.enc.TransitionTextures(out)
}

// subresourceRange converts a hal range, where a zero count means all
// remaining levels or layers. The result points into r.
func subresourceRange(r *hal.TextureRange) gputypes.ImageSubresourceRange {
	rng := gputypes.ImageSubresourceRange{
		Aspect:         r.Aspect,
		BaseMipLevel:   r.BaseMipLevel,
		BaseArrayLayer: r.BaseArrayLayer,
	}
	if rng.Aspect == gputypes.TextureAspectUndefined {
		rng.Aspect = gputypes.TextureAspectAll
	}
	if r.MipLevelCount != 0 {
		rng.MipLevelCount = &r.MipLevelCount
	}
	if r.ArrayLayerCount != 0 {
		rng.ArrayLayerCount = &r.ArrayLayerCount
	}
	return rng
}

// ClearBuffer zeroes size bytes of buffer from offset, or the rest of the
// buffer when size is zero.
func (h *halEncoder) ClearBuffer(buffer hal.Buffer, offset, size uint64) {
	buf, ok := buffer.(*Buffer)
	if !ok {
		return
	}
	if size == 0 {
		size = buf.Size - offset
	}
	h.enc.FillBuffer(buf, offset, offset+size, 0)
}

func (h *halEncoder) CopyBufferToBuffer(src, dst hal.Buffer, regions []hal.BufferCopy) {
	srcBuf, srcOk := src.(*Buffer)
	dstBuf, dstOk := dst.(*Buffer)
	if !srcOk || !dstOk {
		return
	}
	out := h.bufRegions[:0]
	for _, r := range regions {
		out = append(out, BufferCopy{SrcOffset: r.SrcOffset, DstOffset: r.DstOffset, Size: r.Size})
	}
	h.bufRegions = out
	h.enc.CopyBufferToBuffer(srcBuf, dstBuf, out)
}

func (h *halEncoder) CopyBufferToTexture(src hal.Buffer, dst hal.Texture, regions []hal.BufferTextureCopy) {
	srcBuf, srcOk := src.(*Buffer)
	dstTex, dstOk := dst.(*Texture)
	if !srcOk || !dstOk {
		return
	}
	h.regions = splitBufferTextureCopies(h.regions[:0], dstTex, regions)
	h.enc.CopyBufferToTexture(srcBuf, dstTex, h.regions)
}

func (h *halEncoder) CopyTextureToBuffer(src hal.Texture, dst hal.Buffer, regions []hal.BufferTextureCopy) {
	srcTex, srcOk := src.(*Texture)
	dstBuf, dstOk := dst.(*Buffer)
	if !srcOk || !dstOk {
		return
	}
	h.regions = splitBufferTextureCopies(h.regions[:0], srcTex, regions)
	h.enc.CopyTextureToBuffer(srcTex, dstBuf, h.regions)
}

func (h *halEncoder) CopyTextureToTexture(src, dst hal.Texture, regions []hal.TextureCopy) {
	srcTex, srcOk := src.(*Texture)
	dstTex, dstOk := dst.(*Texture)
	if !srcOk || !dstOk {
		return
	}
	out := h.texRegions[:0]
	for _, r := range regions {
		size := extent(r.Size)
		n := copyLayers(srcTex, size)
		for i := range n {
			out = append(out, TextureCopy{
				SrcBase: copyBase(srcTex, r.SrcBase, i),
				DstBase: copyBase(dstTex, r.DstBase, i),
				Size:    layerSize(srcTex, size),
			})
		}
	}
	h.texRegions = out
	h.enc.CopyTextureToTexture(srcTex, dstTex, out)
}

func (h *halEncoder) ResolveQuerySet(querySet hal.QuerySet, firstQuery, queryCount uint32, destination hal.Buffer, destinationOffset uint64) {
	set, setOk := querySet.(*QuerySet)
	buf, bufOk := destination.(*Buffer)
	if !setOk || !bufOk {
		return
	}
	h.enc.CopyQueryResults(set, firstQuery, queryCount, buf, destinationOffset)
}

func (h *halEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	rd := RenderPassDescriptor{
		Label:            desc.Label,
		ColorAttachments: make([]ColorAttachment, len(desc.ColorAttachments)),
	}
	for i, ca := range desc.ColorAttachments {
		view, _ := ca.View.(*TextureView)
		resolve, _ := ca.ResolveTarget.(*TextureView)
		rd.ColorAttachments[i] = ColorAttachment{
			View:          view,
			ResolveTarget: resolve,
			Ops:           attachmentOps(ca.LoadOp, ca.StoreOp),
			ClearValue:    ca.ClearValue,
		}
	}
	if ds := desc.DepthStencilAttachment; ds != nil {
		if view, ok := ds.View.(*TextureView); ok {
			u := usage.TextureDepthStencilWrite
			if ds.DepthReadOnly && ds.StencilReadOnly {
				u = usage.TextureDepthStencilRead
			}
			rd.DepthStencil = &DepthStencilAttachment{
				View:         view,
				Usage:        u,
				DepthOps:     attachmentOps(ds.DepthLoadOp, ds.DepthStoreOp),
				StencilOps:   attachmentOps(ds.StencilLoadOp, ds.StencilStoreOp),
				ClearDepth:   ds.DepthClearValue,
				ClearStencil: ds.StencilClearValue,
			}
		}
	}
	if tw := desc.TimestampWrites; tw != nil {
		rd.TimestampWrites = timestampWrites(tw.QuerySet, tw.BeginningOfPassWriteIndex, tw.EndOfPassWriteIndex)
	}
	h.enc.BeginRenderPass(&rd)
	h.render.binder.reset()
	return &h.render
}

func (h *halEncoder) BeginComputePass(desc *hal.ComputePassDescriptor) hal.ComputePassEncoder {
	cd := ComputePassDescriptor{Label: desc.Label}
	if tw := desc.TimestampWrites; tw != nil {
		cd.TimestampWrites = timestampWrites(tw.QuerySet, tw.BeginningOfPassWriteIndex, tw.EndOfPassWriteIndex)
	}
	h.enc.BeginComputePass(&cd)
	h.compute.binder.reset()
	return &h.compute
}

func attachmentOps(load gputypes.LoadOp, store gputypes.StoreOp) AttachmentOps {
	var ops AttachmentOps
	if load == gputypes.LoadOpLoad {
		ops |= OpLoad
	}
	if store == gputypes.StoreOpStore {
		ops |= OpStore
	}
	return ops
}

func timestampWrites(qs hal.QuerySet, begin, end *uint32) *TimestampWrites {
	set, ok := qs.(*QuerySet)
	if !ok {
		return nil
	}
	return &TimestampWrites{QuerySet: set, Beginning: begin, End: end}
}

func extent(e hal.Extent3D) gputypes.Extent3D {
	return gputypes.Extent3D{Width: e.Width, Height: e.Height, DepthOrArrayLayers: e.DepthOrArrayLayers}
}

// copyLayers returns how many per-layer regions a copy of size splits
// into: one for 3-D textures, one per array layer otherwise.
func copyLayers(t *Texture, size gputypes.Extent3D) uint32 {
	if t.Dimension == gputypes.TextureDimension3D {
		return 1
	}
	return max(size.DepthOrArrayLayers, 1)
}

func layerSize(t *Texture, size gputypes.Extent3D) gputypes.Extent3D {
	if t.Dimension != gputypes.TextureDimension3D {
		size.DepthOrArrayLayers = 1
	}
	return size
}

// copyBase locates layer i of a copy. For array textures the hal origin's
// Z is the first array layer.
func copyBase(t *Texture, ict hal.ImageCopyTexture, i uint32) TextureCopyBase {
	base := TextureCopyBase{
		MipLevel: ict.MipLevel,
		Origin:   gputypes.Origin3D{X: ict.Origin.X, Y: ict.Origin.Y, Z: ict.Origin.Z},
		Aspect:   ict.Aspect,
	}
	if t.Dimension != gputypes.TextureDimension3D {
		base.ArrayLayer = ict.Origin.Z + i
		base.Origin.Z = 0
	}
	return base
}

func splitBufferTextureCopies(dst []BufferTextureCopy, t *Texture, regions []hal.BufferTextureCopy) []BufferTextureCopy {
	for _, r := range regions {
		size := extent(r.Size)
		layout := gputypes.TextureDataLayout{
			Offset:       r.BufferLayout.Offset,
			BytesPerRow:  r.BufferLayout.BytesPerRow,
			RowsPerImage: r.BufferLayout.RowsPerImage,
		}
		rows := layout.RowsPerImage
		if rows == 0 {
			rows = size.Height
		}
		imageSize := uint64(layout.BytesPerRow) * uint64(rows)
		n := copyLayers(t, size)
		for i := range n {
			l := layout
			l.Offset += uint64(i) * imageSize
			dst = append(dst, BufferTextureCopy{
				BufferLayout: l,
				TextureBase:  copyBase(t, r.TextureBase, i),
				Size:         layerSize(t, size),
			})
		}
	}
	return dst
}

// boundGroup is a bind group set through the hal interfaces.
type boundGroup struct {
	group   *BindGroup
	offsets []uint32
}

// binder remembers the bind groups of a pass so they can be bound against
// the layout of whichever pipeline is set.
type binder struct {
	enc    *Encoder
	layout *PipelineLayout
	groups []boundGroup
}

func (b *binder) reset() {
	b.layout = nil
	for i := range b.groups {
		b.groups[i] = boundGroup{offsets: b.groups[i].offsets[:0]}
	}
}

func (b *binder) setGroup(index uint32, group hal.BindGroup, offsets []uint32) {
	bg, ok := group.(*BindGroup)
	if !ok {
		return
	}
	for uint32(len(b.groups)) <= index {
		b.groups = append(b.groups, boundGroup{})
	}
	g := &b.groups[index]
	g.group = bg
	g.offsets = append(g.offsets[:0], offsets...)
	if b.layout != nil && int(index) < len(b.layout.Groups) {
		b.enc.SetBindGroup(b.layout, index, bg, g.offsets, InvalidateAll)
	}
}

// setLayout switches to the layout of a new pipeline and binds every
// remembered group it declares.
func (b *binder) setLayout(layout *PipelineLayout) {
	if b.layout == layout {
		return
	}
	b.layout = layout
	for i, g := range b.groups {
		if g.group == nil || i >= len(layout.Groups) {
			continue
		}
		b.enc.SetBindGroup(layout, uint32(i), g.group, g.offsets, InvalidateAll)
	}
}

type halRenderPass struct {
	binder binder
}

func (p *halRenderPass) End() { p.binder.enc.EndRenderPass() }

func (p *halRenderPass) SetPipeline(pipeline hal.RenderPipeline) {
	rp, ok := pipeline.(*RenderPipeline)
	if !ok {
		return
	}
	p.binder.enc.SetRenderPipeline(rp)
	p.binder.setLayout(rp.Layout)
}

func (p *halRenderPass) SetBindGroup(index uint32, group hal.BindGroup, offsets []uint32) {
	p.binder.setGroup(index, group, offsets)
}

func (p *halRenderPass) SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64) {
	if buf, ok := buffer.(*Buffer); ok {
		p.binder.enc.SetVertexBuffer(slot, buf, offset, 0)
	}
}

func (p *halRenderPass) SetIndexBuffer(buffer hal.Buffer, format gputypes.IndexFormat, offset uint64) {
	if buf, ok := buffer.(*Buffer); ok {
		p.binder.enc.SetIndexBuffer(buf, format, offset, 0)
	}
}

func (p *halRenderPass) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	p.binder.enc.SetViewport(x, y, width, height, minDepth, maxDepth)
}

func (p *halRenderPass) SetScissorRect(x, y, width, height uint32) {
	p.binder.enc.SetScissorRect(x, y, width, height)
}

func (p *halRenderPass) SetBlendConstant(color *gputypes.Color) {
	p.binder.enc.SetBlendConstants([4]float32{float32(color.R), float32(color.G), float32(color.B), float32(color.A)})
}

func (p *halRenderPass) SetStencilReference(reference uint32) {
	p.binder.enc.SetStencilReference(reference)
}

func (p *halRenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.binder.enc.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *halRenderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.binder.enc.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *halRenderPass) DrawIndirect(buffer hal.Buffer, offset uint64) {
	if buf, ok := buffer.(*Buffer); ok {
		p.binder.enc.DrawIndirect(buf, offset, 1)
	}
}

func (p *halRenderPass) DrawIndexedIndirect(buffer hal.Buffer, offset uint64) {
	if buf, ok := buffer.(*Buffer); ok {
		p.binder.enc.DrawIndexedIndirect(buf, offset, 1)
	}
}

func (p *halRenderPass) ExecuteBundle(bundle hal.RenderBundle) {
	panic("halcmd: render bundles are not supported")
}

type halComputePass struct {
	binder binder
}

func (p *halComputePass) End() { p.binder.enc.EndComputePass() }

func (p *halComputePass) SetPipeline(pipeline hal.ComputePipeline) {
	cp, ok := pipeline.(*ComputePipeline)
	if !ok {
		return
	}
	p.binder.enc.SetComputePipeline(cp)
	p.binder.setLayout(cp.Layout)
}

func (p *halComputePass) SetBindGroup(index uint32, group hal.BindGroup, offsets []uint32) {
	p.binder.setGroup(index, group, offsets)
}

func (p *halComputePass) Dispatch(x, y, z uint32) { p.binder.enc.Dispatch(x, y, z) }

func (p *halComputePass) DispatchIndirect(buffer hal.Buffer, offset uint64) {
	if buf, ok := buffer.(*Buffer); ok {
		p.binder.enc.DispatchIndirect(buf, offset)
	}
}
