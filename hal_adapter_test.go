// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/halcmd/native"
	"github.com/gogpu/halcmd/native/record"
)

func newHALEncoder(t *testing.T) (hal.CommandEncoder, *Encoder, *record.List) {
	t.Helper()
	e, _ := newTestEncoder(t)
	h := NewHALEncoder(e)
	if err := h.BeginEncoding("hal"); err != nil {
		t.Fatalf("BeginEncoding: %v", err)
	}
	return h, e, e.list.(*record.List)
}

func TestHAL_Lifecycle(t *testing.T) {
	h, e, l := newHALEncoder(t)
	cb, err := h.EndEncoding()
	if err != nil {
		t.Fatalf("EndEncoding: %v", err)
	}
	if cb.(*CommandBuffer).List() != l {
		t.Error("command buffer does not hold the recorded list")
	}
	if _, err := h.EndEncoding(); err == nil {
		t.Error("EndEncoding while not recording succeeded")
	}
	h.ResetAll([]hal.CommandBuffer{cb})
	if e.Pool().Len() != 1 {
		t.Errorf("pool has %d lists, want 1", e.Pool().Len())
	}
}

func TestHAL_Barriers(t *testing.T) {
	h, _, l := newHALEncoder(t)
	buf := &Buffer{Raw: 1}
	tex := copyTexture()

	h.TransitionBuffers([]hal.BufferBarrier{{
		Buffer: buf,
		Usage:  hal.BufferUsageTransition{OldUsage: gputypes.BufferUsageCopyDst, NewUsage: gputypes.BufferUsageVertex},
	}})
	h.TransitionTextures([]hal.TextureBarrier{
		{
			Texture: tex,
			Usage:   hal.TextureUsageTransition{OldUsage: gputypes.TextureUsageCopyDst, NewUsage: gputypes.TextureUsageTextureBinding},
		},
		{
			Texture: tex,
			Range:   hal.TextureRange{BaseMipLevel: 1, MipLevelCount: 1},
			Usage:   hal.TextureUsageTransition{OldUsage: gputypes.TextureUsageTextureBinding, NewUsage: gputypes.TextureUsageRenderAttachment},
		},
	})

	batches := l.BarrierBatches()
	if len(batches) != 2 {
		t.Fatalf("%d barrier calls, want 2", len(batches))
	}
	want := native.Transition(1, native.AllSubresources, native.StateCopyDest, native.StateVertexAndConstantBuffer)
	if len(batches[0]) != 1 || batches[0][0] != want {
		t.Errorf("buffer barriers = %v, want %v", batches[0], want)
	}
	if len(batches[1]) != 1+6 {
		t.Errorf("%d texture barriers, want 7", len(batches[1]))
	}
	if last := batches[1][6]; last.StateAfter != native.StateRenderTarget {
		t.Errorf("partial barrier = %v, want RenderTarget after", last)
	}
}

func TestHAL_ClearBuffer(t *testing.T) {
	h, _, l := newHALEncoder(t)
	buf := &Buffer{Raw: 1, Size: 1024}
	h.ClearBuffer(buf, 256, 0)
	calls := l.Filter(record.OpCopyBufferRegion)
	if len(calls) != 1 || calls[0].Args[1] != uint64(256) || calls[0].Args[4] != uint64(768) {
		t.Errorf("ClearBuffer copies = %v", calls)
	}
}

func TestHAL_CopySplitsArrayLayers(t *testing.T) {
	h, _, l := newHALEncoder(t)
	buf, tex := &Buffer{Raw: 1}, copyTexture()
	h.CopyBufferToTexture(buf, tex, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 1024, BytesPerRow: 256, RowsPerImage: 8},
		TextureBase:  hal.ImageCopyTexture{Texture: tex, MipLevel: 1, Origin: hal.Origin3D{X: 0, Y: 0, Z: 2}},
		Size:         hal.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 3},
	}})

	got := textureCopies(t, l)
	if len(got) != 3 {
		t.Fatalf("%d copies, want 3", len(got))
	}
	for i, c := range got {
		layer := uint32(2 + i)
		if want := 1 + layer*4; c.dst.SubresourceIndex != want {
			t.Errorf("copy %d: subresource %d, want %d", i, c.dst.SubresourceIndex, want)
		}
		if want := uint64(1024 + i*256*8); c.src.PlacedFootprint.Offset != want {
			t.Errorf("copy %d: buffer offset %d, want %d", i, c.src.PlacedFootprint.Offset, want)
		}
		if c.dz != 0 || c.box.Back != 1 {
			t.Errorf("copy %d: z=%d box=%+v, want a single layer", i, c.dz, c.box)
		}
	}

	h.CopyTextureToTexture(tex, tex, []hal.TextureCopy{{
		SrcBase: hal.ImageCopyTexture{Texture: tex, Origin: hal.Origin3D{Z: 0}},
		DstBase: hal.ImageCopyTexture{Texture: tex, Origin: hal.Origin3D{Z: 3}},
		Size:    hal.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 2},
	}})
	got = textureCopies(t, l)[3:]
	if len(got) != 2 || got[1].src.SubresourceIndex != 4 || got[1].dst.SubresourceIndex != 16 {
		t.Errorf("texture copies = %+v", got)
	}
}

func TestHAL_RenderPass(t *testing.T) {
	h, _, l := newHALEncoder(t)
	layout := testLayout()
	pipeline := &RenderPipeline{Raw: 0x900, Layout: layout, Topology: native.TopologyTriangleList}
	group := &BindGroup{Views: 0x1000, Samplers: 0x2000}
	view := colorView(1, 0x101)

	rp := h.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "main",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{A: 1},
		}},
	})
	rp.SetBindGroup(0, group, nil)
	if n := l.Count(record.OpSetGraphicsRootDescriptorTable); n != 0 {
		t.Fatalf("bind group bound before any pipeline: %d tables", n)
	}
	rp.SetPipeline(pipeline)
	if n := l.Count(record.OpSetGraphicsRootDescriptorTable); n != 2 {
		t.Errorf("%d tables bound after SetPipeline, want 2", n)
	}
	rp.SetVertexBuffer(0, &Buffer{Raw: 2, Address: 0x100, Size: 64}, 0)
	rp.SetIndexBuffer(&Buffer{Raw: 3, Size: 32}, gputypes.IndexFormatUint32, 0)
	rp.SetViewport(0, 0, 16, 16, 0, 1)
	rp.SetScissorRect(0, 0, 16, 16)
	rp.SetBlendConstant(&gputypes.Color{R: 1})
	rp.SetStencilReference(1)
	rp.Draw(3, 1, 0, 0)
	rp.DrawIndexed(3, 1, 0, 0, 0)
	rp.DrawIndirect(&Buffer{Raw: 4}, 0)
	rp.DrawIndexedIndirect(&Buffer{Raw: 4}, 16)
	mustPanic(t, "ExecuteBundle", func() { rp.ExecuteBundle(nil) })
	rp.End()

	if n := l.Count(record.OpClearRenderTargetView); n != 1 {
		t.Errorf("%d clears, want 1", n)
	}
	if n := l.Count(record.OpEndEvent); n != 1 {
		t.Errorf("%d EndEvent calls, want 1", n)
	}
	for _, c := range l.Filter(record.OpExecuteIndirect) {
		if c.Args[1] != uint32(1) {
			t.Errorf("indirect draw count = %v, want 1", c.Args[1])
		}
	}
	if _, err := h.EndEncoding(); err != nil {
		t.Errorf("EndEncoding after pass: %v", err)
	}
}

func TestHAL_ComputePass(t *testing.T) {
	h, _, l := newHALEncoder(t)
	layout := testLayout()
	cp := h.BeginComputePass(&hal.ComputePassDescriptor{})
	cp.SetPipeline(&ComputePipeline{Raw: 0x900, Layout: layout})
	cp.SetBindGroup(1, &BindGroup{Views: 0x3000, DynamicBuffers: []native.GPUAddress{0x8000}}, []uint32{64})
	cp.Dispatch(4, 4, 1)
	cp.DispatchIndirect(&Buffer{Raw: 5}, 0)
	cp.End()

	cbv := l.Filter(record.OpSetComputeRootConstantBufferView)
	if len(cbv) != 1 || cbv[0].Args[1] != native.GPUAddress(0x8040) {
		t.Errorf("dynamic buffer bindings = %v", cbv)
	}
	if n := l.Count(record.OpDispatch); n != 1 {
		t.Errorf("%d dispatches, want 1", n)
	}
	if n := l.Count(record.OpExecuteIndirect); n != 1 {
		t.Errorf("%d indirect dispatches, want 1", n)
	}
}

func TestHAL_ResolveQuerySet(t *testing.T) {
	h, _, l := newHALEncoder(t)
	h.ResolveQuerySet(&QuerySet{Raw: 9, Type: native.QueryTimestamp}, 2, 4, &Buffer{Raw: 3}, 64)
	calls := l.Filter(record.OpResolveQueryData)
	if len(calls) != 1 || calls[0].Args[2] != uint32(2) || calls[0].Args[3] != uint32(4) {
		t.Errorf("ResolveQueryData = %v", calls)
	}
}
