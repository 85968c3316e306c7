// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/halcmd/native"
	"github.com/gogpu/halcmd/native/record"
)

func TestFillBuffer_Chunks(t *testing.T) {
	tests := []struct {
		name       string
		chunk      uint64
		start, end uint64
		want       []uint64 // copy sizes
	}{
		{"empty", 100, 40, 40, nil},
		{"single", 100, 0, 64, []uint64{64}},
		{"exact", 100, 0, 200, []uint64{100, 100}},
		{"remainder", 100, 10, 260, []uint64{100, 100, 50}},
		{"default chunk", 0, 0, ZeroBufferSize + 1, []uint64{ZeroBufferSize, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shared := testShared()
			shared.ZeroSize = tt.chunk
			e := NewEncoder(record.NewDevice(), shared)
			defer e.Destroy()
			l := begin(t, e)
			buf := &Buffer{Raw: 7, Size: tt.end}

			e.FillBuffer(buf, tt.start, tt.end, 0)

			calls := l.Filter(record.OpCopyBufferRegion)
			if len(calls) != len(tt.want) {
				t.Fatalf("%d copies, want %d", len(calls), len(tt.want))
			}
			off := tt.start
			for i, c := range calls {
				want := []any{buf.Raw, off, shared.ZeroBuffer, uint64(0), tt.want[i]}
				for j := range want {
					if c.Args[j] != want[j] {
						t.Errorf("copy %d: %v, want args %v", i, c, want)
						break
					}
				}
				off += tt.want[i]
			}
			if off != tt.end {
				t.Errorf("copies end at %d, want %d", off, tt.end)
			}
		})
	}
}

func TestFillBuffer_NonZeroPanics(t *testing.T) {
	e, _ := newTestEncoder(t)
	begin(t, e)
	mustPanic(t, "FillBuffer(0xff)", func() {
		e.FillBuffer(&Buffer{Raw: 1, Size: 16}, 0, 16, 0xff)
	})
}

func TestCopyBufferToBuffer(t *testing.T) {
	e, _ := newTestEncoder(t)
	l := begin(t, e)
	src, dst := &Buffer{Raw: 1}, &Buffer{Raw: 2}
	e.CopyBufferToBuffer(src, dst, []BufferCopy{
		{SrcOffset: 0, DstOffset: 16, Size: 32},
		{SrcOffset: 64, DstOffset: 0, Size: 8},
	})
	calls := l.Filter(record.OpCopyBufferRegion)
	if len(calls) != 2 {
		t.Fatalf("%d copies, want 2", len(calls))
	}
	want := []any{dst.Raw, uint64(0), src.Raw, uint64(64), uint64(8)}
	for i := range want {
		if calls[1].Args[i] != want[i] {
			t.Errorf("second copy = %v, want %v", calls[1], want)
		}
	}
}

func copyTexture() *Texture {
	return &Texture{
		Raw:       100,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Dimension: gputypes.TextureDimension2D,
		Size:      gputypes.Extent3D{Width: 64, Height: 64, DepthOrArrayLayers: 6},
		MipLevels: 4,
	}
}

type textureCopyArgs struct {
	dst        native.TextureCopyLocation
	dx, dy, dz uint32
	src        native.TextureCopyLocation
	box        native.Box
}

func textureCopies(t *testing.T, l *record.List) []textureCopyArgs {
	t.Helper()
	var out []textureCopyArgs
	for _, c := range l.Filter(record.OpCopyTextureRegion) {
		out = append(out, textureCopyArgs{
			dst: c.Args[0].(native.TextureCopyLocation),
			dx:  c.Args[1].(uint32),
			dy:  c.Args[2].(uint32),
			dz:  c.Args[3].(uint32),
			src: c.Args[4].(native.TextureCopyLocation),
			box: *c.Args[5].(*native.Box),
		})
	}
	return out
}

func TestCopyBufferToTexture(t *testing.T) {
	tests := []struct {
		name        string
		bytesPerRow uint32
		rows        uint32
		wantPitch   uint32
		wantHeight  uint32
	}{
		{"packed", 0, 0, 0, 8},
		{"raised pitch", 100, 0, native.TextureDataPitchAlignment, 8},
		{"aligned pitch", 512, 16, 512, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEncoder(t)
			l := begin(t, e)
			buf, tex := &Buffer{Raw: 1}, copyTexture()

			e.CopyBufferToTexture(buf, tex, []BufferTextureCopy{{
				BufferLayout: gputypes.TextureDataLayout{Offset: 512, BytesPerRow: tt.bytesPerRow, RowsPerImage: tt.rows},
				TextureBase: TextureCopyBase{
					MipLevel:   2,
					ArrayLayer: 3,
					Origin:     gputypes.Origin3D{X: 4, Y: 5},
				},
				Size: gputypes.Extent3D{Width: 16, Height: 8, DepthOrArrayLayers: 1},
			}})

			got := textureCopies(t, l)
			if len(got) != 1 {
				t.Fatalf("%d copies, want 1", len(got))
			}
			c := got[0]
			wantDst := native.TextureCopyLocation{Resource: tex.Raw, Type: native.CopySubresourceIndex, SubresourceIndex: 2 + 3*4}
			if c.dst != wantDst {
				t.Errorf("dst = %+v, want %+v", c.dst, wantDst)
			}
			if c.dx != 4 || c.dy != 5 || c.dz != 0 {
				t.Errorf("dst origin = %d,%d,%d, want 4,5,0", c.dx, c.dy, c.dz)
			}
			wantSrc := native.TextureCopyLocation{
				Resource: buf.Raw,
				Type:     native.CopyPlacedFootprint,
				PlacedFootprint: native.PlacedFootprint{
					Offset: 512,
					Footprint: native.SubresourceFootprint{
						Format:   native.FormatR8G8B8A8Unorm,
						Width:    16,
						Height:   tt.wantHeight,
						Depth:    1,
						RowPitch: tt.wantPitch,
					},
				},
			}
			if c.src != wantSrc {
				t.Errorf("src = %+v, want %+v", c.src, wantSrc)
			}
			if want := (native.Box{Right: 16, Bottom: 8, Back: 1}); c.box != want {
				t.Errorf("box = %+v, want %+v", c.box, want)
			}
		})
	}
}

func TestCopyTextureToBuffer(t *testing.T) {
	e, _ := newTestEncoder(t)
	l := begin(t, e)
	buf, tex := &Buffer{Raw: 1}, copyTexture()

	e.CopyTextureToBuffer(tex, buf, []BufferTextureCopy{{
		BufferLayout: gputypes.TextureDataLayout{Offset: 256, BytesPerRow: 100},
		TextureBase:  TextureCopyBase{MipLevel: 1, ArrayLayer: 0, Origin: gputypes.Origin3D{X: 4, Y: 5}},
		Size:         gputypes.Extent3D{Width: 16, Height: 8, DepthOrArrayLayers: 1},
	}})

	got := textureCopies(t, l)
	if len(got) != 1 {
		t.Fatalf("%d copies, want 1", len(got))
	}
	c := got[0]
	if c.src.Type != native.CopySubresourceIndex || c.src.SubresourceIndex != 1 {
		t.Errorf("src = %+v, want subresource 1", c.src)
	}
	if c.dst.Type != native.CopyPlacedFootprint || c.dst.PlacedFootprint.Footprint.RowPitch != 100 {
		t.Errorf("dst = %+v, want footprint with pitch 100", c.dst)
	}
	if c.dx != 0 || c.dy != 0 || c.dz != 0 {
		t.Errorf("dst origin = %d,%d,%d, want 0,0,0", c.dx, c.dy, c.dz)
	}
	if want := (native.Box{Left: 4, Top: 5, Right: 20, Bottom: 13, Back: 1}); c.box != want {
		t.Errorf("box = %+v, want %+v", c.box, want)
	}
}

func TestCopyTextureToTexture(t *testing.T) {
	e, _ := newTestEncoder(t)
	l := begin(t, e)
	src, dst := copyTexture(), copyTexture()
	dst.Raw = 200

	e.CopyTextureToTexture(src, dst, []TextureCopy{{
		SrcBase: TextureCopyBase{MipLevel: 0, ArrayLayer: 1, Origin: gputypes.Origin3D{X: 2, Y: 3}},
		DstBase: TextureCopyBase{MipLevel: 1, ArrayLayer: 5, Origin: gputypes.Origin3D{X: 6, Y: 7}},
		Size:    gputypes.Extent3D{Width: 10, Height: 20, DepthOrArrayLayers: 1},
	}})

	got := textureCopies(t, l)
	if len(got) != 1 {
		t.Fatalf("%d copies, want 1", len(got))
	}
	c := got[0]
	if c.src.Resource != src.Raw || c.src.SubresourceIndex != 4 {
		t.Errorf("src = %+v, want subresource 4 of %d", c.src, src.Raw)
	}
	if c.dst.Resource != dst.Raw || c.dst.SubresourceIndex != 1+5*4 {
		t.Errorf("dst = %+v, want subresource 21 of %d", c.dst, dst.Raw)
	}
	if c.dx != 6 || c.dy != 7 || c.dz != 0 {
		t.Errorf("dst origin = %d,%d,%d, want 6,7,0", c.dx, c.dy, c.dz)
	}
	if want := (native.Box{Left: 2, Top: 3, Right: 12, Bottom: 23, Back: 1}); c.box != want {
		t.Errorf("box = %+v, want %+v", c.box, want)
	}
}

func TestCopyStencilPlane(t *testing.T) {
	e, _ := newTestEncoder(t)
	l := begin(t, e)
	tex := &Texture{
		Raw:       300,
		Format:    gputypes.TextureFormatDepth24PlusStencil8,
		Dimension: gputypes.TextureDimension2D,
		Size:      gputypes.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 2},
		MipLevels: 3,
	}
	e.CopyTextureToBuffer(tex, &Buffer{Raw: 1}, []BufferTextureCopy{{
		TextureBase: TextureCopyBase{MipLevel: 1, ArrayLayer: 1, Aspect: gputypes.TextureAspectStencilOnly},
		Size:        gputypes.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 1},
	}})
	got := textureCopies(t, l)
	// mip + (layer + plane*layers)*mips
	if want := uint32(1 + (1+1*2)*3); got[0].src.SubresourceIndex != want {
		t.Errorf("stencil subresource = %d, want %d", got[0].src.SubresourceIndex, want)
	}
}

func TestQueries(t *testing.T) {
	e, _ := newTestEncoder(t)
	l := begin(t, e)
	set := &QuerySet{Raw: 9, Type: native.QueryOcclusion}
	buf := &Buffer{Raw: 3}

	e.ResetQueries(set, 0, 4)
	e.BeginQuery(set, 1)
	e.EndQuery(set, 1)
	e.WriteTimestamp(set, 2)
	e.CopyQueryResults(set, 0, 4, buf, 32)

	want := []record.Op{record.OpBeginQuery, record.OpEndQuery, record.OpEndQuery, record.OpResolveQueryData}
	ops := l.Ops()
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", ops, want)
		}
	}
	if ty := l.Calls()[2].Args[1]; ty != native.QueryTimestamp {
		t.Errorf("WriteTimestamp query type = %v, want QueryTimestamp", ty)
	}
	resolve := l.Calls()[3].Args
	if resolve[2] != uint32(0) || resolve[3] != uint32(4) || resolve[4] != buf.Raw || resolve[5] != uint64(32) {
		t.Errorf("ResolveQueryData args = %v", resolve)
	}
}
