// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/halcmd/native"
)

// BufferCopy is one buffer-to-buffer copy region.
type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// TextureCopyBase locates a copy inside one array layer of a texture.
// Origin.Z is a depth slice and only meaningful for 3-D textures.
type TextureCopyBase struct {
	MipLevel   uint32
	ArrayLayer uint32
	Origin     gputypes.Origin3D
	Aspect     gputypes.TextureAspect
}

// BufferTextureCopy is one region copied between a buffer and a texture.
// BytesPerRow and RowsPerImage of BufferLayout may be zero for tightly
// packed data.
type BufferTextureCopy struct {
	BufferLayout gputypes.TextureDataLayout
	TextureBase  TextureCopyBase
	Size         gputypes.Extent3D
}

// TextureCopy is one texture-to-texture copy region.
type TextureCopy struct {
	SrcBase TextureCopyBase
	DstBase TextureCopyBase
	Size    gputypes.Extent3D
}

func makeBox(origin gputypes.Origin3D, size gputypes.Extent3D) native.Box {
	return native.Box{
		Left:   origin.X,
		Top:    origin.Y,
		Front:  origin.Z,
		Right:  origin.X + size.Width,
		Bottom: origin.Y + size.Height,
		Back:   origin.Z + size.DepthOrArrayLayers,
	}
}

func subresourceLocation(t *Texture, base TextureCopyBase) native.TextureCopyLocation {
	return native.TextureCopyLocation{
		Resource:         t.Raw,
		Type:             native.CopySubresourceIndex,
		SubresourceIndex: t.subresource(base.MipLevel, base.ArrayLayer, base.Aspect),
	}
}

// footprintLocation describes buffer memory laid out as texture rows.
// RowsPerImage defaults to the copy height.
func footprintLocation(buf *Buffer, format gputypes.TextureFormat, r BufferTextureCopy, rowPitch uint32) native.TextureCopyLocation {
	height := r.Size.Height
	if r.BufferLayout.RowsPerImage != 0 {
		height = r.BufferLayout.RowsPerImage
	}
	return native.TextureCopyLocation{
		Resource: buf.Raw,
		Type:     native.CopyPlacedFootprint,
		PlacedFootprint: native.PlacedFootprint{
			Offset: r.BufferLayout.Offset,
			Footprint: native.SubresourceFootprint{
				Format:   native.MapTextureFormat(format),
				Width:    r.Size.Width,
				Height:   height,
				Depth:    r.Size.DepthOrArrayLayers,
				RowPitch: rowPitch,
			},
		},
	}
}

// FillBuffer fills buf[start:end] with value by copying from the shared
// zero buffer in chunks of at most the zero buffer's size. Only zero can
// be written; any other value panics.
func (e *Encoder) FillBuffer(buf *Buffer, start, end uint64, value uint8) {
	if value != 0 {
		panic(fmt.Sprintf("halcmd: FillBuffer with non-zero value %#x", value))
	}
	list := e.mustList("FillBuffer")
	chunk := e.shared.zeroChunk()
	for off := start; off < end; {
		size := min(chunk, end-off)
		list.CopyBufferRegion(buf.Raw, off, e.shared.ZeroBuffer, 0, size)
		off += size
	}
}

// CopyBufferToBuffer records one copy per region.
func (e *Encoder) CopyBufferToBuffer(src, dst *Buffer, regions []BufferCopy) {
	list := e.mustList("CopyBufferToBuffer")
	for _, r := range regions {
		list.CopyBufferRegion(dst.Raw, r.DstOffset, src.Raw, r.SrcOffset, r.Size)
	}
}

// CopyTextureToTexture records one copy per region.
func (e *Encoder) CopyTextureToTexture(src, dst *Texture, regions []TextureCopy) {
	list := e.mustList("CopyTextureToTexture")
	for _, r := range regions {
		srcLoc := subresourceLocation(src, r.SrcBase)
		dstLoc := subresourceLocation(dst, r.DstBase)
		box := makeBox(r.SrcBase.Origin, r.Size)
		list.CopyTextureRegion(&dstLoc, r.DstBase.Origin.X, r.DstBase.Origin.Y, r.DstBase.Origin.Z, &srcLoc, &box)
	}
}

// CopyBufferToTexture records one copy per region. A non-zero BytesPerRow
// is raised to the native pitch alignment.
func (e *Encoder) CopyBufferToTexture(src *Buffer, dst *Texture, regions []BufferTextureCopy) {
	list := e.mustList("CopyBufferToTexture")
	for _, r := range regions {
		var pitch uint32
		if r.BufferLayout.BytesPerRow != 0 {
			pitch = max(r.BufferLayout.BytesPerRow, native.TextureDataPitchAlignment)
		}
		srcLoc := footprintLocation(src, dst.Format, r, pitch)
		dstLoc := subresourceLocation(dst, r.TextureBase)
		box := makeBox(gputypes.Origin3D{}, r.Size)
		o := r.TextureBase.Origin
		list.CopyTextureRegion(&dstLoc, o.X, o.Y, o.Z, &srcLoc, &box)
	}
}

// CopyTextureToBuffer records one copy per region.
func (e *Encoder) CopyTextureToBuffer(src *Texture, dst *Buffer, regions []BufferTextureCopy) {
	list := e.mustList("CopyTextureToBuffer")
	for _, r := range regions {
		srcLoc := subresourceLocation(src, r.TextureBase)
		dstLoc := footprintLocation(dst, src.Format, r, r.BufferLayout.BytesPerRow)
		box := makeBox(r.TextureBase.Origin, r.Size)
		list.CopyTextureRegion(&dstLoc, 0, 0, 0, &srcLoc, &box)
	}
}
