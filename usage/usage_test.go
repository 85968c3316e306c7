// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package usage

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/halcmd/native"
)

func TestBufferState(t *testing.T) {
	shaderRead := native.StatePixelShaderResource | native.StateNonPixelShaderResource
	tests := []struct {
		name string
		u    BufferUses
		want native.ResourceStates
	}{
		{"none", 0, native.StateCommon},
		{"map read", BufferMapRead, native.StateCommon},
		{"copy src", BufferCopySrc, native.StateCopySource},
		{"copy dst", BufferCopyDst, native.StateCopyDest},
		{"query resolve", BufferQueryResolve, native.StateCopyDest},
		{"index", BufferIndex, native.StateIndexBuffer},
		{"vertex", BufferVertex, native.StateVertexAndConstantBuffer},
		{"uniform", BufferUniform, native.StateVertexAndConstantBuffer},
		{"storage read", BufferStorageRead, shaderRead},
		{"storage write", BufferStorageWrite, native.StateUnorderedAccess},
		{"storage read write", BufferStorageRead | BufferStorageWrite, native.StateUnorderedAccess},
		{"indirect", BufferIndirect, native.StateIndirectArgument},
		{"vertex index", BufferVertex | BufferIndex, native.StateVertexAndConstantBuffer | native.StateIndexBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BufferState(tt.u); got != tt.want {
				t.Errorf("BufferState(%v) = %v, want %v", tt.u, got, tt.want)
			}
		})
	}
}

func TestTextureState(t *testing.T) {
	tests := []struct {
		name string
		u    TextureUses
		want native.ResourceStates
	}{
		{"undefined", 0, native.StateCommon},
		{"present", TexturePresent, native.StatePresent},
		{"copy src", TextureCopySrc, native.StateCopySource},
		{"copy dst", TextureCopyDst, native.StateCopyDest},
		{"resource", TextureResource, native.StatePixelShaderResource | native.StateNonPixelShaderResource},
		{"color target", TextureColorTarget, native.StateRenderTarget},
		{"depth read", TextureDepthStencilRead, native.StateDepthRead},
		{"depth write", TextureDepthStencilWrite, native.StateDepthWrite},
		{"storage read", TextureStorageRead, native.StateUnorderedAccess},
		{"storage write", TextureStorageWrite, native.StateUnorderedAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextureState(tt.u); got != tt.want {
				t.Errorf("TextureState(%v) = %v, want %v", tt.u, got, tt.want)
			}
		})
	}
}

func TestFromBufferUsage(t *testing.T) {
	got := FromBufferUsage(gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst | gputypes.BufferUsageStorage)
	want := BufferVertex | BufferCopyDst | BufferStorageWrite
	if got != want {
		t.Errorf("FromBufferUsage = %v, want %v", got, want)
	}
	if FromBufferUsage(0) != 0 {
		t.Errorf("FromBufferUsage(0) = %v", FromBufferUsage(0))
	}
}

func TestFromTextureUsage(t *testing.T) {
	tests := []struct {
		name   string
		u      gputypes.TextureUsage
		format gputypes.TextureFormat
		want   TextureUses
	}{
		{"color attachment", gputypes.TextureUsageRenderAttachment, gputypes.TextureFormatRGBA8Unorm, TextureColorTarget},
		{"depth attachment", gputypes.TextureUsageRenderAttachment, gputypes.TextureFormatDepth32Float, TextureDepthStencilWrite},
		{"sampled", gputypes.TextureUsageTextureBinding, gputypes.TextureFormatRGBA8Unorm, TextureResource},
		{"storage", gputypes.TextureUsageStorageBinding, gputypes.TextureFormatRGBA8Unorm, TextureStorageWrite},
		{"copies", gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst, gputypes.TextureFormatRGBA8Unorm, TextureCopySrc | TextureCopyDst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTextureUsage(tt.u, tt.format)
			if got != tt.want {
				t.Errorf("FromTextureUsage = %v, want %v", got, tt.want)
			}
			if back := got.TextureUsage(); back != tt.u {
				t.Errorf("TextureUsage() = %v, want %v", back, tt.u)
			}
		})
	}
}

func TestMasks(t *testing.T) {
	if BufferInclusive&BufferExclusive != 0 {
		t.Errorf("buffer inclusive and exclusive overlap: %v", BufferInclusive&BufferExclusive)
	}
	if TextureInclusive&TextureExclusive != 0 {
		t.Errorf("texture inclusive and exclusive overlap: %v", TextureInclusive&TextureExclusive)
	}
	if BufferOrdered&BufferStorageWrite != 0 || TextureOrdered&TextureStorageWrite != 0 {
		t.Error("storage writes must not be ordered")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{BufferUses(0).String(), "None"},
		{(BufferCopySrc | BufferIndirect).String(), "CopySrc|Indirect"},
		{BufferUses(0x8000).String(), "0x8000"},
		{TextureColorTarget.String(), "ColorTarget"},
		{(TexturePresent | TextureStorageWrite).String(), "Present|StorageWrite"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
