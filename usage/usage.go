// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package usage defines the abstract buffer and texture usages a resource
// can be in between commands, and maps them to native resource states.
package usage

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/halcmd/native"
)

// BufferUses is a set of buffer usages.
type BufferUses uint16

// Buffer usages.
const (
	BufferMapRead BufferUses = 1 << iota
	BufferMapWrite
	BufferCopySrc
	BufferCopyDst
	BufferIndex
	BufferVertex
	BufferUniform
	BufferStorageRead
	BufferStorageWrite
	BufferIndirect
	BufferQueryResolve
)

// Buffer usage masks.
const (
	// BufferInclusive usages can be combined with each other.
	BufferInclusive = BufferMapRead | BufferCopySrc | BufferIndex | BufferVertex |
		BufferUniform | BufferStorageRead | BufferIndirect
	// BufferExclusive usages must stand alone.
	BufferExclusive = BufferMapWrite | BufferCopyDst | BufferStorageWrite | BufferQueryResolve
	// BufferOrdered usages keep their relative order without a barrier.
	BufferOrdered = BufferInclusive | BufferMapWrite
)

// TextureUses is a set of texture usages.
type TextureUses uint16

// Texture usages. The zero value is the initial, undefined usage.
const (
	TexturePresent TextureUses = 1 << iota
	TextureCopySrc
	TextureCopyDst
	TextureResource
	TextureColorTarget
	TextureDepthStencilRead
	TextureDepthStencilWrite
	TextureStorageRead
	TextureStorageWrite
)

// Texture usage masks.
const (
	TextureInclusive = TextureCopySrc | TextureResource | TextureDepthStencilRead
	TextureExclusive = TextureCopyDst | TextureColorTarget | TextureDepthStencilWrite |
		TextureStorageRead | TextureStorageWrite | TexturePresent
	TextureOrdered = TextureInclusive | TextureColorTarget | TextureDepthStencilWrite | TextureStorageRead
)

// BufferState returns the native state a buffer must be in for u.
// Storage writes take precedence over storage reads.
func BufferState(u BufferUses) native.ResourceStates {
	var s native.ResourceStates
	if u&BufferCopySrc != 0 {
		s |= native.StateCopySource
	}
	if u&(BufferCopyDst|BufferQueryResolve) != 0 {
		s |= native.StateCopyDest
	}
	if u&BufferIndex != 0 {
		s |= native.StateIndexBuffer
	}
	if u&(BufferVertex|BufferUniform) != 0 {
		s |= native.StateVertexAndConstantBuffer
	}
	if u&BufferStorageWrite != 0 {
		s |= native.StateUnorderedAccess
	} else if u&BufferStorageRead != 0 {
		s |= native.StatePixelShaderResource | native.StateNonPixelShaderResource
	}
	if u&BufferIndirect != 0 {
		s |= native.StateIndirectArgument
	}
	return s
}

// TextureState returns the native state a texture must be in for u.
// TexturePresent and the zero usage map to StateCommon.
func TextureState(u TextureUses) native.ResourceStates {
	var s native.ResourceStates
	if u&TextureCopySrc != 0 {
		s |= native.StateCopySource
	}
	if u&TextureCopyDst != 0 {
		s |= native.StateCopyDest
	}
	if u&TextureResource != 0 {
		s |= native.StatePixelShaderResource | native.StateNonPixelShaderResource
	}
	if u&TextureColorTarget != 0 {
		s |= native.StateRenderTarget
	}
	if u&TextureDepthStencilRead != 0 {
		s |= native.StateDepthRead
	}
	if u&TextureDepthStencilWrite != 0 {
		s |= native.StateDepthWrite
	}
	if u&(TextureStorageRead|TextureStorageWrite) != 0 {
		s |= native.StateUnorderedAccess
	}
	return s
}

// FromBufferUsage converts WebGPU buffer usage flags. Storage usage is
// treated as read-write since the flags do not say which.
func FromBufferUsage(u gputypes.BufferUsage) BufferUses {
	var b BufferUses
	if u&gputypes.BufferUsageMapRead != 0 {
		b |= BufferMapRead
	}
	if u&gputypes.BufferUsageMapWrite != 0 {
		b |= BufferMapWrite
	}
	if u&gputypes.BufferUsageCopySrc != 0 {
		b |= BufferCopySrc
	}
	if u&gputypes.BufferUsageCopyDst != 0 {
		b |= BufferCopyDst
	}
	if u&gputypes.BufferUsageIndex != 0 {
		b |= BufferIndex
	}
	if u&gputypes.BufferUsageVertex != 0 {
		b |= BufferVertex
	}
	if u&gputypes.BufferUsageUniform != 0 {
		b |= BufferUniform
	}
	if u&gputypes.BufferUsageStorage != 0 {
		b |= BufferStorageWrite
	}
	if u&gputypes.BufferUsageIndirect != 0 {
		b |= BufferIndirect
	}
	if u&gputypes.BufferUsageQueryResolve != 0 {
		b |= BufferQueryResolve
	}
	return b
}

// FromTextureUsage converts WebGPU texture usage flags. Render attachment
// usage becomes a depth-stencil write for depth or stencil formats and a
// color target otherwise.
func FromTextureUsage(u gputypes.TextureUsage, format gputypes.TextureFormat) TextureUses {
	var t TextureUses
	if u&gputypes.TextureUsageCopySrc != 0 {
		t |= TextureCopySrc
	}
	if u&gputypes.TextureUsageCopyDst != 0 {
		t |= TextureCopyDst
	}
	if u&gputypes.TextureUsageTextureBinding != 0 {
		t |= TextureResource
	}
	if u&gputypes.TextureUsageStorageBinding != 0 {
		t |= TextureStorageWrite
	}
	if u&gputypes.TextureUsageRenderAttachment != 0 {
		if format.IsDepthStencil() {
			t |= TextureDepthStencilWrite
		} else {
			t |= TextureColorTarget
		}
	}
	return t
}

// TextureUsage converts back to WebGPU texture usage flags. Present has no
// WebGPU counterpart and is dropped.
func (u TextureUses) TextureUsage() gputypes.TextureUsage {
	var t gputypes.TextureUsage
	if u&TextureCopySrc != 0 {
		t |= gputypes.TextureUsageCopySrc
	}
	if u&TextureCopyDst != 0 {
		t |= gputypes.TextureUsageCopyDst
	}
	if u&TextureResource != 0 {
		t |= gputypes.TextureUsageTextureBinding
	}
	if u&(TextureStorageRead|TextureStorageWrite) != 0 {
		t |= gputypes.TextureUsageStorageBinding
	}
	if u&(TextureColorTarget|TextureDepthStencilRead|TextureDepthStencilWrite) != 0 {
		t |= gputypes.TextureUsageRenderAttachment
	}
	return t
}

var bufferNames = [...]string{
	"MapRead", "MapWrite", "CopySrc", "CopyDst", "Index", "Vertex",
	"Uniform", "StorageRead", "StorageWrite", "Indirect", "QueryResolve",
}

var textureNames = [...]string{
	"Present", "CopySrc", "CopyDst", "Resource", "ColorTarget",
	"DepthStencilRead", "DepthStencilWrite", "StorageRead", "StorageWrite",
}

func flagString(v uint16, names []string) string {
	if v == 0 {
		return "None"
	}
	var b strings.Builder
	for i, n := range names {
		if v&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n)
		v &^= 1 << i
	}
	if v != 0 {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "0x%x", v)
	}
	return b.String()
}

func (u BufferUses) String() string  { return flagString(uint16(u), bufferNames[:]) }
func (u TextureUses) String() string { return flagString(uint16(u), textureNames[:]) }
