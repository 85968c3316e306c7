// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import "github.com/gogpu/gputypes"

// Format is a DXGI_FORMAT value.
type Format uint32

// Formats used by the encoder. Values match DXGI_FORMAT.
const (
	FormatUnknown           Format = 0
	FormatR32G32B32A32Float Format = 2
	FormatR32G32B32A32Uint  Format = 3
	FormatR32G32B32A32Sint  Format = 4
	FormatR16G16B16A16Float Format = 10
	FormatR16G16B16A16Unorm Format = 11
	FormatR16G16B16A16Uint  Format = 12
	FormatR16G16B16A16Snorm Format = 13
	FormatR16G16B16A16Sint  Format = 14
	FormatR32G32Float       Format = 16
	FormatR32G32Uint        Format = 17
	FormatR32G32Sint        Format = 18
	FormatD32FloatS8X24Uint Format = 20
	FormatR10G10B10A2Unorm  Format = 24
	FormatR10G10B10A2Uint   Format = 25
	FormatR11G11B10Float    Format = 26
	FormatR8G8B8A8Unorm     Format = 28
	FormatR8G8B8A8UnormSrgb Format = 29
	FormatR8G8B8A8Uint      Format = 30
	FormatR8G8B8A8Snorm     Format = 31
	FormatR8G8B8A8Sint      Format = 32
	FormatR16G16Float       Format = 34
	FormatR16G16Unorm       Format = 35
	FormatR16G16Uint        Format = 36
	FormatR16G16Snorm       Format = 37
	FormatR16G16Sint        Format = 38
	FormatD32Float          Format = 40
	FormatR32Float          Format = 41
	FormatR32Uint           Format = 42
	FormatR32Sint           Format = 43
	FormatD24UnormS8Uint    Format = 45
	FormatR8G8Unorm         Format = 49
	FormatR8G8Uint          Format = 50
	FormatR8G8Snorm         Format = 51
	FormatR8G8Sint          Format = 52
	FormatR16Float          Format = 54
	FormatD16Unorm          Format = 55
	FormatR16Unorm          Format = 56
	FormatR16Uint           Format = 57
	FormatR16Snorm          Format = 58
	FormatR16Sint           Format = 59
	FormatR8Unorm           Format = 61
	FormatR8Uint            Format = 62
	FormatR8Snorm           Format = 63
	FormatR8Sint            Format = 64
	FormatR9G9B9E5SharedExp Format = 67
	FormatBC1Unorm          Format = 71
	FormatBC1UnormSrgb      Format = 72
	FormatBC2Unorm          Format = 74
	FormatBC2UnormSrgb      Format = 75
	FormatBC3Unorm          Format = 77
	FormatBC3UnormSrgb      Format = 78
	FormatBC4Unorm          Format = 80
	FormatBC4Snorm          Format = 81
	FormatBC5Unorm          Format = 83
	FormatBC5Snorm          Format = 84
	FormatB8G8R8A8Unorm     Format = 87
	FormatB8G8R8A8UnormSrgb Format = 91
	FormatBC6HUF16          Format = 95
	FormatBC6HSF16          Format = 96
	FormatBC7Unorm          Format = 98
	FormatBC7UnormSrgb      Format = 99
)

var textureFormats = map[gputypes.TextureFormat]Format{
	gputypes.TextureFormatR8Unorm:              FormatR8Unorm,
	gputypes.TextureFormatR8Snorm:              FormatR8Snorm,
	gputypes.TextureFormatR8Uint:               FormatR8Uint,
	gputypes.TextureFormatR8Sint:               FormatR8Sint,
	gputypes.TextureFormatR16Unorm:             FormatR16Unorm,
	gputypes.TextureFormatR16Snorm:             FormatR16Snorm,
	gputypes.TextureFormatR16Uint:              FormatR16Uint,
	gputypes.TextureFormatR16Sint:              FormatR16Sint,
	gputypes.TextureFormatR16Float:             FormatR16Float,
	gputypes.TextureFormatRG8Unorm:             FormatR8G8Unorm,
	gputypes.TextureFormatRG8Snorm:             FormatR8G8Snorm,
	gputypes.TextureFormatRG8Uint:              FormatR8G8Uint,
	gputypes.TextureFormatRG8Sint:              FormatR8G8Sint,
	gputypes.TextureFormatR32Float:             FormatR32Float,
	gputypes.TextureFormatR32Uint:              FormatR32Uint,
	gputypes.TextureFormatR32Sint:              FormatR32Sint,
	gputypes.TextureFormatRG16Unorm:            FormatR16G16Unorm,
	gputypes.TextureFormatRG16Snorm:            FormatR16G16Snorm,
	gputypes.TextureFormatRG16Uint:             FormatR16G16Uint,
	gputypes.TextureFormatRG16Sint:             FormatR16G16Sint,
	gputypes.TextureFormatRG16Float:            FormatR16G16Float,
	gputypes.TextureFormatRGBA8Unorm:           FormatR8G8B8A8Unorm,
	gputypes.TextureFormatRGBA8UnormSrgb:       FormatR8G8B8A8UnormSrgb,
	gputypes.TextureFormatRGBA8Snorm:           FormatR8G8B8A8Snorm,
	gputypes.TextureFormatRGBA8Uint:            FormatR8G8B8A8Uint,
	gputypes.TextureFormatRGBA8Sint:            FormatR8G8B8A8Sint,
	gputypes.TextureFormatBGRA8Unorm:           FormatB8G8R8A8Unorm,
	gputypes.TextureFormatBGRA8UnormSrgb:       FormatB8G8R8A8UnormSrgb,
	gputypes.TextureFormatRGB10A2Uint:          FormatR10G10B10A2Uint,
	gputypes.TextureFormatRGB10A2Unorm:         FormatR10G10B10A2Unorm,
	gputypes.TextureFormatRG11B10Ufloat:        FormatR11G11B10Float,
	gputypes.TextureFormatRGB9E5Ufloat:         FormatR9G9B9E5SharedExp,
	gputypes.TextureFormatRG32Float:            FormatR32G32Float,
	gputypes.TextureFormatRG32Uint:             FormatR32G32Uint,
	gputypes.TextureFormatRG32Sint:             FormatR32G32Sint,
	gputypes.TextureFormatRGBA16Unorm:          FormatR16G16B16A16Unorm,
	gputypes.TextureFormatRGBA16Snorm:          FormatR16G16B16A16Snorm,
	gputypes.TextureFormatRGBA16Uint:           FormatR16G16B16A16Uint,
	gputypes.TextureFormatRGBA16Sint:           FormatR16G16B16A16Sint,
	gputypes.TextureFormatRGBA16Float:          FormatR16G16B16A16Float,
	gputypes.TextureFormatRGBA32Float:          FormatR32G32B32A32Float,
	gputypes.TextureFormatRGBA32Uint:           FormatR32G32B32A32Uint,
	gputypes.TextureFormatRGBA32Sint:           FormatR32G32B32A32Sint,
	gputypes.TextureFormatStencil8:             FormatD24UnormS8Uint,
	gputypes.TextureFormatDepth16Unorm:         FormatD16Unorm,
	gputypes.TextureFormatDepth24Plus:          FormatD24UnormS8Uint,
	gputypes.TextureFormatDepth24PlusStencil8:  FormatD24UnormS8Uint,
	gputypes.TextureFormatDepth32Float:         FormatD32Float,
	gputypes.TextureFormatDepth32FloatStencil8: FormatD32FloatS8X24Uint,
	gputypes.TextureFormatBC1RGBAUnorm:         FormatBC1Unorm,
	gputypes.TextureFormatBC1RGBAUnormSrgb:     FormatBC1UnormSrgb,
	gputypes.TextureFormatBC2RGBAUnorm:         FormatBC2Unorm,
	gputypes.TextureFormatBC2RGBAUnormSrgb:     FormatBC2UnormSrgb,
	gputypes.TextureFormatBC3RGBAUnorm:         FormatBC3Unorm,
	gputypes.TextureFormatBC3RGBAUnormSrgb:     FormatBC3UnormSrgb,
	gputypes.TextureFormatBC4RUnorm:            FormatBC4Unorm,
	gputypes.TextureFormatBC4RSnorm:            FormatBC4Snorm,
	gputypes.TextureFormatBC5RGUnorm:           FormatBC5Unorm,
	gputypes.TextureFormatBC5RGSnorm:           FormatBC5Snorm,
	gputypes.TextureFormatBC6HRGBUfloat:        FormatBC6HUF16,
	gputypes.TextureFormatBC6HRGBFloat:         FormatBC6HSF16,
	gputypes.TextureFormatBC7RGBAUnorm:         FormatBC7Unorm,
	gputypes.TextureFormatBC7RGBAUnormSrgb:     FormatBC7UnormSrgb,
}

// MapTextureFormat returns the DXGI format for f, or FormatUnknown when the
// format has no direct equivalent (ETC2/ASTC).
func MapTextureFormat(f gputypes.TextureFormat) Format {
	return textureFormats[f]
}

// MapIndexFormat returns the DXGI format of an index buffer.
func MapIndexFormat(f gputypes.IndexFormat) Format {
	switch f {
	case gputypes.IndexFormatUint16:
		return FormatR16Uint
	case gputypes.IndexFormatUint32:
		return FormatR32Uint
	default:
		return FormatUnknown
	}
}

// MapTopology returns the input-assembler topology for t.
func MapTopology(t gputypes.PrimitiveTopology) PrimitiveTopology {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return TopologyPointList
	case gputypes.PrimitiveTopologyLineList:
		return TopologyLineList
	case gputypes.PrimitiveTopologyLineStrip:
		return TopologyLineStrip
	case gputypes.PrimitiveTopologyTriangleList:
		return TopologyTriangleList
	case gputypes.PrimitiveTopologyTriangleStrip:
		return TopologyTriangleStrip
	default:
		return TopologyUndefined
	}
}
