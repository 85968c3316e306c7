// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

// ListType is the queue family a command list records for.
type ListType uint8

const (
	ListDirect ListType = iota
	ListBundle
	ListCompute
	ListCopy
)

// VertexBufferView describes one input-assembler vertex buffer slot.
type VertexBufferView struct {
	BufferLocation GPUAddress
	SizeInBytes    uint32
	StrideInBytes  uint32
}

// IndexBufferView describes the bound index buffer.
type IndexBufferView struct {
	BufferLocation GPUAddress
	SizeInBytes    uint32
	Format         Format
}

// Viewport is a rasterizer viewport.
type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

// Rect is a rasterizer scissor rectangle. Right and Bottom are exclusive.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Box is a 3-D source region of a texture copy. Right, Bottom and Back are
// exclusive.
type Box struct {
	Left   uint32
	Top    uint32
	Front  uint32
	Right  uint32
	Bottom uint32
	Back   uint32
}

// CopyType selects which half of a TextureCopyLocation is used.
type CopyType uint8

const (
	// CopySubresourceIndex addresses one subresource of a texture.
	CopySubresourceIndex CopyType = iota

	// CopyPlacedFootprint addresses a texture image laid out in a buffer.
	CopyPlacedFootprint
)

// SubresourceFootprint is the shape of a texture image stored in a buffer.
type SubresourceFootprint struct {
	Format   Format
	Width    uint32
	Height   uint32
	Depth    uint32
	RowPitch uint32
}

// PlacedFootprint is a SubresourceFootprint at a byte offset in a buffer.
type PlacedFootprint struct {
	Offset    uint64
	Footprint SubresourceFootprint
}

// TextureCopyLocation is a source or destination of CopyTextureRegion.
type TextureCopyLocation struct {
	Resource         Resource
	Type             CopyType
	SubresourceIndex uint32
	PlacedFootprint  PlacedFootprint
}

// ClearFlags selects the aspects cleared by ClearDepthStencilView.
type ClearFlags uint8

const (
	ClearDepth ClearFlags = 1 << iota
	ClearStencil
)

// QueryType is the kind of query recorded into a query heap.
type QueryType uint8

const (
	QueryOcclusion QueryType = iota
	QueryBinaryOcclusion
	QueryTimestamp
	QueryPipelineStatistics
)

// PrimitiveTopology is the input-assembler primitive topology.
type PrimitiveTopology uint8

const (
	TopologyUndefined     PrimitiveTopology = 0
	TopologyPointList     PrimitiveTopology = 1
	TopologyLineList      PrimitiveTopology = 2
	TopologyLineStrip     PrimitiveTopology = 3
	TopologyTriangleList  PrimitiveTopology = 4
	TopologyTriangleStrip PrimitiveTopology = 5
)
