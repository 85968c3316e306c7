// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/halcmd/usage"
)

// BufferBarrier is a buffer moving from one usage to another.
type BufferBarrier struct {
	Buffer   *Buffer
	From, To usage.BufferUses
}

// TextureBarrier is a range of texture subresources moving from one usage
// to another. A zero Range covers the whole texture.
type TextureBarrier struct {
	Texture  *Texture
	Range    gputypes.ImageSubresourceRange
	From, To usage.TextureUses
}

// TransitionBuffers records the barriers for a set of buffer usage
// changes as one native call, or nothing if no barrier is needed.
func (e *Encoder) TransitionBuffers(barriers []BufferBarrier) {
	list := e.mustList("TransitionBuffers")
	b := e.temp.barriers
	b.Reset()
	for _, br := range barriers {
		b.AddBuffer(br.Buffer.Raw, br.From, br.To)
	}
	if n := b.Flush(list); n > 0 {
		Logger().Debug("halcmd: buffer barriers", "label", e.label, "count", n)
	}
}

// TransitionTextures records the barriers for a set of texture usage
// changes as one native call, or nothing if no barrier is needed. A
// texture's tracked usage becomes the new usage when the barrier covers
// the whole texture; a partial barrier leaves it unchanged.
func (e *Encoder) TransitionTextures(barriers []TextureBarrier) {
	list := e.mustList("TransitionTextures")
	b := e.temp.barriers
	b.Reset()
	for _, br := range barriers {
		sub := br.Texture.subresources()
		b.AddTexture(sub, br.Range, br.From, br.To)
		if sub.Covers(br.Range) {
			br.Texture.SetUses(br.To)
		}
	}
	if n := b.Flush(list); n > 0 {
		Logger().Debug("halcmd: texture barriers", "label", e.label, "count", n)
	}
}
