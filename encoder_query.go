// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import "github.com/gogpu/halcmd/native"

// BeginQuery starts query index of set.
func (e *Encoder) BeginQuery(set *QuerySet, index uint32) {
	e.mustList("BeginQuery").BeginQuery(set.Raw, set.Type, index)
}

// EndQuery ends query index of set.
func (e *Encoder) EndQuery(set *QuerySet, index uint32) {
	e.mustList("EndQuery").EndQuery(set.Raw, set.Type, index)
}

// WriteTimestamp writes the GPU timestamp into query index of set.
func (e *Encoder) WriteTimestamp(set *QuerySet, index uint32) {
	e.mustList("WriteTimestamp").EndQuery(set.Raw, native.QueryTimestamp, index)
}

// ResetQueries does nothing: query heaps need no reset before reuse.
func (e *Encoder) ResetQueries(set *QuerySet, first, count uint32) {}

// CopyQueryResults resolves count queries starting at first into dst at
// offset.
func (e *Encoder) CopyQueryResults(set *QuerySet, first, count uint32, dst *Buffer, offset uint64) {
	list := e.mustList("CopyQueryResults")
	list.ResolveQueryData(set.Raw, set.Type, first, count, dst.Raw, offset)
}

// writePassTimestamp writes an optional pass timestamp.
func (e *Encoder) writePassTimestamp(tw *TimestampWrites, index *uint32) {
	if tw == nil || tw.QuerySet == nil || index == nil {
		return
	}
	e.list.EndQuery(tw.QuerySet.Raw, native.QueryTimestamp, *index)
}
