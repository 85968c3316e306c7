// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// prepareMarker stages s as NUL-terminated UTF-16LE text in the marker
// scratch buffer and returns it. The result is valid until the next call.
func (t *temp) prepareMarker(s string) []byte {
	buf, _, err := transform.Append(t.enc, t.marker[:0], []byte(s))
	if err != nil {
		Logger().Warn("halcmd: debug marker not encodable", "marker", s, "err", err)
		buf = t.marker[:0]
	}
	t.marker = append(buf, 0, 0)
	return t.marker
}

// InsertDebugMarker records a single debug marker.
func (e *Encoder) InsertDebugMarker(label string) {
	list := e.mustList("InsertDebugMarker")
	list.SetMarker(0, e.temp.prepareMarker(label))
}

// BeginDebugMarker opens a debug event scope.
func (e *Encoder) BeginDebugMarker(label string) {
	list := e.mustList("BeginDebugMarker")
	list.BeginEvent(0, e.temp.prepareMarker(label))
}

// EndDebugMarker closes the innermost debug event scope.
func (e *Encoder) EndDebugMarker() {
	e.mustList("EndDebugMarker").EndEvent()
}

// passLabel returns the staged label of a pass, or nil for no label.
func (e *Encoder) passLabel(label string) []byte {
	if label == "" {
		return nil
	}
	return e.temp.prepareMarker(label)
}
