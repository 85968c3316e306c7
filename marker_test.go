// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"bytes"
	"testing"

	"github.com/gogpu/halcmd/native/record"
)

func TestDebugMarkers(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  []byte
	}{
		{"empty", "", []byte{0, 0}},
		{"ascii", "Hi", []byte{'H', 0, 'i', 0, 0, 0}},
		{"bmp", "é", []byte{0xe9, 0, 0, 0}},
		{"surrogate pair", "😀", []byte{0x3d, 0xd8, 0x00, 0xde, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEncoder(t)
			l := begin(t, e)
			e.InsertDebugMarker(tt.label)
			e.BeginDebugMarker(tt.label)
			e.EndDebugMarker()

			calls := l.Calls()
			if len(calls) != 3 {
				t.Fatalf("ops = %v", l.Ops())
			}
			for _, c := range calls[:2] {
				if c.Args[0] != uint32(0) {
					t.Errorf("%v metadata = %v, want 0", c.Op, c.Args[0])
				}
				if got := c.Args[1].([]byte); !bytes.Equal(got, tt.want) {
					t.Errorf("%v data = % x, want % x", c.Op, got, tt.want)
				}
			}
			if calls[2].Op != record.OpEndEvent {
				t.Errorf("last op = %v, want EndEvent", calls[2].Op)
			}
		})
	}
}

func TestPassLabelScope(t *testing.T) {
	e, _ := newTestEncoder(t)
	l := begin(t, e)
	e.BeginComputePass(&ComputePassDescriptor{Label: "cull"})
	e.EndComputePass()

	ev := l.Filter(record.OpBeginEvent)
	if len(ev) != 1 {
		t.Fatalf("%d events, want 1", len(ev))
	}
	want := []byte{'c', 0, 'u', 0, 'l', 0, 'l', 0, 0, 0}
	if got := ev[0].Args[1].([]byte); !bytes.Equal(got, want) {
		t.Errorf("pass label = % x, want % x", got, want)
	}
	if l.Count(record.OpEndEvent) != 1 {
		t.Error("pass label scope not closed")
	}
}
