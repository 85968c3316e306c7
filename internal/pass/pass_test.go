// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pass

import (
	"slices"
	"testing"

	"github.com/gogpu/halcmd/internal/rootbind"
	"github.com/gogpu/halcmd/native"
	"github.com/gogpu/halcmd/native/record"
)

func TestFlushVertexBuffers(t *testing.T) {
	tests := []struct {
		name  string
		slots []uint32
	}{
		{"none", nil},
		{"one", []uint32{3}},
		{"several", []uint32{0, 5, 2, 15}},
		{"repeated slot", []uint32{1, 1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			for _, slot := range tt.slots {
				s.SetVertexBuffer(slot, native.GPUAddress(0x1000*(slot+1)), 64)
			}
			want := slices.Clone(tt.slots)
			slices.Sort(want)
			want = slices.Compact(want)

			list := &record.List{}
			if n := s.FlushVertexBuffers(list); n != len(want) {
				t.Errorf("FlushVertexBuffers = %d, want %d", n, len(want))
			}
			if s.DirtyVertexBuffers != 0 {
				t.Errorf("dirty mask = %b after flush", s.DirtyVertexBuffers)
			}
			calls := list.Filter(record.OpIASetVertexBuffers)
			if len(calls) != len(want) {
				t.Fatalf("calls = %v", calls)
			}
			for i, c := range calls {
				slot := c.Args[0].(uint32)
				views := c.Args[1].([]native.VertexBufferView)
				if slot != want[i] || len(views) != 1 {
					t.Errorf("call %d binds slot %d with %d views, want slot %d", i, slot, len(views), want[i])
				}
				if views[0].BufferLocation != native.GPUAddress(0x1000*(slot+1)) {
					t.Errorf("slot %d location = %#x", slot, views[0].BufferLocation)
				}
			}

			list = &record.List{}
			if n := s.FlushVertexBuffers(list); n != 0 {
				t.Errorf("second flush bound %d slots", n)
			}
		})
	}
}

func TestApplyStrides(t *testing.T) {
	var s State
	s.ApplyStrides([]uint32{12, 0, 32})
	if s.DirtyVertexBuffers != 0b101 {
		t.Errorf("dirty = %b, want 101", s.DirtyVertexBuffers)
	}
	s.DirtyVertexBuffers = 0
	s.ApplyStrides([]uint32{12, 0, 16})
	if s.DirtyVertexBuffers != 0b100 {
		t.Errorf("dirty = %b, want 100", s.DirtyVertexBuffers)
	}
	if s.VertexBuffers[2].StrideInBytes != 16 {
		t.Errorf("stride = %d", s.VertexBuffers[2].StrideInBytes)
	}
}

func TestSetVertexBuffer_OutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic for slot out of range")
		}
	}()
	var s State
	s.SetVertexBuffer(MaxVertexBuffers, 0, 0)
}

func TestBeginEnd(t *testing.T) {
	heaps := []native.DescriptorHeap{1, 2}

	t.Run("labelled", func(t *testing.T) {
		var s State
		list := &record.List{}
		s.Begin(list, Render, []byte{'p', 0, 0, 0}, heaps)
		if s.Kind != Render || !s.HasLabel || s.Target() != rootbind.TargetGraphics {
			t.Errorf("state after Begin = %v %v %v", s.Kind, s.HasLabel, s.Target())
		}
		s.Signature = 7
		s.Root[0] = rootbind.TableElement(1)
		s.SetVertexBuffer(0, 1, 1)
		s.AddResolve(Resolve{Src: 1, Dst: 2})
		s.End(list)

		want := []record.Op{record.OpBeginEvent, record.OpSetDescriptorHeaps, record.OpSetDescriptorHeaps, record.OpEndEvent}
		if !slices.Equal(list.Ops(), want) {
			t.Errorf("ops = %v, want %v", list.Ops(), want)
		}
		if got := list.Calls()[2].Args[0].([]native.DescriptorHeap); len(got) != 0 {
			t.Errorf("End bound heaps %v", got)
		}
		if s.Open() || s.Signature != 0 || s.Root[0].Type != rootbind.ElementEmpty ||
			s.DirtyVertexBuffers != 0 || len(s.Resolves) != 0 || s.HasLabel {
			t.Errorf("state not cleared: %+v", s)
		}
	})

	t.Run("unlabelled", func(t *testing.T) {
		var s State
		list := &record.List{}
		s.Begin(list, Compute, nil, heaps)
		if s.Target() != rootbind.TargetCompute {
			t.Errorf("Target() = %v", s.Target())
		}
		s.End(list)
		want := []record.Op{record.OpSetDescriptorHeaps, record.OpSetDescriptorHeaps}
		if !slices.Equal(list.Ops(), want) {
			t.Errorf("ops = %v, want %v", list.Ops(), want)
		}
		if s.Target() != rootbind.TargetNone {
			t.Errorf("closed Target() = %v", s.Target())
		}
	})

	t.Run("nested", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("nested Begin did not panic")
			}
		}()
		var s State
		list := &record.List{}
		s.Begin(list, Render, nil, heaps)
		s.Begin(list, Compute, nil, heaps)
	})
}
