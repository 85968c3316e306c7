// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"testing"

	"github.com/gogpu/halcmd/native"
	"github.com/gogpu/halcmd/native/record"
)

func TestEncoderOptions(t *testing.T) {
	pool := NewListPool()
	tests := []struct {
		name  string
		opts  []EncoderOption
		check func(t *testing.T, e *Encoder)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, e *Encoder) {
				if !e.ownPool || e.pool == nil {
					t.Error("encoder without WithListPool has no private pool")
				}
				if e.listType != native.ListDirect {
					t.Errorf("listType = %v, want ListDirect", e.listType)
				}
				if c := cap(e.temp.barriers.Barriers()); c != 16 {
					t.Errorf("barrier capacity = %d, want 16", c)
				}
				if c := cap(e.temp.marker); c != 64 {
					t.Errorf("marker capacity = %d, want 64", c)
				}
			},
		},
		{
			name: "shared pool",
			opts: []EncoderOption{WithListPool(pool)},
			check: func(t *testing.T, e *Encoder) {
				if e.Pool() != pool || e.ownPool {
					t.Error("WithListPool not applied")
				}
			},
		},
		{
			name: "capacities",
			opts: []EncoderOption{WithBarrierCapacity(128), WithMarkerCapacity(-1), WithMarkerCapacity(256)},
			check: func(t *testing.T, e *Encoder) {
				if c := cap(e.temp.barriers.Barriers()); c != 128 {
					t.Errorf("barrier capacity = %d, want 128", c)
				}
				if c := cap(e.temp.marker); c != 256 {
					t.Errorf("marker capacity = %d, want 256", c)
				}
			},
		},
		{
			name: "list type",
			opts: []EncoderOption{WithListType(native.ListCopy)},
			check: func(t *testing.T, e *Encoder) {
				if e.listType != native.ListCopy {
					t.Errorf("listType = %v, want ListCopy", e.listType)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder(record.NewDevice(), testShared(), tt.opts...)
			defer e.Destroy()
			tt.check(t, e)
		})
	}
}
