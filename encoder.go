// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"fmt"

	"golang.org/x/text/encoding"

	"github.com/gogpu/halcmd/internal/barrier"
	"github.com/gogpu/halcmd/internal/pass"
	"github.com/gogpu/halcmd/native"
)

// Encoder records commands into native command lists.
//
// An Encoder is not safe for concurrent use. At most one list is open on
// it at a time: BeginEncoding opens one, EndEncoding hands it to a
// CommandBuffer and DiscardEncoding returns it to the pool. Lists held by
// command buffers come back to the pool through ResetAll once the GPU is
// done with them.
//
// Calls that record commands panic when no list is open, and draw or
// dispatch calls panic outside a matching pass. Inputs are expected to be
// validated by the layer above.
type Encoder struct {
	device   native.Device
	shared   *Shared
	pool     *ListPool
	ownPool  bool
	listType native.ListType

	list  native.GraphicsCommandList
	label string
	temp  temp
	pass  pass.State

	// passTimestamps is the end-of-pass timestamp write of the open pass.
	passTimestamps *TimestampWrites

	heaps [2]native.DescriptorHeap
}

// temp is scratch memory reused across encodings.
type temp struct {
	barriers *barrier.Batch
	marker   []byte
	enc      *encoding.Encoder
}

func (t *temp) clear() {
	t.barriers.Reset()
	t.marker = t.marker[:0]
}

// NewEncoder returns an encoder that creates lists on device and uses the
// heaps, command signatures and zero buffer in shared.
func NewEncoder(device native.Device, shared *Shared, opts ...EncoderOption) *Encoder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Encoder{
		device:   device,
		shared:   shared,
		pool:     o.pool,
		listType: o.listType,
		temp: temp{
			barriers: barrier.New(o.barrierCapacity),
			marker:   make([]byte, 0, o.markerCapacity),
			enc:      utf16le.NewEncoder(),
		},
	}
	if e.pool == nil {
		e.pool = NewListPool()
		e.ownPool = true
	}
	return e
}

// IsRecording reports whether a list is open.
func (e *Encoder) IsRecording() bool {
	return e.list != nil
}

// Pool returns the pool the encoder takes lists from.
func (e *Encoder) Pool() *ListPool {
	return e.pool
}

// BeginEncoding opens a list for recording, reusing a pooled list when one
// resets cleanly and creating one otherwise. A non-empty label becomes the
// list's debug name. The only error is a failure to create a list, which
// wraps ErrDevice and the device error.
func (e *Encoder) BeginEncoding(label string) error {
	if e.list != nil {
		panic("halcmd: BeginEncoding while already recording")
	}
	list, err := e.acquire()
	if err != nil {
		return err
	}
	if label != "" {
		list.SetName(label)
	}
	e.list = list
	e.label = label
	e.temp.clear()
	e.pass.Clear()
	e.passTimestamps = nil
	return nil
}

func (e *Encoder) acquire() (native.GraphicsCommandList, error) {
	for {
		list := e.pool.Get()
		if list == nil {
			break
		}
		if err := list.Reset(); err != nil {
			Logger().Warn("halcmd: dropping command list that failed to reset", "err", err)
			continue
		}
		Logger().Debug("halcmd: reusing command list")
		return list, nil
	}
	list, err := e.device.CreateCommandList(e.listType)
	if err != nil {
		return nil, fmt.Errorf("%w: create command list: %w", ErrDevice, err)
	}
	Logger().Debug("halcmd: created command list", "type", e.listType)
	return list, nil
}

// EndEncoding closes the open list and returns it as a command buffer.
// The encoder no longer references the list afterwards. A list that fails
// to close goes back to the pool, where the next Reset decides whether it
// can be reused.
func (e *Encoder) EndEncoding() (*CommandBuffer, error) {
	if e.list == nil {
		return nil, ErrNotRecording
	}
	if e.pass.Open() {
		return nil, fmt.Errorf("%w: %v", ErrPassOpen, e.pass.Kind)
	}
	list := e.list
	e.list = nil
	Logger().Debug("halcmd: command list close", "label", e.label)
	if err := list.Close(); err != nil {
		Logger().Error("halcmd: command list close failed", "label", e.label, "err", err)
		e.pool.Put(list)
		return nil, fmt.Errorf("halcmd: close command list: %w", err)
	}
	return &CommandBuffer{list: list}, nil
}

// DiscardEncoding closes the open list without producing a command buffer
// and returns it to the pool. It does nothing when no list is open.
func (e *Encoder) DiscardEncoding() {
	if e.list == nil {
		return
	}
	list := e.list
	e.list = nil
	e.pass.Clear()
	e.passTimestamps = nil
	if err := list.Close(); err != nil {
		Logger().Error("halcmd: command list close failed", "label", e.label, "err", err)
	}
	e.pool.Put(list)
}

// ResetAll takes the lists of executed command buffers back into the pool.
// Each buffer is left empty, so resetting it twice is harmless.
func (e *Encoder) ResetAll(buffers []*CommandBuffer) {
	for _, cb := range buffers {
		if cb == nil || cb.list == nil {
			continue
		}
		e.pool.Put(cb.list)
		cb.list = nil
	}
}

// Destroy discards any open list and, when the encoder owns its pool,
// empties the pool. A shared pool is left to its other users.
func (e *Encoder) Destroy() {
	e.DiscardEncoding()
	if e.ownPool {
		e.pool.Drain()
	}
}

// mustList returns the open list or panics naming op.
func (e *Encoder) mustList(op string) native.GraphicsCommandList {
	if e.list == nil {
		panic(fmt.Sprintf("halcmd: %s called while not recording", op))
	}
	return e.list
}

// mustPass returns the open list and panics unless a pass of kind is open.
func (e *Encoder) mustPass(op string, kind pass.Kind) native.GraphicsCommandList {
	list := e.mustList(op)
	if e.pass.Kind != kind {
		panic(fmt.Sprintf("halcmd: %s called outside a %v pass", op, kind))
	}
	return list
}
