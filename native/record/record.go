// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package record is an in-memory native backend. Every call made on a List
// is stored as a Call so that tests and tools can inspect exactly what the
// encoder emitted, in order.
package record

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gogpu/halcmd/native"
)

// ErrListClosed is returned by Close on a list that is not open.
var ErrListClosed = errors.New("record: command list is not open")

func init() {
	native.Register("record", func() native.Device { return NewDevice() })
}

var handleSeq atomic.Uint64

// NextHandle returns a process-unique non-zero handle value. Convert it to
// the handle type needed: native.Resource(record.NextHandle()).
func NextHandle() uintptr {
	return uintptr(handleSeq.Add(1))
}

// Device creates recording lists. It is safe for concurrent use.
type Device struct {
	mu      sync.Mutex
	lists   []*List
	failErr error
}

// NewDevice returns an empty recording device.
func NewDevice() *Device {
	return &Device{}
}

// CreateCommandList implements native.Device.
func (d *Device) CreateCommandList(ty native.ListType) (native.GraphicsCommandList, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failErr != nil {
		return nil, d.failErr
	}
	l := &List{Type: ty, id: len(d.lists) + 1}
	d.lists = append(d.lists, l)
	return l, nil
}

// FailCreate makes every following CreateCommandList return err. Pass nil
// to restore normal behavior.
func (d *Device) FailCreate(err error) {
	d.mu.Lock()
	d.failErr = err
	d.mu.Unlock()
}

// Created returns how many lists the device has created.
func (d *Device) Created() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.lists)
}

// Lists returns the created lists in creation order.
func (d *Device) Lists() []*List {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*List(nil), d.lists...)
}
