// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"sync"

	"github.com/gogpu/halcmd/native"
)

// ListPool is a free list of closed command lists. Get and Put are safe
// for concurrent use, so one pool may serve encoders on many goroutines.
// A list taken with Get belongs to the caller until it is Put back.
type ListPool struct {
	mu   sync.Mutex
	free []native.GraphicsCommandList
}

// NewListPool returns an empty pool.
func NewListPool() *ListPool {
	return &ListPool{}
}

// Get removes and returns the most recently returned list, or nil when the
// pool is empty.
func (p *ListPool) Get() native.GraphicsCommandList {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.free)
	if n == 0 {
		return nil
	}
	l := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	return l
}

// Put returns a closed list to the pool.
func (p *ListPool) Put(l native.GraphicsCommandList) {
	if l == nil {
		return
	}
	p.mu.Lock()
	p.free = append(p.free, l)
	p.mu.Unlock()
}

// Len returns the number of pooled lists.
func (p *ListPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Drain empties the pool and returns its lists.
func (p *ListPool) Drain() []native.GraphicsCommandList {
	p.mu.Lock()
	defer p.mu.Unlock()
	free := p.free
	p.free = nil
	return free
}
