// Package halcmd records GPU commands into native command lists.
//
// # Overview
//
// halcmd is the command-encoding core of a GPU backend built on a
// command-list driver model. An Encoder turns high-level recording calls
// (barriers, copies, render and compute passes, draws, dispatches,
// queries and debug markers) into calls on a native.GraphicsCommandList.
// Lists are created by a native.Device and recycled through a ListPool.
//
// # Quick Start
//
//	dev := record.NewDevice()
//	enc := halcmd.NewEncoder(dev, &halcmd.Shared{ZeroBuffer: zero})
//	defer enc.Destroy()
//
//	if err := enc.BeginEncoding("upload"); err != nil {
//		return err
//	}
//	enc.TransitionBuffers([]halcmd.BufferBarrier{
//		{Buffer: buf, From: usage.BufferCopySrc, To: usage.BufferCopyDst},
//	})
//	enc.FillBuffer(buf, 0, buf.Size, 0)
//	cb, err := enc.EndEncoding()
//
// # Barriers
//
// Usage changes are expressed with the flag sets of package usage and
// turned into the fewest native barriers: one transition per buffer, one
// per texture when the whole texture changes state, one per mip level and
// array layer otherwise, and a UAV barrier between two storage writes. Each call records at most one native barrier batch.
//
// # Passes
//
// Render and compute passes bind the shared descriptor heaps for their
// duration. Root bindings and vertex buffers are tracked per pass and
// only changed slots are re-recorded; a root signature change rebinds
// everything. Multisample resolves requested at BeginRenderPass run at
// EndRenderPass, bracketed by barriers into and back out of the resolve
// states.
//
// # Concurrency
//
// An Encoder is used by one goroutine at a time. A ListPool may be shared
// between encoders on different goroutines.
//
// # Backends
//
// The native package defines the command-list interface and a registry of
// backends. The record backend keeps every call in memory and can replay
// barriers to check resource states; it is used for tests and tooling.
//
// # HAL
//
// NewHALEncoder adapts an Encoder to the hal.CommandEncoder interface of
// github.com/gogpu/wgpu/hal.
//
// # Logging
//
// Logging is silent by default. See SetLogger.
package halcmd
