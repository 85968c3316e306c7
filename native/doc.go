// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native defines the command-list surface the encoder records into.
//
// The types mirror the D3D12 graphics command list: resource-state
// transitions are batched into a single ResourceBarrier call, root
// parameters are bound per bind point (graphics or compute), and indirect
// work goes through ExecuteIndirect with a precomputed command signature.
//
// Handles (Resource, RootSignature, PipelineState, ...) are opaque values.
// A D3D12 backend stores COM pointers in them; the record backend hands out
// small integers so that tests can compare them directly.
//
// Backends register a Device factory by name:
//
//	native.Register("record", func() native.Device { return record.NewDevice() })
//	dev := native.Best()
package native
