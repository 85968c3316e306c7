// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halcmd

import (
	"github.com/gogpu/halcmd/internal/pass"
	"github.com/gogpu/halcmd/internal/rootbind"
)

// ComputePassDescriptor describes a compute pass.
type ComputePassDescriptor struct {
	Label           string
	TimestampWrites *TimestampWrites
}

// BeginComputePass opens a compute pass.
func (e *Encoder) BeginComputePass(desc *ComputePassDescriptor) {
	list := e.mustList("BeginComputePass")
	e.pass.Begin(list, pass.Compute, e.passLabel(desc.Label), e.shared.heaps(e.heaps[:]))
	e.writePassTimestamp(desc.TimestampWrites, beginningIndex(desc.TimestampWrites))
	e.passTimestamps = desc.TimestampWrites
}

// EndComputePass closes the compute pass.
func (e *Encoder) EndComputePass() {
	e.endPass(e.mustPass("EndComputePass", pass.Compute))
}

// SetComputePipeline binds a compute pipeline. A root signature change
// rebinds every root slot.
func (e *Encoder) SetComputePipeline(p *ComputePipeline) {
	list := e.mustPass("SetComputePipeline", pass.Compute)
	if e.setSignature(list, p.Layout.Signature) {
		e.flushRoot(list, p.Layout, true, rootbind.Range{})
	}
	list.SetPipelineState(p.Raw)
}

// Dispatch dispatches x*y*z workgroups.
func (e *Encoder) Dispatch(x, y, z uint32) {
	e.mustPass("Dispatch", pass.Compute).Dispatch(x, y, z)
}

// DispatchIndirect dispatches with workgroup counts read from buf at
// offset.
func (e *Encoder) DispatchIndirect(buf *Buffer, offset uint64) {
	list := e.mustPass("DispatchIndirect", pass.Compute)
	list.ExecuteIndirect(e.shared.DispatchSignature, 1, buf.Raw, offset, 0, 0)
}
