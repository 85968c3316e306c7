// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import "fmt"

// BarrierType selects the kind of a ResourceBarrier.
type BarrierType uint8

const (
	// BarrierTransition moves a subresource from StateBefore to StateAfter.
	BarrierTransition BarrierType = iota

	// BarrierUAV orders unordered-access writes to a resource whose state
	// does not change.
	BarrierUAV
)

// String returns the barrier type name.
func (t BarrierType) String() string {
	switch t {
	case BarrierTransition:
		return "Transition"
	case BarrierUAV:
		return "UAV"
	default:
		return fmt.Sprintf("BarrierType(%d)", uint8(t))
	}
}

// ResourceBarrier is one entry of a batched ResourceBarrier call.
// Subresource, StateBefore and StateAfter are only meaningful for
// transition barriers.
type ResourceBarrier struct {
	Type        BarrierType
	Resource    Resource
	Subresource uint32
	StateBefore ResourceStates
	StateAfter  ResourceStates
}

// Transition returns a transition barrier for one subresource, or for all
// of them when sub is AllSubresources.
func Transition(res Resource, sub uint32, before, after ResourceStates) ResourceBarrier {
	return ResourceBarrier{
		Type:        BarrierTransition,
		Resource:    res,
		Subresource: sub,
		StateBefore: before,
		StateAfter:  after,
	}
}

// UAV returns a read/write hazard barrier for res.
func UAV(res Resource) ResourceBarrier {
	return ResourceBarrier{Type: BarrierUAV, Resource: res}
}

// Reversed returns the barrier with StateBefore and StateAfter swapped.
// UAV barriers are returned unchanged.
func (b ResourceBarrier) Reversed() ResourceBarrier {
	if b.Type == BarrierTransition {
		b.StateBefore, b.StateAfter = b.StateAfter, b.StateBefore
	}
	return b
}

// String formats the barrier for logs and test failures.
func (b ResourceBarrier) String() string {
	if b.Type == BarrierUAV {
		return fmt.Sprintf("UAV(%#x)", uintptr(b.Resource))
	}
	sub := "all"
	if b.Subresource != AllSubresources {
		sub = fmt.Sprint(b.Subresource)
	}
	return fmt.Sprintf("Transition(%#x[%s] %v -> %v)", uintptr(b.Resource), sub, b.StateBefore, b.StateAfter)
}
