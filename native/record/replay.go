// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package record

import (
	"fmt"

	"github.com/gogpu/halcmd/native"
)

// Subresource identifies one tracked subresource. Index AllSubresources
// stands for every subresource of Resource that has no entry of its own.
type Subresource struct {
	Resource native.Resource
	Index    uint32
}

// States maps subresources to their resource state.
type States map[Subresource]native.ResourceStates

// lookup returns the state of sub, falling back to the whole-resource entry
// and then to Common.
func (s States) lookup(sub Subresource) native.ResourceStates {
	if st, ok := s[sub]; ok {
		return st
	}
	return s[Subresource{Resource: sub.Resource, Index: native.AllSubresources}]
}

// Replay applies every transition barrier recorded on the list, in order,
// to a copy of initial and returns the result. A barrier whose StateBefore
// does not match the tracked state is reported as an error. UAV barriers do
// not change state.
func (l *List) Replay(initial States) (States, error) {
	return Replay(l.calls, initial)
}

// Replay applies the transition barriers found in calls to a copy of
// initial. See List.Replay.
func Replay(calls []Call, initial States) (States, error) {
	cur := make(States, len(initial))
	for k, v := range initial {
		cur[k] = v
	}
	for i, c := range calls {
		if c.Op != OpResourceBarrier {
			continue
		}
		for _, b := range c.Args[0].([]native.ResourceBarrier) {
			if b.Type != native.BarrierTransition {
				continue
			}
			key := Subresource{Resource: b.Resource, Index: b.Subresource}
			if b.Subresource == native.AllSubresources {
				tracked := false
				for k, st := range cur {
					if k.Resource != b.Resource {
						continue
					}
					if st != b.StateBefore {
						return nil, fmt.Errorf("record: call %d: %v: subresource %d is %v", i, b, k.Index, st)
					}
					tracked = true
				}
				if !tracked && b.StateBefore != native.StateCommon {
					return nil, fmt.Errorf("record: call %d: %v: resource is Common", i, b)
				}
				for k := range cur {
					if k.Resource == b.Resource {
						delete(cur, k)
					}
				}
				cur[key] = b.StateAfter
				continue
			}
			if st := cur.lookup(key); st != b.StateBefore {
				return nil, fmt.Errorf("record: call %d: %v: subresource is %v", i, b, st)
			}
			cur[key] = b.StateAfter
		}
	}
	return cur, nil
}
