// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import "github.com/gogpu/gpucontext"

// backends holds the registered native device factories. Real drivers are
// preferred over the in-memory recorder.
var backends = gpucontext.NewRegistry[Device](
	gpucontext.WithPriority("d3d12", "record"),
)

// Register adds a device factory under name, replacing any previous one.
func Register(name string, factory func() Device) {
	backends.Register(name, factory)
}

// Unregister removes the factory registered under name.
func Unregister(name string) {
	backends.Unregister(name)
}

// Lookup creates a device from the factory registered under name.
// It returns nil when no such factory exists.
func Lookup(name string) Device {
	return backends.Get(name)
}

// Best creates a device from the highest-priority registered factory, or
// returns nil if none is registered.
func Best() Device {
	return backends.Best()
}

// BestName returns the name Best would use.
func BestName() string {
	return backends.BestName()
}

// Available lists the registered backend names in no particular order.
func Available() []string {
	return backends.Available()
}
