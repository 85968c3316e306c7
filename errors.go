package halcmd

import "errors"

var (
	// ErrDevice reports that the device could not create a command list.
	// The returned error also wraps the native cause.
	ErrDevice = errors.New("halcmd: device error")

	// ErrNotRecording is returned by EndEncoding when no list is open.
	ErrNotRecording = errors.New("halcmd: encoder is not recording")

	// ErrPassOpen is returned by EndEncoding while a render or compute pass
	// is still open.
	ErrPassOpen = errors.New("halcmd: pass still open")
)
