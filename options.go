package halcmd

import "github.com/gogpu/halcmd/native"

// EncoderOption configures an Encoder during creation.
//
// Example:
//
//	pool := halcmd.NewListPool()
//	a := halcmd.NewEncoder(dev, shared, halcmd.WithListPool(pool))
//	b := halcmd.NewEncoder(dev, shared, halcmd.WithListPool(pool))
type EncoderOption func(*encoderOptions)

type encoderOptions struct {
	pool            *ListPool
	listType        native.ListType
	barrierCapacity int
	markerCapacity  int
}

func defaultOptions() encoderOptions {
	return encoderOptions{
		listType:        native.ListDirect,
		barrierCapacity: 16,
		markerCapacity:  64,
	}
}

// WithListPool makes the encoder draw its command lists from pool and
// return them there. A pool may be shared by encoders on different
// goroutines. Without this option each encoder owns a private pool.
func WithListPool(pool *ListPool) EncoderOption {
	return func(o *encoderOptions) {
		o.pool = pool
	}
}

// WithListType sets the type of the command lists the encoder creates.
// The default is native.ListDirect.
func WithListType(ty native.ListType) EncoderOption {
	return func(o *encoderOptions) {
		o.listType = ty
	}
}

// WithBarrierCapacity preallocates room for n barriers per batch.
func WithBarrierCapacity(n int) EncoderOption {
	return func(o *encoderOptions) {
		if n >= 0 {
			o.barrierCapacity = n
		}
	}
}

// WithMarkerCapacity preallocates n bytes for debug marker text.
func WithMarkerCapacity(n int) EncoderOption {
	return func(o *encoderOptions) {
		if n >= 0 {
			o.markerCapacity = n
		}
	}
}
