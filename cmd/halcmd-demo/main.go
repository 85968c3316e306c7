// Command halcmd-demo records frames on several goroutines that share one
// command list pool and prints what was recorded.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/halcmd"
	"github.com/gogpu/halcmd/native"
	"github.com/gogpu/halcmd/native/record"
	"github.com/gogpu/halcmd/usage"
)

func main() {
	var (
		backend = flag.String("backend", "", "native backend (default: best available)")
		workers = flag.Int("workers", 4, "encoding goroutines")
		frames  = flag.Int("frames", 3, "frames per goroutine")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		halcmd.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	name := *backend
	if name == "" {
		name = native.BestName()
	}
	dev := native.Lookup(name)
	if dev == nil {
		log.Fatalf("unknown backend %q (available: %v)", name, native.Available())
	}

	shared := &halcmd.Shared{
		ViewHeap:             native.DescriptorHeap(record.NextHandle()),
		SamplerHeap:          native.DescriptorHeap(record.NextHandle()),
		DrawSignature:        native.CommandSignature(record.NextHandle()),
		DrawIndexedSignature: native.CommandSignature(record.NextHandle()),
		DispatchSignature:    native.CommandSignature(record.NextHandle()),
		NullRTV:              native.CPUDescriptor(record.NextHandle()),
		ZeroBuffer:           native.Resource(record.NextHandle()),
	}
	pool := halcmd.NewListPool()

	var g errgroup.Group
	results := make([][]*halcmd.CommandBuffer, *workers)
	for w := range *workers {
		g.Go(func() error {
			enc := halcmd.NewEncoder(dev, shared, halcmd.WithListPool(pool))
			defer enc.Destroy()
			for f := range *frames {
				cb, err := encodeFrame(enc, fmt.Sprintf("worker %d frame %d", w, f))
				if err != nil {
					return err
				}
				results[w] = append(results[w], cb)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	for w, cbs := range results {
		for f, cb := range cbs {
			report(w, f, cb)
		}
	}
	log.Printf("backend %s: %d workers x %d frames", name, *workers, *frames)
}

// frame holds the resources one frame renders with.
type frame struct {
	staging *halcmd.Buffer
	vertex  *halcmd.Buffer
	msaa    *halcmd.TextureView
	target  *halcmd.TextureView
	layout  *halcmd.PipelineLayout
	pipe    *halcmd.RenderPipeline
	group   *halcmd.BindGroup
}

func newFrame() *frame {
	tex := func(samples uint32) *halcmd.Texture {
		return &halcmd.Texture{
			Raw:         native.Resource(record.NextHandle()),
			Format:      gputypes.TextureFormatBGRA8Unorm,
			Dimension:   gputypes.TextureDimension2D,
			Size:        gputypes.Extent3D{Width: 640, Height: 480, DepthOrArrayLayers: 1},
			MipLevels:   1,
			SampleCount: samples,
		}
	}
	layout := &halcmd.PipelineLayout{
		Signature:         native.RootSignature(record.NextHandle()),
		Groups:            []halcmd.BindGroupInfo{{Tables: halcmd.ViewsTable | halcmd.SamplersTable}},
		TotalRootElements: 2,
	}
	return &frame{
		staging: &halcmd.Buffer{Raw: native.Resource(record.NextHandle()), Size: 4096},
		vertex:  &halcmd.Buffer{Raw: native.Resource(record.NextHandle()), Address: 0x10000, Size: 4096},
		msaa:    &halcmd.TextureView{Texture: tex(4), RTV: native.CPUDescriptor(record.NextHandle())},
		target:  &halcmd.TextureView{Texture: tex(1), RTV: native.CPUDescriptor(record.NextHandle())},
		layout:  layout,
		pipe: &halcmd.RenderPipeline{
			Raw:           native.PipelineState(record.NextHandle()),
			Layout:        layout,
			Topology:      native.TopologyTriangleList,
			VertexStrides: []uint32{24},
		},
		group: &halcmd.BindGroup{Views: 0x1000, Samplers: 0x2000},
	}
}

func encodeFrame(enc *halcmd.Encoder, label string) (*halcmd.CommandBuffer, error) {
	f := newFrame()
	if err := enc.BeginEncoding(label); err != nil {
		return nil, err
	}

	enc.BeginDebugMarker("upload")
	enc.TransitionBuffers([]halcmd.BufferBarrier{
		{Buffer: f.staging, To: usage.BufferCopyDst},
		{Buffer: f.vertex, To: usage.BufferCopyDst},
	})
	enc.FillBuffer(f.staging, 0, f.staging.Size, 0)
	enc.TransitionBuffers([]halcmd.BufferBarrier{
		{Buffer: f.staging, From: usage.BufferCopyDst, To: usage.BufferCopySrc},
	})
	enc.CopyBufferToBuffer(f.staging, f.vertex, []halcmd.BufferCopy{{Size: f.staging.Size}})
	enc.TransitionBuffers([]halcmd.BufferBarrier{
		{Buffer: f.vertex, From: usage.BufferCopyDst, To: usage.BufferVertex},
	})
	enc.EndDebugMarker()

	enc.TransitionTextures([]halcmd.TextureBarrier{
		{Texture: f.msaa.Texture, To: usage.TextureColorTarget},
		{Texture: f.target.Texture, To: usage.TextureColorTarget},
	})
	enc.BeginRenderPass(&halcmd.RenderPassDescriptor{
		Label: "main",
		ColorAttachments: []halcmd.ColorAttachment{{
			View:          f.msaa,
			ResolveTarget: f.target,
			ClearValue:    gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		}},
	})
	enc.SetRenderPipeline(f.pipe)
	enc.SetBindGroup(f.layout, 0, f.group, nil, halcmd.InvalidateAll)
	enc.SetVertexBuffer(0, f.vertex, 0, 0)
	enc.SetViewport(0, 0, 640, 480, 0, 1)
	enc.SetScissorRect(0, 0, 640, 480)
	enc.Draw(3, 1, 0, 0)
	enc.EndRenderPass()

	return enc.EndEncoding()
}

func report(worker, index int, cb *halcmd.CommandBuffer) {
	l, ok := cb.List().(*record.List)
	if !ok {
		fmt.Printf("worker %d frame %d: recorded\n", worker, index)
		return
	}
	fmt.Printf("%s: %d calls, %d barrier batches\n", l.Name(), len(l.Calls()), len(l.BarrierBatches()))
	if _, err := l.Replay(record.States{}); err != nil {
		fmt.Printf("  replay: %v\n", err)
	}
}
