package glfwwgpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	ErrNoAdapter       = errors.New("glfwwgpu: no suitable GPU adapter")
	ErrNoSurfaceFormat = errors.New("glfwwgpu: surface reports no formats")
)

type gpuState struct {
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration
}

func createGpuState(win *glfw.Window, width, height int) (*gpuState, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	// wraps GLFW window into a wgpu surface.
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))
	// finds a suitable GPU (discrete GPU preferred)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		surface.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	// allocates the device and command queue
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Viewer Device",
	})
	if err != nil {
		adapter.Release()
		surface.Release()
		return nil, fmt.Errorf("failed to create GPU device: %w", err)
	}

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		device.Release()
		adapter.Release()
		surface.Release()
		return nil, ErrNoSurfaceFormat
	}
	alpha := wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}
	// defines how the swapchain behaves (size, format, vsync)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   alpha,
	}
	surface.Configure(adapter, device, &surfaceConfig)

	return &gpuState{
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         device.GetQueue(),
		surfaceConfig: &surfaceConfig,
	}, nil
}

// resize reconfigures the surface; a minimized window (zero size) keeps the old configuration.
func (g *gpuState) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.surfaceConfig.Width = uint32(width)
	g.surfaceConfig.Height = uint32(height)
	g.surface.Configure(g.adapter, g.device, g.surfaceConfig)
}

// present clears the next surface texture and shows it.
func (g *gpuState) present(clear wgpu.Color) error {
	nextTexture, err := g.surface.GetCurrentTexture()
	if err != nil {
		// typically an outdated surface after a resize that has not been delivered yet
		g.surface.Configure(g.adapter, g.device, g.surfaceConfig)
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	return releaseAfter(nextTexture, func() error {
		if err := g.clearPass(nextTexture, clear); err != nil {
			return err
		}
		g.surface.Present()
		return nil
	})
}

type releaser interface {
	Release()
}

// releaseAfter runs fn and releases r on every path out of it.
func releaseAfter(r releaser, fn func() error) error {
	defer r.Release()
	return fn()
}

func (g *gpuState) clearPass(target *wgpu.Texture, clear wgpu.Color) error {
	view, err := target.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := g.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})
	defer renderPass.Release()
	if err := renderPass.End(); err != nil {
		return err
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	g.queue.Submit(cmdBuffer)
	return nil
}

func (g *gpuState) release() {
	g.queue.Release()
	g.device.Release()
	g.adapter.Release()
	g.surface.Release()
}
