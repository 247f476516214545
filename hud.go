package amino

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// HUD rasterises a few lines of text into an overlay image for the renderer to composite.
type HUD struct {
	Face       font.Face
	Foreground color.Color
	Background color.Color
	Padding    int
}

func NewHUD() *HUD {
	return &HUD{
		Face:       basicfont.Face7x13,
		Foreground: color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
		Background: color.RGBA{A: 0x90},
		Padding:    4,
	}
}

// Draw returns an image just large enough for lines, or nil when there is nothing to show.
func (h *HUD) Draw(lines []string) *image.RGBA {
	if len(lines) == 0 {
		return nil
	}
	metrics := h.Face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	width := 0
	for _, l := range lines {
		if w := font.MeasureString(h.Face, l).Ceil(); w > width {
			width = w
		}
	}
	bounds := image.Rect(0, 0, width+2*h.Padding, lineHeight*len(lines)+2*h.Padding)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(h.Background), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(h.Foreground),
		Face: h.Face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(h.Padding, h.Padding+ascent+i*lineHeight)
		d.DrawString(l)
	}
	return img
}

// cameraReadout lists what the HUD shows about the current view.
func cameraReadout(view *RenderView, loop *LoopControl) []string {
	q, t := view.Pose.R, view.Pose.T
	return []string{
		fmt.Sprintf("pos  % .3f % .3f % .3f", t[0], t[1], t[2]),
		fmt.Sprintf("quat % .3f % .3f % .3f % .3f", q.V[0], q.V[1], q.V[2], q.W),
		fmt.Sprintf("view %dx%d  aspect %.3f", view.Width, view.Height, view.Aspect),
		fmt.Sprintf("frames %d  idle %d", loop.Frames, loop.IdleTicks),
	}
}

// HUDModule adds the camera readout overlay. It must be installed after RenderModule so the
// overlay is drawn from the view published in the same tick.
type HUDModule struct {
	Enabled bool
}

func (m HUDModule) Install(app *App, cmd *Commands) {
	if !m.Enabled {
		return
	}
	cmd.AddResources(NewHUD())
	app.UseSystem(
		System(hudSystem).
			InStage(PreRender).
			RunAlways(),
	)
}

func hudSystem(h *HUD, view *RenderView, loop *LoopControl) {
	if !loop.NeedsRedraw {
		return
	}
	view.Overlay = h.Draw(cameraReadout(view, loop))
}
