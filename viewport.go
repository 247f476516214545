package amino

// Viewport is the window size and aspect ratio the renderer projects with.
type Viewport struct {
	Width, Height int
	Aspect        float64
}

func NewViewport(width, height int) *Viewport {
	v := &Viewport{Aspect: 1}
	v.Resize(width, height)
	return v
}

// Resize records a new size. A non-positive height keeps the previous aspect ratio.
func (v *Viewport) Resize(width, height int) {
	v.Width = width
	v.Height = height
	if width > 0 && height > 0 {
		v.Aspect = float64(width) / float64(height)
	}
}
