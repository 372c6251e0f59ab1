package render

import (
	"io"

	"github.com/gogpu/gg"

	"github.com/litescript/ls-starfield/internal/starfield"
)

// Image draws stars as anti-aliased discs into an offscreen gg context and
// implements starfield.DrawTarget.
type Image struct {
	dc         *gg.Context
	vertices   []starfield.GpuVertex
	background gg.RGBA
	radius     float64
	stars      int
}

// NewImage creates a width x height pixel image target.
func NewImage(width, height int) *Image {
	return &Image{
		dc:         gg.NewContext(width, height),
		background: gg.RGB(0.01, 0.01, 0.04),
		radius:     1.5,
	}
}

// SetRadius sets the disc radius of the brightest stars in pixels.
func (im *Image) SetRadius(r float64) {
	im.radius = r
}

// Aspect returns width over height.
func (im *Image) Aspect() float32 {
	return float32(im.dc.Width()) / float32(im.dc.Height())
}

// Upload copies the vertex buffer.
func (im *Image) Upload(vertices []starfield.GpuVertex) error {
	im.vertices = append(im.vertices[:0], vertices...)
	return nil
}

// Draw clears the image and paints every star of every range in b.
func (im *Image) Draw(b starfield.Batch) error {
	im.dc.ClearWithColor(im.background)
	im.stars = 0

	p := NewProjector(im.dc.Width(), im.dc.Height(), b)
	var fillErr error
	err := visit(im.vertices, b, p, func(v starfield.GpuVertex, x, y float64) {
		if fillErr != nil {
			return
		}
		r, g, bl, _ := starfield.UnpackColor(v.Color)
		im.dc.SetRGBA(float64(r)/255, float64(g)/255, float64(bl)/255, float64(b.Alpha))
		im.dc.DrawPoint(x, y, im.radius*(0.4+0.6*level(v.Color, 1)))
		fillErr = im.dc.Fill()
		im.stars++
	})
	if err != nil {
		return err
	}
	return fillErr
}

// Stars returns how many stars the last Draw painted.
func (im *Image) Stars() int { return im.stars }

// EncodePNG writes the current image as PNG.
func (im *Image) EncodePNG(w io.Writer) error {
	return im.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (im *Image) Close() error {
	return im.dc.Close()
}
