package raster

import (
	"image"
	"image/color"

	"pbr-demo/math"
)

// Framebuffer is the software render target: gamma-encoded color plus an NDC
// depth buffer in [0,1], stored as flat slices for cache locality.
type Framebuffer struct {
	Width  int
	Height int
	Color  []math.Vec4 // RGBA, len = W*H
	Depth  []float32   // per-pixel depth, len = W*H, cleared to 1 (far)
}

// NewFramebuffer allocates a cleared framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Color:  make([]math.Vec4, width*height),
		Depth:  make([]float32, width*height),
	}
	fb.Clear(math.Vec4{W: 1})
	return fb
}

// Clear fills the color buffer and resets depth to far.
func (fb *Framebuffer) Clear(c math.Vec4) {
	for i := range fb.Color {
		fb.Color[i] = c
		fb.Depth[i] = 1
	}
}

// At returns the color at pixel (x, y).
func (fb *Framebuffer) At(x, y int) math.Vec4 {
	return fb.Color[y*fb.Width+x]
}

// ToImage converts the framebuffer into an 8-bit RGBA image.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.Color[y*fb.Width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(c.X),
				G: toByte(c.Y),
				B: toByte(c.Z),
				A: toByte(c.W),
			})
		}
	}
	return img
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
