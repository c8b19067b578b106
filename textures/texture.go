package textures

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"pbr-demo/math"
)

// mipLevel is one level of a texture's mip chain, RGBA8 row-major.
type mipLevel struct {
	Width  int
	Height int
	Pix    []uint8
}

// Texture2D holds CPU-side pixel data with a full mip chain down to 1x1.
// Level 0 is the base image; each following level halves both dimensions.
type Texture2D struct {
	Name   string
	levels []mipLevel
}

// NewTexture2D builds a texture from RGBA8 pixels and generates its mip chain.
func NewTexture2D(name string, width, height int, pixels []uint8) *Texture2D {
	t := &Texture2D{Name: name}
	t.levels = append(t.levels, mipLevel{Width: width, Height: height, Pix: pixels})
	t.generateMips()
	return t
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0-255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture2D {
	return NewTexture2D(name, 1, 1, []uint8{r, g, b, a})
}

// NewCheckerTexture creates a checkerboard pattern texture of size x size texels.
func NewCheckerTexture(name string, size int, c1, c2 [4]uint8) *Texture2D {
	pixels := make([]uint8, size*size*4)
	blockSize := size / 8
	if blockSize < 1 {
		blockSize = 1
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			idx := (y*size + x) * 4
			c := c1
			if ((x/blockSize)+(y/blockSize))%2 == 1 {
				c = c2
			}
			copy(pixels[idx:idx+4], c[:])
		}
	}

	return NewTexture2D(name, size, size, pixels)
}

// Width returns the base level width.
func (t *Texture2D) Width() int { return t.levels[0].Width }

// Height returns the base level height.
func (t *Texture2D) Height() int { return t.levels[0].Height }

// MipCount returns the number of levels in the mip chain.
func (t *Texture2D) MipCount() int { return len(t.levels) }

// generateMips builds the chain by repeated half-size bilinear downscaling.
func (t *Texture2D) generateMips() {
	base := t.levels[0]
	w, h := base.Width, base.Height
	src := &image.NRGBA{Pix: base.Pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}

	for w > 1 || h > 1 {
		w = maxInt(w/2, 1)
		h = maxInt(h/2, 1)
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
		t.levels = append(t.levels, mipLevel{Width: w, Height: h, Pix: dst.Pix})
		src = dst
	}
}

// texel fetches one texel of one level as normalized [0,1] channels.
func (l *mipLevel) texel(x, y int) math.Vec4 {
	i := (y*l.Width + x) * 4
	const inv = 1.0 / 255.0
	return math.Vec4{
		X: float32(l.Pix[i]) * inv,
		Y: float32(l.Pix[i+1]) * inv,
		Z: float32(l.Pix[i+2]) * inv,
		W: float32(l.Pix[i+3]) * inv,
	}
}

// bilinear samples one mip level with bilinear filtering and UV wrapping.
func (l *mipLevel) bilinear(u, v float32) math.Vec4 {
	u = wrap(u)
	v = wrap(v)

	fx := u * float32(l.Width-1)
	fy := v * float32(l.Height-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % l.Width
	y1 := (y0 + 1) % l.Height
	dx := fx - float32(x0)
	dy := fy - float32(y0)

	top := l.texel(x0, y0).Lerp(l.texel(x1, y0), dx)
	bottom := l.texel(x0, y1).Lerp(l.texel(x1, y1), dx)
	return top.Lerp(bottom, dy)
}

// wrap maps u into [0,1) with repeat addressing.
func wrap(u float32) float32 {
	u = u - float32(int(u))
	if u < 0 {
		u += 1.0
	}
	return u
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
