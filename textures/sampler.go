package textures

import (
	"pbr-demo/math"
)

// Sampler controls filtering for color/normal/PBR map lookups.
// Filtering is always bilinear within a level; trilinear blending between
// levels happens in SampleLevel when a fractional level is requested.
type Sampler struct {
	Name string
}

// NewSampler returns the standard trilinear sampler.
func NewSampler(name string) Sampler {
	return Sampler{Name: name}
}

// Sample reads the base level with bilinear filtering.
func (s Sampler) Sample(t *Texture2D, uv math.Vec2) math.Vec4 {
	return t.levels[0].bilinear(uv.X, uv.Y)
}

// SampleLevel reads the texture at a fractional mip level, blending the two
// nearest levels. Levels outside the chain are clamped.
func (s Sampler) SampleLevel(t *Texture2D, uv math.Vec2, level float32) math.Vec4 {
	maxLevel := float32(len(t.levels) - 1)
	level = math.Clamp(level, 0, maxLevel)

	lo := int(level)
	hi := lo + 1
	if hi > len(t.levels)-1 {
		hi = len(t.levels) - 1
	}
	frac := level - float32(lo)

	c0 := t.levels[lo].bilinear(uv.X, uv.Y)
	if frac == 0 || lo == hi {
		return c0
	}
	c1 := t.levels[hi].bilinear(uv.X, uv.Y)
	return c0.Lerp(c1, frac)
}
