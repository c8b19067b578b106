package textures

import (
	"pbr-demo/math"
)

// DepthMap is a square single-channel depth texture written by the shadow
// passes. Depth values are in [0,1]; 1 means "nothing rendered here".
type DepthMap struct {
	Size int
	Pix  []float32
}

// NewDepthMap allocates a size x size depth map cleared to far depth.
func NewDepthMap(size int) *DepthMap {
	dm := &DepthMap{Size: size, Pix: make([]float32, size*size)}
	dm.Clear()
	return dm
}

// Clear resets every texel to far depth (1.0).
func (dm *DepthMap) Clear() {
	for i := range dm.Pix {
		dm.Pix[i] = 1.0
	}
}

// At returns the stored depth at texel (x, y), clamping out-of-range
// coordinates to the border value 1.0 (fragments outside the map are lit).
func (dm *DepthMap) At(x, y int) float32 {
	if x < 0 || x >= dm.Size || y < 0 || y >= dm.Size {
		return 1.0
	}
	return dm.Pix[y*dm.Size+x]
}

// Set writes depth at texel (x, y). Out-of-range writes are dropped.
func (dm *DepthMap) Set(x, y int, depth float32) {
	if x < 0 || x >= dm.Size || y < 0 || y >= dm.Size {
		return
	}
	dm.Pix[y*dm.Size+x] = depth
}

// CompareSampler performs depth comparisons with percentage-closer filtering,
// mirroring a hardware comparison sampler: the result is a filtered shadow
// factor in [0,1], not a binary visibility bit.
type CompareSampler struct {
	Name string
	Bias float32
}

// NewCompareSampler returns the standard shadow comparison sampler.
func NewCompareSampler(name string) CompareSampler {
	return CompareSampler{Name: name, Bias: 0.002}
}

// SampleCompare compares refDepth against the 3x3 texel neighborhood around
// uv and averages the pass/fail results. A tap passes (is lit) when
// refDepth - bias <= stored depth.
func (cs CompareSampler) SampleCompare(dm *DepthMap, uv math.Vec2, refDepth float32) float32 {
	cx := int(uv.X * float32(dm.Size-1))
	cy := int(uv.Y * float32(dm.Size-1))
	ref := refDepth - cs.Bias

	lit := float32(0)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if ref <= dm.At(cx+dx, cy+dy) {
				lit += 1.0
			}
		}
	}
	return lit / 9.0
}
