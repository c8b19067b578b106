package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pbr-demo/math"
	"pbr-demo/textures"
)

func TestSelectCascadeByDistance(t *testing.T) {
	u := NewFrameUniforms()
	u.CascadeCount = 3
	u.CascadeDistances = [MaxCascades]float32{10, 25, 60, 0}
	for i := range u.CascadeViewProj {
		u.CascadeViewProj[i] = math.Mat4Identity()
	}

	cases := []struct {
		dist     float32
		expected int
	}{
		{1, 0},
		{15, 1},
		{40, 2},
		{500, 2}, // past the last band clamps to the last cascade
	}
	for _, tc := range cases {
		got := SelectCascade(u, math.Vec3{Z: tc.dist})
		assert.Equal(t, tc.expected, got, "distance %v", tc.dist)
	}
}

func TestSelectCascadeAdvancesAtBorder(t *testing.T) {
	u := NewFrameUniforms()
	u.CascadeCount = 2
	u.CascadeDistances = [MaxCascades]float32{10, 25, 0, 0}
	for i := range u.CascadeViewProj {
		u.CascadeViewProj[i] = math.Mat4Identity()
	}

	// With an identity projection, ndc.X = -0.99 lands at uv.X = 0.005,
	// inside the 1% border of cascade 0; selection must move to cascade 1.
	borderPos := math.Vec3{X: -0.99}
	uv, _ := projectShadow(u.CascadeViewProj[0], borderPos)
	assert.InDelta(t, 0.005, uv.X, 1e-6)
	assert.InDelta(t, 0.5, uv.Y, 1e-6)

	assert.Equal(t, 1, SelectCascade(u, borderPos))

	// A centered position stays in its distance-selected cascade.
	assert.Equal(t, 0, SelectCascade(u, math.Vec3{Z: 0.5}))

	// The last cascade never advances, border or not.
	u.CascadeCount = 1
	assert.Equal(t, 0, SelectCascade(u, borderPos))
}

func TestProjectShadowFlipsY(t *testing.T) {
	// ndc.Y = +0.5 is above center, which in texture space is below v = 0.5.
	uv, depth := projectShadow(math.Mat4Identity(), math.Vec3{Y: 0.5, Z: 0.2})
	assert.InDelta(t, 0.25, uv.Y, 1e-6)
	assert.InDelta(t, 0.6, depth, 1e-6)
}

func TestCubeFaceSelection(t *testing.T) {
	cases := []struct {
		dir      math.Vec3
		expected int
	}{
		{math.Vec3Up, textures.CubeFacePosY},
		{math.Vec3Down, textures.CubeFaceNegY},
		{math.Vec3Right, textures.CubeFacePosX},
		{math.Vec3Left, textures.CubeFaceNegX},
		{math.Vec3{X: 0.1, Y: 0.9, Z: 0.1}.Normalize(), textures.CubeFacePosY},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, CubeFace(tc.dir), "dir %+v", tc.dir)
	}
}

func TestShadowSlots(t *testing.T) {
	assert.Equal(t, 0, ShadowSlots(LightDirectional))
	assert.Equal(t, 6, ShadowSlots(LightPoint))
	assert.Equal(t, 1, ShadowSlots(LightSpot))
}

func TestCascadeShadowFactorLitAndOccluded(t *testing.T) {
	u := NewFrameUniforms()
	u.CascadeCount = 1
	u.CascadeDistances[0] = 100
	u.CascadeViewProj[0] = math.Mat4Identity()

	b := &Bindings{ShadowSampler: textures.NewCompareSampler("shadow")}
	b.CascadeMaps[0] = textures.NewDepthMap(8)

	// Freshly cleared map stores far depth everywhere: fully lit.
	center := math.Vec3{Z: 0} // projects to depth 0.5
	assert.Equal(t, float32(1), CascadeShadowFactor(u, b, center))

	// An occluder closer to the light than the receiver shadows all taps.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			b.CascadeMaps[0].Set(x, y, 0.1)
		}
	}
	assert.Equal(t, float32(0), CascadeShadowFactor(u, b, center))
}

func TestCascadeShadowFactorOutsideMapIsLit(t *testing.T) {
	u := NewFrameUniforms()
	u.CascadeCount = 1
	u.CascadeDistances[0] = 100
	u.CascadeViewProj[0] = math.Mat4Identity()

	b := &Bindings{ShadowSampler: textures.NewCompareSampler("shadow")}
	b.CascadeMaps[0] = textures.NewDepthMap(8)
	for i := range b.CascadeMaps[0].Pix {
		b.CascadeMaps[0].Pix[i] = 0
	}

	// Beyond the far plane the comparison is skipped entirely.
	assert.Equal(t, float32(1), CascadeShadowFactor(u, b, math.Vec3{Z: 1.5}))
}

func TestPointShadowFactorUsesFaceSlot(t *testing.T) {
	u := NewFrameUniforms()
	u.ShadowMapCount = 6
	for i := range u.ShadowViewProj {
		u.ShadowViewProj[i] = math.Mat4Identity()
	}

	b := &Bindings{ShadowSampler: textures.NewCompareSampler("shadow")}
	for i := 0; i < 6; i++ {
		// Large enough that the 3x3 PCF kernel at uv (0.5, 0.25) stays inside
		// the map; border taps would count as lit.
		b.ShadowMaps[i] = textures.NewDepthMap(8)
	}

	light := NewPointLight(math.Vec3Zero, math.Vec3One, 1, 50)

	// Receiver straight above the light samples the +Y face map.
	receiver := math.Vec3{Y: 0.5}
	occluded := b.ShadowMaps[textures.CubeFacePosY]
	for i := range occluded.Pix {
		occluded.Pix[i] = 0
	}
	assert.Equal(t, float32(0), PointShadowFactor(u, b, light, 0, receiver))

	// The -Y face map is untouched, so a receiver below stays lit.
	assert.Equal(t, float32(1), PointShadowFactor(u, b, light, 0, math.Vec3{Y: -0.5}))
}

func TestSpotShadowFactorMissingSlotIsLit(t *testing.T) {
	u := NewFrameUniforms()
	u.ShadowMapCount = 0
	b := &Bindings{ShadowSampler: textures.NewCompareSampler("shadow")}

	assert.Equal(t, float32(1), SpotShadowFactor(u, b, 0, math.Vec3Zero))
}
