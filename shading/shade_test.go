package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pbr-demo/math"
	"pbr-demo/textures"
)

func litPixel() (PixelInput, *FrameUniforms, *Bindings) {
	in := PixelInput{
		WorldPos: math.Vec3Zero,
		Normal:   math.Vec3Up,
		Tangent:  math.Vec3Right,
		UV:       math.Vec2{X: 0.5, Y: 0.5},
	}

	u := NewFrameUniforms()
	u.CameraPos = math.Vec3{Y: 5}
	u.Roughness = 0.8
	u.Metallic = 0
	u.LightCount = 1
	u.Lights[0] = NewDirectionalLight(math.Vec3Down, math.Vec3One, 1)

	b := &Bindings{
		Sampler:       textures.NewSampler("linear"),
		ShadowSampler: textures.NewCompareSampler("shadow"),
	}
	return in, u, b
}

func TestShadeRoughWhiteDielectric(t *testing.T) {
	in, u, b := litPixel()

	got := Shade(in, u, b)

	// Overhead white light on a rough white surface: a bright neutral gray.
	assert.Equal(t, got.X, got.Y)
	assert.Equal(t, got.Y, got.Z)
	assert.Greater(t, got.X, float32(0.5))
	assert.Less(t, got.X, float32(1.5))
	assert.Equal(t, float32(1), got.W)
}

func TestShadeUnlitWithoutLights(t *testing.T) {
	in, u, b := litPixel()
	u.LightCount = 0

	got := Shade(in, u, b)
	assert.Equal(t, float32(0), got.X)
	assert.Equal(t, float32(0), got.Y)
	assert.Equal(t, float32(0), got.Z)
}

func TestShadeBackfacingLightIsDark(t *testing.T) {
	in, u, b := litPixel()
	u.Lights[0] = NewDirectionalLight(math.Vec3Up, math.Vec3One, 1)

	got := Shade(in, u, b)
	assert.Less(t, got.X, float32(0.05))
}

func TestShadeMetallicHasNoDiffuse(t *testing.T) {
	in, u, b := litPixel()
	u.Metallic = 1
	u.ColorTint = math.Vec4{X: 1, Y: 0, Z: 0, W: 1}

	got := Shade(in, u, b)
	metalPeak := got.X

	u.Metallic = 0
	dielectric := Shade(in, u, b)

	// With the diffuse lobe gone, the red metal reflects far less toward an
	// overhead camera than the matching dielectric.
	assert.Less(t, metalPeak, dielectric.X)
}

func TestShadeShadowedDirectionalLight(t *testing.T) {
	in, u, b := litPixel()
	u.Lights[0].CastsShadows = true
	u.CascadeCount = 1
	u.CascadeDistances[0] = 100
	u.CascadeViewProj[0] = math.Mat4Identity()

	b.CascadeMaps[0] = textures.NewDepthMap(8)
	lit := Shade(in, u, b)

	for i := range b.CascadeMaps[0].Pix {
		b.CascadeMaps[0].Pix[i] = 0.1
	}
	shadowed := Shade(in, u, b)

	assert.Greater(t, lit.X, float32(0))
	assert.Equal(t, float32(0), shadowed.X)
}

func TestShadePointLightAttenuates(t *testing.T) {
	in, u, b := litPixel()
	u.Lights[0] = NewPointLight(math.Vec3{Y: 2}, math.Vec3One, 1, 10)

	near := Shade(in, u, b)

	u.Lights[0] = NewPointLight(math.Vec3{Y: 8}, math.Vec3One, 1, 10)
	far := Shade(in, u, b)

	assert.Greater(t, near.X, far.X)
}

func TestShadeEnvironmentAddsIndirect(t *testing.T) {
	in, u, b := litPixel()
	u.LightCount = 0

	sky := textures.NewSolidTexture("sky", 51, 102, 204, 255)
	var faces [textures.CubeFaceCount]*textures.Texture2D
	for i := range faces {
		faces[i] = sky
	}
	b.Environment = textures.NewCubeMap("sky", faces)
	u.SkyMipCount = int32(b.Environment.MipCount())
	u.IndirectIntensity = 1

	got := Shade(in, u, b)
	assert.Greater(t, got.Z, float32(0), "indirect sky light should reach an unlit surface")
	assert.Greater(t, got.Z, got.X, "blue sky tints the result blue")
}

func TestShadeMetallicGetsNoIndirectDiffuse(t *testing.T) {
	in, u, b := litPixel()
	u.LightCount = 0
	u.Metallic = 1
	u.ColorTint = math.Vec4{X: 0.5, Y: 0.5, Z: 0.5, W: 1}

	sky := textures.NewSolidTexture("sky", 0, 0, 204, 255)
	var faces [textures.CubeFaceCount]*textures.Texture2D
	for i := range faces {
		faces[i] = sky
	}
	b.Environment = textures.NewCubeMap("sky", faces)
	u.SkyMipCount = int32(b.Environment.MipCount())

	got := Shade(in, u, b)

	// A metal has no diffuse lobe, indirect included. The only environment
	// contribution is the Fresnel-weighted reflection: with the camera along
	// the normal, lerp(0, sky, f0) where f0 = albedo = 0.5.
	assert.InDelta(t, 0.5*204.0/255.0, got.Z, 1e-3)
	assert.InDelta(t, 0, got.X, 1e-6)
}

func TestShadeUVScaleSelectsTexel(t *testing.T) {
	in, u, b := litPixel()

	checker := textures.NewCheckerTexture("check", 8,
		[4]uint8{255, 255, 255, 255}, [4]uint8{0, 0, 0, 255})
	b.Albedo = checker

	in.UV = math.Vec2{X: 0.1, Y: 0.1}
	a := Shade(in, u, b)

	u.UVOffset = math.Vec2{X: 0.5}
	bShifted := Shade(in, u, b)

	assert.NotEqual(t, a.X, bShifted.X, "UV offset should land on the other checker cell")
}
