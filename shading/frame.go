package shading

import (
	"pbr-demo/math"
	"pbr-demo/textures"
)

// Hard engine caps on the bounded per-frame arrays. Entries past the active
// counts are never read.
const (
	// MaxLights is the most lights one frame can shade.
	MaxLights = 8
	// MaxCascades is the most directional shadow cascades.
	MaxCascades = 4
	// MaxShadowMaps is the most per-light world-space shadow maps. A point
	// light takes 6 consecutive slots (one per cube face), a spot light 1.
	MaxShadowMaps = 16
)

// FromTexture is the in-band sentinel for FrameUniforms.Roughness and
// FrameUniforms.Metallic: a negative value means "sample the bound map
// instead of using this flat scalar". Valid roughness/metallic never go
// below zero, so -1 is unambiguous.
const FromTexture = -1

// FrameUniforms is the complete per-frame shading input. The host fills one
// snapshot before the shading pass and passes it by pointer to every pixel
// invocation; it must not be mutated while the pass runs.
type FrameUniforms struct {
	ColorTint math.Vec4
	Roughness float32 // flat roughness, or FromTexture
	CameraPos math.Vec3
	Lights    [MaxLights]Light
	UVScale   float32
	Metallic  float32 // flat metallic, or FromTexture
	UVOffset  math.Vec2

	SkyMipCount       int32
	LightCount        int32
	CascadeCount      int32
	ShadowMapCount    int32
	IndirectIntensity float32

	// Shadow projection state, written by the shadow passes.
	CascadeViewProj  [MaxCascades]math.Mat4
	CascadeDistances [MaxCascades]float32 // far edge of each cascade band, near to far
	ShadowViewProj   [MaxShadowMaps]math.Mat4
}

// NewFrameUniforms returns a snapshot with neutral material defaults.
func NewFrameUniforms() *FrameUniforms {
	return &FrameUniforms{
		ColorTint:         math.Vec4{X: 1, Y: 1, Z: 1, W: 1},
		Roughness:         0.5,
		UVScale:           1,
		UVOffset:          math.Vec2{},
		IndirectIntensity: 1,
	}
}

// Bindings are the texture and sampler resources visible to the shading
// pass. Like FrameUniforms they are immutable for the duration of a pass.
type Bindings struct {
	Albedo       *textures.Texture2D
	NormalMap    *textures.Texture2D
	RoughnessMap *textures.Texture2D
	MetallicMap  *textures.Texture2D

	CascadeMaps [MaxCascades]*textures.DepthMap
	ShadowMaps  [MaxShadowMaps]*textures.DepthMap
	Environment *textures.CubeMap

	Sampler       textures.Sampler
	ShadowSampler textures.CompareSampler
}
