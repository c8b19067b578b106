// Package materials defines PBR surface materials and binds them to the
// shading pass.
package materials

import (
	"pbr-demo/math"
	"pbr-demo/shading"
	"pbr-demo/textures"
)

// Material describes one PBR surface. Roughness and Metallic hold either a
// flat scalar or shading.FromTexture, which defers to the bound map.
type Material struct {
	Name      string
	ColorTint math.Vec4
	Roughness float32
	Metallic  float32
	UVScale   float32
	UVOffset  math.Vec2

	Albedo       *textures.Texture2D
	NormalMap    *textures.Texture2D
	RoughnessMap *textures.Texture2D
	MetallicMap  *textures.Texture2D

	Sampler textures.Sampler
}

// New returns a material with neutral defaults: white tint, mid roughness,
// dielectric, unit UV transform.
func New(name string) *Material {
	return &Material{
		Name:      name,
		ColorTint: math.Vec4{X: 1, Y: 1, Z: 1, W: 1},
		Roughness: 0.5,
		Metallic:  0,
		UVScale:   1,
		Sampler:   textures.NewSampler("anisotropic"),
	}
}

// Prepare writes the material's state into the frame snapshot and resource
// bindings for the next draw. Per-frame state (lights, camera, shadows) is
// left untouched.
func (m *Material) Prepare(u *shading.FrameUniforms, b *shading.Bindings) {
	u.ColorTint = m.ColorTint
	u.Roughness = m.Roughness
	u.Metallic = m.Metallic
	u.UVScale = m.UVScale
	u.UVOffset = m.UVOffset

	b.Albedo = m.Albedo
	b.NormalMap = m.NormalMap
	b.RoughnessMap = m.RoughnessMap
	b.MetallicMap = m.MetallicMap
	b.Sampler = m.Sampler
}

// UsesTextureRoughness reports whether roughness comes from the bound map.
func (m *Material) UsesTextureRoughness() bool {
	return m.Roughness == shading.FromTexture
}

// UsesTextureMetallic reports whether metallic comes from the bound map.
func (m *Material) UsesTextureMetallic() bool {
	return m.Metallic == shading.FromTexture
}
