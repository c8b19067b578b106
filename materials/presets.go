package materials

import (
	"pbr-demo/math"
	"pbr-demo/shading"
	"pbr-demo/textures"
)

// Preset constructors for the demo scene. Each returns a fresh material so
// the editor can tweak instances independently.

// PolishedMetal is a smooth gray metal.
func PolishedMetal() *Material {
	m := New("polished metal")
	m.ColorTint = math.Vec4{X: 0.9, Y: 0.9, Z: 0.9, W: 1}
	m.Roughness = 0.1
	m.Metallic = 1
	return m
}

// RoughPlastic is a matte colored dielectric.
func RoughPlastic(tint math.Vec4) *Material {
	m := New("rough plastic")
	m.ColorTint = tint
	m.Roughness = 0.85
	m.Metallic = 0
	return m
}

// Mirror is a near-perfect reflector, as smooth as the BRDF allows.
func Mirror() *Material {
	m := New("mirror")
	m.Roughness = 0
	m.Metallic = 1
	return m
}

// Textured builds a full four-map PBR material; roughness and metallic come
// from their maps rather than flat scalars.
func Textured(name string, albedo, normal, roughness, metallic *textures.Texture2D) *Material {
	m := New(name)
	m.Albedo = albedo
	m.NormalMap = normal
	m.RoughnessMap = roughness
	m.MetallicMap = metallic
	m.Roughness = shading.FromTexture
	m.Metallic = shading.FromTexture
	return m
}

// CheckerFloor is the default ground material: a tiled checker albedo.
func CheckerFloor() *Material {
	m := New("checker floor")
	m.Albedo = textures.NewCheckerTexture("floor checker", 256,
		[4]uint8{200, 200, 200, 255}, [4]uint8{60, 60, 60, 255})
	m.Roughness = 0.7
	m.UVScale = 8
	return m
}
