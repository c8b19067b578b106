package shading

import (
	"pbr-demo/math"
)

// PixelInput is the interpolated vertex data arriving at one pixel.
type PixelInput struct {
	WorldPos math.Vec3
	Normal   math.Vec3
	Tangent  math.Vec3
	UV       math.Vec2
}

// SurfaceSample is the per-pixel surface state derived from PixelInput, the
// frame uniforms, and the bound maps. All colors are linear.
type SurfaceSample struct {
	WorldPos  math.Vec3
	Normal    math.Vec3
	Tangent   math.Vec3
	Bitangent math.Vec3
	UV        math.Vec2
	Albedo    math.Vec3
	Alpha     float32
	Roughness float32
	Metallic  float32
	SpecColor math.Vec3
}

// roughnessFloor keeps the BRDF denominators away from their singularities.
const roughnessFloor = 0.05

// MakeSurface derives the shaded surface state for one pixel: scaled/offset
// UV, normal-mapped TBN normal, gamma-decoded albedo, the roughness/metallic
// two-state selectors, and the metal-weighted specular color.
func MakeSurface(in PixelInput, u *FrameUniforms, b *Bindings) SurfaceSample {
	s := SurfaceSample{
		WorldPos: in.WorldPos,
		UV:       in.UV.Mul(u.UVScale).Add(u.UVOffset),
	}

	n := in.Normal.Normalize()
	// Gram-Schmidt: re-orthogonalize the interpolated tangent against the normal.
	t := in.Tangent.Sub(n.Mul(n.Dot(in.Tangent))).Normalize()
	bi := n.Cross(t)

	if b.NormalMap != nil {
		sampled := b.Sampler.Sample(b.NormalMap, s.UV)
		// Unpack [0,1] -> [-1,1] and rotate into world space through the TBN frame.
		local := math.Vec3{X: sampled.X*2 - 1, Y: sampled.Y*2 - 1, Z: sampled.Z*2 - 1}.Normalize()
		n = t.Mul(local.X).Add(bi.Mul(local.Y)).Add(n.Mul(local.Z)).Normalize()
	}
	s.Normal = n
	s.Tangent = t
	s.Bitangent = bi

	// Albedo arrives gamma-encoded; shading happens in linear space.
	tint := math.Vec3{X: u.ColorTint.X, Y: u.ColorTint.Y, Z: u.ColorTint.Z}
	s.Alpha = u.ColorTint.W
	if b.Albedo != nil {
		texel := b.Sampler.Sample(b.Albedo, s.UV)
		s.Albedo = GammaDecode(texel.ToVec3()).MulVec(tint)
		s.Alpha *= texel.W
	} else {
		s.Albedo = tint
	}

	s.Roughness = u.Roughness
	if s.Roughness == FromTexture && b.RoughnessMap != nil {
		s.Roughness = b.Sampler.Sample(b.RoughnessMap, s.UV).X
	}
	s.Roughness = math.Max(s.Roughness, roughnessFloor)

	s.Metallic = u.Metallic
	if s.Metallic == FromTexture && b.MetallicMap != nil {
		s.Metallic = b.Sampler.Sample(b.MetallicMap, s.UV).X
	}
	s.Metallic = math.Saturate(s.Metallic)

	// Metals tint their specular reflection by the albedo; dielectrics use
	// the fixed normal-incidence constant.
	f0 := math.Vec3{X: F0Dielectric, Y: F0Dielectric, Z: F0Dielectric}
	s.SpecColor = f0.Lerp(s.Albedo, s.Metallic)

	return s
}
