package shading

import (
	"github.com/chewxy/math32"

	"pbr-demo/math"
)

const (
	// MinRoughness floors the squared GGX roughness so the distribution stays
	// finite when roughness -> 0 and the half vector aligns with the normal.
	MinRoughness = 1e-7

	// F0Dielectric is the normal-incidence reflectance of non-metals.
	F0Dielectric = 0.04

	// Gamma is the display gamma used for encode/decode.
	Gamma = 2.2

	pi = math32.Pi
)

// GammaEncode converts a linear color to display gamma (c^(1/2.2)).
func GammaEncode(c math.Vec3) math.Vec3 {
	return c.Pow(1.0 / Gamma)
}

// GammaDecode converts a gamma-encoded color to linear (c^2.2).
func GammaDecode(c math.Vec3) math.Vec3 {
	return c.Pow(Gamma)
}

// Diffuse is the Lambertian term: clamp(dot(n, l), 0, 1).
// l is the unit vector toward the light.
func Diffuse(normal, lightDir math.Vec3) float32 {
	return math.Saturate(normal.Dot(lightDir))
}

// SpecularDistribution is the GGX/Trowbridge-Reitz normal distribution.
// a = roughness^2; a^2 is floored by MinRoughness.
func SpecularDistribution(n, h math.Vec3, roughness float32) float32 {
	ndh := math.Saturate(n.Dot(h))
	ndh2 := ndh * ndh
	a := roughness * roughness
	a2 := math.Max(a*a, MinRoughness)

	d := ndh2*(a2-1) + 1
	return a2 / (pi * d * d)
}

// FresnelSchlick approximates the fraction of light reflected at the angle
// between v and h: f0 + (1-f0)(1 - dot(v,h))^5.
func FresnelSchlick(v, h, f0 math.Vec3) math.Vec3 {
	vdh := math.Saturate(v.Dot(h))
	f := math32.Pow(1-vdh, 5)
	return f0.Add(math.Vec3One.Sub(f0).Mul(f))
}

// GeometricShadowing is the Schlick-GGX approximation of microfacet
// self-occlusion along one direction, with k = roughness^2 / 2. The combined
// Smith term is this evaluated for both the view and light vectors.
func GeometricShadowing(n, v math.Vec3, roughness float32) float32 {
	k := roughness * roughness / 2
	ndv := math.Saturate(n.Dot(v))
	return ndv / (ndv*(1-k) + k)
}

// MicrofacetBRDF evaluates the Cook-Torrance specular lobe D*F*G over
// 4*max(dot(n,v), dot(n,l)). The denominator uses max rather than the product
// because two of its dot factors cancel analytically against G.
func MicrofacetBRDF(n, l, v math.Vec3, roughness float32, specColor math.Vec3) math.Vec3 {
	h := v.Add(l).Normalize()

	d := SpecularDistribution(n, h, roughness)
	f := FresnelSchlick(v, h, specColor)
	g := GeometricShadowing(n, v, roughness) * GeometricShadowing(n, l, roughness)

	denom := math.Max(4*math.Max(n.Dot(v), n.Dot(l)), 1e-4)
	return f.Mul(d * g / denom)
}

// EnergyConservingDiffuse scales the diffuse term down by the energy already
// reflected as specular, and zeroes it entirely for metals.
func EnergyConservingDiffuse(diffuse, specular math.Vec3, metallic float32) math.Vec3 {
	return diffuse.MulVec(math.Vec3One.Sub(specular.Saturate())).Mul(1 - metallic)
}

// ColorFromLight computes one light's radiance contribution to a surface
// point, dispatching on the light type tag. Spot lights are an explicit
// unimplemented variant and contribute nothing.
func ColorFromLight(light Light, n, worldPos, view math.Vec3, albedo, specColor math.Vec3, roughness, metallic float32) math.Vec3 {
	switch light.Type {
	case LightDirectional:
		return directionalLight(light, n, view, albedo, specColor, roughness, metallic)
	case LightPoint:
		return pointLight(light, n, worldPos, view, albedo, specColor, roughness, metallic)
	case LightSpot:
		// TODO: spot cone falloff shading; the accumulation loop already
		// dispatches here and reserves the shadow slot.
		return math.Vec3Zero
	}
	return math.Vec3Zero
}

func directionalLight(light Light, n, view math.Vec3, albedo, specColor math.Vec3, roughness, metallic float32) math.Vec3 {
	toLight := light.Direction.Negate().Normalize()

	diff := Diffuse(n, toLight)
	spec := MicrofacetBRDF(n, toLight, view, roughness, specColor)
	balancedDiff := EnergyConservingDiffuse(math.Vec3One.Mul(diff), spec, metallic)

	return balancedDiff.MulVec(albedo).Add(spec).Mul(light.Intensity).MulVec(light.Color)
}

func pointLight(light Light, n, worldPos, view math.Vec3, albedo, specColor math.Vec3, roughness, metallic float32) math.Vec3 {
	toLight := light.Position.Sub(worldPos).Normalize()

	diff := Diffuse(n, toLight)
	spec := MicrofacetBRDF(n, toLight, view, roughness, specColor)
	balancedDiff := EnergyConservingDiffuse(math.Vec3One.Mul(diff), spec, metallic)

	atten := Attenuate(light, worldPos)
	return balancedDiff.MulVec(albedo).Add(spec).Mul(light.Intensity * atten).MulVec(light.Color)
}
