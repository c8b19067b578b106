package shading

import (
	"pbr-demo/math"
)

// Shade is the full per-pixel pipeline: surface setup, direct lighting
// accumulated over the active lights with per-light shadowing, then the
// image-based indirect and reflection composite. Returns display-gamma RGBA.
func Shade(in PixelInput, u *FrameUniforms, b *Bindings) math.Vec4 {
	s := MakeSurface(in, u, b)
	view := u.CameraPos.Sub(s.WorldPos).Normalize()

	total := math.Vec3Zero
	slot := 0
	for i := 0; i < int(u.LightCount) && i < MaxLights; i++ {
		light := u.Lights[i]
		c := ColorFromLight(light, s.Normal, s.WorldPos, view, s.Albedo, s.SpecColor, s.Roughness, s.Metallic)

		// Shadow slots advance in lock-step with the host's shadow passes:
		// only casters consume slots, six per point light, one per spot.
		if light.CastsShadows {
			switch light.Type {
			case LightDirectional:
				c = c.Mul(CascadeShadowFactor(u, b, s.WorldPos))
			case LightPoint:
				c = c.Mul(PointShadowFactor(u, b, light, slot, s.WorldPos))
			case LightSpot:
				c = c.Mul(SpotShadowFactor(u, b, slot, s.WorldPos))
			}
			slot += ShadowSlots(light.Type)
		}
		total = total.Add(c)
	}

	final := GammaEncode(total)

	if b.Environment != nil && u.SkyMipCount > 0 {
		coarsest := float32(u.SkyMipCount - 1)

		// Rougher surfaces reflect blurrier sky; the exponent biases toward
		// sharp reflections for most of the roughness range.
		reflDir := view.Negate().Reflect(s.Normal)
		reflMip := math.Pow(s.Roughness, 0.3) * coarsest
		reflection := b.Environment.SampleLevel(b.Sampler, reflDir, reflMip).ToVec3()

		// Indirect diffuse obeys the same energy conservation as direct light:
		// scaled down by the specular reflectance and zeroed for metals.
		indirect := b.Environment.SampleLevel(b.Sampler, s.Normal, coarsest).ToVec3()
		conserved := EnergyConservingDiffuse(indirect, s.SpecColor, s.Metallic)
		final = final.Add(conserved.Mul(u.IndirectIntensity).MulVec(s.Albedo))

		fresnel := FresnelSchlick(view, s.Normal, s.SpecColor)
		final = final.LerpVec(reflection, fresnel.Saturate())
	}

	return math.Vec4{X: final.X, Y: final.Y, Z: final.Z, W: s.Alpha}
}
