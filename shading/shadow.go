package shading

import (
	"pbr-demo/math"
	"pbr-demo/textures"
)

// CascadeBorder is the UV margin at which cascade selection prefers the next
// (coarser but still covering) cascade, hiding seams at cascade edges.
const CascadeBorder = 0.01

// projectShadow transforms a world position into shadow-map space for the
// given light view-projection: manual perspective divide, clip-space XY
// remapped from [-1,1] to [0,1], Y flipped to texture convention, and depth
// remapped to [0,1].
func projectShadow(viewProj math.Mat4, worldPos math.Vec3) (uv math.Vec2, depth float32) {
	clip := viewProj.MulVec(worldPos.ToVec4(1))
	ndc := clip.ToVec3DivW()

	uv = math.Vec2{
		X: ndc.X*0.5 + 0.5,
		Y: 1 - (ndc.Y*0.5 + 0.5),
	}
	depth = ndc.Z*0.5 + 0.5
	return uv, depth
}

// nearBorder reports whether uv falls within CascadeBorder of any edge.
func nearBorder(uv math.Vec2) bool {
	return uv.X < CascadeBorder || uv.X > 1-CascadeBorder ||
		uv.Y < CascadeBorder || uv.Y > 1-CascadeBorder
}

// SelectCascade picks the shadow cascade for a pixel: first by camera
// distance against the cascade bands, then advancing one cascade if the
// projected UV sits on a band border and a further cascade exists.
func SelectCascade(u *FrameUniforms, worldPos math.Vec3) int {
	count := int(u.CascadeCount)
	if count <= 0 {
		return -1
	}

	dist := worldPos.Distance(u.CameraPos)
	cascade := count - 1
	for i := 0; i < count; i++ {
		if dist <= u.CascadeDistances[i] {
			cascade = i
			break
		}
	}

	if cascade+1 < count {
		uv, _ := projectShadow(u.CascadeViewProj[cascade], worldPos)
		if nearBorder(uv) {
			cascade++
		}
	}
	return cascade
}

// CascadeShadowFactor returns the directional shadow attenuation in [0,1]
// for a pixel, 1 meaning fully lit.
func CascadeShadowFactor(u *FrameUniforms, b *Bindings, worldPos math.Vec3) float32 {
	cascade := SelectCascade(u, worldPos)
	if cascade < 0 || b.CascadeMaps[cascade] == nil {
		return 1
	}

	uv, depth := projectShadow(u.CascadeViewProj[cascade], worldPos)
	if depth > 1 || uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
		return 1
	}
	return b.ShadowSampler.SampleCompare(b.CascadeMaps[cascade], uv, depth)
}

// CubeFace returns the index of the cube face whose axis is most aligned
// with dir: the face the light "sees" the pixel through.
func CubeFace(dir math.Vec3) int {
	best := 0
	bestDot := float32(-2)
	for face := 0; face < textures.CubeFaceCount; face++ {
		d := dir.Dot(textures.CubeFaceAxis(face))
		if d > bestDot {
			bestDot = d
			best = face
		}
	}
	return best
}

// ShadowSlots returns how many consecutive per-light shadow-map slots a
// shadow-casting light of the given type consumes.
func ShadowSlots(t LightType) int {
	switch t {
	case LightPoint:
		return 6
	case LightSpot:
		return 1
	}
	return 0
}

// PointShadowFactor samples the cube-face shadow map of a point light whose
// first slot is slot. The face is chosen by the direction from the light to
// the pixel.
func PointShadowFactor(u *FrameUniforms, b *Bindings, light Light, slot int, worldPos math.Vec3) float32 {
	face := CubeFace(worldPos.Sub(light.Position).Normalize())
	return perLightShadowFactor(u, b, slot+face, worldPos)
}

// SpotShadowFactor samples the single shadow map of a spot light at slot.
func SpotShadowFactor(u *FrameUniforms, b *Bindings, slot int, worldPos math.Vec3) float32 {
	return perLightShadowFactor(u, b, slot, worldPos)
}

func perLightShadowFactor(u *FrameUniforms, b *Bindings, index int, worldPos math.Vec3) float32 {
	if index < 0 || index >= int(u.ShadowMapCount) || index >= MaxShadowMaps {
		return 1
	}
	if b.ShadowMaps[index] == nil {
		return 1
	}

	uv, depth := projectShadow(u.ShadowViewProj[index], worldPos)
	if depth > 1 || uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
		return 1
	}
	return b.ShadowSampler.SampleCompare(b.ShadowMaps[index], uv, depth)
}
