package raster

import (
	"github.com/chewxy/math32"

	"pbr-demo/math"
	"pbr-demo/scene"
	"pbr-demo/shading"
	"pbr-demo/textures"
)

// cascadeSplits are the far edges of the directional shadow bands, in world
// units from the camera.
var cascadeSplits = [shading.MaxCascades]float32{10, 25, 60, 140}

const shadowNear = 0.1

// renderShadows runs the depth-only passes for every shadow-casting light
// and records the projection matrices and band distances in the frame
// snapshot. Per-light slots are assigned by walking the caster list in
// order, matching the slot walk the shading pass performs.
func (r *Renderer) renderShadows(s *scene.Scene, u *shading.FrameUniforms, b *shading.Bindings) {
	u.CascadeCount = 0
	u.ShadowMapCount = 0

	slot := 0
	for _, light := range s.ShadowCasters() {
		switch light.Type {
		case shading.LightDirectional:
			r.renderCascades(s, *light, u, b)

		case shading.LightPoint:
			for face := 0; face < textures.CubeFaceCount; face++ {
				if slot >= shading.MaxShadowMaps {
					break
				}
				vp := pointFaceViewProj(*light, face)
				r.renderLightDepth(s, vp, u, b, slot)
				slot++
			}

		case shading.LightSpot:
			if slot < shading.MaxShadowMaps {
				vp := spotViewProj(*light)
				r.renderLightDepth(s, vp, u, b, slot)
				slot++
			}
		}
	}
	u.ShadowMapCount = int32(slot)
}

// renderCascades renders the directional cascades front to back. Each band
// is an orthographic box centered ahead of the camera along its forward
// axis, sized to cover the band.
func (r *Renderer) renderCascades(s *scene.Scene, light shading.Light, u *shading.FrameUniforms, b *shading.Bindings) {
	cam := s.Camera
	if cam == nil {
		return
	}
	forward := cam.GetForward()

	for i := 0; i < shading.MaxCascades; i++ {
		far := cascadeSplits[i]
		extent := far
		center := cam.Position.Add(forward.Mul(far * 0.5))

		backoff := extent * 2
		eye := center.Sub(light.Direction.Mul(backoff))
		up := math.Vec3Up
		if math.Abs(light.Direction.Y) > 0.99 {
			up = math.Vec3Front
		}

		view := math.Mat4LookAt(eye, center, up)
		proj := math.Mat4Orthographic(-extent, extent, -extent, extent, shadowNear, backoff+extent)
		vp := view.Mul(proj)

		if r.cascadeMaps[i] == nil {
			r.cascadeMaps[i] = textures.NewDepthMap(r.ShadowResolution)
		}
		r.renderDepthPass(s, vp, r.cascadeMaps[i])

		u.CascadeViewProj[i] = vp
		u.CascadeDistances[i] = far
		b.CascadeMaps[i] = r.cascadeMaps[i]
	}
	u.CascadeCount = shading.MaxCascades
}

func (r *Renderer) renderLightDepth(s *scene.Scene, vp math.Mat4, u *shading.FrameUniforms, b *shading.Bindings, slot int) {
	if r.shadowMaps[slot] == nil {
		r.shadowMaps[slot] = textures.NewDepthMap(r.ShadowResolution)
	}
	r.renderDepthPass(s, vp, r.shadowMaps[slot])
	u.ShadowViewProj[slot] = vp
	b.ShadowMaps[slot] = r.shadowMaps[slot]
}

// renderDepthPass rasterizes every visible mesh into the depth map through
// the given light view-projection.
func (r *Renderer) renderDepthPass(s *scene.Scene, viewProj math.Mat4, dm *textures.DepthMap) {
	dm.Clear()

	for _, node := range s.GetVisibleNodes() {
		world := node.GetWorldMatrix()
		mesh := node.Mesh

		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			v0, ok0 := ProjectVertex(mesh.Vertices[mesh.Indices[i]], world, viewProj, dm.Size, dm.Size)
			v1, ok1 := ProjectVertex(mesh.Vertices[mesh.Indices[i+1]], world, viewProj, dm.Size, dm.Size)
			v2, ok2 := ProjectVertex(mesh.Vertices[mesh.Indices[i+2]], world, viewProj, dm.Size, dm.Size)
			if !ok0 || !ok1 || !ok2 {
				continue
			}
			DrawTriangleDepth(dm, v0, v1, v2)
		}
	}
}

// pointFaceViewProj builds the 90 degree projection for one cube face of a
// point light. The face order matches the face the shading pass selects by
// pixel direction.
func pointFaceViewProj(light shading.Light, face int) math.Mat4 {
	dir := textures.CubeFaceAxis(face)
	up := math.Vec3Up
	if face == textures.CubeFacePosY || face == textures.CubeFaceNegY {
		up = math.Vec3Front
	}

	far := light.Range
	if far < shadowNear*2 {
		far = shadowNear * 2
	}

	view := math.Mat4LookAt(light.Position, light.Position.Add(dir), up)
	proj := math.Mat4Perspective(math32.Pi/2, 1, shadowNear, far)
	return view.Mul(proj)
}

// spotViewProj builds the perspective projection covering a spot light cone.
func spotViewProj(light shading.Light) math.Mat4 {
	fov := light.SpotFalloff * 2
	if fov < 0.1 {
		fov = 0.1
	}
	if fov > 3 {
		fov = 3
	}

	far := light.Range
	if far < shadowNear*2 {
		far = shadowNear * 2
	}

	up := math.Vec3Up
	if math.Abs(light.Direction.Y) > 0.99 {
		up = math.Vec3Front
	}

	view := math.Mat4LookAt(light.Position, light.Position.Add(light.Direction), up)
	proj := math.Mat4Perspective(fov, 1, shadowNear, far)
	return view.Mul(proj)
}
