package raster

import (
	"pbr-demo/core"
	"pbr-demo/math"
	"pbr-demo/shading"
	"pbr-demo/textures"
)

// nearW rejects triangles that cross the near plane instead of clipping
// them. Geometry that close to the camera is dropped for the frame.
const nearW = 1e-4

// ScreenVertex is one mesh vertex after projection to the render target.
// World-space attributes are pre-divided by clip W so the pixel loop can
// interpolate them perspective-correctly and divide back by InvW.
type ScreenVertex struct {
	X, Y float32 // pixel coordinates
	Z    float32 // NDC depth mapped to [0,1]
	InvW float32

	WorldPos math.Vec3 // divided by W
	Normal   math.Vec3
	Tangent  math.Vec3
	UV       math.Vec2
}

// ProjectVertex transforms one vertex through world and view-projection into
// screen space. ok is false when the vertex lands on or behind the near plane.
func ProjectVertex(v core.Vertex, world, viewProj math.Mat4, width, height int) (ScreenVertex, bool) {
	worldPos := world.MulVec3(v.Position)
	clip := worldPos.ToVec4(1).MulMat(viewProj)
	if clip.W < nearW {
		return ScreenVertex{}, false
	}

	invW := 1 / clip.W
	ndcX := clip.X * invW
	ndcY := clip.Y * invW
	ndcZ := clip.Z * invW

	sv := ScreenVertex{
		X:    (ndcX*0.5 + 0.5) * float32(width),
		Y:    (1 - (ndcY*0.5 + 0.5)) * float32(height),
		Z:    ndcZ*0.5 + 0.5,
		InvW: invW,

		WorldPos: worldPos.Mul(invW),
		Normal:   world.MulDir(v.Normal).Mul(invW),
		Tangent:  world.MulDir(v.Tangent).Mul(invW),
		UV:       v.UV.Mul(invW),
	}
	return sv, true
}

// DrawTriangle rasterizes one shaded triangle into the framebuffer rows
// [yMin, yMax). Depth test is less-than against the NDC depth buffer and
// each surviving pixel runs the full shading pass.
func DrawTriangle(fb *Framebuffer, v0, v1, v2 ScreenVertex, u *shading.FrameUniforms, b *shading.Bindings, yMin, yMax int) {
	// Backface cull: front faces wind counter-clockwise in world space,
	// which is clockwise (negative area) after the screen-space Y flip.
	det := (v1.X-v0.X)*(v2.Y-v0.Y) - (v2.X-v0.X)*(v1.Y-v0.Y)
	if det > -1e-6 {
		return
	}
	invDet := 1 / det

	minX, maxX, minY, maxY := triangleBounds(v0, v1, v2, fb.Width, yMin, yMax)
	if minX > maxX || minY > maxY {
		return
	}

	for sy := minY; sy <= maxY; sy++ {
		py := float32(sy) + 0.5
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			px := float32(sx) + 0.5

			w0 := ((v1.X-px)*(v2.Y-py) - (v2.X-px)*(v1.Y-py)) * invDet
			w1 := ((v2.X-px)*(v0.Y-py) - (v0.X-px)*(v2.Y-py)) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			depth := w0*v0.Z + w1*v1.Z + w2*v2.Z
			idx := rowOff + sx
			if depth >= fb.Depth[idx] || depth < 0 {
				continue
			}

			invW := w0*v0.InvW + w1*v1.InvW + w2*v2.InvW
			if invW <= 0 {
				continue
			}
			w := 1 / invW

			in := shading.PixelInput{
				WorldPos: lerp3(v0.WorldPos, v1.WorldPos, v2.WorldPos, w0, w1, w2).Mul(w),
				Normal:   lerp3(v0.Normal, v1.Normal, v2.Normal, w0, w1, w2).Mul(w),
				Tangent:  lerp3(v0.Tangent, v1.Tangent, v2.Tangent, w0, w1, w2).Mul(w),
				UV:       lerp2(v0.UV, v1.UV, v2.UV, w0, w1, w2).Mul(w),
			}

			fb.Depth[idx] = depth
			fb.Color[idx] = shading.Shade(in, u, b)
		}
	}
}

// DrawTriangleDepth rasterizes one triangle into a depth map only, keeping
// the nearest depth per texel. No culling: shadow casters render both sides.
func DrawTriangleDepth(dm *textures.DepthMap, v0, v1, v2 ScreenVertex) {
	det := (v1.X-v0.X)*(v2.Y-v0.Y) - (v2.X-v0.X)*(v1.Y-v0.Y)
	if det > -1e-6 && det < 1e-6 {
		return
	}
	invDet := 1 / det

	minX, maxX, minY, maxY := triangleBounds(v0, v1, v2, dm.Size, 0, dm.Size)
	if minX > maxX || minY > maxY {
		return
	}

	for sy := minY; sy <= maxY; sy++ {
		py := float32(sy) + 0.5
		for sx := minX; sx <= maxX; sx++ {
			px := float32(sx) + 0.5

			w0 := ((v1.X-px)*(v2.Y-py) - (v2.X-px)*(v1.Y-py)) * invDet
			w1 := ((v2.X-px)*(v0.Y-py) - (v0.X-px)*(v2.Y-py)) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			depth := w0*v0.Z + w1*v1.Z + w2*v2.Z
			if depth < 0 || depth > 1 {
				continue
			}
			if depth < dm.At(sx, sy) {
				dm.Set(sx, sy, depth)
			}
		}
	}
}

func triangleBounds(v0, v1, v2 ScreenVertex, width, yMin, yMax int) (minX, maxX, minY, maxY int) {
	minX = int(min3(v0.X, v1.X, v2.X))
	maxX = int(max3(v0.X, v1.X, v2.X)) + 1
	minY = int(min3(v0.Y, v1.Y, v2.Y))
	maxY = int(max3(v0.Y, v1.Y, v2.Y)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX > width-1 {
		maxX = width - 1
	}
	if minY < yMin {
		minY = yMin
	}
	if maxY > yMax-1 {
		maxY = yMax - 1
	}
	return minX, maxX, minY, maxY
}

func lerp3(a, b, c math.Vec3, w0, w1, w2 float32) math.Vec3 {
	return math.Vec3{
		X: a.X*w0 + b.X*w1 + c.X*w2,
		Y: a.Y*w0 + b.Y*w1 + c.Y*w2,
		Z: a.Z*w0 + b.Z*w1 + c.Z*w2,
	}
}

func lerp2(a, b, c math.Vec2, w0, w1, w2 float32) math.Vec2 {
	return math.Vec2{
		X: a.X*w0 + b.X*w1 + c.X*w2,
		Y: a.Y*w0 + b.Y*w1 + c.Y*w2,
	}
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
