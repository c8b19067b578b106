package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-demo/core"
	"pbr-demo/materials"
	"pbr-demo/math"
	"pbr-demo/scene"
	"pbr-demo/shading"
	"pbr-demo/textures"
)

// fullscreenTriangle returns a front-facing triangle covering the top-left
// half of a size x size target, at the given depth, with its normal toward
// the viewer.
func fullscreenTriangle(size int, depth float32) (ScreenVertex, ScreenVertex, ScreenVertex) {
	mk := func(x, y float32) ScreenVertex {
		return ScreenVertex{
			X: x, Y: y, Z: depth, InvW: 1,
			WorldPos: math.Vec3{X: x, Y: y},
			Normal:   math.Vec3{Z: 1},
			Tangent:  math.Vec3{X: 1},
		}
	}
	s := float32(size) * 2
	return mk(0, 0), mk(0, s), mk(s, 0)
}

func sceneVertex(pos math.Vec3) core.Vertex {
	return core.Vertex{
		Position: pos,
		Normal:   math.Vec3{Z: 1},
		Tangent:  math.Vec3{X: 1},
		Color:    core.ColorWhite,
	}
}

func litUniforms() (*shading.FrameUniforms, *shading.Bindings) {
	u := shading.NewFrameUniforms()
	u.CameraPos = math.Vec3{Z: 5}
	u.Lights[0] = shading.NewDirectionalLight(math.Vec3{Z: -1}, math.Vec3One, 1)
	u.LightCount = 1
	b := &shading.Bindings{
		Sampler:       textures.NewSampler("test"),
		ShadowSampler: textures.NewCompareSampler("test"),
	}
	return u, b
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(math.Vec4{X: 1, W: 1})

	assert.Equal(t, math.Vec4{X: 1, W: 1}, fb.At(2, 2))
	assert.Equal(t, float32(1), fb.Depth[0], "depth resets to far")
}

func TestFramebufferToImage(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Color[0] = math.Vec4{X: 1, Y: 0.5, Z: 0, W: 1}

	img := fb.ToImage()
	c := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
	assert.InDelta(t, 128, int(c.G), 1)
}

func TestProjectVertexCenter(t *testing.T) {
	v := sceneVertex(math.Vec3Zero)
	sv, ok := ProjectVertex(v, math.Mat4Identity(), math.Mat4Identity(), 100, 100)
	require.True(t, ok, "projection should succeed")

	assert.Equal(t, float32(50), sv.X, "NDC origin lands at pixel center")
	assert.Equal(t, float32(50), sv.Y)
	assert.Equal(t, float32(0.5), sv.Z, "NDC z=0 maps to depth 0.5")
}

func TestProjectVertexBehindNearPlane(t *testing.T) {
	cam := scene.NewCamera(1.0472, 1, 0.1, 100)
	vp := cam.GetViewProjectionMatrix()

	// Camera looks down -Z; a point behind it has w <= 0
	v := sceneVertex(math.Vec3{Z: 5})
	_, ok := ProjectVertex(v, math.Mat4Identity(), vp, 100, 100)
	assert.False(t, ok, "vertex behind the near plane must be rejected")
}

func TestDrawTriangleWritesDepthAndColor(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	u, b := litUniforms()
	v0, v1, v2 := fullscreenTriangle(64, 0.5)

	DrawTriangle(fb, v0, v1, v2, u, b, 0, 64)

	idx := 10*64 + 10
	assert.Equal(t, float32(0.5), fb.Depth[idx])
	assert.Greater(t, fb.Color[idx].X, float32(0), "covered pixel should be lit")
}

func TestDrawTriangleDepthTest(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	u, b := litUniforms()

	near0, near1, near2 := fullscreenTriangle(64, 0.3)
	DrawTriangle(fb, near0, near1, near2, u, b, 0, 64)

	// A farther triangle must not overwrite
	far0, far1, far2 := fullscreenTriangle(64, 0.8)
	far0.Normal = math.Vec3{Z: -1}
	far1.Normal = math.Vec3{Z: -1}
	far2.Normal = math.Vec3{Z: -1}
	DrawTriangle(fb, far0, far1, far2, u, b, 0, 64)

	assert.Equal(t, float32(0.3), fb.Depth[10*64+10], "nearer depth survives")
}

func TestDrawTriangleBackfaceCulled(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	u, b := litUniforms()
	v0, v1, v2 := fullscreenTriangle(64, 0.5)

	// Reversed winding is a back face
	DrawTriangle(fb, v0, v2, v1, u, b, 0, 64)

	assert.Equal(t, float32(1), fb.Depth[10*64+10], "back face must not rasterize")
}

func TestDrawTriangleRespectsBand(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	u, b := litUniforms()
	v0, v1, v2 := fullscreenTriangle(64, 0.5)

	DrawTriangle(fb, v0, v1, v2, u, b, 0, 32)

	assert.Less(t, fb.Depth[10*64+5], float32(1), "rows inside the band are written")
	assert.Equal(t, float32(1), fb.Depth[40*64+5], "rows outside the band stay untouched")
}

func TestDrawTriangleDepthKeepsNearest(t *testing.T) {
	dm := textures.NewDepthMap(32)
	v0, v1, v2 := fullscreenTriangle(32, 0.7)
	DrawTriangleDepth(dm, v0, v1, v2)
	require.Equal(t, float32(0.7), dm.At(5, 5))

	// Nearer surface wins, farther one does not
	n0, n1, n2 := fullscreenTriangle(32, 0.2)
	DrawTriangleDepth(dm, n0, n1, n2)
	assert.Equal(t, float32(0.2), dm.At(5, 5))

	f0, f1, f2 := fullscreenTriangle(32, 0.9)
	DrawTriangleDepth(dm, f0, f1, f2)
	assert.Equal(t, float32(0.2), dm.At(5, 5), "farther depth must not overwrite")
}

func TestRenderFrameShadesCube(t *testing.T) {
	s := scene.CreateDefaultScene()
	node := scene.NewNode("cube")
	node.Mesh = scene.CreateCube(2)
	node.Mesh.Material = materials.RoughPlastic(math.Vec4{X: 1, Y: 1, Z: 1, W: 1})
	s.AddNode(node)

	r := NewRenderer(64, 64, 64)
	fb := r.RenderFrame(s)

	// The cube sits at the origin in front of the default camera, so the
	// center pixel must be closer than the background.
	assert.Less(t, fb.Depth[32*64+32], float32(1), "cube covers the center pixel")
	assert.Greater(t, fb.At(32, 32).X, float32(0), "cube pixel is lit")
}

func TestRenderFrameAssignsShadowState(t *testing.T) {
	s := scene.CreateDefaultScene()
	node := scene.NewNode("cube")
	node.Mesh = scene.CreateCube(2)
	s.AddNode(node)

	point := shading.NewPointLight(math.Vec3{Y: 4}, math.Vec3One, 1, 10)
	point.CastsShadows = true
	s.AddLight(&point)

	r := NewRenderer(16, 16, 32)
	u := r.buildFrameState(s)
	b := shading.Bindings{ShadowSampler: r.shadowSampler}
	r.renderShadows(s, u, &b)

	assert.Equal(t, int32(shading.MaxCascades), u.CascadeCount, "directional caster fills all cascades")
	// The point light takes 6 consecutive slots
	assert.Equal(t, int32(6), u.ShadowMapCount)
	for i := 0; i < 6; i++ {
		assert.NotNil(t, b.ShadowMaps[i], "slot %d has a map bound", i)
	}
	assert.NotNil(t, b.CascadeMaps[0])
}

func TestCascadeDistancesAscend(t *testing.T) {
	s := scene.CreateDefaultScene()
	r := NewRenderer(16, 16, 32)
	u := r.buildFrameState(s)
	b := shading.Bindings{ShadowSampler: r.shadowSampler}
	r.renderShadows(s, u, &b)

	for i := 1; i < int(u.CascadeCount); i++ {
		assert.Greater(t, u.CascadeDistances[i], u.CascadeDistances[i-1], "cascade %d", i)
	}
}

func TestBuildFrameStateCapsLights(t *testing.T) {
	s := scene.NewScene()
	for i := 0; i < shading.MaxLights+3; i++ {
		l := shading.NewPointLight(math.Vec3{X: float32(i)}, math.Vec3One, 1, 5)
		s.AddLight(&l)
	}

	r := NewRenderer(8, 8, 16)
	u := r.buildFrameState(s)
	assert.Equal(t, int32(shading.MaxLights), u.LightCount)
}
