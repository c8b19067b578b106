// Package raster is the software rendering backend: it projects scene
// geometry, runs the depth-only shadow passes, and rasterizes shaded
// triangles into a CPU framebuffer in parallel row bands.
package raster

import (
	"runtime"
	"sync"

	"github.com/chewxy/math32"

	"pbr-demo/math"
	"pbr-demo/scene"
	"pbr-demo/shading"
	"pbr-demo/textures"
)

// Renderer owns the framebuffer, shadow map pool, and worker configuration
// for one render target.
type Renderer struct {
	Width            int
	Height           int
	ShadowResolution int
	Workers          int

	fb          *Framebuffer
	cascadeMaps [shading.MaxCascades]*textures.DepthMap
	shadowMaps  [shading.MaxShadowMaps]*textures.DepthMap

	shadowSampler textures.CompareSampler
	skySampler    textures.Sampler
}

// NewRenderer creates a renderer for the given target size.
func NewRenderer(width, height, shadowResolution int) *Renderer {
	return &Renderer{
		Width:            width,
		Height:           height,
		ShadowResolution: shadowResolution,
		Workers:          runtime.NumCPU(),
		fb:               NewFramebuffer(width, height),
		shadowSampler:    textures.NewCompareSampler("shadow"),
		skySampler:       textures.NewSampler("sky"),
	}
}

// drawItem is one mesh ready for rasterization: projected vertices plus the
// material-resolved shading state.
type drawItem struct {
	verts    []ScreenVertex
	valid    []bool
	indices  []uint32
	uniforms shading.FrameUniforms
	bindings shading.Bindings
}

// RenderFrame renders the scene into the framebuffer and returns it. The
// returned buffer is reused by the next call.
func (r *Renderer) RenderFrame(s *scene.Scene) *Framebuffer {
	base := r.buildFrameState(s)
	baseBindings := shading.Bindings{
		Environment:   s.Sky,
		ShadowSampler: r.shadowSampler,
	}

	r.renderShadows(s, base, &baseBindings)

	items := r.buildDrawItems(s, base, baseBindings)

	// Shade in parallel: each worker owns a horizontal band of rows, so no
	// two workers ever touch the same pixel.
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > r.Height {
		workers = r.Height
	}
	rowsPer := (r.Height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		yMin := w * rowsPer
		yMax := yMin + rowsPer
		if yMax > r.Height {
			yMax = r.Height
		}
		if yMin >= yMax {
			break
		}

		wg.Add(1)
		go func(yMin, yMax int) {
			defer wg.Done()
			r.fillBackground(s, yMin, yMax)
			for i := range items {
				r.rasterizeItem(&items[i], yMin, yMax)
			}
		}(yMin, yMax)
	}
	wg.Wait()

	return r.fb
}

// buildFrameState snapshots the per-frame shading state: camera, the bounded
// light list, and the sky parameters.
func (r *Renderer) buildFrameState(s *scene.Scene) *shading.FrameUniforms {
	u := shading.NewFrameUniforms()
	if s.Camera != nil {
		u.CameraPos = s.Camera.Position
	}
	u.IndirectIntensity = s.IndirectIntensity
	if s.Sky != nil {
		u.SkyMipCount = int32(s.Sky.MipCount())
	}

	count := 0
	for _, l := range s.Lights {
		if count >= shading.MaxLights {
			break
		}
		u.Lights[count] = *l
		count++
	}
	u.LightCount = int32(count)
	return u
}

// buildDrawItems projects every visible mesh into screen space once, so the
// per-band workers only run the pixel loop.
func (r *Renderer) buildDrawItems(s *scene.Scene, base *shading.FrameUniforms, baseBindings shading.Bindings) []drawItem {
	if s.Camera == nil {
		return nil
	}
	viewProj := s.Camera.GetViewProjectionMatrix()
	frustum := scene.FrustumFromVP(viewProj)

	var items []drawItem
	for _, node := range s.GetVisibleNodes() {
		world := node.GetWorldMatrix()
		mesh := node.Mesh

		aabb := scene.ComputeAABB(mesh, world)
		if !aabb.IntersectsFrustum(&frustum) {
			continue
		}

		item := drawItem{
			verts:    make([]ScreenVertex, len(mesh.Vertices)),
			valid:    make([]bool, len(mesh.Vertices)),
			indices:  mesh.Indices,
			uniforms: *base,
			bindings: baseBindings,
		}
		for i, v := range mesh.Vertices {
			item.verts[i], item.valid[i] = ProjectVertex(v, world, viewProj, r.Width, r.Height)
		}

		if mesh.Material != nil {
			mesh.Material.Prepare(&item.uniforms, &item.bindings)
		}
		items = append(items, item)
	}
	return items
}

func (r *Renderer) rasterizeItem(item *drawItem, yMin, yMax int) {
	for i := 0; i+2 < len(item.indices); i += 3 {
		i0, i1, i2 := item.indices[i], item.indices[i+1], item.indices[i+2]
		if !item.valid[i0] || !item.valid[i1] || !item.valid[i2] {
			continue
		}
		DrawTriangle(r.fb, item.verts[i0], item.verts[i1], item.verts[i2], &item.uniforms, &item.bindings, yMin, yMax)
	}
}

// fillBackground clears the band to the sky sampled along each pixel's view
// ray, or to a flat dark gray when the scene has no environment.
func (r *Renderer) fillBackground(s *scene.Scene, yMin, yMax int) {
	if s.Sky == nil || s.Camera == nil {
		c := math.Vec4{X: 0.08, Y: 0.08, Z: 0.1, W: 1}
		for y := yMin; y < yMax; y++ {
			row := y * r.Width
			for x := 0; x < r.Width; x++ {
				r.fb.Color[row+x] = c
				r.fb.Depth[row+x] = 1
			}
		}
		return
	}

	cam := s.Camera
	forward := cam.GetForward()
	right := cam.GetRight()
	up := cam.GetUp()
	tanHalf := math32.Tan(cam.FOV / 2)

	for y := yMin; y < yMax; y++ {
		ndcY := 1 - 2*(float32(y)+0.5)/float32(r.Height)
		row := y * r.Width
		for x := 0; x < r.Width; x++ {
			ndcX := 2*(float32(x)+0.5)/float32(r.Width) - 1
			dir := forward.
				Add(right.Mul(ndcX * tanHalf * cam.AspectRatio)).
				Add(up.Mul(ndcY * tanHalf))
			r.fb.Color[row+x] = s.Sky.SampleLevel(r.skySampler, dir, 0)
			r.fb.Depth[row+x] = 1
		}
	}
}
