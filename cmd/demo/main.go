package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"pbr-demo/core"
	"pbr-demo/editor"
	"pbr-demo/internal/display"
	"pbr-demo/internal/raster"
	"pbr-demo/materials"
	"pbr-demo/math"
	"pbr-demo/scene"
	"pbr-demo/shading"
)

func main() {
	width := flag.Int("width", 960, "render width in pixels")
	height := flag.Int("height", 540, "render height in pixels")
	shadowRes := flag.Int("shadow", 512, "shadow map resolution")
	workers := flag.Int("workers", 0, "shading workers (0 = one per CPU)")
	headless := flag.Bool("headless", false, "render without a window")
	frames := flag.Int("frames", 1, "frames to render in headless mode")
	out := flag.String("out", "frame.webp", "output image path (headless)")
	objPath := flag.String("obj", "", "optional OBJ model to add to the scene")
	gltfPath := flag.String("gltf", "", "optional glTF/GLB model to add to the scene")
	flag.Parse()

	s, sun := buildScene()

	if err := loadModels(s, *objPath, *gltfPath); err != nil {
		fmt.Fprintf(os.Stderr, "model load failed: %v\n", err)
		os.Exit(1)
	}

	dayNight := NewDayNight()
	dayNight.Apply(s, sun)

	r := raster.NewRenderer(*width, *height, *shadowRes)
	if *workers > 0 {
		r.Workers = *workers
	}

	if *headless {
		if err := runHeadless(r, s, sun, dayNight, *frames, *out); err != nil {
			fmt.Fprintf(os.Stderr, "headless render failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runInteractive(r, s, sun, dayNight, *width, *height); err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}
}

// buildScene assembles the material showcase: a checker floor, a sphere grid
// sweeping roughness and metallic, a few preset objects, and three lights.
func buildScene() (*scene.Scene, *shading.Light) {
	s := scene.NewScene()

	camera := scene.NewCamera(1.0472, 16.0/9.0, 0.1, 500)
	camera.SetPosition(math.Vec3{X: 0, Y: 4, Z: 14})
	camera.LookAt(math.Vec3{X: 0, Y: 1, Z: 0}, math.Vec3Up)
	s.SetCamera(camera)

	// ── Floor ─────────────────────────────────────────────────────────────
	floor := scene.CreatePlane(40, 40, 1)
	floor.Material = materials.CheckerFloor()
	floorNode := scene.NewNode("Floor")
	floorNode.Mesh = floor
	s.AddNode(floorNode)

	// ── Sphere grid: roughness left to right, metallic back to front ─────
	const cols = 6
	for row := 0; row < 2; row++ {
		metallic := float32(row) // 0 = dielectric, 1 = metal
		for col := 0; col < cols; col++ {
			roughness := math.Clamp(float32(col)/(cols-1), 0.05, 1)

			mat := materials.New(fmt.Sprintf("grid_r%.2f_m%.0f", roughness, metallic))
			mat.ColorTint = math.Vec4{X: 0.9, Y: 0.25, Z: 0.2, W: 1}
			mat.Roughness = roughness
			mat.Metallic = metallic

			mesh := scene.CreateSphere(0.8, 24, 12)
			mesh.Material = mat

			node := scene.NewNode(fmt.Sprintf("Sphere_%d_%d", row, col))
			node.Mesh = mesh
			node.SetPosition(math.Vec3{
				X: (float32(col) - float32(cols-1)/2) * 2.2,
				Y: 1,
				Z: float32(row) * -2.5,
			})
			s.AddNode(node)
		}
	}

	// ── Preset pieces ─────────────────────────────────────────────────────
	mirror := scene.CreateSphere(1.2, 32, 16)
	mirror.Material = materials.Mirror()
	mirrorNode := scene.NewNode("MirrorBall")
	mirrorNode.Mesh = mirror
	mirrorNode.SetPosition(math.Vec3{X: -7, Y: 1.4, Z: 2})
	s.AddNode(mirrorNode)

	torus := scene.CreateTorus(1.1, 0.35, 32, 16)
	torus.Material = materials.PolishedMetal()
	torusNode := scene.NewNode("MetalTorus")
	torusNode.Mesh = torus
	torusNode.SetPosition(math.Vec3{X: 7, Y: 1.5, Z: 2})
	s.AddNode(torusNode)

	cube := scene.CreateCube(1.6)
	cube.Material = materials.RoughPlastic(math.Vec4{X: 0.2, Y: 0.45, Z: 0.85, W: 1})
	cubeNode := scene.NewNode("PlasticCube")
	cubeNode.Mesh = cube
	cubeNode.SetPosition(math.Vec3{X: 0, Y: 0.8, Z: 4})
	s.AddNode(cubeNode)

	// ── Lights ────────────────────────────────────────────────────────────
	// Sun direction, color, and intensity are driven by the day cycle.
	sun := shading.NewDirectionalLight(math.Vec3{X: 0.5, Y: -1, Z: -0.5}, math.Vec3One, 1.2)
	sun.CastsShadows = true
	s.AddLight(&sun)

	lamp := shading.NewPointLight(
		math.Vec3{X: -4, Y: 5, Z: 3},
		math.Vec3{X: 1, Y: 0.78, Z: 0.35},
		2.5, 18,
	)
	lamp.CastsShadows = true
	s.AddLight(&lamp)

	spot := shading.NewSpotLight(
		math.Vec3{X: 5, Y: 7, Z: 5},
		math.Vec3{X: -0.4, Y: -1, Z: -0.35},
		math.Vec3{X: 0.6, Y: 0.8, Z: 1},
		3, 25, 0.5,
	)
	spot.CastsShadows = true
	s.AddLight(&spot)

	return s, &sun
}

// loadModels adds optional OBJ and glTF content beside the showcase.
func loadModels(s *scene.Scene, objPath, gltfPath string) error {
	if objPath != "" {
		meshes, err := scene.LoadOBJ(objPath)
		if err != nil {
			return fmt.Errorf("obj %s: %w", objPath, err)
		}
		for i, m := range meshes {
			node := scene.NewNode(fmt.Sprintf("obj_%d", i))
			node.Mesh = m
			node.SetPosition(math.Vec3{X: 0, Y: 0, Z: -6})
			s.AddNode(node)
		}
		fmt.Printf("loaded %d meshes from %s\n", len(meshes), objPath)
	}

	if gltfPath != "" {
		result, err := scene.LoadGLTF(gltfPath)
		if err != nil {
			return fmt.Errorf("gltf %s: %w", gltfPath, err)
		}
		for _, root := range result.Roots {
			root.SetPosition(root.Transform.Position.Add(math.Vec3{X: 0, Y: 0, Z: -6}))
			s.AddNode(root)
		}
		fmt.Printf("loaded %d root nodes from %s\n", len(result.Roots), gltfPath)
	}
	return nil
}

// runHeadless advances the day cycle and renders the requested number of
// frames, writing the last one as a WebP image.
func runHeadless(r *raster.Renderer, s *scene.Scene, sun *shading.Light, dayNight *DayNight, frames int, out string) error {
	if frames < 1 {
		frames = 1
	}
	const dt = 1.0 / 30

	var fb *raster.Framebuffer
	start := time.Now()
	for i := 0; i < frames; i++ {
		dayNight.Update(dt)
		dayNight.Apply(s, sun)
		s.Update(dt)
		fb = r.RenderFrame(s)
	}
	elapsed := time.Since(start)
	fmt.Printf("rendered %d frames in %v (%.1f ms/frame)\n",
		frames, elapsed.Round(time.Millisecond),
		float64(elapsed.Milliseconds())/float64(frames))

	return saveWebP(out, fb)
}

// runInteractive opens a window and runs the render/editor loop until closed.
func runInteractive(r *raster.Renderer, s *scene.Scene, sun *shading.Light, dayNight *DayNight, width, height int) error {
	config := core.DefaultWindowConfig()
	config.Width = width
	config.Height = height
	config.Title = "PBR Demo"

	window, err := core.NewWindow(config)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer window.Destroy()

	disp, err := display.New(width, height)
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	defer disp.Destroy()

	ed := editor.NewEditor(window, s)
	overlay := &DebugOverlay{}

	fmt.Println("CONTROLS:")
	fmt.Println("  MMB drag        - Orbit camera (Shift: pan), scroll to zoom")
	fmt.Println("  RMB + WASD      - Fly camera (Q/E down/up, Shift: faster)")
	fmt.Println("  Ctrl + scroll   - Adjust field of view")
	fmt.Println("  Left click      - Select object (Shift: multi-select)")
	fmt.Println("  G / R / S       - Move / rotate / scale tool")
	fmt.Println("  X / Delete      - Delete selection, Shift+D duplicate")
	fmt.Println("  Ctrl+Z / +Shift - Undo / redo")
	fmt.Println("  L               - Cycle lights, - / = intensity, T shadows")
	fmt.Println("  [ / ]           - Material roughness (Shift: metallic)")
	fmt.Println("  N               - Pause / resume the day cycle")
	fmt.Println("  F12             - Save a WebP snapshot")
	fmt.Println("  ESC             - Quit")

	lastTime := time.Now()
	fpsCounter := 0
	displayFPS := 0
	fpsLastTime := time.Now()
	dayKeyWasDown := false
	snapKeyWasDown := false

	for !window.ShouldClose() {
		window.PollEvents()

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if window.IsKeyPressed(core.KeyEscape) {
			window.Close()
		}

		dayDown := window.IsKeyPressed(core.KeyN)
		if dayDown && !dayKeyWasDown {
			dayNight.Active = !dayNight.Active
		}
		dayKeyWasDown = dayDown

		ed.Update(dt)
		dayNight.Update(dt)
		dayNight.Apply(s, sun)
		s.Update(dt)

		fb := r.RenderFrame(s)
		disp.Present(fb.ToImage())
		window.SwapBuffers()

		snapDown := window.IsKeyPressed(core.KeyF12)
		if snapDown && !snapKeyWasDown {
			name := fmt.Sprintf("snapshot_%d.webp", time.Now().Unix())
			if err := saveWebP(name, fb); err != nil {
				fmt.Fprintf(os.Stderr, "snapshot failed: %v\n", err)
			} else {
				fmt.Println("saved", name)
			}
		}
		snapKeyWasDown = snapDown

		fpsCounter++
		if time.Since(fpsLastTime) >= time.Second {
			displayFPS = fpsCounter
			fpsCounter = 0
			fpsLastTime = time.Now()

			window.SetTitle(fmt.Sprintf("PBR Demo | %d fps | %s | %s",
				displayFPS, dayNight.TimeOfDayStr(), ed.StatusText))

			overlay.Clear()
			if displayFPS > 0 {
				overlay.AddLine("Frame: %.1f ms (%d fps)  window %dx%d",
					1000/float32(displayFPS), displayFPS, window.Width, window.Height)
			}
			for _, line := range ed.OverlayLines() {
				overlay.AddLine("%s", line)
			}
			fmt.Print(overlay.GetText())
		}
	}
	return nil
}

func saveWebP(path string, fb *raster.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, fb.ToImage(), nil); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
