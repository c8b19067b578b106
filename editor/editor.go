package editor

import (
	"fmt"

	"pbr-demo/core"
	"pbr-demo/math"
	"pbr-demo/scene"
	"pbr-demo/shading"
)

// Editor is the top-level editor state machine
type Editor struct {
	ActiveTool TransformTool
	Selection  *Selection
	History    *History
	Input      *InputManager
	Scene      *scene.Scene
	Window     *core.Window

	// Camera
	OrbitCamera *scene.OrbitCamera

	// Status info
	StatusText string
}

// NewEditor initializes a new editor instance
func NewEditor(window *core.Window, s *scene.Scene) *Editor {
	camera := scene.NewOrbitCamera(math.Vec3Zero, 5.0, 1.0472, float32(window.Width)/float32(window.Height))
	s.SetCamera(&camera.Camera)

	return &Editor{
		ActiveTool:  ToolTranslate,
		Selection:   NewSelection(),
		History:     NewHistory(100),
		Input:       NewInputManager(window),
		Scene:       s,
		Window:      window,
		OrbitCamera: camera,
		StatusText:  "Ready",
	}
}

// Update processes one frame of editor logic
func (e *Editor) Update(deltaTime float32) {
	e.Input.Update()

	// RMB fly mode owns the keyboard; shortcuts would collide with WASD.
	if !e.Input.IsMouseDown(MouseRight) {
		e.handleShortcuts()
		e.handleLightEditing()
		e.handleMaterialEditing()
	}
	e.handleCameraControls(deltaTime)
	e.handleMouseSelection()

	e.Input.EndFrame()
}

func (e *Editor) handleShortcuts() {
	// Undo: Ctrl+Z
	if e.Input.IsShortcut(core.KeyZ) && !e.Input.ShiftDown {
		if e.History.Undo() {
			e.StatusText = "Undo"
		}
	}

	// Redo: Ctrl+Shift+Z
	if e.Input.IsShiftShortcut(core.KeyZ) {
		if e.History.Redo() {
			e.StatusText = "Redo"
		}
	}

	// Delete: X or Delete
	if e.Input.IsKeyPressed(core.KeyX) || e.Input.IsKeyPressed(core.KeyDelete) {
		if !e.Input.CtrlDown {
			e.deleteSelected()
		}
	}

	// Duplicate: Shift+D
	if e.Input.ShiftDown && e.Input.IsKeyPressed(core.KeyD) {
		e.duplicateSelected()
	}

	// Transform tool shortcuts
	if e.Input.IsKeyPressed(core.KeyG) {
		e.ActiveTool = ToolTranslate
		e.StatusText = "Tool: Move"
	}
	if e.Input.IsKeyPressed(core.KeyR) && !e.Input.CtrlDown {
		e.ActiveTool = ToolRotate
		e.StatusText = "Tool: Rotate"
	}
	if e.Input.IsKeyPressed(core.KeyS) && !e.Input.CtrlDown {
		e.ActiveTool = ToolScale
		e.StatusText = "Tool: Scale"
	}

	// Cycle through lights: L
	if e.Input.IsKeyPressed(core.KeyL) && !e.Input.CtrlDown {
		e.Selection.CycleLight(len(e.Scene.Lights))
		if light := e.activeLight(); light != nil {
			e.StatusText = fmt.Sprintf("Light %d: %s", e.Selection.ActiveLight, lightTypeName(light.Type))
		} else {
			e.StatusText = "No light selected"
		}
	}
}

// handleLightEditing adjusts the active light's parameters.
// Minus/Equal change intensity, T toggles shadow casting.
func (e *Editor) handleLightEditing() {
	light := e.activeLight()
	if light == nil {
		return
	}

	step := float32(0.1)
	if e.Input.ShiftDown {
		step = 0.5
	}

	if e.Input.IsKeyPressed(core.KeyMinus) {
		edited := *light
		edited.Intensity = maxf(edited.Intensity-step, 0)
		e.History.Do(NewLightEditCommand(light, edited, "Light intensity down"))
		e.StatusText = fmt.Sprintf("Intensity: %.2f", light.Intensity)
	}
	if e.Input.IsKeyPressed(core.KeyEqual) {
		edited := *light
		edited.Intensity += step
		e.History.Do(NewLightEditCommand(light, edited, "Light intensity up"))
		e.StatusText = fmt.Sprintf("Intensity: %.2f", light.Intensity)
	}
	if e.Input.IsKeyPressed(core.KeyT) && !e.Input.CtrlDown {
		edited := *light
		edited.CastsShadows = !edited.CastsShadows
		e.History.Do(NewLightEditCommand(light, edited, "Toggle shadows"))
		e.StatusText = fmt.Sprintf("Shadows: %v", light.CastsShadows)
	}
	if e.Input.IsKeyPressed(core.KeyPageUp) {
		edited := *light
		edited.Range += 1
		e.History.Do(NewLightEditCommand(light, edited, "Light range up"))
		e.StatusText = fmt.Sprintf("Range: %.1f", light.Range)
	}
	if e.Input.IsKeyPressed(core.KeyPageDown) {
		edited := *light
		edited.Range = maxf(edited.Range-1, 0)
		e.History.Do(NewLightEditCommand(light, edited, "Light range down"))
		e.StatusText = fmt.Sprintf("Range: %.1f", light.Range)
	}
}

// handleMaterialEditing adjusts the active object's material.
// Brackets change roughness, Shift+brackets change metallic.
func (e *Editor) handleMaterialEditing() {
	node := e.Selection.ActiveObject
	if node == nil || node.Mesh == nil || node.Mesh.Material == nil {
		return
	}
	mat := node.Mesh.Material

	if e.Input.IsKeyPressed(core.KeyLeftBracket) {
		if e.Input.ShiftDown {
			m := clampf(mat.Metallic-0.1, 0, 1)
			e.History.Do(NewMaterialEditCommand(mat, mat.Roughness, m, mat.ColorTint, "Metallic down"))
			e.StatusText = fmt.Sprintf("%s metallic: %.1f", mat.Name, mat.Metallic)
		} else {
			r := clampf(mat.Roughness-0.1, 0, 1)
			e.History.Do(NewMaterialEditCommand(mat, r, mat.Metallic, mat.ColorTint, "Roughness down"))
			e.StatusText = fmt.Sprintf("%s roughness: %.1f", mat.Name, mat.Roughness)
		}
	}
	if e.Input.IsKeyPressed(core.KeyRightBracket) {
		if e.Input.ShiftDown {
			m := clampf(mat.Metallic+0.1, 0, 1)
			e.History.Do(NewMaterialEditCommand(mat, mat.Roughness, m, mat.ColorTint, "Metallic up"))
			e.StatusText = fmt.Sprintf("%s metallic: %.1f", mat.Name, mat.Metallic)
		} else {
			r := clampf(mat.Roughness+0.1, 0, 1)
			e.History.Do(NewMaterialEditCommand(mat, r, mat.Metallic, mat.ColorTint, "Roughness up"))
			e.StatusText = fmt.Sprintf("%s roughness: %.1f", mat.Name, mat.Roughness)
		}
	}
}

func (e *Editor) handleCameraControls(deltaTime float32) {
	// Scroll zooms; Ctrl+scroll adjusts field of view instead
	if e.Input.ScrollDelta != 0 {
		if e.Input.CtrlDown {
			fov := clampf(e.OrbitCamera.FOV-float32(e.Input.ScrollDelta)*0.05, 0.3, 2.5)
			e.OrbitCamera.SetFOV(fov)
			e.StatusText = fmt.Sprintf("FOV: %.0f", fov*57.2958)
		} else {
			e.OrbitCamera.Zoom(-float32(e.Input.ScrollDelta) * 0.5)
		}
	}

	// RMB fly: mouse look plus WASD movement of the orbit target
	if e.Input.IsMouseDown(MouseRight) {
		e.OrbitCamera.Orbit(
			-float32(e.Input.MouseDeltaX)*0.005,
			-float32(e.Input.MouseDeltaY)*0.005,
		)

		speed := e.OrbitCamera.Distance * deltaTime
		if e.Input.ShiftDown {
			speed *= 3
		}

		move := math.Vec3Zero
		if e.Input.IsKeyDown(core.KeyW) {
			move = move.Add(e.OrbitCamera.GetForward())
		}
		if e.Input.IsKeyDown(core.KeyS) {
			move = move.Sub(e.OrbitCamera.GetForward())
		}
		if e.Input.IsKeyDown(core.KeyA) {
			move = move.Sub(e.OrbitCamera.GetRight())
		}
		if e.Input.IsKeyDown(core.KeyD) {
			move = move.Add(e.OrbitCamera.GetRight())
		}
		if e.Input.IsKeyDown(core.KeyE) {
			move = move.Add(math.Vec3Up)
		}
		if e.Input.IsKeyDown(core.KeyQ) {
			move = move.Sub(math.Vec3Up)
		}
		if move.LengthSqr() > 0 {
			e.OrbitCamera.Target = e.OrbitCamera.Target.Add(move.Normalize().Mul(speed))
			e.OrbitCamera.UpdatePosition()
		}
	}

	// MMB orbit / Shift+MMB pan
	if e.Input.IsMouseDown(MouseMiddle) {
		dx := float32(e.Input.MouseDeltaX) * 0.01
		dy := float32(e.Input.MouseDeltaY) * 0.01

		if e.Input.ShiftDown {
			// Pan
			right := e.OrbitCamera.GetRight()
			up := e.OrbitCamera.GetUp()
			panSpeed := e.OrbitCamera.Distance * 0.002
			offset := right.Mul(-dx * panSpeed).Add(up.Mul(dy * panSpeed))
			e.OrbitCamera.Target = e.OrbitCamera.Target.Add(offset)
			e.OrbitCamera.UpdatePosition()
		} else {
			// Orbit
			e.OrbitCamera.Orbit(-dx, -dy)
		}
	}
}

func (e *Editor) handleMouseSelection() {
	// Left click select
	if e.Input.IsMousePressed(MouseLeft) {
		ray := ScreenToRay(
			float32(e.Input.MouseX), float32(e.Input.MouseY),
			float32(e.Window.Width), float32(e.Window.Height),
			&e.OrbitCamera.Camera,
		)

		hit := RaycastScene(ray, e.Scene)
		if hit.Hit && hit.Node != nil {
			if e.Input.ShiftDown {
				e.Selection.ToggleObject(hit.Node)
			} else {
				e.Selection.SelectSingle(hit.Node)
			}
			e.StatusText = fmt.Sprintf("Selected: %s", hit.Node.Name)
		} else if !e.Input.ShiftDown {
			e.Selection.Clear()
			e.StatusText = "Selection cleared"
		}
	}
}

func (e *Editor) deleteSelected() {
	for _, node := range e.Selection.Objects {
		cmd := NewDeleteNodeCommand(e.Scene, node)
		e.History.Do(cmd)
	}
	e.Selection.Clear()
	e.StatusText = "Deleted"
}

func (e *Editor) duplicateSelected() {
	for _, node := range e.Selection.Objects {
		cmd := NewDuplicateNodeCommand(e.Scene, node)
		e.History.Do(cmd)
	}
	e.StatusText = "Duplicated"
}

func (e *Editor) activeLight() *shading.Light {
	idx := e.Selection.ActiveLight
	if idx < 0 || idx >= len(e.Scene.Lights) {
		return nil
	}
	return e.Scene.Lights[idx]
}

// GetStats returns scene statistics for the status bar
func (e *Editor) GetStats() (objectCount, vertexCount, faceCount int) {
	e.Scene.Root.Traverse(func(n *scene.Node) {
		if n.Mesh != nil {
			objectCount++
			vertexCount += len(n.Mesh.Vertices)
			faceCount += len(n.Mesh.Indices) / 3
		}
	})
	return
}

// OverlayLines builds the text lines for the on-screen info panel
func (e *Editor) OverlayLines() []string {
	lines := make([]string, 0, 12)

	cam := &e.OrbitCamera.Camera
	lines = append(lines,
		fmt.Sprintf("Camera: (%.1f, %.1f, %.1f) fov %.0f near %.2f far %.0f",
			cam.Position.X, cam.Position.Y, cam.Position.Z,
			cam.FOV*57.2958, cam.NearPlane, cam.FarPlane),
	)

	objects, verts, faces := e.GetStats()
	lines = append(lines, fmt.Sprintf("Objects: %d  Verts: %d  Tris: %d", objects, verts, faces))

	if node := e.Selection.ActiveObject; node != nil {
		p := node.Transform.Position
		s := node.Transform.Scale
		lines = append(lines, fmt.Sprintf("Selected: %s  pos (%.1f, %.1f, %.1f)  scale (%.1f, %.1f, %.1f)",
			node.Name, p.X, p.Y, p.Z, s.X, s.Y, s.Z))
		if node.Mesh != nil && node.Mesh.Material != nil {
			m := node.Mesh.Material
			lines = append(lines, fmt.Sprintf("Material: %s  rough %.2f  metal %.2f", m.Name, m.Roughness, m.Metallic))
		}
	}

	if light := e.activeLight(); light != nil {
		lines = append(lines, fmt.Sprintf("Light %d: %s  intensity %.2f  range %.1f  shadows %v",
			e.Selection.ActiveLight, lightTypeName(light.Type), light.Intensity, light.Range, light.CastsShadows))
	}

	lines = append(lines, "Status: "+e.StatusText)
	return lines
}

func lightTypeName(t shading.LightType) string {
	switch t {
	case shading.LightDirectional:
		return "directional"
	case shading.LightPoint:
		return "point"
	case shading.LightSpot:
		return "spot"
	}
	return "unknown"
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
