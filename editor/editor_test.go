package editor

import (
	"testing"

	"pbr-demo/materials"
	"pbr-demo/math"
	"pbr-demo/scene"
	"pbr-demo/shading"
)

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10)
	node := scene.NewNode("box")

	h.Do(NewMoveCommand(node, math.Vec3{X: 5}))
	if node.Transform.Position.X != 5 {
		t.Fatalf("expected x=5 after move, got %v", node.Transform.Position.X)
	}

	if !h.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if node.Transform.Position.X != 0 {
		t.Errorf("expected x=0 after undo, got %v", node.Transform.Position.X)
	}

	if !h.Redo() {
		t.Fatal("expected redo to succeed")
	}
	if node.Transform.Position.X != 5 {
		t.Errorf("expected x=5 after redo, got %v", node.Transform.Position.X)
	}
}

func TestHistoryClearsRedoOnNewAction(t *testing.T) {
	h := NewHistory(10)
	node := scene.NewNode("box")

	h.Do(NewMoveCommand(node, math.Vec3{X: 1}))
	h.Undo()
	h.Do(NewMoveCommand(node, math.Vec3{X: 2}))

	if h.CanRedo() {
		t.Error("redo stack should be cleared after a new action")
	}
}

func TestHistoryMaxDepth(t *testing.T) {
	h := NewHistory(2)
	node := scene.NewNode("box")

	h.Do(NewMoveCommand(node, math.Vec3{X: 1}))
	h.Do(NewMoveCommand(node, math.Vec3{X: 2}))
	h.Do(NewMoveCommand(node, math.Vec3{X: 3}))

	// Oldest entry dropped, only two undos available
	if !h.Undo() || !h.Undo() {
		t.Fatal("expected two undos")
	}
	if h.Undo() {
		t.Error("expected third undo to fail at max depth 2")
	}
}

func TestDeleteNodeCommandRestoresParent(t *testing.T) {
	s := scene.NewScene()
	parent := scene.NewNode("parent")
	child := scene.NewNode("child")
	s.AddNode(parent)
	parent.AddChild(child)

	cmd := NewDeleteNodeCommand(s, child)
	cmd.Execute()
	if child.Parent != nil {
		t.Error("expected child detached after delete")
	}

	cmd.Undo()
	if child.Parent != parent {
		t.Error("expected child reattached to original parent after undo")
	}
}

func TestDuplicateNodeSharesMesh(t *testing.T) {
	s := scene.NewScene()
	original := scene.NewNode("cube")
	original.Mesh = scene.CreateCube(1)
	s.AddNode(original)

	cmd := NewDuplicateNodeCommand(s, original)
	cmd.Execute()

	if cmd.Duplicate.Mesh != original.Mesh {
		t.Error("duplicate should share the original mesh")
	}
	if cmd.Duplicate.Transform.Position == original.Transform.Position {
		t.Error("duplicate should be offset from the original")
	}

	cmd.Undo()
	if s.Root.Find("cube.copy") != nil {
		t.Error("duplicate should be removed after undo")
	}
}

func TestLightEditCommand(t *testing.T) {
	light := shading.NewPointLight(math.Vec3{Y: 3}, math.Vec3One, 2.0, 10)

	edited := light
	edited.Intensity = 5.0
	edited.CastsShadows = true

	cmd := NewLightEditCommand(&light, edited, "edit")
	cmd.Execute()
	if light.Intensity != 5.0 || !light.CastsShadows {
		t.Errorf("expected edited light applied, got intensity=%v shadows=%v", light.Intensity, light.CastsShadows)
	}

	cmd.Undo()
	if light.Intensity != 2.0 || light.CastsShadows {
		t.Errorf("expected original light restored, got intensity=%v shadows=%v", light.Intensity, light.CastsShadows)
	}
}

func TestMaterialEditCommand(t *testing.T) {
	mat := materials.New("test")
	cmd := NewMaterialEditCommand(mat, 0.9, 1.0, mat.ColorTint, "edit")

	cmd.Execute()
	if mat.Roughness != 0.9 || mat.Metallic != 1.0 {
		t.Errorf("expected rough=0.9 metal=1.0, got %v %v", mat.Roughness, mat.Metallic)
	}

	cmd.Undo()
	if mat.Roughness != 0.5 || mat.Metallic != 0 {
		t.Errorf("expected defaults restored, got %v %v", mat.Roughness, mat.Metallic)
	}
}

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()
	a := scene.NewNode("a")
	b := scene.NewNode("b")

	sel.SelectSingle(a)
	sel.ToggleObject(b)
	if len(sel.Objects) != 2 || sel.ActiveObject != b {
		t.Fatalf("expected 2 selected with b active, got %d active=%v", len(sel.Objects), sel.ActiveObject)
	}

	sel.ToggleObject(b)
	if len(sel.Objects) != 1 || sel.ActiveObject != a {
		t.Errorf("expected a active after removing b, got %d active=%v", len(sel.Objects), sel.ActiveObject)
	}
}

func TestSelectionCycleLight(t *testing.T) {
	sel := NewSelection()
	if sel.ActiveLight != -1 {
		t.Fatalf("expected no light selected initially, got %d", sel.ActiveLight)
	}

	sel.CycleLight(2)
	if sel.ActiveLight != 0 {
		t.Errorf("expected light 0, got %d", sel.ActiveLight)
	}
	sel.CycleLight(2)
	if sel.ActiveLight != 1 {
		t.Errorf("expected light 1, got %d", sel.ActiveLight)
	}
	sel.CycleLight(2)
	if sel.ActiveLight != -1 {
		t.Errorf("expected wrap back to none, got %d", sel.ActiveLight)
	}

	sel.CycleLight(0)
	if sel.ActiveLight != -1 {
		t.Errorf("expected none with zero lights, got %d", sel.ActiveLight)
	}
}

func TestSelectionCenter(t *testing.T) {
	sel := NewSelection()
	a := scene.NewNode("a")
	a.SetPosition(math.Vec3{X: 2})
	b := scene.NewNode("b")
	b.SetPosition(math.Vec3{X: 4})

	sel.SelectSingle(a)
	sel.ToggleObject(b)

	center := sel.GetSelectionCenter()
	if center.X != 3 {
		t.Errorf("expected center x=3, got %v", center.X)
	}
}

func TestScreenToRayCenterPointsForward(t *testing.T) {
	cam := scene.NewCamera(1.0472, 16.0/9.0, 0.1, 100)
	cam.SetPosition(math.Vec3{Z: 5})

	ray := ScreenToRay(640, 360, 1280, 720, cam)

	if ray.Origin != cam.Position {
		t.Errorf("ray origin should be camera position, got %v", ray.Origin)
	}
	// Camera looks down -Z by default
	if ray.Direction.Z >= -0.99 {
		t.Errorf("center ray should point along -Z, got %v", ray.Direction)
	}
}

func TestScreenToRayEdgesDiverge(t *testing.T) {
	cam := scene.NewCamera(1.0472, 1.0, 0.1, 100)

	left := ScreenToRay(0, 360, 1280, 720, cam)
	right := ScreenToRay(1280, 360, 1280, 720, cam)

	if left.Direction.X >= 0 {
		t.Errorf("left edge ray should point left, got %v", left.Direction)
	}
	if right.Direction.X <= 0 {
		t.Errorf("right edge ray should point right, got %v", right.Direction)
	}
}

func TestRaycastHitsCube(t *testing.T) {
	s := scene.NewScene()
	node := scene.NewNode("cube")
	node.Mesh = scene.CreateCube(2)
	s.AddNode(node)

	ray := Ray{
		Origin:    math.Vec3{Z: 5},
		Direction: math.Vec3{Z: -1},
	}
	hit := RaycastScene(ray, s)
	if !hit.Hit {
		t.Fatal("expected ray to hit the cube")
	}
	if hit.Node != node {
		t.Errorf("expected hit on cube node, got %v", hit.Node)
	}
	// Front face of a size-2 cube sits at z=1, camera at z=5
	if hit.Distance < 3.9 || hit.Distance > 4.1 {
		t.Errorf("expected hit distance ~4, got %v", hit.Distance)
	}
}

func TestRaycastMisses(t *testing.T) {
	s := scene.NewScene()
	node := scene.NewNode("cube")
	node.Mesh = scene.CreateCube(1)
	s.AddNode(node)

	ray := Ray{
		Origin:    math.Vec3{X: 10, Z: 5},
		Direction: math.Vec3{Z: -1},
	}
	hit := RaycastScene(ray, s)
	if hit.Hit {
		t.Error("expected ray to miss the cube")
	}
}

func TestRayAABBIntersect(t *testing.T) {
	aabb := AABB{
		Min: math.Vec3{X: -1, Y: -1, Z: -1},
		Max: math.Vec3{X: 1, Y: 1, Z: 1},
	}

	ray := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	tHit, hit := rayAABBIntersect(ray, aabb)
	if !hit {
		t.Fatal("expected hit")
	}
	if tHit < 3.9 || tHit > 4.1 {
		t.Errorf("expected t ~4, got %v", tHit)
	}

	miss := Ray{Origin: math.Vec3{X: 5, Z: 5}, Direction: math.Vec3{Z: -1}}
	if _, hit := rayAABBIntersect(miss, aabb); hit {
		t.Error("expected miss")
	}
}

func TestMollerTrumbore(t *testing.T) {
	v0 := math.Vec3{X: -1, Y: -1}
	v1 := math.Vec3{X: 1, Y: -1}
	v2 := math.Vec3{Y: 1}

	ray := Ray{Origin: math.Vec3{Z: 2}, Direction: math.Vec3{Z: -1}}
	tHit, hit := mollerTrumbore(ray, v0, v1, v2)
	if !hit {
		t.Fatal("expected hit through triangle center")
	}
	if tHit < 1.99 || tHit > 2.01 {
		t.Errorf("expected t=2, got %v", tHit)
	}

	outside := Ray{Origin: math.Vec3{X: 5, Z: 2}, Direction: math.Vec3{Z: -1}}
	if _, hit := mollerTrumbore(outside, v0, v1, v2); hit {
		t.Error("expected miss outside triangle")
	}
}
