package scene

import (
	"os"
	"path/filepath"
	"testing"

	"pbr-demo/math"
	"pbr-demo/shading"
)

func TestNodeWorldMatrixComposition(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(math.Vec3{X: 10})

	child := NewNode("child")
	child.SetPosition(math.Vec3{X: 1})
	parent.AddChild(child)
	child.MarkWorldMatrixDirty()

	world := child.GetWorldMatrix()
	origin := world.MulVec3(math.Vec3Zero)
	if origin.X != 11 {
		t.Errorf("expected child origin at x=11, got %v", origin.X)
	}
}

func TestNodeFind(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.AddChild(a)
	a.AddChild(b)

	if root.Find("b") != b {
		t.Error("expected to find nested node b")
	}
	if root.Find("missing") != nil {
		t.Error("expected nil for missing node")
	}
}

func TestSceneLightManagement(t *testing.T) {
	s := NewScene()
	sun := shading.NewDirectionalLight(math.Vec3Down, math.Vec3One, 1)
	sun.CastsShadows = true
	point := shading.NewPointLight(math.Vec3Zero, math.Vec3One, 1, 10)

	s.AddLight(&sun)
	s.AddLight(&point)
	if len(s.Lights) != 2 {
		t.Fatalf("expected 2 lights, got %d", len(s.Lights))
	}

	casters := s.ShadowCasters()
	if len(casters) != 1 || casters[0] != &sun {
		t.Errorf("expected only the sun to cast shadows, got %d casters", len(casters))
	}

	s.RemoveLight(&sun)
	if len(s.Lights) != 1 || s.Lights[0] != &point {
		t.Error("expected only the point light to remain")
	}
}

func TestSphereMeshNormalsAndTangents(t *testing.T) {
	m := CreateSphere(2, 16, 8)
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		t.Fatal("sphere has no geometry")
	}
	for i, v := range m.Vertices {
		if d := v.Position.Length() - 2; d > 1e-4 || d < -1e-4 {
			t.Fatalf("vertex %d not on sphere surface: radius %v", i, v.Position.Length())
		}
		if v.Tangent.LengthSqr() < 0.9 {
			t.Fatalf("vertex %d tangent not normalized: %v", i, v.Tangent)
		}
		if dot := v.Tangent.Dot(v.Normal); dot > 1e-3 || dot < -1e-3 {
			t.Fatalf("vertex %d tangent not orthogonal to normal: %v", i, dot)
		}
	}
}

func TestMeshLocalAABB(t *testing.T) {
	m := CreateCube(2)
	if !m.HasLocalAABB {
		t.Fatal("cube missing local AABB")
	}
	expected := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	if m.LocalAABB != expected {
		t.Errorf("expected AABB %+v, got %+v", expected, m.LocalAABB)
	}
}

func TestFrustumCulling(t *testing.T) {
	cam := NewCamera(1.0472, 1, 0.1, 100)
	cam.SetPosition(math.Vec3{Z: 10})
	cam.LookAt(math.Vec3Zero, math.Vec3Up)
	f := FrustumFromVP(cam.GetViewProjectionMatrix())

	visible := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	if !visible.IntersectsFrustum(&f) {
		t.Error("box at origin should be inside the frustum")
	}

	behind := AABB{Min: math.Vec3{Z: 20}, Max: math.Vec3{X: 1, Y: 1, Z: 21}}
	if behind.IntersectsFrustum(&f) {
		t.Error("box behind the camera should be culled")
	}
}

func TestLoadOBJ(t *testing.T) {
	objSrc := `# triangle
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(path, []byte(objSrc), 0o644); err != nil {
		t.Fatal(err)
	}

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	m := meshes[0]
	if len(m.Vertices) != 3 || len(m.Indices) != 3 {
		t.Errorf("expected 3 vertices / 3 indices, got %d / %d", len(m.Vertices), len(m.Indices))
	}
	if m.Material == nil {
		t.Error("expected a default material")
	}
	if n := m.Vertices[0].Normal; n.Z != 1 {
		t.Errorf("expected normal +Z, got %+v", n)
	}
}

func TestLoadOBJQuadTriangulation(t *testing.T) {
	objSrc := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(path, []byte(objSrc), 0o644); err != nil {
		t.Fatal(err)
	}

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if got := len(meshes[0].Indices); got != 6 {
		t.Errorf("expected quad fan-triangulated into 6 indices, got %d", got)
	}
}

func TestLoadOBJWithMTL(t *testing.T) {
	dir := t.TempDir()
	mtlSrc := `newmtl shiny
Kd 1 0 0
Pr 0.2
Pm 1
`
	objSrc := `mtllib tri.mtl
usemtl shiny
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	if err := os.WriteFile(filepath.Join(dir, "tri.mtl"), []byte(mtlSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(path, []byte(objSrc), 0o644); err != nil {
		t.Fatal(err)
	}

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	mat := meshes[0].Material
	if mat.Name != "shiny" {
		t.Fatalf("expected material 'shiny', got %q", mat.Name)
	}
	if mat.ColorTint.X != 1 || mat.ColorTint.Y != 0 {
		t.Errorf("Kd not applied: %+v", mat.ColorTint)
	}
	if mat.Roughness != 0.2 {
		t.Errorf("Pr not applied: %v", mat.Roughness)
	}
	if mat.Metallic != 1 {
		t.Errorf("Pm not applied: %v", mat.Metallic)
	}
}
