package scene

import (
	"pbr-demo/math"
	"pbr-demo/shading"
	"pbr-demo/textures"
)

// Scene manages a collection of nodes, the light list, the sky environment,
// and the active camera.
type Scene struct {
	Root   *Node
	Camera *Camera
	Lights []*shading.Light

	// Sky is the environment cube map used for indirect light and
	// reflections. Its mip chain is prefiltered per roughness level.
	Sky               *textures.CubeMap
	IndirectIntensity float32
}

func NewScene() *Scene {
	return &Scene{
		Root:              NewNode("Root"),
		Lights:            make([]*shading.Light, 0),
		IndirectIntensity: 1,
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	s.Root.RemoveChild(node)
}

func (s *Scene) AddLight(light *shading.Light) {
	s.Lights = append(s.Lights, light)
}

func (s *Scene) RemoveLight(light *shading.Light) {
	for i, l := range s.Lights {
		if l == light {
			s.Lights = append(s.Lights[:i], s.Lights[i+1:]...)
			return
		}
	}
}

func (s *Scene) Update(deltaTime float32) {
	if s.Root != nil {
		s.Root.Update(deltaTime)
	}
}

// GetVisibleNodes returns all nodes with meshes that are visible
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node

	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Mesh != nil {
			visible = append(visible, node)
		}
	})

	return visible
}

// ShadowCasters returns the active lights that cast shadows, in light-list
// order. The order matters: shadow map slots are assigned by walking this
// list the same way the shading pass does.
func (s *Scene) ShadowCasters() []*shading.Light {
	var casters []*shading.Light
	for _, l := range s.Lights {
		if l.CastsShadows {
			casters = append(casters, l)
		}
	}
	return casters
}

// CreateDefaultScene builds a scene with a camera and a sun light.
func CreateDefaultScene() *Scene {
	scene := NewScene()

	camera := NewCamera(1.0472, 16.0/9.0, 0.1, 1000.0) // 60 degrees FOV
	camera.SetPosition(math.Vec3{X: 0, Y: 2, Z: 5})
	camera.LookAt(math.Vec3Zero, math.Vec3Up)
	scene.SetCamera(camera)

	sun := shading.NewDirectionalLight(
		math.Vec3{X: 0.5, Y: -1, Z: -0.5},
		math.Vec3One,
		0.8,
	)
	sun.CastsShadows = true
	scene.AddLight(&sun)

	return scene
}
