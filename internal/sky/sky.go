// Package sky bakes a procedural gradient sky into an environment cube map.
// The baked mip chain doubles as the roughness prefilter for reflections.
package sky

import (
	"pbr-demo/core"
	"pbr-demo/math"
	"pbr-demo/textures"
)

// Gradient is a three-stop vertical sky gradient.
// zenith = overhead, horizon = eye-level, ground = below the horizon.
type Gradient struct {
	Zenith  core.Color
	Horizon core.Color
	Ground  core.Color
}

// DefaultGradient is a clear blue sky over warm brown ground.
func DefaultGradient() Gradient {
	return Gradient{
		Zenith:  core.Color{R: 0.10, G: 0.30, B: 0.70, A: 1},
		Horizon: core.Color{R: 0.60, G: 0.80, B: 1.00, A: 1},
		Ground:  core.Color{R: 0.30, G: 0.25, B: 0.20, A: 1},
	}
}

// Color evaluates the gradient along a view direction. Above the horizon the
// zenith blends in on a power curve; below it the ground fades in quickly.
func (g Gradient) Color(dir math.Vec3) core.Color {
	t := dir.Normalize().Y
	if t >= 0 {
		return g.Horizon.Lerp(g.Zenith, math.Pow(t, 0.4))
	}
	return g.Horizon.Lerp(g.Ground, math.Min(-t*3, 1))
}

// Bake renders the gradient into a cube map with size x size faces. The mip
// chain generated per face serves as the prefiltered environment for rough
// reflections.
func (g Gradient) Bake(name string, size int) *textures.CubeMap {
	var faces [textures.CubeFaceCount]*textures.Texture2D

	for face := 0; face < textures.CubeFaceCount; face++ {
		pixels := make([]uint8, size*size*4)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				u := (float32(x) + 0.5) / float32(size)
				v := (float32(y) + 0.5) / float32(size)
				dir := FaceDirection(face, math.Vec2{X: u, Y: v})
				c := g.Color(dir)

				i := (y*size + x) * 4
				pixels[i] = colorByte(c.R)
				pixels[i+1] = colorByte(c.G)
				pixels[i+2] = colorByte(c.B)
				pixels[i+3] = 255
			}
		}
		faces[face] = textures.NewTexture2D(name, size, size, pixels)
	}

	return textures.NewCubeMap(name, faces)
}

// FaceDirection maps an in-face UV back to a world direction. It is the
// inverse of the face selection used when sampling, so baked texels land
// where the lookup expects them.
func FaceDirection(face int, uv math.Vec2) math.Vec3 {
	sc := uv.X*2 - 1
	tc := uv.Y*2 - 1

	var dir math.Vec3
	switch face {
	case textures.CubeFacePosX:
		dir = math.Vec3{X: 1, Y: -tc, Z: -sc}
	case textures.CubeFaceNegX:
		dir = math.Vec3{X: -1, Y: -tc, Z: sc}
	case textures.CubeFacePosY:
		dir = math.Vec3{X: sc, Y: 1, Z: tc}
	case textures.CubeFaceNegY:
		dir = math.Vec3{X: sc, Y: -1, Z: -tc}
	case textures.CubeFacePosZ:
		dir = math.Vec3{X: sc, Y: -tc, Z: 1}
	default:
		dir = math.Vec3{X: -sc, Y: -tc, Z: -1}
	}
	return dir.Normalize()
}

func colorByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
