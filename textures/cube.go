package textures

import (
	"pbr-demo/math"
)

// Cube face indices in the canonical +X,-X,+Y,-Y,+Z,-Z order.
const (
	CubeFacePosX = iota
	CubeFaceNegX
	CubeFacePosY
	CubeFaceNegY
	CubeFacePosZ
	CubeFaceNegZ
	CubeFaceCount
)

// CubeFaceAxis returns the outward axis direction of the given face.
func CubeFaceAxis(face int) math.Vec3 {
	switch face {
	case CubeFacePosX:
		return math.Vec3Right
	case CubeFaceNegX:
		return math.Vec3Left
	case CubeFacePosY:
		return math.Vec3Up
	case CubeFaceNegY:
		return math.Vec3Down
	case CubeFacePosZ:
		return math.Vec3Front
	default:
		return math.Vec3Back
	}
}

// CubeMap is six square Texture2D faces sharing one mip chain layout.
// Used both as the environment sky map (mips prefiltered per roughness)
// and for sampling by direction vector.
type CubeMap struct {
	Name  string
	Faces [CubeFaceCount]*Texture2D
}

// NewCubeMap wraps six equally sized face textures. Faces must already be
// ordered +X,-X,+Y,-Y,+Z,-Z.
func NewCubeMap(name string, faces [CubeFaceCount]*Texture2D) *CubeMap {
	return &CubeMap{Name: name, Faces: faces}
}

// MipCount returns the number of mip levels per face.
func (c *CubeMap) MipCount() int {
	return c.Faces[0].MipCount()
}

// SelectFace returns the face whose axis is most aligned with dir, plus the
// in-face UV for sampling. Standard cube mapping: the dominant component of
// dir picks the face, the remaining two become the UV after the divide.
func SelectFace(dir math.Vec3) (face int, uv math.Vec2) {
	ax := math.Abs(dir.X)
	ay := math.Abs(dir.Y)
	az := math.Abs(dir.Z)

	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if dir.X > 0 {
			face, sc, tc = CubeFacePosX, -dir.Z, -dir.Y
		} else {
			face, sc, tc = CubeFaceNegX, dir.Z, -dir.Y
		}
	case ay >= az:
		ma = ay
		if dir.Y > 0 {
			face, sc, tc = CubeFacePosY, dir.X, dir.Z
		} else {
			face, sc, tc = CubeFaceNegY, dir.X, -dir.Z
		}
	default:
		ma = az
		if dir.Z > 0 {
			face, sc, tc = CubeFacePosZ, dir.X, -dir.Y
		} else {
			face, sc, tc = CubeFaceNegZ, -dir.X, -dir.Y
		}
	}

	if ma == 0 {
		return face, math.Vec2{X: 0.5, Y: 0.5}
	}
	uv = math.Vec2{
		X: (sc/ma + 1) * 0.5,
		Y: (tc/ma + 1) * 0.5,
	}
	return face, uv
}

// SampleLevel samples the cube map in the given direction at a fractional
// mip level, trilinear within the selected face.
func (c *CubeMap) SampleLevel(s Sampler, dir math.Vec3, level float32) math.Vec4 {
	face, uv := SelectFace(dir.Normalize())
	return s.SampleLevel(c.Faces[face], uv, level)
}
