package scene

import (
	"github.com/chewxy/math32"

	"pbr-demo/core"
	"pbr-demo/math"
)

// CreateSphere generates a UV-sphere mesh
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var vertices []core.Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi := math32.Sin(phi)
		cosPhi := math32.Cos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta := math32.Sin(theta)
			cosTheta := math32.Cos(theta)

			normal := math.Vec3{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			position := normal.Mul(radius)
			uv := math.Vec2{X: float32(seg) / float32(segments), Y: float32(ring) / float32(rings)}

			vertices = append(vertices, core.Vertex{
				Position: position,
				Normal:   normal,
				UV:       uv,
				Color:    core.ColorWhite,
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	mesh := CreateMeshFromData("Sphere", vertices, indices)
	ComputeTangents(mesh)
	return mesh
}

// CreateCylinder generates a cylinder mesh
func CreateCylinder(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32
	halfHeight := height / 2

	for i := 0; i <= segments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(segments)
		cosT := math32.Cos(theta)
		sinT := math32.Sin(theta)
		normal := math.Vec3{X: cosT, Y: 0, Z: sinT}
		u := float32(i) / float32(segments)

		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{X: cosT * radius, Y: -halfHeight, Z: sinT * radius},
			Normal:   normal,
			UV:       math.Vec2{X: u, Y: 0},
			Color:    core.ColorWhite,
		})
		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{X: cosT * radius, Y: halfHeight, Z: sinT * radius},
			Normal:   normal,
			UV:       math.Vec2{X: u, Y: 1},
			Color:    core.ColorWhite,
		})
	}

	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+1, base+2)
		indices = append(indices, base+2, base+1, base+3)
	}

	addCap := func(y float32, normal math.Vec3, flip bool) {
		center := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{Y: y},
			Normal:   normal,
			UV:       math.Vec2{X: 0.5, Y: 0.5},
			Color:    core.ColorWhite,
		})
		for i := 0; i < segments; i++ {
			theta := float32(i) * 2 * math32.Pi / float32(segments)
			nextTheta := float32(i+1) * 2 * math32.Pi / float32(segments)
			cosT := math32.Cos(theta)
			sinT := math32.Sin(theta)
			cosN := math32.Cos(nextTheta)
			sinN := math32.Sin(nextTheta)

			v1 := uint32(len(vertices))
			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: cosT * radius, Y: y, Z: sinT * radius},
				Normal:   normal,
				UV:       math.Vec2{X: cosT*0.5 + 0.5, Y: sinT*0.5 + 0.5},
				Color:    core.ColorWhite,
			})
			v2 := uint32(len(vertices))
			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: cosN * radius, Y: y, Z: sinN * radius},
				Normal:   normal,
				UV:       math.Vec2{X: cosN*0.5 + 0.5, Y: sinN*0.5 + 0.5},
				Color:    core.ColorWhite,
			})
			if flip {
				indices = append(indices, center, v2, v1)
			} else {
				indices = append(indices, center, v1, v2)
			}
		}
	}

	addCap(halfHeight, math.Vec3Up, false)
	addCap(-halfHeight, math.Vec3Down, true)

	mesh := CreateMeshFromData("Cylinder", vertices, indices)
	ComputeTangents(mesh)
	return mesh
}

// CreateCone generates a cone mesh
func CreateCone(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32
	halfHeight := height / 2

	tipIdx := uint32(0)
	vertices = append(vertices, core.Vertex{
		Position: math.Vec3{Y: halfHeight},
		Normal:   math.Vec3Up,
		UV:       math.Vec2{X: 0.5, Y: 0},
		Color:    core.ColorWhite,
	})

	slopeAngle := math32.Atan2(radius, height)
	ny := math32.Cos(slopeAngle)
	nr := math32.Sin(slopeAngle)

	for i := 0; i <= segments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(segments)
		cosT := math32.Cos(theta)
		sinT := math32.Sin(theta)
		normal := math.Vec3{X: cosT * nr, Y: ny, Z: sinT * nr}.Normalize()

		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{X: cosT * radius, Y: -halfHeight, Z: sinT * radius},
			Normal:   normal,
			UV:       math.Vec2{X: float32(i) / float32(segments), Y: 1},
			Color:    core.ColorWhite,
		})
	}

	for i := 0; i < segments; i++ {
		indices = append(indices, tipIdx, uint32(i+1), uint32(i+2))
	}

	botCenter := uint32(len(vertices))
	vertices = append(vertices, core.Vertex{
		Position: math.Vec3{Y: -halfHeight},
		Normal:   math.Vec3Down,
		UV:       math.Vec2{X: 0.5, Y: 0.5},
		Color:    core.ColorWhite,
	})

	for i := 0; i < segments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(segments)
		nextTheta := float32(i+1) * 2 * math32.Pi / float32(segments)
		cosT := math32.Cos(theta)
		sinT := math32.Sin(theta)
		cosN := math32.Cos(nextTheta)
		sinN := math32.Sin(nextTheta)

		v1 := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{X: cosT * radius, Y: -halfHeight, Z: sinT * radius},
			Normal:   math.Vec3Down,
			UV:       math.Vec2{X: cosT*0.5 + 0.5, Y: sinT*0.5 + 0.5},
			Color:    core.ColorWhite,
		})
		v2 := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{X: cosN * radius, Y: -halfHeight, Z: sinN * radius},
			Normal:   math.Vec3Down,
			UV:       math.Vec2{X: cosN*0.5 + 0.5, Y: sinN*0.5 + 0.5},
			Color:    core.ColorWhite,
		})
		indices = append(indices, botCenter, v2, v1)
	}

	mesh := CreateMeshFromData("Cone", vertices, indices)
	ComputeTangents(mesh)
	return mesh
}

// CreateTorus generates a torus mesh
func CreateTorus(majorRadius, minorRadius float32, majorSegments, minorSegments int) *Mesh {
	if majorSegments < 3 {
		majorSegments = 3
	}
	if minorSegments < 3 {
		minorSegments = 3
	}

	var vertices []core.Vertex
	var indices []uint32

	for i := 0; i <= majorSegments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(majorSegments)
		cosTheta := math32.Cos(theta)
		sinTheta := math32.Sin(theta)

		for j := 0; j <= minorSegments; j++ {
			phi := float32(j) * 2 * math32.Pi / float32(minorSegments)
			cosPhi := math32.Cos(phi)
			sinPhi := math32.Sin(phi)

			x := (majorRadius + minorRadius*cosPhi) * cosTheta
			y := minorRadius * sinPhi
			z := (majorRadius + minorRadius*cosPhi) * sinTheta

			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: x, Y: y, Z: z},
				Normal:   math.Vec3{X: cosPhi * cosTheta, Y: sinPhi, Z: cosPhi * sinTheta}.Normalize(),
				UV:       math.Vec2{X: float32(i) / float32(majorSegments), Y: float32(j) / float32(minorSegments)},
				Color:    core.ColorWhite,
			})
		}
	}

	for i := 0; i < majorSegments; i++ {
		for j := 0; j < minorSegments; j++ {
			current := uint32(i*(minorSegments+1) + j)
			next := uint32((i+1)*(minorSegments+1) + j)

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	mesh := CreateMeshFromData("Torus", vertices, indices)
	ComputeTangents(mesh)
	return mesh
}

// CreatePlane generates a flat plane mesh
func CreatePlane(width, depth float32, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}

	var vertices []core.Vertex
	var indices []uint32

	halfW := width / 2
	halfD := depth / 2

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)

			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{
					X: -halfW + u*width,
					Y: 0,
					Z: -halfD + v*depth,
				},
				Normal: math.Vec3Up,
				UV:     math.Vec2{X: u, Y: v},
				Color:  core.ColorWhite,
			})
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := uint32(z*(subdivisions+1) + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(subdivisions+1)
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	mesh := CreateMeshFromData("Plane", vertices, indices)
	ComputeTangents(mesh)
	return mesh
}
