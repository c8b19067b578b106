package sky

import (
	"testing"

	"pbr-demo/math"
	"pbr-demo/textures"
)

func TestGradientStops(t *testing.T) {
	g := DefaultGradient()

	up := g.Color(math.Vec3Up)
	if up != g.Zenith {
		t.Errorf("straight up should be the zenith color, got %v", up)
	}

	down := g.Color(math.Vec3Down)
	if down != g.Ground {
		t.Errorf("straight down should be the ground color, got %v", down)
	}

	level := g.Color(math.Vec3{X: 1})
	if level != g.Horizon {
		t.Errorf("eye level should be the horizon color, got %v", level)
	}
}

func TestGradientGroundFadesFast(t *testing.T) {
	g := DefaultGradient()

	// Half a unit below the horizon is already fully ground
	c := g.Color(math.Vec3{X: 1, Y: -0.6})
	if c != g.Ground {
		t.Errorf("expected full ground well below the horizon, got %v", c)
	}
}

func TestFaceDirectionRoundTrip(t *testing.T) {
	// A direction baked into a face texel must select the same face and UV
	// when sampled back.
	for face := 0; face < textures.CubeFaceCount; face++ {
		uv := math.Vec2{X: 0.25, Y: 0.75}
		dir := FaceDirection(face, uv)

		gotFace, gotUV := textures.SelectFace(dir)
		if gotFace != face {
			t.Errorf("face %d: direction %v selected face %d", face, dir, gotFace)
			continue
		}
		if math.Abs(gotUV.X-uv.X) > 1e-4 || math.Abs(gotUV.Y-uv.Y) > 1e-4 {
			t.Errorf("face %d: uv %v round-tripped to %v", face, uv, gotUV)
		}
	}
}

func TestBakeProducesMipChain(t *testing.T) {
	env := DefaultGradient().Bake("sky", 32)

	if env.MipCount() != 6 {
		t.Errorf("expected 6 mip levels for 32px faces, got %d", env.MipCount())
	}

	s := textures.NewSampler("test")
	up := env.SampleLevel(s, math.Vec3Up, 0)
	down := env.SampleLevel(s, math.Vec3Down, 0)

	// Sky is blue overhead, brown underfoot
	if up.Z <= up.X {
		t.Errorf("zenith should be blue-dominant, got %v", up)
	}
	if down.X <= down.Z {
		t.Errorf("ground should be red-dominant, got %v", down)
	}
}

func TestBakeCoarsestMipIsUniform(t *testing.T) {
	env := DefaultGradient().Bake("sky", 16)
	s := textures.NewSampler("test")

	// Both directions land on the +X face; its 1x1 mip has one texel, so
	// the samples must match exactly.
	coarsest := float32(env.MipCount() - 1)
	a := env.SampleLevel(s, math.Vec3{X: 1, Y: 0.5, Z: 0.2}.Normalize(), coarsest)
	b := env.SampleLevel(s, math.Vec3{X: 1, Y: -0.1, Z: -0.4}.Normalize(), coarsest)
	if a != b {
		t.Errorf("coarsest mip should be direction-independent within a face: %v vs %v", a, b)
	}
}
