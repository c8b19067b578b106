package shading

import (
	"pbr-demo/math"
)

// LightType identifies the kind of light source. Exactly one type tag governs
// which Light fields are meaningful; consumers ignore the rest.
type LightType int32

const (
	// LightDirectional has a uniform direction and no position or falloff.
	LightDirectional LightType = iota
	// LightPoint emits in all directions from a position, attenuated by Range.
	LightPoint
	// LightSpot emits in a cone from a position along a direction.
	LightSpot
)

func (t LightType) String() string {
	switch t {
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	}
	return "invalid"
}

// Light is one light source as seen by the shading pass. Lights are authored
// once per frame snapshot and immutable during shading.
type Light struct {
	Type         LightType
	Direction    math.Vec3 // unit vector; directional and spot only
	Position     math.Vec3 // point and spot only
	Color        math.Vec3 // linear RGB
	Intensity    float32   // scalar >= 0
	Range        float32   // attenuation radius; point and spot only
	SpotFalloff  float32   // cone half-angle in radians; spot only
	CastsShadows bool
}

// NewDirectionalLight creates a directional light shining along dir.
func NewDirectionalLight(dir, color math.Vec3, intensity float32) Light {
	return Light{
		Type:      LightDirectional,
		Direction: dir.Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

// NewPointLight creates a point light at pos with the given attenuation range.
func NewPointLight(pos, color math.Vec3, intensity, lightRange float32) Light {
	return Light{
		Type:      LightPoint,
		Position:  pos,
		Color:     color,
		Intensity: intensity,
		Range:     lightRange,
	}
}

// NewSpotLight creates a spot light at pos shining along dir with the given
// cone half-angle.
func NewSpotLight(pos, dir, color math.Vec3, intensity, lightRange, falloff float32) Light {
	return Light{
		Type:        LightSpot,
		Position:    pos,
		Direction:   dir.Normalize(),
		Color:       color,
		Intensity:   intensity,
		Range:       lightRange,
		SpotFalloff: falloff,
	}
}

// Attenuate returns the distance falloff for point and spot lights at the
// given world position: clamp(1 - d^2/range^2, 0, 1) squared. The result is
// 1 at the light and reaches exactly 0 at distance >= Range.
func Attenuate(light Light, worldPos math.Vec3) float32 {
	distSqr := light.Position.Sub(worldPos).LengthSqr()
	rangeSqr := light.Range * light.Range
	if rangeSqr <= 0 {
		return 0
	}
	att := math.Saturate(1 - distSqr/rangeSqr)
	return att * att
}
