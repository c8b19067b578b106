package main

import (
	"fmt"

	"github.com/chewxy/math32"

	"pbr-demo/core"
	"pbr-demo/internal/sky"
	"pbr-demo/math"
	"pbr-demo/scene"
	"pbr-demo/shading"
)

// dayPalette holds the sky and sun values for one key time of day.
type dayPalette struct {
	t            float32 // normalised time 0..1
	zenith       core.Color
	horizon      core.Color
	ground       core.Color
	sunColor     math.Vec3
	sunIntensity float32
	indirect     float32 // scene indirect light scale
}

// palettes defines the key sky/light states throughout the day.
// t is ordered 0 to 1 and wraps (0 == 1).
var palettes = []dayPalette{
	{ // 0.00 noon
		t:            0.00,
		zenith:       core.Color{R: 0.20, G: 0.42, B: 0.90, A: 1},
		horizon:      core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1},
		ground:       core.Color{R: 0.12, G: 0.10, B: 0.08, A: 1},
		sunColor:     math.Vec3{X: 1.00, Y: 0.98, Z: 0.92},
		sunIntensity: 1.20,
		indirect:     1.0,
	},
	{ // 0.22 golden hour
		t:            0.22,
		zenith:       core.Color{R: 0.14, G: 0.20, B: 0.60, A: 1},
		horizon:      core.Color{R: 0.90, G: 0.52, B: 0.18, A: 1},
		ground:       core.Color{R: 0.08, G: 0.07, B: 0.06, A: 1},
		sunColor:     math.Vec3{X: 1.00, Y: 0.65, Z: 0.25},
		sunIntensity: 0.90,
		indirect:     0.7,
	},
	{ // 0.30 dusk
		t:            0.30,
		zenith:       core.Color{R: 0.08, G: 0.10, B: 0.28, A: 1},
		horizon:      core.Color{R: 0.50, G: 0.22, B: 0.28, A: 1},
		ground:       core.Color{R: 0.04, G: 0.03, B: 0.04, A: 1},
		sunColor:     math.Vec3{X: 0.70, Y: 0.40, Z: 0.55},
		sunIntensity: 0.25,
		indirect:     0.4,
	},
	{ // 0.50 midnight (moonlight)
		t:            0.50,
		zenith:       core.Color{R: 0.02, G: 0.03, B: 0.10, A: 1},
		horizon:      core.Color{R: 0.04, G: 0.04, B: 0.08, A: 1},
		ground:       core.Color{R: 0.01, G: 0.01, B: 0.02, A: 1},
		sunColor:     math.Vec3{X: 0.40, Y: 0.45, Z: 0.65},
		sunIntensity: 0.12,
		indirect:     0.2,
	},
	{ // 0.70 pre-dawn
		t:            0.70,
		zenith:       core.Color{R: 0.06, G: 0.08, B: 0.25, A: 1},
		horizon:      core.Color{R: 0.40, G: 0.18, B: 0.24, A: 1},
		ground:       core.Color{R: 0.03, G: 0.03, B: 0.04, A: 1},
		sunColor:     math.Vec3{X: 0.75, Y: 0.42, Z: 0.60},
		sunIntensity: 0.20,
		indirect:     0.35,
	},
	{ // 0.80 sunrise
		t:            0.80,
		zenith:       core.Color{R: 0.15, G: 0.25, B: 0.65, A: 1},
		horizon:      core.Color{R: 0.95, G: 0.60, B: 0.30, A: 1},
		ground:       core.Color{R: 0.08, G: 0.07, B: 0.06, A: 1},
		sunColor:     math.Vec3{X: 1.00, Y: 0.75, Z: 0.40},
		sunIntensity: 0.80,
		indirect:     0.6,
	},
}

// DayNight drives the sun and the baked environment through a repeating day.
type DayNight struct {
	Time    float32 // normalised 0..1, 0 = noon
	Speed   float32 // seconds per full day
	Active  bool
	SkySize int // face resolution for the baked environment
}

func NewDayNight() *DayNight {
	return &DayNight{
		Speed:   120,
		Active:  true,
		SkySize: 32,
	}
}

func (dn *DayNight) Update(dt float32) {
	if !dn.Active {
		return
	}
	dn.Time += dt / dn.Speed
	if dn.Time > 1.0 {
		dn.Time -= 1.0
	}
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return a.Lerp(b, t)
}

// samplePalette returns a linearly interpolated palette for time t (0..1).
func samplePalette(t float32) dayPalette {
	n := len(palettes)
	var a, b dayPalette
	var localT float32
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		ta := palettes[i].t
		tb := palettes[next].t
		if next == 0 {
			// Wrap segment: last key back to the first
			tb = 1.0
			if t >= ta || t < palettes[0].t {
				a = palettes[i]
				b = palettes[0]
				if t >= ta {
					localT = (t - ta) / (tb - ta)
				} else {
					localT = (t + 1.0 - ta) / (tb - ta)
				}
				break
			}
		} else if t >= ta && t < tb {
			a = palettes[i]
			b = palettes[next]
			localT = (t - ta) / (tb - ta)
			break
		}
	}

	return dayPalette{
		zenith:       lerpColor(a.zenith, b.zenith, localT),
		horizon:      lerpColor(a.horizon, b.horizon, localT),
		ground:       lerpColor(a.ground, b.ground, localT),
		sunColor:     a.sunColor.Lerp(b.sunColor, localT),
		sunIntensity: math.Lerp(a.sunIntensity, b.sunIntensity, localT),
		indirect:     math.Lerp(a.indirect, b.indirect, localT),
	}
}

// Apply pushes the current time's sky and sun state to the scene: the sun
// light is steered along its arc and the environment cube map is re-baked
// from the gradient.
func (dn *DayNight) Apply(s *scene.Scene, sun *shading.Light) {
	p := samplePalette(dn.Time)

	// Sun arc: full rotation in the XY plane, tilted along Z.
	// -1 = noon (overhead), +1 = midnight.
	angle := dn.Time * 2 * math32.Pi
	sunDir := math.Vec3{
		X: math32.Sin(angle),
		Y: -math32.Cos(angle),
		Z: 0.35,
	}.Normalize()

	if sun != nil {
		sun.Direction = sunDir
		sun.Color = p.sunColor
		sun.Intensity = p.sunIntensity
	}

	g := sky.Gradient{Zenith: p.zenith, Horizon: p.horizon, Ground: p.ground}
	s.Sky = g.Bake("sky", dn.SkySize)
	s.IndirectIntensity = p.indirect
}

// TimeOfDayStr returns a human-readable time label.
func (dn *DayNight) TimeOfDayStr() string {
	hours := dn.Time * 24.0
	h := (int(hours) + 12) % 24 // t=0 is noon
	m := int((hours - float32(int(hours))) * 60)
	period := "AM"
	displayH := h
	if h == 0 {
		displayH = 12
	} else if h == 12 {
		period = "PM"
	} else if h > 12 {
		displayH = h - 12
		period = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", displayH, m, period)
}
