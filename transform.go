package main

import "math"

// Transform maps scene coordinates to screen coordinates:
// screen = scene*Scale + Pan.
type Transform struct {
	PanX  float64
	PanY  float64
	Scale float64
}

type ZoomConfig struct {
	MinScale  float64
	MaxScale  float64
	Intensity float64
}

func DefaultZoomConfig() ZoomConfig {
	return ZoomConfig{
		MinScale:  defaultMinScale,
		MaxScale:  defaultMaxScale,
		Intensity: defaultZoomIntensity,
	}
}

func NewTransform() Transform {
	return Transform{Scale: 1}
}

func (t Transform) ScreenToScene(px, py float64) (float64, float64) {
	return (px - t.PanX) / t.Scale, (py - t.PanY) / t.Scale
}

func (t Transform) SceneToScreen(sx, sy float64) (float64, float64) {
	return sx*t.Scale + t.PanX, sy*t.Scale + t.PanY
}

func (c ZoomConfig) clamp(scale float64) float64 {
	return math.Min(c.MaxScale, math.Max(c.MinScale, scale))
}

// ZoomAt scales by (1+Intensity)^ticks around the screen point (px, py). The
// pan is derived from the clamped scale, so the scene point under the pointer
// stays under it even when a bound is hit.
func (t Transform) ZoomAt(px, py, ticks float64, cfg ZoomConfig) Transform {
	sx, sy := t.ScreenToScene(px, py)
	scale := cfg.clamp(t.Scale * math.Pow(1+cfg.Intensity, ticks))
	return Transform{
		PanX:  px - sx*scale,
		PanY:  py - sy*scale,
		Scale: scale,
	}
}

// PanBy translates by a screen-space delta; it is not divided by the scale.
func (t Transform) PanBy(dx, dy float64) Transform {
	t.PanX += dx
	t.PanY += dy
	return t
}

func (t Transform) Reset() Transform {
	return NewTransform()
}
