// Package geometry holds the pure scroll math: panel heights, per-slide
// scroll bounds and normalized progress. Everything here is side-effect free
// so it can be exercised directly by tests.
package geometry

import "math"

// Panel is a layout snapshot of one narrative block. Values come from the
// document and are read-only here.
type Panel struct {
	OffsetHeight  float64
	MarginTop     float64
	MarginBottom  float64
	PaddingBottom float64
}

// PanelHeight returns the effective scrollable height of panels[i].
// The first panel's top margin and the last panel's bottom padding are visual
// chrome and must not count toward scrollable distance; interior panels
// contribute both margins.
func PanelHeight(panels []Panel, i int) float64 {
	p := panels[i]
	switch {
	case i == 0:
		return p.OffsetHeight - p.MarginTop
	case i == len(panels)-1:
		return p.OffsetHeight - p.PaddingBottom
	default:
		return p.OffsetHeight + p.MarginTop + p.MarginBottom
	}
}

// Bounds is the scroll-pixel window of one slide.
type Bounds struct {
	Start float64
	End   float64
}

// ScrollBounds computes the scroll window of slide within panels, anchored at
// the scroll offset recorded when the narrative docked. With a NaN anchor the
// result is NaN; callers guard by checking the dock state first.
func ScrollBounds(panels []Panel, slide int, anchor float64) Bounds {
	start := anchor
	for i := 0; i < slide; i++ {
		start += PanelHeight(panels, i)
	}
	return Bounds{Start: start, End: start + PanelHeight(panels, slide)}
}

// Progress returns the normalized position of scrollY inside the slide's
// bounds, clamped to [0,1]. A degenerate panel (zero height) produces a
// non-finite value which is returned as-is; callers treat it as 0.
func Progress(panels []Panel, slide int, anchor, scrollY float64) float64 {
	b := ScrollBounds(panels, slide, anchor)
	r := (scrollY - b.Start) / (b.End - b.Start)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return r
	}
	return Clamp(r, 0, 1)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
