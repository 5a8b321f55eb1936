// Package choreography defines the keyframe slide model and the store that
// loads the ordered slide list. Slides are immutable once loaded; slide N in
// the narrative corresponds to index N in the choreography array.
package choreography

import "encoding/json"

// Slide is one keyframe step. Any subset of the fields may be present;
// absent fields are skipped by the playback side.
type Slide struct {
	Viewpoint       *Viewpoint      `json:"viewpoint,omitempty"`
	TimeSlider      *TimeSlider     `json:"timeSlider,omitempty"`
	Environment     *Environment    `json:"environment,omitempty"`
	LayerVisibility map[string]bool `json:"layerVisibility,omitempty"`
	TrackRenderer   json.RawMessage `json:"trackRenderer,omitempty"`
}

// Viewpoint describes either a 3D camera or a 2D extent target. Pointer
// fields distinguish "absent" from zero values so one-sided interpolation
// can fall back to the side that is present.
type Viewpoint struct {
	Camera         *Camera  `json:"camera,omitempty"`
	Rotation       *float64 `json:"rotation,omitempty"`
	Scale          *float64 `json:"scale,omitempty"`
	TargetGeometry *Extent  `json:"targetGeometry,omitempty"`
}

// Camera is a 3D camera pose.
type Camera struct {
	Position Position `json:"position"`
	Heading  float64  `json:"heading"`
	Tilt     float64  `json:"tilt"`
}

// Position is a camera location in map space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Extent is a bounding geometry.
type Extent struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// TimeSlider describes the visible time extent for a slide. Start and End
// are instant strings; Step/Unit describe the snapping granularity.
type TimeSlider struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Step  float64 `json:"step"`
	Unit  string  `json:"unit"`
}

// Environment bundles lighting, weather and sky toggles.
type Environment struct {
	Lighting          *Lighting `json:"lighting,omitempty"`
	Weather           *Weather  `json:"weather,omitempty"`
	AtmosphereEnabled *bool     `json:"atmosphereEnabled,omitempty"`
	StarsEnabled      *bool     `json:"starsEnabled,omitempty"`
}

// Lighting carries a discrete type plus an interpolatable datetime.
type Lighting struct {
	Type     string `json:"type,omitempty"`
	Datetime string `json:"datetime,omitempty"`
}

// Weather carries a discrete type plus magnitude fields. CloudCover and
// Precipitation are loosely typed on the wire (number or numeric string);
// the interpolation engine parses them defensively.
type Weather struct {
	Type          string `json:"type,omitempty"`
	CloudCover    any    `json:"cloudCover,omitempty"`
	Precipitation any    `json:"precipitation,omitempty"`
}
