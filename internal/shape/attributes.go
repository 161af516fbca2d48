package shape

import (
	"image/color"

	"github.com/woozymasta/geobuildings/internal/colors"
)

// Material is a diffuse color of a shape surface.
type Material struct {
	Hex   string     `json:"hex" yaml:"hex"`
	Color color.RGBA `json:"-" yaml:"-"`
}

// NewMaterial decodes hex into a Material.
func NewMaterial(hex string) (Material, error) {
	c, err := colors.Decode(hex)
	if err != nil {
		return Material{}, err
	}
	return Material{Hex: hex, Color: c}, nil
}

// MustMaterial is like NewMaterial but panics on a malformed color.
// It is meant for package level constants.
func MustMaterial(hex string) Material {
	m, err := NewMaterial(hex)
	if err != nil {
		panic(err)
	}
	return m
}

// Predefined materials.
var (
	Gray  = MustMaterial(colors.Outline)
	White = MustMaterial(colors.Fallback)
)

// Attributes control how the interior and outline of a shape are drawn.
type Attributes struct {
	InteriorMaterial   Material `json:"interior" yaml:"interior"`
	OutlineMaterial    Material `json:"outline" yaml:"outline"`
	InteriorOpacity    float64  `json:"interior_opacity" yaml:"interior_opacity"`
	OutlineOpacity     float64  `json:"outline_opacity" yaml:"outline_opacity"`
	OutlineWidth       float64  `json:"outline_width" yaml:"outline_width"`
	DrawInterior       bool     `json:"draw_interior" yaml:"draw_interior"`
	DrawOutline        bool     `json:"draw_outline" yaml:"draw_outline"`
	EnableLighting     bool     `json:"enable_lighting" yaml:"enable_lighting"`
	EnableAntialiasing bool     `json:"enable_antialiasing" yaml:"enable_antialiasing"`
}

// DefaultAttributes returns the attributes of a shape without properties:
// a light gray lit interior without outline.
func DefaultAttributes() Attributes {
	return Attributes{
		InteriorMaterial:   MustMaterial(colors.DefaultFill),
		OutlineMaterial:    Gray,
		InteriorOpacity:    1,
		OutlineOpacity:     1,
		OutlineWidth:       1,
		DrawInterior:       true,
		EnableLighting:     true,
		EnableAntialiasing: true,
	}
}

// PlacemarkAttributes control how a placemark is drawn.
type PlacemarkAttributes struct {
	LineMaterial Material `json:"line" yaml:"line"`
	Scale        float64  `json:"scale" yaml:"scale"`
	LineWidth    float64  `json:"line_width" yaml:"line_width"`
}

// DefaultPlacemarkAttributes returns the attributes shared by all placemarks.
func DefaultPlacemarkAttributes() PlacemarkAttributes {
	return PlacemarkAttributes{
		LineMaterial: White,
		Scale:        1,
		LineWidth:    1,
	}
}
