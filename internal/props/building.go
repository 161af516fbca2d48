package props

import (
	"strings"

	"github.com/woozymasta/geobuildings/internal/colors"
)

// LevelHeight is the estimated height of one building level.
const LevelHeight = 4

// Roof defaults.
const (
	DefaultRoofShape       = "flat"
	DefaultRoofMaterial    = "concrete"
	DefaultRoofOrientation = "along"
	DefaultRoofDirection   = -1
)

// BuildingParams are the extrusion parameters of one building footprint.
type BuildingParams struct {
	RoofColor       string  `json:"roof_color" yaml:"roof_color"`
	RoofShape       string  `json:"roof_shape" yaml:"roof_shape"`
	RoofMaterial    string  `json:"roof_material" yaml:"roof_material"`
	RoofOrientation string  `json:"roof_orientation" yaml:"roof_orientation"`
	Height          float64 `json:"height" yaml:"height"`
	MinHeight       float64 `json:"min_height" yaml:"min_height"`
	Levels          float64 `json:"levels" yaml:"levels"`
	RoofHeight      float64 `json:"roof_height" yaml:"roof_height"`
	// RoofDirection is parsed but not used by any builder; -1 means unspecified.
	RoofDirection float64 `json:"roof_direction" yaml:"roof_direction"`
}

// ExtractBuildingParams reads building parameters from bag and normalizes the heights.
//
// Without a positive height the height is estimated from levels
// (LevelHeight per level) or falls back to defaultHeight, and minHeight is reset.
// A minHeight at or above the height lifts the height to minHeight+1.
func ExtractBuildingParams(bag Bag, defaultHeight float64) BuildingParams {
	p := BuildingParams{
		Height:          bag.NumberOr(KeyHeight, 0),
		MinHeight:       bag.NumberOr(KeyMinHeight, 0),
		Levels:          bag.NumberOr(KeyLevels, 0),
		RoofColor:       colors.DefaultRoof,
		RoofShape:       bag.StringOr(KeyRoofShape, DefaultRoofShape),
		RoofHeight:      bag.NumberOr(KeyRoofHeight, 0),
		RoofMaterial:    bag.StringOr(KeyRoofMaterial, DefaultRoofMaterial),
		RoofOrientation: bag.StringOr(KeyRoofOrientation, DefaultRoofOrientation),
		RoofDirection:   bag.NumberOr(KeyRoofDirection, DefaultRoofDirection),
	}

	if token, ok := bag.String(KeyRoofColor); ok {
		if hex, ok := colors.Lookup(token); ok {
			p.RoofColor = hex
		} else if strings.HasPrefix(token, "#") {
			p.RoofColor = token
		}
	}

	if p.Height <= 0 {
		if p.Levels > 0 {
			p.Height = p.Levels * LevelHeight
		} else {
			p.Height = defaultHeight
		}
		p.MinHeight = 0
	} else if p.MinHeight >= p.Height {
		p.Height = p.MinHeight + 1
	}

	return p
}

// Pyramidal reports whether the roof shape asks for a pyramid roof.
func (p BuildingParams) Pyramidal() bool {
	return p.RoofShape == "pyramid" || p.RoofShape == "pyramidal"
}

// GlassRoof reports whether the roof is made of glass.
func (p BuildingParams) GlassRoof() bool {
	return p.RoofMaterial == "glass"
}
