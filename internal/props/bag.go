// Package props reads typed values out of GeoJSON feature properties.
package props

import (
	"math"

	"github.com/spf13/cast"
)

// Property keys understood by the converter.
const (
	KeyHeight          = "height"
	KeyLevels          = "levels"
	KeyMinHeight       = "minHeight"
	KeyColor           = "color"
	KeyMaterial        = "material"
	KeyRoofColor       = "roofColor"
	KeyRoofShape       = "roofShape"
	KeyRoofHeight      = "roofHeight"
	KeyRoofMaterial    = "roofMaterial"
	KeyRoofOrientation = "roofOrientation"
	KeyRoofDirection   = "roofDirection"
	KeyName            = "name"
)

// Bag is the property object of a GeoJSON feature.
// A nil Bag means the feature had no properties.
type Bag map[string]any

// Number returns the value of key as float64.
// Numeric strings are accepted; missing, null or unparsable values report false.
func (b Bag) Number(key string) (float64, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return 0, false
	}
	if _, isBool := v.(bool); isBool {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String returns the value of key as a string.
func (b Bag) String(key string) (string, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// NumberOr returns the numeric value of key, or def when it is missing or malformed.
func (b Bag) NumberOr(key string, def float64) float64 {
	if f, ok := b.Number(key); ok {
		return f
	}
	return def
}

// StringOr returns the string value of key, or def when it is missing.
func (b Bag) StringOr(key, def string) string {
	if s, ok := b.String(key); ok {
		return s
	}
	return def
}
