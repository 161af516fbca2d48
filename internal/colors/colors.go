// Package colors resolves OSM colour tags to hex color strings.
package colors

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Default color tokens used when a feature carries no usable color.
const (
	DefaultFill = "#aaaaaa"
	DefaultRoof = "#888888"
	Fallback    = "#ffffff"
	Outline     = "#808080"
)

// named maps lowercase color names to hex strings.
// See https://wiki.openstreetmap.org/wiki/Key:colour and the CSS3 SVG color list.
var named = map[string]string{
	"black":   "#000000",
	"gray":    "#808080",
	"grey":    "#808080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"green":   "#008000",
	"teal":    "#008080",
	"navy":    "#000080",
	"purple":  "#800080",
	"white":   "#ffffff",
	"silver":  "#c0c0c0",
	"red":     "#ff0000",
	"yellow":  "#ffff00",
	"lime":    "#00ff00",
	"aqua":    "#00ffff",
	"blue":    "#0000ff",
	"fuchsia": "#ff00ff",
	"brown":   "#363027",

	"beige":       "#f5f5dc",
	"darkgray":    "#a9a9a9",
	"darkgrey":    "#a9a9a9",
	"goldenrod":   "#daa520",
	"gold":        "#ffd700",
	"ivory":       "#fffff0",
	"lightgray":   "#d3d3d3",
	"lightgrey":   "#d3d3d3",
	"lightblue":   "#add8e6",
	"orange":      "#ffa500",
	"pink":        "#ffc0cb",
	"skyblue":     "#87ceeb",
	"saddlebrown": "#8b4513",
}

// Lookup returns the hex value of a named color, ignoring case.
func Lookup(name string) (string, bool) {
	hex, ok := named[strings.ToLower(strings.TrimSpace(name))]
	return hex, ok
}

// Resolve maps token to a hex color string.
// Known names resolve to their hex value and tokens already starting with '#'
// are returned unchanged. Anything else yields Fallback and ok == false.
func Resolve(token string) (hex string, ok bool) {
	if hex, ok := Lookup(token); ok {
		return hex, true
	}
	if strings.HasPrefix(token, "#") {
		return token, true
	}
	return Fallback, false
}

// Decode parses a "#rrggbb" or "#rgb" string into an opaque RGBA color.
func Decode(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "decode color %q", hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
