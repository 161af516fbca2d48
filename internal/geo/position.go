package geo

import (
	"github.com/twpayne/go-geom"
)

// Position is a geographic position in degrees with an altitude in meters.
type Position struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
	Alt float64 `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// Ring is an ordered list of positions (a line or a polygon boundary).
type Ring []Position

// PositionOf converts a GeoJSON coordinate (lon, lat[, alt]) to a Position.
// The altitude is 0 when layout carries no Z ordinate.
func PositionOf(c geom.Coord, layout geom.Layout) Position {
	p := Position{}
	if len(c) > 1 {
		p.Lon, p.Lat = c[0], c[1]
	}
	if z := layout.ZIndex(); z != -1 && z < len(c) {
		p.Alt = c[z]
	}
	return p
}

// RingOf converts a list of coordinates to a Ring.
func RingOf(coords []geom.Coord, layout geom.Layout) Ring {
	r := make(Ring, 0, len(coords))
	for _, c := range coords {
		r = append(r, PositionOf(c, layout))
	}
	return r
}

// HasNonzeroAltitude reports whether any position of r has an altitude other than 0.
func HasNonzeroAltitude(r Ring) bool {
	for _, p := range r {
		if p.Alt != 0 {
			return true
		}
	}
	return false
}

// Geom returns r as an XYZ linear ring.
func (r Ring) Geom() *geom.LinearRing {
	flat := make([]float64, 0, len(r)*3)
	for _, p := range r {
		flat = append(flat, p.Lon, p.Lat, p.Alt)
	}
	return geom.NewLinearRingFlat(geom.XYZ, flat)
}

// Lifted returns a copy of r with every altitude set to alt.
func (r Ring) Lifted(alt float64) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		p.Alt = alt
		out[i] = p
	}
	return out
}
