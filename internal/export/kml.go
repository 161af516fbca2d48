// Package export writes converted shapes as KML, JSON/YAML summaries and raster previews.
package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/pkg/errors"
	kml "github.com/twpayne/go-kml"

	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/props"
	"github.com/woozymasta/geobuildings/internal/render"
	"github.com/woozymasta/geobuildings/internal/shape"
)

// KMLEncoder collects shapes as KML placemarks.
type KMLEncoder struct {
	elements []kml.Element
}

// NewKMLEncoder creates an empty encoder.
func NewKMLEncoder() *KMLEncoder {
	return &KMLEncoder{}
}

// Len returns the number of encoded placemarks.
func (e *KMLEncoder) Len() int {
	return len(e.elements)
}

// Document wraps the collected placemarks into a KML document.
func (e *KMLEncoder) Document(name string) *kml.CompoundElement {
	children := make([]kml.Element, 0, len(e.elements)+1)
	children = append(children, kml.Name(name))
	children = append(children, e.elements...)
	return kml.KML(kml.Document(children...))
}

// EncodeKML renders set into a KML document written to w.
func EncodeKML(w io.Writer, set *render.RenderableSet, name string, minify bool) error {
	enc := NewKMLEncoder()
	set.Render(enc)
	doc := enc.Document(name)

	if !minify {
		return errors.Wrap(doc.WriteIndent(w, "", "  "), "write kml")
	}

	return minifyTo(w, mediaXML, doc.Write)
}

func (e *KMLEncoder) add(bag props.Bag, children ...kml.Element) {
	head := make([]kml.Element, 0, 2)
	if name, ok := bag.String(props.KeyName); ok {
		head = append(head, kml.Name(name))
	}
	e.elements = append(e.elements, kml.Placemark(append(head, children...)...))
}

// DrawPlacemark implements shape.DrawContext.
func (e *KMLEncoder) DrawPlacemark(p *shape.Placemark) {
	e.add(p.Properties(),
		kml.Point(
			altitudeMode(p.AltitudeMode),
			kml.Extrude(p.LineEnabled),
			kml.Coordinates(coordinate(p.Position)),
		),
	)
}

// DrawPath implements shape.DrawContext.
func (e *KMLEncoder) DrawPath(p *shape.Path) {
	e.add(p.Properties(),
		lineStyle(p.Attributes),
		kml.LineString(
			altitudeMode(p.AltitudeMode),
			kml.Coordinates(coordinates(p.Positions)...),
		),
	)
}

// DrawSurfacePolyline implements shape.DrawContext.
func (e *KMLEncoder) DrawSurfacePolyline(p *shape.SurfacePolyline) {
	e.add(p.Properties(),
		lineStyle(p.Attributes),
		kml.LineString(
			kml.Tessellate(true),
			altitudeMode(shape.AltitudeClampToGround),
			kml.Coordinates(coordinates(p.Positions)...),
		),
	)
}

// DrawPolygon implements shape.DrawContext.
func (e *KMLEncoder) DrawPolygon(p *shape.Polygon) {
	e.add(p.Properties(),
		polyStyle(p.Attributes),
		polygon(p.Outer, p.Inner, altitudeMode(p.AltitudeMode)),
	)
}

// DrawSurfacePolygon implements shape.DrawContext.
func (e *KMLEncoder) DrawSurfacePolygon(p *shape.SurfacePolygon) {
	e.add(p.Properties(),
		polyStyle(p.Attributes),
		polygon(p.Outer, p.Inner, kml.Tessellate(true), altitudeMode(shape.AltitudeClampToGround)),
	)
}

// DrawExtrudedPolygon implements shape.DrawContext.
// KML extrudes from the ground, so the base depth is kept in the description only.
func (e *KMLEncoder) DrawExtrudedPolygon(p *shape.ExtrudedPolygon) {
	inner := make([]geo.Ring, 0, len(p.Inner))
	for _, r := range p.Inner {
		inner = append(inner, r.Lifted(p.Height))
	}

	e.add(p.Properties(),
		kml.Description(fmt.Sprintf("height %g m, base %g m, roof %s %s",
			p.Height, 0-p.BaseDepth, p.Building.RoofShape, p.CapAttributes.InteriorMaterial.Hex)),
		polyStyle(p.SideAttributes),
		polygon(p.Outer.Lifted(p.Height), inner,
			kml.Extrude(true),
			kml.AltitudeMode("relativeToGround"),
		),
	)
}

func polygon(outer geo.Ring, inner []geo.Ring, opts ...kml.Element) kml.Element {
	children := make([]kml.Element, 0, len(opts)+1+len(inner))
	children = append(children, opts...)
	children = append(children, kml.OuterBoundaryIs(kml.LinearRing(kml.Coordinates(coordinates(outer)...))))
	for _, r := range inner {
		children = append(children, kml.InnerBoundaryIs(kml.LinearRing(kml.Coordinates(coordinates(r)...))))
	}
	return kml.Polygon(children...)
}

func polyStyle(a shape.Attributes) kml.Element {
	return kml.Style(
		kml.PolyStyle(
			kml.Color(withOpacity(a.InteriorMaterial.Color, a.InteriorOpacity)),
			kml.Fill(a.DrawInterior),
			kml.Outline(a.DrawOutline),
		),
		kml.LineStyle(
			kml.Color(withOpacity(a.OutlineMaterial.Color, a.OutlineOpacity)),
			kml.Width(a.OutlineWidth),
		),
	)
}

func lineStyle(a shape.Attributes) kml.Element {
	return kml.Style(
		kml.LineStyle(
			kml.Color(withOpacity(a.OutlineMaterial.Color, a.OutlineOpacity)),
			kml.Width(a.OutlineWidth),
		),
	)
}

func altitudeMode(m shape.AltitudeMode) kml.Element {
	switch m {
	case shape.AltitudeAbsolute:
		return kml.AltitudeMode("absolute")
	case shape.AltitudeConstant:
		return kml.AltitudeMode("relativeToGround")
	default:
		return kml.AltitudeMode("clampToGround")
	}
}

func coordinate(p geo.Position) kml.Coordinate {
	return kml.Coordinate{Lon: p.Lon, Lat: p.Lat, Alt: p.Alt}
}

func coordinates(r geo.Ring) []kml.Coordinate {
	out := make([]kml.Coordinate, 0, len(r))
	for _, p := range r {
		out = append(out, coordinate(p))
	}
	return out
}

func withOpacity(c color.RGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(opacity*255 + 0.5)}
}
