// Package shape defines the renderable shapes produced from GeoJSON geometries.
//
// Every shape implements Shape. A host renderer implements DrawContext and
// receives one typed call per shape from Shape.Render, so adding a shape
// kind breaks every host that does not handle it.
package shape

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/props"
)

// AltitudeMode tells how the altitude of a shape is interpreted.
type AltitudeMode int

const (
	// AltitudeClampToGround drapes the shape on the terrain.
	AltitudeClampToGround AltitudeMode = iota
	// AltitudeAbsolute uses altitudes as given, above sea level.
	AltitudeAbsolute
	// AltitudeConstant offsets the shape from the terrain by a constant.
	AltitudeConstant
)

func (m AltitudeMode) String() string {
	switch m {
	case AltitudeClampToGround:
		return "clampToGround"
	case AltitudeAbsolute:
		return "absolute"
	case AltitudeConstant:
		return "constant"
	}
	return fmt.Sprintf("AltitudeMode(%d)", int(m))
}

// Kind identifies a shape type.
type Kind string

// Shape kinds.
const (
	KindPlacemark       Kind = "placemark"
	KindPath            Kind = "path"
	KindSurfacePolyline Kind = "surface_polyline"
	KindPolygon         Kind = "polygon"
	KindSurfacePolygon  Kind = "surface_polygon"
	KindExtrudedPolygon Kind = "extruded_polygon"
)

// DrawContext is implemented by hosts that draw shapes.
type DrawContext interface {
	DrawPlacemark(p *Placemark)
	DrawPath(p *Path)
	DrawSurfacePolyline(p *SurfacePolyline)
	DrawPolygon(p *Polygon)
	DrawSurfacePolygon(p *SurfacePolygon)
	DrawExtrudedPolygon(p *ExtrudedPolygon)
}

// Shape is a renderable produced by the converter.
type Shape interface {
	Kind() Kind
	// Properties returns the feature properties the shape was built from, or nil.
	Properties() props.Bag
	// PreRender prepares the shape before a frame is drawn.
	PreRender(dc DrawContext)
	// Render hands the shape to dc.
	Render(dc DrawContext)
	// Dispose releases resources held by the shape. It is safe to call twice.
	Dispose()
}

// base carries the fields shared by all shapes.
type base struct {
	props props.Bag
}

func (b *base) Properties() props.Bag { return b.props }

// SetProperties attaches the originating feature properties.
func (b *base) SetProperties(bag props.Bag) { b.props = bag }

func (b *base) PreRender(DrawContext) {}
func (b *base) Dispose()              {}

// volume caches the extent of volumetric shapes between PreRender and Dispose.
type volume struct {
	extent *geom.Bounds
}

// Extent returns the 3D bounds computed by the last PreRender, or nil.
func (v *volume) Extent() *geom.Bounds { return v.extent }

func (v *volume) computeExtent(rings ...geo.Ring) {
	b := geom.NewBounds(geom.XYZ)
	for _, r := range rings {
		if len(r) == 0 {
			continue
		}
		b.Extend(r.Geom())
	}
	v.extent = b
}

func (v *volume) Dispose() { v.extent = nil }
