package shape

import (
	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/props"
)

// Placemark marks a single position.
type Placemark struct {
	base
	Position     geo.Position
	Attributes   PlacemarkAttributes
	AltitudeMode AltitudeMode
	// LineEnabled draws a line from the placemark down to the ground.
	LineEnabled bool
}

// NewPlacemark creates a placemark at pos.
func NewPlacemark(pos geo.Position) *Placemark {
	return &Placemark{Position: pos, Attributes: DefaultPlacemarkAttributes()}
}

func (p *Placemark) Kind() Kind            { return KindPlacemark }
func (p *Placemark) Render(dc DrawContext) { dc.DrawPlacemark(p) }

// Path is a line drawn at the altitudes of its positions.
type Path struct {
	base
	Positions    geo.Ring
	Attributes   Attributes
	AltitudeMode AltitudeMode
}

// NewPath creates an absolute altitude path.
func NewPath(positions geo.Ring, attrs Attributes) *Path {
	return &Path{Positions: positions, Attributes: attrs, AltitudeMode: AltitudeAbsolute}
}

func (p *Path) Kind() Kind            { return KindPath }
func (p *Path) Render(dc DrawContext) { dc.DrawPath(p) }

// SurfacePolyline is a line draped on the terrain.
type SurfacePolyline struct {
	base
	Positions  geo.Ring
	Attributes Attributes
}

// NewSurfacePolyline creates a draped line.
func NewSurfacePolyline(attrs Attributes, positions geo.Ring) *SurfacePolyline {
	return &SurfacePolyline{Positions: positions, Attributes: attrs}
}

func (p *SurfacePolyline) Kind() Kind            { return KindSurfacePolyline }
func (p *SurfacePolyline) Render(dc DrawContext) { dc.DrawSurfacePolyline(p) }

// SurfacePolygon is a flat polygon draped on the terrain.
type SurfacePolygon struct {
	base
	Outer      geo.Ring
	Inner      []geo.Ring
	Attributes Attributes
}

// NewSurfacePolygon creates a draped polygon.
func NewSurfacePolygon(attrs Attributes, outer geo.Ring) *SurfacePolygon {
	return &SurfacePolygon{Outer: outer, Attributes: attrs}
}

// AddInnerBoundary adds a hole.
func (p *SurfacePolygon) AddInnerBoundary(r geo.Ring) { p.Inner = append(p.Inner, r) }

func (p *SurfacePolygon) Kind() Kind            { return KindSurfacePolygon }
func (p *SurfacePolygon) Render(dc DrawContext) { dc.DrawSurfacePolygon(p) }

// Polygon is a polygon drawn at the explicit altitudes of its boundary.
type Polygon struct {
	base
	volume
	Outer        geo.Ring
	Inner        []geo.Ring
	Attributes   Attributes
	AltitudeMode AltitudeMode
}

// NewPolygon creates an absolute altitude polygon.
func NewPolygon(outer geo.Ring) *Polygon {
	return &Polygon{Outer: outer, Attributes: DefaultAttributes(), AltitudeMode: AltitudeAbsolute}
}

// AddInnerBoundary adds a hole.
func (p *Polygon) AddInnerBoundary(r geo.Ring) { p.Inner = append(p.Inner, r) }

func (p *Polygon) Kind() Kind            { return KindPolygon }
func (p *Polygon) Render(dc DrawContext) { dc.DrawPolygon(p) }

// PreRender computes the extent of the polygon.
func (p *Polygon) PreRender(DrawContext) { p.computeExtent(p.Outer) }

// Dispose drops the cached extent.
func (p *Polygon) Dispose() { p.volume.Dispose() }

// ExtrudedPolygon is a footprint lifted into a volume with a roof cap.
type ExtrudedPolygon struct {
	base
	volume
	Outer          geo.Ring
	Inner          []geo.Ring
	Attributes     Attributes
	SideAttributes Attributes
	CapAttributes  Attributes
	Building       props.BuildingParams
	// Height is the altitude of the roof cap above the terrain.
	Height float64
	// BaseDepth is the depth of the base below the terrain; negative raises the base.
	BaseDepth    float64
	AltitudeMode AltitudeMode
	Visible      bool
}

// NewExtrudedPolygon creates a volume of the given wall height.
func NewExtrudedPolygon(height float64) *ExtrudedPolygon {
	attrs := DefaultAttributes()
	return &ExtrudedPolygon{
		Height:         height,
		Attributes:     attrs,
		SideAttributes: attrs,
		CapAttributes:  attrs,
		AltitudeMode:   AltitudeConstant,
		Visible:        true,
	}
}

// SetOuterBoundary sets the footprint.
func (p *ExtrudedPolygon) SetOuterBoundary(r geo.Ring) { p.Outer = r }

// AddInnerBoundary adds a hole.
func (p *ExtrudedPolygon) AddInnerBoundary(r geo.Ring) { p.Inner = append(p.Inner, r) }

func (p *ExtrudedPolygon) Kind() Kind            { return KindExtrudedPolygon }
func (p *ExtrudedPolygon) Render(dc DrawContext) { dc.DrawExtrudedPolygon(p) }

// PreRender computes the extent from the base to the roof cap.
func (p *ExtrudedPolygon) PreRender(DrawContext) {
	p.computeExtent(p.Outer.Lifted(-p.BaseDepth), p.Outer.Lifted(p.Height))
}

// Dispose drops the cached extent.
func (p *ExtrudedPolygon) Dispose() { p.volume.Dispose() }
