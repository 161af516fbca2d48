package render

import (
	"github.com/woozymasta/geobuildings/internal/colors"
	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/props"
	"github.com/woozymasta/geobuildings/internal/shape"
)

// Roof cap opacities.
const (
	roofOpacity      = 1.0
	glassRoofOpacity = 0.7
)

func (c *Converter) buildPlacemark(pos geo.Position, attrs shape.PlacemarkAttributes, bag props.Bag, set *RenderableSet) {
	p := shape.NewPlacemark(pos)
	p.Attributes = attrs
	if pos.Alt != 0 {
		p.AltitudeMode = shape.AltitudeAbsolute
		p.LineEnabled = true
	} else {
		p.AltitudeMode = shape.AltitudeClampToGround
	}

	if bag != nil {
		p.SetProperties(bag)
	}

	set.add(p)
}

// buildPolygon picks the representation of a polygon:
//   - a footprint with altitudes already has its geometry and is never extruded;
//   - a flat footprint becomes a building volume when a default height is set;
//   - anything else is draped on the ground.
func (c *Converter) buildPolygon(outer geo.Ring, inner []geo.Ring, attrs shape.Attributes, bag props.Bag, set *RenderableSet) {
	if len(outer) == 0 {
		c.log.Warn().Msg("Polygon without outer boundary skipped")
		return
	}

	switch {
	case geo.HasNonzeroAltitude(outer):
		poly := shape.NewPolygon(outer)
		poly.Attributes = attrs
		for _, r := range inner {
			poly.AddInnerBoundary(r)
		}
		if bag != nil {
			poly.SetProperties(bag)
		}
		set.add(poly)

	case c.defaultHeight > 0:
		set.add(c.buildVolume(outer, inner, attrs, bag))

	default:
		poly := shape.NewSurfacePolygon(attrs, outer)
		for _, r := range inner {
			poly.AddInnerBoundary(r)
		}
		if bag != nil {
			poly.SetProperties(bag)
		}
		set.add(poly)
	}
}

func (c *Converter) buildVolume(outer geo.Ring, inner []geo.Ring, attrs shape.Attributes, bag props.Bag) *shape.ExtrudedPolygon {
	params := props.ExtractBuildingParams(bag, c.defaultHeight)

	box := shape.NewExtrudedPolygon(params.Height)
	box.Building = params
	box.AltitudeMode = shape.AltitudeConstant
	box.Attributes = attrs
	box.SideAttributes = attrs
	box.CapAttributes = c.roofAttributes(params)
	box.Visible = true
	box.SetOuterBoundary(outer)
	// negative depth pushes the base up instead of below the ground
	box.BaseDepth = -params.MinHeight
	for _, r := range inner {
		box.AddInnerBoundary(r)
	}

	if params.Pyramidal() {
		// Only the flat cap is built for every roof shape.
		c.log.Debug().
			Str("roof_shape", params.RoofShape).
			Msg("Pyramidal roof not built, using flat cap")
	}

	if bag != nil {
		box.SetProperties(bag)
	}

	return box
}

func (c *Converter) roofAttributes(params props.BuildingParams) shape.Attributes {
	m, err := shape.NewMaterial(params.RoofColor)
	if err != nil {
		c.log.Warn().Err(err).Str("roof_color", params.RoofColor).Msg("Invalid roof color, using default")
		m = shape.MustMaterial(colors.DefaultRoof)
	}

	opacity := roofOpacity
	if params.GlassRoof() {
		opacity = glassRoofOpacity
	}

	return shape.Attributes{
		InteriorMaterial:   m,
		OutlineMaterial:    m,
		InteriorOpacity:    opacity,
		OutlineOpacity:     1,
		OutlineWidth:       1,
		DrawInterior:       true,
		DrawOutline:        false,
		EnableLighting:     true,
		EnableAntialiasing: true,
	}
}

func (c *Converter) buildPolyline(positions geo.Ring, attrs shape.Attributes, bag props.Bag, set *RenderableSet) {
	var sh shape.Shape
	if geo.HasNonzeroAltitude(positions) {
		p := shape.NewPath(positions, attrs)
		p.AltitudeMode = shape.AltitudeAbsolute
		if bag != nil {
			p.SetProperties(bag)
		}
		sh = p
	} else {
		p := shape.NewSurfacePolyline(attrs, positions)
		if bag != nil {
			p.SetProperties(bag)
		}
		sh = p
	}

	set.add(sh)
}
