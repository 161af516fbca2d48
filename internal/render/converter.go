// Package render turns GeoJSON documents into renderable shapes.
//
// Points become placemarks, lines become paths and polygons become draped
// surfaces, raised polygons or extruded building volumes depending on their
// altitudes, their properties and the configured default height.
package render

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/twpayne/go-geom"

	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/props"
	"github.com/woozymasta/geobuildings/internal/shape"
)

// DefaultHeight is the extrusion height used when no other height is known.
const DefaultHeight = 10

// Options configure a Converter.
type Options struct {
	// Logger receives conversion diagnostics. The zero value uses the global logger.
	Logger *zerolog.Logger
	// DefaultHeight of buildings without height or levels. Zero disables extrusion.
	DefaultHeight float64
}

// Converter builds shapes from GeoJSON documents.
// It holds no per-document state and is safe for concurrent use.
type Converter struct {
	log           zerolog.Logger
	defaultHeight float64
}

// NewConverter creates a Converter.
func NewConverter(opts Options) *Converter {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	if opts.DefaultHeight < 0 {
		opts.DefaultHeight = 0
	}

	return &Converter{
		log:           logger.With().Str("component", "render").Logger(),
		defaultHeight: opts.DefaultHeight,
	}
}

// DefaultHeight returns the configured default extrusion height.
func (c *Converter) DefaultHeight() float64 {
	return c.defaultHeight
}

// Convert builds the shapes of every object of doc.
// A nil or empty document yields an empty set.
func (c *Converter) Convert(doc *geo.Document) *RenderableSet {
	set := &RenderableSet{}
	if doc == nil {
		return set
	}

	for _, obj := range doc.Objects {
		c.prepare(obj, set)
	}

	c.log.Debug().
		Int("objects", doc.Len()).
		Int("shapes", set.Len()).
		Msg("Document converted")

	return set
}

func (c *Converter) prepare(obj geo.Object, set *RenderableSet) {
	switch o := obj.(type) {
	case geo.Geometry:
		c.dispatch(o.T, nil, set)
	case *geo.Feature:
		c.dispatch(o.Geometry, o.Properties, set)
	case *geo.FeatureCollection:
		for _, f := range o.Features {
			c.dispatch(f.Geometry, f.Properties, set)
		}
	default:
		c.log.Warn().Type("object", obj).Msg("Unsupported GeoJSON object")
	}
}

// dispatch classifies g and hands it to the matching builder.
// Every geometry of a collection shares bag.
func (c *Converter) dispatch(g geom.T, bag props.Bag, set *RenderableSet) {
	switch g := g.(type) {
	case *geom.Point:
		if g.Empty() {
			c.log.Warn().Msg("Empty point skipped")
			return
		}
		c.buildPlacemark(geo.PositionOf(g.Coords(), g.Layout()), shape.DefaultPlacemarkAttributes(), bag, set)

	case *geom.MultiPoint:
		attrs := shape.DefaultPlacemarkAttributes()
		for i := 0; i < g.NumPoints(); i++ {
			pt := g.Point(i)
			if pt.Empty() {
				c.log.Warn().Int("index", i).Msg("Empty point skipped")
				continue
			}
			c.buildPlacemark(geo.PositionOf(pt.Coords(), pt.Layout()), attrs, bag, set)
		}

	case *geom.LineString:
		c.log.Warn().Msg("Geometry rendering of line not supported")

	case *geom.MultiLineString:
		attrs := c.resolveShapeAttributes(bag)
		for i := 0; i < g.NumLineStrings(); i++ {
			ls := g.LineString(i)
			if ls.Empty() {
				c.log.Warn().Int("index", i).Msg("Empty line skipped")
				continue
			}
			c.buildPolyline(geo.RingOf(ls.Coords(), ls.Layout()), attrs, bag, set)
		}

	case *geom.Polygon:
		attrs := c.resolveShapeAttributes(bag)
		outer, inner := rings(g)
		c.buildPolygon(outer, inner, attrs, bag, set)

	case *geom.MultiPolygon:
		attrs := c.resolveShapeAttributes(bag)
		for i := 0; i < g.NumPolygons(); i++ {
			outer, inner := rings(g.Polygon(i))
			c.buildPolygon(outer, inner, attrs, bag, set)
		}

	case *geom.GeometryCollection:
		for _, child := range g.Geoms() {
			c.dispatch(child, bag, set)
		}

	case nil:
		c.log.Warn().Msg("Feature without geometry skipped")

	default:
		c.log.Warn().Type("geometry", g).Msg("Geometry not supported")
	}
}

// rings splits a polygon into its outer boundary and holes.
func rings(p *geom.Polygon) (geo.Ring, []geo.Ring) {
	n := p.NumLinearRings()
	if n == 0 {
		return nil, nil
	}

	layout := p.Layout()
	outer := geo.RingOf(p.LinearRing(0).Coords(), layout)
	inner := make([]geo.Ring, 0, n-1)
	for i := 1; i < n; i++ {
		if r := p.LinearRing(i); !r.Empty() {
			inner = append(inner, geo.RingOf(r.Coords(), layout))
		}
	}

	return outer, inner
}
