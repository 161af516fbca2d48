package export

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/props"
	"github.com/woozymasta/geobuildings/internal/render"
	"github.com/woozymasta/geobuildings/internal/shape"
)

// Summary formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatKML  = "kml"
)

// Descriptor is a flat description of one shape.
type Descriptor struct {
	Properties   props.Bag             `json:"properties,omitempty" yaml:"properties,omitempty"`
	Building     *props.BuildingParams `json:"building,omitempty" yaml:"building,omitempty"`
	Kind         shape.Kind            `json:"kind" yaml:"kind"`
	AltitudeMode string                `json:"altitude_mode" yaml:"altitude_mode"`
	Fill         string                `json:"fill,omitempty" yaml:"fill,omitempty"`
	Outline      string                `json:"outline,omitempty" yaml:"outline,omitempty"`
	Roof         string                `json:"roof,omitempty" yaml:"roof,omitempty"`
	Position     *geo.Position         `json:"position,omitempty" yaml:"position,omitempty"`
	Height       float64               `json:"height,omitempty" yaml:"height,omitempty"`
	BaseDepth    float64               `json:"base_depth,omitempty" yaml:"base_depth,omitempty"`
	Positions    int                   `json:"positions" yaml:"positions"`
	Holes        int                   `json:"holes,omitempty" yaml:"holes,omitempty"`
	DrawOutline  bool                  `json:"draw_outline,omitempty" yaml:"draw_outline,omitempty"`
}

// Summary is the document written by WriteSummary.
type Summary struct {
	Counts map[shape.Kind]int `json:"counts" yaml:"counts"`
	Shapes []Descriptor       `json:"shapes" yaml:"shapes"`
}

// Collector builds descriptors from rendered shapes.
type Collector struct {
	Descriptors []Descriptor
}

// Describe returns the descriptors of every shape of set in order.
func Describe(set *render.RenderableSet) []Descriptor {
	c := &Collector{Descriptors: make([]Descriptor, 0, set.Len())}
	set.Render(c)
	return c.Descriptors
}

// WriteSummary writes the descriptors of set as JSON or YAML.
func WriteSummary(w io.Writer, set *render.RenderableSet, format string, minify bool) error {
	s := Summary{Counts: set.Counts(), Shapes: Describe(set)}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return enc.Close()

	case FormatJSON, "":
		write := func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}
		if minify {
			return minifyTo(w, mediaJSON, write)
		}
		return errors.Wrap(write(w), "encode json")
	}

	return errors.Errorf("unsupported summary format %q", format)
}

func surface(d Descriptor, a shape.Attributes) Descriptor {
	d.Fill = a.InteriorMaterial.Hex
	d.Outline = a.OutlineMaterial.Hex
	d.DrawOutline = a.DrawOutline
	return d
}

// DrawPlacemark implements shape.DrawContext.
func (c *Collector) DrawPlacemark(p *shape.Placemark) {
	pos := p.Position
	c.Descriptors = append(c.Descriptors, Descriptor{
		Kind:         p.Kind(),
		AltitudeMode: p.AltitudeMode.String(),
		Position:     &pos,
		Positions:    1,
		Properties:   p.Properties(),
	})
}

// DrawPath implements shape.DrawContext.
func (c *Collector) DrawPath(p *shape.Path) {
	c.Descriptors = append(c.Descriptors, surface(Descriptor{
		Kind:         p.Kind(),
		AltitudeMode: p.AltitudeMode.String(),
		Positions:    len(p.Positions),
		Properties:   p.Properties(),
	}, p.Attributes))
}

// DrawSurfacePolyline implements shape.DrawContext.
func (c *Collector) DrawSurfacePolyline(p *shape.SurfacePolyline) {
	c.Descriptors = append(c.Descriptors, surface(Descriptor{
		Kind:         p.Kind(),
		AltitudeMode: shape.AltitudeClampToGround.String(),
		Positions:    len(p.Positions),
		Properties:   p.Properties(),
	}, p.Attributes))
}

// DrawPolygon implements shape.DrawContext.
func (c *Collector) DrawPolygon(p *shape.Polygon) {
	c.Descriptors = append(c.Descriptors, surface(Descriptor{
		Kind:         p.Kind(),
		AltitudeMode: p.AltitudeMode.String(),
		Positions:    len(p.Outer),
		Holes:        len(p.Inner),
		Properties:   p.Properties(),
	}, p.Attributes))
}

// DrawSurfacePolygon implements shape.DrawContext.
func (c *Collector) DrawSurfacePolygon(p *shape.SurfacePolygon) {
	c.Descriptors = append(c.Descriptors, surface(Descriptor{
		Kind:         p.Kind(),
		AltitudeMode: shape.AltitudeClampToGround.String(),
		Positions:    len(p.Outer),
		Holes:        len(p.Inner),
		Properties:   p.Properties(),
	}, p.Attributes))
}

// DrawExtrudedPolygon implements shape.DrawContext.
func (c *Collector) DrawExtrudedPolygon(p *shape.ExtrudedPolygon) {
	building := p.Building
	c.Descriptors = append(c.Descriptors, surface(Descriptor{
		Kind:         p.Kind(),
		AltitudeMode: p.AltitudeMode.String(),
		Height:       p.Height,
		BaseDepth:    p.BaseDepth,
		Roof:         p.CapAttributes.InteriorMaterial.Hex,
		Building:     &building,
		Positions:    len(p.Outer),
		Holes:        len(p.Inner),
		Properties:   p.Properties(),
	}, p.SideAttributes))
}
