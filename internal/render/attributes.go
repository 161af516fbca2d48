package render

import (
	"github.com/woozymasta/geobuildings/internal/colors"
	"github.com/woozymasta/geobuildings/internal/props"
	"github.com/woozymasta/geobuildings/internal/shape"
)

// resolveShapeAttributes derives wall and surface attributes from the
// "color" and "material" properties.
func (c *Converter) resolveShapeAttributes(bag props.Bag) shape.Attributes {
	attrs := shape.DefaultAttributes()
	if bag == nil {
		return attrs
	}

	token := bag.StringOr(props.KeyColor, colors.DefaultFill)
	hex, ok := colors.Resolve(token)
	if !ok {
		c.log.Warn().Str("color", token).Msg("Unknown color, using white")
	}

	m, err := shape.NewMaterial(hex)
	if err != nil {
		c.log.Warn().Err(err).Str("color", token).Msg("Invalid color, using white")
		m = shape.White
	}

	attrs.InteriorMaterial = m
	attrs.OutlineMaterial = shape.Gray
	attrs.DrawInterior = true
	attrs.DrawOutline = bag.StringOr(props.KeyMaterial, "concrete") == "glass"
	attrs.EnableLighting = true
	attrs.EnableAntialiasing = true

	return attrs
}
