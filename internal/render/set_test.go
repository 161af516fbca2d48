package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/props"
	"github.com/woozymasta/geobuildings/internal/shape"
)

type drawLog struct {
	kinds []shape.Kind
}

func (d *drawLog) DrawPlacemark(p *shape.Placemark) { d.kinds = append(d.kinds, p.Kind()) }
func (d *drawLog) DrawPath(p *shape.Path)           { d.kinds = append(d.kinds, p.Kind()) }
func (d *drawLog) DrawSurfacePolyline(p *shape.SurfacePolyline) {
	d.kinds = append(d.kinds, p.Kind())
}
func (d *drawLog) DrawPolygon(p *shape.Polygon) { d.kinds = append(d.kinds, p.Kind()) }
func (d *drawLog) DrawSurfacePolygon(p *shape.SurfacePolygon) {
	d.kinds = append(d.kinds, p.Kind())
}
func (d *drawLog) DrawExtrudedPolygon(p *shape.ExtrudedPolygon) {
	d.kinds = append(d.kinds, p.Kind())
}

func mixedSet(t *testing.T) *RenderableSet {
	t.Helper()
	doc := decode(t, `[
		{"type": "Point", "coordinates": [1, 2]},
		{"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]},
		{"type": "Polygon", "coordinates": [[[0, 0, 9], [1, 0, 9], [1, 1, 9], [0, 0, 9]]]},
		{"type": "MultiLineString", "coordinates": [[[0, 0], [1, 1]]]}
	]`)
	return newTestConverter(10).Convert(doc)
}

func TestRenderableSetOrder(t *testing.T) {
	set := mixedSet(t)
	require.Equal(t, 4, set.Len())

	log := &drawLog{}
	set.Render(log)
	assert.Equal(t, []shape.Kind{
		shape.KindPlacemark,
		shape.KindExtrudedPolygon,
		shape.KindPolygon,
		shape.KindSurfacePolyline,
	}, log.kinds)

	assert.Equal(t, map[shape.Kind]int{
		shape.KindPlacemark:       1,
		shape.KindExtrudedPolygon: 1,
		shape.KindPolygon:         1,
		shape.KindSurfacePolyline: 1,
	}, set.Counts())
	assert.Equal(t, "Contains 4 elements to render", set.String())
}

func TestRenderableSetPreRenderAndDispose(t *testing.T) {
	set := mixedSet(t)
	box := set.Shapes()[1].(*shape.ExtrudedPolygon)
	poly := set.Shapes()[2].(*shape.Polygon)

	set.PreRender(&drawLog{})
	require.NotNil(t, box.Extent())
	require.NotNil(t, poly.Extent())
	assert.Equal(t, 10.0, box.Extent().Max(2))
	assert.Equal(t, 9.0, poly.Extent().Max(2))

	set.Dispose()
	assert.Zero(t, set.Len())
	assert.Nil(t, box.Extent())
	assert.Nil(t, poly.Extent())

	assert.NotPanics(t, set.Dispose)
	assert.Zero(t, set.Len())
}

func TestRenderableSetClearKeepsShapes(t *testing.T) {
	set := mixedSet(t)
	box := set.Shapes()[1].(*shape.ExtrudedPolygon)
	set.PreRender(&drawLog{})

	set.Clear()
	assert.Zero(t, set.Len())
	assert.NotNil(t, box.Extent())

	log := &drawLog{}
	set.Render(log)
	assert.Empty(t, log.kinds)
}

func TestRenderableSetAppendOnly(t *testing.T) {
	set := &RenderableSet{}
	c := newTestConverter(0)
	for i := 0; i < 3; i++ {
		c.buildPlacemark(geo.Position{Lat: float64(i)}, shape.DefaultPlacemarkAttributes(), props.Bag{"i": i}, set)
	}
	for i, sh := range set.Shapes() {
		assert.Equal(t, i, sh.Properties()["i"])
	}
}
