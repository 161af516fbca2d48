package export

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/render"
	"github.com/woozymasta/geobuildings/internal/shape"
)

const buildings = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Tower", "height": 20, "color": "red", "roofColor": "blue"},
      "geometry": {"type": "Polygon", "coordinates": [[[8.54,47.37],[8.55,47.37],[8.55,47.38],[8.54,47.38],[8.54,47.37]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Gate"},
      "geometry": {"type": "Point", "coordinates": [8.545, 47.375]}
    },
    {
      "type": "Feature",
      "properties": {"color": "green"},
      "geometry": {"type": "MultiLineString", "coordinates": [[[8.54,47.37],[8.55,47.38]]]}
    }
  ]
}`

func convert(t *testing.T, src string, defaultHeight float64) *render.RenderableSet {
	t.Helper()
	doc, err := geo.Decode([]byte(src))
	require.NoError(t, err)

	nop := zerolog.Nop()
	return render.NewConverter(render.Options{DefaultHeight: defaultHeight, Logger: &nop}).Convert(doc)
}

func TestEncodeKML(t *testing.T) {
	set := convert(t, buildings, 10)
	require.Equal(t, 3, set.Len())

	var buf bytes.Buffer
	require.NoError(t, EncodeKML(&buf, set, "City", false))
	out := buf.String()

	assert.Contains(t, out, "<name>City</name>")
	assert.Contains(t, out, "<name>Tower</name>")
	assert.Contains(t, out, "<name>Gate</name>")
	assert.Equal(t, 3, strings.Count(out, "<Placemark>"))
	assert.Contains(t, out, "<extrude>")
	assert.Contains(t, out, "relativeToGround")
	assert.Contains(t, out, "<tessellate>")
	assert.Contains(t, out, "<coordinates>")
	assert.Contains(t, out, "height 20 m, base 0 m")
	assert.Contains(t, strings.ToLower(out), "ff0000ff")
	assert.Contains(t, out, "roof flat #0000ff")
}

func TestEncodeKMLMinified(t *testing.T) {
	set := convert(t, buildings, 10)

	var plain, small bytes.Buffer
	require.NoError(t, EncodeKML(&plain, set, "City", false))
	require.NoError(t, EncodeKML(&small, set, "City", true))

	assert.Less(t, small.Len(), plain.Len())
	assert.Contains(t, small.String(), "<name>Tower</name>")
	assert.NotContains(t, small.String(), "\n  <")
}

func TestKMLEncoderEmpty(t *testing.T) {
	enc := NewKMLEncoder()
	render.NewConverter(render.Options{}).Convert(nil).Render(enc)
	assert.Zero(t, enc.Len())

	var buf bytes.Buffer
	require.NoError(t, enc.Document("Empty").Write(&buf))
	assert.Contains(t, buf.String(), "<name>Empty</name>")
	assert.NotContains(t, buf.String(), "<Placemark>")
}

func TestDescribe(t *testing.T) {
	ds := Describe(convert(t, buildings, 10))
	require.Len(t, ds, 3)

	box := ds[0]
	assert.Equal(t, shape.KindExtrudedPolygon, box.Kind)
	assert.Equal(t, 20.0, box.Height)
	assert.Equal(t, "#ff0000", box.Fill)
	assert.Equal(t, "#0000ff", box.Roof)
	assert.Equal(t, 5, box.Positions)
	require.NotNil(t, box.Building)
	assert.Equal(t, 20.0, box.Building.Height)

	pin := ds[1]
	assert.Equal(t, shape.KindPlacemark, pin.Kind)
	require.NotNil(t, pin.Position)
	assert.Equal(t, 47.375, pin.Position.Lat)

	line := ds[2]
	assert.Equal(t, shape.KindSurfacePolyline, line.Kind)
	assert.Equal(t, "clampToGround", line.AltitudeMode)
	assert.Equal(t, 2, line.Positions)
}

func TestWriteSummaryJSON(t *testing.T) {
	set := convert(t, buildings, 10)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, set, FormatJSON, false))

	var s Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &s))
	assert.Equal(t, 1, s.Counts[shape.KindExtrudedPolygon])
	assert.Equal(t, 1, s.Counts[shape.KindPlacemark])
	assert.Equal(t, 1, s.Counts[shape.KindSurfacePolyline])
	require.Len(t, s.Shapes, 3)
	assert.Equal(t, "Tower", s.Shapes[0].Properties["name"])

	var small bytes.Buffer
	require.NoError(t, WriteSummary(&small, set, FormatJSON, true))
	assert.Less(t, small.Len(), buf.Len())
	assert.True(t, json.Valid(small.Bytes()))
}

func TestWriteSummaryYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, convert(t, buildings, 0), FormatYAML, false))

	var s Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &s))
	require.Len(t, s.Shapes, 3)
	assert.Equal(t, shape.KindSurfacePolygon, s.Shapes[0].Kind)
	assert.Equal(t, "#ff0000", s.Shapes[0].Fill)
}

func TestWriteSummaryUnknownFormat(t *testing.T) {
	err := WriteSummary(&bytes.Buffer{}, convert(t, buildings, 0), "toml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toml")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "city.kml"), OutputPath("out", "data/city.geojson", "kml"))
	assert.Equal(t, filepath.Join("out", "city.json"), OutputPath("out", "city.JSON", ".json"))
	assert.Equal(t, filepath.Join("out", "city.txt.yaml"), OutputPath("out", "city.txt", "yaml"))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.kml")
	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		return EncodeKML(w, convert(t, buildings, 10), "City", false)
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<Placemark>")
}

const courtyard = `{
  "type": "Feature",
  "properties": {"color": "red"},
  "geometry": {"type": "Polygon", "coordinates": [
    [[0,0],[10,0],[10,10],[0,10],[0,0]],
    [[4,4],[6,4],[6,6],[4,6],[4,4]]
  ]}
}`

func TestPreviewImage(t *testing.T) {
	set := convert(t, buildings, 0)
	p := NewPreview()
	set.Render(p)

	img, err := p.Image(PreviewOptions{Background: "#000000", Size: 200})
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, 200, max(b.Dx(), b.Dy()))

	// A pixel inside the footprint is red, the corner stays black.
	r, g, _, _ := img.At(b.Dx()/4, b.Dy()/4).RGBA()
	assert.Greater(t, r, g)
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(0, 0))
}

func TestPreviewHoles(t *testing.T) {
	set := convert(t, courtyard, 0)

	var buf bytes.Buffer
	require.NoError(t, WritePreview(&buf, set, PreviewOptions{Background: "#ffffff", Size: 116}, "png"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	center := color.RGBAModel.Convert(img.At(58, 58)).(color.RGBA)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, center)

	ring := color.RGBAModel.Convert(img.At(20, 58)).(color.RGBA)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, ring)
}

func TestWritePreviewWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePreview(&buf, convert(t, buildings, 10), PreviewOptions{Size: 64, Quality: 80}, "webp"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("RIFF")))
}

func TestWritePreviewErrors(t *testing.T) {
	set := convert(t, buildings, 0)
	assert.Error(t, WritePreview(&bytes.Buffer{}, set, PreviewOptions{Size: 4}, "png"))
	assert.Error(t, WritePreview(&bytes.Buffer{}, set, PreviewOptions{Size: 64, Background: "#zz"}, "png"))
	assert.Error(t, WritePreview(&bytes.Buffer{}, set, PreviewOptions{Size: 64}, "gif"))
}
