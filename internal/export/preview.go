package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/woozymasta/geobuildings/internal/colors"
	"github.com/woozymasta/geobuildings/internal/config"
	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/render"
	"github.com/woozymasta/geobuildings/internal/shape"
)

const (
	previewPadding   = 8
	previewPointSize = 5
	previewLineWidth = 1.5
)

// PreviewOptions configure a raster preview.
type PreviewOptions struct {
	Background string
	Size       int
	Quality    float32
	Lossless   bool
}

// NewPreviewOptions copies the preview section of the configuration.
func NewPreviewOptions(p config.Preview) PreviewOptions {
	return PreviewOptions{
		Background: p.Background,
		Size:       p.Size,
		Quality:    p.Quality,
		Lossless:   p.Lossless,
	}
}

type previewItem struct {
	rings [][]geo.Position
	fill  color.NRGBA
	kind  shape.Kind
}

// Preview draws a top-down (equirectangular) picture of the rendered shapes.
// Volumes show their roof cap color.
type Preview struct {
	bounds *geom.Bounds
	items  []previewItem
}

// NewPreview creates an empty preview.
func NewPreview() *Preview {
	return &Preview{bounds: geom.NewBounds(geom.XY)}
}

// WritePreview renders set and encodes the picture as webp or png depending on format.
func WritePreview(w io.Writer, set *render.RenderableSet, opts PreviewOptions, format string) error {
	p := NewPreview()
	set.Render(p)

	img, err := p.Image(opts)
	if err != nil {
		return err
	}

	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "png":
		return errors.Wrap(png.Encode(w, img), "encode png")
	case "webp", "":
		return errors.Wrap(webp.Encode(w, img, &webp.Options{Lossless: opts.Lossless, Quality: opts.Quality}), "encode webp")
	}

	return errors.Errorf("unsupported preview format %q", format)
}

func (p *Preview) add(kind shape.Kind, c color.NRGBA, rings ...geo.Ring) {
	item := previewItem{kind: kind, fill: c}
	for _, r := range rings {
		if len(r) == 0 {
			continue
		}
		item.rings = append(item.rings, r)
		p.bounds.Extend(geom.NewLineStringFlat(geom.XY, flat2D(r)))
	}
	if len(item.rings) > 0 {
		p.items = append(p.items, item)
	}
}

// DrawPlacemark implements shape.DrawContext.
func (p *Preview) DrawPlacemark(s *shape.Placemark) {
	p.add(s.Kind(), withOpacity(s.Attributes.LineMaterial.Color, 1), geo.Ring{s.Position})
}

// DrawPath implements shape.DrawContext.
func (p *Preview) DrawPath(s *shape.Path) {
	p.add(s.Kind(), withOpacity(s.Attributes.OutlineMaterial.Color, s.Attributes.OutlineOpacity), s.Positions)
}

// DrawSurfacePolyline implements shape.DrawContext.
func (p *Preview) DrawSurfacePolyline(s *shape.SurfacePolyline) {
	p.add(s.Kind(), withOpacity(s.Attributes.OutlineMaterial.Color, s.Attributes.OutlineOpacity), s.Positions)
}

// DrawPolygon implements shape.DrawContext.
func (p *Preview) DrawPolygon(s *shape.Polygon) {
	p.add(s.Kind(), withOpacity(s.Attributes.InteriorMaterial.Color, s.Attributes.InteriorOpacity), append([]geo.Ring{s.Outer}, s.Inner...)...)
}

// DrawSurfacePolygon implements shape.DrawContext.
func (p *Preview) DrawSurfacePolygon(s *shape.SurfacePolygon) {
	p.add(s.Kind(), withOpacity(s.Attributes.InteriorMaterial.Color, s.Attributes.InteriorOpacity), append([]geo.Ring{s.Outer}, s.Inner...)...)
}

// DrawExtrudedPolygon implements shape.DrawContext.
func (p *Preview) DrawExtrudedPolygon(s *shape.ExtrudedPolygon) {
	p.add(s.Kind(), withOpacity(s.CapAttributes.InteriorMaterial.Color, s.CapAttributes.InteriorOpacity), append([]geo.Ring{s.Outer}, s.Inner...)...)
}

// Image rasterizes the collected shapes. The longer side of the
// picture is opts.Size pixels.
func (p *Preview) Image(opts PreviewOptions) (*image.RGBA, error) {
	if opts.Size <= 2*previewPadding {
		return nil, errors.Errorf("preview size %d too small", opts.Size)
	}

	bg := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if opts.Background != "" {
		c, err := colors.Decode(opts.Background)
		if err != nil {
			return nil, err
		}
		bg = c
	}

	prj := newProjection(p.bounds, opts.Size)
	img := image.NewRGBA(image.Rect(0, 0, prj.width, prj.height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)

	z := vector.NewRasterizer(prj.width, prj.height)
	for _, it := range p.items {
		z.Reset(prj.width, prj.height)
		z.DrawOp = xdraw.Over

		switch it.kind {
		case shape.KindPlacemark:
			x, y := prj.point(it.rings[0][0])
			square(z, x, y, previewPointSize)
		case shape.KindPath, shape.KindSurfacePolyline:
			strokeLine(z, prj, it.rings[0], previewLineWidth)
		default:
			fillPolygon(z, prj, it.rings)
		}

		z.Draw(img, img.Bounds(), image.NewUniform(it.fill), image.Point{})
	}

	return img, nil
}

// projection maps lon/lat to pixels, north up.
type projection struct {
	minX, maxY    float64
	scale         float64
	width, height int
}

func newProjection(b *geom.Bounds, size int) projection {
	inner := float64(size - 2*previewPadding)
	if b.IsEmpty() {
		return projection{scale: 1, width: size, height: size}
	}

	dx := b.Max(0) - b.Min(0)
	dy := b.Max(1) - b.Min(1)
	span := math.Max(dx, dy)
	if span == 0 {
		return projection{
			minX:   b.Min(0) - inner/2,
			maxY:   b.Max(1) + inner/2,
			scale:  1,
			width:  size,
			height: size,
		}
	}

	scale := inner / span
	return projection{
		minX:   b.Min(0),
		maxY:   b.Max(1),
		scale:  scale,
		width:  pixels(dx*scale) + 2*previewPadding,
		height: pixels(dy*scale) + 2*previewPadding,
	}
}

// pixels rounds v up, ignoring float noise.
func pixels(v float64) int {
	return int(math.Ceil(v - 1e-6))
}

func (p projection) point(pos geo.Position) (float32, float32) {
	x := (pos.Lon-p.minX)*p.scale + previewPadding
	y := (p.maxY-pos.Lat)*p.scale + previewPadding
	return float32(x), float32(y)
}

func square(z *vector.Rasterizer, x, y, size float32) {
	h := size / 2
	z.MoveTo(x-h, y-h)
	z.LineTo(x+h, y-h)
	z.LineTo(x+h, y+h)
	z.LineTo(x-h, y+h)
	z.ClosePath()
}

// strokeLine draws every segment of r as a thin quad.
func strokeLine(z *vector.Rasterizer, prj projection, r []geo.Position, width float32) {
	for i := 1; i < len(r); i++ {
		x0, y0 := prj.point(r[i-1])
		x1, y1 := prj.point(r[i])
		dx, dy := x1-x0, y1-y0
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*width/2, dx/l*width/2
		z.MoveTo(x0+nx, y0+ny)
		z.LineTo(x1+nx, y1+ny)
		z.LineTo(x1-nx, y1-ny)
		z.LineTo(x0-nx, y0-ny)
		z.ClosePath()
	}
}

// fillPolygon fills the outer ring and cuts the holes. The rasterizer adds
// coverage of rings with the same winding, so holes are walked against the
// outer ring.
func fillPolygon(z *vector.Rasterizer, prj projection, rings [][]geo.Position) {
	outerSign := 0.0
	for i, r := range rings {
		if len(r) < 3 {
			continue
		}
		pts := make([][2]float32, len(r))
		for j, pos := range r {
			x, y := prj.point(pos)
			pts[j] = [2]float32{x, y}
		}

		area := signedArea(pts)
		if i == 0 {
			outerSign = area
		} else if area*outerSign > 0 {
			reverse(pts)
		}

		z.MoveTo(pts[0][0], pts[0][1])
		for _, pt := range pts[1:] {
			z.LineTo(pt[0], pt[1])
		}
		z.ClosePath()
	}
}

func signedArea(pts [][2]float32) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += float64(pts[i][0])*float64(pts[j][1]) - float64(pts[j][0])*float64(pts[i][1])
	}
	return a / 2
}

func reverse(pts [][2]float32) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func flat2D(r geo.Ring) []float64 {
	out := make([]float64, 0, len(r)*2)
	for _, pos := range r {
		out = append(out, pos.Lon, pos.Lat)
	}
	return out
}
