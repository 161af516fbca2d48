// Package geo handles GeoJSON documents and geographic positions.
package geo

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ErrNotGeoJSON is returned when the input is not a JSON document.
var ErrNotGeoJSON = errors.New("input is not a GeoJSON document")

// Object is a root GeoJSON object: Geometry, *Feature or *FeatureCollection.
type Object interface {
	objectType() string
}

// Geometry is a bare GeoJSON geometry without properties.
type Geometry struct {
	geom.T
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Geometry   geom.T         `json:"-" yaml:"-"`
	Properties map[string]any `json:"properties" yaml:"properties"`
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
}

// FeatureCollection represents a collection of geographic features.
type FeatureCollection struct {
	Features []*Feature `json:"features" yaml:"features"`
}

func (Geometry) objectType() string           { return "Geometry" }
func (*Feature) objectType() string           { return "Feature" }
func (*FeatureCollection) objectType() string { return "FeatureCollection" }

// Document is a decoded GeoJSON input: one root object or an array of them.
type Document struct {
	Objects []Object
}

// Len returns the number of root objects.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Objects)
}

var geometryTypes = map[string]bool{
	"Point":              true,
	"MultiPoint":         true,
	"LineString":         true,
	"MultiLineString":    true,
	"Polygon":            true,
	"MultiPolygon":       true,
	"GeometryCollection": true,
}

// ReadFile reads and decodes a GeoJSON file.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return doc, nil
}

// Decode parses a GeoJSON document.
//
// Unknown root objects and geometries go-geom cannot decode are skipped with
// a warning, so an unrecognized document decodes to an empty Document. Only
// input that is not JSON is an error.
func Decode(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrNotGeoJSON
	}

	doc := &Document{}
	root := gjson.ParseBytes(data)

	if root.IsArray() {
		root.ForEach(func(key, value gjson.Result) bool {
			doc.add(value, "["+key.String()+"]")
			return true
		})
		return doc, nil
	}

	doc.add(root, "root")
	return doc, nil
}

func (d *Document) add(v gjson.Result, path string) {
	if !v.IsObject() {
		log.Warn().Str("node", path).Msg("Skipping non-object GeoJSON node")
		return
	}

	typ := v.Get("type").String()
	switch {
	case typ == "Feature":
		f, err := decodeFeature(v)
		if err != nil {
			log.Warn().Err(err).Str("node", path).Msg("Skipping undecodable feature")
			return
		}
		d.Objects = append(d.Objects, f)

	case typ == "FeatureCollection":
		fc := &FeatureCollection{}
		v.Get("features").ForEach(func(key, value gjson.Result) bool {
			f, err := decodeFeature(value)
			if err != nil {
				log.Warn().
					Err(err).
					Str("node", path+": features["+key.String()+"]").
					Msg("Skipping undecodable feature")
				return true
			}
			fc.Features = append(fc.Features, f)
			return true
		})
		d.Objects = append(d.Objects, fc)

	case geometryTypes[typ]:
		g, err := decodeGeometry(v)
		if err != nil {
			log.Warn().Err(err).Str("node", path).Str("type", typ).Msg("Skipping undecodable geometry")
			return
		}
		d.Objects = append(d.Objects, Geometry{T: g})

	default:
		log.Warn().
			Str("node", path).
			Str("type", typ).
			Msg("Skipping unrecognized GeoJSON object")
	}
}

func decodeGeometry(v gjson.Result) (geom.T, error) {
	var g geom.T
	if err := geojson.Unmarshal([]byte(uniformGeometry(v)), &g); err != nil {
		return nil, err
	}
	return g, nil
}

func decodeFeature(v gjson.Result) (*Feature, error) {
	f := &Feature{}

	if id := v.Get("id"); id.Exists() && id.Type != gjson.Null {
		f.ID = id.String()
	}

	if p := v.Get("properties"); p.IsObject() {
		if err := json.Unmarshal([]byte(p.Raw), &f.Properties); err != nil {
			return nil, errors.Wrap(err, "properties")
		}
	}

	if g := v.Get("geometry"); g.IsObject() {
		if typ := g.Get("type").String(); !geometryTypes[typ] {
			log.Warn().Str("id", f.ID).Str("type", typ).Msg("Skipping unsupported geometry type")
			return f, nil
		}
		geometry, err := decodeGeometry(g)
		if err != nil {
			return nil, errors.Wrap(err, "geometry")
		}
		f.Geometry = geometry
	}

	return f, nil
}
