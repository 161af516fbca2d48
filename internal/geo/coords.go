package geo

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// uniformGeometry returns the raw geometry with every position padded to
// the largest dimension found in it. GeoJSON allows positions of a single
// geometry to mix 2 and 3 ordinates; go-geom requires one stride.
// Geometries that are already uniform are returned unchanged.
func uniformGeometry(g gjson.Result) string {
	lo, hi := 0, 0
	walkPositions(g, func(n int) {
		if lo == 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	})
	if lo == hi {
		return g.Raw
	}

	data, err := json.Marshal(padGeometry(g, hi))
	if err != nil {
		return g.Raw
	}
	return string(data)
}

func walkPositions(g gjson.Result, visit func(n int)) {
	walkCoords(g.Get("coordinates"), visit)
	g.Get("geometries").ForEach(func(_, child gjson.Result) bool {
		walkPositions(child, visit)
		return true
	})
}

func walkCoords(c gjson.Result, visit func(n int)) {
	if !c.IsArray() {
		return
	}
	items := c.Array()
	if len(items) == 0 {
		return
	}
	if items[0].Type == gjson.Number {
		visit(len(items))
		return
	}
	for _, item := range items {
		walkCoords(item, visit)
	}
}

func padGeometry(g gjson.Result, dim int) map[string]any {
	out := map[string]any{"type": g.Get("type").String()}
	if c := g.Get("coordinates"); c.Exists() {
		out["coordinates"] = padCoords(c, dim)
	}
	if gs := g.Get("geometries"); gs.IsArray() {
		children := make([]any, 0)
		gs.ForEach(func(_, child gjson.Result) bool {
			children = append(children, padGeometry(child, dim))
			return true
		})
		out["geometries"] = children
	}
	return out
}

func padCoords(c gjson.Result, dim int) any {
	if !c.IsArray() {
		return c.Value()
	}
	items := c.Array()
	if len(items) > 0 && items[0].Type == gjson.Number {
		pos := make([]float64, dim)
		for i := 0; i < len(items) && i < dim; i++ {
			pos[i] = items[i].Float()
		}
		return pos
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, padCoords(item, dim))
	}
	return out
}
