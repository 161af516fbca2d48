package render

import (
	"fmt"

	"github.com/woozymasta/geobuildings/internal/shape"
)

// RenderableSet is the ordered list of shapes built from one document.
type RenderableSet struct {
	shapes []shape.Shape
}

func (s *RenderableSet) add(sh shape.Shape) {
	s.shapes = append(s.shapes, sh)
}

// Shapes returns the shapes in insertion order.
// The slice is owned by the set and must not be modified.
func (s *RenderableSet) Shapes() []shape.Shape {
	return s.shapes
}

// Len returns the number of shapes.
func (s *RenderableSet) Len() int {
	return len(s.shapes)
}

// Counts returns the number of shapes per kind.
func (s *RenderableSet) Counts() map[shape.Kind]int {
	counts := make(map[shape.Kind]int)
	for _, sh := range s.shapes {
		counts[sh.Kind()]++
	}
	return counts
}

// PreRender forwards to every shape in insertion order.
func (s *RenderableSet) PreRender(dc shape.DrawContext) {
	for _, sh := range s.shapes {
		sh.PreRender(dc)
	}
}

// Render draws every shape in insertion order.
func (s *RenderableSet) Render(dc shape.DrawContext) {
	for _, sh := range s.shapes {
		sh.Render(dc)
	}
}

// Dispose releases every shape and empties the set.
func (s *RenderableSet) Dispose() {
	for _, sh := range s.shapes {
		sh.Dispose()
	}
	s.Clear()
}

// Clear empties the set without disposing the shapes.
func (s *RenderableSet) Clear() {
	s.shapes = nil
}

func (s *RenderableSet) String() string {
	return fmt.Sprintf("Contains %d elements to render", len(s.shapes))
}
