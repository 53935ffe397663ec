// Package scene keeps the viewer's geometry and prepares it for drawing.
package scene

import (
	"reflect"

	"github.com/Faultbox/geoview/internal/engine/frame"
	"github.com/Faultbox/geoview/pkg/geometry"
)

// Registry is the ordered set of geometry handles attached to a viewer.
// Insertion order is draw order. Handles are shared with the caller and
// never copied or mutated.
type Registry struct {
	items []geometry.Geometry
	flags *frame.Flags
}

// NewRegistry creates an empty registry that marks flags stale on change.
func NewRegistry(flags *frame.Flags) *Registry {
	return &Registry{flags: flags}
}

// Add appends a handle and requests a redraw. Nil handles and handles of
// a non-comparable dynamic type are rejected; handles are expected to be
// pointers.
func (r *Registry) Add(g geometry.Geometry) bool {
	if g == nil || !reflect.TypeOf(g).Comparable() {
		return false
	}
	r.items = append(r.items, g)
	r.flags.RequestRedraw()
	return true
}

// IsEmpty reports whether no geometry is attached.
func (r *Registry) IsEmpty() bool {
	return len(r.items) == 0
}

// Len returns the number of handles.
func (r *Registry) Len() int {
	return len(r.items)
}

// Items returns the handles in draw order. The slice must not be modified.
func (r *Registry) Items() []geometry.Geometry {
	return r.items
}

// BoundingBox returns the union of all handle bounds.
func (r *Registry) BoundingBox() geometry.AABB {
	return geometry.BoundsOfAll(r.items)
}
