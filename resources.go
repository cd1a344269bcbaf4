package engine

import "reflect"

// Resources is a typed registry of shared collaborators, keyed by concrete
// type. Subsystems that need the game context receive it explicitly or fetch
// shared objects from here; there is no process-wide "current game" slot.
//
// At most one resource per type may be present at a time.
type Resources struct {
	items map[reflect.Type]any
}

// Add registers a resource. It panics on nil and on a duplicate type, since
// both indicate a wiring bug with no safe recovery.
func (r *Resources) Add(res any) {
	if res == nil {
		panic("engine: cannot add nil resource")
	}
	t := reflect.TypeOf(res)
	if r.items == nil {
		r.items = make(map[reflect.Type]any)
	}
	if _, ok := r.items[t]; ok {
		panic("engine: resource of the same type already exists")
	}
	r.items[t] = res
}

// Clear removes all resources.
func (r *Resources) Clear() {
	clear(r.items)
}

// HasResource checks if a resource of type T exists.
func HasResource[T any](r *Resources) bool {
	_, ok := r.items[reflect.TypeOf((*T)(nil))]
	return ok
}

// GetResource retrieves the resource of type T, or nil and false if it is
// absent.
func GetResource[T any](r *Resources) (*T, bool) {
	res, ok := r.items[reflect.TypeOf((*T)(nil))]
	if !ok {
		return nil, false
	}
	return res.(*T), true
}

// RemoveResource removes the resource of type T if present.
func RemoveResource[T any](r *Resources) {
	delete(r.items, reflect.TypeOf((*T)(nil)))
}
