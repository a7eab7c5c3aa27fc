package policy

import "reflect"

// HandleErrors marks a specification type as error tolerant when embedded.
// The marker is promoted through embedding, so a type built on top of a
// tolerant type is tolerant too.
type HandleErrors struct{}

func (HandleErrors) handlesErrors() {}

// tolerant is satisfied only by types that embed HandleErrors.
type tolerant interface {
	handlesErrors()
}

var tolerantType = reflect.TypeOf((*tolerant)(nil)).Elem()

// Resolver inspects a type and reports whether it tolerates errors.
type Resolver func(t reflect.Type) bool

// HasMarker is the default Resolver. It reports whether t, or a pointer to
// t, carries the HandleErrors marker.
func HasMarker(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Implements(tolerantType) {
		return true
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(tolerantType) {
		return true
	}
	return false
}
