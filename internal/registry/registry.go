// Package registry maps a stable wire name to a constructible Go type, the
// replacement for the original codec's Class.forName(name, classLoader)
// (spec.md §9). The codec uses it, through NameFor, to pick and compare
// the wire names of Externalizable classes; list class names are read
// from the wire but never looked up here.
package registry

import (
	"reflect"
	"sync"

	"github.com/dba-c24/extern/errs"
)

// Registry is a concurrency-safe name↔type table; each codec.Codec holds
// its own unless one is shared through codec.WithRegistry. The zero
// value is not usable; construct with New.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// DefaultName derives the wire name for t using its package path and type
// name — the naming scheme used unless the caller registers an explicit
// override via Register. This is the "pluggable naming scheme" spec.md §9
// calls out as an open design choice.
func DefaultName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}

	return t.PkgPath() + "." + t.Name()
}

// Register associates name with the pointed-to struct type of sample (a
// *T). Re-registering the same name with a different type is a
// configuration error.
func (r *Registry) Register(name string, sample any) error {
	t := reflect.TypeOf(sample)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok && existing != t {
		return errs.Configuration(name, errs.ErrUnknownClassName)
	}

	r.byName[name] = t
	r.byType[t] = name

	return nil
}

// NameFor returns the wire name for t, falling back to DefaultName if t was
// never explicitly registered.
func (r *Registry) NameFor(t reflect.Type) string {
	elem := t
	for elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}

	r.mu.RLock()
	name, ok := r.byType[elem]
	r.mu.RUnlock()
	if ok {
		return name
	}

	return DefaultName(elem)
}

// Lookup resolves a wire name back to a struct type. It only finds types
// registered via Register; DefaultName is one-directional (a name computed
// from a type is not searchable back to that type without registration).
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]
	return t, ok
}

// NewByName instantiates a new addressable zero value of the struct type
// registered under name, returning it as a reflect.Value of kind Ptr.
func (r *Registry) NewByName(name string) (reflect.Value, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return reflect.Value{}, errs.Configuration(name, errs.ErrUnknownClassName)
	}

	return reflect.New(t), nil
}
