package goliwc

import (
	"errors"
	"sort"

	"github.com/germtb/gox"
)

// ErrOutsideProvider is returned when a component asks for a real context
// but only the default is in effect.
var ErrOutsideProvider = errors.New("goliwc: context used outside provider")

// Context is an immutable snapshot of ambient state. The zero value is the
// default context: it carries no values and is not considered real.
type Context struct {
	values map[string]any
	real   bool
}

// DefaultContext is the marker used when no provider answered.
var DefaultContext = Context{}

// NewContext creates a real context holding a copy of values.
func NewContext(values map[string]any) Context {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Context{values: copied, real: true}
}

// IsDefault reports whether c is the default marker rather than a real
// context.
func (c Context) IsDefault() bool { return !c.real }

// Value returns the value stored under key.
func (c Context) Value(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// With returns a real context with key set to value.
func (c Context) With(key string, value any) Context {
	next := NewContext(c.values)
	next.values[key] = value
	return next
}

// Keys returns the context's keys in sorted order.
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// providerType marks a VNode that supplies a context to its children.
type providerType struct{}

// Provider wraps children so that they render with ctx as their context.
func Provider(ctx Context, children ...VNode) VNode {
	return gox.Element(providerType{}, Props{"context": ctx}, children...)
}

// ProviderContext returns the context carried by a Provider node.
func ProviderContext(v VNode) (Context, bool) {
	if _, ok := v.Type.(providerType); !ok {
		return DefaultContext, false
	}
	ctx, _ := v.Props["context"].(Context)
	return ctx, true
}

// CurrentContext returns the context in effect for the rendering component,
// which is DefaultContext outside any provider.
func CurrentContext() Context {
	return Global.getCurrentContext()
}

// UseContext returns the real context in effect for the rendering component,
// or ErrOutsideProvider.
func UseContext() (Context, error) {
	ctx := Global.getCurrentContext()
	if ctx.IsDefault() {
		return DefaultContext, ErrOutsideProvider
	}
	return ctx, nil
}
