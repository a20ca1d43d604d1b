package dom

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrInvalidName is returned for element names without a hyphen or with
	// upper-case letters.
	ErrInvalidName = errors.New("dom: invalid custom element name")

	// ErrAlreadyDefined is returned when a name is defined twice.
	ErrAlreadyDefined = errors.New("dom: element already defined")
)

// Callbacks receives the lifecycle notifications of an upgraded element.
type Callbacks interface {
	// ParsedCallback fires once, after the element is connected and its
	// initial children are present.
	ParsedCallback()

	// AttributeChangedCallback fires when an observed attribute is set or
	// removed. newValue is nil on removal.
	AttributeChangedCallback(name string, oldValue, newValue *string)

	// DisconnectedCallback fires when a parsed element is removed from the
	// tree.
	DisconnectedCallback()
}

// Definition describes a custom element type.
type Definition struct {
	// Observed lists the attribute names delivered to AttributeChangedCallback.
	Observed []string

	// Construct builds the element behaviour for a freshly created node.
	Construct func(n *Node) Callbacks
}

func (d *Definition) observes(name string) bool {
	if d == nil {
		return false
	}
	for _, o := range d.Observed {
		if strings.EqualFold(o, name) {
			return true
		}
	}
	return false
}

// Registry maps custom element names to definitions.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Define registers def under name.
func (r *Registry) Define(name string, def Definition) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[name]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyDefined, name)
	}
	r.defs[name] = &def
	return nil
}

// Lookup returns the definition registered under name, or nil.
func (r *Registry) Lookup(name string) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defs[name]
}

// IsDefined reports whether name is registered.
func (r *Registry) IsDefined(name string) bool {
	return r.Lookup(name) != nil
}

func validName(name string) bool {
	if name == "" || !strings.Contains(name, "-") || name != strings.ToLower(name) {
		return false
	}
	c := name[0]
	return c >= 'a' && c <= 'z'
}
