package goliwc

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/germtb/gox"

	"github.com/germtb/goliwc/dom"
)

// HydrateAttr marks a host element whose existing markup is adopted on the
// first render instead of replaced.
const HydrateAttr = "hydrate"

// ErrUnknownProperty is returned when reading or writing a property the
// element type did not declare.
var ErrUnknownProperty = errors.New("goliwc: unknown property")

// State is the lifecycle state of an Element.
type State int

const (
	StateUnparsed State = iota // constructed, nothing rendered
	StateParsed                // first render done
	StateUpdated               // re-rendered after a change
	StateDetached              // torn down, terminal
)

func (s State) String() string {
	switch s {
	case StateUnparsed:
		return "unparsed"
	case StateParsed:
		return "parsed"
	case StateUpdated:
		return "updated"
	case StateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Element is the behaviour behind a registered host element: it turns the
// host node into the root of a rendered component.
type Element struct {
	node      *dom.Node
	target    *dom.Node // node itself, or its shadow root in isolated mode
	component any
	isolated  bool
	props     []string
	logger    *slog.Logger

	state      State
	ctx        Context
	renderCtx  Context // context of the renderer that built the node, if any
	tree       VNode   // component node, props merged
	pending    Props
	reflecting bool
}

func newElement(n *dom.Node, component any, props []string, opts Options) *Element {
	e := &Element{
		node:      n,
		target:    n,
		component: component,
		isolated:  opts.Isolated,
		props:     props,
		logger:    opts.logger(),
		ctx:       DefaultContext,
	}
	if opts.Isolated {
		shadow, err := n.AttachShadow()
		if err != nil {
			// Another definition already owns the shadow root; render inline.
			e.logger.Warn("shadow root unavailable, rendering inline", "tag", n.Tag, "error", err)
			e.isolated = false
		} else {
			e.target = shadow
		}
	}
	return e
}

// ElementOf returns the Element behind a host node.
func ElementOf(n *dom.Node) (*Element, bool) {
	e, ok := n.Callbacks().(*Element)
	return e, ok
}

// Node returns the host node.
func (e *Element) Node() *dom.Node { return e.node }

// Target returns the node the component renders into.
func (e *Element) Target() *dom.Node { return e.target }

// Isolated reports whether the element renders into a shadow root.
func (e *Element) Isolated() bool { return e.isolated }

// State returns the lifecycle state.
func (e *Element) State() State { return e.state }

// Context returns the context recovered on the first render.
func (e *Element) Context() Context { return e.ctx }

// Tree returns the current component node, or the zero VNode before the
// first render and after teardown.
func (e *Element) Tree() VNode { return e.tree }

// renderedUnder records the context in effect where a renderer built the
// host node. It is used on the first render unless the node has since been
// projected through a placeholder, whose context then applies.
func (e *Element) renderedUnder(ctx Context) { e.renderCtx = ctx }

func (e *Element) rendered() bool {
	return e.state == StateParsed || e.state == StateUpdated
}

// ParsedCallback performs the first render. It runs at most once.
func (e *Element) ParsedCallback() {
	if e.state != StateUnparsed {
		return
	}

	ctx := e.renderCtx
	if ctx.IsDefault() || projected(e.node) {
		ctx, _ = RequestContext(e.node)
	}
	e.ctx = ctx

	tree := ToVNode(e.node, e.component, e.isolated)
	if len(e.pending) > 0 {
		tree = CloneElement(tree, e.pending)
	}
	e.tree = tree
	e.pending = nil
	e.state = StateParsed

	hydrate := e.node.HasAttribute(HydrateAttr)
	e.logger.Debug("element parsed",
		"tag", e.node.Tag,
		"isolated", e.isolated,
		"hydrate", hydrate,
		"context", !ctx.IsDefault())

	if hydrate {
		Rehydrate(Provider(ctx, tree), e.target)
	} else {
		Render(Provider(ctx, tree), e.target)
	}
}

// AttributeChangedCallback re-renders with the new attribute value. A nil
// value (attribute removed) becomes an explicit nil prop. Changes before the
// first render are buffered for it.
func (e *Element) AttributeChangedCallback(name string, _, newValue *string) {
	if e.reflecting {
		return
	}
	var v any
	if newValue != nil {
		v = *newValue
	}
	e.update(name, v)
}

func (e *Element) update(name string, v any) {
	if !e.rendered() {
		if e.pending == nil {
			e.pending = Props{}
		}
		setDual(e.pending, name, v)
		return
	}
	props := Props{}
	setDual(props, name, v)
	e.tree = CloneElement(e.tree, props)
	e.state = StateUpdated
	e.logger.Debug("element updated", "tag", e.node.Tag, "prop", name)
	Render(Provider(e.ctx, e.tree), e.target)
}

// DisconnectedCallback tears the rendered output down. Calling it again is a
// no-op.
func (e *Element) DisconnectedCallback() {
	if e.state == StateDetached {
		return
	}
	e.state = StateDetached
	e.tree = gox.Empty()
	e.pending = nil
	e.logger.Debug("element detached", "tag", e.node.Tag)
	Render(gox.Empty(), e.target)
}

// Detach is DisconnectedCallback for callers that hold the Element.
func (e *Element) Detach() { e.DisconnectedCallback() }

func (e *Element) declared(name string) bool {
	for _, p := range e.props {
		if p == name {
			return true
		}
	}
	return false
}

// Get returns the current value of a declared property: the rendered prop,
// or the buffered value before the first render.
func (e *Element) Get(name string) (any, error) {
	if !e.declared(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	if e.rendered() {
		return e.tree.Props[name], nil
	}
	return e.pending[name], nil
}

// Set writes a declared property. Before the first render the value is
// buffered and the first such write performs the first render; afterwards
// it re-renders. Primitive values are reflected onto the host attribute
// (nil removes it).
func (e *Element) Set(name string, v any) error {
	if !e.declared(name) {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}

	e.update(name, v)
	if e.state == StateUnparsed {
		e.ParsedCallback()
	}

	if isPrimitive(v) {
		e.reflect(name, v)
	}
	return nil
}

func (e *Element) reflect(name string, v any) {
	e.reflecting = true
	defer func() { e.reflecting = false }()

	if s, ok := formatPrimitive(v); ok {
		e.node.SetAttribute(name, s)
		return
	}
	e.node.RemoveAttribute(name)
}
