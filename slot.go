package goliwc

import (
	"github.com/germtb/gox"

	"github.com/germtb/goliwc/dom"
)

// Projection says where a host element's original children reappear in the
// render output. It is either an IsolatedSlot or an InlineSlot.
type Projection interface {
	GroupName() string
	isProjection()
}

// IsolatedSlot leaves redistribution to the host: it renders a native slot
// that the host fills with the light children of the named group.
type IsolatedSlot struct {
	Name string
}

// InlineSlot holds the exact host nodes of its group and re-appends them
// beneath its mount point.
type InlineSlot struct {
	Name  string
	Nodes []*dom.Node
}

// GroupName returns the projection group; "" is the default group.
func (s IsolatedSlot) GroupName() string { return s.Name }

// GroupName returns the projection group; "" is the default group.
func (s InlineSlot) GroupName() string { return s.Name }

func (IsolatedSlot) isProjection() {}

func (InlineSlot) isProjection() {}

// Placeholder returns the VNode standing in for p.
func Placeholder(p Projection) VNode {
	return gox.Element(slotComponent{}, Props{"projection": p})
}

// projected reports whether n currently sits in a placeholder: assigned to
// a native slot, or re-appended beneath an inline one.
func projected(n *dom.Node) bool {
	if dom.AssignedSlot(n) != nil {
		return true
	}
	p := n.Parent()
	return p != nil && p.Type == dom.ElementNode && p.Tag == "slot"
}

// ProjectionOf returns the projection behind a placeholder VNode.
func ProjectionOf(v VNode) (Projection, bool) {
	if _, ok := v.Type.(slotComponent); !ok {
		return nil, false
	}
	p, ok := v.Props["projection"].(Projection)
	return p, ok
}

// slotComponent renders a placeholder as a <slot> whose ref relays context
// requests with the context current where the placeholder rendered, so that
// projected content resolves the context of its logical parent.
type slotComponent struct{}

func (slotComponent) Render(props Props) VNode {
	p, _ := props["projection"].(Projection)
	if p == nil {
		return gox.Empty()
	}
	ctx := CurrentContext()

	var stopAnswering func()
	ref := func(n *dom.Node) {
		if n == nil {
			if stopAnswering != nil {
				stopAnswering()
				stopAnswering = nil
			}
			return
		}
		stopAnswering = AnswerContext(n, ctx)
		if inline, ok := p.(InlineSlot); ok {
			for _, native := range inline.Nodes {
				n.AppendChild(native)
			}
		}
	}

	attrs := Props{"ref": ref}
	if name := p.GroupName(); name != "" {
		attrs["name"] = name
	}
	return gox.Element("slot", attrs)
}
