package goliwc

import (
	"github.com/germtb/gox"

	"github.com/germtb/goliwc/dom"
)

// ToVNode converts a host node and its direct children into a VNode.
//
// Text becomes a text leaf and any other non-element node the zero VNode.
// An element becomes a node of type component (the lower-cased tag when
// component is nil) whose props mirror its attributes under both the literal
// and camel-cased names, except the slot attribute. Children are grouped by
// their slot attribute: each named group becomes a prop holding a
// placeholder, and the default group becomes the single child placeholder.
//
// In inline mode the element's children are detached, so the conversion
// must run once per content generation.
func ToVNode(n *dom.Node, component any, isolated bool) VNode {
	switch n.Type {
	case dom.TextNode:
		return CreateTextNode(n.Data)
	case dom.ElementNode:
	default:
		return gox.Empty()
	}

	props := Props{}
	for _, a := range n.Attributes() {
		if a.Name == dom.SlotAttr {
			continue
		}
		setDual(props, a.Name, a.Value)
	}

	var order []string
	var ungrouped []*dom.Node
	groups := map[string][]*dom.Node{}
	for _, c := range n.Children() {
		name := dom.SlotName(c)
		if name == "" {
			ungrouped = append(ungrouped, c)
			continue
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], c)
	}

	var def Projection
	if isolated {
		for _, name := range order {
			props[name] = Placeholder(IsolatedSlot{Name: name})
		}
		def = IsolatedSlot{}
	} else {
		for _, name := range order {
			props[name] = Placeholder(InlineSlot{Name: name, Nodes: groups[name]})
		}
		def = InlineSlot{Nodes: ungrouped}
		n.TakeChildren()
	}

	typ := component
	if typ == nil {
		typ = n.Tag
	}
	return gox.Element(typ, props, Placeholder(def))
}
