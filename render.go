package goliwc

import (
	"fmt"
	"sort"

	"github.com/germtb/gox"

	"github.com/germtb/goliwc/dom"
)

// Render applies v to container, replacing what the previous Render or
// Rehydrate placed there. The zero VNode tears the previous output down.
// Children of container that were not rendered by goliwc are left alone.
//
// There is no diffing: every call rebuilds the host nodes. Refs of the
// previous generation are called with nil, then refs of the new one with
// their node, before the new nodes are inserted.
func Render(v VNode, container *dom.Node) {
	apply(v, container, false)
}

// Rehydrate is Render that adopts the existing children of container where
// they match the tree (same tag or text node, position by position) instead
// of recreating them. Unmatched existing children are removed.
func Rehydrate(v VNode, container *dom.Node) {
	apply(v, container, true)
}

type builder struct {
	doc  *dom.Document
	refs []boundRef
}

// hydration is a cursor over host nodes that may be adopted.
type hydration struct {
	nodes []*dom.Node
	pos   int
}

func (h *hydration) claim(match func(*dom.Node) bool) *dom.Node {
	if h == nil || h.pos >= len(h.nodes) {
		return nil
	}
	n := h.nodes[h.pos]
	if !match(n) {
		return nil
	}
	h.pos++
	return n
}

func apply(v VNode, container *dom.Node, hydrate bool) {
	prev := Global.takeMount(container)

	var old []*dom.Node
	if prev != nil {
		old = prev.nodes
	}
	var h *hydration
	if hydrate {
		old = container.Children()
		h = &hydration{nodes: old}
	}

	b := &builder{doc: container.Document()}
	var nodes []*dom.Node
	if !IsEmpty(v) {
		nodes = RunWithContext(DefaultContext, func() []*dom.Node {
			return b.build(v, h)
		})
	}

	if prev != nil {
		for i := len(prev.refs) - 1; i >= 0; i-- {
			prev.refs[i].ref(nil)
		}
	}
	for _, r := range b.refs {
		r.ref(r.node)
	}

	keep := make(map[*dom.Node]bool, len(nodes))
	for _, n := range nodes {
		keep[n] = true
	}
	for _, n := range old {
		if !keep[n] && n.Parent() == container {
			container.RemoveChild(n)
		}
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	if !IsEmpty(v) {
		Global.setMount(container, &mount{nodes: nodes, refs: b.refs})
	}
}

func (b *builder) build(v VNode, h *hydration) []*dom.Node {
	if IsEmpty(v) {
		return nil
	}

	if IsTextNode(v) {
		text, _ := GetTextContent(v)
		if n := h.claim(func(n *dom.Node) bool { return n.Type == dom.TextNode }); n != nil {
			n.Data = text
			return []*dom.Node{n}
		}
		return []*dom.Node{b.doc.CreateTextNode(text)}
	}

	if tag, ok := TypeString(v); ok {
		if tag == gox.FragmentNodeType {
			return b.buildChildren(v.Children, h)
		}
		return []*dom.Node{b.buildElement(tag, v, h)}
	}

	if ctx, ok := ProviderContext(v); ok {
		return RunWithContext(ctx, func() []*dom.Node {
			return b.buildChildren(v.Children, h)
		})
	}

	if out, ok := callComponent(v); ok {
		return b.build(out, h)
	}

	panic(fmt.Sprintf("goliwc: unknown node type %T", v.Type))
}

func (b *builder) buildChildren(children []VNode, h *hydration) []*dom.Node {
	var out []*dom.Node
	for _, c := range children {
		out = append(out, b.build(c, h)...)
	}
	return out
}

func (b *builder) buildElement(tag string, v VNode, h *hydration) *dom.Node {
	n := h.claim(func(n *dom.Node) bool {
		return n.Type == dom.ElementNode && n.Tag == tag
	})
	reused := n != nil
	if !reused {
		n = b.doc.CreateElement(tag)
	}

	attrs := elementAttributes(v.Props)
	if reused {
		for _, a := range n.Attributes() {
			if _, ok := attrs[a.Name]; !ok {
				n.RemoveAttribute(a.Name)
			}
		}
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if cur, ok := n.GetAttribute(name); !ok || cur != attrs[name] {
			n.SetAttribute(name, attrs[name])
		}
	}

	if e, ok := ElementOf(n); ok {
		e.renderedUnder(CurrentContext())
	}

	var childHydration *hydration
	var existing []*dom.Node
	if reused {
		existing = n.Children()
		childHydration = &hydration{nodes: existing}
	}
	children := b.buildChildren(v.Children, childHydration)

	keep := make(map[*dom.Node]bool, len(children))
	for _, c := range children {
		keep[c] = true
	}
	for _, c := range existing {
		if !keep[c] {
			n.RemoveChild(c)
		}
	}
	for _, c := range children {
		n.AppendChild(c)
	}

	if ref, ok := v.Props["ref"].(func(*dom.Node)); ok {
		b.refs = append(b.refs, boundRef{ref: ref, node: n})
	}
	return n
}

// elementAttributes maps props to attribute text. Only primitives become
// attributes: true is an empty attribute, false and nil are omitted.
func elementAttributes(props Props) map[string]string {
	attrs := make(map[string]string, len(props))
	for k, v := range props {
		switch k {
		case "children", "key", "ref":
			continue
		}
		switch x := v.(type) {
		case nil:
			continue
		case bool:
			if x {
				attrs[k] = ""
			}
			continue
		}
		if s, ok := formatPrimitive(v); ok {
			attrs[k] = s
		}
	}
	return attrs
}
