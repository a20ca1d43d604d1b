// Package dom provides the host document tree that goliwc elements live in.
//
// It is deliberately small: nodes with ordered attributes, shadow roots and
// slot assignment, synchronous bubbling events, and an element-definition
// registry whose callbacks drive embedded components.
package dom

import (
	"errors"
	"strings"
)

// NodeType identifies the kind of a Node.
type NodeType int

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	FragmentNode // shadow roots and detached fragments
	DocumentNode
)

// SlotAttr is the content-routing attribute: it names the projection group a
// light child belongs to.
const SlotAttr = "slot"

// ErrShadowAttached is returned when a second shadow root is requested.
var ErrShadowAttached = errors.New("dom: shadow root already attached")

// Attr is a single attribute. Attribute order is insertion order.
type Attr struct {
	Name  string
	Value string
}

// Node is a node of the host tree.
type Node struct {
	Type NodeType
	Tag  string // lower-cased, elements only
	Data string // text and comment content

	doc      *Document
	parent   *Node
	children []*Node
	attrs    []Attr

	shadow *Node // shadow root, when this element hosts one
	host   *Node // host element, when this node is a shadow root

	listeners map[string][]*listener

	def       *Definition
	callbacks Callbacks
	parsed    bool
}

// Document returns the document that created n.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the physical parent of n, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of n's child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// ShadowRoot returns the shadow root hosted by n, or nil.
func (n *Node) ShadowRoot() *Node { return n.shadow }

// Host returns the host element when n is a shadow root.
func (n *Node) Host() *Node { return n.host }

// Callbacks returns the behaviour attached by the element registry, or nil.
func (n *Node) Callbacks() Callbacks { return n.callbacks }

// Parsed reports whether the parsed callback has been delivered to n.
func (n *Node) Parsed() bool { return n.parsed }

// AttachShadow gives n a private shadow root and returns it.
func (n *Node) AttachShadow() (*Node, error) {
	if n.shadow != nil {
		return nil, ErrShadowAttached
	}
	n.shadow = &Node{Type: FragmentNode, doc: n.doc, host: n}
	return n.shadow, nil
}

// IsConnected reports whether n is reachable from its document root,
// crossing shadow boundaries.
func (n *Node) IsConnected() bool {
	for cur := n; cur != nil; {
		if cur.Type == DocumentNode {
			return true
		}
		if cur.parent != nil {
			cur = cur.parent
		} else {
			cur = cur.host
		}
	}
	return false
}

// Attributes returns a copy of n's attributes in order.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// GetAttribute returns the attribute value and whether it is present.
func (n *Node) GetAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// SetAttribute sets an attribute and notifies the element if it observes it.
func (n *Node) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	old, had := n.setAttr(name, value)
	var oldPtr *string
	if had {
		oldPtr = &old
	}
	n.attributeChanged(name, oldPtr, &value)
}

// RemoveAttribute removes an attribute. The element, if observing, receives
// a nil new value.
func (n *Node) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			old := a.Value
			n.attributeChanged(name, &old, nil)
			return
		}
	}
}

func (n *Node) setAttr(name, value string) (string, bool) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			return a.Value, true
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
	return "", false
}

func (n *Node) attributeChanged(name string, oldValue, newValue *string) {
	if n.callbacks == nil || !n.def.observes(name) {
		return
	}
	n.callbacks.AttributeChangedCallback(name, oldValue, newValue)
}

// TextContent concatenates all descendant text.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Data
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// AppendChild appends child to n. A child that already has a parent is moved
// without disconnect notifications. Custom elements that become connected and
// have not been parsed yet receive their parsed callback, in document order.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref, or appends it when ref is nil.
func (n *Node) InsertBefore(child, ref *Node) {
	n.insert(child, ref)
	if n.IsConnected() {
		deliverParsed(child)
	}
}

func (n *Node) insert(child, ref *Node) {
	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = n
	idx := len(n.children)
	if ref != nil {
		for i, c := range n.children {
			if c == ref {
				idx = i
				break
			}
		}
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
}

// RemoveChild removes child from n and notifies every parsed custom element in
// its subtree, shadow trees included, that it was disconnected.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		return
	}
	n.detach(child)
	disconnect(child)
}

// TakeChildren detaches and returns all children of n without disconnect
// notifications. The caller becomes responsible for re-inserting them.
func (n *Node) TakeChildren() []*Node {
	taken := n.children
	n.children = nil
	for _, c := range taken {
		c.parent = nil
	}
	return taken
}

func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	child.parent = nil
}

// Walk visits n and its light descendants in document order. Returning false
// from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// walkComposed is Walk that also descends into shadow roots before light
// children.
func walkComposed(n *Node, fn func(*Node)) {
	fn(n)
	if n.shadow != nil {
		walkComposed(n.shadow, fn)
	}
	for _, c := range n.Children() {
		walkComposed(c, fn)
	}
}

func deliverParsed(root *Node) {
	var pending []*Node
	walkComposed(root, func(n *Node) {
		if n.callbacks != nil && !n.parsed {
			pending = append(pending, n)
		}
	})
	// Earlier callbacks may already have parsed later nodes.
	for _, n := range pending {
		if n.parsed || !n.IsConnected() {
			continue
		}
		n.parsed = true
		n.callbacks.ParsedCallback()
	}
}

func disconnect(root *Node) {
	var parsed []*Node
	walkComposed(root, func(n *Node) {
		if n.callbacks != nil && n.parsed {
			parsed = append(parsed, n)
		}
	})
	for _, n := range parsed {
		n.callbacks.DisconnectedCallback()
	}
}
