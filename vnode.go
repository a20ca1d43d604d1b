// Package goliwc embeds gox components as native elements of a host
// document tree.
package goliwc

import (
	"github.com/germtb/gox"
)

// VNode is an alias for gox.VNode - no wrapper needed.
type VNode = gox.VNode

// Props is an alias for gox.Props.
type Props = gox.Props

// Renderable is a component implemented as a value rather than a function.
type Renderable interface {
	Render(props Props) VNode
}

// IsTextNode returns true if this is a text node.
func IsTextNode(v VNode) bool {
	s, ok := v.Type.(string)
	return ok && s == gox.TextNodeType
}

// IsEmpty reports whether v is the zero VNode, the "nothing" tree.
func IsEmpty(v VNode) bool {
	return v.Type == nil
}

// GetTextContent returns the text content if this is a text node.
func GetTextContent(v VNode) (string, bool) {
	if !IsTextNode(v) {
		return "", false
	}
	if content, ok := v.Props["content"].(string); ok {
		return content, true
	}
	if text, ok := v.Props["text"].(string); ok {
		return text, true
	}
	return "", false
}

// TypeString returns the type as a string (for intrinsic elements).
func TypeString(v VNode) (string, bool) {
	s, ok := v.Type.(string)
	return s, ok
}

// CreateTextNode creates a text node.
func CreateTextNode(text string) VNode {
	v := gox.Text(text)
	v.Props["text"] = text
	return v
}

// CloneElement returns a copy of v with props merged over its own. Children
// are shared.
func CloneElement(v VNode, props Props) VNode {
	merged := make(Props, len(v.Props)+len(props))
	for k, val := range v.Props {
		merged[k] = val
	}
	for k, val := range props {
		merged[k] = val
	}
	return gox.Element(v.Type, merged, v.Children...)
}

// componentProps builds the props a component receives: its own props plus
// children.
func componentProps(v VNode) Props {
	props := make(Props, len(v.Props)+1)
	for k, val := range v.Props {
		props[k] = val
	}
	props["children"] = v.Children
	return props
}

// callComponent invokes the component behind v, if any.
func callComponent(v VNode) (VNode, bool) {
	switch c := v.Type.(type) {
	case gox.Component:
		return c(componentProps(v)), true
	case Renderable:
		return c.Render(componentProps(v)), true
	}
	// Untyped function literals are not gox.Component values.
	if fn, ok := v.Type.(func(gox.Props) gox.VNode); ok {
		return fn(componentProps(v)), true
	}
	return gox.Empty(), false
}
