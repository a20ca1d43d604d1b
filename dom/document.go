package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a host tree and the registry used to upgrade its elements.
type Document struct {
	registry *Registry
	root     *Node
	body     *Node
}

// NewDocument creates a document with an empty, connected body. A nil
// registry means no element is ever upgraded.
func NewDocument(registry *Registry) *Document {
	if registry == nil {
		registry = NewRegistry()
	}
	d := &Document{registry: registry}
	d.root = &Node{Type: DocumentNode, doc: d}
	d.body = d.CreateElement("body")
	d.root.AppendChild(d.body)
	return d
}

// Root returns the document node.
func (d *Document) Root() *Node { return d.root }

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// Registry returns the document's element registry.
func (d *Document) Registry() *Registry { return d.registry }

// CreateElement creates an element, upgrading it when tag is defined.
func (d *Document) CreateElement(tag string) *Node {
	n := &Node{Type: ElementNode, Tag: strings.ToLower(tag), doc: d}
	if def := d.registry.Lookup(n.Tag); def != nil {
		n.def = def
		n.callbacks = def.Construct(n)
	}
	return n
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(text string) *Node {
	return &Node{Type: TextNode, Data: text, doc: d}
}

// CreateComment creates a comment node.
func (d *Document) CreateComment(text string) *Node {
	return &Node{Type: CommentNode, Data: text, doc: d}
}

// ParseFragment parses markup and appends the resulting nodes to parent.
// Custom elements are upgraded as they are created; their parsed callbacks
// fire in document order once the whole fragment is in place and parent is
// connected.
func (d *Document) ParseFragment(parent *Node, markup string) ([]*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	var nodes []*Node
	for _, hn := range parsed {
		if n := d.fromHTML(hn); n != nil {
			nodes = append(nodes, n)
		}
	}
	for _, n := range nodes {
		parent.insert(n, nil)
	}
	if parent.IsConnected() {
		for _, n := range nodes {
			deliverParsed(n)
		}
	}
	return nodes, nil
}

func (d *Document) fromHTML(hn *html.Node) *Node {
	var n *Node
	switch hn.Type {
	case html.TextNode:
		return d.CreateTextNode(hn.Data)
	case html.CommentNode:
		return d.CreateComment(hn.Data)
	case html.ElementNode:
		n = d.CreateElement(hn.Data)
		for _, a := range hn.Attr {
			n.setAttr(strings.ToLower(a.Key), a.Val)
		}
	default:
		return nil
	}
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		if child := d.fromHTML(c); child != nil {
			n.insert(child, nil)
		}
	}
	return n
}

// Render writes n as HTML. Shadow roots are serialized as declarative
// <template shadowrootmode="open"> children.
func Render(w io.Writer, n *Node) error {
	if n.Type == DocumentNode || n.Type == FragmentNode {
		for _, c := range n.children {
			if err := html.Render(w, toHTML(c)); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, toHTML(n))
}

// OuterHTML returns n serialized as HTML.
func OuterHTML(n *Node) string {
	var sb strings.Builder
	if err := Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

// InnerHTML returns the serialized children of n.
func InnerHTML(n *Node) string {
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(OuterHTML(c))
	}
	return sb.String()
}

func toHTML(n *Node) *html.Node {
	switch n.Type {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case CommentNode:
		return &html.Node{Type: html.CommentNode, Data: n.Data}
	}
	hn := &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
	for _, a := range n.attrs {
		hn.Attr = append(hn.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	if n.shadow != nil {
		tmpl := &html.Node{
			Type:     html.ElementNode,
			Data:     "template",
			DataAtom: atom.Template,
			Attr:     []html.Attribute{{Key: "shadowrootmode", Val: "open"}},
		}
		for _, c := range n.shadow.children {
			tmpl.AppendChild(toHTML(c))
		}
		hn.AppendChild(tmpl)
	}
	for _, c := range n.children {
		hn.AppendChild(toHTML(c))
	}
	return hn
}
