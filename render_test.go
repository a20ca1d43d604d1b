package goliwc

import (
	"strings"
	"testing"

	"github.com/germtb/gox"
	"github.com/google/go-cmp/cmp"

	"github.com/germtb/goliwc/dom"
)

func newContainer(t *testing.T, doc *dom.Document) *dom.Node {
	t.Helper()
	c := doc.CreateElement("div")
	doc.Body().AppendChild(c)
	return c
}

func TestRenderIntrinsicTree(t *testing.T) {
	doc := setupTest(t)
	c := newContainer(t, doc)

	Render(gox.Element("ul", gox.Props{"class": "list", "hidden": false, "open": true, "n": 3, "data": []int{1}},
		gox.Element("li", nil, gox.Text("one")),
		gox.Fragment(
			gox.Element("li", nil, gox.Text("two")),
			gox.Element("li", nil, gox.Text("three")),
		),
	), c)

	want := `<ul class="list" n="3" open=""><li>one</li><li>two</li><li>three</li></ul>`
	if got := dom.InnerHTML(c); got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}
	if !Global.Mounted(c) {
		t.Error("container should be mounted")
	}
}

func TestRenderReplacesPreviousOutputOnly(t *testing.T) {
	doc := setupTest(t)
	c := newContainer(t, doc)
	foreign := doc.CreateElement("hr")
	c.AppendChild(foreign)

	Render(gox.Element("b", nil, gox.Text("1")), c)
	Render(gox.Element("i", nil, gox.Text("2")), c)

	if got, want := dom.InnerHTML(c), `<hr/><i>2</i>`; got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}

	Render(VNode{}, c)
	if got, want := dom.InnerHTML(c), `<hr/>`; got != want {
		t.Errorf("after teardown InnerHTML = %q, want %q", got, want)
	}
	if Global.Mounted(c) {
		t.Error("teardown should unmount the container")
	}
	Render(VNode{}, c)
}

func TestRefsLifecycle(t *testing.T) {
	doc := setupTest(t)
	c := newContainer(t, doc)

	var log []string
	refFor := func(name string) func(*dom.Node) {
		return func(n *dom.Node) {
			if n == nil {
				log = append(log, name+":nil")
				return
			}
			log = append(log, name+":"+n.Tag)
		}
	}

	Render(gox.Element("div", gox.Props{"ref": refFor("a")}), c)
	Render(gox.Element("span", gox.Props{"ref": refFor("b")}), c)
	Render(VNode{}, c)

	want := []string{"a:div", "a:nil", "b:span", "b:nil"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("ref calls mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentsSeeProviderContext(t *testing.T) {
	doc := setupTest(t)
	c := newContainer(t, doc)

	var seen []any
	probe := func(props gox.Props) gox.VNode {
		v, _ := CurrentContext().Value("theme")
		seen = append(seen, v)
		return VNode{}
	}

	Render(gox.Fragment(
		gox.Element(probe, nil),
		Provider(NewContext(map[string]any{"theme": "dark"}),
			gox.Element(probe, nil),
			Provider(NewContext(map[string]any{"theme": "light"}), gox.Element(probe, nil)),
			gox.Element(probe, nil),
		),
		gox.Element(probe, nil),
	), c)

	want := []any{nil, "dark", "light", "dark", nil}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("contexts mismatch (-want +got):\n%s", diff)
	}
	if !CurrentContext().IsDefault() {
		t.Error("context should be restored after rendering")
	}
}

type counter struct{ label string }

func (c counter) Render(props Props) VNode {
	return gox.Element("em", nil, gox.Text(c.label))
}

func TestRenderableComponent(t *testing.T) {
	doc := setupTest(t)
	c := newContainer(t, doc)

	Render(gox.Element(counter{label: "7"}, nil), c)

	if got := dom.InnerHTML(c); got != "<em>7</em>" {
		t.Errorf("InnerHTML = %q", got)
	}
}

func TestRenderUnknownTypePanics(t *testing.T) {
	doc := setupTest(t)
	c := newContainer(t, doc)

	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "unknown node type") {
			t.Errorf("recover() = %v, want unknown node type panic", r)
		}
	}()
	Render(VNode{Type: 42}, c)
}

func TestRehydrateReusesMatchingNodes(t *testing.T) {
	doc := setupTest(t)
	c := newContainer(t, doc)
	if _, err := doc.ParseFragment(c, `<p class="old"><span>stale</span></p><footer></footer>`); err != nil {
		t.Fatal(err)
	}
	p := c.FirstChild()
	span := p.FirstChild()

	Rehydrate(gox.Element("p", gox.Props{"id": "new"}, gox.Element("span", nil, gox.Text("fresh"))), c)

	if c.FirstChild() != p || p.FirstChild() != span {
		t.Error("matching nodes should be adopted")
	}
	if got, want := dom.InnerHTML(c), `<p id="new"><span>fresh</span></p>`; got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}
}

func TestCloneElementMergesProps(t *testing.T) {
	v := VNode{
		Type:     "a",
		Props:    Props{"href": "/x", "title": "t"},
		Children: []VNode{CreateTextNode("go")},
	}
	clone := CloneElement(v, Props{"title": nil, "rel": "next"})

	if v.Props["title"] != "t" {
		t.Error("original props must not change")
	}
	want := Props{"href": "/x", "title": nil, "rel": "next"}
	if diff := cmp.Diff(want, clone.Props); diff != "" {
		t.Errorf("props mismatch (-want +got):\n%s", diff)
	}
	if len(clone.Children) != 1 {
		t.Error("children should be kept")
	}
}
