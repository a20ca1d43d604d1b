package goliwc

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/germtb/gox"
	"github.com/google/go-cmp/cmp"

	"github.com/germtb/goliwc/dom"
)

// greeting renders its name prop followed by its projected children.
func greeting(props gox.Props) gox.VNode {
	children, _ := props["children"].([]gox.VNode)
	kids := []gox.VNode{gox.Element("span", nil, gox.Text(fmt.Sprintf("hello %v", props["name"])))}
	kids = append(kids, children...)
	return gox.Element("p", nil, kids...)
}

var greetingProps = []string{"name", "user-id", "count", "data"}

func registerGreeting(t *testing.T, doc *dom.Document, opts Options) {
	t.Helper()
	if err := Register(doc.Registry(), greeting, "x-greeting", greetingProps, opts); err != nil {
		t.Fatal(err)
	}
}

func mustElement(t *testing.T, n *dom.Node) *Element {
	t.Helper()
	e, ok := ElementOf(n)
	if !ok {
		t.Fatalf("%s has no element behaviour", n.Tag)
	}
	return e
}

func TestParsedRendersInline(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{})

	el := parseOne(t, doc, doc.Body(), `<x-greeting name="ada">!</x-greeting>`)
	e := mustElement(t, el)

	if e.State() != StateParsed {
		t.Errorf("State = %v, want parsed", e.State())
	}
	if got, want := dom.InnerHTML(el), `<p><span>hello ada</span><slot>!</slot></p>`; got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}
}

func TestParsedRendersIsolated(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{Isolated: true})

	el := parseOne(t, doc, doc.Body(), `<x-greeting name="ada">!</x-greeting>`)
	e := mustElement(t, el)

	if !e.Isolated() || e.Target() != el.ShadowRoot() {
		t.Fatal("isolated element should render into its shadow root")
	}
	if got, want := dom.InnerHTML(el.ShadowRoot()), `<p><span>hello ada</span><slot></slot></p>`; got != want {
		t.Errorf("shadow InnerHTML = %q, want %q", got, want)
	}
	if got := dom.InnerHTML(el); got != "!" {
		t.Errorf("light children should stay in place, got %q", got)
	}
	if dom.AssignedSlot(el.FirstChild()) == nil {
		t.Error("light text should be assigned to the default slot")
	}
}

func TestAttributeChangeRerenders(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{})
	el := parseOne(t, doc, doc.Body(), `<x-greeting name="ada" user-id="3">!</x-greeting>`)
	e := mustElement(t, el)

	el.SetAttribute("name", "bob")

	if e.State() != StateUpdated {
		t.Errorf("State = %v, want updated", e.State())
	}
	if got, want := dom.InnerHTML(el), `<p><span>hello bob</span><slot>!</slot></p>`; got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}

	el.RemoveAttribute("user-id")
	for _, key := range []string{"user-id", "userId"} {
		v, present := e.Tree().Props[key]
		if !present || v != nil {
			t.Errorf("prop %q = %v (present=%v), want explicit nil", key, v, present)
		}
	}
}

func TestAttributeChangeBeforeRenderIsBuffered(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{})
	el := doc.CreateElement("x-greeting")
	e := mustElement(t, el)

	el.SetAttribute("name", "early")
	if e.State() != StateUnparsed {
		t.Fatalf("State = %v, want unparsed", e.State())
	}
	if v, _ := e.Get("name"); v != "early" {
		t.Errorf("buffered name = %v, want early", v)
	}

	doc.Body().AppendChild(el)
	if got, want := dom.InnerHTML(el), `<p><span>hello early</span><slot></slot></p>`; got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}
}

func TestSetBeforeRenderTriggersFirstRender(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{})
	el := doc.CreateElement("x-greeting")
	e := mustElement(t, el)

	if err := e.Set("name", "cy"); err != nil {
		t.Fatal(err)
	}

	if e.State() != StateParsed {
		t.Errorf("State = %v, want parsed", e.State())
	}
	if got, want := dom.InnerHTML(el), `<p><span>hello cy</span><slot></slot></p>`; got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}
	if v, _ := el.GetAttribute("name"); v != "cy" {
		t.Errorf("reflected attribute = %q, want cy", v)
	}

	// The host's own readiness signal no longer re-renders.
	doc.Body().AppendChild(el)
	if e.State() != StateParsed {
		t.Errorf("State after connect = %v, want parsed", e.State())
	}
}

func TestSetAfterRenderIsIdempotent(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{})
	el := parseOne(t, doc, doc.Body(), `<x-greeting name="ada">!</x-greeting>`)
	e := mustElement(t, el)

	if err := e.Set("name", "zed"); err != nil {
		t.Fatal(err)
	}
	first := dom.InnerHTML(el)
	if err := e.Set("name", "zed"); err != nil {
		t.Fatal(err)
	}
	second := dom.InnerHTML(el)

	if first != second {
		t.Errorf("setting the same value twice changed output: %q then %q", first, second)
	}
	if first != `<p><span>hello zed</span><slot>!</slot></p>` {
		t.Errorf("InnerHTML = %q", first)
	}
	if v, _ := e.Get("name"); v != "zed" {
		t.Errorf("Get(name) = %v", v)
	}
}

func TestSetReflectsOnlyPrimitives(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{})
	el := parseOne(t, doc, doc.Body(), `<x-greeting name="ada" data="keep"></x-greeting>`)
	e := mustElement(t, el)

	tests := []struct {
		prop  string
		value any
		attr  string
	}{
		{"count", 5, "5"},
		{"count", 2.5, "2.5"},
		{"name", true, "true"},
		{"name", "text", "text"},
	}
	for _, tt := range tests {
		if err := e.Set(tt.prop, tt.value); err != nil {
			t.Fatal(err)
		}
		if got, _ := el.GetAttribute(tt.prop); got != tt.attr {
			t.Errorf("Set(%q, %v): attribute = %q, want %q", tt.prop, tt.value, got, tt.attr)
		}
		// Reflection does not round-trip the value through its string form.
		if got, _ := e.Get(tt.prop); got != tt.value {
			t.Errorf("Set(%q, %v): prop = %#v", tt.prop, tt.value, got)
		}
	}

	payload := map[string]int{"a": 1}
	if err := e.Set("data", payload); err != nil {
		t.Fatal(err)
	}
	if got, _ := el.GetAttribute("data"); got != "keep" {
		t.Errorf("non-primitive should not be reflected, attribute = %q", got)
	}
	got, _ := e.Get("data")
	if diff := cmp.Diff(payload, got); diff != "" {
		t.Errorf("data prop mismatch (-want +got):\n%s", diff)
	}

	if err := e.Set("count", nil); err != nil {
		t.Fatal(err)
	}
	if el.HasAttribute("count") {
		t.Error("nil should remove the reflected attribute")
	}
}

func TestUnknownProperty(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{})
	e := mustElement(t, doc.CreateElement("x-greeting"))

	if err := e.Set("nope", 1); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Set error = %v, want ErrUnknownProperty", err)
	}
	if _, err := e.Get("nope"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Get error = %v, want ErrUnknownProperty", err)
	}
	if e.State() != StateUnparsed {
		t.Error("rejected write should not render")
	}
}

func TestDetachClearsTreeAndIsIdempotent(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{})
	el := parseOne(t, doc, doc.Body(), `<x-greeting name="ada">!</x-greeting>`)
	e := mustElement(t, el)

	doc.Body().RemoveChild(el)

	if e.State() != StateDetached {
		t.Errorf("State = %v, want detached", e.State())
	}
	if !IsEmpty(e.Tree()) {
		t.Error("tree should be dropped on detach")
	}
	if Global.Mounted(el) {
		t.Error("render target should hold no output")
	}
	if got := dom.InnerHTML(el); got != "" {
		t.Errorf("InnerHTML = %q, want empty", got)
	}

	e.Detach()
	if e.State() != StateDetached {
		t.Errorf("State after second detach = %v", e.State())
	}

	el.SetAttribute("name", "ghost")
	if got := dom.InnerHTML(el); got != "" {
		t.Errorf("detached element re-rendered: %q", got)
	}
}

func TestDetachTearsDownProjectedElements(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{})
	registerReader(t, doc)
	outer := parseOne(t, doc, doc.Body(), `<x-greeting name="ada"><x-reader></x-reader></x-greeting>`)

	inner := findTag(t, outer, "x-reader")

	doc.Body().RemoveChild(outer)

	if got := mustElement(t, inner).State(); got != StateDetached {
		t.Errorf("projected element state = %v, want detached", got)
	}
}

func TestHydrateAdoptsExistingMarkup(t *testing.T) {
	doc := setupTest(t)
	registerGreeting(t, doc, Options{Isolated: true})

	el := doc.CreateElement("x-greeting")
	el.SetAttribute(HydrateAttr, "")
	el.SetAttribute("name", "ada")
	stale := parseOne(t, doc, mustElement(t, el).Target(), `<p><span>hello ada</span></p>`)

	doc.Body().AppendChild(el)

	if el.ShadowRoot().FirstChild() != stale {
		t.Error("hydration should adopt the existing <p>")
	}
	if got, want := dom.InnerHTML(el.ShadowRoot()), `<p><span>hello ada</span><slot></slot></p>`; got != want {
		t.Errorf("shadow InnerHTML = %q, want %q", got, want)
	}
}

func TestLifecycleLogging(t *testing.T) {
	doc := setupTest(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	registerGreeting(t, doc, Options{Logger: logger})

	el := parseOne(t, doc, doc.Body(), `<x-greeting name="ada"></x-greeting>`)
	el.SetAttribute("name", "bob")
	doc.Body().RemoveChild(el)

	out := buf.String()
	for _, msg := range []string{"element registered", "element parsed", "element updated", "element detached"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log missing %q:\n%s", msg, out)
		}
	}
}

func TestStateString(t *testing.T) {
	want := []string{"unparsed", "parsed", "updated", "detached"}
	got := []string{StateUnparsed.String(), StateParsed.String(), StateUpdated.String(), StateDetached.String()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("State names mismatch (-want +got):\n%s", diff)
	}
}
