package goliwc

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/germtb/gox"
	"github.com/mattn/go-runewidth"
)

// maxTextWidth bounds the display width of text shown by FprintTree.
const maxTextWidth = 40

// DebugTree prints the VNode tree to stdout for debugging.
func DebugTree(v VNode) {
	FprintTree(os.Stdout, v)
}

// SprintTree returns the VNode tree as a string for debugging.
func SprintTree(v VNode) string {
	var sb strings.Builder
	FprintTree(&sb, v)
	return sb.String()
}

// FprintTree writes the VNode tree to the given writer for debugging.
// Placeholders are shown with their group and, inline, the number of host
// nodes they carry.
func FprintTree(w io.Writer, v VNode) {
	fprintTreeIndent(w, v, 0)
}

func fprintTreeIndent(w io.Writer, v VNode, depth int) {
	indent := strings.Repeat("  ", depth)

	if IsEmpty(v) {
		fmt.Fprintf(w, "%s<nil>\n", indent)
		return
	}
	if text, ok := GetTextContent(v); ok {
		fmt.Fprintf(w, "%s%q\n", indent, runewidth.Truncate(text, maxTextWidth, "…"))
		return
	}

	fmt.Fprintf(w, "%s%s%s\n", indent, nodeLabel(v), propsLabel(v.Props))
	for _, child := range v.Children {
		fprintTreeIndent(w, child, depth+1)
	}
}

func nodeLabel(v VNode) string {
	if p, ok := ProjectionOf(v); ok {
		name := p.GroupName()
		if name == "" {
			name = "default"
		}
		switch x := p.(type) {
		case InlineSlot:
			return fmt.Sprintf("slot[inline %s, %d nodes]", name, len(x.Nodes))
		default:
			return fmt.Sprintf("slot[isolated %s]", name)
		}
	}
	if ctx, ok := ProviderContext(v); ok {
		if ctx.IsDefault() {
			return "provider[default]"
		}
		return fmt.Sprintf("provider%v", ctx.Keys())
	}
	if s, ok := TypeString(v); ok {
		if s == gox.FragmentNodeType {
			return "fragment"
		}
		return s
	}
	return fmt.Sprintf("%T", v.Type)
}

func propsLabel(props Props) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if k == "context" || k == "projection" || k == "children" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		val := props[k]
		if child, ok := val.(VNode); ok {
			parts[i] = k + "=" + nodeLabel(child)
			continue
		}
		parts[i] = fmt.Sprintf("%s=%v", k, val)
	}
	return " " + strings.Join(parts, " ")
}
