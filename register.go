package goliwc

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"github.com/germtb/goliwc/dom"
)

// Options configures a registered element type.
type Options struct {
	// Isolated renders into a shadow root and lets the host project light
	// children through native slots. Otherwise the element renders into
	// itself and projection is simulated.
	Isolated bool

	// Logger receives lifecycle events at debug level. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// TagNamer lets a component choose the tag it registers under.
type TagNamer interface {
	TagName() string
}

// AttributeObserver lets a component declare its exposed properties.
type AttributeObserver interface {
	ObservedAttributes() []string
}

// Register defines tagName in reg as a host element rendering component.
//
// component is a gox.Component, a func(gox.Props) gox.VNode or a Renderable.
// An empty tagName falls back to TagNamer, then to the kebab-cased name of the
// component's function or type. A nil propNames falls back to
// AttributeObserver. The declared names are observed as attributes and
// exposed through Element.Get and Element.Set.
func Register(reg *dom.Registry, component any, tagName string, propNames []string, opts Options) error {
	if component == nil {
		return fmt.Errorf("register %q: nil component", tagName)
	}
	if tagName == "" {
		tagName = defaultTagName(component)
	}
	if propNames == nil {
		if o, ok := component.(AttributeObserver); ok {
			propNames = o.ObservedAttributes()
		}
	}
	names := append([]string(nil), propNames...)

	err := reg.Define(tagName, dom.Definition{
		Observed: names,
		Construct: func(n *dom.Node) dom.Callbacks {
			return newElement(n, component, names, opts)
		},
	})
	if err != nil {
		return fmt.Errorf("register %q: %w", tagName, err)
	}
	opts.logger().Debug("element registered", "tag", tagName, "props", names, "isolated", opts.Isolated)
	return nil
}

func defaultTagName(component any) string {
	if t, ok := component.(TagNamer); ok {
		return t.TagName()
	}

	var name string
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Func {
		if fn := runtime.FuncForPC(v.Pointer()); fn != nil {
			name = fn.Name()
		}
	} else {
		t := v.Type()
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		name = t.Name()
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	tag := kebabCase(name)
	if !strings.Contains(tag, "-") {
		tag = "x-" + tag
	}
	return tag
}

// kebabCase turns "UserCard" into "user-card". Characters that cannot appear
// in a tag name are dropped.
func kebabCase(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r), unicode.IsDigit(r), r == '-':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
