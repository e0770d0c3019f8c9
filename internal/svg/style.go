package svg

import (
	"strings"

	"github.com/hashicorp/go-hclog"
)

// inheritable presentation properties resolved onto every element.
var inheritableProps = []string{
	"fill",
	"stroke",
	"stroke-width",
	"opacity",
	"fill-opacity",
	"stroke-opacity",
	"fill-rule",
	"clip-rule",
}

// fillableTags are the elements onto which an inherited default black
// fill may be materialized. Containers and defs never receive one.
var fillableTags = map[string]bool{
	"path":     true,
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"polygon":  true,
	"polyline": true,
	"line":     true,
	"text":     true,
}

// resolveStyles makes inherited style explicit. Declarations in a
// style attribute are promoted to presentation attributes first; the
// style attribute has higher specificity, so it overwrites. Then each
// element lacking an inheritable property receives the computed value
// from its environment. The SVG default fill of black is only
// materialized onto fillable elements that end up with no fill at all,
// so containers do not sprout spurious black fills.
func resolveStyles(doc *Document, logger hclog.Logger) *Document {
	var resolve func(el *Element, env map[string]string)
	resolve = func(el *Element, env map[string]string) {
		promoteStyleAttr(el)

		local := env
		changed := false
		for _, prop := range inheritableProps {
			if v, ok := el.Attrs[prop]; ok {
				if !changed {
					local = copyEnv(env)
					changed = true
				}
				local[prop] = v
			}
		}

		if el.Tag != "svg" && el.Tag != "defs" {
			for _, prop := range inheritableProps {
				if _, ok := el.Attrs[prop]; ok {
					continue
				}
				v, ok := local[prop]
				if !ok {
					continue
				}
				el.Attrs[prop] = v
			}
			if _, ok := el.Attrs["fill"]; !ok && fillableTags[el.Tag] {
				el.Attrs["fill"] = "black"
			}
		}

		for _, c := range el.Children {
			resolve(c, local)
		}
	}

	resolve(doc.Root, map[string]string{})
	return doc
}

// promoteStyleAttr splits a style attribute into presentation
// attributes. This is declaration splitting only, not a CSS cascade.
func promoteStyleAttr(el *Element) {
	style, ok := el.Attrs["style"]
	if !ok {
		return
	}
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if name == "" || value == "" {
			continue
		}
		el.Attrs[name] = value
	}
	delete(el.Attrs, "style")
}

func copyEnv(env map[string]string) map[string]string {
	out := make(map[string]string, len(env)+2)
	for k, v := range env {
		out[k] = v
	}
	return out
}
