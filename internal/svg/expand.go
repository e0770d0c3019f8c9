package svg

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// expandReferences replaces every use element with a deep copy of the
// element it references. The use element's x/y offset is folded into a
// translate prepended to the copy's transform, and the use element's
// other presentation attributes are carried onto the copy where the
// copy has none of its own. A use with a missing, unresolvable or
// circular reference is left untouched.
func expandReferences(doc *Document, logger hclog.Logger) *Document {
	ids := doc.ByID()

	var expand func(el *Element, active map[string]bool)
	expand = func(el *Element, active map[string]bool) {
		for i, child := range el.Children {
			if child.Tag != "use" {
				expand(child, active)
				continue
			}

			ref := useReference(child)
			target, ok := ids[ref]
			if !ok || ref == "" {
				logger.Warn("unresolvable use reference", "href", ref)
				continue
			}
			if active[ref] {
				// A use inside the subtree it references would clone
				// itself forever.
				logger.Warn("circular use reference", "href", ref)
				continue
			}

			clone := target.Clone()
			delete(clone.Attrs, "id")

			// Fold the positional offset into a prepended translate.
			x := parseLength(child.Attrs["x"])
			y := parseLength(child.Attrs["y"])
			if x != 0 || y != 0 {
				offset := fmt.Sprintf("translate(%s %s)", formatCoord(x), formatCoord(y))
				if existing, ok := clone.Attrs["transform"]; ok {
					clone.Attrs["transform"] = offset + " " + existing
				} else {
					clone.Attrs["transform"] = offset
				}
			}

			// The use element's own attributes win only where the copy
			// is silent.
			for k, v := range child.Attrs {
				switch k {
				case "x", "y", "href", "xlink:href", "id", "width", "height":
					continue
				}
				if k == "transform" {
					if t, ok := clone.Attrs["transform"]; ok {
						clone.Attrs["transform"] = v + " " + t
					} else {
						clone.Attrs["transform"] = v
					}
					continue
				}
				if _, ok := clone.Attrs[k]; !ok {
					clone.Attrs[k] = v
				}
			}

			el.Children[i] = clone
			active[ref] = true
			expand(clone, active)
			delete(active, ref)
		}
	}

	expand(doc.Root, map[string]bool{})
	return doc
}

// useReference extracts the fragment id from a use element's href.
func useReference(el *Element) string {
	href := el.Attrs["href"]
	if href == "" {
		href = el.Attrs["xlink:href"]
	}
	return strings.TrimPrefix(strings.TrimSpace(href), "#")
}
