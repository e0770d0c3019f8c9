package svg

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// splitCompoundPaths replaces every path containing more than one
// subpath with one path element per subpath. Each split path carries a
// shared compound-parent id and its subpath index, so hole/counter
// relationships between siblings stay recoverable. Non-geometric
// attributes are copied onto every split path; the original id moves
// to a provenance attribute so ids stay unique.
func splitCompoundPaths(doc *Document, logger hclog.Logger) *Document {
	nextCompound := 0

	var split func(el *Element)
	split = func(el *Element) {
		var children []*Element
		for _, child := range el.Children {
			if child.Tag != "path" {
				split(child)
				children = append(children, child)
				continue
			}

			cmds := ToAbsolute(ParsePathData(child.Attrs["d"]))
			subpaths := SplitSubpaths(cmds)
			if len(subpaths) <= 1 {
				children = append(children, child)
				continue
			}

			parentID := fmt.Sprintf("compound_%d", nextCompound)
			nextCompound++
			logger.Debug("splitting compound path",
				"id", child.Attrs["id"], "subpaths", len(subpaths), "compound", parentID)

			for idx, sub := range subpaths {
				part := &Element{Tag: "path", Attrs: make(map[string]string, len(child.Attrs)+3)}
				for k, v := range child.Attrs {
					switch k {
					case "d", "id":
						continue
					}
					part.Attrs[k] = v
				}
				part.Attrs["d"] = WritePathData(sub)
				part.Attrs[AttrCompoundParent] = parentID
				part.Attrs[AttrSubpathIndex] = fmt.Sprintf("%d", idx)
				if orig, ok := child.Attrs["id"]; ok {
					part.Attrs[AttrOriginalID] = orig
					part.Attrs["id"] = fmt.Sprintf("%s_sub%d", orig, idx)
				}
				children = append(children, part)
			}
		}
		el.Children = children
	}

	split(doc.Root)
	return doc
}
