// Package svg implements a minimal SVG document model and the
// normalization pipeline that rewrites a vectorizer-produced document
// into a flat, explicitly-styled set of path elements: reference
// expansion, style resolution, primitive-to-path conversion, transform
// flattening and compound path splitting.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Element is a single node in the document tree. Attributes are stored
// by local name; namespace prefixes on attribute names are preserved
// only for xlink:href, which reference expansion understands.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Children []*Element
	Text     string
}

// ViewBox is the canonical coordinate frame of the document. All
// area and edge-proximity heuristics are expressed relative to it.
type ViewBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Diagonal returns the length of the viewBox diagonal.
func (v ViewBox) Diagonal() float64 {
	return math.Hypot(v.Width, v.Height)
}

// Document is a parsed SVG document.
type Document struct {
	Root    *Element
	ViewBox ViewBox
}

// Parse reads an SVG document. The decoder accepts any charset the
// document declares, following the usual html charset machinery.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var stack []*Element
	var root *Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{
				Tag:   t.Name.Local,
				Attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				name := a.Name.Local
				if a.Name.Space != "" && strings.HasSuffix(a.Name.Space, "xlink") {
					name = "xlink:href"
				}
				el.Attrs[name] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing svg: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += strings.TrimSpace(string(t))
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parsing svg: no root element")
	}

	doc := &Document{Root: root}
	doc.ViewBox = parseViewBox(root)
	return doc, nil
}

// ParseString reads an SVG document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// parseViewBox reads the viewBox attribute, falling back to the root
// width/height when absent.
func parseViewBox(root *Element) ViewBox {
	if raw, ok := root.Attrs["viewBox"]; ok {
		fields := strings.FieldsFunc(raw, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t' || r == '\n'
		})
		if len(fields) == 4 {
			var vals [4]float64
			ok := true
			for i, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					ok = false
					break
				}
				vals[i] = v
			}
			if ok {
				return ViewBox{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
			}
		}
	}

	w := parseLength(root.Attrs["width"])
	h := parseLength(root.Attrs["height"])
	return ViewBox{Width: w, Height: h}
}

// parseLength parses a numeric length, ignoring a trailing unit.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		end--
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// Clone returns a deep copy of the element and its subtree.
func (e *Element) Clone() *Element {
	c := &Element{
		Tag:   e.Tag,
		Attrs: make(map[string]string, len(e.Attrs)),
		Text:  e.Text,
	}
	for k, v := range e.Attrs {
		c.Attrs[k] = v
	}
	c.Children = make([]*Element, len(e.Children))
	for i, child := range e.Children {
		c.Children[i] = child.Clone()
	}
	return c
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{Root: d.Root.Clone(), ViewBox: d.ViewBox}
}

// Walk visits every element depth-first in document order. The parents
// slice is the ancestor chain from root to the element's parent and
// must not be retained across calls.
func (d *Document) Walk(fn func(el *Element, parents []*Element)) {
	var walk func(el *Element, parents []*Element)
	walk = func(el *Element, parents []*Element) {
		fn(el, parents)
		parents = append(parents, el)
		for _, c := range el.Children {
			walk(c, parents)
		}
	}
	walk(d.Root, nil)
}

// ByID returns a lookup of every element carrying an id attribute.
// Later duplicates do not displace the first occurrence.
func (d *Document) ByID() map[string]*Element {
	ids := make(map[string]*Element)
	d.Walk(func(el *Element, _ []*Element) {
		if id, ok := el.Attrs["id"]; ok && id != "" {
			if _, seen := ids[id]; !seen {
				ids[id] = el
			}
		}
	})
	return ids
}

// Paths returns every path element in document order.
func (d *Document) Paths() []*Element {
	var out []*Element
	d.Walk(func(el *Element, _ []*Element) {
		if el.Tag == "path" {
			out = append(out, el)
		}
	})
	return out
}

// VisiblePaths returns every path element outside defs subtrees, in
// document order. Paint order over these is the document z order.
func (d *Document) VisiblePaths() []*Element {
	var out []*Element
	d.Walk(func(el *Element, parents []*Element) {
		if el.Tag != "path" {
			return
		}
		for _, p := range parents {
			if p.Tag == "defs" {
				return
			}
		}
		out = append(out, el)
	})
	return out
}

// Markup serializes the document back to SVG text. Attributes are
// emitted in sorted order so output is deterministic.
func (d *Document) Markup() string {
	var sb strings.Builder
	writeElement(&sb, d.Root, 0)
	return sb.String()
}

func writeElement(sb *strings.Builder, el *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteByte('<')
	sb.WriteString(el.Tag)

	keys := make([]string, 0, len(el.Attrs))
	for k := range el.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		xml.EscapeText(sb, []byte(el.Attrs[k]))
		sb.WriteByte('"')
	}

	if len(el.Children) == 0 && el.Text == "" {
		sb.WriteString("/>\n")
		return
	}

	sb.WriteByte('>')
	if el.Text != "" {
		xml.EscapeText(sb, []byte(el.Text))
	}
	if len(el.Children) > 0 {
		sb.WriteByte('\n')
		for _, c := range el.Children {
			writeElement(sb, c, depth+1)
		}
		sb.WriteString(indent)
	}
	sb.WriteString("</")
	sb.WriteString(el.Tag)
	sb.WriteString(">\n")
}
