package registry

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/colour"
	"github.com/jmylchreest/inkform/internal/geometry"
	"github.com/jmylchreest/inkform/internal/svg"
)

// DefaultGroupDeltaE is the perceptual distance within which two solid
// paints fall into the same paint group.
const DefaultGroupDeltaE = 12.0

// Registry is the immutable product of walking a normalized document.
type Registry struct {
	Entries []*PathEntry  `json:"entries"`
	Paints  []*Paint      `json:"paints"`
	Groups  []*PaintGroup `json:"groups"`

	paintByKey map[string]*Paint
	groupByID  map[string]*PaintGroup
}

// Build walks the normalized document in document order, fingerprints
// every path through the provider, resolves and deduplicates paints,
// and partitions solid paints into perceptual groups at the given ΔE
// threshold (zero selects DefaultGroupDeltaE).
//
// Degenerate paths, zero area and zero perimeter, are not
// registered.
func Build(doc *svg.Document, provider geometry.Provider, groupDeltaE float64, logger hclog.Logger) *Registry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if groupDeltaE <= 0 {
		groupDeltaE = DefaultGroupDeltaE
	}

	reg := &Registry{
		paintByKey: make(map[string]*Paint),
		groupByID:  make(map[string]*PaintGroup),
	}
	defs := doc.ByID()

	z := 0
	for _, el := range doc.VisiblePaths() {
		entry := reg.register(el, provider, defs, z)
		if entry == nil {
			continue
		}
		z++
	}

	reg.buildGroups(groupDeltaE)

	logger.Debug("registry built",
		"entries", len(reg.Entries),
		"paints", len(reg.Paints),
		"groups", len(reg.Groups))
	return reg
}

// register fingerprints and records one path element. Degenerate
// shapes return nil.
func (r *Registry) register(el *svg.Element, provider geometry.Provider, defs map[string]*svg.Element, z int) *PathEntry {
	shape := geometry.Shape{
		PathData: el.Attrs["d"],
		FillRule: el.Attrs["fill-rule"],
	}
	fp := fingerprint(provider, shape)
	if fp.Area == 0 && fp.Perimeter == 0 {
		return nil
	}

	entry := &PathEntry{
		ID:          fmt.Sprintf("path_%d", len(r.Entries)),
		OriginalID:  originalID(el),
		Fingerprint: fp,
		FillRule:    shape.FillRule,
		ZIndex:      z,
		PathData:    shape.PathData,
	}
	if entry.FillRule == "" {
		entry.FillRule = "nonzero"
	}

	entry.CompoundParent = el.Attrs[svg.AttrCompoundParent]
	if idx, ok := el.Attrs[svg.AttrSubpathIndex]; ok {
		entry.SubpathIndex, _ = strconv.Atoi(idx)
	}

	entry.FillPaint = r.internPaint(ResolvePaint(el.Attrs["fill"], defs))
	if stroke, ok := el.Attrs["stroke"]; ok {
		p := ResolvePaint(stroke, defs)
		if p.Kind != PaintNone {
			entry.StrokePaint = r.internPaint(p)
		}
	}

	r.Entries = append(r.Entries, entry)
	return entry
}

// originalID prefers the pre-split id recorded by the normalizer.
func originalID(el *svg.Element) string {
	if orig, ok := el.Attrs[svg.AttrOriginalID]; ok {
		return orig
	}
	return el.Attrs["id"]
}

// internPaint deduplicates a paint by canonical key, assigning a
// sequential id on first sighting.
func (r *Registry) internPaint(p Paint) *Paint {
	key := p.CanonicalKey()
	if existing, ok := r.paintByKey[key]; ok {
		return existing
	}
	p.ID = fmt.Sprintf("paint_%d", len(r.Paints))
	stored := &p
	r.paintByKey[key] = stored
	r.Paints = append(r.Paints, stored)
	return stored
}

// buildGroups partitions solid paints with non-zero alpha by
// perceptual clustering and adds every other paint as a singleton
// group. Solid clusters take ids pg_<n>, non-solid singletons
// pg_ns_<n>, in emission order.
func (r *Registry) buildGroups(threshold float64) {
	var solids []*Paint
	var others []*Paint
	for _, p := range r.Paints {
		if p.Kind == PaintSolid && p.RGBA.A > 0 {
			solids = append(solids, p)
		} else {
			others = append(others, p)
		}
	}

	clusters := colour.ClusterByDistance(solids, threshold, func(a, b *Paint) float64 {
		return colour.DeltaE(a.Lab, b.Lab)
	})

	for i, cluster := range clusters {
		group := &PaintGroup{
			ID:             fmt.Sprintf("pg_%d", i),
			Representative: cluster[0],
		}
		for _, p := range cluster {
			group.Members = append(group.Members, p.ID)
		}
		r.Groups = append(r.Groups, group)
		r.groupByID[group.ID] = group
	}

	for i, p := range others {
		group := &PaintGroup{
			ID:             fmt.Sprintf("pg_ns_%d", i),
			Representative: p,
			Members:        []string{p.ID},
		}
		r.Groups = append(r.Groups, group)
		r.groupByID[group.ID] = group
	}
}

// GroupByID returns a paint group by id.
func (r *Registry) GroupByID(id string) *PaintGroup {
	return r.groupByID[id]
}

// GroupOf returns the group containing the given paint.
func (r *Registry) GroupOf(p *Paint) *PaintGroup {
	if p == nil {
		return nil
	}
	for _, g := range r.Groups {
		for _, id := range g.Members {
			if id == p.ID {
				return g
			}
		}
	}
	return nil
}

// EntriesFilledBy returns the entries whose fill paint belongs to the
// group, in document order.
func (r *Registry) EntriesFilledBy(g *PaintGroup) []*PathEntry {
	member := make(map[string]bool, len(g.Members))
	for _, id := range g.Members {
		member[id] = true
	}
	var out []*PathEntry
	for _, e := range r.Entries {
		if e.FillPaint != nil && member[e.FillPaint.ID] {
			out = append(out, e)
		}
	}
	return out
}

// EntryByID returns an entry by path id.
func (r *Registry) EntryByID(id string) *PathEntry {
	for _, e := range r.Entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
