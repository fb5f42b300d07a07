package filter

import "slices"

// Builder stages filters in caller order. It is owned by one caller while
// accumulating and is not safe for concurrent use.
type Builder struct {
	filters []Filter
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add stages f. An allow list of a kind already staged is merged into it:
// the new values come first, then the old ones, duplicates dropped, and the
// merged filter moves to the end. Any other filter evicts every staged
// filter Same as it and is appended.
func (b *Builder) Add(f Filter) *Builder {
	if f.isAllow() {
		if i := slices.IndexFunc(b.filters, func(g Filter) bool { return g.kind == f.kind }); i >= 0 {
			merged := Filter{kind: f.kind, values: union(f.values, b.filters[i].values)}
			b.filters = slices.DeleteFunc(b.filters, func(g Filter) bool { return g.kind == f.kind })
			b.filters = append(b.filters, merged)
			return b
		}
		b.filters = append(b.filters, Filter{kind: f.kind, values: slices.Clone(f.values)})
		return b
	}
	b.filters = slices.DeleteFunc(b.filters, f.Same)
	b.filters = append(b.filters, f)
	return b
}

// Remove drops every staged filter Same as f. Allow lists are removed only
// on an exact payload match; no partial subtraction happens.
func (b *Builder) Remove(f Filter) *Builder {
	b.filters = slices.DeleteFunc(b.filters, f.Same)
	return b
}

// Clear drops all staged filters.
func (b *Builder) Clear() *Builder {
	b.filters = nil
	return b
}

// Len returns the number of staged filters.
func (b *Builder) Len() int { return len(b.filters) }

// Build freezes the staged filters into a Collection. Later changes to the
// Builder do not affect it.
func (b *Builder) Build() *Collection {
	filters := make([]Filter, len(b.filters))
	for i, f := range b.filters {
		f.values = slices.Clone(f.values)
		filters[i] = f
	}
	return &Collection{filters: filters}
}

// union returns first followed by second with duplicates removed, keeping
// the first occurrence of each value.
func union(first, second []string) []string {
	out := make([]string, 0, len(first)+len(second))
	seen := make(map[string]struct{}, len(first)+len(second))
	for _, list := range [][]string{first, second} {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
