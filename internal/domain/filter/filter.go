// Package filter implements the ordered filter/sort pipeline applied to
// score sequences.
//
// A Builder accumulates filters under merge and replace rules keyed by
// Filter.Same, and Build freezes the result into an immutable Collection
// that can be applied to any number of score slices.
package filter

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies the variant of a Filter.
type Kind int

// Filter kinds.
const (
	KindTop Kind = iota
	KindBottom
	KindPlayerAllow
	KindBinaryAllow
	KindLanguageAllow
	KindUniquePlayers
	KindUniqueBinaries
	KindUniqueLanguages
	KindSortBy
)

// Filter is a single rule transforming a score sequence. The zero value is
// Top(0). Filters are values; constructors copy their slice arguments.
type Filter struct {
	kind   Kind
	n      int
	values []string
	column SortColumn
}

// Top keeps the first n scores of the incoming order.
func Top(n int) Filter { return Filter{kind: KindTop, n: n} }

// Bottom keeps the last n scores, preserving their relative order.
func Bottom(n int) Filter { return Filter{kind: KindBottom, n: n} }

// PlayerAllow keeps scores whose name is one of names.
func PlayerAllow(names ...string) Filter {
	return Filter{kind: KindPlayerAllow, values: slices.Clone(names)}
}

// BinaryAllow keeps scores whose command is one of commands.
func BinaryAllow(commands ...string) Filter {
	return Filter{kind: KindBinaryAllow, values: slices.Clone(commands)}
}

// LanguageAllow keeps scores whose language is one of languages.
func LanguageAllow(languages ...string) Filter {
	return Filter{kind: KindLanguageAllow, values: slices.Clone(languages)}
}

// UniquePlayers keeps the first score seen for each name.
func UniquePlayers() Filter { return Filter{kind: KindUniquePlayers} }

// UniqueBinaries keeps the first score seen for each command.
func UniqueBinaries() Filter { return Filter{kind: KindUniqueBinaries} }

// UniqueLanguages keeps the first score seen for each language.
func UniqueLanguages() Filter { return Filter{kind: KindUniqueLanguages} }

// SortBy stable-sorts ascending by column.
func SortBy(column SortColumn) Filter { return Filter{kind: KindSortBy, column: column} }

// Kind returns the filter variant.
func (f Filter) Kind() Kind { return f.kind }

// N returns the count of a Top or Bottom filter.
func (f Filter) N() int { return f.n }

// Values returns a copy of an allow-list payload.
func (f Filter) Values() []string { return slices.Clone(f.values) }

// Column returns the column of a SortBy filter.
func (f Filter) Column() SortColumn { return f.column }

// isAllow reports whether f carries an allow-list payload.
func (f Filter) isAllow() bool {
	switch f.kind {
	case KindPlayerAllow, KindBinaryAllow, KindLanguageAllow:
		return true
	}
	return false
}

// Same is the dedup relation used by the Builder. It is not structural
// equality:
//
//	allow lists, SortBy   same kind and identical payload
//	Unique* flags         same kind
//	Top, Bottom           always, in any combination, whatever the count
//
// No other pair is Same.
func (f Filter) Same(other Filter) bool {
	switch f.kind {
	case KindTop, KindBottom:
		return other.kind == KindTop || other.kind == KindBottom
	case KindPlayerAllow, KindBinaryAllow, KindLanguageAllow:
		return other.kind == f.kind && slices.Equal(f.values, other.values)
	case KindUniquePlayers, KindUniqueBinaries, KindUniqueLanguages:
		return other.kind == f.kind
	case KindSortBy:
		return other.kind == KindSortBy && other.column == f.column
	}
	return false
}

func (f Filter) String() string {
	switch f.kind {
	case KindTop:
		return fmt.Sprintf("top(%d)", f.n)
	case KindBottom:
		return fmt.Sprintf("bottom(%d)", f.n)
	case KindPlayerAllow:
		return "player[" + strings.Join(f.values, ",") + "]"
	case KindBinaryAllow:
		return "binary[" + strings.Join(f.values, ",") + "]"
	case KindLanguageAllow:
		return "language[" + strings.Join(f.values, ",") + "]"
	case KindUniquePlayers:
		return "unique(players)"
	case KindUniqueBinaries:
		return "unique(binaries)"
	case KindUniqueLanguages:
		return "unique(languages)"
	case KindSortBy:
		return "sort(" + f.column.String() + ")"
	}
	return "unknown"
}
