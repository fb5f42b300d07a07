package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Pair is a textual filter expression such as top=5 or player=alice,bob.
type Pair struct {
	Key   string
	Value string
}

// ParseExpr turns one key/value expression into a Filter. Recognised keys:
//
//	top=N, bottom=N
//	player=a,b   binary=x,y   language=go,rust   (plural forms accepted)
//	unique=players|binaries|languages
//	sort=<column alias>
func ParseExpr(key, value string) (Filter, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	switch key {
	case "top", "bottom":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return Filter{}, fmt.Errorf("%w: %s needs a non-negative count, got %q", ErrInvalidFilter, key, value)
		}
		if key == "top" {
			return Top(n), nil
		}
		return Bottom(n), nil
	case "player", "players", "name", "names":
		return listFilter(key, value, PlayerAllow)
	case "binary", "binaries":
		return listFilter(key, value, BinaryAllow)
	case "language", "languages":
		return listFilter(key, value, LanguageAllow)
	case "unique":
		switch strings.ToLower(value) {
		case "player", "players", "name", "names":
			return UniquePlayers(), nil
		case "binary", "binaries":
			return UniqueBinaries(), nil
		case "language", "languages":
			return UniqueLanguages(), nil
		}
		return Filter{}, fmt.Errorf("%w: unique over unknown field %q", ErrInvalidFilter, value)
	case "sort":
		column, err := ParseSortColumn(value)
		if err != nil {
			return Filter{}, err
		}
		return SortBy(column), nil
	}
	return Filter{}, fmt.Errorf("%w: unknown key %q", ErrInvalidFilter, key)
}

// ParseAssignment parses "key=value".
func ParseAssignment(text string) (Filter, error) {
	key, value, ok := strings.Cut(text, "=")
	if !ok {
		return Filter{}, fmt.Errorf("%w: expected key=value, got %q", ErrInvalidFilter, text)
	}
	return ParseExpr(key, value)
}

// ParsePairs adds each pair to a new Builder in the given order.
func ParsePairs(pairs []Pair) (*Builder, error) {
	b := NewBuilder()
	for _, p := range pairs {
		f, err := ParseExpr(p.Key, p.Value)
		if err != nil {
			return nil, err
		}
		b.Add(f)
	}
	return b, nil
}

func listFilter(key, value string, build func(...string) Filter) (Filter, error) {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return Filter{}, fmt.Errorf("%w: %s needs at least one value", ErrInvalidFilter, key)
	}
	return build(items...), nil
}
