package filter

import "strings"

// SortColumn names the score field a SortBy filter orders on.
type SortColumn int

// Sortable columns.
const (
	PlayerName SortColumn = iota
	Binary
	Language
	Time
)

var columnAliases = map[string]SortColumn{
	"player":    PlayerName,
	"players":   PlayerName,
	"name":      PlayerName,
	"names":     PlayerName,
	"binary":    Binary,
	"binaries":  Binary,
	"language":  Language,
	"languages": Language,
	"time":      Time,
	"times":     Time,
}

// ParseSortColumn maps a case-insensitive alias to a SortColumn. Anything
// else, padded text included, yields an *InvalidSortColumnError holding
// the original text.
func ParseSortColumn(text string) (SortColumn, error) {
	if c, ok := columnAliases[strings.ToLower(text)]; ok {
		return c, nil
	}
	return 0, &InvalidSortColumnError{Text: text}
}

func (c SortColumn) String() string {
	switch c {
	case PlayerName:
		return "player"
	case Binary:
		return "binary"
	case Language:
		return "language"
	case Time:
		return "time"
	default:
		return "unknown"
	}
}
