package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/benchboard/internal/domain/board"
	"github.com/okian/benchboard/internal/domain/filter"
)

// boardRequest is a parsed board query string.
type boardRequest struct {
	query     board.Query
	filters   *filter.Builder
	realNames bool
}

// parseBoardRequest reads the reserved keys all, limit and real_names and
// treats every other pair as a filter expression. The raw query is walked
// by hand because url.Values loses the order filters were given in.
func parseBoardRequest(rawQuery string, maxLimit int) (boardRequest, error) {
	req := boardRequest{}
	var pairs []filter.Pair

	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return req, fmt.Errorf("query key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return req, fmt.Errorf("query value for %q: %w", key, err)
		}

		switch key {
		case "all":
			if req.query.All, err = parseFlag(value); err != nil {
				return req, fmt.Errorf("all: %w", err)
			}
		case "real_names":
			if req.realNames, err = parseFlag(value); err != nil {
				return req, fmt.Errorf("real_names: %w", err)
			}
		case "limit":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return req, fmt.Errorf("limit must be a positive integer, got %q", value)
			}
			if n > maxLimit {
				return req, fmt.Errorf("limit %d exceeds maximum %d", n, maxLimit)
			}
			req.query.Limit = n
		default:
			pairs = append(pairs, filter.Pair{Key: key, Value: value})
		}
	}

	b, err := filter.ParsePairs(pairs)
	if err != nil {
		return req, err
	}
	req.filters = b
	return req, nil
}

// parseFlag accepts a bare key (?all) as true.
func parseFlag(v string) (bool, error) {
	if v == "" {
		return true, nil
	}
	return strconv.ParseBool(v)
}
