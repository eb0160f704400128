package models

import (
	"net/url"
	"strconv"
)

// CatalogExtra carries the optional listing filters decoded from the extra
// path segment of a catalog request.
type CatalogExtra struct {
	Genre  string
	Search string
	Skip   int
}

// ParseCatalogExtra decodes the query-string-like extra segment
// ("genre=Action&skip=40"). Unknown keys are ignored; a malformed segment
// yields the zero value.
func ParseCatalogExtra(segment string) CatalogExtra {
	var extra CatalogExtra
	values, err := url.ParseQuery(segment)
	if err != nil {
		return extra
	}
	extra.Genre = values.Get("genre")
	extra.Search = values.Get("search")
	if skip, err := strconv.Atoi(values.Get("skip")); err == nil && skip > 0 {
		extra.Skip = skip
	}
	return extra
}
