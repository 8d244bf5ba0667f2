// Package history maps search state to URL query parameters and back.
//
// Every key is prefixed with the search name, so several searches can share
// one query string: {searchName}_q, {searchName}_facetsFilters,
// {searchName}_page and {searchName}_sort_by.
package history

import (
	"net/url"
	"strconv"
	"strings"
)

// Logical keys stored in the URL
const (
	KeyQuery         = "q"
	KeyFacetsFilters = "facetsFilters"
	KeyPage          = "page"
	KeySortBy        = "sort_by"
)

var logicalKeys = []string{KeyQuery, KeyFacetsFilters, KeyPage, KeySortBy}

// Values is the part of a search state mirrored into the URL
type Values struct {
	Query string
	// FacetsFilters is the encoded filter expression, see EncodeFacetsFilters
	FacetsFilters string
	Page          *int
	SortOptionID  string
}

// Output is the decoded form of the URL parameters of one search name.
// Nil or empty fields were absent from the URL.
type Output struct {
	Query         *string
	FacetsFilters map[string][]string
	Page          *int
	SortOptionID  string
}

// Empty reports whether no recognized parameter was found
func (o Output) Empty() bool {
	return o.Query == nil && len(o.FacetsFilters) == 0 && o.Page == nil && o.SortOptionID == ""
}

// Key returns the prefixed parameter name of a logical key
func Key(searchName, logicalKey string) string {
	return searchName + "_" + logicalKey
}

// BuildParams encodes values for the given search name. The query is always
// present, even when empty; every other empty value is omitted.
func BuildParams(searchName string, v Values) url.Values {
	params := url.Values{}
	params.Set(Key(searchName, KeyQuery), v.Query)
	if v.SortOptionID != "" {
		params.Set(Key(searchName, KeySortBy), v.SortOptionID)
	}
	if v.FacetsFilters != "" {
		params.Set(Key(searchName, KeyFacetsFilters), v.FacetsFilters)
	}
	if v.Page != nil {
		params.Set(Key(searchName, KeyPage), strconv.Itoa(*v.Page))
	}
	return params
}

// ConvertParams decodes the parameters belonging to searchName, ignoring
// every other search name. A missing q leaves Query nil, while q= yields a
// pointer to the empty string. A page that is not an integer is ignored.
func ConvertParams(searchName string, params url.Values) Output {
	var out Output
	prefix := searchName + "_"

	for key, values := range params {
		if len(values) == 0 || !strings.HasPrefix(key, prefix) {
			continue
		}
		value := values[0]
		switch strings.TrimPrefix(key, prefix) {
		case KeyQuery:
			q := value
			out.Query = &q
		case KeyFacetsFilters:
			if filters := DecodeFacetsFilters(value); len(filters) > 0 {
				out.FacetsFilters = filters
			}
		case KeyPage:
			if page, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				out.Page = &page
			}
		case KeySortBy:
			out.SortOptionID = value
		}
	}
	return out
}

// Merge returns a copy of current where the keys of searchName are replaced
// by params. Keys of other search names are kept untouched.
func Merge(current url.Values, searchName string, params url.Values) url.Values {
	merged := url.Values{}
	for key, values := range current {
		merged[key] = append([]string(nil), values...)
	}
	for _, logical := range logicalKeys {
		delete(merged, Key(searchName, logical))
	}
	for key, values := range params {
		merged[key] = append([]string(nil), values...)
	}
	return merged
}
