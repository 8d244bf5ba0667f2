package mockserver

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"searchalicious/internal/domain"
	"searchalicious/internal/errors"
	"searchalicious/internal/history"
)

//go:embed fixture.json
var defaultFixture []byte

// Catalog is the data served by the mock server
type Catalog struct {
	Products   []domain.Hit          `json:"products"`
	Taxonomies []domain.TaxonomyTerm `json:"taxonomies"`
}

// DefaultCatalog returns the built-in product fixture
func DefaultCatalog() (Catalog, error) {
	return parseCatalog(defaultFixture)
}

// LoadCatalog reads a fixture file
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, errors.NewConfiguration("failed to read fixture "+path, err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, errors.NewConfiguration("failed to parse fixture", err)
	}
	return c, nil
}

// query is a parsed search expression: free text words and facet filters
type query struct {
	words   []string
	filters map[string][]string
}

// parseQuery splits q on AND into filters (field:(a OR b) or field:value)
// and free text
func parseQuery(q string) query {
	parsed := query{filters: make(map[string][]string)}
	var filterParts []string
	for _, part := range history.SplitOutsideQuotes(q, " AND ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, value, found := strings.Cut(part, ":")
		if found && field != "" && !strings.ContainsAny(field, " \t") {
			if !strings.HasPrefix(value, "(") {
				value = "(" + value + ")"
			}
			filterParts = append(filterParts, field+":"+value)
			continue
		}
		parsed.words = append(parsed.words, strings.Fields(strings.ToLower(part))...)
	}
	for field, values := range history.DecodeFacetsFilters(strings.Join(filterParts, " AND ")) {
		parsed.filters[field] = append(parsed.filters[field], values...)
	}
	return parsed
}

func (q query) matches(p domain.Hit) bool {
	for field, values := range q.filters {
		if !containsAny(fieldValues(p, field), values) {
			return false
		}
	}
	if len(q.words) == 0 {
		return true
	}
	var text strings.Builder
	for _, field := range []string{"code", "product_name", "brands", "categories", "labels"} {
		text.WriteString(strings.ToLower(strings.Join(fieldValues(p, field), " ")))
		text.WriteString(" ")
	}
	haystack := text.String()
	for _, w := range q.words {
		if !strings.Contains(haystack, w) {
			return false
		}
	}
	return true
}

// fieldValues returns the values of a product field as strings
func fieldValues(p domain.Hit, field string) []string {
	switch v := p[field].(type) {
	case nil:
		return nil
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			values = append(values, fmt.Sprint(item))
		}
		return values
	default:
		return []string{p.String(field)}
	}
}

func containsAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// sortProducts orders products by a field; a leading "-" sorts descending
func sortProducts(products []domain.Hit, sortBy string) {
	if sortBy == "" {
		return
	}
	desc := strings.HasPrefix(sortBy, "-")
	field := strings.TrimPrefix(sortBy, "-")
	sort.SliceStable(products, func(i, j int) bool {
		less := compare(products[i][field], products[j][field])
		if desc {
			return less > 0
		}
		return less < 0
	})
}

func compare(a, b any) int {
	fa, aok := a.(float64)
	fb, bok := b.(float64)
	if aok && bok {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// facetResult counts the values of a field over products
func (c Catalog) facetResult(products []domain.Hit, field string) domain.FacetResult {
	counts := make(map[string]int)
	for _, p := range products {
		for _, v := range fieldValues(p, field) {
			counts[v]++
		}
	}
	items := make([]domain.FacetItem, 0, len(counts))
	for key, count := range counts {
		items = append(items, domain.FacetItem{Key: key, Name: c.termName(key), Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Key < items[j].Key
	})
	return domain.FacetResult{Name: facetTitle(field), Items: items}
}

func (c Catalog) termName(key string) string {
	for _, t := range c.Taxonomies {
		if t.ID == key {
			return t.Text
		}
	}
	return key
}

func facetTitle(field string) string {
	title := strings.ReplaceAll(field, "_", " ")
	if title == "" {
		return title
	}
	return strings.ToUpper(title[:1]) + title[1:]
}

// chart builds a bar chart specification of the values of a field
func (c Catalog) chart(products []domain.Hit, field string) (domain.ChartData, error) {
	facet := c.facetResult(products, field)
	values := make([]map[string]any, 0, len(facet.Items))
	for _, item := range facet.Items {
		values = append(values, map[string]any{"category": item.Key, "amount": item.Count})
	}
	spec := map[string]any{
		"$schema": "https://vega.github.io/schema/vega/v5.json",
		"title":   facet.Name,
		"data":    []map[string]any{{"name": "table", "values": values}},
		"marks":   []map[string]any{{"type": "rect", "from": map[string]any{"data": "table"}}},
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}
	return domain.ChartData(data), nil
}

// suggest returns the taxonomy terms of the given taxonomies starting with q
func (c Catalog) suggest(q string, taxonomies []string, size int) []domain.TaxonomyTerm {
	q = strings.ToLower(strings.TrimSpace(q))
	options := []domain.TaxonomyTerm{}
	for _, t := range c.Taxonomies {
		if len(taxonomies) > 0 && !containsAny([]string{t.TaxonomyName}, taxonomies) {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(t.Text), q) && !strings.HasPrefix(t.ID, q) {
			continue
		}
		options = append(options, t)
		if size > 0 && len(options) == size {
			break
		}
	}
	return options
}
