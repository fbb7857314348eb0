package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildFilterString renders the textual filter clause the index expects:
// category values OR-ed within one parenthesized group on product_type, tag
// values likewise on tags, and the two groups joined with AND. An empty
// filter set yields "", meaning no filter parameter is sent at all.
func BuildFilterString(f SearchFilters) string {
	var parts []string

	if len(f.Categories) > 0 {
		clauses := make([]string, len(f.Categories))
		for i, cat := range f.Categories {
			clauses[i] = fmt.Sprintf("product_type:%q", cat)
		}
		parts = append(parts, "("+strings.Join(clauses, " OR ")+")")
	}

	if len(f.Tags) > 0 {
		clauses := make([]string, len(f.Tags))
		for i, tag := range f.Tags {
			clauses[i] = fmt.Sprintf("tags:%q", tag)
		}
		parts = append(parts, "("+strings.Join(clauses, " OR ")+")")
	}

	return strings.Join(parts, " AND ")
}

// BuildNumericFilters renders the price bounds as separate numeric-filter
// clauses. The index treats these as a distinct parameter from the textual
// filter, so they are never concatenated into it.
func BuildNumericFilters(f SearchFilters) []string {
	if f.PriceRange == nil {
		return nil
	}

	var out []string
	if f.PriceRange.Min != nil {
		out = append(out, "price >= "+formatBound(*f.PriceRange.Min))
	}
	if f.PriceRange.Max != nil {
		out = append(out, "price <= "+formatBound(*f.PriceRange.Max))
	}
	return out
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
