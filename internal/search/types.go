package search

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Price tolerates both numeric and quoted-numeric values; the apparel index
// stores some prices as strings.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Price(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("price is neither number nor string: %s", data)
	}
	if s == "" {
		*p = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse price %q: %w", s, err)
	}
	*p = Price(n)
	return nil
}

// HierarchicalCategories mirrors the index's lvl0..lvl2 category attribute.
type HierarchicalCategories struct {
	Lvl0 string `json:"lvl0"`
	Lvl1 string `json:"lvl1,omitempty"`
	Lvl2 string `json:"lvl2,omitempty"`
}

// Hit is one product record as stored in the search index.
type Hit struct {
	ObjectID               string                 `json:"objectID"`
	Title                  string                 `json:"title"`
	Description            string                 `json:"description"`
	Price                  Price                  `json:"price"`
	Images                 []string               `json:"images"`
	ShowcaseImage          string                 `json:"showcase_image"`
	Color                  []string               `json:"color"`
	ProductType            string                 `json:"product_type"`
	Tags                   []string               `json:"tags"`
	HierarchicalCategories HierarchicalCategories `json:"hierarchical_categories"`
	UnitsSold              *int                   `json:"units_sold,omitempty"`
	Weight                 *string                `json:"weight,omitempty"`
	Taxable                *bool                  `json:"taxable,omitempty"`
}

// QueryRequest is the parameter shape of one index query. Page and
// HitsPerPage are always sent; a zero HitsPerPage is meaningful for
// facet-only queries.
type QueryRequest struct {
	Query                string   `json:"query"`
	Filters              string   `json:"filters,omitempty"`
	NumericFilters       []string `json:"numericFilters,omitempty"`
	Page                 int      `json:"page"`
	HitsPerPage          int      `json:"hitsPerPage"`
	Facets               []string `json:"facets,omitempty"`
	AttributesToRetrieve []string `json:"attributesToRetrieve,omitempty"`
}

type QueryResponse struct {
	Hits             []Hit                     `json:"hits"`
	NbHits           int                       `json:"nbHits"`
	Page             int                       `json:"page"`
	NbPages          int                       `json:"nbPages"`
	HitsPerPage      int                       `json:"hitsPerPage"`
	Facets           map[string]map[string]int `json:"facets,omitempty"`
	ProcessingTimeMS int                       `json:"processingTimeMS"`
	Query            string                    `json:"query"`
	Params           string                    `json:"params"`
}
