package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront/internal/catalog"
)

// searchStateFromQuery maps URL query parameters onto a search state.
// Comma-separated list parameters tolerate empty segments.
func searchStateFromQuery(r *http.Request) (catalog.SearchState, error) {
	q := r.URL.Query()

	st := catalog.SearchState{
		Query:  q.Get("q"),
		SortBy: q.Get("sort"),
	}

	st.Filters.Categories = splitList(q.Get("categories"))
	st.Filters.Tags = splitList(q.Get("tags"))

	if v := q.Get("price_min"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return st, err
		}
		if st.Filters.PriceRange == nil {
			st.Filters.PriceRange = &catalog.PriceRange{}
		}
		st.Filters.PriceRange.Min = &min
	}
	if v := q.Get("price_max"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return st, err
		}
		if st.Filters.PriceRange == nil {
			st.Filters.PriceRange = &catalog.PriceRange{}
		}
		st.Filters.PriceRange.Max = &max
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return st, err
		}
		st.Page = page
	}
	if v := q.Get("hits_per_page"); v != "" {
		hpp, err := strconv.Atoi(v)
		if err != nil {
			return st, err
		}
		st.HitsPerPage = hpp
	}

	return st, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// searchHandler godoc
//
//	@Summary		Search products
//	@Description	Full-text product search with category, tag and price filters
//	@Tags			search
//	@Produce		json
//	@Param			q				query		string	false	"Search query"
//	@Param			categories		query		string	false	"Comma-separated category names"
//	@Param			tags			query		string	false	"Comma-separated tags"
//	@Param			price_min		query		number	false	"Minimum price"
//	@Param			price_max		query		number	false	"Maximum price"
//	@Param			page			query		int		false	"Zero-based page"
//	@Param			hits_per_page	query		int		false	"Page size"
//	@Param			sort			query		string	false	"Sort order (replica index name)"
//	@Success		200				{object}	map[string]any
//	@Failure		400				{object}	error
//	@Router			/search [get]
func (app *application) searchHandler(w http.ResponseWriter, r *http.Request) {
	st, err := searchStateFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	hits := app.catalog.Apply(r.Context(), st)
	if err := app.catalog.LastError(); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	data := map[string]any{
		"hits":        hits,
		"total_hits":  app.catalog.TotalHits(),
		"total_pages": app.catalog.TotalPages(),
		"page":        app.catalog.State().Page,
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}

// facetValuesHandler godoc
//
//	@Summary		Facet values
//	@Description	Lists the distinct values of a facet attribute with their counts
//	@Tags			search
//	@Produce		json
//	@Param			attribute	path		string	true	"Facet attribute, e.g. product_type"
//	@Success		200			{array}		catalog.FacetValue
//	@Router			/search/facets/{attribute} [get]
func (app *application) facetValuesHandler(w http.ResponseWriter, r *http.Request) {
	attribute := chi.URLParam(r, "attribute")

	values := app.catalog.FacetValues(r.Context(), attribute)

	if err := app.jsonResponse(w, http.StatusOK, values); err != nil {
		app.internalServerError(w, r, err)
	}
}

// suggestionsHandler godoc
//
//	@Summary		Search suggestions
//	@Description	Lightweight typeahead hits for a partial query
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Partial query"
//	@Param			limit	query		int		false	"Maximum suggestions"
//	@Success		200		{array}		search.Hit
//	@Router			/search/suggestions [get]
func (app *application) suggestionsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		limit = n
	}

	hits := app.catalog.Suggestions(r.Context(), query, limit)

	if err := app.jsonResponse(w, http.StatusOK, hits); err != nil {
		app.internalServerError(w, r, err)
	}
}
