package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	Pages through the CMS product catalog
//	@Tags			catalog
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			skip	query		int	false	"Offset"
//	@Success		200		{object}	map[string]any
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := 0, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		limit = n
	}
	if v := r.URL.Query().Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		skip = n
	}

	products, total := app.catalog.Products(r.Context(), limit, skip)

	data := map[string]any{
		"products": products,
		"total":    total,
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}

// featuredProductsHandler godoc
//
//	@Summary		Featured products
//	@Description	Products marked as featured in the CMS
//	@Tags			catalog
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum products"
//	@Success		200		{array}		cart.Product
//	@Router			/products/featured [get]
func (app *application) featuredProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		limit = n
	}

	products := app.catalog.FeaturedProducts(r.Context(), limit)

	if err := app.jsonResponse(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductBySlugHandler godoc
//
//	@Summary		Get product by slug
//	@Description	Fetches a single product with related products one level deep
//	@Tags			catalog
//	@Produce		json
//	@Param			slug	path		string	true	"Product slug"
//	@Success		200		{object}	cart.Product
//	@Failure		404		{object}	error
//	@Router			/products/{slug} [get]
func (app *application) getProductBySlugHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product := app.catalog.ProductBySlug(r.Context(), slug)
	if product == nil {
		app.notFoundResponse(w, r, fmt.Errorf("product %q not found", slug))
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCategoriesHandler godoc
//
//	@Summary		List categories
//	@Description	All CMS categories with their parent links
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}	catalog.Category
//	@Router			/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories := app.catalog.Categories(r.Context())

	if err := app.jsonResponse(w, http.StatusOK, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

// homePageHandler godoc
//
//	@Summary		Home page content
//	@Description	Hero banner and featured collections from the CMS
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	catalog.HomePage
//	@Failure		404	{object}	error
//	@Router			/home [get]
func (app *application) homePageHandler(w http.ResponseWriter, r *http.Request) {
	page := app.catalog.HomePage(r.Context())
	if page == nil {
		app.notFoundResponse(w, r, fmt.Errorf("home page content not found"))
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}
