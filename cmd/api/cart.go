package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/cart"
)

// cartForRequest loads the session's cart from the key-value store. A cart
// always comes back usable; a missing or corrupt blob just means empty.
func (app *application) cartForRequest(r *http.Request) *cart.Cart {
	key := cart.DefaultKey
	if sid := getSessionFromContext(r); sid != "" {
		key = cart.DefaultKey + ":" + sid
	}

	c := cart.New(app.carts, key, app.logger)
	c.Restore(r.Context())
	return c
}

// getCartHandler godoc
//
//	@Summary		Get cart
//	@Description	Returns the session's cart with derived totals
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	cart.View
//	@Router			/cart [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	c := app.cartForRequest(r)

	if err := app.jsonResponse(w, http.StatusOK, c.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// clearCartHandler godoc
//
//	@Summary		Clear cart
//	@Description	Removes every item and resets totals to zero
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	cart.View
//	@Router			/cart [delete]
func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	c := app.cartForRequest(r)
	c.Clear(r.Context())

	if err := app.jsonResponse(w, http.StatusOK, c.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AddCartItemPayload struct {
	ProductSlug string        `json:"product_slug" validate:"required"`
	Quantity    int           `json:"quantity" validate:"omitempty,min=1"`
	Variant     *cart.Variant `json:"variant"`
}

// addCartItemHandler godoc
//
//	@Summary		Add item to cart
//	@Description	Adds a product (optionally a specific variant) to the cart, merging with an existing line for the same product and variant
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		AddCartItemPayload	true	"Item to add"
//	@Success		200		{object}	cart.View
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Router			/cart/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var payload AddCartItemPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product := app.catalog.ProductBySlug(r.Context(), payload.ProductSlug)
	if product == nil {
		app.notFoundResponse(w, r, fmt.Errorf("product %q not found", payload.ProductSlug))
		return
	}

	quantity := payload.Quantity
	if quantity == 0 {
		quantity = 1
	}

	c := app.cartForRequest(r)
	c.AddItem(r.Context(), *product, quantity, payload.Variant)

	if err := app.jsonResponse(w, http.StatusOK, c.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateCartItemPayload struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// updateCartItemHandler godoc
//
//	@Summary		Update cart item quantity
//	@Description	Sets a line item's quantity; zero or negative removes the line
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			itemID	path		string					true	"Line item ID"
//	@Param			payload	body		UpdateCartItemPayload	true	"New quantity"
//	@Success		200		{object}	cart.View
//	@Failure		400		{object}	error
//	@Router			/cart/items/{itemID} [patch]
func (app *application) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var payload UpdateCartItemPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c := app.cartForRequest(r)
	c.SetQuantity(r.Context(), itemID, *payload.Quantity)

	if err := app.jsonResponse(w, http.StatusOK, c.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeCartItemHandler godoc
//
//	@Summary		Remove cart item
//	@Description	Removes a line item; unknown IDs are a no-op
//	@Tags			cart
//	@Produce		json
//	@Param			itemID	path		string	true	"Line item ID"
//	@Success		200		{object}	cart.View
//	@Router			/cart/items/{itemID} [delete]
func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	c := app.cartForRequest(r)
	c.RemoveItem(r.Context(), itemID)

	if err := app.jsonResponse(w, http.StatusOK, c.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// incrementCartItemHandler godoc
//
//	@Summary		Increment cart item
//	@Description	Raises a line item's quantity by one
//	@Tags			cart
//	@Produce		json
//	@Param			itemID	path		string	true	"Line item ID"
//	@Success		200		{object}	cart.View
//	@Router			/cart/items/{itemID}/increment [post]
func (app *application) incrementCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	c := app.cartForRequest(r)
	c.IncrementQuantity(r.Context(), itemID)

	if err := app.jsonResponse(w, http.StatusOK, c.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// decrementCartItemHandler godoc
//
//	@Summary		Decrement cart item
//	@Description	Lowers a line item's quantity by one; at quantity one the line is removed
//	@Tags			cart
//	@Produce		json
//	@Param			itemID	path		string	true	"Line item ID"
//	@Success		200		{object}	cart.View
//	@Router			/cart/items/{itemID}/decrement [post]
func (app *application) decrementCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	c := app.cartForRequest(r)
	c.DecrementQuantity(r.Context(), itemID)

	if err := app.jsonResponse(w, http.StatusOK, c.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}
