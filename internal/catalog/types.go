package catalog

import "storefront/internal/cart"

// PriceRange bounds; a nil side means unbounded.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// SearchFilters is the caller's filtering intent, translated into the
// index's filter parameters by the facade.
type SearchFilters struct {
	Categories []string    `json:"categories,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
}

func (f SearchFilters) isZero() bool {
	return len(f.Categories) == 0 && len(f.Tags) == 0 && f.PriceRange == nil
}

// SearchState is the full query intent: text, filters, pagination, sort.
// Page is zero-indexed.
type SearchState struct {
	Query       string        `json:"query"`
	Filters     SearchFilters `json:"filters"`
	Page        int           `json:"page"`
	HitsPerPage int           `json:"hits_per_page"`
	SortBy      string        `json:"sort_by,omitempty"`
}

// FacetValue is one categorical value with its matching-item count.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Category view model mapped from CMS category entries.
type Category struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description *string            `json:"description,omitempty"`
	Image       *cart.ProductImage `json:"image,omitempty"`
	Parent      *Category          `json:"parent,omitempty"`
}

type HeroBanner struct {
	Title           string            `json:"title"`
	Subtitle        *string           `json:"subtitle,omitempty"`
	Image           cart.ProductImage `json:"image"`
	CTAText         *string           `json:"cta_text,omitempty"`
	CTALink         *string           `json:"cta_link,omitempty"`
	BackgroundColor *string           `json:"background_color,omitempty"`
}

type FeaturedCollection struct {
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Products    []cart.Product `json:"products"`
	DisplayType string         `json:"display_type"`
}

type HomePage struct {
	HeroBanner          HeroBanner           `json:"hero_banner"`
	FeaturedCollections []FeaturedCollection `json:"featured_collections"`
}
