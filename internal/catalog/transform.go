package catalog

import (
	"strings"

	"storefront/internal/cart"
	"storefront/internal/content"
)

// relatedDepth caps how far product→relatedProducts→product chains are
// followed. The CMS graph is acyclic only by convention, so the transform
// must terminate on its own.
const relatedDepth = 1

func transformAsset(a content.Asset) cart.ProductImage {
	img := cart.ProductImage{}

	img.Title, _ = a.Fields["title"].(string)
	if desc, ok := a.Fields["description"].(string); ok && desc != "" {
		img.Description = &desc
	}

	file, _ := a.Fields["file"].(map[string]any)
	if file == nil {
		return img
	}
	if u, ok := file["url"].(string); ok {
		if strings.HasPrefix(u, "//") {
			u = "https:" + u
		}
		img.URL = u
	}
	if details, ok := file["details"].(map[string]any); ok {
		if dim, ok := details["image"].(map[string]any); ok {
			if w, ok := dim["width"].(float64); ok {
				wi := int(w)
				img.Width = &wi
			}
			if h, ok := dim["height"].(float64); ok {
				hi := int(h)
				img.Height = &hi
			}
		}
	}
	return img
}

func transformProduct(e content.Entry, r *content.Resolver, depth int) cart.Product {
	p := cart.Product{
		ID:              e.Sys.ID,
		Name:            e.String("name"),
		Slug:            e.String("slug"),
		Description:     e.String("description"),
		Price:           e.Float("price"),
		Images:          []cart.ProductImage{},
		RelatedProducts: []cart.Product{},
	}

	// Featured image first, then the gallery.
	if a, ok := r.Asset(e.Fields["featuredProductImage"]); ok {
		p.Images = append(p.Images, transformAsset(a))
	}
	for _, a := range r.AssetList(e.Fields["productImages"]) {
		p.Images = append(p.Images, transformAsset(a))
	}

	if depth > 0 {
		for _, rel := range r.EntryList(e.Fields["relatedProducts"]) {
			p.RelatedProducts = append(p.RelatedProducts, transformProduct(rel, r, depth-1))
		}
	}

	return p
}

func transformCategory(e content.Entry, r *content.Resolver, depth int) Category {
	c := Category{
		ID:   e.Sys.ID,
		Name: e.String("name"),
		Slug: e.String("slug"),
	}
	if desc := e.String("description"); desc != "" {
		c.Description = &desc
	}
	if a, ok := r.Asset(e.Fields["image"]); ok {
		img := transformAsset(a)
		c.Image = &img
	}
	if depth > 0 {
		if parent, ok := r.Entry(e.Fields["parentCategory"]); ok {
			pc := transformCategory(parent, r, depth-1)
			c.Parent = &pc
		}
	}
	return c
}

func transformHeroBanner(e content.Entry, r *content.Resolver) HeroBanner {
	b := HeroBanner{Title: e.String("title")}

	if sub := e.String("subtitle"); sub != "" {
		b.Subtitle = &sub
	}
	if a, ok := r.Asset(e.Fields["image"]); ok {
		b.Image = transformAsset(a)
	}
	if v := e.String("ctaText"); v != "" {
		b.CTAText = &v
	}
	if v := e.String("ctaLink"); v != "" {
		b.CTALink = &v
	}
	if v := e.String("backgroundColor"); v != "" {
		b.BackgroundColor = &v
	}
	return b
}

func transformFeaturedCollection(e content.Entry, r *content.Resolver) FeaturedCollection {
	fc := FeaturedCollection{
		Title:       e.String("title"),
		Products:    []cart.Product{},
		DisplayType: "grid",
	}
	if desc := e.String("description"); desc != "" {
		fc.Description = &desc
	}
	if dt := e.String("displayType"); dt != "" {
		fc.DisplayType = dt
	}
	for _, pe := range r.EntryList(e.Fields["products"]) {
		fc.Products = append(fc.Products, transformProduct(pe, r, relatedDepth))
	}
	return fc
}
