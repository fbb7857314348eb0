package cart

// ProductImage is an image reference as delivered by the CMS.
type ProductImage struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Width       *int    `json:"width,omitempty"`
	Height      *int    `json:"height,omitempty"`
}

// Product is the read-only catalog view model carts hold a reference to.
// RelatedProducts is at most one level deep; nested entries always carry an
// empty related slice.
type Product struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Slug            string         `json:"slug"`
	Description     string         `json:"description"`
	Price           float64        `json:"price"`
	Images          []ProductImage `json:"images"`
	RelatedProducts []Product      `json:"related_products"`
}

type VariantOption struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// Variant is a concrete purchasable option of a product. A nil Price means
// the variant inherits the product's base price.
type Variant struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Options []VariantOption `json:"options,omitempty"`
	Price   *float64        `json:"price,omitempty"`
	SKU     *string         `json:"sku,omitempty"`
	InStock bool            `json:"in_stock"`
}

// LineItem is one product+variant+quantity+price tuple inside a cart. Price
// is the unit price snapshotted when the item was first added.
type LineItem struct {
	ID       string   `json:"id"`
	Product  Product  `json:"product"`
	Quantity int      `json:"quantity"`
	Variant  *Variant `json:"selected_variant,omitempty"`
	Price    float64  `json:"price"`
}

// Totals are the derived monetary fields. They are never set by callers;
// every mutation recomputes them from the line items.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// View is the serializable cart state: what handlers return and what gets
// persisted to the key-value store.
type View struct {
	Items []LineItem `json:"items"`
	Totals
}
