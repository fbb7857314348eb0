package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"storefront/internal/kv"
)

const (
	// Pricing policy. Tax is a flat rate applied to the subtotal; shipping
	// is waived once the subtotal reaches the free-shipping threshold.
	taxRate               = 0.08
	freeShippingThreshold = 50.0
	shippingFee           = 5.99

	// DefaultKey is the storage key for carts that are not session-scoped.
	DefaultKey = "cart"

	noVariant = "default"
)

// Cart holds the ordered line items of one browsing session plus the derived
// totals. It is not safe for concurrent use; a single logical owner mutates
// it sequentially. Every mutation recomputes totals and writes the full
// snapshot through to the key-value store.
type Cart struct {
	store kv.Store
	key   string
	log   *zap.SugaredLogger

	items  []LineItem
	totals Totals
}

// New returns an empty cart bound to a storage key. Callers that want the
// previous session's state back call Restore once before using it.
func New(store kv.Store, key string, log *zap.SugaredLogger) *Cart {
	if key == "" {
		key = DefaultKey
	}
	return &Cart{store: store, key: key, log: log}
}

// ItemKey composes the line-item identity from a product id and an optional
// variant id. A cart never holds two items with the same key.
func ItemKey(productID, variantID string) string {
	if variantID == "" {
		variantID = noVariant
	}
	return fmt.Sprintf("%s-%s", productID, variantID)
}

// AddItem merges the quantity into an existing line item with the same
// product+variant identity, or appends a new one with the unit price
// resolved as variant price if set, product price otherwise.
func (c *Cart) AddItem(ctx context.Context, p Product, quantity int, v *Variant) {
	var variantID string
	if v != nil {
		variantID = v.ID
	}
	id := ItemKey(p.ID, variantID)

	if i := c.indexOf(id); i >= 0 {
		c.items[i].Quantity += quantity
	} else {
		price := p.Price
		if v != nil && v.Price != nil {
			price = *v.Price
		}
		c.items = append(c.items, LineItem{
			ID:       id,
			Product:  p,
			Quantity: quantity,
			Variant:  v,
			Price:    price,
		})
	}

	c.recalculate()
	c.Persist(ctx)
}

// RemoveItem deletes the line item with the given identity key. An unknown
// key is a silent no-op, not an error.
func (c *Cart) RemoveItem(ctx context.Context, itemID string) {
	i := c.indexOf(itemID)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.recalculate()
	c.Persist(ctx)
}

// SetQuantity overwrites the item's quantity. A quantity of zero or less
// removes the item.
func (c *Cart) SetQuantity(ctx context.Context, itemID string, quantity int) {
	i := c.indexOf(itemID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.RemoveItem(ctx, itemID)
		return
	}
	c.items[i].Quantity = quantity
	c.recalculate()
	c.Persist(ctx)
}

// IncrementQuantity adds one unit to the item. No-op if the item is absent.
func (c *Cart) IncrementQuantity(ctx context.Context, itemID string) {
	i := c.indexOf(itemID)
	if i < 0 {
		return
	}
	c.items[i].Quantity++
	c.recalculate()
	c.Persist(ctx)
}

// DecrementQuantity removes one unit. An item at quantity 1 is removed
// outright; quantities never reach zero or below.
func (c *Cart) DecrementQuantity(ctx context.Context, itemID string) {
	i := c.indexOf(itemID)
	if i < 0 {
		return
	}
	if c.items[i].Quantity > 1 {
		c.items[i].Quantity--
		c.recalculate()
		c.Persist(ctx)
		return
	}
	c.RemoveItem(ctx, itemID)
}

// Clear empties the cart and zeroes all derived fields.
func (c *Cart) Clear(ctx context.Context) {
	c.items = nil
	c.recalculate()
	c.Persist(ctx)
}

// FindItem looks an item up by product and variant identity. Pure lookup,
// no side effects.
func (c *Cart) FindItem(productID, variantID string) (LineItem, bool) {
	i := c.indexOf(ItemKey(productID, variantID))
	if i < 0 {
		return LineItem{}, false
	}
	return c.items[i], true
}

func (c *Cart) Contains(productID, variantID string) bool {
	_, ok := c.FindItem(productID, variantID)
	return ok
}

// TotalItemCount sums the quantities of all line items.
func (c *Cart) TotalItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) Totals() Totals { return c.totals }

// View returns the serializable state: items in insertion order plus the
// derived totals.
func (c *Cart) View() View {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return View{Items: items, Totals: c.totals}
}

// Persist writes the full snapshot under the cart's key. Write failures are
// logged and swallowed; persistence is fire-and-forget and must never fail a
// mutation.
func (c *Cart) Persist(ctx context.Context) {
	raw, err := json.Marshal(c.View())
	if err != nil {
		c.log.Errorw("encode cart snapshot", "key", c.key, "error", err)
		return
	}
	if err := c.store.Set(ctx, c.key, string(raw)); err != nil {
		c.log.Errorw("persist cart", "key", c.key, "error", err)
	}
}

// Restore replaces the in-memory state with the persisted snapshot. An
// absent or malformed blob leaves the cart in a valid empty state; the
// failure is logged, never returned.
func (c *Cart) Restore(ctx context.Context) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			c.log.Errorw("restore cart", "key", c.key, "error", err)
		}
		return
	}

	var v View
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		c.log.Errorw("decode cart snapshot", "key", c.key, "error", err)
		c.items = nil
		c.recalculate()
		return
	}

	c.items = v.Items
	c.recalculate()
}

func (c *Cart) indexOf(itemID string) int {
	for i, item := range c.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// recalculate rebuilds every derived field from the line items. Totals are
// never patched incrementally.
func (c *Cart) recalculate() {
	subtotal := 0.0
	for _, item := range c.items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = round2(subtotal)

	tax := round2(subtotal * taxRate)

	shipping := 0.0
	if len(c.items) > 0 && subtotal < freeShippingThreshold {
		shipping = shippingFee
	}

	c.totals = Totals{
		Subtotal:  subtotal,
		Tax:       tax,
		Shipping:  shipping,
		Total:     round2(subtotal + tax + shipping),
		ItemCount: c.TotalItemCount(),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
