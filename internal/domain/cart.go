package domain

// CartItem is one pending line prior to checkout. Lines are keyed by
// (productID, color, size) so the same product in different variants
// forms distinct lines.
type CartItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Image          string `json:"image,omitempty"`
	Color          string `json:"color,omitempty"`
	Size           string `json:"size,omitempty"`
	Quantity       int    `json:"quantity"`
}

// Key identifies the cart line for merge and removal.
func (i CartItem) Key() CartKey {
	return CartKey{ProductID: i.ProductID, Color: i.Color, Size: i.Size}
}

// CartKey is the variant identity of a cart line.
type CartKey struct {
	ProductID string `json:"productId"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

// Cart is the session-scoped collection of pending lines. Totals are
// derived from the lines on every read, never stored.
type Cart struct {
	Items []CartItem `json:"items"`
}

// TotalItems sums the quantities of all lines.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalCents sums quantity times unit price over all lines.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}

// Add merges the item into the cart: an existing line with the same
// (productID, color, size) key has its quantity incremented, otherwise
// a new line is appended.
func (c *Cart) Add(item CartItem) {
	for idx := range c.Items {
		if c.Items[idx].Key() == item.Key() {
			c.Items[idx].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// SetQuantity updates the matching line's quantity. A quantity of zero
// or less removes the line rather than storing a non-positive value.
// It reports whether a matching line existed.
func (c *Cart) SetQuantity(key CartKey, quantity int) bool {
	for idx := range c.Items {
		if c.Items[idx].Key() == key {
			if quantity <= 0 {
				c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			} else {
				c.Items[idx].Quantity = quantity
			}
			return true
		}
	}
	return false
}

// Remove deletes the matching line. It reports whether a line matched.
func (c *Cart) Remove(key CartKey) bool {
	return c.SetQuantity(key, 0)
}
