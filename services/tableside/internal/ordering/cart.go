package ordering

import "sort"

// Cart accumulates item quantities for one table before checkout. It is not
// safe for concurrent use on its own: the owning Checkout serializes access.
type Cart struct {
	items map[string]int
}

// CartLine is one item row in a cart snapshot.
type CartLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func NewCart() *Cart {
	return &Cart{
		items: make(map[string]int),
	}
}

// Add increments the quantity for an item, starting at 1.
func (c *Cart) Add(itemID string) {
	c.items[itemID]++
}

// Remove decrements the quantity for an item. The line disappears entirely
// when it reaches zero; removing an absent item is a no-op.
func (c *Cart) Remove(itemID string) {
	qty, found := c.items[itemID]
	if !found {
		return
	}
	if qty <= 1 {
		delete(c.items, itemID)
		return
	}
	c.items[itemID] = qty - 1
}

func (c *Cart) Quantity(itemID string) int {
	return c.items[itemID]
}

func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// TotalItemCount is the sum of all quantities, not the number of lines.
func (c *Cart) TotalItemCount() int {
	total := 0
	for _, qty := range c.items {
		total += qty
	}
	return total
}

// TotalAmount prices the cart against the given price list. Items missing
// from the list contribute nothing.
func (c *Cart) TotalAmount(prices map[string]int64) int64 {
	var total int64
	for itemID, qty := range c.items {
		total += prices[itemID] * int64(qty)
	}
	return total
}

func (c *Cart) Clear() {
	c.items = make(map[string]int)
}

// Lines returns a stable snapshot of the cart, sorted by item id.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c.items))
	for itemID, qty := range c.items {
		lines = append(lines, CartLine{ItemID: itemID, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ItemID < lines[j].ItemID
	})
	return lines
}

// Items returns a copy of the raw quantity map for order submission.
func (c *Cart) Items() map[string]int {
	out := make(map[string]int, len(c.items))
	for itemID, qty := range c.items {
		out[itemID] = qty
	}
	return out
}
