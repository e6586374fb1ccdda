package cart

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Key identifies a cart line; one product may appear once per size.
type Key struct {
	ProductID uuid.UUID
	Size      string
}

// Item is one priced cart line.
type Item struct {
	ProductID   uuid.UUID
	ProductName string
	Size        string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// LineTotal is the unit price multiplied by the quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i Item) key() Key {
	return keyFor(i.ProductID, i.Size)
}

func keyFor(productID uuid.UUID, size string) Key {
	return Key{ProductID: productID, Size: strings.ToLower(strings.TrimSpace(size))}
}

// Cart keeps lines in insertion order with running totals. It is not safe
// for concurrent use; each request builds its own.
type Cart struct {
	items []Item
	index map[Key]int

	total     decimal.Decimal
	itemCount int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: map[Key]int{}}
}

// Add increments an existing (product, size) line or appends a new one.
// A non-positive quantity counts as one.
func (c *Cart) Add(item Item) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	item.Size = strings.TrimSpace(item.Size)
	if pos, ok := c.index[item.key()]; ok {
		c.items[pos].Quantity += item.Quantity
	} else {
		c.index[item.key()] = len(c.items)
		c.items = append(c.items, item)
	}
	c.recalculate()
}

// Remove drops the line for the pair; unknown pairs are ignored.
func (c *Cart) Remove(productID uuid.UUID, size string) {
	pos, ok := c.index[keyFor(productID, size)]
	if !ok {
		return
	}
	c.items = append(c.items[:pos], c.items[pos+1:]...)
	c.reindex()
	c.recalculate()
}

// SetQuantity overwrites a line quantity; qty <= 0 removes the line.
func (c *Cart) SetQuantity(productID uuid.UUID, size string, qty int) {
	if qty <= 0 {
		c.Remove(productID, size)
		return
	}
	pos, ok := c.index[keyFor(productID, size)]
	if !ok {
		return
	}
	c.items[pos].Quantity = qty
	c.recalculate()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.index = map[Key]int{}
	c.recalculate()
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the sum of line totals.
func (c *Cart) Total() decimal.Decimal {
	return c.total
}

// ItemCount is the sum of line quantities.
func (c *Cart) ItemCount() int {
	return c.itemCount
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) reindex() {
	c.index = make(map[Key]int, len(c.items))
	for i, item := range c.items {
		c.index[item.key()] = i
	}
}

func (c *Cart) recalculate() {
	total := decimal.Zero
	count := 0
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
		count += item.Quantity
	}
	c.total = total
	c.itemCount = count
}
