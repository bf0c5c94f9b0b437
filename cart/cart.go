// Package cart is the guest-side, in-memory cart. It lives only for the
// length of a browser session and is flattened into order items at checkout.
package cart

import "math"

// Option is one chosen value from an option group, carrying the price delta
// it adds to the base price.
type Option struct {
	Group      string
	Choice     string
	PriceDelta float64
}

// Line is one cart entry. Price is the effective unit price, base price plus
// all chosen option deltas.
type Line struct {
	MenuItemID          uint
	Name                string
	Price               float64
	Quantity            int
	Options             map[string]string
	SpecialInstructions string
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem appends a line. Identical items added twice appear as two entries;
// quantity is clamped to a minimum of 1.
func (c *Cart) AddItem(menuItemID uint, name string, basePrice float64, opts []Option, quantity int, instructions string) {
	if quantity < 1 {
		quantity = 1
	}

	price := basePrice
	chosen := make(map[string]string, len(opts))
	for _, o := range opts {
		price += o.PriceDelta
		chosen[o.Group] = o.Choice
	}

	c.lines = append(c.lines, Line{
		MenuItemID:          menuItemID,
		Name:                name,
		Price:               roundCents(price),
		Quantity:            quantity,
		Options:             chosen,
		SpecialInstructions: instructions,
	})
}

// RemoveItem removes by position. Out-of-range indexes are ignored.
func (c *Cart) RemoveItem(index int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
}

// Total sums price x quantity over all lines. Pure, no side effects.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Price * float64(l.Quantity)
	}
	return roundCents(total)
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
