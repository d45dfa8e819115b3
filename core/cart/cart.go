// Package cart holds the client-side cart: an ordered list of line items
// serialized into a cookie. The server never stores it.
package cart

// Line is one product entry in a cart. Quantity is always >= 1; a line
// decremented to zero is removed.
type Line struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

type Cart struct {
	Items []Line `json:"items"`
}

// Add merges a line into the cart: an existing line with the same item id
// has its quantity incremented, otherwise the line is appended.
func (c *Cart) Add(l Line) {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ItemID == l.ItemID {
			c.Items[i].Quantity += l.Quantity
			return
		}
	}
	c.Items = append(c.Items, l)
}

// Remove decrements the line with the given item id by qty, dropping it
// when the quantity reaches zero. qty < 1 removes the line outright.
func (c *Cart) Remove(itemID string, qty int) {
	for i := range c.Items {
		if c.Items[i].ItemID != itemID {
			continue
		}
		if qty >= 1 && c.Items[i].Quantity > qty {
			c.Items[i].Quantity -= qty
			return
		}
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return
	}
}

func (c *Cart) Total() int {
	var tot int
	for _, l := range c.Items {
		tot += l.Price * l.Quantity
	}
	return tot
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
