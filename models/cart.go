package models

import "time"

// CartItem is one line in a cart. UnitPrice is the catalog price captured when
// the product was first added to the cart; later catalog price changes never
// touch it.
type CartItem struct {
	ID        int       `json:"id"`
	CartID    int       `json:"-"`
	ProductID int       `json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart holds at most one item per product. Items keep insertion order.
type Cart struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FindItem returns the index of the item with the given id, or -1.
func (c *Cart) FindItem(itemID int) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// FindProductItem returns the index of the item holding the given product, or -1.
func (c *Cart) FindProductItem(productID int) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
