// Package models defines the client-side data shapes shared by services and
// repositories.
package models

// CartItem is one line of the cart aggregate. UnitPriceSats is denominated
// in a fixed integer unit; there is no floating-point money anywhere.
type CartItem struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	UnitPriceSats int64  `json:"unit_price_sats"`
}

// CartSnapshot is the client-local mutable aggregate reconciled against the
// relay network. ItemCount and TotalSats are derived; Normalize is the only
// thing that writes them.
type CartSnapshot struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	TotalSats int64      `json:"total_sats"`
	UpdatedAt int64      `json:"updated_at"`
}

// Normalize recomputes the derived totals from Items.
func (s *CartSnapshot) Normalize() {
	s.ItemCount = 0
	s.TotalSats = 0
	for _, it := range s.Items {
		s.ItemCount += it.Quantity
		s.TotalSats += int64(it.Quantity) * it.UnitPriceSats
	}
}

// Find returns the index of the item with the given product reference,
// or -1 if absent.
func (s *CartSnapshot) Find(productID string) int {
	for i, it := range s.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so merges never mutate their inputs.
func (s *CartSnapshot) Clone() *CartSnapshot {
	out := &CartSnapshot{
		Items:     make([]CartItem, len(s.Items)),
		ItemCount: s.ItemCount,
		TotalSats: s.TotalSats,
		UpdatedAt: s.UpdatedAt,
	}
	copy(out.Items, s.Items)
	return out
}
