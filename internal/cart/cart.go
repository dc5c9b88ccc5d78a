package cart

// The cart lives entirely in a client cookie. Every mutation reads the full
// list, applies one change and writes the full list back. Nothing here is
// authoritative: the order service re-reads prices from the catalog before
// an order is created.

type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Qty   int    `json:"qty"`
	Image string `json:"image,omitempty"`
}

// Add merges by product id, incrementing the quantity of an existing row.
func Add(items []Item, it Item) []Item {
	if it.Qty < 1 {
		it.Qty = 1
	}
	for i := range items {
		if items[i].ID == it.ID {
			items[i].Qty += it.Qty
			return items
		}
	}
	return append(items, it)
}

// SetQty sets the quantity for id, clamped to at least 1. Unknown ids are
// left alone.
func SetQty(items []Item, id string, qty int) []Item {
	if qty < 1 {
		qty = 1
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Qty = qty
			break
		}
	}
	return items
}

// Remove drops the row for id entirely. It does not decrement.
func Remove(items []Item, id string) []Item {
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func Clear() []Item {
	return []Item{}
}

func Total(items []Item) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Price * int64(it.Qty)
	}
	return sum
}
