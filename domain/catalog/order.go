package catalog

import (
	"maps"
	"slices"
)

// LineItems maps product id to quantity. JSON keys are the decimal ids.
type LineItems map[int64]int64

func (li LineItems) Clone() LineItems {
	if li == nil {
		return LineItems{}
	}
	return maps.Clone(li)
}

// ProductIDs returns the referenced ids in ascending order.
func (li LineItems) ProductIDs() []int64 {
	return slices.Sorted(maps.Keys(li))
}

type Order struct {
	ID       int64     `json:"id"`
	Products LineItems `json:"products"`
}

// ByID matches the order with the given id.
func ByID(id int64) func(*Order) bool {
	return func(o *Order) bool {
		return o.ID == id
	}
}

// ---- detail ----

type OrderLine struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int64   `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
}

type OrderDetail struct {
	ID         int64       `json:"id"`
	Products   []OrderLine `json:"products"`
	TotalPrice float64     `json:"total_price"`
}

// Lookup resolves a product id against the catalog.
type Lookup func(id int64) (Product, bool)

// Compose resolves every line of o through lookup. Unknown product ids
// are skipped.
func Compose(o *Order, lookup Lookup) OrderDetail {
	d := OrderDetail{
		ID:       o.ID,
		Products: make([]OrderLine, 0, len(o.Products)),
	}

	for _, pid := range o.Products.ProductIDs() {
		p, ok := lookup(pid)
		if !ok {
			continue
		}
		qty := o.Products[pid]
		line := OrderLine{
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductPrice: p.Price,
			Quantity:     qty,
			TotalPrice:   p.Price * float64(qty),
		}
		d.Products = append(d.Products, line)
		d.TotalPrice += line.TotalPrice
	}
	return d
}
