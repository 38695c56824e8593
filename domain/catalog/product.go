package catalog

import "cmp"

// Product is immutable once its id is assigned.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"product_name"`
	Price float64 `json:"price"`
}

// CompareProducts orders products by id. Used for index placement.
func CompareProducts(a, b Product) int {
	return cmp.Compare(a.ID, b.ID)
}

// CompareProductKey orders a raw id against a stored product. It agrees
// with CompareProducts over stored values.
func CompareProductKey(id int64, p Product) int {
	return cmp.Compare(id, p.ID)
}
