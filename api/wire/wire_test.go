package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/domain/catalog"
)

func TestDecodeProduct(t *testing.T) {
	req, err := Decode[ProductRequest](strings.NewReader(`{"product_name":"Patatas", "price":2}`))
	require.NoError(t, err)
	assert.Equal(t, "Patatas", req.Name)
	assert.Equal(t, 2.0, *req.Price)
}

func TestDecodeProductRejects(t *testing.T) {
	cases := map[string]string{
		"missing name":   `{"price":2}`,
		"blank name":     `{"product_name":"  ","price":2}`,
		"missing price":  `{"product_name":"Pan"}`,
		"negative price": `{"product_name":"Pan","price":-1}`,
		"string price":   `{"product_name":"Pan","price":"1"}`,
		"not json":       `product_name=Pan`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode[ProductRequest](strings.NewReader(body))
			require.Error(t, err)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}
}

func TestDecodeOrder(t *testing.T) {
	req, err := Decode[OrderRequest](strings.NewReader(`{"products":{"1":2,"2":1}}`))
	require.NoError(t, err)
	assert.Equal(t, catalog.LineItems{1: 2, 2: 1}, req.Products)

	req, err = Decode[OrderRequest](strings.NewReader(`{"products":{}}`))
	require.NoError(t, err)
	assert.Empty(t, req.Products)
}

func TestDecodeOrderRejects(t *testing.T) {
	cases := map[string]string{
		"missing products":  `{}`,
		"null products":     `{"products":null}`,
		"non-integer key":   `{"products":{"abc":1}}`,
		"fractional qty":    `{"products":{"1":1.5}}`,
		"negative quantity": `{"products":{"1":-2}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode[OrderRequest](strings.NewReader(body))
			require.Error(t, err)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}
}

func TestOrderIndex(t *testing.T) {
	idx := OrderIndex([]catalog.OrderDetail{{ID: 1}, {ID: 12}})
	assert.Contains(t, idx, "order_1")
	assert.Contains(t, idx, "order_12")

	assert.Equal(t, "Product created with id : 4", ProductCreated(4).Message)
}

func TestDecodeIDRequest(t *testing.T) {
	req, err := Decode[IDRequest](strings.NewReader(`{"id":3}`))
	require.NoError(t, err)
	assert.Equal(t, int64(3), *req.ID)

	_, err = Decode[IDRequest](strings.NewReader(`{}`))
	assert.True(t, IsValidation(err))
}
