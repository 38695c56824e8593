// Package wire holds the request and response shapes shared by the HTTP
// and gRPC transports, and the validation run before a request reaches
// the service.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"storefront/domain/catalog"
)

// ValidationError rejects a caller-supplied entity shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.Reason
	}
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type Validator interface {
	Validate() error
}

// Decode reads one JSON request body into T and validates it. Decoding
// failures are reported as *ValidationError.
func Decode[T Validator](r io.Reader) (T, error) {
	var req T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return req, &ValidationError{Reason: err.Error()}
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// ---- requests ----

// ProductRequest is the create-product body. A client-supplied id is
// accepted and ignored; ids are always assigned by the service.
type ProductRequest struct {
	ID    *int64   `json:"id,omitempty"`
	Name  string   `json:"product_name"`
	Price *float64 `json:"price"`
}

func (r ProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "product_name", Reason: "is required"}
	}
	if r.Price == nil {
		return &ValidationError{Field: "price", Reason: "is required"}
	}
	if math.IsNaN(*r.Price) || math.IsInf(*r.Price, 0) || *r.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must be a non-negative number"}
	}
	return nil
}

// OrderRequest is the create- and update-order body.
type OrderRequest struct {
	ID       *int64            `json:"id,omitempty"`
	Products catalog.LineItems `json:"products"`
}

func (r OrderRequest) Validate() error {
	if r.Products == nil {
		return &ValidationError{Field: "products", Reason: "is required"}
	}
	for pid, qty := range r.Products {
		if qty < 0 {
			return &ValidationError{
				Field:  "products",
				Reason: fmt.Sprintf("quantity for product %d must not be negative", pid),
			}
		}
	}
	return nil
}

// ---- responses ----

type Message struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

func ProductCreated(id int64) Message {
	return Message{Message: fmt.Sprintf("Product created with id : %d", id), ID: id}
}

func OrderCreated(id int64) Message {
	return Message{Message: fmt.Sprintf("Order created with id : %d", id), ID: id}
}

var (
	OrderUpdated = Message{Message: "Order updated!"}
	OrderDeleted = Message{Message: "Order deleted!"}
)

// OrderKey names an order in the list-orders response.
func OrderKey(id int64) string {
	return fmt.Sprintf("order_%d", id)
}

// OrderIndex keys each detail by OrderKey.
func OrderIndex(details []catalog.OrderDetail) map[string]catalog.OrderDetail {
	out := make(map[string]catalog.OrderDetail, len(details))
	for _, d := range details {
		out[OrderKey(d.ID)] = d
	}
	return out
}

// IDRequest addresses one entity by id. Used by the gRPC transport,
// where the id travels in the body.
type IDRequest struct {
	ID *int64 `json:"id"`
}

func (r IDRequest) Validate() error {
	if r.ID == nil {
		return &ValidationError{Field: "id", Reason: "is required"}
	}
	return nil
}
