package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownProduct is returned when a code is not present in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrDuplicateProduct indicates two products were registered with the same code.
	ErrDuplicateProduct = errors.New("duplicate product code")
	// ErrInvalidProduct is returned for products with an empty code or a negative price.
	ErrInvalidProduct = errors.New("invalid product")
)

// Product describes a sellable item in the catalog.
type Product struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Catalog resolves unit prices for product codes.
type Catalog interface {
	Price(code string) (decimal.Decimal, bool)
}

// Static is an immutable in-memory catalog. It is safe for concurrent use.
type Static struct {
	products []Product
	byCode   map[string]int
}

// NewStatic builds a catalog from the provided products, preserving their order.
func NewStatic(products ...Product) (*Static, error) {
	c := &Static{
		products: make([]Product, 0, len(products)),
		byCode:   make(map[string]int, len(products)),
	}
	for _, p := range products {
		if strings.TrimSpace(p.Code) == "" {
			return nil, fmt.Errorf("%w: empty code", ErrInvalidProduct)
		}
		if p.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: %s has negative price %s", ErrInvalidProduct, p.Code, p.UnitPrice)
		}
		if _, exists := c.byCode[p.Code]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.Code)
		}
		c.byCode[p.Code] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// MustStatic behaves like NewStatic but panics on error.
func MustStatic(products ...Product) *Static {
	c, err := NewStatic(products...)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the store's standard product list.
func Default() *Static {
	return MustStatic(
		Product{Code: "VOUCHER", Name: "Cabify Voucher", UnitPrice: decimal.RequireFromString("5.00")},
		Product{Code: "TSHIRT", Name: "Cabify T-Shirt", UnitPrice: decimal.RequireFromString("20.00")},
		Product{Code: "MUG", Name: "Cabify Coffee Mug", UnitPrice: decimal.RequireFromString("7.50")},
	)
}

// Price implements Catalog.
func (c *Static) Price(code string) (decimal.Decimal, bool) {
	p, err := c.Lookup(code)
	if err != nil {
		return decimal.Zero, false
	}
	return p.UnitPrice, true
}

// Lookup returns the product registered under code.
func (c *Static) Lookup(code string) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, code)
	}
	idx, ok := c.byCode[code]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, code)
	}
	return c.products[idx], nil
}

// Products returns a copy of the catalog contents in registration order.
func (c *Static) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the number of products.
func (c *Static) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}
