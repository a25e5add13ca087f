package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Qty         int64           `json:"qty"`
}

// ProductInput is untrusted product data, e.g. a decoded request body.
// A nil field means the key was absent.
type ProductInput struct {
	ID          *int64           `json:"id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Cost        *decimal.Decimal `json:"cost"`
	Qty         *int64           `json:"qty"`
}

// ParseProduct builds a Product from in. It only checks that the required fields are
// present; business rules are checked by Validate.
func ParseProduct(in ProductInput) (Product, error) {
	switch {
	case in.ID == nil:
		return Product{}, fmt.Errorf("%w: id is missing", ErrInvalidInput)
	case in.Name == nil:
		return Product{}, fmt.Errorf("%w: name is missing", ErrInvalidInput)
	case in.Description == nil:
		return Product{}, fmt.Errorf("%w: description is missing", ErrInvalidInput)
	case in.Cost == nil:
		return Product{}, fmt.Errorf("%w: cost is missing", ErrInvalidInput)
	}

	p := Product{
		ID:          *in.ID,
		Name:        *in.Name,
		Description: *in.Description,
		Cost:        *in.Cost,
	}
	if in.Qty != nil {
		p.Qty = *in.Qty
	}

	return p, nil
}

func (p Product) Input() ProductInput {
	var (
		id   = p.ID
		name = p.Name
		desc = p.Description
		cost = p.Cost
		qty  = p.Qty
	)

	return ProductInput{
		ID:          &id,
		Name:        &name,
		Description: &desc,
		Cost:        &cost,
		Qty:         &qty,
	}
}

func (p Product) Validate() bool {
	return p.ID > 0 &&
		strings.TrimSpace(p.Name) != "" &&
		!p.Cost.IsNegative() &&
		p.Qty >= 0
}
