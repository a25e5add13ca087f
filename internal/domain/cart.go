package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the resolved view of every row a user has in the cart store.
type Cart struct {
	ID       int64
	Username string
	Contents []Product
	Cost     Money
}

// CartRow is one stored cart record. Contents is a JSON array of product IDs.
type CartRow struct {
	ID       int64
	Username string
	Contents json.RawMessage
	Cost     decimal.Decimal

	CreatedAt time.Time
}

// CartRecord is the serialized form of a Cart: contents collapse to product IDs.
type CartRecord struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Contents []int64         `json:"contents"`
	Cost     decimal.Decimal `json:"cost"`
}

func (r CartRow) ProductIDs() ([]int64, error) {
	var ids []int64
	if err := json.Unmarshal(r.Contents, &ids); err != nil {
		return nil, fmt.Errorf("%w: cart row[%d] contents: %v", ErrInvalidInput, r.ID, err)
	}

	return ids, nil
}

func (c Cart) Record() CartRecord {
	ids := make([]int64, 0, len(c.Contents))
	for _, p := range c.Contents {
		ids = append(ids, p.ID)
	}

	return CartRecord{
		ID:       c.ID,
		Username: c.Username,
		Contents: ids,
		Cost:     c.Cost.Amount,
	}
}

func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Record())
}
