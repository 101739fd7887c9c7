package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// CartLine is one product in a user's cart. Price is the snapshot taken when
// the line was added and is only used for display.
type CartLine struct {
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Pic       string    `json:"pic" db:"pic"`
	Price     float64   `json:"price" db:"price"`
	Size      string    `json:"size" db:"size"`
	Color     string    `json:"color" db:"color"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`
}

// AddCartLineRequest wraps the product being added, as sent by the storefront.
type AddCartLineRequest struct {
	Product *CartLineInput `json:"product"`
}

// CartLineInput is the client supplied description of a cart line.
type CartLineInput struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Pic       string `json:"pic"`
	Price     Amount `json:"price"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartQuantityRequest sets the quantity of an existing line.
type CartQuantityRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartResponse is returned by the cart listing.
type CartResponse struct {
	Cart []CartLine `json:"cart"`
}

// Amount is a monetary value that accepts either a JSON number or a numeric string.
type Amount string

// UnmarshalJSON keeps the textual form of the value for later parsing.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(data)
	return nil
}

// Float parses the amount, rejecting empty, NaN and infinite values.
func (a Amount) Float() (float64, error) {
	if a == "" {
		return 0, ErrInvalidPrice
	}
	v, err := strconv.ParseFloat(string(a), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidPrice
	}
	return v, nil
}
