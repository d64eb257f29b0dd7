package domain

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// StoresPayload is the stores document served by the economy API.
type StoresPayload struct {
	Stores []RawStore `json:"Stores"`
}

// RawStore is a store record as received, before canonicalization.
type RawStore struct {
	Name         string          `json:"Name"`
	Balance      decimal.Decimal `json:"Balance"`
	CurrencyName string          `json:"CurrencyName"`
	Enabled      bool            `json:"Enabled"`
	AllOffers    []RawOffer      `json:"AllOffers"`
}

// RawOffer is an offer record as received.
type RawOffer struct {
	ItemName string          `json:"ItemName"`
	Price    decimal.Decimal `json:"Price"`
	Buying   bool            `json:"Buying"`
	Quantity Quantity        `json:"Quantity"`
}

// Quantity is a stock or demand count. The API occasionally serializes it as 12.0.
type Quantity int64

// UnmarshalJSON accepts integral and fractional numbers, truncating the latter.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*q = 0
		return nil
	}
	d, err := decimal.NewFromString(string(bytes.Trim(b, `"`)))
	if err != nil {
		return fmt.Errorf("quantity %s: %w", b, err)
	}
	*q = Quantity(d.Truncate(0).IntPart())
	return nil
}
