package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID       int64           `json:"id"`
	Line     int             `json:"-"`
	Date     time.Time       `json:"date"`
	ClientID int64           `json:"client_id"`
	CardID   int64           `json:"card_id"`
	Amount   decimal.Decimal `json:"amount"`
	UseChip  string          `json:"use_chip"`
	Errors   *string         `json:"errors"`

	// Merchant carries the projected merchant columns of the source row.
	// Merchant.MerchantID is the natural key used for resolution.
	Merchant Merchant `json:"-"`

	// MerchantKey is the surrogate key, zero until resolved.
	MerchantKey int64 `json:"merchant_id"`
}
