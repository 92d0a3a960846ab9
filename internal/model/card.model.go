package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardStatus tells whether the raw card number passed the digit check.
type CardStatus string

const (
	CardStatusCorrect   CardStatus = "correct"
	CardStatusIncorrect CardStatus = "incorrect"
)

type Card struct {
	ID                 int64           `json:"id"`
	ClientID           int64           `json:"client_id"`
	Brand              string          `json:"card_brand"`
	Type               string          `json:"card_type"`
	Number             *string         `json:"card_number"` // nil when Status is incorrect
	Expires            *time.Time      `json:"expires"`
	CVV                string          `json:"cvv"`
	HasChip            bool            `json:"has_chip"`
	NumCardsIssued     int             `json:"num_cards_issued"`
	CreditLimit        decimal.Decimal `json:"credit_limit"`
	AcctOpenDate       *time.Time      `json:"acct_open_date"`
	YearPinLastChanged *int            `json:"year_pin_last_changed"`
	OnDarkWeb          bool            `json:"card_on_dark_web"`
	Status             CardStatus      `json:"card_status"`
}
