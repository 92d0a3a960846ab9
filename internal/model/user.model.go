package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID              int64           `json:"id"`
	CurrentAge      int             `json:"current_age"`
	RetirementAge   int             `json:"retirement_age"`
	Birth           time.Time       `json:"birth"`
	Gender          string          `json:"gender"`
	Address         string          `json:"address"`
	Latitude        float64         `json:"latitude"`
	Longitude       float64         `json:"longitude"`
	PerCapitaIncome decimal.Decimal `json:"per_capita_income"`
	YearlyIncome    decimal.Decimal `json:"yearly_income"`
	TotalDebt       decimal.Decimal `json:"total_debt"`
	CreditScore     int             `json:"credit_score"`
	NumCreditCards  int             `json:"num_credit_cards"`
}
