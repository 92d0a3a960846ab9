package repository

import (
	"time"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/shopspring/decimal"
)

type CardEntity struct {
	ID                 int64           `db:"id"                    gorm:"primaryKey;autoIncrement:false;column:id"`
	ClientID           int64           `db:"client_id"             gorm:"column:client_id;not null;index"`
	Brand              string          `db:"card_brand"            gorm:"column:card_brand"`
	Type               string          `db:"card_type"             gorm:"column:card_type"`
	Number             *string         `db:"card_number"           gorm:"column:card_number;uniqueIndex"`
	Expires            *time.Time      `db:"expires"               gorm:"column:expires;type:date"`
	CVV                string          `db:"cvv"                   gorm:"column:cvv"`
	HasChip            bool            `db:"has_chip"              gorm:"column:has_chip;not null"`
	NumCardsIssued     int             `db:"num_cards_issued"      gorm:"column:num_cards_issued"`
	CreditLimit        decimal.Decimal `db:"credit_limit"          gorm:"column:credit_limit;type:numeric(12,2)"`
	AcctOpenDate       *time.Time      `db:"acct_open_date"        gorm:"column:acct_open_date;type:date"`
	YearPinLastChanged *int            `db:"year_pin_last_changed" gorm:"column:year_pin_last_changed"`
	OnDarkWeb          bool            `db:"card_on_dark_web"      gorm:"column:card_on_dark_web;not null"`
	Status             string          `db:"card_status"           gorm:"column:card_status;not null"`
}

func (CardEntity) TableName() string {
	return "cards"
}

func toCardEntity(m *model.Card) *CardEntity {
	if m == nil {
		return nil
	}
	return &CardEntity{
		ID:                 m.ID,
		ClientID:           m.ClientID,
		Brand:              m.Brand,
		Type:               m.Type,
		Number:             m.Number,
		Expires:            m.Expires,
		CVV:                m.CVV,
		HasChip:            m.HasChip,
		NumCardsIssued:     m.NumCardsIssued,
		CreditLimit:        m.CreditLimit,
		AcctOpenDate:       m.AcctOpenDate,
		YearPinLastChanged: m.YearPinLastChanged,
		OnDarkWeb:          m.OnDarkWeb,
		Status:             string(m.Status),
	}
}

func toCardEntities(models []*model.Card) []*CardEntity {
	entities := make([]*CardEntity, len(models))
	for i, m := range models {
		entities[i] = toCardEntity(m)
	}
	return entities
}
