package repository

import (
	"time"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/shopspring/decimal"
)

// TransactionEntity.MerchantID holds the merchants surrogate key, not the
// natural merchant_id of the source file.
type TransactionEntity struct {
	ID         int64           `db:"id"          gorm:"primaryKey;autoIncrement:false;column:id"`
	Date       time.Time       `db:"date"        gorm:"column:date;not null"`
	ClientID   int64           `db:"client_id"   gorm:"column:client_id;index"`
	CardID     int64           `db:"card_id"     gorm:"column:card_id;not null;index"`
	Amount     decimal.Decimal `db:"amount"      gorm:"column:amount;type:numeric(12,2);not null"`
	UseChip    string          `db:"use_chip"    gorm:"column:use_chip"`
	MerchantID int64           `db:"merchant_id" gorm:"column:merchant_id;not null;index"`
	Errors     *string         `db:"errors"      gorm:"column:errors"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:         m.ID,
		Date:       m.Date,
		ClientID:   m.ClientID,
		CardID:     m.CardID,
		Amount:     m.Amount,
		UseChip:    m.UseChip,
		MerchantID: m.MerchantKey,
		Errors:     m.Errors,
	}
}

func toTransactionEntities(models []*model.Transaction) []*TransactionEntity {
	entities := make([]*TransactionEntity, len(models))
	for i, m := range models {
		entities[i] = toTransactionEntity(m)
	}
	return entities
}
