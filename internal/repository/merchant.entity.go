package repository

import (
	"github.com/nimasrn/finance-etl/internal/model"
)

type MerchantEntity struct {
	ID         int64   `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	MerchantID int64   `db:"merchant_id"    gorm:"column:merchant_id;not null;uniqueIndex"`
	City       *string `db:"merchant_city"  gorm:"column:merchant_city"`
	State      *string `db:"merchant_state" gorm:"column:merchant_state"`
	Zip        *string `db:"zip"            gorm:"column:zip"`
	MCC        int     `db:"mcc"            gorm:"column:mcc"`
}

func (MerchantEntity) TableName() string {
	return "merchants"
}

func toMerchantEntity(m *model.Merchant) *MerchantEntity {
	if m == nil {
		return nil
	}
	return &MerchantEntity{
		MerchantID: m.MerchantID,
		City:       m.City,
		State:      m.State,
		Zip:        m.Zip,
		MCC:        m.MCC,
	}
}

func toMerchantEntities(models []*model.Merchant) []*MerchantEntity {
	entities := make([]*MerchantEntity, len(models))
	for i, m := range models {
		entities[i] = toMerchantEntity(m)
	}
	return entities
}

func toMerchantModel(e *MerchantEntity) *model.Merchant {
	if e == nil {
		return nil
	}
	return &model.Merchant{
		ID:         e.ID,
		MerchantID: e.MerchantID,
		City:       e.City,
		State:      e.State,
		Zip:        e.Zip,
		MCC:        e.MCC,
	}
}

func toMerchantModels(entities []*MerchantEntity) []*model.Merchant {
	if entities == nil {
		return nil
	}
	models := make([]*model.Merchant, len(entities))
	for i, e := range entities {
		models[i] = toMerchantModel(e)
	}
	return models
}
