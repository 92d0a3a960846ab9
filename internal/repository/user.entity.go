package repository

import (
	"time"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/shopspring/decimal"
)

type UserEntity struct {
	ID              int64           `db:"id"                gorm:"primaryKey;autoIncrement:false;column:id"`
	CurrentAge      int             `db:"current_age"       gorm:"column:current_age"`
	RetirementAge   int             `db:"retirement_age"    gorm:"column:retirement_age"`
	Birth           time.Time       `db:"birth"             gorm:"column:birth;type:date;not null"`
	Gender          string          `db:"gender"            gorm:"column:gender"`
	Address         string          `db:"address"           gorm:"column:address"`
	Latitude        float64         `db:"latitude"          gorm:"column:latitude"`
	Longitude       float64         `db:"longitude"         gorm:"column:longitude"`
	PerCapitaIncome decimal.Decimal `db:"per_capita_income" gorm:"column:per_capita_income;type:numeric(12,2)"`
	YearlyIncome    decimal.Decimal `db:"yearly_income"     gorm:"column:yearly_income;type:numeric(12,2)"`
	TotalDebt       decimal.Decimal `db:"total_debt"        gorm:"column:total_debt;type:numeric(12,2)"`
	CreditScore     int             `db:"credit_score"      gorm:"column:credit_score"`
	NumCreditCards  int             `db:"num_credit_cards"  gorm:"column:num_credit_cards"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:              m.ID,
		CurrentAge:      m.CurrentAge,
		RetirementAge:   m.RetirementAge,
		Birth:           m.Birth,
		Gender:          m.Gender,
		Address:         m.Address,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		PerCapitaIncome: m.PerCapitaIncome,
		YearlyIncome:    m.YearlyIncome,
		TotalDebt:       m.TotalDebt,
		CreditScore:     m.CreditScore,
		NumCreditCards:  m.NumCreditCards,
	}
}

func toUserEntities(models []*model.User) []*UserEntity {
	entities := make([]*UserEntity, len(models))
	for i, m := range models {
		entities[i] = toUserEntity(m)
	}
	return entities
}
