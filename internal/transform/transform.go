// Package transform converts raw source rows into domain records. Fields that
// have a defined fallback (dates, booleans, optional text) never reject a row;
// a blank or unparseable required field does, and the row comes back as a
// model.Rejection instead.
package transform

import (
	"errors"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/internal/normalize"
	"github.com/nimasrn/finance-etl/internal/source"
	"github.com/nimasrn/finance-etl/internal/validate"
)

const (
	TableUsers        = "users"
	TableCards        = "cards"
	TableMerchants    = "merchants"
	TableTransactions = "transactions"
)

var errNoBirth = errors.New("birth year/month do not form a date")

func Users(rows []source.UserRow) ([]*model.User, []model.Rejection) {
	users := make([]*model.User, 0, len(rows))
	var rejected []model.Rejection
	for _, row := range rows {
		u, err := User(row)
		if err != nil {
			rejected = append(rejected, reject(TableUsers, row.Line, err))
			continue
		}
		users = append(users, u)
	}
	return users, rejected
}

func User(row source.UserRow) (*model.User, error) {
	if err := validate.Required(
		validate.Field{Name: "id", Value: row.ID},
		validate.Field{Name: "birth_year", Value: row.BirthYear},
		validate.Field{Name: "birth_month", Value: row.BirthMonth},
	); err != nil {
		return nil, err
	}

	f := &fields{}
	u := &model.User{
		ID:              f.int64("id", row.ID),
		CurrentAge:      f.int("current_age", row.CurrentAge),
		RetirementAge:   f.int("retirement_age", row.RetirementAge),
		Gender:          row.Gender,
		Address:         row.Address,
		Latitude:        f.float("latitude", row.Latitude),
		Longitude:       f.float("longitude", row.Longitude),
		PerCapitaIncome: f.currency("per_capita_income", row.PerCapitaIncome),
		YearlyIncome:    f.currency("yearly_income", row.YearlyIncome),
		TotalDebt:       f.currency("total_debt", row.TotalDebt),
		CreditScore:     f.int("credit_score", row.CreditScore),
		NumCreditCards:  f.int("num_credit_cards", row.NumCreditCards),
	}
	year := f.int("birth_year", row.BirthYear)
	month := f.int("birth_month", row.BirthMonth)
	if f.err != nil {
		return nil, f.err
	}

	birth := normalize.MonthOf(year, month)
	if birth == nil {
		return nil, validate.Invalid("birth_month", row.BirthMonth, errNoBirth)
	}
	u.Birth = *birth
	return u, nil
}

func Cards(rows []source.CardRow) ([]*model.Card, []model.Rejection) {
	cards := make([]*model.Card, 0, len(rows))
	var rejected []model.Rejection
	for _, row := range rows {
		c, err := Card(row)
		if err != nil {
			rejected = append(rejected, reject(TableCards, row.Line, err))
			continue
		}
		cards = append(cards, c)
	}
	return cards, rejected
}

// Card keeps rows with a malformed card number: the number is dropped and
// the status says incorrect.
func Card(row source.CardRow) (*model.Card, error) {
	if err := validate.Required(
		validate.Field{Name: "id", Value: row.ID},
		validate.Field{Name: "client_id", Value: row.ClientID},
	); err != nil {
		return nil, err
	}

	number, status := validate.CheckCardNumber(row.CardNumber)

	f := &fields{}
	c := &model.Card{
		ID:                 f.int64("id", row.ID),
		ClientID:           f.int64("client_id", row.ClientID),
		Brand:              row.CardBrand,
		Type:               row.CardType,
		Number:             number,
		Expires:            normalize.Date(row.Expires),
		CVV:                row.CVV,
		HasChip:            normalize.Boolean(row.HasChip),
		NumCardsIssued:     f.int("num_cards_issued", row.NumCardsIssued),
		CreditLimit:        f.currency("credit_limit", row.CreditLimit),
		AcctOpenDate:       normalize.Date(row.AcctOpenDate),
		YearPinLastChanged: f.optionalInt("year_pin_last_changed", row.YearPinLastChanged),
		OnDarkWeb:          normalize.Boolean(row.CardOnDarkWeb),
		Status:             status,
	}
	if f.err != nil {
		return nil, f.err
	}
	return c, nil
}

func Transactions(rows []source.TransactionRow) ([]*model.Transaction, []model.Rejection) {
	txns := make([]*model.Transaction, 0, len(rows))
	var rejected []model.Rejection
	for _, row := range rows {
		t, err := Transaction(row)
		if err != nil {
			rejected = append(rejected, reject(TableTransactions, row.Line, err))
			continue
		}
		txns = append(txns, t)
	}
	return txns, rejected
}

func Transaction(row source.TransactionRow) (*model.Transaction, error) {
	if err := validate.Required(
		validate.Field{Name: "id", Value: row.ID},
		validate.Field{Name: "date", Value: row.Date},
		validate.Field{Name: "card_id", Value: row.CardID},
		validate.Field{Name: "amount", Value: row.Amount},
		validate.Field{Name: "merchant_id", Value: row.MerchantID},
	); err != nil {
		return nil, err
	}

	f := &fields{}
	t := &model.Transaction{
		ID:       f.int64("id", row.ID),
		Line:     row.Line,
		ClientID: f.int64("client_id", row.ClientID),
		CardID:   f.int64("card_id", row.CardID),
		Amount:   f.currency("amount", row.Amount),
		UseChip:  row.UseChip,
		Errors:   normalize.NullIfEmpty(row.Errors),
		Merchant: model.Merchant{
			MerchantID: f.int64("merchant_id", row.MerchantID),
			City:       normalize.NullIfEmpty(row.MerchantCity),
			State:      normalize.NullIfEmpty(row.MerchantState),
			Zip:        normalize.Zip(row.Zip),
			MCC:        f.int("mcc", row.MCC),
		},
	}
	date, err := normalize.DateTime(row.Date)
	if err != nil {
		f.fail("date", row.Date, err)
	}
	t.Date = date
	if f.err != nil {
		return nil, f.err
	}
	return t, nil
}
