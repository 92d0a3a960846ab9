package source

// Raw rows as they appear in the exported files. Every column is text; the
// transform package owns coercion.

type UserRow struct {
	Line            int    `csv:"-"`
	ID              string `csv:"id"`
	CurrentAge      string `csv:"current_age"`
	RetirementAge   string `csv:"retirement_age"`
	BirthYear       string `csv:"birth_year"`
	BirthMonth      string `csv:"birth_month"`
	Gender          string `csv:"gender"`
	Address         string `csv:"address"`
	Latitude        string `csv:"latitude"`
	Longitude       string `csv:"longitude"`
	PerCapitaIncome string `csv:"per_capita_income"`
	YearlyIncome    string `csv:"yearly_income"`
	TotalDebt       string `csv:"total_debt"`
	CreditScore     string `csv:"credit_score"`
	NumCreditCards  string `csv:"num_credit_cards"`
}

type CardRow struct {
	Line               int    `csv:"-"`
	ID                 string `csv:"id"`
	ClientID           string `csv:"client_id"`
	CardBrand          string `csv:"card_brand"`
	CardType           string `csv:"card_type"`
	CardNumber         string `csv:"card_number"`
	Expires            string `csv:"expires"`
	CVV                string `csv:"cvv"`
	HasChip            string `csv:"has_chip"`
	NumCardsIssued     string `csv:"num_cards_issued"`
	CreditLimit        string `csv:"credit_limit"`
	AcctOpenDate       string `csv:"acct_open_date"`
	YearPinLastChanged string `csv:"year_pin_last_changed"`
	CardOnDarkWeb      string `csv:"card_on_dark_web"`
}

type TransactionRow struct {
	Line          int    `csv:"-"`
	ID            string `csv:"id"`
	Date          string `csv:"date"`
	ClientID      string `csv:"client_id"`
	CardID        string `csv:"card_id"`
	Amount        string `csv:"amount"`
	UseChip       string `csv:"use_chip"`
	MerchantID    string `csv:"merchant_id"`
	MerchantCity  string `csv:"merchant_city"`
	MerchantState string `csv:"merchant_state"`
	Zip           string `csv:"zip"`
	MCC           string `csv:"mcc"`
	Errors        string `csv:"errors"`
}

func (r *UserRow) setLine(n int)        { r.Line = n }
func (r *CardRow) setLine(n int)        { r.Line = n }
func (r *TransactionRow) setLine(n int) { r.Line = n }
