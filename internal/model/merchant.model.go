package model

// Merchant is reconstructed from the merchant columns repeated on every
// transaction row. MerchantID is the natural key; ID is assigned by the sink.
type Merchant struct {
	ID         int64   `json:"id"`
	MerchantID int64   `json:"merchant_id"`
	City       *string `json:"merchant_city"`
	State      *string `json:"merchant_state"`
	Zip        *string `json:"zip"`
	MCC        int     `json:"mcc"`
}

// SameAttributes reports whether both values describe the same location and category.
func (m Merchant) SameAttributes(o Merchant) bool {
	return m.MerchantID == o.MerchantID &&
		equalPtr(m.City, o.City) &&
		equalPtr(m.State, o.State) &&
		equalPtr(m.Zip, o.Zip) &&
		m.MCC == o.MCC
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
