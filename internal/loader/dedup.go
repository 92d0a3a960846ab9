package loader

import (
	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/pkg/logger"
)

// Variant is a merchant tuple that shares its merchant_id with an earlier
// row but disagrees on city, state, zip or mcc. It is not loaded.
type Variant struct {
	Line    int
	Kept    model.Merchant
	Dropped model.Merchant
}

// DedupMerchants projects every transaction onto its merchant columns and
// keeps the first tuple seen for each merchant_id, in first-occurrence
// order. The transactions must already be normalized so that formatting
// differences do not count as different attributes.
func DedupMerchants(txns []*model.Transaction) ([]*model.Merchant, []Variant) {
	index := make(map[int64]int, len(txns))
	merchants := make([]*model.Merchant, 0)
	var variants []Variant
	reported := make(map[int64][]model.Merchant)

	for _, t := range txns {
		m := t.Merchant
		m.ID = 0
		i, seen := index[m.MerchantID]
		if !seen {
			index[m.MerchantID] = len(merchants)
			merchants = append(merchants, &m)
			continue
		}
		kept := *merchants[i]
		if kept.SameAttributes(m) || alreadyReported(reported[m.MerchantID], m) {
			continue
		}
		reported[m.MerchantID] = append(reported[m.MerchantID], m)
		variants = append(variants, Variant{Line: t.Line, Kept: kept, Dropped: m})
		logger.Warn("merchant reappears with different attributes, keeping first",
			"merchant_id", m.MerchantID, "line", t.Line)
	}
	return merchants, variants
}

func alreadyReported(seen []model.Merchant, m model.Merchant) bool {
	for _, s := range seen {
		if s.SameAttributes(m) {
			return true
		}
	}
	return false
}
