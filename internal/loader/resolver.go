package loader

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/internal/transform"
	"github.com/nimasrn/finance-etl/pkg/logger"
)

// KeyResolver maps merchant natural keys to the surrogate keys the sink
// assigned. It is built from one bulk read taken after merchants commit.
type KeyResolver struct {
	keys map[int64]int64
}

func NewKeyResolver(ctx context.Context, reader MerchantKeyReader) (*KeyResolver, error) {
	keys, err := reader.MerchantKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("read merchant keys: %w", err)
	}
	return &KeyResolver{keys: keys}, nil
}

func (k *KeyResolver) Len() int {
	return len(k.keys)
}

func (k *KeyResolver) Lookup(merchantID int64) (int64, bool) {
	id, ok := k.keys[merchantID]
	return id, ok
}

// Resolve returns copies of txns with MerchantKey set. A transaction whose
// merchant is unknown is left out and reported; it is never passed on with
// a zero key.
func (k *KeyResolver) Resolve(txns []*model.Transaction) ([]*model.Transaction, []model.Rejection) {
	resolved := make([]*model.Transaction, 0, len(txns))
	var missing []model.Rejection
	for _, t := range txns {
		key, ok := k.Lookup(t.Merchant.MerchantID)
		if !ok {
			logger.Warn("no persisted merchant for transaction",
				"merchant_id", t.Merchant.MerchantID, "transaction_id", t.ID, "line", t.Line)
			missing = append(missing, model.Rejection{
				Table:  transform.TableTransactions,
				Line:   t.Line,
				Field:  "merchant_id",
				Value:  strconv.FormatInt(t.Merchant.MerchantID, 10),
				Reason: model.ReasonMissingMerchant,
				Detail: fmt.Sprintf("transaction %d", t.ID),
			})
			continue
		}
		c := *t
		c.MerchantKey = key
		resolved = append(resolved, &c)
	}
	return resolved, missing
}
