package savings

import (
	"cdp/core"

	"github.com/yiplee/structs"
)

type borrowSnapshot struct {
	AmountBorrowed   string            `json:"amount_borrowed"`
	Collateral       map[string]string `json:"collateral"`
	OpenedAt         int64             `json:"opened_at"`
	LockExpiry       int64             `json:"lock_expiry"`
	LockPeriod       int64             `json:"lock_period"`
	FeeAtOrigination string            `json:"fee_at_origination"`
}

// borrowAudit flatten the position for the audit record
func borrowAudit(b *core.BorrowPosition) map[string]interface{} {
	s := structs.New(borrowSnapshot{
		AmountBorrowed:   b.AmountBorrowed.Dec(),
		Collateral:       decs(b.CollateralByAsset),
		OpenedAt:         b.OpenedAt.Unix(),
		LockExpiry:       b.LockExpiry.Unix(),
		LockPeriod:       b.LockPeriod,
		FeeAtOrigination: b.FeeAtOrigination.Dec(),
	})
	s.TagName = "json"
	return s.Map()
}
