package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/holiman/uint256"
	"github.com/jmoiron/sqlx/types"
)

const (
	// TransactionKeyTarget liquidated account
	TransactionKeyTarget = "target"
	// TransactionKeyDebt debt amount
	TransactionKeyDebt = "debt"
	// TransactionKeySeized seized collateral
	TransactionKeySeized = "seized"
	// TransactionKeyBonus liquidation bonus
	TransactionKeyBonus = "bonus"
	// TransactionKeyHealthFactor resulting health factor
	TransactionKeyHealthFactor = "health_factor"
	// TransactionKeyYield minted yield
	TransactionKeyYield = "yield"
	// TransactionKeyFee origination fee
	TransactionKeyFee = "fee"
	// TransactionKeyRate rate snapshot
	TransactionKeyRate = "rate"
	// TransactionKeyLockExpiry lock expiry
	TransactionKeyLockExpiry = "lock_expiry"
	// TransactionKeyReturned returned collateral
	TransactionKeyReturned = "returned"
	// TransactionKeyPeriods overdue lock periods at settlement
	TransactionKeyPeriods = "periods"
	// TransactionKeyPosition position snapshot
	TransactionKeyPosition = "position"
)

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	return make(TransactionExtraData)
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Transaction audit record of a completed operation
type Transaction struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID   string         `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	Action    ActionType     `json:"action,omitempty"`
	Account   string         `sql:"size:64;index:idx_transactions_account" json:"account,omitempty"`
	AssetID   string         `sql:"size:64" json:"asset_id,omitempty"`
	Amount    *uint256.Int   `sql:"type:numeric(78,0)" json:"amount,omitempty"`
	Data      types.JSONText `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at,omitempty"`
}

// SetExtraData set extra data
func (t *Transaction) SetExtraData(extra TransactionExtraData) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// ITransactionStore transaction store interface
type ITransactionStore interface {
	Create(ctx context.Context, transaction *Transaction) error
	ListByAccount(ctx context.Context, account string, offset time.Time, limit int) ([]*Transaction, error)
}
