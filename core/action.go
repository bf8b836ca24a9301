package core

// ActionType operation recorded in the audit trail
type ActionType int

const (
	_ ActionType = iota
	// ActionTypeDepositCollateral deposit collateral
	ActionTypeDepositCollateral
	// ActionTypeRedeemCollateral redeem collateral
	ActionTypeRedeemCollateral
	// ActionTypeMint mint debt
	ActionTypeMint
	// ActionTypeBurn burn debt
	ActionTypeBurn
	// ActionTypeDepositAndMint deposit then mint
	ActionTypeDepositAndMint
	// ActionTypeRedeemAndBurn burn then redeem
	ActionTypeRedeemAndBurn
	// ActionTypeLiquidate liquidate ledger account
	ActionTypeLiquidate
	// ActionTypeSavingsDeposit time locked deposit
	ActionTypeSavingsDeposit
	// ActionTypeSavingsWithdraw withdraw with yield
	ActionTypeSavingsWithdraw
	// ActionTypeBorrow collateralized borrow
	ActionTypeBorrow
	// ActionTypeAddCollateral top up borrow collateral
	ActionTypeAddCollateral
	// ActionTypeSettle settle borrow
	ActionTypeSettle
	// ActionTypeLiquidateBorrow liquidate borrow position
	ActionTypeLiquidateBorrow
)

var actionNames = map[ActionType]string{
	ActionTypeDepositCollateral: "deposit_collateral",
	ActionTypeRedeemCollateral:  "redeem_collateral",
	ActionTypeMint:              "mint",
	ActionTypeBurn:              "burn",
	ActionTypeDepositAndMint:    "deposit_and_mint",
	ActionTypeRedeemAndBurn:     "redeem_and_burn",
	ActionTypeLiquidate:         "liquidate",
	ActionTypeSavingsDeposit:    "savings_deposit",
	ActionTypeSavingsWithdraw:   "savings_withdraw",
	ActionTypeBorrow:            "borrow",
	ActionTypeAddCollateral:     "add_collateral",
	ActionTypeSettle:            "settle",
	ActionTypeLiquidateBorrow:   "liquidate_borrow",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return "unknown"
}
