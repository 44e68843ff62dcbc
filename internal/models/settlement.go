package models

// Settlement records a confirmed transfer between two wallet members.
// It is a log entry: balances are derived from payments only.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// WalletID is the wallet this settlement belongs to.
	WalletID string

	// FromUserID is the member who pays (debtor settling up).
	FromUserID string

	// ToUserID is the member who receives (creditor being paid).
	ToUserID string

	// Amount is the transfer amount in whole currency units.
	Amount int64

	// IsCompleted is set once the transfer actually happened.
	IsCompleted bool

	// CompletedAt is the Unix timestamp of completion, zero while pending.
	CompletedAt int64

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
