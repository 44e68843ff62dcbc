package models

// Payment records money one member paid on behalf of the wallet.
// Invariant: the participant amounts sum to Amount. This is enforced by the
// service layer before a payment is stored.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// WalletID is the wallet that owns the payment.
	WalletID string

	// PayerID is the member who paid.
	PayerID string

	// Amount is the total paid, in whole currency units. Always positive.
	Amount int64

	// Description is what the money was spent on.
	Description string

	// Category is an optional grouping label (e.g., "food", "transport").
	Category string

	// Participants are the shares of this payment.
	Participants []PaymentParticipant

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64
}

// PaymentParticipant is one member's share of a payment.
type PaymentParticipant struct {
	PaymentID string
	UserID    string
	Amount    int64
}

// ParticipantTotal returns the sum of all participant shares.
func (p *Payment) ParticipantTotal() int64 {
	var total int64
	for _, part := range p.Participants {
		total += part.Amount
	}
	return total
}
