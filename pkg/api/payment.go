package api

type Participant struct {
	UserID string `json:"userId" validate:"required"`
	Name   string `json:"name,omitempty"`
	Amount int64  `json:"amount" validate:"gte=0"`
}

type Payment struct {
	ID           string         `json:"id"`
	WalletID     string         `json:"walletId"`
	PayerID      string         `json:"payerId"`
	PayerName    string         `json:"payerName"`
	Amount       int64          `json:"amount"`
	Description  string         `json:"description"`
	Category     string         `json:"category,omitempty"`
	Participants []*Participant `json:"participants"`
	CreatedAt    int64          `json:"createdAt"`
	UpdatedAt    int64          `json:"updatedAt"`
}

// CreatePaymentRequest records a payment. Either Participants gives explicit
// shares, or ParticipantIDs lists members the amount is split evenly between.
// PayerID defaults to the caller.
type CreatePaymentRequest struct {
	WalletID       string         `json:"walletId" validate:"required"`
	PayerID        string         `json:"payerId,omitempty"`
	Amount         int64          `json:"amount" validate:"gt=0"`
	Description    string         `json:"description" validate:"required"`
	Category       string         `json:"category,omitempty"`
	Participants   []*Participant `json:"participants,omitempty" validate:"dive,required"`
	ParticipantIDs []string       `json:"participantIds,omitempty" validate:"dive,required"`
}

type PaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	WalletID string `json:"walletId" validate:"required"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type GetPaymentRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
}

type UpdatePaymentRequest struct {
	PaymentID    string         `json:"paymentId" validate:"required"`
	Amount       int64          `json:"amount" validate:"gt=0"`
	Description  string         `json:"description" validate:"required"`
	Category     string         `json:"category,omitempty"`
	Participants []*Participant `json:"participants" validate:"required,min=1,dive,required"`
}

type DeletePaymentRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
}
