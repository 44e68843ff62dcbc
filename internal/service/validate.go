package service

import (
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/splitwallet/internal/calculator"
	"github.com/mmynk/splitwallet/internal/models"
)

// Validation error kinds. All are reported as InvalidArgument.
var (
	ErrMissingField        = errors.New("missing required field")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrNegativeShare       = errors.New("participant share must not be negative")
	ErrParticipantMismatch = errors.New("participant amounts must sum to the payment amount")
	ErrNotWalletMember     = errors.New("not a member of this wallet")
	ErrInvalidTransaction  = errors.New("invalid settlement transaction")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks the struct tags of an api message and maps the first
// failure to a validation error kind.
func validateRequest(msg any) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalidArgument(err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "gt":
		return invalidArgument(fmt.Errorf("%w: %s", ErrNonPositiveAmount, fe.Namespace()))
	case "gte":
		return invalidArgument(fmt.Errorf("%w: %s", ErrNegativeShare, fe.Namespace()))
	case "email":
		return invalidArgument(fmt.Errorf("%s must be a valid email address", fe.Field()))
	default:
		return invalidArgument(fmt.Errorf("%w: %s", ErrMissingField, fe.Namespace()))
	}
}

func invalidArgument(err error) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// validatePayment checks a payment against the wallet it is recorded in.
// Shares must be non-negative, sum to the amount exactly, and reference
// distinct current members. The payer must be a member too.
func validatePayment(wallet *models.Wallet, payerID string, amount int64, participants []calculator.Participant) error {
	if strings.TrimSpace(payerID) == "" {
		return invalidArgument(fmt.Errorf("%w: payerId", ErrMissingField))
	}
	if amount <= 0 {
		return invalidArgument(ErrNonPositiveAmount)
	}
	if len(participants) == 0 {
		return invalidArgument(fmt.Errorf("%w: at least one participant is required", ErrMissingField))
	}
	if !wallet.HasMember(payerID) {
		return invalidArgument(fmt.Errorf("%w: payer %s", ErrNotWalletMember, payerID))
	}

	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p.UserID == "" {
			return invalidArgument(fmt.Errorf("%w: participant userId", ErrMissingField))
		}
		if p.Amount < 0 {
			return invalidArgument(fmt.Errorf("%w: %s", ErrNegativeShare, p.UserID))
		}
		if seen[p.UserID] {
			return invalidArgument(fmt.Errorf("%w: %s listed twice", ErrParticipantMismatch, p.UserID))
		}
		seen[p.UserID] = true
		if !wallet.HasMember(p.UserID) {
			return invalidArgument(fmt.Errorf("%w: participant %s", ErrNotWalletMember, p.UserID))
		}
	}

	// Shares are non-negative, so bounding each by what is left of amount keeps
	// the running total from overflowing.
	var total int64
	for _, p := range participants {
		if p.Amount > amount-total {
			return invalidArgument(fmt.Errorf("%w: shares exceed amount %d", ErrParticipantMismatch, amount))
		}
		total += p.Amount
	}

	if total != amount {
		return invalidArgument(fmt.Errorf("%w: shares total %d, amount is %d", ErrParticipantMismatch, total, amount))
	}
	return nil
}

// validateTransaction checks a proposed transfer before it is recorded.
func validateTransaction(wallet *models.Wallet, fromID, toID string, amount int64) error {
	switch {
	case fromID == toID:
		return invalidArgument(fmt.Errorf("%w: sender and receiver are the same member", ErrInvalidTransaction))
	case amount <= 0:
		return invalidArgument(fmt.Errorf("%w: %v", ErrInvalidTransaction, ErrNonPositiveAmount))
	case !wallet.HasMember(fromID):
		return invalidArgument(fmt.Errorf("%w: %w: %s", ErrInvalidTransaction, ErrNotWalletMember, fromID))
	case !wallet.HasMember(toID):
		return invalidArgument(fmt.Errorf("%w: %w: %s", ErrInvalidTransaction, ErrNotWalletMember, toID))
	}
	return nil
}
