// Package service implements the splitwallet.v1 Connect services.
package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitwallet/internal/auth"
	"github.com/mmynk/splitwallet/internal/cache"
	"github.com/mmynk/splitwallet/internal/calculator"
	"github.com/mmynk/splitwallet/internal/middleware"
	"github.com/mmynk/splitwallet/internal/models"
	"github.com/mmynk/splitwallet/internal/storage"
	"github.com/mmynk/splitwallet/pkg/api"
)

var (
	errWalletNotFound     = errors.New("wallet not found")
	errPaymentNotFound    = errors.New("payment not found")
	errSettlementNotFound = errors.New("settlement not found")
	errNotOwner           = errors.New("only the wallet owner can do this")
)

// callerID returns the authenticated user or an Unauthenticated error.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// storeError maps storage failures to Connect errors.
func storeError(err error, notFound error) *connect.Error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, notFound)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// memberWallet loads a wallet and checks userID belongs to it.
func memberWallet(ctx context.Context, store storage.Store, walletID, userID string) (*models.Wallet, error) {
	wallet, err := store.GetWallet(ctx, walletID)
	if err != nil {
		return nil, storeError(err, errWalletNotFound)
	}
	if !wallet.HasMember(userID) {
		slog.Warn("Access denied", "wallet_id", walletID, "user_id", userID)
		return nil, connect.NewError(connect.CodePermissionDenied, ErrNotWalletMember)
	}
	return wallet, nil
}

// invalidateStatus drops the cached settlement status of a wallet. Failures
// are logged; the entry expires on its own.
func invalidateStatus(ctx context.Context, statusCache cache.StatusCache, walletID string) {
	if err := statusCache.Invalidate(ctx, walletID); err != nil {
		slog.Warn("Failed to invalidate settlement status", "wallet_id", walletID, "error", err)
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}

func displayName(name string) string {
	if name == "" {
		return calculator.UnknownName
	}
	return name
}

func toAPIWallet(w *models.Wallet) *api.Wallet {
	members := make([]*api.WalletMember, len(w.Members))
	for i, m := range w.Members {
		members[i] = &api.WalletMember{
			UserID:   m.UserID,
			Name:     displayName(m.Name),
			Image:    m.Image,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return &api.Wallet{
		ID:           w.ID,
		Name:         w.Name,
		Description:  w.Description,
		InviteCode:   w.InviteCode,
		IsActive:     w.IsActive,
		Members:      members,
		PaymentCount: w.PaymentCount,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// memberName resolves a display name from the wallet membership. Users who
// have left the wallet show as unknown.
func memberName(w *models.Wallet, userID string) string {
	if m := w.Member(userID); m != nil {
		return displayName(m.Name)
	}
	return calculator.UnknownName
}

func toAPIPayment(p *models.Payment, w *models.Wallet) *api.Payment {
	participants := make([]*api.Participant, len(p.Participants))
	for i, part := range p.Participants {
		participants[i] = &api.Participant{
			UserID: part.UserID,
			Name:   memberName(w, part.UserID),
			Amount: part.Amount,
		}
	}
	return &api.Payment{
		ID:           p.ID,
		WalletID:     p.WalletID,
		PayerID:      p.PayerID,
		PayerName:    memberName(w, p.PayerID),
		Amount:       p.Amount,
		Description:  p.Description,
		Category:     p.Category,
		Participants: participants,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toAPIPayments(payments []*models.Payment, w *models.Wallet) []*api.Payment {
	out := make([]*api.Payment, len(payments))
	for i, p := range payments {
		out[i] = toAPIPayment(p, w)
	}
	return out
}

func toAPISettlement(s *models.Settlement, w *models.Wallet) *api.Settlement {
	return &api.Settlement{
		ID:          s.ID,
		WalletID:    s.WalletID,
		FromUserID:  s.FromUserID,
		FromName:    memberName(w, s.FromUserID),
		ToUserID:    s.ToUserID,
		ToName:      memberName(w, s.ToUserID),
		Amount:      s.Amount,
		IsCompleted: s.IsCompleted,
		CompletedAt: s.CompletedAt,
		CreatedAt:   s.CreatedAt,
	}
}

// toLedger converts a stored snapshot into calculator input.
func toLedger(snapshot *storage.WalletLedger) calculator.Ledger {
	members := make([]calculator.Member, len(snapshot.Wallet.Members))
	for i, m := range snapshot.Wallet.Members {
		members[i] = calculator.Member{UserID: m.UserID, Name: displayName(m.Name), Image: m.Image}
	}

	payments := make([]calculator.PaymentInput, len(snapshot.Payments))
	for i, p := range snapshot.Payments {
		payments[i] = calculator.PaymentInput{
			PayerID:      p.PayerID,
			Amount:       p.Amount,
			Participants: toCalculatorParticipants(p.Participants),
		}
	}

	return calculator.Ledger{Members: members, Payments: payments}
}

func toCalculatorParticipants(parts []models.PaymentParticipant) []calculator.Participant {
	out := make([]calculator.Participant, len(parts))
	for i, p := range parts {
		out[i] = calculator.Participant{UserID: p.UserID, Amount: p.Amount}
	}
	return out
}
