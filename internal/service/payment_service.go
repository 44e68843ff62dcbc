package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitwallet/internal/cache"
	"github.com/mmynk/splitwallet/internal/calculator"
	"github.com/mmynk/splitwallet/internal/metrics"
	"github.com/mmynk/splitwallet/internal/models"
	"github.com/mmynk/splitwallet/internal/storage"
	"github.com/mmynk/splitwallet/pkg/api"
)

// PaymentService implements the Connect PaymentService.
// Any member of a wallet may record, edit or delete its payments.
type PaymentService struct {
	store       storage.Store
	statusCache cache.StatusCache
}

// NewPaymentService creates a new PaymentService with the given storage backend.
func NewPaymentService(store storage.Store, statusCache cache.StatusCache) *PaymentService {
	return &PaymentService{store: store, statusCache: statusCache}
}

// CreatePayment records a payment. Shares are taken from participants, or
// split evenly between participantIds when no explicit shares are given.
func (s *PaymentService) CreatePayment(ctx context.Context, req *connect.Request[api.CreatePaymentRequest]) (*connect.Response[api.PaymentResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreatePayment request received",
		"wallet_id", req.Msg.WalletID,
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.Participants)+len(req.Msg.ParticipantIDs),
	)

	req.Msg.Description = strings.TrimSpace(req.Msg.Description)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	wallet, err := memberWallet(ctx, s.store, req.Msg.WalletID, userID)
	if err != nil {
		return nil, err
	}

	payerID := req.Msg.PayerID
	if payerID == "" {
		payerID = userID
	}

	shares, err := requestedShares(req.Msg)
	if err != nil {
		return nil, err
	}
	if err := validatePayment(wallet, payerID, req.Msg.Amount, shares); err != nil {
		slog.Warn("CreatePayment rejected", "wallet_id", wallet.ID, "error", err)
		return nil, err
	}

	payment := &models.Payment{
		WalletID:     wallet.ID,
		PayerID:      payerID,
		Amount:       req.Msg.Amount,
		Description:  req.Msg.Description,
		Category:     strings.TrimSpace(req.Msg.Category),
		Participants: toModelParticipants(shares),
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("CreatePayment failed", "wallet_id", wallet.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	invalidateStatus(ctx, s.statusCache, wallet.ID)
	metrics.RecordPayment()

	slog.Info("Payment created", "payment_id", payment.ID, "wallet_id", wallet.ID, "user_id", userID)
	return connect.NewResponse(&api.PaymentResponse{Payment: toAPIPayment(payment, wallet)}), nil
}

// ListPayments returns a wallet's payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	wallet, err := memberWallet(ctx, s.store, req.Msg.WalletID, userID)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPaymentsByWallet(ctx, wallet.ID)
	if err != nil {
		slog.Error("ListPayments failed", "wallet_id", wallet.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ListPaymentsResponse{Payments: toAPIPayments(payments, wallet)}), nil
}

// GetPayment retrieves a payment with its participants.
func (s *PaymentService) GetPayment(ctx context.Context, req *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.PaymentResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	payment, wallet, err := s.memberPayment(ctx, req.Msg.PaymentID, userID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.PaymentResponse{Payment: toAPIPayment(payment, wallet)}), nil
}

// UpdatePayment replaces amount, description, category and shares. The payer
// is kept.
func (s *PaymentService) UpdatePayment(ctx context.Context, req *connect.Request[api.UpdatePaymentRequest]) (*connect.Response[api.PaymentResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdatePayment request received",
		"payment_id", req.Msg.PaymentID,
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.Participants),
	)

	req.Msg.Description = strings.TrimSpace(req.Msg.Description)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	payment, wallet, err := s.memberPayment(ctx, req.Msg.PaymentID, userID)
	if err != nil {
		return nil, err
	}

	shares := fromAPIParticipants(req.Msg.Participants)
	if err := validatePayment(wallet, payment.PayerID, req.Msg.Amount, shares); err != nil {
		slog.Warn("UpdatePayment rejected", "payment_id", payment.ID, "error", err)
		return nil, err
	}

	payment.Amount = req.Msg.Amount
	payment.Description = req.Msg.Description
	payment.Category = strings.TrimSpace(req.Msg.Category)
	payment.Participants = toModelParticipants(shares)

	if err := s.store.UpdatePayment(ctx, payment); err != nil {
		slog.Error("UpdatePayment failed", "payment_id", payment.ID, "error", err)
		return nil, storeError(err, errPaymentNotFound)
	}
	invalidateStatus(ctx, s.statusCache, wallet.ID)

	slog.Info("Payment updated", "payment_id", payment.ID, "wallet_id", wallet.ID, "user_id", userID)
	return connect.NewResponse(&api.PaymentResponse{Payment: toAPIPayment(payment, wallet)}), nil
}

// DeletePayment removes a payment and its shares.
func (s *PaymentService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	payment, wallet, err := s.memberPayment(ctx, req.Msg.PaymentID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeletePayment(ctx, payment.ID); err != nil {
		slog.Error("DeletePayment failed", "payment_id", payment.ID, "error", err)
		return nil, storeError(err, errPaymentNotFound)
	}
	invalidateStatus(ctx, s.statusCache, wallet.ID)

	slog.Info("Payment deleted", "payment_id", payment.ID, "wallet_id", wallet.ID, "user_id", userID)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// memberPayment loads a payment and the wallet it belongs to, checking the
// caller is a member of that wallet.
func (s *PaymentService) memberPayment(ctx context.Context, paymentID, userID string) (*models.Payment, *models.Wallet, error) {
	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, nil, storeError(err, errPaymentNotFound)
	}
	wallet, err := memberWallet(ctx, s.store, payment.WalletID, userID)
	if err != nil {
		return nil, nil, err
	}
	return payment, wallet, nil
}

func requestedShares(req *api.CreatePaymentRequest) ([]calculator.Participant, error) {
	if len(req.Participants) > 0 {
		return fromAPIParticipants(req.Participants), nil
	}
	if len(req.ParticipantIDs) == 0 {
		return nil, nil
	}
	shares, err := calculator.SplitEvenly(req.Amount, req.ParticipantIDs)
	if err != nil {
		return nil, invalidArgument(err)
	}
	return shares, nil
}

func fromAPIParticipants(parts []*api.Participant) []calculator.Participant {
	out := make([]calculator.Participant, len(parts))
	for i, p := range parts {
		out[i] = calculator.Participant{UserID: p.UserID, Amount: p.Amount}
	}
	return out
}

func toModelParticipants(shares []calculator.Participant) []models.PaymentParticipant {
	out := make([]models.PaymentParticipant, len(shares))
	for i, s := range shares {
		out[i] = models.PaymentParticipant{UserID: s.UserID, Amount: s.Amount}
	}
	return out
}
