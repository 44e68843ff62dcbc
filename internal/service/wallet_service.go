package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitwallet/internal/cache"
	"github.com/mmynk/splitwallet/internal/models"
	"github.com/mmynk/splitwallet/internal/storage"
	"github.com/mmynk/splitwallet/pkg/api"
)

// WalletService implements the Connect WalletService.
type WalletService struct {
	store       storage.Store
	statusCache cache.StatusCache
}

// NewWalletService creates a new WalletService with the given storage backend.
func NewWalletService(store storage.Store, statusCache cache.StatusCache) *WalletService {
	return &WalletService{store: store, statusCache: statusCache}
}

// CreateWallet creates a wallet owned by the caller.
func (s *WalletService) CreateWallet(ctx context.Context, req *connect.Request[api.CreateWalletRequest]) (*connect.Response[api.WalletResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	req.Msg.Name = strings.TrimSpace(req.Msg.Name)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	wallet := &models.Wallet{
		Name:        req.Msg.Name,
		Description: strings.TrimSpace(req.Msg.Description),
	}
	if err := s.store.CreateWallet(ctx, wallet, userID); err != nil {
		slog.Error("CreateWallet failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Wallet created", "wallet_id", wallet.ID, "user_id", userID)
	return connect.NewResponse(&api.WalletResponse{Wallet: toAPIWallet(wallet)}), nil
}

// ListWallets returns the caller's active wallets, most recently updated first.
func (s *WalletService) ListWallets(ctx context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[api.ListWalletsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	wallets, err := s.store.ListWalletsByUser(ctx, userID)
	if err != nil {
		slog.Error("ListWallets failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Wallet, len(wallets))
	for i, w := range wallets {
		out[i] = toAPIWallet(w)
	}
	return connect.NewResponse(&api.ListWalletsResponse{Wallets: out}), nil
}

// GetWallet returns a wallet with its members and payments.
func (s *WalletService) GetWallet(ctx context.Context, req *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	snapshot, err := s.store.LoadWalletLedger(ctx, req.Msg.WalletID)
	if err != nil {
		return nil, storeError(err, errWalletNotFound)
	}
	if !snapshot.Wallet.HasMember(userID) {
		slog.Warn("Access denied", "wallet_id", req.Msg.WalletID, "user_id", userID)
		return nil, connect.NewError(connect.CodePermissionDenied, ErrNotWalletMember)
	}

	wallet := snapshot.Wallet
	wallet.PaymentCount = len(snapshot.Payments)
	return connect.NewResponse(&api.GetWalletResponse{
		Wallet:   toAPIWallet(wallet),
		Payments: toAPIPayments(snapshot.Payments, wallet),
	}), nil
}

// UpdateWallet renames a wallet or changes its description. Owner only.
func (s *WalletService) UpdateWallet(ctx context.Context, req *connect.Request[api.UpdateWalletRequest]) (*connect.Response[api.WalletResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	req.Msg.Name = strings.TrimSpace(req.Msg.Name)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	wallet, err := s.ownedWallet(ctx, req.Msg.WalletID, userID)
	if err != nil {
		return nil, err
	}

	wallet.Name = req.Msg.Name
	wallet.Description = strings.TrimSpace(req.Msg.Description)
	if err := s.store.UpdateWallet(ctx, wallet); err != nil {
		slog.Error("UpdateWallet failed", "wallet_id", wallet.ID, "error", err)
		return nil, storeError(err, errWalletNotFound)
	}

	slog.Info("Wallet updated", "wallet_id", wallet.ID)
	return connect.NewResponse(&api.WalletResponse{Wallet: toAPIWallet(wallet)}), nil
}

// DeleteWallet removes a wallet that has no payments. Owner only.
func (s *WalletService) DeleteWallet(ctx context.Context, req *connect.Request[api.DeleteWalletRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	wallet, err := s.ownedWallet(ctx, req.Msg.WalletID, userID)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPaymentsByWallet(ctx, wallet.ID)
	if err != nil {
		slog.Error("DeleteWallet failed", "wallet_id", wallet.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if len(payments) > 0 {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("wallet still has %d payments", len(payments)))
	}

	if err := s.store.DeleteWallet(ctx, wallet.ID); err != nil {
		slog.Error("DeleteWallet failed", "wallet_id", wallet.ID, "error", err)
		return nil, storeError(err, errWalletNotFound)
	}
	invalidateStatus(ctx, s.statusCache, wallet.ID)

	slog.Info("Wallet deleted", "wallet_id", wallet.ID, "user_id", userID)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// GetInvite previews the wallet behind an invite code. No login required.
func (s *WalletService) GetInvite(ctx context.Context, req *connect.Request[api.GetInviteRequest]) (*connect.Response[api.InvitePreview], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	wallet, err := s.store.GetWalletByInviteCode(ctx, strings.TrimSpace(req.Msg.Code))
	if err != nil {
		return nil, storeError(err, errors.New("invite code not found"))
	}

	names := make([]string, len(wallet.Members))
	for i, m := range wallet.Members {
		names[i] = displayName(m.Name)
	}
	return connect.NewResponse(&api.InvitePreview{
		WalletID:    wallet.ID,
		Name:        wallet.Name,
		Description: wallet.Description,
		MemberNames: names,
	}), nil
}

// JoinWallet adds the caller to the wallet behind an invite code.
func (s *WalletService) JoinWallet(ctx context.Context, req *connect.Request[api.JoinWalletRequest]) (*connect.Response[api.WalletResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	wallet, err := s.store.GetWalletByInviteCode(ctx, strings.TrimSpace(req.Msg.Code))
	if err != nil {
		return nil, storeError(err, errors.New("invite code not found"))
	}

	if err := s.store.AddMember(ctx, wallet.ID, userID, models.RoleMember); err != nil {
		if errors.Is(err, storage.ErrAlreadyMember) {
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		}
		slog.Error("JoinWallet failed", "wallet_id", wallet.ID, "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	invalidateStatus(ctx, s.statusCache, wallet.ID)

	joined, err := s.store.GetWallet(ctx, wallet.ID)
	if err != nil {
		return nil, storeError(err, errWalletNotFound)
	}

	slog.Info("Member joined wallet", "wallet_id", wallet.ID, "user_id", userID)
	return connect.NewResponse(&api.WalletResponse{Wallet: toAPIWallet(joined)}), nil
}

func (s *WalletService) ownedWallet(ctx context.Context, walletID, userID string) (*models.Wallet, error) {
	wallet, err := memberWallet(ctx, s.store, walletID, userID)
	if err != nil {
		return nil, err
	}
	if !wallet.IsOwner(userID) {
		slog.Warn("Owner-only operation refused", "wallet_id", walletID, "user_id", userID)
		return nil, connect.NewError(connect.CodePermissionDenied, errNotOwner)
	}
	return wallet, nil
}
