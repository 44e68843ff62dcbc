package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitwallet/internal/cache"
	"github.com/mmynk/splitwallet/internal/calculator"
	"github.com/mmynk/splitwallet/internal/metrics"
	"github.com/mmynk/splitwallet/internal/models"
	"github.com/mmynk/splitwallet/internal/storage"
	"github.com/mmynk/splitwallet/pkg/api"
)

// SettlementService implements the Connect SettlementService.
//
// Settlement records are a log by default: balances come from payments only.
// With applyCompleted set, completed records are fed into the balance
// computation as offsetting payments.
type SettlementService struct {
	store          storage.Store
	statusCache    cache.StatusCache
	applyCompleted bool
	now            func() time.Time
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(store storage.Store, statusCache cache.StatusCache, applyCompleted bool) *SettlementService {
	return &SettlementService{
		store:          store,
		statusCache:    statusCache,
		applyCompleted: applyCompleted,
		now:            time.Now,
	}
}

// GetSettlementStatus computes balances and the transfers that settle them.
func (s *SettlementService) GetSettlementStatus(ctx context.Context, req *connect.Request[api.GetSettlementStatusRequest]) (*connect.Response[api.SettlementStatus], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	walletID := req.Msg.WalletID
	slog.Info("GetSettlementStatus request received", "wallet_id", walletID)

	wallet, err := memberWallet(ctx, s.store, walletID, userID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByWallet(ctx, walletID)
	if err != nil {
		slog.Error("GetSettlementStatus failed - could not list settlements", "wallet_id", walletID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	entry, err := s.status(ctx, walletID)
	if err != nil {
		return nil, err
	}

	existing := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		existing[i] = toAPISettlement(st, wallet)
	}

	status := entry.Status
	slog.Info("GetSettlementStatus successful",
		"wallet_id", walletID,
		"transactions", len(status.SettlementTransactions),
		"total_expenses", status.TotalExpenses,
	)

	return connect.NewResponse(&api.SettlementStatus{
		WalletID:               wallet.ID,
		WalletName:             wallet.Name,
		MemberBalances:         toAPIBalances(status.MemberBalances),
		SettlementTransactions: toAPITransfers(status.SettlementTransactions),
		NeedsSettlement:        status.NeedsSettlement,
		TotalExpenses:          status.TotalExpenses,
		TotalMembers:           status.TotalMembers,
		TotalPayments:          status.TotalPayments,
		Summary:                calculator.Summary(status),
		ExistingSettlements:    existing,
		CalculatedAt:           entry.CalculatedAt,
	}), nil
}

// status returns the cached settlement status or computes it from a ledger
// snapshot. Everything the status depends on is read after the cache version.
func (s *SettlementService) status(ctx context.Context, walletID string) (*cache.Entry, error) {
	cached, version, err := s.statusCache.Get(ctx, walletID)
	cacheable := err == nil
	if err != nil {
		slog.Warn("Settlement status cache unavailable", "wallet_id", walletID, "error", err)
	} else {
		metrics.RecordCacheLookup(cached != nil)
		if cached != nil {
			return cached, nil
		}
	}

	snapshot, err := s.store.LoadWalletLedger(ctx, walletID)
	if err != nil {
		slog.Error("GetSettlementStatus failed - could not load ledger", "wallet_id", walletID, "error", err)
		return nil, storeError(err, errWalletNotFound)
	}

	ledger := toLedger(snapshot)
	if s.applyCompleted {
		settlements, err := s.store.ListSettlementsByWallet(ctx, walletID)
		if err != nil {
			slog.Error("GetSettlementStatus failed - could not list settlements", "wallet_id", walletID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		ledger.Offsets = calculator.SettlementOffsets(completedTransfers(settlements))
	}

	status := calculator.GetSettlementStatus(ledger)
	calculator.SortByBalance(status.MemberBalances)
	metrics.RecordSettlementComputation(len(status.SettlementTransactions))

	entry := &cache.Entry{Status: status, CalculatedAt: s.now().Unix(), Version: version}
	if !cacheable {
		return entry, nil
	}
	// A write committed after the ledger read has bumped the version, so an
	// entry stamped with the old one is never served.
	if err := s.statusCache.Set(ctx, walletID, entry); err != nil {
		slog.Warn("Failed to cache settlement status", "wallet_id", walletID, "error", err)
	}
	return entry, nil
}

// RecordSettlements logs proposed transfers as pending settlement records.
func (s *SettlementService) RecordSettlements(ctx context.Context, req *connect.Request[api.RecordSettlementsRequest]) (*connect.Response[api.RecordSettlementsResponse], error) {
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

	records := make([]*models.Settlement, len(req.Msg.Transactions))
	for i, tx := range req.Msg.Transactions {
		if err := validateTransaction(wallet, tx.FromUserID, tx.ToUserID, tx.Amount); err != nil {
			slog.Warn("RecordSettlements rejected", "wallet_id", wallet.ID, "error", err)
			return nil, err
		}
		records[i] = &models.Settlement{
			WalletID:   wallet.ID,
			FromUserID: tx.FromUserID,
			ToUserID:   tx.ToUserID,
			Amount:     tx.Amount,
		}
	}

	if err := s.store.CreateSettlements(ctx, records); err != nil {
		slog.Error("RecordSettlements failed", "wallet_id", wallet.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	metrics.RecordSettlements(len(records))

	out := make([]*api.Settlement, len(records))
	for i, r := range records {
		out[i] = toAPISettlement(r, wallet)
	}

	slog.Info("Settlements recorded", "wallet_id", wallet.ID, "count", len(records), "user_id", userID)
	return connect.NewResponse(&api.RecordSettlementsResponse{Settlements: out}), nil
}

// UpdateSettlement marks a settlement as completed or pending again.
func (s *SettlementService) UpdateSettlement(ctx context.Context, req *connect.Request[api.UpdateSettlementRequest]) (*connect.Response[api.SettlementResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	settlement, wallet, err := s.memberSettlement(ctx, req.Msg.SettlementID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.SetSettlementCompleted(ctx, settlement.ID, req.Msg.IsCompleted)
	if err != nil {
		slog.Error("UpdateSettlement failed", "settlement_id", settlement.ID, "error", err)
		return nil, storeError(err, errSettlementNotFound)
	}
	s.settlementsChanged(ctx, wallet.ID)

	slog.Info("Settlement updated", "settlement_id", updated.ID, "completed", updated.IsCompleted, "user_id", userID)
	return connect.NewResponse(&api.SettlementResponse{Settlement: toAPISettlement(updated, wallet)}), nil
}

// DeleteSettlement removes a settlement record.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	settlement, wallet, err := s.memberSettlement(ctx, req.Msg.SettlementID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteSettlement(ctx, settlement.ID); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", settlement.ID, "error", err)
		return nil, storeError(err, errSettlementNotFound)
	}
	s.settlementsChanged(ctx, wallet.ID)

	slog.Info("Settlement deleted", "settlement_id", settlement.ID, "wallet_id", wallet.ID, "user_id", userID)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func (s *SettlementService) memberSettlement(ctx context.Context, settlementID, userID string) (*models.Settlement, *models.Wallet, error) {
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, nil, storeError(err, errSettlementNotFound)
	}
	wallet, err := memberWallet(ctx, s.store, settlement.WalletID, userID)
	if err != nil {
		return nil, nil, err
	}
	return settlement, wallet, nil
}

// settlementsChanged drops the cached status when completed settlements
// take part in the balance computation.
func (s *SettlementService) settlementsChanged(ctx context.Context, walletID string) {
	if s.applyCompleted {
		invalidateStatus(ctx, s.statusCache, walletID)
	}
}

func completedTransfers(settlements []*models.Settlement) []calculator.SettlementForBalance {
	var out []calculator.SettlementForBalance
	for _, st := range settlements {
		if st.IsCompleted {
			out = append(out, calculator.SettlementForBalance{
				FromUserID: st.FromUserID,
				ToUserID:   st.ToUserID,
				Amount:     st.Amount,
			})
		}
	}
	return out
}

func toAPIBalances(stats []calculator.MemberStat) []*api.MemberBalance {
	out := make([]*api.MemberBalance, len(stats))
	for i, m := range stats {
		out[i] = &api.MemberBalance{
			UserID:             m.UserID,
			Name:               m.Name,
			Image:              m.Image,
			TotalPaid:          m.TotalPaid,
			TotalOwed:          m.TotalOwed,
			Balance:            m.Balance,
			PaymentCount:       m.PaymentCount,
			ParticipationCount: m.ParticipationCount,
		}
	}
	return out
}

func toAPIParty(p calculator.Party) *api.Party {
	return &api.Party{UserID: p.UserID, Name: p.Name, Image: p.Image}
}

func toAPITransfers(txs []calculator.SettlementTransaction) []*api.Transfer {
	out := make([]*api.Transfer, len(txs))
	for i, tx := range txs {
		out[i] = &api.Transfer{From: toAPIParty(tx.From), To: toAPIParty(tx.To), Amount: tx.Amount}
	}
	return out
}
