// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitwallet/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyMember is returned when a user joins a wallet twice.
	ErrAlreadyMember = errors.New("already a member of this wallet")
	// ErrEmailTaken is returned when a second account uses an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// WalletLedger is a consistent snapshot of a wallet, its members and all of its
// payments with their participants.
type WalletLedger struct {
	Wallet   *models.Wallet
	Payments []*models.Payment
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. Returns ErrEmailTaken on duplicate email.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns ErrNotFound if no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateWallet persists a new wallet with ownerID as its owner.
	// ID, invite code and timestamps are generated when empty.
	CreateWallet(ctx context.Context, wallet *models.Wallet, ownerID string) error

	// GetWallet retrieves a wallet with its members.
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)

	// GetWalletByInviteCode retrieves an active wallet by invite code.
	GetWalletByInviteCode(ctx context.Context, code string) (*models.Wallet, error)

	// ListWalletsByUser returns the active wallets userID belongs to, most
	// recently updated first, with members and payment counts.
	ListWalletsByUser(ctx context.Context, userID string) ([]*models.Wallet, error)

	// UpdateWallet updates name and description.
	UpdateWallet(ctx context.Context, wallet *models.Wallet) error

	// DeleteWallet removes a wallet and everything it owns.
	DeleteWallet(ctx context.Context, walletID string) error

	// AddMember adds userID to the wallet. Returns ErrAlreadyMember if present.
	AddMember(ctx context.Context, walletID, userID, role string) error

	// CreatePayment persists a payment and its participants atomically.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetPayment retrieves a payment with its participants.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)

	// ListPaymentsByWallet returns a wallet's payments, newest first.
	ListPaymentsByWallet(ctx context.Context, walletID string) ([]*models.Payment, error)

	// UpdatePayment replaces amount, description, category and the participant list atomically.
	UpdatePayment(ctx context.Context, payment *models.Payment) error

	// DeletePayment removes a payment and its participants.
	DeletePayment(ctx context.Context, paymentID string) error

	// LoadWalletLedger reads the wallet, members, payments and participants in a
	// single transaction.
	LoadWalletLedger(ctx context.Context, walletID string) (*WalletLedger, error)

	// CreateSettlements persists a batch of settlement records atomically.
	CreateSettlements(ctx context.Context, settlements []*models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlementsByWallet returns a wallet's settlements, newest first.
	ListSettlementsByWallet(ctx context.Context, walletID string) ([]*models.Settlement, error)

	// SetSettlementCompleted flips the completion flag and returns the updated record.
	SetSettlementCompleted(ctx context.Context, settlementID string, completed bool) (*models.Settlement, error)

	// DeleteSettlement removes a settlement by ID.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
