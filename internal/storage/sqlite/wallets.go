package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitwallet/internal/models"
	"github.com/mmynk/splitwallet/internal/storage"
)

const walletColumns = `w.id, w.name, w.description, w.invite_code, w.is_active, w.created_at, w.updated_at`

// newInviteCode returns a short random code for joining a wallet.
func newInviteCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// CreateWallet persists a new wallet and its owner membership.
func (s *SQLiteStore) CreateWallet(ctx context.Context, wallet *models.Wallet, ownerID string) error {
	now := time.Now().Unix()
	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	if wallet.InviteCode == "" {
		wallet.InviteCode = newInviteCode()
	}
	if wallet.CreatedAt == 0 {
		wallet.CreatedAt = now
	}
	wallet.UpdatedAt = wallet.CreatedAt
	wallet.IsActive = true

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO wallets (id, name, description, invite_code, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, 1, ?, ?)`,
			wallet.ID, wallet.Name, nullString(wallet.Description), wallet.InviteCode,
			wallet.CreatedAt, wallet.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert wallet: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO wallet_members (wallet_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
			wallet.ID, ownerID, models.RoleOwner, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert owner: %w", err)
		}

		members, err := loadMembers(ctx, tx, wallet.ID)
		if err != nil {
			return err
		}
		wallet.Members = members
		return nil
	})
}

// GetWallet retrieves a wallet by ID, including its members.
func (s *SQLiteStore) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	return getWallet(ctx, s.db, "w.id = ?", walletID)
}

// GetWalletByInviteCode retrieves an active wallet by its invite code.
func (s *SQLiteStore) GetWalletByInviteCode(ctx context.Context, code string) (*models.Wallet, error) {
	return getWallet(ctx, s.db, "w.invite_code = ? AND w.is_active = 1", code)
}

// ListWalletsByUser retrieves the active wallets a user belongs to.
func (s *SQLiteStore) ListWalletsByUser(ctx context.Context, userID string) ([]*models.Wallet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+walletColumns+`,
		        (SELECT COUNT(*) FROM payments p WHERE p.wallet_id = w.id)
		 FROM wallets w
		 JOIN wallet_members m ON m.wallet_id = w.id
		 WHERE m.user_id = ? AND w.is_active = 1
		 ORDER BY w.updated_at DESC, w.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	var wallets []*models.Wallet
	for rows.Next() {
		wallet := &models.Wallet{}
		var description sql.NullString
		if err := rows.Scan(&wallet.ID, &wallet.Name, &description, &wallet.InviteCode,
			&wallet.IsActive, &wallet.CreatedAt, &wallet.UpdatedAt, &wallet.PaymentCount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallet.Description = description.String
		wallets = append(wallets, wallet)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallets: %w", err)
	}

	// Members are loaded after the wallet rows are closed.
	for _, wallet := range wallets {
		members, err := loadMembers(ctx, s.db, wallet.ID)
		if err != nil {
			return nil, err
		}
		wallet.Members = members
	}

	return wallets, nil
}

// UpdateWallet updates a wallet's name and description.
func (s *SQLiteStore) UpdateWallet(ctx context.Context, wallet *models.Wallet) error {
	wallet.UpdatedAt = time.Now().Unix()
	result, err := s.db.ExecContext(ctx,
		"UPDATE wallets SET name = ?, description = ?, updated_at = ? WHERE id = ?",
		wallet.Name, nullString(wallet.Description), wallet.UpdatedAt, wallet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return expectAffected(result, "wallet", wallet.ID)
}

// DeleteWallet removes a wallet. Members, payments and settlements cascade.
func (s *SQLiteStore) DeleteWallet(ctx context.Context, walletID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM wallets WHERE id = ?", walletID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	return expectAffected(result, "wallet", walletID)
}

// AddMember adds a user to a wallet with the given role.
func (s *SQLiteStore) AddMember(ctx context.Context, walletID, userID, role string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO wallet_members (wallet_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
		walletID, userID, role, time.Now().Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrAlreadyMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func getWallet(ctx context.Context, q queryer, where string, arg any) (*models.Wallet, error) {
	wallet := &models.Wallet{}
	var description sql.NullString
	err := q.QueryRowContext(ctx,
		`SELECT `+walletColumns+` FROM wallets w WHERE `+where,
		arg,
	).Scan(&wallet.ID, &wallet.Name, &description, &wallet.InviteCode,
		&wallet.IsActive, &wallet.CreatedAt, &wallet.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wallet %v: %w", arg, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	wallet.Description = description.String

	members, err := loadMembers(ctx, q, wallet.ID)
	if err != nil {
		return nil, err
	}
	wallet.Members = members

	return wallet, nil
}

func loadMembers(ctx context.Context, q queryer, walletID string) ([]models.WalletMember, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT m.wallet_id, m.user_id, m.role, m.joined_at, u.name, u.image
		 FROM wallet_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.wallet_id = ?
		 ORDER BY m.joined_at, u.name`,
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.WalletMember
	for rows.Next() {
		var m models.WalletMember
		var image sql.NullString
		if err := rows.Scan(&m.WalletID, &m.UserID, &m.Role, &m.JoinedAt, &m.Name, &image); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Image = image.String
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

func expectAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
