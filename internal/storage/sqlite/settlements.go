package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitwallet/internal/models"
	"github.com/mmynk/splitwallet/internal/storage"
)

const settlementColumns = `id, wallet_id, from_user_id, to_user_id, amount, is_completed, completed_at, created_at`

// CreateSettlements persists a batch of settlements in one transaction.
func (s *SQLiteStore) CreateSettlements(ctx context.Context, settlements []*models.Settlement) error {
	now := time.Now().Unix()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, settlement := range settlements {
			// Generate ID if not set
			if settlement.ID == "" {
				settlement.ID = uuid.New().String()
			}
			if settlement.CreatedAt == 0 {
				settlement.CreatedAt = now
			}

			var completedAt any
			if settlement.IsCompleted && settlement.CompletedAt != 0 {
				completedAt = settlement.CompletedAt
			}

			_, err := tx.ExecContext(ctx,
				`INSERT INTO settlements (`+settlementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				settlement.ID, settlement.WalletID, settlement.FromUserID, settlement.ToUserID,
				settlement.Amount, settlement.IsCompleted, completedAt, settlement.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert settlement: %w", err)
			}
		}
		return nil
	})
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE id = ?`,
		settlementID,
	)
	settlement, err := scanSettlement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return settlement, nil
}

// ListSettlementsByWallet retrieves all settlements for a wallet.
func (s *SQLiteStore) ListSettlementsByWallet(ctx context.Context, walletID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE wallet_id = ? ORDER BY created_at DESC, rowid DESC`,
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by wallet: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// SetSettlementCompleted marks a settlement completed (or pending again).
func (s *SQLiteStore) SetSettlementCompleted(ctx context.Context, settlementID string, completed bool) (*models.Settlement, error) {
	var completedAt any
	if completed {
		completedAt = time.Now().Unix()
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE settlements SET is_completed = ?, completed_at = ? WHERE id = ?",
		completed, completedAt, settlementID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update settlement: %w", err)
	}
	if err := expectAffected(result, "settlement", settlementID); err != nil {
		return nil, err
	}

	return s.GetSettlement(ctx, settlementID)
}

// DeleteSettlement removes a settlement by ID.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, settlementID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	return expectAffected(result, "settlement", settlementID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSettlement(row scanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var completedAt sql.NullInt64
	if err := row.Scan(&settlement.ID, &settlement.WalletID, &settlement.FromUserID, &settlement.ToUserID,
		&settlement.Amount, &settlement.IsCompleted, &completedAt, &settlement.CreatedAt); err != nil {
		return nil, err
	}
	settlement.CompletedAt = completedAt.Int64
	return settlement, nil
}
