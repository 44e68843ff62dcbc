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

const paymentColumns = `id, wallet_id, payer_id, amount, description, category, created_at, updated_at`

// CreatePayment persists a new payment and its participants in one transaction.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	payment.UpdatedAt = payment.CreatedAt

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			payment.ID, payment.WalletID, payment.PayerID, payment.Amount,
			payment.Description, nullString(payment.Category), payment.CreatedAt, payment.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		if err := insertParticipants(ctx, tx, payment); err != nil {
			return err
		}
		return touchWallet(ctx, tx, payment.WalletID, payment.UpdatedAt)
	})
}

// GetPayment retrieves a payment by ID, including participants.
func (s *SQLiteStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment := &models.Payment{}
	var category sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`,
		paymentID,
	).Scan(&payment.ID, &payment.WalletID, &payment.PayerID, &payment.Amount,
		&payment.Description, &category, &payment.CreatedAt, &payment.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	payment.Category = category.String

	rows, err := s.db.QueryContext(ctx,
		"SELECT payment_id, user_id, amount FROM payment_participants WHERE payment_id = ? ORDER BY rowid",
		paymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.PaymentParticipant
		if err := rows.Scan(&p.PaymentID, &p.UserID, &p.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		payment.Participants = append(payment.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return payment, nil
}

// ListPaymentsByWallet retrieves all payments of a wallet, newest first.
func (s *SQLiteStore) ListPaymentsByWallet(ctx context.Context, walletID string) ([]*models.Payment, error) {
	return loadPayments(ctx, s.db, walletID)
}

// UpdatePayment replaces a payment's amount, description, category and participants.
func (s *SQLiteStore) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	payment.UpdatedAt = time.Now().Unix()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE payments SET amount = ?, description = ?, category = ?, updated_at = ? WHERE id = ?",
			payment.Amount, payment.Description, nullString(payment.Category), payment.UpdatedAt, payment.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		if err := expectAffected(result, "payment", payment.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM payment_participants WHERE payment_id = ?", payment.ID); err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}
		if err := insertParticipants(ctx, tx, payment); err != nil {
			return err
		}
		return touchWallet(ctx, tx, payment.WalletID, payment.UpdatedAt)
	})
}

// DeletePayment removes a payment and touches its wallet. Participants cascade.
func (s *SQLiteStore) DeletePayment(ctx context.Context, paymentID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var walletID string
		err := tx.QueryRowContext(ctx, "SELECT wallet_id FROM payments WHERE id = ?", paymentID).Scan(&walletID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get payment: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", paymentID); err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		return touchWallet(ctx, tx, walletID, time.Now().Unix())
	})
}

// LoadWalletLedger reads a wallet with members, payments and participants from a
// single transaction so the result is never a partial write.
func (s *SQLiteStore) LoadWalletLedger(ctx context.Context, walletID string) (*storage.WalletLedger, error) {
	ledger := &storage.WalletLedger{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		wallet, err := getWallet(ctx, tx, "w.id = ?", walletID)
		if err != nil {
			return err
		}
		payments, err := loadPayments(ctx, tx, walletID)
		if err != nil {
			return err
		}
		ledger.Wallet = wallet
		ledger.Payments = payments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, payment *models.Payment) error {
	for i := range payment.Participants {
		p := &payment.Participants[i]
		p.PaymentID = payment.ID
		_, err := tx.ExecContext(ctx,
			"INSERT INTO payment_participants (payment_id, user_id, amount) VALUES (?, ?, ?)",
			p.PaymentID, p.UserID, p.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

func touchWallet(ctx context.Context, tx *sql.Tx, walletID string, at int64) error {
	if _, err := tx.ExecContext(ctx, "UPDATE wallets SET updated_at = ? WHERE id = ?", at, walletID); err != nil {
		return fmt.Errorf("failed to touch wallet: %w", err)
	}
	return nil
}

// loadPayments reads payments first, then all participants of the wallet in one
// query, and stitches them together.
func loadPayments(ctx context.Context, q queryer, walletID string) ([]*models.Payment, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE wallet_id = ? ORDER BY created_at DESC, rowid DESC`,
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	var payments []*models.Payment
	byID := make(map[string]*models.Payment)
	for rows.Next() {
		payment := &models.Payment{}
		var category sql.NullString
		if err := rows.Scan(&payment.ID, &payment.WalletID, &payment.PayerID, &payment.Amount,
			&payment.Description, &category, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payment.Category = category.String
		payments = append(payments, payment)
		byID[payment.ID] = payment
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	if len(payments) == 0 {
		return payments, nil
	}

	partRows, err := q.QueryContext(ctx,
		`SELECT pp.payment_id, pp.user_id, pp.amount
		 FROM payment_participants pp
		 JOIN payments p ON p.id = pp.payment_id
		 WHERE p.wallet_id = ?
		 ORDER BY pp.rowid`,
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var p models.PaymentParticipant
		if err := partRows.Scan(&p.PaymentID, &p.UserID, &p.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if payment, ok := byID[p.PaymentID]; ok {
			payment.Participants = append(payment.Participants, p)
		}
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return payments, nil
}
