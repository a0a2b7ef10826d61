package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/boa-labs/preapproval/internal/models"
)

// Repository provides database operations against the banking ledger.
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database.
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO bank.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email.
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM bank.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByUsername retrieves a user by username.
func (r *Repository) FindUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM bank.users
		WHERE username = $1`
	err := r.db.QueryRow(query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindAccountByUsername retrieves the checking account for a username.
func (r *Repository) FindAccountByUsername(username string) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT a.id, a.user_id, a.balance_cents, a.currency, a.created_at, a.updated_at
		FROM bank.accounts a
		JOIN bank.users u ON u.id = a.user_id
		WHERE u.username = $1`
	var balanceCents int64
	err := r.db.QueryRow(query, username).
		Scan(&account.ID, &account.UserID, &balanceCents, &account.Currency, &account.CreatedAt, &account.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	account.Balance = float64(balanceCents) / 100
	return account, nil
}

// ListTransactions returns the ledger entries for an account over the most
// recent N months, oldest first. Ledger amounts are stored in cents and
// converted to dollars here.
func (r *Repository) ListTransactions(accountID string, months int) ([]models.Transaction, error) {
	since := time.Now().AddDate(0, -months, 0)
	query := `
		SELECT id, account_id, amount_cents, description, from_account, to_account, created_at
		FROM bank.transactions
		WHERE account_id = $1 AND created_at >= $2
		ORDER BY created_at ASC`
	rows, err := r.db.Query(query, accountID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var amountCents int64
		if err := rows.Scan(&tx.ID, &tx.AccountID, &amountCents, &tx.Description, &tx.FromAccount, &tx.ToAccount, &tx.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Amount = float64(amountCents) / 100
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

// GetBalance returns the current balance for an account in dollars.
func (r *Repository) GetBalance(accountID string) (float64, error) {
	var balanceCents int64
	query := `SELECT balance_cents FROM bank.accounts WHERE id = $1`
	err := r.db.QueryRow(query, accountID).Scan(&balanceCents)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("account not found")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return float64(balanceCents) / 100, nil
}
