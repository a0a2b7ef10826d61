package models

import "time"

// Transaction represents a single ledger entry for a checking account.
// Amount is in dollars, positive for inflows and negative for outflows.
type Transaction struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Amount      float64   `json:"amount"`
	Timestamp   time.Time `json:"date"`
	Description string    `json:"description"`
	FromAccount string    `json:"from_account"`
	ToAccount   string    `json:"to_account"`
}
