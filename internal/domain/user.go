package domain

import "time"

// User is the balance-bearing account. Balance only changes through the ledger service.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Balance      Amount
	CreatedAt    time.Time
}
