package domain

import "github.com/shopspring/decimal"

// Account is a wallet or bank account. Balance is signed and is kept in step
// with the transactions linked to it.
type Account struct {
	ID      string          `json:"id" validate:"required"`
	Name    string          `json:"name" validate:"required"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountDeletion reports an account removal together with the transactions
// removed by the cascade.
type AccountDeletion struct {
	Account               Account  `json:"account"`
	DeletedTransactionIDs []string `json:"deletedTransactionIds"`
}
