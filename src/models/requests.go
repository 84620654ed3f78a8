package models

import "github.com/shopspring/decimal"

// Request payloads for the mutating endpoints. Field names follow the
// service's request DTOs exactly.

type CreateSavingsAccountRequest struct {
	AccountHolderName string          `json:"accountHolderName"`
	Email             string          `json:"email"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	MinimumBalance    decimal.Decimal `json:"minimumBalance"`
	InterestRate      decimal.Decimal `json:"interestRate"`
}

type CreateCheckingAccountRequest struct {
	AccountHolderName string          `json:"accountHolderName"`
	Email             string          `json:"email"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	OverdraftLimit    decimal.Decimal `json:"overdraftLimit"`
	MonthlyFee        decimal.Decimal `json:"monthlyFee"`
}

// AmountRequest is the shared deposit/withdraw body.
type AmountRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type TransferRequest struct {
	SourceAccountNumber string          `json:"sourceAccountNumber"`
	TargetAccountNumber string          `json:"targetAccountNumber"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description,omitempty"`
}
