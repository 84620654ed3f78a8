package models

import "github.com/shopspring/decimal"

// TransactionType is the ledger's machine code for a movement.
type TransactionType string

const (
	TransactionDeposit     TransactionType = "DEPOSIT"
	TransactionWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTransferIn  TransactionType = "TRANSFER_IN"
	TransactionTransferOut TransactionType = "TRANSFER_OUT"
	TransactionInterest    TransactionType = "INTEREST"
	TransactionFee         TransactionType = "FEE"
)

// Transaction is one immutable ledger entry, created only by the remote
// service and fetched read-only.
type Transaction struct {
	ID                   int64           `json:"id"`
	ReferenceNumber      string          `json:"referenceNumber"`
	AccountNumber        string          `json:"accountNumber"`
	Type                 TransactionType `json:"type"`
	TypeDisplayName      string          `json:"typeDisplayName"`
	Amount               decimal.Decimal `json:"amount"`
	BalanceBefore        decimal.Decimal `json:"balanceBefore"`
	BalanceAfter         decimal.Decimal `json:"balanceAfter"`
	Description          string          `json:"description"`
	RelatedAccountNumber string          `json:"relatedAccountNumber,omitempty"`
	TransactionDate      Time            `json:"transactionDate"`

	// Credit is the ledger's own sign flag. Display direction is derived
	// from the balance pair instead (see views.IsIncreasing).
	Credit bool `json:"credit"`
}
