package models

import "github.com/shopspring/decimal"

type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

// Account is the service's view of one bank account. The type-specific
// fields are pointers: exactly one of the SAVINGS or CHECKING sets is
// populated, selected by AccountType.
type Account struct {
	ID                int64           `json:"id"`
	AccountNumber     string          `json:"accountNumber"`
	AccountHolderName string          `json:"accountHolderName"`
	Email             string          `json:"email"`
	Balance           decimal.Decimal `json:"balance"`
	AccountType       AccountType     `json:"accountType"`
	Active            bool            `json:"active"`
	CreatedAt         Time            `json:"createdAt"`
	UpdatedAt         Time            `json:"updatedAt"`

	// SAVINGS only
	MinimumBalance *decimal.Decimal `json:"minimumBalance,omitempty"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`

	// CHECKING only
	OverdraftLimit   *decimal.Decimal `json:"overdraftLimit,omitempty"`
	MonthlyFee       *decimal.Decimal `json:"monthlyFee,omitempty"`
	AvailableBalance *decimal.Decimal `json:"availableBalance,omitempty"`
}

func (a *Account) IsSavings() bool {
	return a.AccountType == AccountTypeSavings
}

func (a *Account) IsChecking() bool {
	return a.AccountType == AccountTypeChecking
}
