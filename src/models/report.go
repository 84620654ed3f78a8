package models

import "github.com/shopspring/decimal"

// MonthlyReport is computed entirely server-side for one account and one
// (year, month). The client only groups the six totals for display.
type MonthlyReport struct {
	AccountID         int64           `json:"accountId"`
	AccountNumber     string          `json:"accountNumber"`
	AccountHolderName string          `json:"accountHolderName"`
	AccountType       AccountType     `json:"accountType"`
	ReportMonth       YearMonth       `json:"reportMonth"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	ClosingBalance    decimal.Decimal `json:"closingBalance"`

	TotalDeposits       decimal.Decimal `json:"totalDeposits"`
	TotalWithdrawals    decimal.Decimal `json:"totalWithdrawals"`
	TotalTransfersIn    decimal.Decimal `json:"totalTransfersIn"`
	TotalTransfersOut   decimal.Decimal `json:"totalTransfersOut"`
	TotalInterestEarned decimal.Decimal `json:"totalInterestEarned"`
	TotalFeesCharged    decimal.Decimal `json:"totalFeesCharged"`

	TransactionCount int           `json:"transactionCount"`
	Transactions     []Transaction `json:"transactions"`
}

// InterestCalculation is the service's answer to the interest
// calculate/apply endpoints.
type InterestCalculation struct {
	AccountID             int64           `json:"accountId"`
	AccountNumber         string          `json:"accountNumber"`
	BalanceBeforeInterest decimal.Decimal `json:"balanceBeforeInterest"`
	InterestRate          decimal.Decimal `json:"interestRate"`
	InterestAmount        decimal.Decimal `json:"interestAmount"`
	BalanceAfterInterest  decimal.Decimal `json:"balanceAfterInterest"`
	CalculationDate       Time            `json:"calculationDate"`
}
