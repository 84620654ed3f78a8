package gateway

import (
	"context"

	"github.com/username/apexbank/client/src/models"
)

// The remote service surface, split the way the application consumes it:
// account intents, ledger reads, reports, and the employee console. One
// HTTP Client implements all four. Failures are always a *gateway.Error;
// no call is retried here.
//
//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks -source=interfaces.go

// AccountService covers the customer's own accounts and money intents.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListActiveAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	CreateSavingsAccount(ctx context.Context, req models.CreateSavingsAccountRequest) (*models.Account, error)
	CreateCheckingAccount(ctx context.Context, req models.CreateCheckingAccountRequest) (*models.Account, error)
	Deposit(ctx context.Context, accountID int64, req models.AmountRequest) (*models.Transaction, error)
	Withdraw(ctx context.Context, accountID int64, req models.AmountRequest) (*models.Transaction, error)
	Transfer(ctx context.Context, req models.TransferRequest) (*models.Transaction, error)
	ActivateAccount(ctx context.Context, id int64) (*models.Account, error)
	DeactivateAccount(ctx context.Context, id int64) (*models.Account, error)
}

// TransactionService covers ledger reads for the customer's accounts.
type TransactionService interface {
	TransactionsByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error)
	MonthlyTransactions(ctx context.Context, accountID int64, year, month int) ([]models.Transaction, error)
	TransactionByReference(ctx context.Context, referenceNumber string) (*models.Transaction, error)
}

// ReportService covers monthly statements and interest.
type ReportService interface {
	MonthlyReport(ctx context.Context, accountID int64, year, month int) (*models.MonthlyReport, error)
	CalculateInterest(ctx context.Context, accountID int64) (*models.InterestCalculation, error)
	ApplyInterest(ctx context.Context, accountID int64) (*models.InterestCalculation, error)
}

// AdminService covers the employee console's system-wide reads.
type AdminService interface {
	AdminCustomers(ctx context.Context) ([]models.Customer, error)
	AdminSearchCustomers(ctx context.Context, query string) ([]models.Customer, error)
	AdminCustomer(ctx context.Context, id int64) (*models.Customer, error)
	AdminCustomerAccounts(ctx context.Context, customerID int64) ([]models.Account, error)
	AdminCustomerTransactions(ctx context.Context, customerID int64) ([]models.Transaction, error)
	AdminAccounts(ctx context.Context) ([]models.Account, error)
	AdminAccountTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error)
	AdminTransactionByReference(ctx context.Context, referenceNumber string) (*models.Transaction, error)
}
