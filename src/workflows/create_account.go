package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/apexbank/client/src/directory"
	"github.com/username/apexbank/client/src/gateway"
	"github.com/username/apexbank/client/src/models"
)

// CreateAccountInput carries the create-account form. Only the field set
// matching AccountType is sent to the service.
type CreateAccountInput struct {
	AccountType       models.AccountType
	AccountHolderName string
	Email             string
	InitialBalance    decimal.Decimal

	// SAVINGS
	MinimumBalance decimal.Decimal
	InterestRate   decimal.Decimal

	// CHECKING
	OverdraftLimit decimal.Decimal
	MonthlyFee     decimal.Decimal
}

// DefaultCreateAccountInput mirrors the form's presets.
func DefaultCreateAccountInput() CreateAccountInput {
	return CreateAccountInput{
		AccountType:    models.AccountTypeSavings,
		MinimumBalance: decimal.NewFromInt(100),
		InterestRate:   decimal.RequireFromString("2.5"),
		OverdraftLimit: decimal.NewFromInt(500),
		MonthlyFee:     decimal.NewFromInt(10),
	}
}

// CreateAccount opens a new savings or checking account.
type CreateAccount struct {
	Modal
	accounts gateway.AccountService
	dir      *directory.Directory

	Input  CreateAccountInput
	Result *models.Account
}

func NewCreateAccount(accounts gateway.AccountService, dir *directory.Directory) *CreateAccount {
	return &CreateAccount{
		accounts: accounts,
		dir:      dir,
		Input:    DefaultCreateAccountInput(),
	}
}

func (w *CreateAccount) Submit(ctx context.Context) error {
	if err := w.validate(); err != nil {
		return w.fail(err)
	}
	w.begin()

	var (
		created *models.Account
		err     error
	)
	switch w.Input.AccountType {
	case models.AccountTypeSavings:
		created, err = w.accounts.CreateSavingsAccount(ctx, models.CreateSavingsAccountRequest{
			AccountHolderName: w.Input.AccountHolderName,
			Email:             w.Input.Email,
			InitialBalance:    w.Input.InitialBalance,
			MinimumBalance:    w.Input.MinimumBalance,
			InterestRate:      w.Input.InterestRate,
		})
	default:
		created, err = w.accounts.CreateCheckingAccount(ctx, models.CreateCheckingAccountRequest{
			AccountHolderName: w.Input.AccountHolderName,
			Email:             w.Input.Email,
			InitialBalance:    w.Input.InitialBalance,
			OverdraftLimit:    w.Input.OverdraftLimit,
			MonthlyFee:        w.Input.MonthlyFee,
		})
	}
	if err != nil {
		return w.fail(err)
	}

	w.Result = created
	w.commit(ctx, w.dir, fmt.Sprintf("Account %s created", created.AccountNumber))
	return nil
}

func (w *CreateAccount) validate() error {
	in := w.Input
	if in.AccountType != models.AccountTypeSavings && in.AccountType != models.AccountTypeChecking {
		return &ValidationError{Field: "accountType", Reason: "must be SAVINGS or CHECKING"}
	}
	if strings.TrimSpace(in.AccountHolderName) == "" {
		return &ValidationError{Field: "accountHolderName", Reason: "is required"}
	}
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if in.InitialBalance.IsNegative() {
		return &ValidationError{Field: "initialBalance", Reason: "must not be negative"}
	}
	if in.AccountType == models.AccountTypeSavings {
		if in.MinimumBalance.IsNegative() {
			return &ValidationError{Field: "minimumBalance", Reason: "must not be negative"}
		}
		if in.InterestRate.IsNegative() {
			return &ValidationError{Field: "interestRate", Reason: "must not be negative"}
		}
	} else {
		if in.OverdraftLimit.IsNegative() {
			return &ValidationError{Field: "overdraftLimit", Reason: "must not be negative"}
		}
		if in.MonthlyFee.IsNegative() {
			return &ValidationError{Field: "monthlyFee", Reason: "must not be negative"}
		}
	}
	return nil
}
