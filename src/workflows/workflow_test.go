package workflows_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/apexbank/client/src/directory"
	"github.com/username/apexbank/client/src/gateway"
	"github.com/username/apexbank/client/src/gateway/mocks"
	"github.com/username/apexbank/client/src/models"
	"github.com/username/apexbank/client/src/views"
	"github.com/username/apexbank/client/src/workflows"
)

type fixture struct {
	accounts *mocks.MockAccountService
	ledger   *mocks.MockTransactionService
	reports  *mocks.MockReportService
	dir      *directory.Directory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	f := &fixture{
		accounts: mocks.NewMockAccountService(ctrl),
		ledger:   mocks.NewMockTransactionService(ctrl),
		reports:  mocks.NewMockReportService(ctrl),
	}
	f.dir = directory.New(f.accounts, f.ledger)
	return f
}

// seed loads the given accounts and selects the one with selectID.
func (f *fixture) seed(t *testing.T, accounts []models.Account, selectID int64) {
	t.Helper()
	f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil)
	f.ledger.EXPECT().TransactionsByAccount(gomock.Any(), accounts[0].ID).Return(nil, nil)
	require.NoError(t, f.dir.Refresh(context.Background()))
	if selectID != accounts[0].ID {
		f.ledger.EXPECT().TransactionsByAccount(gomock.Any(), selectID).Return(nil, nil)
		require.NoError(t, f.dir.Select(context.Background(), selectID))
	}
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func customerAccounts() []models.Account {
	return []models.Account{
		{ID: 1, AccountNumber: "ACC-1001", AccountType: models.AccountTypeChecking, Balance: amt("1000"), Active: true},
		{ID: 2, AccountNumber: "ACC-2002", AccountType: models.AccountTypeSavings, Balance: amt("500"), Active: true},
	}
}

func TestDepositRefreshesDirectoryAndCloses(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 2)

	w := workflows.NewDeposit(f.accounts, f.dir)
	w.Amount = amt("200")
	w.Description = "salary"

	f.accounts.EXPECT().Deposit(gomock.Any(), int64(2), models.AmountRequest{Amount: amt("200"), Description: "salary"}).
		Return(&models.Transaction{ID: 77, ReferenceNumber: "TXN-77", Type: models.TransactionDeposit}, nil)

	// Exactly one refresh after the commit.
	updated := customerAccounts()
	updated[1].Balance = amt("700")
	f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(updated, nil).Times(1)
	f.ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(2)).
		Return([]models.Transaction{{ID: 77, BalanceBefore: amt("500"), BalanceAfter: amt("700")}}, nil)

	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, workflows.PhaseSucceeded, w.Phase())
	assert.True(t, w.Closed())
	assert.NoError(t, w.RefreshErr())
	assert.Equal(t, "deposit of 200.00 completed", w.Message())
	require.NotNil(t, w.Result)
	assert.Equal(t, "TXN-77", w.Result.ReferenceNumber)

	// Balance and preview agree after the acknowledged mutation.
	assert.True(t, amt("700").Equal(f.dir.Selected().Balance))
	preview := f.dir.Transactions()
	require.Len(t, preview, 1)
	assert.True(t, views.IsIncreasing(preview[0]))
}

func TestWithdrawServerErrorKeepsModalOpen(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 1)

	w := workflows.NewWithdraw(f.accounts, f.dir)
	w.Amount = amt("5000")

	gwErr := &gateway.Error{Status: 400, Message: "Insufficient funds"}
	f.accounts.EXPECT().Withdraw(gomock.Any(), int64(1), gomock.Any()).Return(nil, gwErr)

	err := w.Submit(context.Background())
	require.ErrorIs(t, err, gwErr)

	assert.Equal(t, workflows.PhaseFailed, w.Phase())
	assert.False(t, w.Closed())
	// Resubmission after correcting the amount succeeds on the same modal.
	w.Amount = amt("100")
	f.accounts.EXPECT().Withdraw(gomock.Any(), int64(1), models.AmountRequest{Amount: amt("100")}).
		Return(&models.Transaction{ID: 78}, nil)
	f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(customerAccounts(), nil)
	f.ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).Return(nil, nil)

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, workflows.PhaseSucceeded, w.Phase())
	assert.NoError(t, w.Err())
	assert.True(t, w.Closed())
}

func TestMovementValidation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 1)

	w := workflows.NewDeposit(f.accounts, f.dir)
	w.Amount = amt("0")

	var vErr *workflows.ValidationError
	require.ErrorAs(t, w.Submit(context.Background()), &vErr)
	assert.Equal(t, "amount", vErr.Field)
	assert.Equal(t, workflows.PhaseFailed, w.Phase())
}

func TestMovementRequiresSelection(t *testing.T) {
	f := newFixture(t)

	w := workflows.NewWithdraw(f.accounts, f.dir)
	w.Amount = amt("50")

	var vErr *workflows.ValidationError
	require.ErrorAs(t, w.Submit(context.Background()), &vErr)
	assert.Equal(t, "account", vErr.Field)
}

func TestTransferSendsSourceAndTarget(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 1)

	w := workflows.NewTransfer(f.accounts, f.dir)
	w.TargetAccountNumber = " ACC-2002 "
	w.Amount = amt("250")
	w.Description = "rent"

	f.accounts.EXPECT().Transfer(gomock.Any(), models.TransferRequest{
		SourceAccountNumber: "ACC-1001",
		TargetAccountNumber: "ACC-2002",
		Amount:              amt("250"),
		Description:         "rent",
	}).Return(&models.Transaction{ID: 90, Type: models.TransactionTransferOut, RelatedAccountNumber: "ACC-2002"}, nil)
	f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(customerAccounts(), nil)
	f.ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).Return(nil, nil)

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, "transfer of 250.00 to ACC-2002 completed", w.Message())
	assert.Equal(t, "ACC-2002", w.Result.RelatedAccountNumber)
}

func TestTransferRejectsSelfTransfer(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 1)

	w := workflows.NewTransfer(f.accounts, f.dir)
	w.TargetAccountNumber = "ACC-1001"
	w.Amount = amt("10")

	var vErr *workflows.ValidationError
	require.ErrorAs(t, w.Submit(context.Background()), &vErr)
	assert.Equal(t, "targetAccountNumber", vErr.Field)
}

func TestApplyInterestRejectsCheckingWithoutNetworkCall(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 1) // ACC-1001 is CHECKING

	w := workflows.NewApplyInterest(f.reports, f.dir)

	// No expectation is set on the report service; any call would fail
	// the controller.
	var vErr *workflows.ValidationError
	require.ErrorAs(t, w.Submit(context.Background()), &vErr)
	assert.Equal(t, workflows.PhaseFailed, w.Phase())
	assert.False(t, w.Closed())
}

func TestApplyInterestOnSavings(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 2)

	w := workflows.NewApplyInterest(f.reports, f.dir)

	f.reports.EXPECT().ApplyInterest(gomock.Any(), int64(2)).
		Return(&models.InterestCalculation{AccountID: 2, InterestAmount: amt("12.5"), BalanceAfterInterest: amt("512.5")}, nil)
	f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(customerAccounts(), nil)
	f.ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(2)).Return(nil, nil)

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, "interest of 12.50 credited", w.Message())
	assert.True(t, w.Closed())
}

func TestCreateAccountValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*workflows.CreateAccountInput)
		field  string
	}{
		{"missing holder name", func(in *workflows.CreateAccountInput) {
			in.Email = "jane@example.com"
		}, "accountHolderName"},
		{"bad email", func(in *workflows.CreateAccountInput) {
			in.AccountHolderName = "Jane"
			in.Email = "not-an-email"
		}, "email"},
		{"negative initial balance", func(in *workflows.CreateAccountInput) {
			in.AccountHolderName = "Jane"
			in.Email = "jane@example.com"
			in.InitialBalance = amt("-1")
		}, "initialBalance"},
		{"negative interest rate", func(in *workflows.CreateAccountInput) {
			in.AccountHolderName = "Jane"
			in.Email = "jane@example.com"
			in.InterestRate = amt("-0.5")
		}, "interestRate"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := workflows.NewCreateAccount(f.accounts, f.dir)
			tc.mutate(&w.Input)

			var vErr *workflows.ValidationError
			require.ErrorAs(t, w.Submit(context.Background()), &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestCreateCheckingAccount(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 1)

	w := workflows.NewCreateAccount(f.accounts, f.dir)
	w.Input.AccountType = models.AccountTypeChecking
	w.Input.AccountHolderName = "Jane Doe"
	w.Input.Email = "jane@example.com"
	w.Input.InitialBalance = amt("300")

	f.accounts.EXPECT().CreateCheckingAccount(gomock.Any(), models.CreateCheckingAccountRequest{
		AccountHolderName: "Jane Doe",
		Email:             "jane@example.com",
		InitialBalance:    amt("300"),
		OverdraftLimit:    amt("500"),
		MonthlyFee:        amt("10"),
	}).Return(&models.Account{ID: 3, AccountNumber: "ACC-3003", AccountType: models.AccountTypeChecking}, nil)
	f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(customerAccounts(), nil)
	f.ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).Return(nil, nil)

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, "Account ACC-3003 created", w.Message())
	assert.True(t, w.Closed())
}

func TestStatementLoadsWithoutRefreshOrClose(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 1)

	w := workflows.NewStatement(f.reports, f.dir)
	w.Year = 2025
	w.Month = 1

	f.reports.EXPECT().MonthlyReport(gomock.Any(), int64(1), 2025, 1).
		Return(&models.MonthlyReport{AccountID: 1, TotalDeposits: amt("255"), TotalWithdrawals: amt("90")}, nil)

	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, workflows.PhaseSucceeded, w.Phase())
	assert.False(t, w.Closed())
	require.NotNil(t, w.Result)
	assert.True(t, amt("255").Equal(w.Result.TotalDeposits))

	// Another period on the same open modal.
	f.reports.EXPECT().MonthlyReport(gomock.Any(), int64(1), 2025, 2).
		Return(&models.MonthlyReport{AccountID: 1}, nil)
	w.Month = 2
	require.NoError(t, w.Submit(context.Background()))
}

func TestStatementRejectsBadPeriod(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 1)

	w := workflows.NewStatement(f.reports, f.dir)
	w.Month = 13

	var vErr *workflows.ValidationError
	require.ErrorAs(t, w.Submit(context.Background()), &vErr)
	assert.Equal(t, "month", vErr.Field)
}

func TestRefreshFailureAfterCommitIsSecondary(t *testing.T) {
	f := newFixture(t)
	f.seed(t, customerAccounts(), 1)

	w := workflows.NewDeposit(f.accounts, f.dir)
	w.Amount = amt("50")

	f.accounts.EXPECT().Deposit(gomock.Any(), int64(1), gomock.Any()).
		Return(&models.Transaction{ID: 91}, nil)
	refreshErr := &gateway.Error{Status: 502, Message: "bad gateway"}
	f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(nil, refreshErr)

	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, workflows.PhaseSucceeded, w.Phase())
	assert.True(t, w.Closed())
	assert.ErrorIs(t, w.RefreshErr(), refreshErr)
	// The stale-but-consistent directory state survives.
	assert.Len(t, f.dir.Accounts(), 2)
}
