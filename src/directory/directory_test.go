package directory_test

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
)

func twoAccounts() []models.Account {
	return []models.Account{
		{ID: 1, AccountNumber: "ACC-1001", AccountType: models.AccountTypeChecking, Balance: decimal.NewFromInt(1000), Active: true},
		{ID: 2, AccountNumber: "ACC-2002", AccountType: models.AccountTypeSavings, Balance: decimal.NewFromInt(500), Active: true},
	}
}

func TestRefreshSelectsFirstAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	accounts := mocks.NewMockAccountService(ctrl)
	ledger := mocks.NewMockTransactionService(ctrl)
	d := directory.New(accounts, ledger)

	accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoAccounts(), nil)
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).
		Return([]models.Transaction{{ID: 11, AccountNumber: "ACC-1001"}}, nil)

	require.NoError(t, d.Refresh(context.Background()))

	require.NotNil(t, d.Selected())
	assert.Equal(t, int64(1), d.Selected().ID)
	assert.Len(t, d.Accounts(), 2)
	assert.Len(t, d.Transactions(), 1)
	assert.False(t, d.Loading())
}

func TestRefreshWithEmptyCollectionLeavesNoSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	accounts := mocks.NewMockAccountService(ctrl)
	ledger := mocks.NewMockTransactionService(ctrl)
	d := directory.New(accounts, ledger)

	accounts.EXPECT().ListAccounts(gomock.Any()).Return([]models.Account{}, nil)

	require.NoError(t, d.Refresh(context.Background()))
	assert.Nil(t, d.Selected())
	assert.Empty(t, d.Accounts())
}

func TestRefreshFailureLeavesPriorStateIntact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	accounts := mocks.NewMockAccountService(ctrl)
	ledger := mocks.NewMockTransactionService(ctrl)
	d := directory.New(accounts, ledger)

	accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoAccounts(), nil)
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).Return(nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	accounts.EXPECT().ListAccounts(gomock.Any()).
		Return(nil, &gateway.Error{Status: 503, Message: "service unavailable"})

	err := d.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, d.Accounts(), 2)
	require.NotNil(t, d.Selected())
	assert.Equal(t, int64(1), d.Selected().ID)
	assert.False(t, d.Loading())
}

func TestRefreshKeepsSelectionWhenStillPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	accounts := mocks.NewMockAccountService(ctrl)
	ledger := mocks.NewMockTransactionService(ctrl)
	d := directory.New(accounts, ledger)

	accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoAccounts(), nil)
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).Return(nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(2)).Return(nil, nil)
	require.NoError(t, d.Select(context.Background(), 2))

	updated := twoAccounts()
	updated[1].Balance = decimal.NewFromInt(700)
	accounts.EXPECT().ListAccounts(gomock.Any()).Return(updated, nil)
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(2)).Return(nil, nil)

	require.NoError(t, d.Refresh(context.Background()))
	require.NotNil(t, d.Selected())
	assert.Equal(t, int64(2), d.Selected().ID)
	assert.True(t, decimal.NewFromInt(700).Equal(d.Selected().Balance))
}

func TestSelectUnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	accounts := mocks.NewMockAccountService(ctrl)
	ledger := mocks.NewMockTransactionService(ctrl)
	d := directory.New(accounts, ledger)

	accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoAccounts(), nil)
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).Return(nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	assert.ErrorIs(t, d.Select(context.Background(), 42), directory.ErrNoSuchAccount)
	assert.Equal(t, int64(1), d.Selected().ID)
}

func TestSelectPreviewFailureIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	accounts := mocks.NewMockAccountService(ctrl)
	ledger := mocks.NewMockTransactionService(ctrl)
	d := directory.New(accounts, ledger)

	accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoAccounts(), nil)
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).
		Return([]models.Transaction{{ID: 11}}, nil)
	require.NoError(t, d.Refresh(context.Background()))

	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(2)).
		Return(nil, &gateway.Error{Status: 500, Message: "boom"})

	require.NoError(t, d.Select(context.Background(), 2))
	assert.Equal(t, int64(2), d.Selected().ID)
}

// A late-arriving preview for a superseded selection must not overwrite
// the preview of the current one.
func TestStalePreviewIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	accounts := mocks.NewMockAccountService(ctrl)
	ledger := mocks.NewMockTransactionService(ctrl)
	d := directory.New(accounts, ledger)

	accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoAccounts(), nil)
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).Return(nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	started := make(chan struct{})
	release := make(chan struct{})
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).
		DoAndReturn(func(ctx context.Context, accountID int64) ([]models.Transaction, error) {
			close(started)
			<-release
			return []models.Transaction{{ID: 100, AccountNumber: "ACC-1001"}}, nil
		})
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(2)).
		Return([]models.Transaction{{ID: 200, AccountNumber: "ACC-2002"}}, nil)

	done := make(chan error, 1)
	go func() { done <- d.Select(context.Background(), 1) }()
	<-started

	require.NoError(t, d.Select(context.Background(), 2))
	close(release)
	require.NoError(t, <-done)

	txs := d.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, int64(200), txs[0].ID)
	assert.Equal(t, int64(2), d.Selected().ID)
}

func TestResetClearsWorkspace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	accounts := mocks.NewMockAccountService(ctrl)
	ledger := mocks.NewMockTransactionService(ctrl)
	d := directory.New(accounts, ledger)

	accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoAccounts(), nil)
	ledger.EXPECT().TransactionsByAccount(gomock.Any(), int64(1)).
		Return([]models.Transaction{{ID: 11}}, nil)
	require.NoError(t, d.Refresh(context.Background()))

	d.Reset()
	assert.Nil(t, d.Selected())
	assert.Empty(t, d.Accounts())
	assert.Empty(t, d.Transactions())
}
