package workflows

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/username/apexbank/client/src/config"
	"github.com/username/apexbank/client/src/directory"
	"github.com/username/apexbank/client/src/gateway"
	"github.com/username/apexbank/client/src/models"
)

// MovementKind selects between the two single-account money intents.
type MovementKind int

const (
	KindDeposit MovementKind = iota
	KindWithdraw
)

func (k MovementKind) String() string {
	if k == KindDeposit {
		return "deposit"
	}
	return "withdrawal"
}

// Movement is the deposit/withdraw modal against the selected account.
type Movement struct {
	Modal
	accounts gateway.AccountService
	dir      *directory.Directory

	Kind        MovementKind
	Amount      decimal.Decimal
	Description string
	Result      *models.Transaction
}

func NewDeposit(accounts gateway.AccountService, dir *directory.Directory) *Movement {
	return &Movement{accounts: accounts, dir: dir, Kind: KindDeposit}
}

func NewWithdraw(accounts gateway.AccountService, dir *directory.Directory) *Movement {
	return &Movement{accounts: accounts, dir: dir, Kind: KindWithdraw}
}

// QuickAmounts exposes the configured preset amounts. Pure input
// convenience; selecting one goes through the same validation.
func (w *Movement) QuickAmounts() []decimal.Decimal {
	if config.Cfg == nil {
		return nil
	}
	return config.Cfg.QuickAmounts
}

func (w *Movement) Submit(ctx context.Context) error {
	selected := w.dir.Selected()
	if selected == nil {
		return w.fail(&ValidationError{Field: "account", Reason: "no account selected"})
	}
	if !w.Amount.IsPositive() {
		return w.fail(&ValidationError{Field: "amount", Reason: "must be greater than zero"})
	}
	w.begin()

	req := models.AmountRequest{Amount: w.Amount, Description: w.Description}
	var (
		tx  *models.Transaction
		err error
	)
	if w.Kind == KindDeposit {
		tx, err = w.accounts.Deposit(ctx, selected.ID, req)
	} else {
		tx, err = w.accounts.Withdraw(ctx, selected.ID, req)
	}
	if err != nil {
		return w.fail(err)
	}

	w.Result = tx
	w.commit(ctx, w.dir, fmt.Sprintf("%s of %s completed", w.Kind, w.Amount.StringFixed(2)))
	return nil
}
