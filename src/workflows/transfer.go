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

// Transfer moves money from the selected account to another account
// identified by its number.
type Transfer struct {
	Modal
	accounts gateway.AccountService
	dir      *directory.Directory

	TargetAccountNumber string
	Amount              decimal.Decimal
	Description         string
	Result              *models.Transaction
}

func NewTransfer(accounts gateway.AccountService, dir *directory.Directory) *Transfer {
	return &Transfer{accounts: accounts, dir: dir}
}

func (w *Transfer) Submit(ctx context.Context) error {
	selected := w.dir.Selected()
	if selected == nil {
		return w.fail(&ValidationError{Field: "account", Reason: "no account selected"})
	}
	target := strings.TrimSpace(w.TargetAccountNumber)
	if target == "" {
		return w.fail(&ValidationError{Field: "targetAccountNumber", Reason: "is required"})
	}
	if target == selected.AccountNumber {
		return w.fail(&ValidationError{Field: "targetAccountNumber", Reason: "must differ from the source account"})
	}
	if !w.Amount.IsPositive() {
		return w.fail(&ValidationError{Field: "amount", Reason: "must be greater than zero"})
	}
	w.begin()

	tx, err := w.accounts.Transfer(ctx, models.TransferRequest{
		SourceAccountNumber: selected.AccountNumber,
		TargetAccountNumber: target,
		Amount:              w.Amount,
		Description:         w.Description,
	})
	if err != nil {
		return w.fail(err)
	}

	w.Result = tx
	w.commit(ctx, w.dir, fmt.Sprintf("transfer of %s to %s completed", w.Amount.StringFixed(2), target))
	return nil
}
