package workflows

import (
	"context"
	"fmt"

	"github.com/username/apexbank/client/src/directory"
	"github.com/username/apexbank/client/src/gateway"
	"github.com/username/apexbank/client/src/models"
)

// ApplyInterest credits the selected savings account with its accrued
// interest. A non-savings selection is rejected client-side; no call
// reaches the service.
type ApplyInterest struct {
	Modal
	reports gateway.ReportService
	dir     *directory.Directory

	Result *models.InterestCalculation
}

func NewApplyInterest(reports gateway.ReportService, dir *directory.Directory) *ApplyInterest {
	return &ApplyInterest{reports: reports, dir: dir}
}

func (w *ApplyInterest) Submit(ctx context.Context) error {
	selected := w.dir.Selected()
	if selected == nil {
		return w.fail(&ValidationError{Field: "account", Reason: "no account selected"})
	}
	if !selected.IsSavings() {
		return w.fail(&ValidationError{Field: "account", Reason: "interest applies to savings accounts only"})
	}
	w.begin()

	calc, err := w.reports.ApplyInterest(ctx, selected.ID)
	if err != nil {
		return w.fail(err)
	}

	w.Result = calc
	w.commit(ctx, w.dir, fmt.Sprintf("interest of %s credited", calc.InterestAmount.StringFixed(2)))
	return nil
}
