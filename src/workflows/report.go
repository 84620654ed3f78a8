package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/username/apexbank/client/src/directory"
	"github.com/username/apexbank/client/src/gateway"
	"github.com/username/apexbank/client/src/models"
)

// Statement fetches the monthly report for the selected account. It is
// read-only: success renders the report in place, triggers no directory
// refresh and leaves the modal open for another period.
type Statement struct {
	Modal
	reports gateway.ReportService
	dir     *directory.Directory

	Year   int
	Month  int
	Result *models.MonthlyReport
}

func NewStatement(reports gateway.ReportService, dir *directory.Directory) *Statement {
	now := time.Now()
	return &Statement{
		reports: reports,
		dir:     dir,
		Year:    now.Year(),
		Month:   int(now.Month()),
	}
}

func (w *Statement) Submit(ctx context.Context) error {
	selected := w.dir.Selected()
	if selected == nil {
		return w.fail(&ValidationError{Field: "account", Reason: "no account selected"})
	}
	if w.Month < 1 || w.Month > 12 {
		return w.fail(&ValidationError{Field: "month", Reason: "must be between 1 and 12"})
	}
	if w.Year < 2000 || w.Year > time.Now().Year()+1 {
		return w.fail(&ValidationError{Field: "year", Reason: "is out of range"})
	}
	w.begin()

	report, err := w.reports.MonthlyReport(ctx, selected.ID, w.Year, w.Month)
	if err != nil {
		return w.fail(err)
	}

	w.Result = report
	w.phase = PhaseSucceeded
	w.message = fmt.Sprintf("statement for %04d-%02d loaded", w.Year, w.Month)
	return nil
}
