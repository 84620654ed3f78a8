package views

import (
	"github.com/shopspring/decimal"
	"github.com/username/apexbank/client/src/models"
)

// IsIncreasing reports whether a transaction raised the account balance.
// Direction is inferred from the balance pair, not from the ledger's code:
// a zero-delta entry counts as increasing. The wire also carries an
// explicit credit flag, but the inferred direction is what the original
// client displayed, so it is kept until the intended semantics for
// zero-delta entries are confirmed.
func IsIncreasing(tx models.Transaction) bool {
	return tx.BalanceAfter.GreaterThanOrEqual(tx.BalanceBefore)
}

// AggregateBalance sums the balances of a collection of accounts.
func AggregateBalance(accounts []models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}
	return total
}

// ActiveCount counts the active accounts in a collection.
func ActiveCount(accounts []models.Account) int {
	n := 0
	for _, acc := range accounts {
		if acc.Active {
			n++
		}
	}
	return n
}

// ReportBuckets groups a monthly report's six movement totals into the
// two buckets the statement view shows.
type ReportBuckets struct {
	Inflow    decimal.Decimal
	Outflow   decimal.Decimal
	NetChange decimal.Decimal
}

func BucketReport(report *models.MonthlyReport) ReportBuckets {
	return ReportBuckets{
		Inflow:    report.TotalDeposits.Add(report.TotalTransfersIn).Add(report.TotalInterestEarned),
		Outflow:   report.TotalWithdrawals.Add(report.TotalTransfersOut).Add(report.TotalFeesCharged),
		NetChange: report.ClosingBalance.Sub(report.OpeningBalance),
	}
}
