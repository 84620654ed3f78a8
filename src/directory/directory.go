package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/username/apexbank/client/src/gateway"
	"github.com/username/apexbank/client/src/logger"
	"github.com/username/apexbank/client/src/models"
)

// ErrNoSuchAccount is returned by Select for an id that is not in the
// current account collection.
var ErrNoSuchAccount = errors.New("account not in directory")

// Directory owns the customer workspace's shared state: the account
// collection in server order, the selected account, the loading flag and
// the transaction preview for the selection. It is the only writer of
// that state; workflows trigger Refresh but never mutate it directly.
type Directory struct {
	accounts gateway.AccountService
	ledger   gateway.TransactionService

	mu           sync.Mutex
	list         []models.Account
	selectedID   int64 // zero means no selection
	loading      bool
	transactions []models.Transaction

	// txGen stamps each transaction fetch; a result is applied only if
	// its stamp still matches, so a late response for a stale selection
	// cannot overwrite the preview of the current one.
	txGen uint64
}

func New(accounts gateway.AccountService, ledger gateway.TransactionService) *Directory {
	return &Directory{accounts: accounts, ledger: ledger}
}

// Refresh fetches the customer's accounts and replaces the collection.
// The previous selection survives when its id is still present; with no
// usable selection the first account is selected (none when the result
// is empty). On failure prior state is left intact. The selection's
// transaction preview is reloaded so balances and history can never
// disagree after an acknowledged mutation.
func (d *Directory) Refresh(ctx context.Context) error {
	d.setLoading(true)
	defer d.setLoading(false)

	fresh, err := d.accounts.ListAccounts(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.list = fresh
	if d.selectedID != 0 && findAccount(fresh, d.selectedID) == nil {
		d.selectedID = 0
	}
	if d.selectedID == 0 {
		if len(fresh) > 0 {
			d.selectedID = fresh[0].ID
		} else {
			d.transactions = nil
		}
	}
	id := d.selectedID
	d.txGen++
	gen := d.txGen
	d.mu.Unlock()

	if id != 0 {
		d.loadTransactions(ctx, id, gen)
	}
	return nil
}

// Select changes the selected account and fetches its transaction
// preview. The preview fetch is a passive read: failures are logged,
// never surfaced.
func (d *Directory) Select(ctx context.Context, accountID int64) error {
	d.mu.Lock()
	if findAccount(d.list, accountID) == nil {
		d.mu.Unlock()
		return ErrNoSuchAccount
	}
	d.selectedID = accountID
	d.txGen++
	gen := d.txGen
	d.mu.Unlock()

	d.loadTransactions(ctx, accountID, gen)
	return nil
}

func (d *Directory) loadTransactions(ctx context.Context, accountID int64, gen uint64) {
	txs, err := d.ledger.TransactionsByAccount(ctx, accountID)
	if err != nil {
		logger.FromContext(ctx).Warn("Transaction preview fetch failed", "accountID", accountID, "error", err)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.txGen {
		logger.FromContext(ctx).Debug("Discarding stale transaction preview", "accountID", accountID)
		return
	}
	d.transactions = txs
}

// Reset discards all workspace state. Used when the shell leaves the
// customer role.
func (d *Directory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.list = nil
	d.selectedID = 0
	d.transactions = nil
	d.txGen++
}

func (d *Directory) Accounts() []models.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Account, len(d.list))
	copy(out, d.list)
	return out
}

// Selected returns a copy of the selected account, or nil.
func (d *Directory) Selected() *models.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selectedID == 0 {
		return nil
	}
	if acc := findAccount(d.list, d.selectedID); acc != nil {
		copied := *acc
		return &copied
	}
	return nil
}

func (d *Directory) Transactions() []models.Transaction {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Transaction, len(d.transactions))
	copy(out, d.transactions)
	return out
}

func (d *Directory) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *Directory) setLoading(v bool) {
	d.mu.Lock()
	d.loading = v
	d.mu.Unlock()
}

func findAccount(list []models.Account, id int64) *models.Account {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
