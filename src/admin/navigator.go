package admin

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/username/apexbank/client/src/gateway"
	"github.com/username/apexbank/client/src/logger"
	"github.com/username/apexbank/client/src/models"
)

// Tab selects the root listing of the employee console.
type Tab string

const (
	TabCustomers Tab = "customers"
	TabAccounts  Tab = "accounts"
)

var (
	ErrNoSuchCustomer = errors.New("customer not in current listing")
	ErrNoSuchAccount  = errors.New("account not in current view")
)

// FrameKind tags one level of the drill-down stack.
type FrameKind int

const (
	FrameCustomerDetail FrameKind = iota
	FrameAccountTransactions
)

// Frame is one drill-down level. It snapshots the entity it was opened
// with plus its lazily fetched children; popping the frame discards both.
type Frame struct {
	Kind FrameKind

	// FrameCustomerDetail
	Customer             *models.Customer
	CustomerAccounts     []models.Account
	CustomerTransactions []models.Transaction

	// FrameAccountTransactions
	Account      *models.Account
	Transactions []models.Transaction
}

// Navigator drives the employee console: a root listing (customers or
// accounts, with customer search) and a stack of drill-down frames.
// Back-navigation pops one frame, so the path-dependent return target
// falls out of the stack shape with no special cases.
type Navigator struct {
	svc gateway.AdminService

	mu        sync.Mutex
	tab       Tab
	query     string
	customers []models.Customer
	accounts  []models.Account
	loading   bool
	stack     []Frame
}

func New(svc gateway.AdminService) *Navigator {
	return &Navigator{svc: svc, tab: TabCustomers}
}

// Activate loads the current tab's root listing. Called when the shell
// hands control to the console and after tab switches.
func (n *Navigator) Activate(ctx context.Context) error {
	n.mu.Lock()
	tab := n.tab
	query := n.query
	n.loading = true
	n.mu.Unlock()
	defer n.setLoading(false)

	switch tab {
	case TabAccounts:
		accounts, err := n.svc.AdminAccounts(ctx)
		if err != nil {
			return err
		}
		n.mu.Lock()
		n.accounts = accounts
		n.mu.Unlock()
	default:
		var (
			customers []models.Customer
			err       error
		)
		if query != "" {
			customers, err = n.svc.AdminSearchCustomers(ctx, query)
		} else {
			customers, err = n.svc.AdminCustomers(ctx)
		}
		if err != nil {
			return err
		}
		n.mu.Lock()
		n.customers = customers
		n.mu.Unlock()
	}
	return nil
}

// SwitchTab resets any search filter, drops all drill-down frames and
// refetches the tab's collection.
func (n *Navigator) SwitchTab(ctx context.Context, tab Tab) error {
	n.mu.Lock()
	n.tab = tab
	n.query = ""
	n.stack = nil
	n.mu.Unlock()
	return n.Activate(ctx)
}

// Search reissues the customer listing with a free-text filter. An empty
// query restores the full list.
func (n *Navigator) Search(ctx context.Context, query string) error {
	n.mu.Lock()
	n.query = strings.TrimSpace(query)
	n.mu.Unlock()
	return n.Activate(ctx)
}

// SelectCustomer pushes a customer-detail frame and concurrently fetches
// the customer's accounts and recent transactions. Both fetches complete
// before the frame is visible; a failed half is logged and its
// collection left empty.
func (n *Navigator) SelectCustomer(ctx context.Context, customerID int64) error {
	n.mu.Lock()
	var customer *models.Customer
	for i := range n.customers {
		if n.customers[i].ID == customerID {
			c := n.customers[i]
			customer = &c
			break
		}
	}
	n.mu.Unlock()
	if customer == nil {
		return ErrNoSuchCustomer
	}

	frame := Frame{Kind: FrameCustomerDetail, Customer: customer}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		accounts, err := n.svc.AdminCustomerAccounts(ctx, customerID)
		if err != nil {
			logger.FromContext(ctx).Warn("Customer accounts fetch failed", "customerID", customerID, "error", err)
			return
		}
		frame.CustomerAccounts = accounts
	}()
	go func() {
		defer wg.Done()
		txs, err := n.svc.AdminCustomerTransactions(ctx, customerID)
		if err != nil {
			logger.FromContext(ctx).Warn("Customer transactions fetch failed", "customerID", customerID, "error", err)
			return
		}
		frame.CustomerTransactions = txs
	}()
	wg.Wait()

	n.mu.Lock()
	n.stack = append(n.stack, frame)
	n.mu.Unlock()
	return nil
}

// SelectAccount pushes an account-transactions frame for an account
// taken either from the root account listing or from the current
// customer-detail frame. The history fetch failing leaves the frame
// empty; it is logged, not surfaced, matching the console's passive
// reads.
func (n *Navigator) SelectAccount(ctx context.Context, accountID int64) error {
	n.mu.Lock()
	account := findAccount(n.accounts, accountID)
	if account == nil {
		if top := n.top(); top != nil && top.Kind == FrameCustomerDetail {
			account = findAccount(top.CustomerAccounts, accountID)
		}
	}
	n.mu.Unlock()
	if account == nil {
		return ErrNoSuchAccount
	}

	frame := Frame{Kind: FrameAccountTransactions, Account: account}

	n.setLoading(true)
	txs, err := n.svc.AdminAccountTransactions(ctx, accountID)
	n.setLoading(false)
	if err != nil {
		logger.FromContext(ctx).Warn("Account transactions fetch failed", "accountID", accountID, "error", err)
	} else {
		frame.Transactions = txs
	}

	n.mu.Lock()
	n.stack = append(n.stack, frame)
	n.mu.Unlock()
	return nil
}

// Back pops one frame. Popping a customer-detail frame discards the
// selected customer with it. At the root it is a no-op.
func (n *Navigator) Back() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) > 0 {
		n.stack = n.stack[:len(n.stack)-1]
	}
}

// Current returns a copy of the top frame, or nil at the root listing.
func (n *Navigator) Current() *Frame {
	n.mu.Lock()
	defer n.mu.Unlock()
	if top := n.top(); top != nil {
		copied := *top
		return &copied
	}
	return nil
}

// SelectedCustomer returns the customer of the nearest customer-detail
// frame on the stack, or nil.
func (n *Navigator) SelectedCustomer() *models.Customer {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.stack) - 1; i >= 0; i-- {
		if n.stack[i].Kind == FrameCustomerDetail {
			c := *n.stack[i].Customer
			return &c
		}
	}
	return nil
}

func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}

func (n *Navigator) Tab() Tab {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tab
}

func (n *Navigator) Query() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.query
}

func (n *Navigator) Customers() []models.Customer {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.Customer, len(n.customers))
	copy(out, n.customers)
	return out
}

func (n *Navigator) Accounts() []models.Account {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.Account, len(n.accounts))
	copy(out, n.accounts)
	return out
}

func (n *Navigator) Loading() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loading
}

func (n *Navigator) setLoading(v bool) {
	n.mu.Lock()
	n.loading = v
	n.mu.Unlock()
}

// top must be called with the mutex held.
func (n *Navigator) top() *Frame {
	if len(n.stack) == 0 {
		return nil
	}
	return &n.stack[len(n.stack)-1]
}

func findAccount(list []models.Account, id int64) *models.Account {
	for i := range list {
		if list[i].ID == id {
			a := list[i]
			return &a
		}
	}
	return nil
}
