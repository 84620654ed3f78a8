package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/apexbank/client/src/admin"
	"github.com/username/apexbank/client/src/config"
	"github.com/username/apexbank/client/src/directory"
	"github.com/username/apexbank/client/src/gateway"
	"github.com/username/apexbank/client/src/logger"
	"github.com/username/apexbank/client/src/models"
	"github.com/username/apexbank/client/src/shell"
	"github.com/username/apexbank/client/src/views"
	"github.com/username/apexbank/client/src/workflows"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Banking console starting...", "api", config.Cfg.APIBaseURL)

	client := gateway.NewClient(config.Cfg)
	dir := directory.New(client, client)
	nav := admin.New(client)
	sh := shell.New(dir, nav)
	fm := views.NewFormatter(config.Cfg.Locale, config.Cfg.CurrencySymbol)

	ctx := context.Background()
	if err := sh.SetRole(ctx, shell.RoleCustomer); err != nil {
		logger.L.Error("Initial account fetch failed", "error", err)
		fmt.Println("!", userMessage(err))
	}

	app := &console{shell: sh, client: client, fm: fm}
	app.run(ctx)
}

// console is a thin line-oriented surface over the shell. All state and
// workflow logic lives in the packages it drives; this layer only parses
// commands and prints.
type console struct {
	shell  *shell.Shell
	client *gateway.Client
	fm     *views.Formatter
}

func (a *console) run(ctx context.Context) {
	fmt.Println("APEX banking console. Type 'help' for commands, 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", a.shell.Role())
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return
		}
		if err := a.dispatch(ctx, cmd, args); err != nil {
			fmt.Println("!", userMessage(err))
		}
	}
}

func (a *console) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.printHelp()
		return nil
	case "role":
		if len(args) != 1 {
			return fmt.Errorf("usage: role customer|employee")
		}
		return a.shell.SetRole(ctx, shell.Role(args[0]))
	}
	if a.shell.Role() == shell.RoleEmployee {
		return a.dispatchEmployee(ctx, cmd, args)
	}
	return a.dispatchCustomer(ctx, cmd, args)
}

func (a *console) dispatchCustomer(ctx context.Context, cmd string, args []string) error {
	dir := a.shell.Directory()
	switch cmd {
	case "ls", "accounts":
		if len(args) == 1 && args[0] == "active" {
			accounts, err := a.client.ListActiveAccounts(ctx)
			if err != nil {
				return err
			}
			a.printAccounts(accounts, nil)
			return nil
		}
		a.printAccounts(dir.Accounts(), dir.Selected())
		return nil
	case "lookup":
		if len(args) != 1 {
			return fmt.Errorf("usage: lookup <accountNumber>")
		}
		acc, err := a.client.GetAccountByNumber(ctx, args[0])
		if err != nil {
			return err
		}
		a.printAccounts([]models.Account{*acc}, nil)
		return nil
	case "find":
		if len(args) != 1 {
			return fmt.Errorf("usage: find <referenceNumber>")
		}
		tx, err := a.client.TransactionByReference(ctx, args[0])
		if err != nil {
			return err
		}
		a.printTransactions([]models.Transaction{*tx})
		return nil
	case "refresh":
		return dir.Refresh(ctx)
	case "select":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return dir.Select(ctx, id)
	case "history":
		a.printTransactions(dir.Transactions())
		return nil
	case "deposit", "withdraw":
		if len(args) < 1 {
			return fmt.Errorf("usage: %s <amount> [description]", cmd)
		}
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		var wf *workflows.Movement
		if cmd == "deposit" {
			wf = workflows.NewDeposit(a.client, dir)
		} else {
			wf = workflows.NewWithdraw(a.client, dir)
		}
		wf.Amount = amount
		wf.Description = strings.Join(args[1:], " ")
		return a.finish(ctx, wf.Submit(ctx), &wf.Modal)
	case "transfer":
		if len(args) < 2 {
			return fmt.Errorf("usage: transfer <targetAccountNumber> <amount> [description]")
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		wf := workflows.NewTransfer(a.client, dir)
		wf.TargetAccountNumber = args[0]
		wf.Amount = amount
		wf.Description = strings.Join(args[2:], " ")
		return a.finish(ctx, wf.Submit(ctx), &wf.Modal)
	case "interest":
		if len(args) == 1 && args[0] == "calc" {
			selected := dir.Selected()
			if selected == nil {
				return fmt.Errorf("no account selected")
			}
			calc, err := a.client.CalculateInterest(ctx, selected.ID)
			if err != nil {
				return err
			}
			fmt.Printf("  %s at %s%% would earn %s (balance %s -> %s)\n",
				calc.AccountNumber, calc.InterestRate.StringFixed(2),
				a.fm.Currency(calc.InterestAmount),
				a.fm.Currency(calc.BalanceBeforeInterest), a.fm.Currency(calc.BalanceAfterInterest))
			return nil
		}
		wf := workflows.NewApplyInterest(a.client, dir)
		return a.finish(ctx, wf.Submit(ctx), &wf.Modal)
	case "monthly":
		if len(args) != 2 {
			return fmt.Errorf("usage: monthly <year> <month>")
		}
		selected := dir.Selected()
		if selected == nil {
			return fmt.Errorf("no account selected")
		}
		year, errY := strconv.Atoi(args[0])
		month, errM := strconv.Atoi(args[1])
		if errY != nil || errM != nil {
			return fmt.Errorf("year and month must be numbers")
		}
		txs, err := a.client.MonthlyTransactions(ctx, selected.ID, year, month)
		if err != nil {
			return err
		}
		a.printTransactions(txs)
		return nil
	case "activate", "deactivate":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		var acc *models.Account
		if cmd == "activate" {
			acc, err = a.client.ActivateAccount(ctx, id)
		} else {
			acc, err = a.client.DeactivateAccount(ctx, id)
		}
		if err != nil {
			return err
		}
		status := "inactive"
		if acc.Active {
			status = "active"
		}
		fmt.Printf("* account %s is now %s\n", acc.AccountNumber, status)
		return dir.Refresh(ctx)
	case "report":
		if len(args) != 2 {
			return fmt.Errorf("usage: report <year> <month>")
		}
		year, errY := strconv.Atoi(args[0])
		month, errM := strconv.Atoi(args[1])
		if errY != nil || errM != nil {
			return fmt.Errorf("year and month must be numbers")
		}
		wf := workflows.NewStatement(a.client, dir)
		wf.Year, wf.Month = year, month
		if err := wf.Submit(ctx); err != nil {
			return err
		}
		a.printReport(wf.Result)
		return nil
	case "create":
		return a.createAccount(ctx, args)
	}
	return fmt.Errorf("unknown command %q, try 'help'", cmd)
}

func (a *console) createAccount(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: create savings|checking <holderName> <email> [initialBalance]")
	}
	wf := workflows.NewCreateAccount(a.client, a.shell.Directory())
	switch args[0] {
	case "savings":
		wf.Input.AccountType = models.AccountTypeSavings
	case "checking":
		wf.Input.AccountType = models.AccountTypeChecking
	default:
		return fmt.Errorf("account type must be savings or checking")
	}
	wf.Input.AccountHolderName = args[1]
	wf.Input.Email = args[2]
	if len(args) > 3 {
		initial, err := decimal.NewFromString(args[3])
		if err != nil {
			return fmt.Errorf("invalid initial balance %q", args[3])
		}
		wf.Input.InitialBalance = initial
	}
	return a.finish(ctx, wf.Submit(ctx), &wf.Modal)
}

func (a *console) dispatchEmployee(ctx context.Context, cmd string, args []string) error {
	nav := a.shell.Navigator()
	switch cmd {
	case "ls":
		a.printAdminView(nav)
		return nil
	case "tab":
		if len(args) != 1 || (args[0] != string(admin.TabCustomers) && args[0] != string(admin.TabAccounts)) {
			return fmt.Errorf("usage: tab customers|accounts")
		}
		return nav.SwitchTab(ctx, admin.Tab(args[0]))
	case "search":
		return nav.Search(ctx, strings.Join(args, " "))
	case "customer":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		if err := nav.SelectCustomer(ctx, id); err != nil {
			return err
		}
		a.printAdminView(nav)
		return nil
	case "account":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		if err := nav.SelectAccount(ctx, id); err != nil {
			return err
		}
		a.printAdminView(nav)
		return nil
	case "back":
		nav.Back()
		a.printAdminView(nav)
		return nil
	case "whois":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		c, err := a.client.AdminCustomer(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("  [%d] %s <%s> %s role=%s since %s\n",
			c.ID, c.FullName, c.Email, c.Phone, c.Role, a.fm.Date(c.CreatedAt.Time))
		return nil
	case "find":
		if len(args) != 1 {
			return fmt.Errorf("usage: find <referenceNumber>")
		}
		tx, err := a.client.AdminTransactionByReference(ctx, args[0])
		if err != nil {
			return err
		}
		a.printTransactions([]models.Transaction{*tx})
		return nil
	}
	return fmt.Errorf("unknown command %q, try 'help'", cmd)
}

// finish reports a workflow outcome: validation and gateway errors come
// back to the caller for display; a success prints its confirmation and
// any secondary refresh failure.
func (a *console) finish(ctx context.Context, err error, m *workflows.Modal) error {
	if err != nil {
		return err
	}
	fmt.Println("*", m.Message())
	if refreshErr := m.RefreshErr(); refreshErr != nil {
		fmt.Println("! account list may be stale:", userMessage(refreshErr))
	}
	return nil
}

func (a *console) printAccounts(accounts []models.Account, selected *models.Account) {
	if len(accounts) == 0 {
		fmt.Println("no accounts yet; 'create savings <name> <email>' opens one")
		return
	}
	for _, acc := range accounts {
		marker := " "
		if selected != nil && selected.ID == acc.ID {
			marker = "*"
		}
		status := "active"
		if !acc.Active {
			status = "inactive"
		}
		fmt.Printf("%s [%d] %s  %-8s %12s  %s\n",
			marker, acc.ID, acc.AccountNumber, acc.AccountType, a.fm.Currency(acc.Balance), status)
	}
	fmt.Printf("  total %s across %d accounts (%d active)\n",
		a.fm.Currency(views.AggregateBalance(accounts)), len(accounts), views.ActiveCount(accounts))
}

func (a *console) printTransactions(txs []models.Transaction) {
	if len(txs) == 0 {
		fmt.Println("no transactions")
		return
	}
	for _, tx := range txs {
		amount := a.fm.SignedCurrency(tx.Amount, views.IsIncreasing(tx))
		fmt.Printf("  %s  %-14s %12s  balance %s  %s\n",
			a.fm.Date(tx.TransactionDate.Time), tx.TypeDisplayName, amount,
			a.fm.Currency(tx.BalanceAfter), tx.Description)
	}
}

func (a *console) printReport(report *models.MonthlyReport) {
	buckets := views.BucketReport(report)
	fmt.Printf("statement %s for %s (%s)\n", report.ReportMonth, report.AccountNumber, report.AccountHolderName)
	fmt.Printf("  opening %s  closing %s  net %s\n",
		a.fm.Currency(report.OpeningBalance), a.fm.Currency(report.ClosingBalance), a.fm.Currency(buckets.NetChange))
	fmt.Printf("  inflow %s  outflow %s  (%d transactions)\n",
		a.fm.Currency(buckets.Inflow), a.fm.Currency(buckets.Outflow), report.TransactionCount)
	a.printTransactions(report.Transactions)
}

func (a *console) printAdminView(nav *admin.Navigator) {
	frame := nav.Current()
	if frame == nil {
		if nav.Tab() == admin.TabAccounts {
			accounts := nav.Accounts()
			a.printAccounts(accounts, nil)
			return
		}
		customers := nav.Customers()
		if len(customers) == 0 {
			fmt.Println("no customers found")
			return
		}
		for _, c := range customers {
			status := "active"
			if !c.Active {
				status = "inactive"
			}
			fmt.Printf("  [%d] %-24s %-28s %s\n", c.ID, c.FullName, c.Email, status)
		}
		return
	}

	switch frame.Kind {
	case admin.FrameCustomerDetail:
		fmt.Printf("customer %s <%s>  total %s\n", frame.Customer.FullName, frame.Customer.Email,
			a.fm.Currency(views.AggregateBalance(frame.CustomerAccounts)))
		a.printAccounts(frame.CustomerAccounts, nil)
		a.printTransactions(frame.CustomerTransactions)
	case admin.FrameAccountTransactions:
		fmt.Printf("account %s (%s)  balance %s\n", frame.Account.AccountNumber,
			frame.Account.AccountHolderName, a.fm.Currency(frame.Account.Balance))
		a.printTransactions(frame.Transactions)
	}
}

func (a *console) printHelp() {
	fmt.Print(`role customer|employee        switch mode
customer:  ls [active] | refresh | select <id> | history | monthly <year> <month>
           lookup <accountNumber> | find <referenceNumber>
           deposit <amount> [desc] | withdraw <amount> [desc]
           transfer <target> <amount> [desc] | interest [calc]
           report <year> <month> | activate <id> | deactivate <id>
           create savings|checking <name> <email> [initial]
employee:  ls | tab customers|accounts | search <text>
           customer <id> | account <id> | back | whois <id> | find <ref>
`)
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one id argument")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// userMessage keeps raw transport details out of the console; gateway
// errors already carry a safe message.
func userMessage(err error) string {
	if gwErr, ok := err.(*gateway.Error); ok {
		return gwErr.Message
	}
	return err.Error()
}
