package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/shopspring/decimal"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

var commandOrder = []string{
	"accounts", "add-account", "add-tx", "txs", "pay-bill",
	"summary", "report", "export", "import", "reset",
}

var commands = map[string]command{
	"accounts":    {"List accounts and the net balance", runAccounts},
	"add-account": {"Create an account", runAddAccount},
	"add-tx":      {"Record an income or expense", runAddTx},
	"txs":         {"List transactions, newest first", runTxs},
	"pay-bill":    {"Mark a bill paid", runPayBill},
	"summary":     {"Show net balance, this month's totals and alerts", runSummary},
	"report":      {"Generate a range report", runReport},
	"export":      {"Write a JSON backup", runExport},
	"import":      {"Replace all data from a JSON backup", runImport},
	"reset":       {"Erase all data", runReset},
}

// flagSet creates a flag set carrying the store selection flags
func flagSet(name string) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	backend := fs.String("backend", "", "Store backend: file or sqlite (default from STORE_BACKEND)")
	path := fs.String("path", "", "Store file or database path (default from STORE_FILE or SQLITE_PATH)")
	return fs, backend, path
}

func parseAndOpen(ctx context.Context, fs *flag.FlagSet, args []string, backend, path *string) (*ledger, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return openLedger(ctx, *backend, *path)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func money(d decimal.Decimal) string {
	return domain.FormatMoney(d)
}

func runAccounts(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("accounts")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	accounts := l.accounts.GetAccounts()
	if len(accounts) == 0 {
		fmt.Println("No accounts.")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tBALANCE")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.Name, money(a.Balance))
	}
	w.Flush()

	fmt.Printf("\nNet balance: %s\n", money(l.aggregation.GetNetBalance()))
	return nil
}

func runAddAccount(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("add-account")
	name := fs.String("name", "", "Account name (required)")
	balance := fs.String("balance", "0", "Opening balance")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	account, err := l.accounts.CreateAccount(ctx, *name, *balance)
	if err != nil {
		return err
	}
	okColor.Printf("Created account %s (%s) with balance %s\n", account.Name, account.ID, money(account.Balance))
	return nil
}

func runAddTx(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("add-tx")
	txType := fs.String("type", string(domain.TransactionTypeExpense), "income or expense")
	amount := fs.String("amount", "", "Positive amount (required)")
	date := fs.String("date", "", "Date YYYY-MM-DD (default today)")
	account := fs.String("account", "", "Account ID to apply the amount to")
	category := fs.String("category", "", "Category (default uncategorized)")
	payee := fs.String("payee", "", "Payee or payer")
	note := fs.String("note", "", "Free-text note")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	value, err := decimal.NewFromString(strings.TrimSpace(*amount))
	if err != nil {
		return domain.ErrInvalidAmount
	}

	input := service.CreateTransactionInput{
		Type:     domain.TransactionType(*txType),
		Amount:   value,
		Date:     *date,
		Category: *category,
		Payee:    *payee,
		Note:     *note,
	}
	if *account != "" {
		input.AccountID = account
	}

	result, err := l.transactions.CreateTransaction(ctx, input)
	if err != nil {
		return err
	}

	tx := result.Transaction
	okColor.Printf("Recorded %s %s on %s (%s)\n", tx.Type, money(tx.Amount), tx.Date, tx.Category)
	if result.Account != nil {
		fmt.Printf("%s balance: %s\n", result.Account.Name, money(result.Account.Balance))
	}
	return nil
}

func runTxs(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("txs")
	account := fs.String("account", "", "Filter by account ID")
	txType := fs.String("type", "", "Filter by type: income, expense or all")
	query := fs.String("q", "", "Search category, payee and note")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	txs := l.transactions.GetTransactions(domain.TransactionFilter{
		AccountID: *account,
		Type:      *txType,
		Query:     *query,
	})
	if len(txs) == 0 {
		fmt.Println("No transactions.")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tCATEGORY\tPAYEE\tID")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", tx.Date, tx.Type, money(tx.Amount), tx.Category, tx.Payee, tx.ID)
	}
	return w.Flush()
}

func runPayBill(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("pay-bill")
	id := fs.String("id", "", "Bill ID (required)")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	if *id == "" && fs.NArg() > 0 {
		*id = fs.Arg(0)
	}

	payment, err := l.bills.MarkPaid(ctx, *id)
	if err != nil {
		return err
	}
	okColor.Printf("Paid %s: %s\n", payment.Bill.Name, money(payment.Bill.Amount))
	if payment.Account != nil {
		fmt.Printf("%s balance: %s\n", payment.Account.Name, money(payment.Account.Balance))
	}
	return nil
}

func runSummary(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("summary")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	summary := l.aggregation.GetSummary()
	today := l.aggregation.Today()

	headColor.Printf("Summary for %s %d\n", today.Month, today.Year)
	fmt.Printf("Net balance:     %s\n", money(summary.NetBalance))
	fmt.Printf("Monthly income:  %s\n", money(summary.MonthlyIncome))
	fmt.Printf("Monthly expense: %s\n", money(summary.MonthlyExpense))

	for _, a := range summary.Alerts {
		errColor.Printf("Budget exceeded: %s spent %s of %s\n", a.Category, money(a.Spent), money(a.Limit))
	}

	upcoming := l.bills.GetUpcomingBills(domain.DefaultReminderDays)
	for _, b := range upcoming {
		warnColor.Printf("Bill due %s: %s %s\n", b.Due, b.Name, money(b.Amount))
	}
	return nil
}

func runReport(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("report")
	rangeName := fs.String("range", string(domain.ReportRangeMonthly), "monthly, quarter, year or custom")
	from := fs.String("from", "", "Custom range start YYYY-MM-DD")
	to := fs.String("to", "", "Custom range end YYYY-MM-DD")
	out := fs.String("out", "", "Also write the report text to this file")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	report, err := l.reports.GenerateReport(domain.ReportRange(*rangeName), *from, *to)
	if err != nil {
		return err
	}

	text := service.RenderReport(report)
	fmt.Print(text)

	if *out != "" {
		if err := os.WriteFile(*out, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		okColor.Printf("Report written to %s\n", *out)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("export")
	out := fs.String("out", "", "Output file (default pfd-backup-<timestamp>.json)")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	backup, err := l.backups.Export(ctx)
	if err != nil {
		return err
	}

	target := *out
	if target == "" {
		target = backup.Filename
	}
	if err := os.WriteFile(target, backup.Data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	okColor.Printf("Exported to %s\n", target)
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("import")
	in := fs.String("in", "", "Backup file to import (required)")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		return fmt.Errorf("-in is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	if err := confirm("Importing replaces all current data.", *yes); err != nil {
		return err
	}

	doc, err := l.backups.Import(ctx, data)
	if err != nil {
		return err
	}
	okColor.Printf("Imported %d accounts, %d transactions, %d goals, %d budgets, %d bills\n",
		len(doc.Accounts), len(doc.Transactions), len(doc.Goals), len(doc.Budgets), len(doc.Bills))
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs, backend, path := flagSet("reset")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	l, err := parseAndOpen(ctx, fs, args, backend, path)
	if err != nil {
		return err
	}
	defer l.close()

	if err := confirm("This erases every account, transaction, goal, budget and bill.", *yes); err != nil {
		return err
	}
	if err := l.backups.Reset(ctx); err != nil {
		return err
	}
	okColor.Println("All data cleared.")
	return nil
}
