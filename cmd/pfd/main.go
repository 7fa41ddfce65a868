package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dafibh/pfd/pfd-backend/internal/config"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/repository/file"
	"github.com/dafibh/pfd/pfd-backend/internal/repository/sqlite"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
	headColor = color.New(color.FgCyan, color.Bold)
	warnColor = color.New(color.FgYellow)
)

// errAborted is returned when a destructive command is not confirmed
var errAborted = errors.New("aborted")

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		switch os.Args[1] {
		case "help", "-h", "--help":
			printUsage()
			return
		}
		errColor.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := cmd.run(ctx, os.Args[2:]); err != nil {
		cancel()
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	headColor.Println("PFD personal finance ledger")
	fmt.Println("\nUsage:")
	fmt.Println("  pfd <command> [options]")
	fmt.Println("\nCommands:")
	for _, name := range commandOrder {
		fmt.Printf("  %-12s %s\n", name, commands[name].usage)
	}
	fmt.Println("\nEvery command accepts -backend (file or sqlite) and -path.")
	fmt.Println("Run 'pfd <command> -h' for more information on a command.")
}

// ledger is the set of services the CLI runs against
type ledger struct {
	store        *store.Store
	accounts     *service.AccountService
	transactions *service.TransactionService
	bills        *service.BillService
	aggregation  *service.AggregationService
	reports      *service.ReportService
	backups      *service.BackupService
	close        func()
}

// openLedger loads the ledger from a file or sqlite blob store. backend and
// path fall back to the environment configuration.
func openLedger(ctx context.Context, backend, path string) (*ledger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if backend == "" {
		backend = cfg.StoreBackend
		if backend != config.BackendSQLite {
			backend = config.BackendFile
		}
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	var blob store.BlobStore
	closeFn := func() {}
	switch backend {
	case config.BackendFile:
		if path == "" {
			path = cfg.StoreFile
		}
		repo, err := file.NewBlobRepository(path)
		if err != nil {
			return nil, err
		}
		blob = repo
	case config.BackendSQLite:
		if path == "" {
			path = cfg.SQLitePath
		}
		repo, err := sqlite.NewBlobRepository(path)
		if err != nil {
			return nil, err
		}
		blob = repo
		closeFn = func() { _ = repo.Close() }
	default:
		return nil, fmt.Errorf("unsupported backend %q (use file or sqlite)", backend)
	}

	st := store.New(blob, cfg.StoreKey, logger)
	if err := st.Load(ctx); err != nil {
		warnColor.Fprintf(os.Stderr, "Warning: %v; starting from an empty ledger\n", err)
	}

	clock := domain.SystemClock{}
	ids := domain.UUIDGenerator{}
	transactions := service.NewTransactionService(st, ids, clock)
	transactions.ReverseOnDelete = cfg.ReverseOnDelete

	return &ledger{
		store:        st,
		accounts:     service.NewAccountService(st, ids),
		transactions: transactions,
		bills:        service.NewBillService(st, ids, clock),
		aggregation:  service.NewAggregationService(st, clock),
		reports:      service.NewReportService(st, clock),
		backups:      service.NewBackupService(st, clock, nil, logger),
		close:        closeFn,
	}, nil
}

// confirm asks before a destructive change. Without a terminal on stdin
// the change proceeds only when yes is set.
func confirm(prompt string, yes bool) error {
	if yes {
		return nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("%w: stdin is not a terminal, pass -yes to confirm", errAborted)
	}

	warnColor.Printf("%s Type 'yes' to continue: ", prompt)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errAborted, err)
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		return errAborted
	}
	return nil
}
