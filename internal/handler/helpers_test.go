package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/dafibh/pfd/pfd-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// testEnv wires real services over an in-memory store
type testEnv struct {
	e            *echo.Echo
	clock        *testutil.FixedClock
	accounts     *service.AccountService
	transactions *service.TransactionService
	goals        *service.GoalService
	budgets      *service.BudgetService
	bills        *service.BillService
	aggregation  *service.AggregationService
	alerts       *service.AlertService
	reports      *service.ReportService
	backups      *service.BackupService
	archive      *testutil.MockBackupArchive
}

func newTestEnv() *testEnv {
	st, _ := testutil.NewTestStore()
	clock := testutil.NewFixedClock()
	ids := testutil.NewSequentialIDGenerator()
	archive := testutil.NewMockBackupArchive()

	return &testEnv{
		e:            echo.New(),
		clock:        clock,
		accounts:     service.NewAccountService(st, ids),
		transactions: service.NewTransactionService(st, ids, clock),
		goals:        service.NewGoalService(st, ids),
		budgets:      service.NewBudgetService(st, ids, clock),
		bills:        service.NewBillService(st, ids, clock),
		aggregation:  service.NewAggregationService(st, clock),
		alerts:       service.NewAlertService(st, clock, nil, zerolog.Nop(), 0),
		reports:      service.NewReportService(st, clock),
		backups:      service.NewBackupService(st, clock, archive, zerolog.Nop()),
		archive:      archive,
	}
}

// newRequest builds an echo context for method and path. A non-empty body
// is sent as JSON.
func (env *testEnv) newRequest(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func (env *testEnv) mustAccount(t *testing.T, name, balance string) *domain.Account {
	t.Helper()
	account, err := env.accounts.CreateAccount(context.Background(), name, balance)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	return account
}

func (env *testEnv) mustTransaction(t *testing.T, input service.CreateTransactionInput) *domain.TransactionResult {
	t.Helper()
	result, err := env.transactions.CreateTransaction(context.Background(), input)
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	return result
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to unmarshal response: %v (body %s)", err, rec.Body.String())
	}
}

// expectProblem checks the status and problem type of an error response
func expectProblem(t *testing.T, rec *httptest.ResponseRecorder, status int, problemType string) ProblemDetails {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("Expected status %d, got %d (body %s)", status, rec.Code, rec.Body.String())
	}
	var problem ProblemDetails
	decodeBody(t, rec, &problem)
	if problem.Type != problemType {
		t.Errorf("Expected problem type %s, got %s", problemType, problem.Type)
	}
	if problem.Status != status {
		t.Errorf("Expected problem status %d, got %d", status, problem.Status)
	}
	return problem
}

func strPtr(s string) *string { return &s }
