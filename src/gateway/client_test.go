package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/apexbank/client/src/config"
	"github.com/username/apexbank/client/src/gateway"
	"github.com/username/apexbank/client/src/models"
)

func testClient(t *testing.T, handler http.Handler) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gateway.NewClient(&config.AppConfig{
		APIBaseURL:           srv.URL,
		RequestTimeout:       5 * time.Second,
		RateLimitInterval:    time.Millisecond,
		RateLimitBurst:       50,
		CacheTTL:             time.Minute,
		CacheCleanupInterval: time.Minute,
	})
}

func TestGetAccountDecodesResponse(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/accounts/{id}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "7", chi.URLParam(req, "id"))
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
		_, err := uuid.Parse(req.Header.Get("X-Request-ID"))
		assert.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 7,
			"accountNumber": "ACC-7007",
			"accountType": "SAVINGS",
			"accountHolderName": "Ayse Yilmaz",
			"balance": 1250.75,
			"active": true,
			"minimumBalance": 100.00,
			"interestRate": 2.5,
			"createdAt": "2025-01-15T10:30:00"
		}`))
	})
	c := testClient(t, r)

	acc, err := c.GetAccount(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "ACC-7007", acc.AccountNumber)
	assert.True(t, acc.IsSavings())
	assert.True(t, decimal.RequireFromString("1250.75").Equal(acc.Balance))
	require.NotNil(t, acc.InterestRate)
	assert.True(t, decimal.RequireFromString("2.5").Equal(*acc.InterestRate))
}

func TestDepositPostsAmountRequest(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/accounts/{id}/deposit", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		var body models.AmountRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.True(t, decimal.RequireFromString("200").Equal(body.Amount))
		assert.Equal(t, "salary", body.Description)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 77,
			"referenceNumber": "TXN-20250115-0001",
			"accountNumber": "ACC-1001",
			"type": "DEPOSIT",
			"typeDisplayName": "Deposit",
			"amount": 200.00,
			"balanceBefore": 500.00,
			"balanceAfter": 700.00,
			"credit": true,
			"transactionDate": "2025-01-15T10:30:00"
		}`))
	})
	c := testClient(t, r)

	tx, err := c.Deposit(context.Background(), 1, models.AmountRequest{
		Amount:      decimal.RequireFromString("200"),
		Description: "salary",
	})
	require.NoError(t, err)
	assert.Equal(t, "TXN-20250115-0001", tx.ReferenceNumber)
	assert.Equal(t, models.TransactionDeposit, tx.Type)
	assert.True(t, decimal.RequireFromString("700").Equal(tx.BalanceAfter))
}

func TestStructuredErrorBodyIsSurfaced(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/accounts/{id}/withdraw", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"timestamp": "2025-01-15T10:30:00",
			"status": 400,
			"error": "Bad Request",
			"message": "Insufficient funds for withdrawal"
		}`))
	})
	c := testClient(t, r)

	_, err := c.Withdraw(context.Background(), 1, models.AmountRequest{Amount: decimal.NewFromInt(5000)})
	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadRequest, gwErr.Status)
	assert.Equal(t, "Insufficient funds for withdrawal", gwErr.Message)
}

func TestUnstructuredErrorBodyFallsBackToGenericMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/accounts", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream timeout</html>"))
	})
	c := testClient(t, r)

	_, err := c.ListAccounts(context.Background())
	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadGateway, gwErr.Status)
	assert.NotContains(t, gwErr.Message, "upstream")
	assert.NotEmpty(t, gwErr.Message)
}

func TestMonthlyReportIsCached(t *testing.T) {
	hits := 0
	r := chi.NewRouter()
	r.Get("/reports/monthly/{id}", func(w http.ResponseWriter, req *http.Request) {
		hits++
		assert.Equal(t, "2025", req.URL.Query().Get("year"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"accountId": 1,
			"accountNumber": "ACC-1001",
			"reportMonth": "2025-01",
			"totalDeposits": 255.00,
			"totalWithdrawals": 90.00,
			"openingBalance": 500.00,
			"closingBalance": 665.00
		}`))
	})
	c := testClient(t, r)
	ctx := context.Background()

	first, err := c.MonthlyReport(ctx, 1, 2025, 1)
	require.NoError(t, err)
	second, err := c.MonthlyReport(ctx, 1, 2025, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.True(t, first.TotalDeposits.Equal(second.TotalDeposits))

	// A different period misses the cache.
	_, err = c.MonthlyReport(ctx, 1, 2025, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestAdminListingsAreCached(t *testing.T) {
	hits := 0
	r := chi.NewRouter()
	r.Get("/admin/customers", func(w http.ResponseWriter, req *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 10, "fullName": "Ayse Yilmaz", "email": "ayse@example.com", "active": true}]`))
	})
	c := testClient(t, r)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		customers, err := c.AdminCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "Ayse Yilmaz", customers[0].FullName)
	}
	assert.Equal(t, 1, hits)
}

func TestSearchCustomersEscapesQuery(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/admin/customers/search", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "yilmaz & co", req.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	c := testClient(t, r)

	customers, err := c.AdminSearchCustomers(context.Background(), "yilmaz & co")
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestMonthlyTransactionsQueryParameters(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/transactions/account/{id}/monthly", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "1", chi.URLParam(req, "id"))
		assert.Equal(t, "2025", req.URL.Query().Get("year"))
		assert.Equal(t, "3", req.URL.Query().Get("month"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "type": "FEE", "credit": false}]`))
	})
	c := testClient(t, r)

	txs, err := c.MonthlyTransactions(context.Background(), 1, 2025, 3)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TransactionFee, txs[0].Type)
}

func TestUnreachableService(t *testing.T) {
	c := gateway.NewClient(&config.AppConfig{
		APIBaseURL:           "http://127.0.0.1:1",
		RequestTimeout:       time.Second,
		RateLimitInterval:    time.Millisecond,
		RateLimitBurst:       1,
		CacheTTL:             time.Minute,
		CacheCleanupInterval: time.Minute,
	})

	_, err := c.ListAccounts(context.Background())
	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, 0, gwErr.Status)
	assert.NotNil(t, gwErr.Unwrap())
}
