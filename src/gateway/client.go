package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/apexbank/client/src/config"
	"github.com/username/apexbank/client/src/logger"
	"github.com/username/apexbank/client/src/models"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const genericFailureMessage = "the banking service could not process the request"

// Client is the HTTP implementation of the four service interfaces.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	readCache  *cache.Cache
}

var (
	_ AccountService     = (*Client)(nil)
	_ TransactionService = (*Client)(nil)
	_ ReportService      = (*Client)(nil)
	_ AdminService       = (*Client)(nil)
)

// NewClient builds the gateway from the loaded configuration.
func NewClient(cfg *config.AppConfig) *Client {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout,
		},
		limiter:   rate.NewLimiter(rate.Every(cfg.RateLimitInterval), cfg.RateLimitBurst),
		readCache: cache.New(cfg.CacheTTL, cfg.CacheCleanupInterval),
	}
}

// do performs one request. body (when non-nil) is JSON-encoded; a 2xx
// response is decoded into out (when non-nil). Any failure comes back as
// *Error carrying the server's message when the body parses as the
// service's error shape.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Message: "request throttled", Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: genericFailureMessage, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Message: genericFailureMessage, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: "could not reach the banking service", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(ctx, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Status: resp.StatusCode, Message: genericFailureMessage, Err: fmt.Errorf("decoding response: %w", err)}
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return nil
}

func (c *Client) decodeError(ctx context.Context, resp *http.Response) *Error {
	gwErr := &Error{Status: resp.StatusCode, Message: genericFailureMessage}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		gwErr.Err = err
		return gwErr
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		gwErr.Message = body.Message
	} else {
		logger.FromContext(ctx).Debug("Unstructured error body from service", "status", resp.StatusCode, "body", string(raw))
	}
	return gwErr
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, out)
}

// --- AccountService ---

func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	if err := c.get(ctx, "/accounts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListActiveAccounts(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	if err := c.get(ctx, "/accounts/active", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	var out models.Account
	if err := c.get(ctx, fmt.Sprintf("/accounts/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	var out models.Account
	if err := c.get(ctx, "/accounts/number/"+url.PathEscape(accountNumber), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSavingsAccount(ctx context.Context, req models.CreateSavingsAccountRequest) (*models.Account, error) {
	var out models.Account
	if err := c.post(ctx, "/accounts/savings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCheckingAccount(ctx context.Context, req models.CreateCheckingAccountRequest) (*models.Account, error) {
	var out models.Account
	if err := c.post(ctx, "/accounts/checking", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Deposit(ctx context.Context, accountID int64, req models.AmountRequest) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.post(ctx, fmt.Sprintf("/accounts/%d/deposit", accountID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Withdraw(ctx context.Context, accountID int64, req models.AmountRequest) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.post(ctx, fmt.Sprintf("/accounts/%d/withdraw", accountID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Transfer(ctx context.Context, req models.TransferRequest) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.post(ctx, "/accounts/transfer", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ActivateAccount(ctx context.Context, id int64) (*models.Account, error) {
	var out models.Account
	if err := c.put(ctx, fmt.Sprintf("/accounts/%d/activate", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeactivateAccount(ctx context.Context, id int64) (*models.Account, error) {
	var out models.Account
	if err := c.put(ctx, fmt.Sprintf("/accounts/%d/deactivate", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- TransactionService ---

func (c *Client) TransactionsByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := c.get(ctx, fmt.Sprintf("/transactions/account/%d", accountID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MonthlyTransactions(ctx context.Context, accountID int64, year, month int) ([]models.Transaction, error) {
	var out []models.Transaction
	path := fmt.Sprintf("/transactions/account/%d/monthly?year=%d&month=%d", accountID, year, month)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TransactionByReference(ctx context.Context, referenceNumber string) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.get(ctx, "/transactions/reference/"+url.PathEscape(referenceNumber), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- ReportService ---

// MonthlyReport is cached briefly: statements for a closed month are
// stable and the report modal refetches on every open.
func (c *Client) MonthlyReport(ctx context.Context, accountID int64, year, month int) (*models.MonthlyReport, error) {
	key := fmt.Sprintf("report:%d:%d-%02d", accountID, year, month)
	if cached, ok := c.readCache.Get(key); ok {
		report := cached.(models.MonthlyReport)
		return &report, nil
	}
	var out models.MonthlyReport
	path := fmt.Sprintf("/reports/monthly/%d?year=%d&month=%d", accountID, year, month)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	c.readCache.Set(key, out, cache.DefaultExpiration)
	return &out, nil
}

func (c *Client) CalculateInterest(ctx context.Context, accountID int64) (*models.InterestCalculation, error) {
	var out models.InterestCalculation
	if err := c.get(ctx, fmt.Sprintf("/reports/interest/calculate/%d", accountID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApplyInterest(ctx context.Context, accountID int64) (*models.InterestCalculation, error) {
	var out models.InterestCalculation
	if err := c.post(ctx, fmt.Sprintf("/reports/interest/apply/%d", accountID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- AdminService ---

const (
	cacheKeyCustomers = "admin:customers"
	cacheKeyAccounts  = "admin:accounts"
)

// Admin listings are cached for the configured TTL: they are read-only
// browse data and the console refetches them on every tab switch.
func (c *Client) AdminCustomers(ctx context.Context) ([]models.Customer, error) {
	if cached, ok := c.readCache.Get(cacheKeyCustomers); ok {
		return cached.([]models.Customer), nil
	}
	var out []models.Customer
	if err := c.get(ctx, "/admin/customers", &out); err != nil {
		return nil, err
	}
	c.readCache.Set(cacheKeyCustomers, out, cache.DefaultExpiration)
	return out, nil
}

func (c *Client) AdminSearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	var out []models.Customer
	if err := c.get(ctx, "/admin/customers/search?query="+url.QueryEscape(query), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var out models.Customer
	if err := c.get(ctx, fmt.Sprintf("/admin/customers/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminCustomerAccounts(ctx context.Context, customerID int64) ([]models.Account, error) {
	var out []models.Account
	if err := c.get(ctx, fmt.Sprintf("/admin/customers/%d/accounts", customerID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminCustomerTransactions(ctx context.Context, customerID int64) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := c.get(ctx, fmt.Sprintf("/admin/customers/%d/transactions", customerID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminAccounts(ctx context.Context) ([]models.Account, error) {
	if cached, ok := c.readCache.Get(cacheKeyAccounts); ok {
		return cached.([]models.Account), nil
	}
	var out []models.Account
	if err := c.get(ctx, "/admin/accounts", &out); err != nil {
		return nil, err
	}
	c.readCache.Set(cacheKeyAccounts, out, cache.DefaultExpiration)
	return out, nil
}

func (c *Client) AdminAccountTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := c.get(ctx, fmt.Sprintf("/admin/accounts/%d/transactions", accountID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminTransactionByReference(ctx context.Context, referenceNumber string) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.get(ctx, "/admin/transactions/"+url.PathEscape(referenceNumber), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
