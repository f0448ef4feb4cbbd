// Package gateway implements the remote ledger service client. It owns
// transport, timeouts and retry policy; the engine above it never retries.
// Account and transaction identifiers are normalized at this boundary so
// the rest of the application only ever sees one canonical id per entity.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/citrushq/citrus/internal/common"
	"github.com/citrushq/citrus/internal/model"
	"github.com/citrushq/citrus/internal/service"
)

const defaultTimeout = 30 * time.Second

// Config holds the connection settings for the remote ledger service.
type Config struct {
	// BaseURL is the API root, e.g. https://api.citrus.example/api.
	BaseURL string
	// Token is the bearer token of the current session; empty when anonymous.
	Token string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
}

// Validate checks the configuration for required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: gateway base URL is required", common.ErrMissingConfig)
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("%w: invalid gateway base URL: %v", common.ErrInvalidConfig, err)
	}
	return nil
}

// Client talks to the remote ledger service over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	retryOpts  service.RetryOptions
}

// NewClient creates a new remote ledger client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// do executes one request and decodes the JSON response into out when
// non-nil. Transport failures and 5xx responses are marked retryable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %v", common.ErrGatewayDown, err),
			Retryable: true,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrNotAuthenticated
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode >= 500:
		msg, _ := io.ReadAll(resp.Body)
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %d - %s", common.ErrRemoteRejected, resp.StatusCode, msg),
			Retryable: true,
		}
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %d - %s", common.ErrRemoteRejected, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// FetchCurrentUser returns the authenticated user, or (nil, nil) when the
// session token is missing or rejected.
func (c *Client) FetchCurrentUser(ctx context.Context) (*model.UserProfile, error) {
	if c.token == "" {
		return nil, nil
	}

	var user model.UserProfile
	err := common.WithRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, "/auth/me", nil, &user)
	}, c.retryOpts)
	if err != nil {
		if errors.Is(err, common.ErrNotAuthenticated) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// SyncGuestData imports a guest snapshot into the user's remote ledger.
func (c *Client) SyncGuestData(ctx context.Context, snap model.LedgerSnapshot) error {
	snap.Normalize()
	return c.do(ctx, http.MethodPost, "/finance/sync", snap, nil)
}

// FetchSnapshot returns the remote ledger with identifiers normalized.
func (c *Client) FetchSnapshot(ctx context.Context) (*model.LedgerSnapshot, error) {
	var wire wireSnapshot
	err := common.WithRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, "/finance/data", nil, &wire)
	}, c.retryOpts)
	if err != nil {
		return nil, err
	}
	return wire.toModel(), nil
}

// CreateAccount creates a new account on the remote ledger.
func (c *Client) CreateAccount(ctx context.Context, in model.AccountInput) (*model.Account, error) {
	var wire wireAccount
	if err := c.do(ctx, http.MethodPost, "/finance/accounts", in, &wire); err != nil {
		return nil, err
	}
	acc := wire.toModel()
	return &acc, nil
}

// UpdateAccount patches non-balance fields of a remote account.
func (c *Client) UpdateAccount(ctx context.Context, id string, patch model.AccountPatch) (*model.Account, error) {
	var wire wireAccount
	if err := c.do(ctx, http.MethodPut, "/finance/accounts/"+url.PathEscape(id), patch, &wire); err != nil {
		return nil, err
	}
	acc := wire.toModel()
	return &acc, nil
}

// DeleteAccount deletes a remote account; the service cascades to its
// transactions.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/finance/accounts/"+url.PathEscape(id), nil, nil)
}

// CreateTransaction records a new transaction on the remote ledger.
func (c *Client) CreateTransaction(ctx context.Context, in model.TransactionInput) (*model.Transaction, error) {
	var wire wireTransaction
	if err := c.do(ctx, http.MethodPost, "/finance/transactions", in, &wire); err != nil {
		return nil, err
	}
	txn := wire.toModel()
	return &txn, nil
}

// UpdateTransaction replaces a remote transaction's fields.
func (c *Client) UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) (*model.Transaction, error) {
	var wire wireTransaction
	if err := c.do(ctx, http.MethodPut, "/finance/transactions/"+url.PathEscape(id), in, &wire); err != nil {
		return nil, err
	}
	txn := wire.toModel()
	return &txn, nil
}

// DeleteTransaction deletes one remote transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/finance/transactions/"+url.PathEscape(id), nil, nil)
}

// BulkDeleteTransactions deletes a set of remote transactions.
func (c *Client) BulkDeleteTransactions(ctx context.Context, ids []string) error {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	return c.do(ctx, http.MethodDelete, "/finance/transactions/bulk-delete", body, nil)
}

// DeleteAllTransactions clears every transaction on the remote ledger.
func (c *Client) DeleteAllTransactions(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/finance/transactions/delete-all", nil, nil)
}

// TransferFunds moves funds between two remote accounts.
func (c *Client) TransferFunds(ctx context.Context, req model.TransferRequest) error {
	return c.do(ctx, http.MethodPost, "/finance/transfer", req, nil)
}

// CreateAccountType creates a custom account type.
func (c *Client) CreateAccountType(ctx context.Context, label string, theme model.Theme) (*model.AccountType, error) {
	body := struct {
		Label string      `json:"label"`
		Theme model.Theme `json:"theme"`
	}{Label: label, Theme: theme}

	var wire wireAccountType
	if err := c.do(ctx, http.MethodPost, "/finance/account-types", body, &wire); err != nil {
		return nil, err
	}
	at := wire.toModel()
	return &at, nil
}

// DeleteAccountType deletes a custom account type.
func (c *Client) DeleteAccountType(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/finance/account-types/"+url.PathEscape(id), nil, nil)
}

// ResetAllData clears the user's entire remote ledger.
func (c *Client) ResetAllData(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/finance/reset", nil, nil)
}
