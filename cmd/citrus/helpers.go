package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/citrushq/citrus/internal/config"
	"github.com/citrushq/citrus/internal/gateway"
	"github.com/citrushq/citrus/internal/ledger"
	"github.com/citrushq/citrus/internal/service"
	"github.com/citrushq/citrus/internal/session"
	"github.com/citrushq/citrus/internal/storage"
)

const defaultAPIURL = "http://localhost:5000/api"

// initStore opens the guest ledger database and runs migrations.
func initStore(ctx context.Context) (*storage.GuestStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.NewGuestStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func tokenFile() *session.TokenFile {
	path := viper.GetString("auth.token_path")
	if path == "" {
		path = config.DefaultTokenPath()
	} else {
		path = config.ExpandPath(path)
	}
	return session.NewTokenFile(path)
}

// initGateway builds the remote ledger client with the saved session token.
func initGateway() (*gateway.Client, error) {
	token, err := tokenFile().Load()
	if err != nil {
		return nil, err
	}

	baseURL := viper.GetString("api.url")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	return gateway.NewClient(gateway.Config{
		BaseURL: baseURL,
		Token:   token,
		Timeout: viper.GetDuration("api.timeout"),
	})
}

// initEngine wires the full stack and loads the ledger for the current
// session. The returned cleanup closes the guest store.
func initEngine(ctx context.Context) (*ledger.Engine, func(), error) {
	store, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	gw, err := initGateway()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	eng := ledger.New(store, gw, session.NewSignal(gw))
	if err := eng.Refresh(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = store.Close() }
	return eng, cleanup, nil
}

// money renders an amount with the configured currency symbol.
func money(symbol string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s%s", symbol, amount.StringFixed(2))
}

// statusError converts a mutation status into a user-facing error where
// the outcome was not an applied change.
func statusError(status service.Status, what string) error {
	switch status {
	case service.StatusApplied:
		return nil
	case service.StatusNoop:
		return fmt.Errorf("nothing to do: %s", what)
	case service.StatusNotFound:
		return fmt.Errorf("%s not found", what)
	case service.StatusFailed:
		return fmt.Errorf("the citrus service rejected the change to %s", what)
	default:
		return fmt.Errorf("unexpected outcome %q for %s", status, what)
	}
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return parsed, nil
}

func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return amount, nil
}
