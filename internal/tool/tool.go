// Package tool exposes the Shopify order summary as a single callable that
// always returns a value: either a summary or an error message.
package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Flyrell/shopsum/internal/secret"
	"github.com/Flyrell/shopsum/internal/shopify"
	"github.com/Flyrell/shopsum/internal/stringutil"
	"github.com/Flyrell/shopsum/internal/summary"
	"github.com/davecgh/go-spew/spew"
)

// Name is the tool name reported by the worker.
const Name = "GetShopifyOrders"

// OrderFetcher fetches one page of orders for a store.
type OrderFetcher interface {
	Orders(ctx context.Context, creds shopify.Credentials) ([]shopify.Order, error)
}

// ErrInvalidStoreKey is returned for a non-empty store key with no letters or
// digits, which would otherwise select the default store's secrets.
var ErrInvalidStoreKey = errors.New("invalid store key")

// CredentialError is returned when a store's secrets cannot be resolved.
type CredentialError struct {
	Store   string
	Missing []string
	Err     error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf(
		"Missing Shopify credentials for store %q. Please set %s (run `shopsum secret set <NAME>`, add them to %s, or export them as environment variables).",
		e.Store, strings.Join(e.Missing, " and "), secret.DotenvFile,
	)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// Result is the value returned by every invocation. Exactly one of Error or
// Summary is meaningful. Store is set once credentials resolve, also on
// failure, but it is only encoded alongside a summary.
type Result struct {
	Summary []summary.DailySummary
	Store   string
	Error   string
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool { return r.Error == "" }

// MarshalJSON encodes {"summary": [...], "store": "..."} on success and
// {"error": "..."} on failure.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.OK() {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	rows := r.Summary
	if rows == nil {
		rows = []summary.DailySummary{}
	}
	return json.Marshal(struct {
		Summary []summary.DailySummary `json:"summary"`
		Store   string                 `json:"store"`
	}{rows, r.Store})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		Summary []summary.DailySummary `json:"summary"`
		Store   string                 `json:"store"`
		Error   string                 `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{Summary: raw.Summary, Store: raw.Store, Error: raw.Error}
	return nil
}

// Tool resolves credentials, fetches orders and summarizes them. It holds no
// state between invocations.
type Tool struct {
	Secrets      secret.Store
	Fetcher      OrderFetcher
	SecretPrefix string
	DefaultStore string
	Logger       *log.Logger
	// Debug dumps decoded orders to the logger.
	Debug bool
}

// ResolveCredentials looks up the URL and access token of a store. Every
// name that fails to resolve is listed in the returned CredentialError.
func ResolveCredentials(store secret.Store, prefix, storeKey, label string) (shopify.Credentials, error) {
	if strings.TrimSpace(storeKey) != "" && stringutil.EnvKey(storeKey) == "" {
		return shopify.Credentials{}, fmt.Errorf("%w %q: it must contain a letter or digit", ErrInvalidStoreKey, storeKey)
	}
	names := secret.NamesFor(prefix, storeKey)

	var missing []string
	var firstErr error
	lookup := func(name string) string {
		v, err := store.Get(name)
		if err != nil {
			missing = append(missing, name)
			if firstErr == nil {
				firstErr = err
			}
			return ""
		}
		return v
	}

	creds := shopify.Credentials{
		StoreURL:    lookup(names.StoreURL),
		AccessToken: lookup(names.AccessToken),
	}
	if len(missing) > 0 {
		return shopify.Credentials{}, &CredentialError{Store: label, Missing: missing, Err: firstErr}
	}
	return creds, nil
}

// Label returns the store name reported in results: the key itself, or the
// default label when the key is empty.
func (t *Tool) Label(storeKey string) string {
	if k := strings.TrimSpace(storeKey); k != "" {
		return k
	}
	if t.DefaultStore != "" {
		return t.DefaultStore
	}
	return "default"
}

// Run performs one invocation. It never panics and never returns an error;
// failures are reported in Result.Error.
func (t *Tool) Run(ctx context.Context, storeKey string) (res Result) {
	label := t.Label(storeKey)
	logger := t.logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Printf("[ERROR] store=%s panic: %v", label, r)
			res = Result{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	creds, err := ResolveCredentials(t.Secrets, t.SecretPrefix, storeKey, label)
	if err != nil {
		logger.Printf("[WARN] store=%s %v", label, err)
		return Result{Error: err.Error()}
	}

	logger.Printf("[INFO] fetching orders store=%s", label)
	orders, err := t.Fetcher.Orders(ctx, creds)
	if err != nil {
		logger.Printf("[WARN] store=%s fetch failed: %v", label, err)
		return Result{Error: err.Error(), Store: label}
	}
	if t.Debug {
		logger.Printf("[DEBUG] decoded orders:\n%s", spew.Sdump(orders))
	}

	rows, err := summary.Summarize(orders)
	if err != nil {
		logger.Printf("[WARN] store=%s summarize failed: %v", label, err)
		return Result{Error: err.Error(), Store: label}
	}
	logger.Printf("[INFO] store=%s summarized %d orders into %d rows", label, len(orders), len(rows))

	return Result{Summary: rows, Store: label}
}

func (t *Tool) logger() *log.Logger {
	if t.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return t.Logger
}

