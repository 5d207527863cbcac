package shopify

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultAPIVersion is the Admin API version orders are requested from.
	DefaultAPIVersion = "2023-10"
	// PageLimit is the largest page Shopify serves; only one page is read.
	PageLimit = 250
	// AccessTokenHeader carries the Admin API access token.
	AccessTokenHeader = "X-Shopify-Access-Token"

	maxErrorBody = 512
)

// DefaultFields is the field selection sent with every orders request. It
// covers the gross, discount, tax and refund columns. Net sales, total sales,
// shipping and duties need current_subtotal_price, current_total_price,
// total_shipping_price_set and total_duties, added with
// "shopsum config set fields ...".
var DefaultFields = []string{
	"id",
	"name",
	"created_at",
	"customer",
	"total_price",
	"subtotal_price",
	"total_discounts",
	"total_tax",
	"shipping_lines",
	"refunds",
	"line_items",
}

// Credentials identify one store and authorize access to it.
type Credentials struct {
	StoreURL    string
	AccessToken string
}

// StatusError is returned when Shopify answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("[Shopify] %d %s: %s", e.StatusCode, e.Reason, e.Body)
}

// TransportError wraps a failure to reach Shopify at all (DNS, timeout,
// connection reset, cancelled context).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("[Shopify] request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client fetches orders from the Shopify Admin API. It never retries and
// never follows pagination.
type Client struct {
	HTTPClient *http.Client
	APIVersion string
	Fields     []string
	Logger     *log.Logger
}

// NewClient creates a Client with the given API version and request timeout.
// An empty version falls back to DefaultAPIVersion.
func NewClient(apiVersion string, timeout time.Duration) *Client {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		APIVersion: apiVersion,
		Fields:     DefaultFields,
		Logger:     log.New(io.Discard, "", 0),
	}
}

// OrdersURL builds the orders endpoint for a store. The store may be a bare
// host ("shop.myshopify.com") or a base URL with a scheme.
func (c *Client) OrdersURL(storeURL string) (string, error) {
	base := strings.TrimSpace(storeURL)
	if base == "" {
		return "", fmt.Errorf("empty store URL")
	}
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid store URL %q: %w", storeURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid store URL %q: missing host", storeURL)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/admin/api/" + c.APIVersion + "/orders.json"
	q := url.Values{}
	q.Set("status", "any")
	q.Set("limit", strconv.Itoa(PageLimit))
	if len(c.Fields) > 0 {
		q.Set("fields", strings.Join(c.Fields, ","))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Orders performs a single GET for the most recent orders of the store.
func (c *Client) Orders(ctx context.Context, creds Credentials) ([]Order, error) {
	endpoint, err := c.OrdersURL(creds.StoreURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(AccessTokenHeader, creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger().Printf("[INFO] GET %s", redactQuery(req.URL))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	orders, err := DecodeOrders(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[Shopify] decoding orders: %w", err)
	}
	c.logger().Printf("[INFO] fetched %d orders", len(orders))
	return orders, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}

// reasonPhrase extracts the phrase from "401 Unauthorized", falling back to
// the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

func redactQuery(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}
