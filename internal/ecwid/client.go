// Package ecwid implements a read-only client for the Ecwid storefront API
// and a pure mapper from the Ecwid wire shape to the local catalog shape.
package ecwid

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/baigojahanzaib/ajj-sales/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// statusError reports a non-2xx response. 4xx responses are data errors and
// do not trip the circuit breaker; 5xx responses do.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ecwid responded %d: %s", e.code, e.body)
}

// Client fetches categories and products from Ecwid. All calls go through a
// circuit breaker so a degraded upstream does not pile up requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	storeID    string
	token      string
	pageSize   int
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

// NewClient creates a Client from the Ecwid configuration.
func NewClient(cfg config.EcwidConfig, logger *slog.Logger) *Client {
	st := gobreaker.Settings{
		Name:        "ecwid-cb",
		MaxRequests: 3,
		Timeout:     cfg.Breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > cfg.Breaker.ConsecutiveFailures ||
				(counts.TotalSuccesses+counts.TotalFailures > cfg.Breaker.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(counts.TotalSuccesses+counts.TotalFailures)*100 > float64(cfg.Breaker.ErrorRatePercent))
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if se, ok := err.(*statusError); ok {
				// Client errors are the caller's problem, not an outage.
				return se.code < http.StatusInternalServerError
			}
			return false
		},
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		storeID:    cfg.StoreID,
		token:      cfg.Token,
		pageSize:   cfg.PageSize,
		breaker:    gobreaker.NewCircuitBreaker[[]byte](st),
		logger:     logger.With("component", "ecwid"),
	}
}

// page is the envelope Ecwid wraps every list response in.
type page[T any] struct {
	Total  int `json:"total"`
	Count  int `json:"count"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Items  []T `json:"items"`
}

// CategoryItem is an Ecwid category as it appears on the wire.
type CategoryItem struct {
	ID       int64  `json:"id"`
	ParentID int64  `json:"parentId"`
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
}

// ProductItem is an Ecwid product as it appears on the wire.
type ProductItem struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Enabled      bool            `json:"enabled"`
	Quantity     int32           `json:"quantity"`
	Unlimited    bool            `json:"unlimited"`
	CategoryIDs  []int64         `json:"categoryIds"`
	Ribbon       *RibbonItem     `json:"ribbon"`
	Options      []OptionItem    `json:"options"`
	Combinations []Combination   `json:"combinations"`
}

// RibbonItem is the promotional label attached to an Ecwid product.
type RibbonItem struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// OptionItem is a selectable product option group, e.g. "Size".
type OptionItem struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Choices []ChoiceItem `json:"choices"`
}

// ChoiceItem is one value of an option group. The price modifier is either
// an absolute delta or a percentage of the base price, per ModifierType.
type ChoiceItem struct {
	Text         string          `json:"text"`
	Modifier     decimal.Decimal `json:"priceModifier"`
	ModifierType string          `json:"priceModifierType"`
}

// Combination is a concrete option selection with its own SKU and stock.
type Combination struct {
	SKU      string              `json:"sku"`
	Quantity int32               `json:"quantity"`
	Options  []CombinationOption `json:"options"`
}

// CombinationOption names the option group and the chosen value.
type CombinationOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FetchCategories retrieves every category, following pagination.
func (c *Client) FetchCategories(ctx context.Context) ([]CategoryItem, error) {
	return fetchAll[CategoryItem](ctx, c, "categories")
}

// FetchProducts retrieves every product, following pagination.
func (c *Client) FetchProducts(ctx context.Context) ([]ProductItem, error) {
	return fetchAll[ProductItem](ctx, c, "products")
}

func fetchAll[T any](ctx context.Context, c *Client, resource string) ([]T, error) {
	var all []T
	offset := 0
	for {
		body, err := c.get(ctx, resource, offset)
		if err != nil {
			return nil, err
		}
		var p page[T]
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("failed to decode %s page at offset %d: %w", resource, offset, err)
		}
		all = append(all, p.Items...)
		offset += p.Count
		if p.Count == 0 || offset >= p.Total {
			break
		}
	}
	c.logger.DebugContext(ctx, "Fetched from Ecwid", "resource", resource, "count", len(all))
	return all, nil
}

func (c *Client) get(ctx context.Context, resource string, offset int) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(c.pageSize))
		u := fmt.Sprintf("%s/api/v3/%s/%s?%s", c.baseURL, c.storeID, resource, q.Encode())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("ecwid request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
		if err != nil {
			return nil, fmt.Errorf("failed to read ecwid response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, &statusError{code: resp.StatusCode, body: string(body)}
		}
		return body, nil
	})
}
