package rebate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/metrics"
)

const calculatorPath = "/api/v1/calculator"

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 4 << 20

// Client calls the rebate provider's calculator endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient returns a Client for the provider at baseURL. Every call is
// bounded by timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Encode renders q as the provider's query string. Income is rounded to a
// whole number and each item becomes its own items parameter. The result is
// deterministic and doubles as the cache key.
func Encode(q domain.RebateQuery) string {
	v := url.Values{}
	v.Set("zip", q.Zip)
	v.Set("owner_status", q.OwnerStatus)
	v.Set("household_income", strconv.FormatInt(int64(math.Round(q.HouseholdIncome)), 10))
	v.Set("tax_filing", q.TaxFiling)
	v.Set("household_size", strconv.Itoa(q.HouseholdSize))
	if q.Utility != "" {
		v.Set("utility", q.Utility)
	}
	if q.GasUtility != "" {
		v.Set("gas_utility", q.GasUtility)
	}
	v.Set("language", q.Language)
	for _, it := range q.Items {
		v.Add("items", it)
	}
	return v.Encode()
}

type calculatorResponse struct {
	Incentives *[]domain.Incentive `json:"incentives"`
}

// Fetch returns the incentives the provider reports for q. Transport errors,
// non-2xx answers and bodies without an incentives array wrap
// domain.ErrUpstream.
func (c *Client) Fetch(ctx context.Context, q domain.RebateQuery) ([]domain.Incentive, error) {
	start := time.Now()
	incentives, err := c.fetch(ctx, q)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.ObserveRebateUpstream(result, time.Since(start))
	return incentives, err
}

func (c *Client) fetch(ctx context.Context, q domain.RebateQuery) ([]domain.Incentive, error) {
	endpoint := c.baseURL + calculatorPath + "?" + Encode(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("rebate.Client.Fetch: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rebate.Client.Fetch: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("rebate.Client.Fetch: %w: provider answered %d", domain.ErrUpstream, resp.StatusCode)
	}

	var body calculatorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("rebate.Client.Fetch: %w: decode: %w", domain.ErrUpstream, err)
	}
	if body.Incentives == nil {
		return nil, fmt.Errorf("rebate.Client.Fetch: %w: response has no incentives", domain.ErrUpstream)
	}
	return *body.Incentives, nil
}
