package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/hedgineer/aiapi"
	"github.com/hedgineer/aiapi/apispec"
	"github.com/hedgineer/aiapi/internal/shared/stringutils"
)

const (
	secQueryEndpoint = "https://api.sec-api.io"
	secUserAgent     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_7_2) AppleWebKit/537.36"
	maxFilingChars   = 20000
)

var secHTTPClient = &http.Client{Timeout: 30 * time.Second}

// registerExampleFunctions wires the demo functions the query command
// exposes to the model: a random-number generator registered via its
// doc block, and a SEC filing fetcher registered via a full spec.
func registerExampleFunctions(app *aiapi.App) error {
	if err := app.RegisterWithDoc("get_random_number", randomNumberDoc, getRandomNumber); err != nil {
		return err
	}
	return app.Register("fetch_sec_filings", fetchSECFilings, secFilingsSpec())
}

const randomNumberDoc = `Description:
Returns a random number between low and high

Args:
low (int): The lowest possible number
high (int): The highest possible number

Returns:
int: A random number between low and high

example:
42

Code Example:
low = 0
high = 100

random_number = get_random_number(low, high)`

func getRandomNumber(_ context.Context, kwargs map[string]any) (any, error) {
	low, err := intArg(kwargs, "low")
	if err != nil {
		return nil, err
	}
	high, err := intArg(kwargs, "high")
	if err != nil {
		return nil, err
	}
	if high < low {
		return nil, fmt.Errorf("high (%d) must be >= low (%d)", high, low)
	}
	return low + rand.Intn(high-low+1), nil
}

func secFilingsSpec() *apispec.Specification {
	return &apispec.Specification{
		Name:        "fetch_sec_filings",
		Description: "Fetches the most recent SEC filing for a company and form type.",
		Args: []apispec.Arg{
			{Name: "ticker", Type: "string", Description: "The stock symbol (eg. AAPL, IBM, GM)"},
			{Name: "form_type", Type: "string", Description: "Filing type (eg. 4, 10-K, 10-Q)"},
		},
		CodeExample: `ticker = "AAPL"
form_type = "4"

form_text = fetch_sec_filings(ticker, form_type)`,
		ResultsDescription: "The exact filing text submitted to the SEC.",
		ExampleResults: []any{
			`SEC-Document-Text: 0001193125-20-001385.txt This transaction was made pursuant to the provisions`,
		},
		ExampleQuery: []string{
			"What was the most recent insider transaction for GM?",
		},
		ExampleResponse: []string{
			"The most recent insider transaction for GM was a Form 4 filing reporting a purchase of common stock by a company officer.",
		},
		ExampleKwargs: []map[string]any{
			{"ticker": "GM", "form_type": "4"},
		},
	}
}

// fetchSECFilings queries the sec-api.io full-text index for the latest
// filing matching ticker and form type, downloads the filing page, and
// extracts its readable text.
func fetchSECFilings(ctx context.Context, kwargs map[string]any) (any, error) {
	apiKey := os.Getenv("SEC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SEC_API_KEY is not set")
	}
	ticker, err := stringArg(kwargs, "ticker")
	if err != nil {
		return nil, err
	}
	formType, err := stringArg(kwargs, "form_type")
	if err != nil {
		return nil, err
	}

	query := map[string]any{
		"query": map[string]any{
			"query_string": map[string]any{
				"query": fmt.Sprintf("ticker:%s AND formType:%q", ticker, formType),
			},
		},
		"from": "0",
		"size": "1",
		"sort": []any{map[string]any{"filedAt": map[string]any{"order": "desc"}}},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal filing query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, secQueryEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build filing query: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", apiKey)

	resp, err := secHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query filings: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read filing query response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query filings: HTTP %d: %s", resp.StatusCode, stringutils.Truncate(string(raw), 200))
	}

	var result struct {
		Filings []struct {
			LinkToFilingDetails string `json:"linkToFilingDetails"`
			LinkToTxt           string `json:"linkToTxt"`
		} `json:"filings"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse filing query response: %w", err)
	}
	if len(result.Filings) == 0 {
		return nil, fmt.Errorf("no %s filings found for %s", formType, ticker)
	}

	link := result.Filings[0].LinkToFilingDetails
	if link == "" {
		link = result.Filings[0].LinkToTxt
	}
	return fetchFilingText(ctx, link)
}

// fetchFilingText downloads a filing page and reduces it to readable text.
func fetchFilingText(ctx context.Context, link string) (string, error) {
	parsedURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse filing link %q: %w", link, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("build filing request: %w", err)
	}
	req.Header.Set("User-Agent", secUserAgent)

	resp, err := secHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch filing: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read filing: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch filing: HTTP %d", resp.StatusCode)
	}

	article, err := readability.FromReader(bytes.NewReader(raw), parsedURL)
	if err != nil {
		// Fallback: hand the raw document to the model.
		return stringutils.Truncate(string(raw), maxFilingChars), nil
	}
	return stringutils.Truncate(article.TextContent, maxFilingChars), nil
}

func intArg(kwargs map[string]any, key string) (int, error) {
	switch v := kwargs[key].(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		return int(n), err
	default:
		return 0, fmt.Errorf("kwarg %q must be an integer, got %T", key, kwargs[key])
	}
}

func stringArg(kwargs map[string]any, key string) (string, error) {
	s, ok := kwargs[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("kwarg %q must be a non-empty string", key)
	}
	return s, nil
}
