package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"VixLens/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public chart API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps short names to Yahoo tickers
}

// NewYahooFetcher creates a new Yahoo Finance fetcher. An empty baseURL
// selects the public endpoint.
func NewYahooFetcher(baseURL, proxyURL string, timeout time.Duration) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = defaultYahooBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"SPX500": "^GSPC",
			"VIX":    "^VIX",
			"NDX":    "^NDX",
			"VXN":    "^VXN",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Closes are pointers because the API reports holidays as null.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				GMTOffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) FetchCloses(ctx context.Context, symbol string, start, end time.Time) (model.PriceSeries, error) {
	series, err := f.fetchChart(ctx, symbol, start, end)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: %s: %w", ErrFetch, symbol, err)
	}
	return series, nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol string, start, end time.Time) (model.PriceSeries, error) {
	q := url.Values{}
	q.Set("period1", fmt.Sprint(start.Unix()))
	q.Set("period2", fmt.Sprint(end.Unix()))
	q.Set("interval", "1d")
	q.Set("events", "history")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSeries{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: no quote data")
	}
	closes := result.Indicators.Quote[0].Close
	points := make([]model.PricePoint, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // holidays and halted sessions
		}
		// Shift into exchange time before dropping the clock so the
		// session date survives.
		local := time.Unix(ts+result.Meta.GMTOffset, 0).UTC()
		points = append(points, model.PricePoint{Date: model.DateOf(local), Close: *closes[i]})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return model.PriceSeries{
		Symbol:    symbol,
		Points:    dedupeDates(points),
		FetchedAt: time.Now(),
	}, nil
}

// dedupeDates keeps the last close of any repeated date. Yahoo appends a
// live bar for the current session that can share a date with the last
// settled one.
func dedupeDates(points []model.PricePoint) []model.PricePoint {
	if len(points) < 2 {
		return points
	}
	out := points[:1]
	for _, p := range points[1:] {
		if p.Date.Equal(out[len(out)-1].Date) {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
