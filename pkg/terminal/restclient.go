package terminal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// SessionHeader carries the session token on history requests.
const SessionHeader = "X-Terminal-Session"

type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetTicksFrom requests up to count ticks of symbol starting at from.
// A non-success envelope is returned as an Error carrying the bridge's code.
func (c *RESTClient) GetTicksFrom(ctx context.Context, session, symbol string,
	from time.Time, count int, flags CopyTicksFlag) ([]Tick, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("count", strconv.Itoa(count))
	q.Set("flags", strconv.Itoa(int(flags)))
	endpoint := c.baseURL + "/v1/ticks/from?" + q.Encode()

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(SessionHeader, session)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	var rawResp BridgeResponse
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		// the bridge still answers with an envelope on most errors
		if json.Unmarshal(body, &rawResp) == nil && rawResp.RetCode != 0 {
			return nil, Error{Code: rawResp.RetCode, Message: rawResp.RetMsg}
		}
		return nil, fmt.Errorf("bridge error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(&rawResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if rawResp.RetCode != ResSOK {
		return nil, Error{Code: rawResp.RetCode, Message: rawResp.RetMsg}
	}

	var result TicksResponse
	if err := json.Unmarshal(rawResp.Result, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	return ParseTickList(result.List), nil
}
