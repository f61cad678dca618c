package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/lysyi3m/fitbhaskar/app/metrics"
)

const maxResponseSize = 4 << 20

// Client talks to the spreadsheet-backed content gateway. It never retries:
// every call is a single request whose outcome is reported to the caller.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics.Registry
}

func NewClient(endpoint string, httpClient *http.Client, userAgent string, timeout time.Duration, registry *metrics.Registry) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gateway URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("gateway URL must be http(s): %s", endpoint)
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		endpoint:   u,
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
		breaker:    newBreaker(),
		metrics:    registry,
	}, nil
}

func newBreaker() *gobreaker.CircuitBreaker {
	st := gobreaker.Settings{Name: "gateway"}
	st.Interval = 60 * time.Second
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 5
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
	}
	return gobreaker.NewCircuitBreaker(st)
}

// ListPosts fetches every post the gateway is willing to show. With
// credentials attached the gateway includes unapproved posts.
func (c *Client) ListPosts(ctx context.Context, creds *Credentials) (*ListResponse, error) {
	op := OpList
	target := *c.endpoint
	if creds != nil {
		op = OpAdminList
		query := target.Query()
		query.Set("adminId", creds.ID)
		query.Set("adminPass", creds.Pass)
		target.RawQuery = query.Encode()
	}

	var resp ListResponse
	if err := c.do(ctx, op, http.MethodGet, target.String(), nil, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "" && resp.Status != StatusSuccess {
		return nil, &RejectionError{Op: op, Status: resp.Status, Message: resp.Message}
	}

	return &resp, nil
}

func (c *Client) SubmitPost(ctx context.Context, s Submission) (*WriteResponse, error) {
	form := url.Values{}
	form.Set("name", s.Name)
	form.Set("email", s.Email)
	form.Set("subject", s.Subject)
	form.Set("content", s.Content)

	return c.write(ctx, OpSubmit, form)
}

func (c *Client) SetApproval(ctx context.Context, creds Credentials, row int, approved string) (*WriteResponse, error) {
	form := url.Values{}
	form.Set("action", actionApprove)
	form.Set("row", strconv.Itoa(row))
	form.Set("approved", approved)
	form.Set("adminId", creds.ID)
	form.Set("adminPass", creds.Pass)

	return c.write(ctx, OpApprove, form)
}

func (c *Client) write(ctx context.Context, op Op, form url.Values) (*WriteResponse, error) {
	var resp WriteResponse
	if err := c.do(ctx, op, http.MethodPost, c.endpoint.String(), form, &resp); err != nil {
		return nil, err
	}

	if resp.Status != StatusSuccess {
		return &resp, &RejectionError{Op: op, Status: resp.Status, Message: resp.Message}
	}

	return &resp, nil
}

func (c *Client) do(ctx context.Context, op Op, method, target string, form url.Values, out any) error {
	start := time.Now()

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, op, method, target, form, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &NetworkError{Op: op, Err: err}
	}

	c.metrics.ObserveGateway(string(op), err, time.Since(start))
	if err != nil {
		slog.Debug("Gateway call failed", "op", op, "duration", time.Since(start), "error", err)
	}

	return err
}

func (c *Client) roundTrip(ctx context.Context, op Op, method, target string, form url.Values, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to create request: %w", redact(err))}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to reach gateway: %w", redact(err))}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// redact strips the query string from URL errors so admin credentials never
// reach the logs.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if i := strings.IndexByte(urlErr.URL, '?'); i >= 0 {
			urlErr.URL = urlErr.URL[:i]
		}
	}
	return err
}
