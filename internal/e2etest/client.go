package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// Client is a cookie-aware JSON client for the API. The cookie jar carries
// the session cookie between requests, so one Client behaves like one
// browser.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a client for the server at the given base URL.
func NewClient(serverURL string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, fmt.Errorf("create unsafe cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    serverURL,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return fmt.Errorf("close response body: %w", err)
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return fmt.Errorf("close response body: %w", err)
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, urlPath, nil)
}

// PostJSON sends body as JSON and returns the response.
func (c *Client) PostJSON(ctx context.Context, urlPath string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, urlPath, body)
}

// PutJSON sends body as JSON with PUT and returns the response.
func (c *Client) PutJSON(ctx context.Context, urlPath string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, urlPath, body)
}

// Delete issues a DELETE request and returns the response.
func (c *Client) Delete(ctx context.Context, urlPath string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, urlPath, nil)
}

// GetJSON fetches a URL and decodes the 200 response body into dst.
func (c *Client) GetJSON(ctx context.Context, urlPath string, dst any) error {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return fmt.Errorf("client get: %w", err)
	}
	return DecodeJSON(resp, http.StatusOK, dst)
}

// DecodeJSON checks the response status and decodes the body into dst. A
// nil dst discards the body. The response body is always closed.
func DecodeJSON(resp *http.Response, wantStatus int, dst any) error {
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, urlPath string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Satisfies the cross-origin protection for non-browser clients.
	req.Header.Set("Sec-Fetch-Site", "same-origin")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// unsafeCookieJar stores Secure cookies even though the test server speaks
// plain HTTP on localhost.
type unsafeCookieJar struct {
	jar *cookiejar.Jar
}

func newUnsafeCookieJar() (*unsafeCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("new cookie jar: %w", err)
	}
	return &unsafeCookieJar{jar: jar}, nil
}

func (j *unsafeCookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		cookie.Secure = false
	}
	j.jar.SetCookies(u, cookies)
}

func (j *unsafeCookieJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}
