package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/composer2rpm/pkg/errors"
	"github.com/matzehuels/composer2rpm/pkg/observability"
)

// Client provides the HTTP plumbing for registry API clients.
// It applies default headers, follows a bounded number of redirects and maps
// failures to REGISTRY_ERROR. Requests are never retried.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given request timeout and default headers.
// A timeout of 0 disables it. Pass nil for headers if none are needed.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(timeout),
		headers: headers,
	}
}

// Get performs an HTTP GET and returns the full response body.
//
// Any status other than 200 yields an REGISTRY_ERROR wrapping an
// [errors.RegistryError] with the status; transport failures and redirect
// loops are REGISTRY_ERROR as well.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistry, err, "build request for %s", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeRegistry, err, "fetch %s", url)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(url, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistry, err, "read response from %s", url)
	}
	return body, nil
}

func checkStatus(url string, resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return errors.Wrap(errors.ErrCodeRegistry, &errors.RegistryError{
		URL:        url,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}, "registry returned %s", statusText(resp))
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
