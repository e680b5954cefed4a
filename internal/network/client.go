// Package network is the HTTP transport used to reach a remote jobs backend.
package network

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

var ErrRequestFailed = errors.New("request failed")

const userAgent = "jobboard/1 (+https://github.com/MrJJimenez/jobboard)"

type Client struct {
	http    tls_client.HttpClient
	rotator *Rotator
}

func NewClient(rotator *Rotator, timeout time.Duration) (*Client, error) {
	if rotator == nil {
		return nil, ErrNoEndpoints
	}
	seconds := int(timeout / time.Second)
	if seconds <= 0 {
		seconds = 30
	}

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(seconds),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:    client,
		rotator: rotator,
	}, nil
}

// Get issues a GET for path on the next available endpoint. The request is
// bound to ctx, so cancelling ctx aborts it.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*fhttp.Response, error) {
	endpoint, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}

	target := ResolveURL(endpoint, path, query)
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRequestFailed, endpoint.Host, err)
	}
	c.rotator.Report(endpoint, resp.StatusCode)
	return resp, nil
}

// ResolveURL joins an endpoint base URL with path and query.
func ResolveURL(endpoint *url.URL, path string, query url.Values) string {
	u := *endpoint
	u.Path = endpoint.Path + path
	u.RawQuery = query.Encode()
	return u.String()
}
