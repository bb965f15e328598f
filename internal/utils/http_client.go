package utils

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around resty.Client preconfigured for the document
// server: base URL, JSON content type, bearer token and request timeout.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client. Empty baseURL or token and a
// zero timeout leave the corresponding resty defaults untouched.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}
	if token != "" {
		client.SetAuthToken(token)
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

// SignBodies makes every request with a body carry the HMAC of the encoded
// body in HashHeader. The body is encoded here so the signed bytes are the
// bytes sent.
func (c *HTTPClient) SignBodies(hasher *Hasher) *HTTPClient {
	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Body == nil {
			return nil
		}

		payload, ok := req.Body.([]byte)
		if !ok {
			var err error
			if payload, err = json.Marshal(req.Body); err != nil {
				return fmt.Errorf("encode request body: %w", err)
			}
			req.SetBody(payload)
		}

		req.SetHeader(HashHeader, hasher.SumHex(payload))
		return nil
	})

	return c
}
