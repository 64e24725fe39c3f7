// Package client is the contract-driven HTTP consumer. UI code names an
// operation and hands over a typed body; the client resolves method and
// path from the registry, validates the body locally before spending a
// round trip, performs exactly one network call, and validates the
// response against the schema registered for its status. Callers only
// ever see the contract error taxonomy, never a raw transport panic.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agrovista/smart-farm-api/internal/contract"
	"github.com/agrovista/smart-farm-api/internal/model"
)

// Client invokes registered operations against one base URL. Invocations
// are independent; no coalescing or caching is layered in here.
type Client struct {
	BaseURL  string
	Registry *contract.Registry
	HTTP     *http.Client
}

// New builds a client with a conservative default timeout.
func New(baseURL string, reg *contract.Registry) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Registry: reg,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Options carries the per-invocation pieces: values for :name path
// parameters, the input body (query parameters for GET operations), and
// an optional bearer token.
type Options struct {
	PathParams map[string]string
	Body       any
	Token      string
}

// Result is a validated response: the raw bytes plus the value decoded
// through the schema registered for Status.
type Result struct {
	Status int
	Raw    []byte
	Value  any
}

// StatusError is a registered non-2xx outcome: an expected business
// failure (bad credentials, duplicate email), distinct from contract
// drift or transport trouble.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// Invoke runs one operation. The body, if present, must pass the
// operation's input schema before any network call is made.
func (c *Client) Invoke(ctx context.Context, key string, opts Options) (*Result, error) {
	op, err := c.Registry.Resolve(key)
	if err != nil {
		return nil, err
	}
	if opts.Body != nil && op.Input != nil {
		if err := op.Input.Validate(opts.Body); err != nil {
			return nil, &contract.InvalidRequestError{Key: key, Err: err}
		}
	}

	path, err := op.BuildPath(opts.PathParams)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, op, path, opts)
	if err != nil {
		return nil, err
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &contract.TransportError{Key: key, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &contract.TransportError{Key: key, Err: err}
	}

	schema, ok := op.Responses[resp.StatusCode]
	if !ok {
		return nil, &contract.ContractViolationError{Key: key, Status: resp.StatusCode, Body: raw}
	}
	val, err := schema.Decode(raw)
	if err != nil {
		return nil, &contract.ContractViolationError{Key: key, Status: resp.StatusCode, Body: raw, Err: err}
	}
	return &Result{Status: resp.StatusCode, Raw: raw, Value: val}, nil
}

func (c *Client) newRequest(ctx context.Context, op *contract.Operation, path string, opts Options) (*http.Request, error) {
	target := c.BaseURL + path
	if op.Method == http.MethodGet || op.Method == http.MethodDelete {
		if opts.Body != nil {
			q, err := encodeQuery(opts.Body)
			if err != nil {
				return nil, &contract.InvalidRequestError{Key: op.Key, Err: err}
			}
			if enc := q.Encode(); enc != "" {
				target += "?" + enc
			}
		}
		return http.NewRequestWithContext(ctx, op.Method, target, nil)
	}

	var body io.Reader
	if opts.Body != nil {
		buf, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &contract.InvalidRequestError{Key: op.Key, Err: err}
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, op.Method, target, body)
	if err != nil {
		return nil, err
	}
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// encodeQuery flattens a tagged struct into query parameters via its json
// tags, skipping empty optional fields.
func encodeQuery(body any) (url.Values, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil, fmt.Errorf("query input must be an object: %w", err)
	}
	q := url.Values{}
	for k, v := range fields {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val != "" {
				q.Set(k, val)
			}
		case float64:
			q.Set(k, strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", val), "0"), "."))
		case bool:
			q.Set(k, fmt.Sprintf("%t", val))
		default:
			return nil, fmt.Errorf("query field %q is not a scalar", k)
		}
	}
	return q, nil
}

// Call is the typed wrapper around Invoke. A registered error status
// comes back as *StatusError; a decoded body of the wrong Go type is
// reported as contract drift.
func Call[T any](ctx context.Context, c *Client, key string, opts Options) (T, error) {
	var zero T
	res, err := c.Invoke(ctx, key, opts)
	if err != nil {
		return zero, err
	}
	if em, ok := res.Value.(*model.ErrorMessage); ok && res.Status >= 400 {
		return zero, &StatusError{Status: res.Status, Message: em.Message}
	}
	v, ok := res.Value.(*T)
	if !ok {
		return zero, &contract.ContractViolationError{
			Key:    key,
			Status: res.Status,
			Body:   res.Raw,
			Err:    fmt.Errorf("decoded %T, caller expects %T", res.Value, &zero),
		}
	}
	return *v, nil
}
