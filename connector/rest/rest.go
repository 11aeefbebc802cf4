// Package rest implements a connector for JSON REST resources in the
// style of Django REST framework.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	graphql "github.com/llehouerou/crudl-graphql"
	"github.com/llehouerou/crudl-graphql/connector"
	"github.com/llehouerou/crudl-graphql/pkg/jsonutil"
	"github.com/llehouerou/crudl-graphql/types"
)

// Query parameters sent by Read.
const (
	OrderingParam = "ordering"
	PageParam     = "page"
)

// nonFieldErrorsKey is the key Django REST framework uses for errors not
// tied to a field.
const nonFieldErrorsKey = "non_field_errors"

// HTTPError is returned for responses with a status other than 2xx, 400
// and 404.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Connector reads and writes one REST resource.
type Connector struct {
	baseURL    string
	path       string
	httpClient *http.Client
	header     http.Header
	logger     zerolog.Logger
}

var _ connector.Connector = (*Connector)(nil)

// Option configures a Connector.
type Option func(*Connector)

// WithHTTPClient sets the HTTP client. The default is http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(cx *Connector) { cx.httpClient = c }
}

// WithHeader adds a header to every request, e.g. an Authorization token.
func WithHeader(key, value string) Option {
	return func(cx *Connector) { cx.header.Add(key, value) }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cx *Connector) { cx.logger = logger }
}

// New returns a connector for the resource at baseURL joined with path.
// Path segments starting with ":" are replaced with the request parameter
// of the same name, e.g. "categories/:id/".
func New(baseURL, path string, opts ...Option) *Connector {
	cx := &Connector{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       "/" + strings.TrimLeft(path, "/"),
		httpClient: http.DefaultClient,
		header:     http.Header{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cx)
	}
	return cx
}

// Read GETs the resource. Filters and page arguments become query
// parameters and the sort specification the "ordering" parameter.
//
// A JSON array or a {count, next, previous, results} envelope yields a
// []connector.Item; the envelope also sets a Numbered pagination. Any
// other object yields a connector.Item.
func (c *Connector) Read(ctx context.Context, req *connector.Request) (connector.Response, error) {
	u, err := c.url(req)
	if err != nil {
		return connector.Response{}, err
	}
	query := u.Query()
	addArgs(query, req.FilterArgs())
	addArgs(query, req.PageArgs())
	if ordering := graphql.OrderingParam(req.SortFields()); ordering != "" {
		query.Set(OrderingParam, ordering)
	}
	u.RawQuery = query.Encode()

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return connector.Response{}, err
	}
	return decodeRead(body)
}

// Create POSTs the request data.
func (c *Connector) Create(ctx context.Context, req *connector.Request) (connector.Response, error) {
	return c.write(ctx, http.MethodPost, req)
}

// Update PUTs the request data.
func (c *Connector) Update(ctx context.Context, req *connector.Request) (connector.Response, error) {
	return c.write(ctx, http.MethodPut, req)
}

// Delete sends a DELETE. The response data is the decoded body, if any.
func (c *Connector) Delete(ctx context.Context, req *connector.Request) (connector.Response, error) {
	u, err := c.url(req)
	if err != nil {
		return connector.Response{}, err
	}
	body, err := c.do(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return connector.Response{}, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return connector.Response{}, nil
	}
	return decodeItem(body)
}

func (c *Connector) write(ctx context.Context, method string, req *connector.Request) (connector.Response, error) {
	u, err := c.url(req)
	if err != nil {
		return connector.Response{}, err
	}
	var data map[string]any
	if req != nil {
		data = req.Data
	}
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return connector.Response{}, fmt.Errorf("encoding %s %s: %w", method, c.path, err)
	}
	body, err := c.do(ctx, method, u, payload)
	if err != nil {
		return connector.Response{}, err
	}
	return decodeItem(body)
}

func (c *Connector) url(req *connector.Request) (*url.URL, error) {
	segments := strings.Split(c.path, "/")
	for i, seg := range segments {
		name, ok := strings.CutPrefix(seg, ":")
		if !ok {
			continue
		}
		value := req.Param(name)
		if value == "" {
			return nil, fmt.Errorf("%s: missing parameter %q", c.path, name)
		}
		segments[i] = url.PathEscape(value)
	}
	u, err := url.Parse(c.baseURL + strings.Join(segments, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.path, err)
	}
	return u, nil
}

func (c *Connector) do(ctx context.Context, method string, u *url.URL, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range c.header {
		req.Header[k] = append([]string(nil), vs...)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("url", u.String()).Msg("rest request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("url", u.String()).Msg("rest request failed")
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBody, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, u.Path, connector.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest:
		c.logger.Debug().Str("method", method).Str("url", u.String()).Msg("rest request rejected")
		return nil, validationError(respBody)
	}
	c.logger.Error().Int("status", resp.StatusCode).Str("method", method).Str("url", u.String()).Msg("rest request failed")
	return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
}

func addArgs(query url.Values, args types.Args) {
	args.Each(func(name string, value any) {
		if value == nil {
			return
		}
		query.Set(name, fmt.Sprint(value))
	})
}

// validationError decodes a 400 body of the form
// {"field": ["message", ...], "non_field_errors": [...]}.
func validationError(body []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: string(body)}
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		if k == nonFieldErrorsKey {
			k = types.NonFieldErrorKey
		}
		fields[k] = message(v)
	}
	return connector.NewValidationError(fields)
}

func message(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, message(p))
		}
		return strings.Join(parts, " ")
	}
	return fmt.Sprint(v)
}

type envelope struct {
	Count    *int             `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []connector.Item `json:"results"`
}

func decodeRead(body []byte) (connector.Response, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		items := []connector.Item{}
		if err := jsonutil.Unmarshal(trimmed, &items); err != nil {
			return connector.Response{}, fmt.Errorf("%w: %v", jsonutil.ErrMalformedResponse, err)
		}
		return connector.Response{Data: items}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return connector.Response{}, fmt.Errorf("%w: %v", jsonutil.ErrMalformedResponse, err)
	}
	if _, ok := fields["results"]; !ok {
		return decodeItem(trimmed)
	}

	var env envelope
	if err := jsonutil.Unmarshal(trimmed, &env); err != nil {
		return connector.Response{}, fmt.Errorf("%w: %v", jsonutil.ErrMalformedResponse, err)
	}
	if env.Results == nil {
		env.Results = []connector.Item{}
	}
	pagination, err := numbered(env)
	if err != nil {
		return connector.Response{}, err
	}
	return connector.Response{Data: env.Results, Pagination: pagination}, nil
}

func decodeItem(body []byte) (connector.Response, error) {
	var item connector.Item
	if err := jsonutil.Unmarshal(body, &item); err != nil {
		return connector.Response{}, fmt.Errorf("%w: %v", jsonutil.ErrMalformedResponse, err)
	}
	if item == nil {
		return connector.Response{}, connector.ErrNotFound
	}
	return connector.Response{Data: item}, nil
}
