package graphql

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/llehouerou/crudl-graphql/pkg/jsonutil"
)

// RequestModifier allows you to tweak the HTTP request, e.g. to set
// authentication headers.
type RequestModifier func(*http.Request)

// Client executes pre-built GraphQL documents against a server.
//
// The With* methods return a new Client and leave the receiver unchanged:
//
//	client = client.WithDebug(true).WithRequestModifier(modifier)
type Client struct {
	url             string // GraphQL server URL.
	httpClient      *http.Client
	requestModifier RequestModifier
	debug           bool
	logger          zerolog.Logger
}

// NewClient creates a GraphQL client targeting the specified GraphQL server URL.
// If httpClient is nil, then http.DefaultClient is used.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:        url,
		httpClient: httpClient,
		logger:     zerolog.Nop(),
	}
}

// URL returns the server URL.
func (c *Client) URL() string { return c.url }

// Exec executes query and decodes the data object of the response into v.
// The data decoded before a GraphQL error is kept in v.
func (c *Client) Exec(
	ctx context.Context,
	query string,
	v any,
	variables map[string]any,
) error {
	data, resp, respBody, errs := c.request(ctx, query, variables)
	return c.processResponse(v, data, resp, respBody, errs)
}

// ExecRaw executes query and returns the raw data object of the response.
func (c *Client) ExecRaw(
	ctx context.Context,
	query string,
	variables map[string]any,
) ([]byte, error) {
	data, _, _, errs := c.request(ctx, query, variables)
	if len(errs) > 0 {
		return data, errs
	}
	return data, nil
}

func (c *Client) request(
	ctx context.Context,
	query string,
	variables map[string]any,
) ([]byte, *http.Response, []byte, Errors) {
	c.logger.Debug().Str("url", c.url).Str("query", query).Msg("executing graphql request")

	request, reqBody, err := c.BuildRequest(ctx, query, variables)
	var encodeErr Error
	if errors.As(err, &encodeErr) {
		return nil, nil, nil, Errors{encodeErr}
	}
	if err != nil {
		e := c.NewRequestError(
			ErrRequestError,
			fmt.Errorf("problem constructing request: %w", err),
			request,
			nil,
			bytes.NewReader(reqBody),
			nil,
		)
		return nil, nil, nil, Errors{e}
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Error().Err(err).Str("url", c.url).Msg("graphql request failed")
		e := c.NewRequestError(ErrRequestError, err, request, nil, bytes.NewReader(reqBody), nil)
		return nil, nil, nil, Errors{e}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error().Int("status", resp.StatusCode).Str("url", c.url).Msg("graphql request rejected")
		e := c.NewRequestError(
			ErrRequestError,
			fmt.Errorf("%v; body: %q", resp.Status, body),
			request,
			nil,
			bytes.NewReader(reqBody),
			nil,
		)
		return nil, nil, nil, Errors{e}
	}

	r, err := handleGzipResponse(resp, resp.Body)
	if err != nil {
		return nil, nil, nil, newSimpleErrors(ErrJsonDecode, err)
	}
	defer func() { _ = r.Close() }()

	// The body is kept around for error decoration.
	respBody, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, nil, newSimpleErrors(ErrJsonDecode, err)
	}

	rawData, gqlErrors := c.DecodeResponse(bytes.NewReader(respBody))
	if len(gqlErrors) == 0 {
		return rawData, resp, respBody, nil
	}

	if gqlErrors[0].GetCode() == ErrJsonDecode {
		e := c.NewRequestError(
			ErrJsonDecode,
			fmt.Errorf("%s", gqlErrors[0].Message),
			request,
			resp,
			bytes.NewReader(reqBody),
			bytes.NewReader(respBody),
		)
		return nil, nil, nil, Errors{e}
	}

	c.logger.Debug().Int("errors", len(gqlErrors)).Str("first", gqlErrors[0].Message).Msg("graphql response has errors")
	if gqlErrors[0].Extensions == nil || gqlErrors[0].Extensions["internal"] == nil {
		gqlErrors[0] = c.DecorateError(
			gqlErrors[0],
			request,
			resp,
			bytes.NewReader(reqBody),
			bytes.NewReader(respBody),
		)
	}
	return rawData, resp, respBody, gqlErrors
}

// handleGzipResponse wraps the response body reader with a gzip decompressor
// if the Content-Encoding header indicates gzip compression.
func handleGzipResponse(resp *http.Response, body io.Reader) (io.ReadCloser, error) {
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gr, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("problem trying to create gzip reader: %w", err)
		}
		return gr, nil
	}
	return io.NopCloser(body), nil
}

// BuildRequest constructs the HTTP request carrying query and variables.
// It returns the request body bytes too, for error decoration. Variables
// that cannot be encoded yield an Error coded ErrJsonEncode.
func (c *Client) BuildRequest(
	ctx context.Context,
	query string,
	variables map[string]any,
) (*http.Request, []byte, error) {
	in := struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables,omitempty"`
	}{
		Query:     query,
		Variables: variables,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(in); err != nil {
		return nil, nil, newError(ErrJsonEncode, fmt.Errorf("failed to encode request: %w", err))
	}

	reqBody := buf.Bytes()
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, reqBody, err
	}
	request.Header.Add("Content-Type", "application/json")

	if c.requestModifier != nil {
		c.requestModifier(request)
	}
	return request, reqBody, nil
}

// DecodeResponse decodes a GraphQL JSON response into raw data and errors.
func (c *Client) DecodeResponse(reader io.Reader) ([]byte, Errors) {
	var out struct {
		Data   *json.RawMessage
		Errors Errors
	}
	if err := json.NewDecoder(reader).Decode(&out); err != nil {
		return nil, newSimpleErrors(ErrJsonDecode, err)
	}

	var rawData []byte
	if out.Data != nil && len(*out.Data) > 0 && string(*out.Data) != "null" {
		rawData = *out.Data
	}
	if len(out.Errors) > 0 {
		return rawData, out.Errors
	}
	return rawData, nil
}

func (c *Client) processResponse(
	v any,
	data []byte,
	resp *http.Response,
	respBody []byte,
	errs Errors,
) error {
	if len(data) > 0 && v != nil {
		if err := jsonutil.Unmarshal(data, v); err != nil {
			we := c.DecorateError(
				newError(ErrGraphQLDecode, err),
				nil,
				resp,
				nil,
				bytes.NewReader(respBody),
			)
			errs = append(errs, we)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// clone creates a copy of the Client with all fields preserved.
func (c *Client) clone() *Client {
	clone := *c
	return &clone
}

// WithRequestModifier returns a new Client with the request modifier set,
// e.g. to send per-tenant authentication headers over the same
// http.Client.
func (c *Client) WithRequestModifier(f RequestModifier) *Client {
	clone := c.clone()
	clone.requestModifier = f
	return clone
}

// WithDebug returns a new Client with debug mode enabled or disabled.
// In debug mode request and response bodies are attached to the
// extensions of returned errors.
func (c *Client) WithDebug(debug bool) *Client {
	clone := c.clone()
	clone.debug = debug
	return clone
}

// WithLogger returns a new Client logging through logger.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	clone := c.clone()
	clone.logger = logger
	return clone
}
