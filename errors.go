package graphql

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error codes stored under the "code" extension of client side errors.
const (
	ErrRequestError  = "request_error"
	ErrJsonEncode    = "json_encode_error"
	ErrJsonDecode    = "json_decode_error"
	ErrGraphQLEncode = "graphql_encode_error"
	ErrGraphQLDecode = "graphql_decode_error"
)

// Errors represents the "errors" array in a response from a GraphQL server.
// If returned via error interface, the slice is expected to contain at least 1 element.
//
// Specification: https://spec.graphql.org/October2021/#sec-Errors.
type Errors []Error

// Error is a single GraphQL error.
type Error struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
	Path       []any          `json:"path,omitempty"`
	Locations  []struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"locations"`

	cause error
}

// Error implements error interface.
func (e Error) Error() string {
	return fmt.Sprintf("Message: %s, Locations: %+v", e.Message, e.Locations)
}

// Unwrap returns the client side failure behind e, if any.
func (e Error) Unwrap() error { return e.cause }

// Error implements error interface.
func (e Errors) Error() string {
	b := strings.Builder{}
	for _, err := range e {
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the individual errors.
func (e Errors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// GetCode returns the error code from the extensions, or an empty string if
// not present.
func (e Error) GetCode() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

// HTTPInfo is the request or response information attached to an error in
// debug mode.
type HTTPInfo struct {
	Headers http.Header
	Body    string
}

// InternalExtensions contains the debugging information attached to an
// error in debug mode.
type InternalExtensions struct {
	Request  *HTTPInfo
	Response *HTTPInfo
	Error    error
}

// GetInternalExtensions returns the typed internal extensions, or nil if not
// present.
func (e Error) GetInternalExtensions() *InternalExtensions {
	internal, ok := e.Extensions["internal"].(map[string]any)
	if !ok {
		return nil
	}
	ext := &InternalExtensions{
		Request:  httpInfo(internal["request"]),
		Response: httpInfo(internal["response"]),
	}
	if err, ok := internal["error"].(error); ok {
		ext.Error = err
	}
	return ext
}

func httpInfo(v any) *HTTPInfo {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	info := &HTTPInfo{}
	info.Headers, _ = m["headers"].(http.Header)
	info.Body, _ = m["body"].(string)
	return info
}

// DecorateError attaches request and response information to err when
// debug mode is enabled. Otherwise err is returned unchanged.
func (c *Client) DecorateError(
	err Error,
	req *http.Request,
	resp *http.Response,
	reqBody,
	respBody io.Reader,
) Error {
	if !c.debug {
		return err
	}
	if req != nil && reqBody != nil {
		err = err.withDebugInfo("request", req.Header, reqBody)
	}
	if resp != nil && respBody != nil {
		err = err.withDebugInfo("response", resp.Header, respBody)
	}
	return err
}

// NewRequestError creates a new error with the given code, decorated as by
// DecorateError.
func (c *Client) NewRequestError(
	code string,
	err error,
	req *http.Request,
	resp *http.Response,
	reqBody,
	respBody io.Reader,
) Error {
	return c.DecorateError(newError(code, err), req, resp, reqBody, respBody)
}

func newError(code string, err error) Error {
	return Error{
		Message: err.Error(),
		Extensions: map[string]any{
			"code": code,
		},
		cause: err,
	}
}

func newSimpleErrors(code string, err error) Errors {
	return Errors{newError(code, err)}
}

// withDebugInfo stores headers and the body read from bodyReader under the
// "internal" extension, keyed by infoType ("request" or "response").
func (e Error) withDebugInfo(infoType string, headers http.Header, bodyReader io.Reader) Error {
	internal, ok := e.Extensions["internal"].(map[string]any)
	if !ok {
		internal = make(map[string]any)
	}
	bodyBytes, err := io.ReadAll(bodyReader)
	if err != nil {
		internal["error"] = err
	} else {
		internal[infoType] = map[string]any{
			"headers": headers,
			"body":    string(bodyBytes),
		}
	}

	if e.Extensions == nil {
		e.Extensions = make(map[string]any)
	}
	e.Extensions["internal"] = internal
	return e
}
