package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Response is a completed HTTP exchange with its body already read.
//
// Payload holds the parsed body: the JSON value when the body is JSON
// (declared or not), the raw text otherwise, nil for an empty body.
type Response struct {
	StatusCode int
	StatusText string
	Header     http.Header
	Body       []byte
	Payload    any
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Empty reports whether the response carried no body.
func (r *Response) Empty() bool {
	return len(strings.TrimSpace(string(r.Body))) == 0
}

// Decode unmarshals the body into out. A text body decodes into *string.
func (r *Response) Decode(out any) error {
	if out == nil || r.Empty() {
		return nil
	}
	if text, ok := r.Payload.(string); ok {
		if sp, ok := out.(*string); ok {
			*sp = text
			return nil
		}
		return errors.New("api: response body is not json")
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func newResponse(res *http.Response, body []byte) *Response {
	return &Response{
		StatusCode: res.StatusCode,
		StatusText: statusText(res),
		Header:     res.Header,
		Body:       body,
		Payload:    parsePayload(body),
	}
}

// parsePayload decodes the body as JSON whatever the declared content type:
// some backend error paths send JSON as text/plain. A body that is not valid
// JSON, declared or not, is kept as text.
func parsePayload(body []byte) any {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

func statusText(res *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if text == "" {
		text = http.StatusText(res.StatusCode)
	}
	return text
}
