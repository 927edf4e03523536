package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoBaseURL       = errors.New("api base url is not configured")
	ErrSessionExpired  = errors.New("session expired")
	ErrNoRefreshToken  = errors.New("no refresh token")
	ErrRefreshRejected = errors.New("refresh token rejected")
	ErrMalformedTokens = errors.New("response carries no token pair")
)

// APIError is a failed call as seen by the caller: the HTTP status (0 when
// no request was made), a human-readable message and the parsed payload.
type APIError struct {
	Status  int
	Message string
	Details any
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "api: " + e.Message
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// newResponseError builds the error for a non-2xx response. The message is
// taken from the payload's message, detail or error field, in that order,
// then from the status text.
func newResponseError(res *Response) *APIError {
	msg := payloadMessage(res.Payload)
	if msg == "" {
		msg = res.StatusText
	}
	if msg == "" {
		msg = "request error"
	}
	return &APIError{Status: res.StatusCode, Message: msg, Details: res.Payload}
}

func newSessionError(cause error) *APIError {
	msg := ErrSessionExpired.Error()
	if errors.Is(cause, ErrNoRefreshToken) {
		msg = ErrNoRefreshToken.Error()
	}
	return &APIError{Status: 401, Message: msg, Err: cause}
}

func payloadMessage(payload any) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		if s := describe(m[key]); s != "" {
			return s
		}
	}
	return ""
}

// describe renders a payload field as text. Validation-style details (lists
// of {"msg": ...}) are joined with commas.
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
	case map[string]any:
		if s, ok := t["msg"].(string); ok && s != "" {
			return s
		}
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := describe(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
