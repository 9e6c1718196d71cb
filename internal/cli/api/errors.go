package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an API failure for the presentation layer.
type Kind int

const (
	KindTransport  Kind = iota // запрос не дошёл до сервера или истёк таймаут
	KindNotFound               // 404
	KindConflict               // 409
	KindValidation             // 400, 422
	KindServer                 // прочие не-2xx
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "server"
	}
}

// Error is the single error type returned by resource clients.
type Error struct {
	Op     string // e.g. "DELETE /tags/3"
	Status int    // 0 for transport failures
	Detail string // human-readable message, backend "detail" when available
	Err    error  // underlying transport error, if any
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Status, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Kind() Kind {
	switch {
	case e.Status == 0:
		return KindTransport
	case e.Status == http.StatusNotFound:
		return KindNotFound
	case e.Status == http.StatusConflict:
		return KindConflict
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

// Timeout reports whether the request was aborted by a deadline.
func (e *Error) Timeout() bool {
	return e.Err != nil && errors.Is(e.Err, context.DeadlineExceeded)
}

// KindOf returns the kind of err, or KindServer when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return KindServer
}

// Message returns the text to show to an operator: the backend detail when the
// error came from the API, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Timeout() {
			return "request timed out"
		}
		return apiErr.Detail
	}
	return err.Error()
}

// decodeDetail вытаскивает поле detail из тела ошибки. detail может быть строкой
// или списком объектов {msg, loc} (ошибки валидации бэкенда).
func decodeDetail(status int, body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", status)
}
