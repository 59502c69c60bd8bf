package shop

import (
	"errors"
	"fmt"
)

// ErrUnsupportedStatus is returned by UpdateOrderStatus before any network
// call when the requested transition is neither COMPLETED nor CANCELLED.
var ErrUnsupportedStatus = errors.New("unsupported order status")

type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindServerFault  ErrorKind = "server_fault"
	KindUpstream     ErrorKind = "upstream"
	KindNetwork      ErrorKind = "network"
)

// Error is the typed failure constructed once at the client boundary.
// Message carries the server-supplied text when the response body had one;
// callers decide what, if anything, to show the user.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("shop api: %s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("shop api: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("shop api: %s (status %d)", e.Kind, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind from any error in the chain. The second
// return is false for errors that did not originate in the client.
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}

func IsUnauthorized(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindUnauthorized
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status >= 500:
		return KindServerFault
	default:
		return KindUpstream
	}
}
