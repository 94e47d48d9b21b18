package dashclient

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed API call for the UI.
type ErrorKind string

const (
	// KindServiceUnavailable maps HTTP 503, typically the SimpleFin bridge.
	KindServiceUnavailable ErrorKind = "SERVICE_UNAVAILABLE"
	// KindInternalError maps HTTP 500.
	KindInternalError ErrorKind = "INTERNAL_ERROR"
	// KindNotFound maps HTTP 404.
	KindNotFound ErrorKind = "NOT_FOUND"
	// KindInvalidRequest maps HTTP 400 on the create flows.
	KindInvalidRequest ErrorKind = "INVALID_REQUEST"
	// KindNetworkError marks transport-level failures with no response.
	KindNetworkError ErrorKind = "NETWORK_ERROR"
	// KindUnknown covers everything else.
	KindUnknown ErrorKind = "UNKNOWN_ERROR"
)

// Error is a classified API failure with a user-facing message.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Err is the underlying transport error for NETWORK_ERROR.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classifyStatus builds the Error for a non-2xx response. serverMsg is the
// error string from the response envelope, if any.
func classifyStatus(status int, serverMsg string) *Error {
	switch status {
	case 503:
		return &Error{
			Kind:    KindServiceUnavailable,
			Status:  status,
			Message: "SimpleFin sync service is currently unavailable",
		}
	case 500:
		return &Error{
			Kind:    KindInternalError,
			Status:  status,
			Message: "An internal server error occurred. Please try again later.",
		}
	case 404:
		return &Error{
			Kind:    KindNotFound,
			Status:  status,
			Message: "The requested resource was not found",
		}
	case 400:
		msg := serverMsg
		if msg == "" {
			msg = "The request was invalid. Please check your input."
		}
		return &Error{Kind: KindInvalidRequest, Status: status, Message: msg}
	default:
		msg := serverMsg
		if msg == "" {
			msg = "An unexpected error occurred"
		}
		return &Error{Kind: KindUnknown, Status: status, Message: msg}
	}
}

// networkError wraps a transport failure where no response was received.
func networkError(err error) *Error {
	return &Error{
		Kind:    KindNetworkError,
		Message: "Unable to connect to the server. Please check your connection.",
		Err:     err,
	}
}

// Kind extracts the classification from any error, defaulting to
// KindUnknown for errors that did not come from this package.
func Kind(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// decodeError is returned when the server envelope cannot be parsed.
func decodeError(err error) *Error {
	return &Error{
		Kind:    KindUnknown,
		Message: fmt.Sprintf("failed to decode server response: %v", err),
		Err:     err,
	}
}
