package gateway

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies gateway failures
type Kind int

const (
	// KindNetwork covers transport failures and unexpected backend errors
	KindNetwork Kind = iota
	// KindAuth covers bad credentials, weak passwords, taken emails and
	// permission denials
	KindAuth
	// KindNotFound means the addressed document does not exist
	KindNotFound
	// KindInvalid means the request was malformed, such as a bad path
	KindInvalid
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	default:
		return "network"
	}
}

// Error is returned by every gateway operation. Message is meant for users.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying backend error
func (e *Error) Unwrap() error { return e.Err }

// Cause returns the underlying backend error for pkg/errors
func (e *Error) Cause() error { return e.Err }

func newError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// AuthError builds an authentication failure with a user-facing message
func AuthError(op, message string) *Error {
	return newError(KindAuth, op, message, nil)
}

// NotFoundError builds a missing-document failure
func NotFoundError(op, path string) *Error {
	return newError(KindNotFound, op, "no document at "+path, nil)
}

// NetworkError wraps a transport failure
func NetworkError(op string, err error) *Error {
	return newError(KindNetwork, op, "the service could not be reached", err)
}

// InvalidError builds a malformed-request failure
func InvalidError(op, message string) *Error {
	return newError(KindInvalid, op, message, nil)
}

// KindOf returns the kind of a gateway error anywhere in err's chain, and
// false for errors that did not come from the gateway.
func KindOf(err error) (Kind, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind, true
	}
	return KindNetwork, false
}

// IsAuth reports whether err is an authentication failure
func IsAuth(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindAuth
}

// IsNotFound reports whether err is a missing document
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// IsNetwork reports whether err is a transport failure
func IsNetwork(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNetwork
}

// UserMessage returns the text to show for err
func UserMessage(err error) string {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
