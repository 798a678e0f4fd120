// datatrans-payment-demo/pkg/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error taxonomy shared by the front end. Codes travel with the error so
// handlers can pick an outcome view or HTTP status without string matching.
const (
	CodeValidation         = "validation_error"
	CodeBackendUnavailable = "backend_unavailable"
	CodeBackendRejected    = "backend_rejected"
	CodeNotFound           = "not_found"
	CodeRelayUpstream      = "relay_upstream_error"
)

type E struct {
	Code    string
	Message string
	Err     error
}

func (e E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e E) Unwrap() error { return e.Err }

func Wrap(code, msg string, err error) error {
	return E{Code: code, Message: msg, Err: err}
}

func New(code, msg string) error {
	return E{Code: code, Message: msg}
}

// CodeOf returns the code of the first E in err's chain, or "" when there is none.
func CodeOf(err error) string {
	var e E
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// MessageOf returns the human-readable message of the first E in err's chain.
func MessageOf(err error) string {
	var e E
	if stderrors.As(err, &e) {
		return e.Message
	}
	return ""
}

func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}
