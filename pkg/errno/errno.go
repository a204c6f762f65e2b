package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Decode tries to convert an error to Errno.
// Wrapped errors are unwrapped until a known Errno is found.
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, err.Error()
	}

	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, err.Error()
	}

	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrNotFound         = Errno{Code: 10003, Message: "Resource not found"}
)

// Intent lifecycle errors (20000+)
var (
	ErrRequest             = Errno{Code: 20101, Message: "backend refused to build transactions"}
	ErrSigningDeclined     = Errno{Code: 20102, Message: "signing declined"}
	ErrSubmission          = Errno{Code: 20103, Message: "transaction submission failed"}
	ErrConfirmationTimeout = Errno{Code: 20104, Message: "transaction not confirmed in time"}
	ErrPollIteration       = Errno{Code: 20105, Message: "pending transaction query failed"}
	ErrIntentInFlight      = Errno{Code: 20106, Message: "intent already in flight"}
	ErrTransactionRejected = Errno{Code: 20107, Message: "transaction rejected by the ledger"}
	ErrInvalidIntent       = Errno{Code: 20108, Message: "invalid intent"}
)

// Session and snapshot errors (30000+)
var (
	ErrNoAccount       = Errno{Code: 30101, Message: "no account selected"}
	ErrUnknownAccount  = Errno{Code: 30102, Message: "account not available in signer"}
	ErrSnapshotMissing = Errno{Code: 30201, Message: "pool snapshot field missing"}
)
