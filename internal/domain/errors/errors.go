package errors

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrEmptyOrder           = errors.New("order cannot be empty")
	ErrShopRequired         = errors.New("shop is required")
	ErrLocationRequired     = errors.New("city, area and shop are required")
	ErrQuantityLimit        = errors.New("quantity exceeds limit")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentMethod = errors.New("only cash on delivery is available")
	ErrInvalidSubcategory   = errors.New("product subcategory does not belong to its category")
	ErrBackendUnavailable   = errors.New("backend unavailable")
)

// ValidationError carries a user-facing message for rejected input.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid wraps a sentinel with a user-facing message.
func Invalid(err error, msg string) error {
	if msg == "" {
		msg = err.Error()
	}
	return &ValidationError{Msg: msg, Err: err}
}

// IsValidation reports whether err was produced by input validation.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// OperationError attaches a user-facing message to a failed backend call.
type OperationError struct {
	Msg string
	Err error
}

func (e *OperationError) Error() string {
	return e.Msg + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Describe wraps err with msg; nil stays nil.
func Describe(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &OperationError{Msg: msg, Err: err}
}

// Message returns the user-facing text carried by err, if any.
func Message(err error) (string, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Msg, true
	}
	var op *OperationError
	if errors.As(err, &op) {
		return op.Msg, true
	}
	return "", false
}
