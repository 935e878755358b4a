package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a non-positive or malformed money amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates a debit would take a balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSameAccount indicates a transfer whose source and destination are identical.
var ErrSameAccount = errors.New("source and destination accounts are the same")

// ErrAlreadyDecided indicates a loan that has already left PENDING.
var ErrAlreadyDecided = errors.New("loan already decided")

// ErrInvalidApprover indicates a missing or empty approver identity.
var ErrInvalidApprover = errors.New("invalid approver")

// ErrForbidden indicates the caller identity lacks the capability for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrBusy indicates that an account lock could not be acquired in time.
var ErrBusy = errors.New("resource busy")

// ErrStoreUnavailable indicates the backing store could not complete the request.
var ErrStoreUnavailable = errors.New("store unavailable")

// kinds lists every sentinel in the order KindOf checks them.
var kinds = []struct {
	err  error
	name string
}{
	{ErrNotFound, "NOT_FOUND"},
	{ErrInvalidAmount, "INVALID_AMOUNT"},
	{ErrInsufficientFunds, "INSUFFICIENT_FUNDS"},
	{ErrSameAccount, "SAME_ACCOUNT"},
	{ErrDuplicate, "DUPLICATE_ID"},
	{ErrAlreadyDecided, "ALREADY_DECIDED"},
	{ErrInvalidApprover, "INVALID_APPROVER"},
	{ErrForbidden, "FORBIDDEN"},
	{ErrBusy, "BUSY"},
	{ErrStoreUnavailable, "STORE_UNAVAILABLE"},
	{ErrValidation, "VALIDATION"},
}

// AppError carries an error kind (one of the sentinels above), a human readable
// message and the underlying cause. errors.Is matches both the kind and the cause.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// NewNotFoundError is a shorthand for a not found AppError without a cause.
func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, nil)
}

func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the sentinel kind err belongs to, or nil if it matches none.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.err
		}
	}
	return nil
}

// KindName returns the stable machine readable name of err's kind ("INTERNAL" if unknown).
func KindName(err error) string {
	kind := KindOf(err)
	for _, k := range kinds {
		if k.err == kind {
			return k.name
		}
	}
	return "INTERNAL"
}
