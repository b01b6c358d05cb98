// Package apperror defines the typed errors returned by the service layer.
// Handlers map them to HTTP responses through utils.ServiceErrorResponse.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
	KindForbidden
	KindPartialFailure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindPartialFailure:
		return "partial_failure"
	default:
		return "internal"
	}
}

const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeInternal               = "INTERNAL_ERROR"
	CodeDuplicateEmail         = "DUPLICATE_EMAIL"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeInvalidOrExpiredToken  = "INVALID_OR_EXPIRED_TOKEN"
	CodeInvalidOrExpiredInvite = "INVALID_OR_EXPIRED_INVITATION"
	CodeUserMustRegisterFirst  = "USER_MUST_REGISTER_FIRST"
	CodeAlreadyMember          = "ALREADY_MEMBER"
	CodeNoFileUploaded         = "NO_FILE_UPLOADED"
	CodeUnsupportedExtension   = "UNSUPPORTED_EXTENSION"
	CodeInvalidMimeType        = "INVALID_MIME_TYPE"
	CodeFileTooLarge           = "FILE_TOO_LARGE"
	CodePartialFailure         = "PARTIAL_FAILURE"
)

// Error is a classified service error. Two errors are equal under errors.Is
// when their codes match, so wrapped copies still match the sentinels below.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy with a request-specific message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// Wrap returns a copy carrying the underlying cause.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrValidation             = New(KindValidation, CodeValidation, "validation failed")
	ErrNotFound               = New(KindNotFound, CodeNotFound, "resource not found")
	ErrUnauthorized           = New(KindUnauthorized, CodeUnauthorized, "unauthorized")
	ErrForbidden              = New(KindForbidden, CodeForbidden, "forbidden")
	ErrInternal               = New(KindInternal, CodeInternal, "internal server error")
	ErrDuplicateEmail         = New(KindConflict, CodeDuplicateEmail, "email is already registered")
	ErrInvalidCredentials     = New(KindUnauthorized, CodeInvalidCredentials, "invalid email or password")
	ErrInvalidOrExpiredToken  = New(KindValidation, CodeInvalidOrExpiredToken, "invalid or expired token")
	ErrInvalidOrExpiredInvite = New(KindValidation, CodeInvalidOrExpiredInvite, "invalid or expired invitation")
	ErrUserMustRegisterFirst  = New(KindValidation, CodeUserMustRegisterFirst, "user must register first")
	ErrAlreadyMember          = New(KindConflict, CodeAlreadyMember, "user is already a member of this project")
	ErrNoFileUploaded         = New(KindValidation, CodeNoFileUploaded, "no file uploaded")
	ErrUnsupportedExtension   = New(KindValidation, CodeUnsupportedExtension, "file extension is not allowed")
	ErrInvalidMimeType        = New(KindValidation, CodeInvalidMimeType, "file content type is not allowed")
	ErrFileTooLarge           = New(KindValidation, CodeFileTooLarge, "file exceeds the 10 MB limit")
	ErrPartialFailure         = New(KindPartialFailure, CodePartialFailure, "operation completed with errors")
)

// NotFound builds a NotFound error naming the missing entity.
func NotFound(entity string) *Error {
	return ErrNotFound.WithMessage(entity + " not found")
}

// Validation builds a validation error with a specific message.
func Validation(msg string) *Error {
	return ErrValidation.WithMessage(msg)
}

// Forbidden builds a Forbidden error with a specific message.
func Forbidden(msg string) *Error {
	return ErrForbidden.WithMessage(msg)
}

// Internal wraps an unexpected error. The cause is logged, never returned to clients.
func Internal(err error) *Error {
	return ErrInternal.Wrap(err)
}

// As extracts the *Error from err. Unclassified errors are reported as internal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// KindOf reports the kind of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	return As(err).Kind
}
