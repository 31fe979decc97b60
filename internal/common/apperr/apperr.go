// Package apperr carries the provider-style error codes used across the
// service and maps them to the fixed user-facing messages shown in alerts.
package apperr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeWrongPassword       Code = "wrong-password"
	CodeWeakPassword        Code = "weak-password"
	CodeRequiresRecentLogin Code = "requires-recent-login"
	CodeEmailInUse          Code = "email-already-in-use"
	CodeUserNotFound        Code = "user-not-found"
	CodeStorageUnauthorized Code = "storage/unauthorized"
	CodeStorageCanceled     Code = "storage/canceled"
	CodeUnauthenticated     Code = "unauthenticated"
	CodePermissionDenied    Code = "permission-denied"
	CodeInvalidArgument     Code = "invalid-argument"
	CodeInternal            Code = "internal"
)

var messages = map[Code]string{
	CodeWrongPassword:       "Incorrect password. Please try again.",
	CodeWeakPassword:        "Password is too weak. Use at least 8 characters with an uppercase letter, a number, and a special character.",
	CodeRequiresRecentLogin: "For security, please sign in again before changing your password.",
	CodeEmailInUse:          "An account with this email already exists.",
	CodeUserNotFound:        "No account found for this email.",
	CodeStorageUnauthorized: "You are not allowed to upload this file.",
	CodeStorageCanceled:     "Upload was canceled.",
	CodeUnauthenticated:     "You must be signed in to do that.",
	CodePermissionDenied:    "You do not have permission to perform this action.",
	CodeInvalidArgument:     "The request is missing required information.",
	CodeInternal:            "Something went wrong. Please try again.",
}

const genericMessage = "Something went wrong. Please try again."

// Error pairs a code with the underlying cause. The cause is for logs only;
// users always see the fixed message for the code.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code) *Error {
	return &Error{Code: code}
}

func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// CodeOf extracts the code from err, defaulting to internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Message returns the user-facing string for err's code, falling back to a
// generic message for unrecognized codes.
func Message(err error) string {
	if msg, ok := messages[CodeOf(err)]; ok {
		return msg
	}
	return genericMessage
}

// HTTPStatus maps a code to the response status used by controllers.
func HTTPStatus(code Code) int {
	switch code {
	case CodeUnauthenticated, CodeWrongPassword, CodeRequiresRecentLogin:
		return http.StatusUnauthorized
	case CodePermissionDenied, CodeStorageUnauthorized:
		return http.StatusForbidden
	case CodeInvalidArgument, CodeWeakPassword:
		return http.StatusBadRequest
	case CodeUserNotFound:
		return http.StatusNotFound
	case CodeEmailInUse:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
