package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	err := Wrap(CodeWrongPassword, errors.New("bcrypt mismatch"))
	if CodeOf(err) != CodeWrongPassword {
		t.Errorf("CodeOf = %q", CodeOf(err))
	}
	wrapped := fmt.Errorf("login: %w", err)
	if CodeOf(wrapped) != CodeWrongPassword {
		t.Errorf("CodeOf wrapped = %q", CodeOf(wrapped))
	}
	if CodeOf(errors.New("plain")) != CodeInternal {
		t.Error("plain error should map to internal")
	}
}

func TestMessageFallback(t *testing.T) {
	if Message(New(Code("made-up-code"))) != "Something went wrong. Please try again." {
		t.Error("unrecognized code should fall back to the generic message")
	}
	if Message(New(CodeRequiresRecentLogin)) == "Something went wrong. Please try again." {
		t.Error("known code should have its own message")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeUnauthenticated, http.StatusUnauthorized},
		{CodePermissionDenied, http.StatusForbidden},
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeEmailInUse, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{Code("made-up-code"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
