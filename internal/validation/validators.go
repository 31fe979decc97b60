// Package validation holds the per-field predicates used by the multi-step
// forms. Every validator returns "" for a valid value or a fixed
// human-readable message.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

const RequiredMessage = "This field is required."

var (
	nameRe  = regexp.MustCompile(`^[A-Za-zÑñ' .-]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Philippine mobile numbers: 09XXXXXXXXX or +639XXXXXXXXX.
	phoneRe = regexp.MustCompile(`^(09\d{9}|\+639\d{9})$`)
	zipRe   = regexp.MustCompile(`^\d{4}$`)
)

// Validator checks a single non-empty value.
type Validator func(value string) string

func Name(value string) string {
	if !nameRe.MatchString(value) {
		return "Name may only contain letters, spaces, hyphens, and apostrophes."
	}
	return ""
}

func Email(value string) string {
	if !emailRe.MatchString(value) {
		return "Please enter a valid email address."
	}
	return ""
}

func PHMobile(value string) string {
	if !phoneRe.MatchString(value) {
		return "Please enter a valid Philippine mobile number (09XXXXXXXXX or +639XXXXXXXXX)."
	}
	return ""
}

func BirthDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "Please enter a valid date (YYYY-MM-DD)."
	}
	if t.After(time.Now()) {
		return "Date of birth cannot be in the future."
	}
	return ""
}

func ZipCode(value string) string {
	if !zipRe.MatchString(value) {
		return "Zip code must be exactly 4 digits."
	}
	return ""
}

// PasswordReport breaks the strength check into the individual requirement
// flags the form renders as a checklist.
type PasswordReport struct {
	MinLength bool
	Uppercase bool
	Digit     bool
	Special   bool
}

func (r PasswordReport) OK() bool {
	return r.MinLength && r.Uppercase && r.Digit && r.Special
}

func CheckPasswordStrength(value string) PasswordReport {
	var r PasswordReport
	r.MinLength = len(value) >= 8
	for _, c := range value {
		switch {
		case unicode.IsUpper(c):
			r.Uppercase = true
		case unicode.IsDigit(c):
			r.Digit = true
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			r.Special = true
		}
	}
	return r
}

func Password(value string) string {
	if !CheckPasswordStrength(value).OK() {
		return "Password must be at least 8 characters with an uppercase letter, a number, and a special character."
	}
	return ""
}

// Field couples a form value with its validators. Optional fields are only
// validated when non-empty.
type Field struct {
	Name       string
	Value      string
	Required   bool
	Validators []Validator
}

// Result maps field names to their first error message.
type Result struct {
	Errors map[string]string
}

func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// Validate runs every applicable validator and collects the first error per
// field.
func Validate(fields []Field) Result {
	res := Result{Errors: map[string]string{}}
	for _, f := range fields {
		trimmed := strings.TrimSpace(f.Value)
		if trimmed == "" {
			if f.Required {
				res.Errors[f.Name] = RequiredMessage
			}
			continue
		}
		for _, v := range f.Validators {
			if msg := v(f.Value); msg != "" {
				res.Errors[f.Name] = msg
				break
			}
		}
	}
	return res
}
