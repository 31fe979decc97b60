package services

import (
	"testing"

	authmodels "github.com/bitecare/clinic-backend/internal/auth/models"
)

func TestValidateProfileFieldsRejectsBlankedIdentity(t *testing.T) {
	errs := ValidateProfileFields(map[string]string{
		"firstName": "",
		"lastName":  "",
		"birthDate": "",
	})
	for _, field := range []string{"firstName", "lastName", "birthDate"} {
		if errs[field] == "" {
			t.Errorf("blanking %s must produce a field error", field)
		}
	}
}

func TestValidateProfileFieldsAllowsClearingOptional(t *testing.T) {
	errs := ValidateProfileFields(map[string]string{
		"middleName": "",
		"zipCode":    "",
	})
	if len(errs) != 0 {
		t.Errorf("clearing optional fields should pass, got %v", errs)
	}
}

func TestValidateProfileFieldsSkipsUntouched(t *testing.T) {
	errs := ValidateProfileFields(map[string]string{"phone": "09171234567"})
	if len(errs) != 0 {
		t.Errorf("valid phone-only edit should pass, got %v", errs)
	}
	errs = ValidateProfileFields(map[string]string{"phone": "12345"})
	if errs["phone"] == "" {
		t.Error("invalid phone must produce a field error")
	}
}

func TestMaskContactForListing(t *testing.T) {
	u := maskContact(authmodels.User{
		Email:          "juan@example.com",
		Phone:          "09171234567",
		EmergencyPhone: "09179876543",
	})
	if u.Email != "j***@example.com" {
		t.Errorf("email = %q", u.Email)
	}
	if u.Phone != "*******4567" {
		t.Errorf("phone = %q", u.Phone)
	}
	if u.EmergencyPhone != "*******6543" {
		t.Errorf("emergency phone = %q", u.EmergencyPhone)
	}
}

func TestMaskContactLeavesEmptyValues(t *testing.T) {
	u := maskContact(authmodels.User{})
	if u.Email != "" || u.Phone != "" {
		t.Errorf("empty contact must stay empty, got %q / %q", u.Email, u.Phone)
	}
}
