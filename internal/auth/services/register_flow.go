package services

import (
	"github.com/bitecare/clinic-backend/internal/validation"
	"github.com/bitecare/clinic-backend/internal/wizard"
)

// RegistrationSteps defines the patient sign-up flow:
// Personal Info -> Contact Info -> Account -> Finish.
func RegistrationSteps() []wizard.Step {
	return []wizard.Step{
		{
			Name: "Personal Info",
			Validate: func(f wizard.Form) map[string]string {
				return validation.Validate([]validation.Field{
					{Name: "firstName", Value: f["firstName"], Required: true, Validators: []validation.Validator{validation.Name}},
					{Name: "middleName", Value: f["middleName"], Validators: []validation.Validator{validation.Name}},
					{Name: "lastName", Value: f["lastName"], Required: true, Validators: []validation.Validator{validation.Name}},
					{Name: "birthDate", Value: f["birthDate"], Required: true, Validators: []validation.Validator{validation.BirthDate}},
					{Name: "sex", Value: f["sex"], Required: true, Validators: []validation.Validator{sexValidator}},
				}).Errors
			},
		},
		{
			Name: "Contact Info",
			Validate: func(f wizard.Form) map[string]string {
				return validation.Validate([]validation.Field{
					{Name: "address", Value: f["address"], Required: true},
					{Name: "city", Value: f["city"], Required: true},
					{Name: "province", Value: f["province"], Required: true},
					{Name: "zipCode", Value: f["zipCode"], Required: true, Validators: []validation.Validator{validation.ZipCode}},
					{Name: "phone", Value: f["phone"], Required: true, Validators: []validation.Validator{validation.PHMobile}},
					{Name: "emergencyName", Value: f["emergencyName"], Required: true, Validators: []validation.Validator{validation.Name}},
					{Name: "emergencyPhone", Value: f["emergencyPhone"], Required: true, Validators: []validation.Validator{validation.PHMobile}},
				}).Errors
			},
		},
		{
			Name: "Account",
			Validate: func(f wizard.Form) map[string]string {
				errs := validation.Validate([]validation.Field{
					{Name: "email", Value: f["email"], Required: true, Validators: []validation.Validator{validation.Email}},
					{Name: "password", Value: f["password"], Required: true, Validators: []validation.Validator{validation.Password}},
				}).Errors
				if f["privacyConsent"] != "true" {
					errs["privacyConsent"] = "You must agree to the privacy policy to continue."
				}
				return errs
			},
		},
		{Name: "Finish"},
	}
}

func sexValidator(value string) string {
	if value != "Male" && value != "Female" {
		return "Please select Male or Female."
	}
	return ""
}
