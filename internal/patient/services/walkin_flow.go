package services

import (
	apptservices "github.com/bitecare/clinic-backend/internal/appointment/services"
	"github.com/bitecare/clinic-backend/internal/validation"
	"github.com/bitecare/clinic-backend/internal/wizard"
)

// WalkInSteps defines the staff intake flow for patients at the desk:
// Personal Info -> Contact Info -> Visit -> Finish. Email is optional since
// walk-ins may have no account at all.
func WalkInSteps() []wizard.Step {
	return []wizard.Step{
		{
			Name: "Personal Info",
			Validate: func(f wizard.Form) map[string]string {
				errs := validation.Validate([]validation.Field{
					{Name: "firstName", Value: f["firstName"], Required: true, Validators: []validation.Validator{validation.Name}},
					{Name: "middleName", Value: f["middleName"], Validators: []validation.Validator{validation.Name}},
					{Name: "lastName", Value: f["lastName"], Required: true, Validators: []validation.Validator{validation.Name}},
					{Name: "birthDate", Value: f["birthDate"], Required: true, Validators: []validation.Validator{validation.BirthDate}},
				}).Errors
				if f["sex"] != "Male" && f["sex"] != "Female" {
					errs["sex"] = "Please select Male or Female."
				}
				return errs
			},
		},
		{
			Name: "Contact Info",
			Validate: func(f wizard.Form) map[string]string {
				return validation.Validate([]validation.Field{
					{Name: "address", Value: f["address"], Required: true},
					{Name: "city", Value: f["city"], Required: true},
					{Name: "zipCode", Value: f["zipCode"], Validators: []validation.Validator{validation.ZipCode}},
					{Name: "phone", Value: f["phone"], Validators: []validation.Validator{validation.PHMobile}},
					{Name: "email", Value: f["email"], Validators: []validation.Validator{validation.Email}},
				}).Errors
			},
		},
		{
			Name: "Visit",
			Validate: func(f wizard.Form) map[string]string {
				errs := map[string]string{}
				if f["appointmentReason"] == "" {
					errs["appointmentReason"] = "Please select a reason for the visit."
				}
				res := validation.Validate([]validation.Field{
					{Name: "branch", Value: f["branch"], Required: true,
						Validators: []validation.Validator{branchValidator}},
					{Name: "timeSlot", Value: f["timeSlot"], Required: true},
				})
				for k, v := range res.Errors {
					errs[k] = v
				}
				return errs
			},
		},
		{Name: "Finish"},
	}
}

func branchValidator(value string) string {
	for _, b := range apptservices.Branches {
		if value == b {
			return ""
		}
	}
	return "Please choose a branch."
}
