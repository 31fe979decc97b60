package services

import "github.com/bitecare/clinic-backend/internal/validation"

var profileValidators = map[string][]validation.Validator{
	"firstName":      {validation.Name},
	"middleName":     {validation.Name},
	"lastName":       {validation.Name},
	"birthDate":      {validation.BirthDate},
	"zipCode":        {validation.ZipCode},
	"phone":          {validation.PHMobile},
	"emergencyName":  {validation.Name},
	"emergencyPhone": {validation.PHMobile},
}

// Identity fields registration collected as required; an edit may omit them
// but must not blank them.
var profileRequired = map[string]bool{
	"firstName": true,
	"lastName":  true,
	"birthDate": true,
}

// ValidateProfileFields checks only the fields present in a profile-edit
// request; fields the user did not touch are not re-validated.
func ValidateProfileFields(fields map[string]string) map[string]string {
	var toCheck []validation.Field
	for name, value := range fields {
		toCheck = append(toCheck, validation.Field{
			Name:       name,
			Value:      value,
			Required:   profileRequired[name],
			Validators: profileValidators[name],
		})
	}
	return validation.Validate(toCheck).Errors
}
