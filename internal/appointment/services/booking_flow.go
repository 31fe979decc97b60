package services

import (
	"time"

	"github.com/bitecare/clinic-backend/internal/appointment/models"
	"github.com/bitecare/clinic-backend/internal/validation"
	"github.com/bitecare/clinic-backend/internal/wizard"
)

// TimeSlots are the bookable consultation slots per branch per day.
var TimeSlots = []string{
	"08:00 AM", "09:00 AM", "10:00 AM", "11:00 AM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM",
}

// Branches the clinic operates.
var Branches = []string{"Makati", "Quezon City", "Pasig"}

func oneOf(allowed []string, msg string) validation.Validator {
	return func(value string) string {
		for _, a := range allowed {
			if value == a {
				return ""
			}
		}
		return msg
	}
}

// BookingSteps defines the appointment flow:
// Reason -> Details -> Schedule -> Review. The Details step branches on the
// appointment reason.
func BookingSteps() []wizard.Step {
	return []wizard.Step{
		{
			Name: "Reason",
			Validate: func(f wizard.Form) map[string]string {
				errs := map[string]string{}
				switch f["appointmentReason"] {
				case models.ReasonNewIncident, models.ReasonFollowUp:
				default:
					errs["appointmentReason"] = "Please select a reason for your visit."
				}
				return errs
			},
		},
		{
			Name: "Details",
			Validate: func(f wizard.Form) map[string]string {
				if f["appointmentReason"] == models.ReasonFollowUp {
					return validation.Validate([]validation.Field{
						{Name: "primaryReason", Value: f["primaryReason"], Required: true},
						{Name: "newConditionNotes", Value: f["newConditionNotes"]},
					}).Errors
				}
				errs := validation.Validate([]validation.Field{
					{Name: "animalType", Value: f["animalType"], Required: true},
					{Name: "animalStatus", Value: f["animalStatus"], Required: true},
				}).Errors
				if f["exposures"] == "" {
					errs["exposures"] = "Please check at least one exposure type."
				}
				if f["hasAllergies"] == "true" && f["allergyInfo"] == "" {
					errs["allergyInfo"] = "Please describe your allergies."
				}
				return errs
			},
		},
		{
			Name: "Schedule",
			Validate: func(f wizard.Form) map[string]string {
				errs := validation.Validate([]validation.Field{
					{Name: "branch", Value: f["branch"], Required: true,
						Validators: []validation.Validator{oneOf(Branches, "Please choose a branch.")}},
					{Name: "timeSlot", Value: f["timeSlot"], Required: true,
						Validators: []validation.Validator{oneOf(TimeSlots, "Please choose an available time slot.")}},
					{Name: "date", Value: f["date"], Required: true,
						Validators: []validation.Validator{notPastDate}},
				}).Errors
				return errs
			},
		},
		{Name: "Review"},
	}
}

func notPastDate(value string) string {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "Please enter a valid date (YYYY-MM-DD)."
	}
	// Lexicographic compare of YYYY-MM-DD strings sidesteps zone math:
	// "today" is whatever the server's local calendar says.
	if value < time.Now().Format("2006-01-02") {
		return "Appointment date cannot be in the past."
	}
	return ""
}
