package models

import (
	"fmt"
	"strings"
	"time"
)

// Status is the fixed appointment state set. "No Show" is the canonical
// spelling; ParseStatus folds the hyphenated and lowercase variants that
// exist in older records.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusConfirmed      Status = "Confirmed"
	StatusInConsultation Status = "In-Consultation"
	StatusCompleted      Status = "Completed"
	StatusCancelled      Status = "Cancelled"
	StatusNoShow         Status = "No Show"
)

func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusInConsultation, StatusCompleted, StatusCancelled, StatusNoShow}
}

func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", " "))
	switch normalized {
	case "pending":
		return StatusPending, nil
	case "confirmed":
		return StatusConfirmed, nil
	case "in consultation":
		return StatusInConsultation, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	case "no show":
		return StatusNoShow, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

const (
	ReasonNewIncident = "New Incident"
	ReasonFollowUp    = "Follow-up"
)

// IncidentDetails is the sub-record for new-incident visits.
type IncidentDetails struct {
	Exposures    []string `json:"exposures"`
	AnimalType   string   `json:"animal_type"`
	AnimalStatus string   `json:"animal_status"`
	HasAllergies bool     `json:"has_allergies"`
	AllergyInfo  string   `json:"allergy_info,omitempty"`
}

// FollowUpDetails is the sub-record for follow-up visits.
type FollowUpDetails struct {
	PrimaryReason     string `json:"primary_reason"`
	NewConditionNotes string `json:"new_condition_notes,omitempty"`
}

const (
	ChannelOnline = "online"
	ChannelWalkIn = "walkin"
)

type Appointment struct {
	ID           int64            `json:"id"`
	UID          string           `json:"uid"`
	PatientName  string           `json:"patient_name"`
	Reason       string           `json:"reason"`
	Branch       string           `json:"branch"`
	Date         string           `json:"date"`
	TimeSlot     string           `json:"time_slot"`
	Status       Status           `json:"status"`
	Channel      string           `json:"channel"`
	Incident     *IncidentDetails `json:"incident,omitempty"`
	FollowUp     *FollowUpDetails `json:"follow_up,omitempty"`
	ReminderSent bool             `json:"reminder_sent"`
	CreatedAt    time.Time        `json:"created_at"`
}
