package models

import "time"

// User is the single account/patient record. Staff and patients share the
// table, discriminated by Role; walk-in patients carry a synthetic
// walkin_ uid plus the explicit IsWalkIn flag.
type User struct {
	UID               string     `json:"uid"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Role              string     `json:"role"`
	FirstName         string     `json:"first_name"`
	MiddleName        string     `json:"middle_name"`
	LastName          string     `json:"last_name"`
	BirthDate         string     `json:"birth_date"`
	Sex               string     `json:"sex"`
	Address           string     `json:"address"`
	City              string     `json:"city"`
	Province          string     `json:"province"`
	ZipCode           string     `json:"zip_code"`
	Phone             string     `json:"phone"`
	EmergencyName     string     `json:"emergency_name"`
	EmergencyPhone    string     `json:"emergency_phone"`
	PatientID         string     `json:"patient_id"`
	PrivacyConsent    bool       `json:"privacy_consent"`
	DisclosureConsent bool       `json:"disclosure_consent"`
	PhotoPath         string     `json:"photo_path"`
	EmailVerified     bool       `json:"email_verified"`
	IsWalkIn          bool       `json:"is_walk_in"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// WalkInPrefix marks uids that have no credentials behind them. Kept for
// wire compatibility; new code should branch on IsWalkIn instead.
const WalkInPrefix = "walkin_"
