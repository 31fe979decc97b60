package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

func randomBelow(max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return time.Now().UnixNano() % max
	}
	return n.Int64()
}

// GeneratePatientID returns an identifier of the form P-YYYYMMDD-######
// where the suffix is a zero-padded 6-digit random number.
func GeneratePatientID(now time.Time) string {
	return fmt.Sprintf("P-%s-%06d", now.Format("20060102"), randomBelow(1000000))
}

// GenerateUID returns a uid for a new account.
func GenerateUID(now time.Time) string {
	return fmt.Sprintf("u_%d%09d", now.Unix(), randomBelow(1000000000))
}

// GenerateWalkInUID returns a synthetic uid for patients registered at the
// desk without an account. The walkin_ prefix marks the record as having no
// credentials behind it.
func GenerateWalkInUID(now time.Time) string {
	return fmt.Sprintf("walkin_%d%09d", now.Unix(), randomBelow(1000000000))
}

// GenerateTempPassword derives the initial walk-in password from the last
// name and birth date (YYYY-MM-DD): "Dela Cruz" + "1990-05-15" =>
// "delacruz05151990".
func GenerateTempPassword(lastName, birthDate string) string {
	name := strings.ToLower(strings.ReplaceAll(lastName, " ", ""))
	parts := strings.Split(birthDate, "-")
	if len(parts) != 3 {
		return name
	}
	return name + parts[1] + parts[2] + parts[0]
}

// JoinName assembles a display name, skipping empty parts.
func JoinName(first, middle, last string) string {
	parts := []string{}
	for _, p := range []string{first, middle, last} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}

// MaskPhone hides all but the last four digits of a phone number.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// MaskEmail hides the local part except its first character.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return email
	}
	return email[:1] + strings.Repeat("*", at-1) + email[at:]
}

// FormatDisplayDate renders YYYY-MM-DD as "January 2, 2006" for on-screen use.
func FormatDisplayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
