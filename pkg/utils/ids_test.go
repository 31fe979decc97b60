package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestGeneratePatientID(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^P-20260830-\d{6}$`)
	for i := 0; i < 20; i++ {
		id := GeneratePatientID(now)
		if !re.MatchString(id) {
			t.Fatalf("patient id %q does not match P-YYYYMMDD-######", id)
		}
	}
}

func TestGenerateWalkInUID(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^walkin_\d{19}$`) // 10 unix digits + 9 random digits
	for i := 0; i < 20; i++ {
		if uid := GenerateWalkInUID(now); !re.MatchString(uid) {
			t.Fatalf("walk-in uid %q does not match walkin_ + unix seconds + 9 digits", uid)
		}
	}
}

func TestGenerateUIDSuffixWidth(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^u_\d{19}$`) // 10 unix digits + 9 random digits
	for i := 0; i < 20; i++ {
		if uid := GenerateUID(now); !re.MatchString(uid) {
			t.Fatalf("uid %q does not match u_ + unix seconds + 9 digits", uid)
		}
	}
}

func TestGenerateTempPassword(t *testing.T) {
	tests := []struct {
		lastName  string
		birthDate string
		want      string
	}{
		{"Dela Cruz", "1990-05-15", "delacruz05151990"},
		{"Santos", "2001-12-01", "santos12012001"},
		{"Reyes", "bad-date", "reyes"},
	}
	for _, tt := range tests {
		if got := GenerateTempPassword(tt.lastName, tt.birthDate); got != tt.want {
			t.Errorf("GenerateTempPassword(%q, %q) = %q, want %q", tt.lastName, tt.birthDate, got, tt.want)
		}
	}
}

func TestJoinName(t *testing.T) {
	if got := JoinName("Juan", "", "Dela Cruz"); got != "Juan Dela Cruz" {
		t.Errorf("JoinName = %q", got)
	}
	if got := JoinName("Maria", "Clara", "Santos"); got != "Maria Clara Santos" {
		t.Errorf("JoinName = %q", got)
	}
}

func TestMaskPhone(t *testing.T) {
	if got := MaskPhone("09171234567"); got != "*******4567" {
		t.Errorf("MaskPhone = %q", got)
	}
	if got := MaskPhone("123"); got != "123" {
		t.Errorf("MaskPhone short = %q", got)
	}
}

func TestMaskEmail(t *testing.T) {
	if got := MaskEmail("juan@example.com"); got != "j***@example.com" {
		t.Errorf("MaskEmail = %q", got)
	}
}

func TestFormatDisplayDate(t *testing.T) {
	if got := FormatDisplayDate("2026-08-30"); got != "August 30, 2026" {
		t.Errorf("FormatDisplayDate = %q", got)
	}
	if got := FormatDisplayDate("not-a-date"); got != "not-a-date" {
		t.Errorf("FormatDisplayDate fallback = %q", got)
	}
}
