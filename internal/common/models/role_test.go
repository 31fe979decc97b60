package models

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"patient", RolePatient, false},
		{"staff", RoleStaff, false},
		{"admin", RoleUnknown, true},
		{"", RoleUnknown, true},
		{"Patient", RoleUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseRole(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestRoleRoundTrip(t *testing.T) {
	for _, r := range []Role{RolePatient, RoleStaff} {
		parsed, err := ParseRole(r.String())
		if err != nil || parsed != r {
			t.Errorf("round trip %v: got %v, %v", r, parsed, err)
		}
	}
}

func TestHomePath(t *testing.T) {
	if RolePatient.HomePath() != "/patient/home" {
		t.Errorf("patient home = %q", RolePatient.HomePath())
	}
	if RoleStaff.HomePath() != "/staff/dashboard" {
		t.Errorf("staff home = %q", RoleStaff.HomePath())
	}
	if RoleUnknown.HomePath() != "/login" {
		t.Errorf("unknown home = %q", RoleUnknown.HomePath())
	}
}
