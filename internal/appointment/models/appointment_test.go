package models

import "testing"

func TestParseStatusNormalizesNoShow(t *testing.T) {
	for _, in := range []string{"No Show", "no show", "no-show", "No-Show"} {
		got, err := ParseStatus(in)
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", in, err)
			continue
		}
		if got != StatusNoShow {
			t.Errorf("ParseStatus(%q) = %q, want %q", in, got, StatusNoShow)
		}
	}
}

func TestParseStatusAll(t *testing.T) {
	for _, s := range AllStatuses() {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseStatus("Rescheduled"); err == nil {
		t.Error("unknown status should be rejected")
	}
}
