package utils

import (
	"testing"
	"time"
)

func TestLinkTokenRoundTrip(t *testing.T) {
	t.Setenv("LINK_SECRET_KEY", "test-link-secret")

	token, err := GenerateLinkToken("u_123", LinkPurposeVerifyEmail, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLinkToken: %v", err)
	}

	uid, err := ValidateLinkToken(token, LinkPurposeVerifyEmail)
	if err != nil {
		t.Fatalf("ValidateLinkToken: %v", err)
	}
	if uid != "u_123" {
		t.Errorf("uid = %q, want u_123", uid)
	}
}

func TestLinkTokenPurposeMismatch(t *testing.T) {
	t.Setenv("LINK_SECRET_KEY", "test-link-secret")

	token, err := GenerateLinkToken("u_123", LinkPurposeVerifyEmail, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLinkToken: %v", err)
	}
	if _, err := ValidateLinkToken(token, LinkPurposeResetPassword); err == nil {
		t.Error("expected error for purpose mismatch")
	}
}

func TestLinkTokenExpired(t *testing.T) {
	t.Setenv("LINK_SECRET_KEY", "test-link-secret")

	token, err := GenerateLinkToken("u_123", LinkPurposeResetPassword, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateLinkToken: %v", err)
	}
	if _, err := ValidateLinkToken(token, LinkPurposeResetPassword); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestLinkTokenTampered(t *testing.T) {
	t.Setenv("LINK_SECRET_KEY", "test-link-secret")

	token, err := GenerateLinkToken("u_123", LinkPurposeVerifyEmail, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLinkToken: %v", err)
	}
	if _, err := ValidateLinkToken(token+"x", LinkPurposeVerifyEmail); err == nil {
		t.Error("expected error for tampered token")
	}
}
