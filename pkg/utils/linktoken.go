package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	jose "github.com/square/go-jose/v3"
)

// linkPayload is the body of a signed one-time link (email verification,
// password reset). Purpose binds a token to the flow that minted it.
type linkPayload struct {
	UID       string `json:"uid"`
	Purpose   string `json:"purpose"`
	ExpiresAt int64  `json:"exp"`
}

const (
	LinkPurposeVerifyEmail   = "verify-email"
	LinkPurposeResetPassword = "reset-password"
)

func linkKey() ([]byte, error) {
	key := []byte(os.Getenv("LINK_SECRET_KEY"))
	if len(key) == 0 {
		return nil, fmt.Errorf("link secret key is missing")
	}
	return key, nil
}

// GenerateLinkToken mints a compact JWS token for the given uid and purpose.
func GenerateLinkToken(uid, purpose string, ttl time.Duration) (string, error) {
	key, err := linkKey()
	if err != nil {
		return "", err
	}
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: key}, nil)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(linkPayload{
		UID:       uid,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return "", err
	}
	obj, err := signer.Sign(payload)
	if err != nil {
		return "", err
	}
	return obj.CompactSerialize()
}

// ValidateLinkToken verifies the signature, purpose and expiry of a link
// token and returns the uid it was minted for.
func ValidateLinkToken(token, purpose string) (string, error) {
	key, err := linkKey()
	if err != nil {
		return "", err
	}
	obj, err := jose.ParseSigned(token)
	if err != nil {
		return "", fmt.Errorf("malformed link token")
	}
	raw, err := obj.Verify(key)
	if err != nil {
		return "", fmt.Errorf("invalid link token signature")
	}
	var p linkPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", fmt.Errorf("malformed link token payload")
	}
	if p.Purpose != purpose {
		return "", fmt.Errorf("link token purpose mismatch")
	}
	if time.Now().Unix() > p.ExpiresAt {
		return "", fmt.Errorf("link token expired")
	}
	return p.UID, nil
}
