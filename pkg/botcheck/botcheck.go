// Package botcheck verifies bot-verification widget tokens against the
// provider's server-side verify endpoint.
package botcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// HTTPVerifier posts the widget token plus the site secret to the provider.
type HTTPVerifier struct {
	VerifyURL string
	Secret    string
	Client    *http.Client
}

func NewHTTPVerifier(verifyURL, secret string) *HTTPVerifier {
	return &HTTPVerifier{VerifyURL: verifyURL, Secret: secret, Client: http.DefaultClient}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("missing verification token")
	}
	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("verification rejected")
	}
	return nil
}

// StaticVerifier accepts every token; for development and tests.
type StaticVerifier struct{}

func (StaticVerifier) Verify(context.Context, string) error { return nil }
