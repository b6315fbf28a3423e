package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleIdentity is the subset of the tokeninfo response the auth gate
// needs to create or look up a federated user.
type GoogleIdentity struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Audience      string `json:"aud"`
}

// GoogleVerifier validates Google ID tokens against the tokeninfo
// endpoint and checks they were issued for this application.
type GoogleVerifier struct {
	tokenInfoURL string
	clientID     string
	hc           *http.Client
}

type GoogleVerifierOption func(*GoogleVerifier)

func WithTokenInfoURL(u string) GoogleVerifierOption {
	return func(v *GoogleVerifier) {
		v.tokenInfoURL = u
	}
}

func WithGoogleHTTPClient(hc *http.Client) GoogleVerifierOption {
	return func(v *GoogleVerifier) {
		v.hc = hc
	}
}

func NewGoogleVerifier(clientID string, opts ...GoogleVerifierOption) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, errors.New("google client id cannot be empty")
	}
	v := &GoogleVerifier{
		tokenInfoURL: defaultTokenInfoURL,
		clientID:     clientID,
		hc:           &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (GoogleIdentity, error) {
	if idToken == "" {
		return GoogleIdentity{}, errors.New("id token cannot be empty")
	}

	reqURL := v.tokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := v.hc.Do(req)
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return GoogleIdentity{}, fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("reading response body: %w", err)
	}

	var identity GoogleIdentity
	if err := json.Unmarshal(respBody, &identity); err != nil {
		return GoogleIdentity{}, fmt.Errorf("parsing tokeninfo response: %w", err)
	}
	if identity.Subject == "" {
		return GoogleIdentity{}, errors.New("tokeninfo response has no subject")
	}
	if identity.Audience != v.clientID {
		return GoogleIdentity{}, errors.New("token was issued for a different client")
	}
	return identity, nil
}
