// internal/app/system/identity/admin.go
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AdminClient provisions accounts through the provider's admin REST
// API, authenticating with an OAuth2 client-credentials grant.
type AdminClient struct {
	baseURL string
	http    *http.Client
}

// AdminConfig configures the provider admin API connection.
type AdminConfig struct {
	BaseURL      string // e.g. https://identity.example.com/admin
	TokenURL     string // client-credentials token endpoint
	ClientID     string
	ClientSecret string
}

// NewAdminClient builds the admin API client. The underlying HTTP
// client is bounded so a hung provider cannot stall approvals beyond
// the request timeout.
func NewAdminClient(cfg AdminConfig) *AdminClient {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	base := &http.Client{Timeout: 10 * time.Second}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	return &AdminClient{
		baseURL: cfg.BaseURL,
		http:    cc.Client(ctx),
	}
}

type createAccountRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type createAccountResponse struct {
	UID   string `json:"uid"`
	Error string `json:"error,omitempty"`
}

// CreateAccount registers an account with the provider and returns the
// issued subject id. Provider-side rejections (weak password, email in
// use) come back as ErrRejected.
func (c *AdminClient) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	payload, err := json.Marshal(createAccountRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/accounts", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity admin request: %w", err)
	}
	defer resp.Body.Close()

	var body createAccountResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && resp.StatusCode < 300 {
		return "", fmt.Errorf("identity admin response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if body.UID == "" {
			return "", fmt.Errorf("identity admin response missing uid")
		}
		return body.UID, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", fmt.Errorf("%w: %s", ErrRejected, body.Error)
	default:
		return "", fmt.Errorf("identity admin status %d", resp.StatusCode)
	}
}
