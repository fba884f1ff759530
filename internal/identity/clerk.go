package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ClerkClient reads users from the Clerk Backend API.
type ClerkClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClerkClient(baseURL, secretKey string, httpClient *http.Client) *ClerkClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &ClerkClient{baseURL: baseURL, secretKey: secretKey, httpClient: httpClient}
}

type clerkUser struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Username       string `json:"username"`
	ImageURL       string `json:"image_url"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// GetUser fetches GET {baseURL}/users/{id}. A deleted user is reported as
// ErrInvalidToken; other failures are returned as-is.
func (c *ClerkClient) GetUser(ctx context.Context, userID string) (*Identity, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build clerk request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clerk get user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: clerk user %s not found", ErrInvalidToken, userID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("clerk get user: HTTP %d: %s", resp.StatusCode, body)
	}

	var u clerkUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode clerk user: %w", err)
	}

	id := &Identity{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		ImageURL:  u.ImageURL,
	}
	if id.ID == "" {
		id.ID = userID
	}
	for _, e := range u.EmailAddresses {
		id.EmailAddresses = append(id.EmailAddresses, e.EmailAddress)
	}
	return id, nil
}
