// Package identity turns a Clerk session token into the profile of the
// signed-in user. Token signing and user management stay with Clerk.
package identity

import (
	"context"
	"errors"
	"strings"
)

// UnknownUserName is used when a profile carries neither a name nor a username.
const UnknownUserName = "Unknown User"

var ErrInvalidToken = errors.New("invalid session token")

// Identity is the profile Clerk reports for an authenticated request.
type Identity struct {
	ID             string
	FirstName      string
	LastName       string
	Username       string
	EmailAddresses []string
	ImageURL       string
}

// DisplayName applies the fallback chain: full name, then username, then
// UnknownUserName.
func (i *Identity) DisplayName() string {
	candidates := []string{
		strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName)),
		strings.TrimSpace(i.Username),
	}
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return UnknownUserName
}

// PrimaryEmail returns the first email address or "".
func (i *Identity) PrimaryEmail() string {
	if len(i.EmailAddresses) == 0 {
		return ""
	}
	return i.EmailAddresses[0]
}

// Provider resolves a raw session token to an Identity.
type Provider interface {
	CurrentUser(ctx context.Context, token string) (*Identity, error)
}

// ClerkProvider verifies the token locally and then loads the profile from
// the Clerk Backend API.
type ClerkProvider struct {
	verifier *Verifier
	users    *ClerkClient
}

func NewClerkProvider(verifier *Verifier, users *ClerkClient) *ClerkProvider {
	return &ClerkProvider{verifier: verifier, users: users}
}

func (p *ClerkProvider) CurrentUser(ctx context.Context, token string) (*Identity, error) {
	userID, err := p.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	return p.users.GetUser(ctx, userID)
}
