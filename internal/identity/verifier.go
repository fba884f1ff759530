package identity

import (
	"crypto/rsa"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks Clerk session JWTs against the instance public key, so no
// network call is needed per request.
type Verifier struct {
	key               *rsa.PublicKey
	authorizedParties []string
	leeway            time.Duration
}

// NewVerifier parses the PEM encoded public key. authorizedParties, when not
// empty, restricts the accepted `azp` claim values.
func NewVerifier(pemKey string, authorizedParties []string) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("parse clerk jwt key: %w", err)
	}
	return &Verifier{
		key:               key,
		authorizedParties: authorizedParties,
		leeway:            5 * time.Second,
	}, nil
}

// Verify returns the Clerk user id (the `sub` claim) of a valid token.
func (v *Verifier) Verify(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	)
	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if len(v.authorizedParties) > 0 {
		azp, _ := claims["azp"].(string)
		if azp != "" && !slices.Contains(v.authorizedParties, azp) {
			return "", fmt.Errorf("%w: unauthorized party %q", ErrInvalidToken, azp)
		}
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return sub, nil
}
