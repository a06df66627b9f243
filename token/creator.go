package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is the "iss" claim carried by every mall credential
const Issuer = "MallSystem"

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Creator issues signed mall credentials
type Creator struct {
	signer Signer
	ttl    time.Duration
}

// NewCreator creates a credential creator that signs with signer and expires after ttl
func NewCreator(signer Signer, ttl time.Duration) *Creator {
	return &Creator{
		signer: signer,
		ttl:    ttl,
	}
}

// Create issues a bearer credential for a user
func (c *Creator) Create(userID int64, username string, isAdmin bool) (string, error) {
	now := NowTimeFunc()
	claims := jwt.MapClaims{
		"iss":      Issuer,                        // The issuer of the token
		"sub":      strconv.FormatInt(userID, 10), // The user the token was issued for
		"username": username,                      // Display name at issue time
		"isAdmin":  isAdmin,                       // Administrator flag at issue time
		"iat":      now.Unix(),                    // Issued At
		"exp":      now.Add(c.ttl).Unix(),         // Expiry
		"jti":      uuid.New().String(),           // Unique token ID
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}
	return signed, nil
}
