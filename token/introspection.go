package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
)

// Claims are the identity claims carried by a mall credential
type Claims struct {
	ID        string
	Subject   string
	UserID    int64
	Username  string
	IsAdmin   bool
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the claims carry an expiry that is not after now.
// Credentials without an expiry never expire.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}

// Verify parses a credential, checking signature, issuer and expiry
func Verify(raw string, signer Signer) (*Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, mallerrors.ErrInvalidToken
	}

	parsed, err := jwt.Parse(raw, signer.GetVerificationKey,
		jwt.WithIssuer(Issuer),
		jwt.WithValidMethods([]string{signer.GetSigningMethod().Alg()}),
		jwt.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, mallerrors.ErrTokenExpired
		}
		return nil, mallerrors.Wrapf(mallerrors.ErrInvalidToken, "verify: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, mallerrors.ErrInvalidToken
	}
	return fromMapClaims(claims)
}

// Inspect decodes a credential's claims without verifying its signature.
// The result is for display only and must not be used for authorization.
func Inspect(raw string) (*Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, mallerrors.ErrInvalidToken
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, mallerrors.Wrapf(mallerrors.ErrInvalidToken, "inspect: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims")
	}
	return fromMapClaims(claims)
}

func fromMapClaims(claims jwt.MapClaims) (*Claims, error) {
	c := &Claims{}
	c.ID, _ = claims["jti"].(string)
	c.Subject, _ = claims.GetSubject()
	c.Issuer, _ = claims.GetIssuer()
	c.Username, _ = claims["username"].(string)
	c.IsAdmin, _ = claims["isAdmin"].(bool)

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}

	if c.Subject != "" {
		id, err := strconv.ParseInt(c.Subject, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("subject %q is not a user id: %w", c.Subject, mallerrors.ErrInvalidToken)
		}
		c.UserID = id
	}
	return c, nil
}
