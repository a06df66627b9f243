package token

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
)

// Supported signing algorithms
const (
	AlgHS256 = "HS256"
	AlgRS256 = "RS256"
	AlgES256 = "ES256"
)

// NewSigner creates the signer for alg. HS256 signs with secret; the
// asymmetric algorithms generate a fresh key pair, so credentials do not
// survive a restart.
func NewSigner(alg, secret string) (Signer, error) {
	switch strings.ToUpper(strings.TrimSpace(alg)) {
	case "", AlgHS256:
		if secret == "" {
			return nil, fmt.Errorf("HS256 requires a signing secret: %w", mallerrors.ErrInvalidInput)
		}
		return NewHMACSigner(secret), nil

	case AlgRS256:
		keyPair, err := GenerateRSAKeyPair(uuid.NewString(), 2048)
		if err != nil {
			return nil, fmt.Errorf("failed to generate RS256 key pair: %w", err)
		}
		return NewKeyPairSigner(keyPair), nil

	case AlgES256:
		keyPair, err := GenerateECDSAKeyPair(uuid.NewString())
		if err != nil {
			return nil, fmt.Errorf("failed to generate ES256 key pair: %w", err)
		}
		return NewKeyPairSigner(keyPair), nil

	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q: %w", alg, mallerrors.ErrInvalidInput)
	}
}
