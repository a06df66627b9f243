package token

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// KeyPair is an asymmetric signing key held only in memory
type KeyPair struct {
	KeyID      string
	PrivateKey crypto.PrivateKey
	PublicKey  crypto.PublicKey
	Algorithm  string // RS256 or ES256
}

// GenerateRSAKeyPair generates a new RSA key pair for RS256 signing
func GenerateRSAKeyPair(keyID string, bits int) (*KeyPair, error) {
	if bits < 2048 {
		bits = 2048
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate RSA key")
	}

	return &KeyPair{
		KeyID:      keyID,
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
		Algorithm:  AlgRS256,
	}, nil
}

// GenerateECDSAKeyPair generates a new P-256 key pair for ES256 signing
func GenerateECDSAKeyPair(keyID string) (*KeyPair, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate ECDSA key")
	}

	return &KeyPair{
		KeyID:      keyID,
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
		Algorithm:  AlgES256,
	}, nil
}

// KeyPairSigner implements Signer with an asymmetric key pair
type KeyPairSigner struct {
	keyPair *KeyPair
}

var _ Signer = (*KeyPairSigner)(nil)

func NewKeyPairSigner(keyPair *KeyPair) *KeyPairSigner {
	return &KeyPairSigner{keyPair: keyPair}
}

func (k *KeyPairSigner) Sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(k.GetSigningMethod(), claims)
	if k.keyPair.KeyID != "" {
		token.Header["kid"] = k.keyPair.KeyID
	}
	signed, err := token.SignedString(k.keyPair.PrivateKey)
	if err != nil {
		return "", errors.Wrapf(err, "failed to sign token with %s", k.keyPair.Algorithm)
	}
	return signed, nil
}

func (k *KeyPairSigner) GetVerificationKey(token *jwt.Token) (any, error) {
	if token.Method.Alg() != k.keyPair.Algorithm {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return k.keyPair.PublicKey, nil
}

func (k *KeyPairSigner) GetSigningMethod() jwt.SigningMethod {
	if k.keyPair.Algorithm == AlgES256 {
		return jwt.SigningMethodES256
	}
	return jwt.SigningMethodRS256
}
