package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"schedulerapi/internal/caching"
	"schedulerapi/internal/common"
	"schedulerapi/internal/models"

	jose "github.com/go-jose/go-jose/v4"
	josejwt "github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = time.Hour

// AuthService covers credential handling and the encrypted-token lifecycle.
// Tokens are JWEs (RSA-OAEP-256 key management, A256GCM content encryption):
// claims are confidential to the server, not just integrity-protected.
type AuthService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool

	// IssueToken builds the claim set {sub, email, scope, exp} and encrypts
	// it under the service's public key.
	IssueToken(user *models.User) (string, error)

	// ValidateToken decrypts and verifies a token and returns the subject
	// user id. Every failure mode — malformed, tampered, wrong key, expired,
	// revoked — collapses to common.ErrInvalidToken; no crypto detail
	// crosses this boundary.
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)

	// RevokeToken puts the token on the denylist for its remaining lifetime.
	RevokeToken(ctx context.Context, token string) error
}

// extraClaims carries the non-registered claims of the token payload.
type extraClaims struct {
	Email string `json:"email"`
	Scope string `json:"scope"`
}

type jweAuthService struct {
	key       *rsa.PrivateKey
	encrypter jose.Encrypter
	cacheSvc  caching.CacheService
	now       func() time.Time
}

// NewAuthService creates the auth service around injected key material. The
// key is read-only after this point; instances sharing a key accept each
// other's tokens.
func NewAuthService(key *rsa.PrivateKey, cacheSvc caching.CacheService) (AuthService, error) {
	encrypter, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.RSA_OAEP_256, Key: &key.PublicKey},
		(&jose.EncrypterOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build token encrypter: %w", err)
	}
	return &jweAuthService{
		key:       key,
		encrypter: encrypter,
		cacheSvc:  cacheSvc,
		now:       time.Now,
	}, nil
}

func (s *jweAuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (s *jweAuthService) VerifyPassword(password, hash string) bool {
	// bcrypt compares in constant time and errors on malformed hashes,
	// which fails closed here
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *jweAuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()

	scopes := []string{
		"user.id:" + user.ID.String(),
		"user.email:" + user.Email,
		"user.type:" + string(user.Type),
	}
	if user.FullName != nil && *user.FullName != "" {
		scopes = append(scopes, "user.fullname:"+*user.FullName)
	}

	claims := josejwt.Claims{
		Subject:  user.ID.String(),
		IssuedAt: josejwt.NewNumericDate(now),
		Expiry:   josejwt.NewNumericDate(now.Add(tokenTTL)),
	}
	extra := extraClaims{
		Email: user.Email,
		Scope: strings.Join(scopes, " "),
	}

	token, err := josejwt.Encrypted(s.encrypter).Claims(claims).Claims(extra).Serialize()
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

func (s *jweAuthService) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	claims, _, err := s.decrypt(token)
	if err != nil {
		return uuid.Nil, common.ErrInvalidToken
	}

	// zero leeway: an expired token is invalid the second exp passes
	if err := claims.ValidateWithLeeway(josejwt.Expected{Time: s.now()}, 0); err != nil {
		return uuid.Nil, common.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, common.ErrInvalidToken
	}

	if s.cacheSvc != nil {
		revoked, err := s.cacheSvc.IsTokenRevoked(ctx, tokenDigest(token))
		if err != nil {
			// fail open: the denylist is best effort, tokens still expire
			// naturally within the hour
			log.Printf("WARN: token denylist lookup failed: %v", err)
		} else if revoked {
			return uuid.Nil, common.ErrInvalidToken
		}
	}

	return userID, nil
}

func (s *jweAuthService) RevokeToken(ctx context.Context, token string) error {
	if s.cacheSvc == nil {
		return errors.New("revocation requires a denylist store")
	}
	claims, _, err := s.decrypt(token)
	if err != nil {
		return common.ErrInvalidToken
	}
	remaining := claims.Expiry.Time().Sub(s.now())
	return s.cacheSvc.RevokeToken(ctx, tokenDigest(token), remaining)
}

// decrypt opens the JWE at the jose layer; the jwt package refuses
// asymmetric key management for encrypted JWTs, so the claims are
// unmarshalled from the decrypted plaintext directly.
func (s *jweAuthService) decrypt(token string) (josejwt.Claims, extraClaims, error) {
	var claims josejwt.Claims
	var extra extraClaims

	parsed, err := jose.ParseEncrypted(token,
		[]jose.KeyAlgorithm{jose.RSA_OAEP_256},
		[]jose.ContentEncryption{jose.A256GCM},
	)
	if err != nil {
		return claims, extra, err
	}
	plaintext, err := parsed.Decrypt(s.key)
	if err != nil {
		return claims, extra, err
	}
	if err := json.Unmarshal(plaintext, &claims); err != nil {
		return claims, extra, err
	}
	if err := json.Unmarshal(plaintext, &extra); err != nil {
		return claims, extra, err
	}
	if claims.Expiry == nil {
		return claims, extra, errors.New("token missing expiry")
	}
	return claims, extra, nil
}

// tokenDigest keys the denylist without storing the token itself.
func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ParseTokenKey loads an RSA private key from PEM (PKCS#8 or PKCS#1),
// so all instances can share the key material issued by the secret store.
func ParseTokenKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found in token key")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token key: %w", err)
	}
	rsaKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("token key is not an RSA key")
	}
	return rsaKey, nil
}

// GenerateTokenKey creates an ephemeral 2048-bit key for processes started
// without configured key material. Tokens issued under it die with the
// process.
func GenerateTokenKey() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, 2048)
}
