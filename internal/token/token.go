package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/connectsphere/connectsphere-api/internal/model"
)

// TTL is the fixed lifetime of every issued token. There is no refresh
// and no revocation; a token dies only by expiry.
const TTL = time.Hour

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

// Claims is the signed payload carried by every bearer token.
type Claims struct {
	UserID uuid.UUID  `json:"id"`
	Role   model.Role `json:"role"`

	jwtlib.RegisteredClaims
}

// Issuer signs and verifies HMAC bearer tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    TTL,
		now:    time.Now,
	}
}

// NewIssuerAt is NewIssuer with an injected clock, for tests.
func NewIssuerAt(secret string, now func() time.Time) *Issuer {
	i := NewIssuer(secret)
	i.now = now
	return i
}

// Issue signs a token carrying the user's id and role.
func (i *Issuer) Issue(userID uuid.UUID, role model.Role) (string, error) {
	now := i.now().UTC()

	c := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(i.ttl)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(i.secret)
}

// Verify parses and validates a signed token, returning its claims.
// Only HS256-signed tokens with a matching secret pass.
func (i *Issuer) Verify(tokenString string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(i.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(t *jwtlib.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrInvalid
	}

	if c.UserID == uuid.Nil || !model.ValidRole(c.Role) {
		return Claims{}, ErrInvalid
	}

	return c, nil
}
