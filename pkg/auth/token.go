package auth

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier checks bearer tokens issued by the external auth service.
// Issuance is not this server's concern; only HS256 verification with the
// shared secret happens here.
type TokenVerifier struct {
	secret []byte
}

type Claims struct {
	UserID string `json:"id"`
	Role   Role   `json:"role"`
	jwtlib.RegisteredClaims
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

func (v *TokenVerifier) Verify(tokenStr string) (Identity, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" || !claims.Role.Valid() {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// Sign is used by the seed job and tests; production tokens come from the
// auth service.
func (v *TokenVerifier) Sign(userID string, role Role, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
