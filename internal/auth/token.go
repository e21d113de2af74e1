package auth

import (
	"time"

	"github.com/google/uuid"

	jwt "github.com/golang-jwt/jwt/v5"
)

const issuer = "complaint-corner"

// TokenMaker signs and verifies the HS256 JWTs used as session tokens.
// Each token carries a unique jti; the session store keys off it.
type TokenMaker struct {
	Secret []byte
	TTL    time.Duration
}

// NewTokenMaker builds a TokenMaker with the given signing secret.
func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	return &TokenMaker{Secret: []byte(secret), TTL: ttl}
}

// Claims is the subset of token claims the rest of the system cares about.
type Claims struct {
	UserID string
	JTI    string
}

// Issue signs a fresh token for userID and returns it with its jti.
func (tm *TokenMaker) Issue(userID string) (token, jti string, err error) {
	jti = uuid.New().String()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": jti,
		"exp": time.Now().Add(tm.TTL).Unix(),
		"iss": issuer,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(tm.Secret)
	return token, jti, err
}

// Parse verifies the signature, expiry and issuer, and extracts the claims.
func (tm *TokenMaker) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.Secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	sub, _ := mapClaims["sub"].(string)
	jti, _ := mapClaims["jti"].(string)
	if sub == "" || jti == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &Claims{UserID: sub, JTI: jti}, nil
}
