package devserver

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = 24 * time.Hour

type tokenClaims struct {
	jwt.RegisteredClaims
	StoreID string `json:"store_id"`
}

// tokenAuth issues and verifies bearer tokens for the development backend
type tokenAuth struct {
	key []byte
}

func newTokenAuth(key []byte) *tokenAuth {
	return &tokenAuth{key: key}
}

// CreateToken issues a signed token bound to the store
func (t *tokenAuth) CreateToken(storeID string) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		StoreID: storeID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// VerifyToken checks the signature and returns the store id
func (t *tokenAuth) VerifyToken(tokenString string) (string, error) {
	claims := tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.key, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	return claims.StoreID, nil
}
