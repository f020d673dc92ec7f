// Package token issues and verifies the signed bearer tokens that identify a
// seller on every protected route.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrExpiredToken   = errors.New("expired token")
	ErrInvalidToken   = errors.New("invalid token")
)

// Issue signs a token binding the given user id, valid for ttl.
func Issue(userID primitive.ObjectID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify parses and validates a signed token and returns the user id it was
// issued for. Failure modes are distinguished so the middleware can report
// them: ErrMalformedToken for unparseable input, ErrExpiredToken for a token
// past its expiry and ErrInvalidToken for everything else (bad signature,
// wrong algorithm, missing or garbage userId claim).
func Verify(raw, secret string) (primitive.ObjectID, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return primitive.NilObjectID, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return primitive.NilObjectID, ErrExpiredToken
		default:
			return primitive.NilObjectID, ErrInvalidToken
		}
	}
	if !parsed.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}

	rawID, ok := claims["userId"].(string)
	if !ok || rawID == "" {
		return primitive.NilObjectID, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}

	return userID, nil
}
