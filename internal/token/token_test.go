package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func TestIssueVerifyRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	signed, err := Issue(userID, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	got, err := Verify(signed, testSecret)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got != userID {
		t.Fatalf("expected user id %s, got %s", userID.Hex(), got.Hex())
	}
}

func TestVerifyNeverResolvesToAnotherUser(t *testing.T) {
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()

	signed, err := Issue(userA, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	got, err := Verify(signed, testSecret)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got == userB {
		t.Fatal("token issued for user A verified as user B")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	signed, err := Issue(primitive.NewObjectID(), testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = Verify(signed, testSecret)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "not.a.jwt"} {
		if _, err := Verify(raw, testSecret); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("expected ErrMalformedToken for %q, got %v", raw, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := Issue(primitive.NewObjectID(), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = Verify(signed, "another-secret")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyMissingUserClaim(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := Verify(signed, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyGarbageUserClaim(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": "not-an-object-id",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := Verify(signed, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
