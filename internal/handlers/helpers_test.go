package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sshop-backend/internal/models"
	"sshop-backend/internal/storage"
)

// fakeStore is an in-memory asset store recording every call.
type fakeStore struct {
	uploads int
	deleted []string
}

func (f *fakeStore) Upload(ctx context.Context, data []byte, contentType string) (storage.Asset, error) {
	f.uploads++
	return storage.Asset{
		URL: "https://assets.test/sshop-assets/uploads/fake.png",
		ID:  "uploads/fake.png",
	}, nil
}

func (f *fakeStore) Delete(ctx context.Context, assetID string) error {
	f.deleted = append(f.deleted, assetID)
	return nil
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target string, body interface{}, setup func(*gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	if setup != nil {
		setup(c)
	}

	handler(c)
	return w
}

func TestValidPhoneNumber(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"01234567890", true},
		{"1234567890", false},  // 10 digits
		{"11234567890", false}, // no leading zero
		{"012345678901", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validPhoneNumber(tt.value); got != tt.want {
			t.Errorf("validPhoneNumber(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValidAccountNumber(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1234567890", true},
		{"123456789", false},
		{"12345678901", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validAccountNumber(tt.value); got != tt.want {
			t.Errorf("validAccountNumber(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestSellerPayloadNeverLeaksPasswordHash(t *testing.T) {
	user := models.User{
		ID:        primitive.NewObjectID(),
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "$2a$14$somethingsecret",
	}

	body, err := json.Marshal(sellerPayload(user))
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	if bytes.Contains(body, []byte("somethingsecret")) {
		t.Fatal("sanitized payload contains the password hash")
	}
	if bytes.Contains(body, []byte("\"password\"")) {
		t.Fatal("sanitized payload contains a password key")
	}
}
