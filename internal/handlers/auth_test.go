package handlers

import (
	"net/http"
	"testing"
	"time"
)

func TestLoginRejectsMissingFields(t *testing.T) {
	cases := []map[string]interface{}{
		{},
		{"email": "ada@example.com"},
		{"password": "abcdef"},
		{"email": "   ", "password": "abcdef"},
	}
	for _, body := range cases {
		w := performJSON(t, Login(nil, "secret", time.Hour), "POST", "/api/auth", body, nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409 for %v, got %d: %s", body, w.Code, w.Body.String())
		}
	}
}
