package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestDecodeImagePayloadDataURI(t *testing.T) {
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	data, contentType, err := DecodeImagePayload(payload)
	if err != nil {
		t.Fatalf("DecodeImagePayload returned error: %v", err)
	}
	if contentType != "image/png" {
		t.Fatalf("expected content type image/png, got %s", contentType)
	}
	if !bytes.Equal(data, pngBytes) {
		t.Fatal("decoded bytes do not match the original payload")
	}
}

func TestDecodeImagePayloadRawBase64SniffsType(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(pngBytes)

	data, contentType, err := DecodeImagePayload(payload)
	if err != nil {
		t.Fatalf("DecodeImagePayload returned error: %v", err)
	}
	if contentType != "image/png" {
		t.Fatalf("expected sniffed content type image/png, got %s", contentType)
	}
	if !bytes.Equal(data, pngBytes) {
		t.Fatal("decoded bytes do not match the original payload")
	}
}

func TestDecodeImagePayloadRejectsGarbage(t *testing.T) {
	for _, payload := range []string{"", "   ", "data:image/png;base64", "%%% not base64 %%%"} {
		if _, _, err := DecodeImagePayload(payload); !errors.Is(err, ErrInvalidImagePayload) {
			t.Fatalf("expected ErrInvalidImagePayload for %q, got %v", payload, err)
		}
	}
}

func TestDecodeImagePayloadRejectsEmptyDataURI(t *testing.T) {
	if _, _, err := DecodeImagePayload("data:image/png;base64,"); !errors.Is(err, ErrInvalidImagePayload) {
		t.Fatalf("expected ErrInvalidImagePayload, got %v", err)
	}
}
