package storage

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidImagePayload = errors.New("invalid image payload")

// DecodeImagePayload turns a client-submitted image string into raw bytes and
// a content type. Clients send images inline in the JSON body, either as a
// data URI ("data:image/png;base64,....") or as bare base64; for the latter
// the content type is sniffed from the decoded bytes.
func DecodeImagePayload(payload string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", ErrInvalidImagePayload
	}

	contentType := ""
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return nil, "", ErrInvalidImagePayload
		}

		header := payload[len("data:"):comma]
		if semi := strings.IndexByte(header, ';'); semi >= 0 {
			header = header[:semi]
		}
		contentType = strings.TrimSpace(header)
		payload = payload[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidImagePayload
	}
	if len(data) == 0 {
		return nil, "", ErrInvalidImagePayload
	}

	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	return data, contentType, nil
}
