package apiclient

import (
	"bytes"
	"fmt"
)

// decodeList turns either a bare JSON array or a {"results": [...]} envelope
// into a slice. A missing or null results field yields an empty slice.
func decodeList[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.Results == nil {
		return []T{}, nil
	}
	return envelope.Results, nil
}

// errorMessage pulls the "error" string out of an error body, if there is one.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}
