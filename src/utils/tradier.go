package utils

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

func isNullPayload(v jsoniter.RawMessage) bool {
	s := string(v)
	return len(v) == 0 || s == "null" || s == "\"null\""
}

// ParseTradierResponse unwraps Tradier's {"outer": {"inner": value}} envelope,
// where value is either a single object or a list of them.
func ParseTradierResponse[T any](response []byte) ([]T, error) {
	header := make(map[string]jsoniter.RawMessage)

	if err := json.Unmarshal(response, &header); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal header in response: %w", err)
	}

	if len(header) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse(): expected 1 key in header, got %v", len(header))
	}

	var v jsoniter.RawMessage
	for _, value := range header {
		v = value
	}

	if isNullPayload(v) {
		return []T{}, nil
	}

	data := make(map[string]jsoniter.RawMessage)
	if err := json.Unmarshal(v, &data); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal data in response: %w", err)
	}

	if len(data) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse(): expected 1 key in data, got %v", len(data))
	}

	var inner jsoniter.RawMessage
	for _, value := range data {
		inner = value
	}

	if isNullPayload(inner) {
		return []T{}, nil
	}

	var dtos []T
	if len(inner) > 0 && inner[0] == '[' {
		if err := json.Unmarshal(inner, &dtos); err != nil {
			return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal dtos in response: %w", err)
		}

		return dtos, nil
	}

	var singleDTO T
	if err := json.Unmarshal(inner, &singleDTO); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal dto in response: %w", err)
	}

	return append(dtos, singleDTO), nil
}
