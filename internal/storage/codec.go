package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/hockeytracker/internal/model"
)

// Decode parses a stored blob into a normalized state. An empty blob yields
// the default state. A parse error is returned alongside the default state so
// callers can log it and carry on.
func Decode(data []byte) (*model.AppState, error) {
	if len(data) == 0 {
		return model.DefaultAppState(), nil
	}

	var state model.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return model.DefaultAppState(), fmt.Errorf("decoding state: %w", err)
	}
	state.Normalize()
	return &state, nil
}

// Encode serializes state for storage
func Encode(state *model.AppState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}
