package state

import (
	"encoding/json"
	"fmt"
)

// snapshotVersion guards the persisted layout. Bump on incompatible changes.
const snapshotVersion = 1

// snapshot is the persisted blob layout. Only durable fields are included;
// time.Time values marshal as RFC 3339 strings through the typed fields on
// State, so no string-shape sniffing happens on load.
type snapshot struct {
	Version int    `json:"version"`
	State   *State `json:"state"`
}

// Encode serializes the container for the blob store.
func Encode(s *State) ([]byte, error) {
	data, err := json.Marshal(snapshot{Version: snapshotVersion, State: s})
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// Decode restores a container from a persisted blob.
func Decode(data []byte) (*State, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported state version %d", snap.Version)
	}
	if snap.State == nil {
		return nil, fmt.Errorf("decoding state: empty snapshot")
	}
	return snap.State, nil
}
