package domain

import (
	"encoding/json"
	"sort"

	"go.trai.ch/zerr"
)

// Snapshot is the persisted record of one build: the serialized text each
// definition key produced, and which modules consumed each key. Its format
// is private; the only guarantee is that the same version can read back what
// it wrote.
type Snapshot struct {
	Values map[string]string   `json:"values"`
	UsedBy map[string][]string `json:"modules_using_key"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Values: make(map[string]string),
		UsedBy: make(map[string][]string),
	}
}

// Encode serializes the snapshot to its blob form. Module lists are sorted
// so the blob is deterministic for identical run state.
func (s *Snapshot) Encode() (string, error) {
	for key := range s.UsedBy {
		sort.Strings(s.UsedBy[key])
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", zerr.Wrap(err, "failed to marshal snapshot")
	}
	return string(data), nil
}

// DecodeSnapshot parses a snapshot blob written by Encode.
func DecodeSnapshot(blob string) (*Snapshot, error) {
	snap := NewSnapshot()
	if err := json.Unmarshal([]byte(blob), snap); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal snapshot")
	}
	if snap.Values == nil {
		snap.Values = make(map[string]string)
	}
	if snap.UsedBy == nil {
		snap.UsedBy = make(map[string][]string)
	}
	return snap, nil
}
