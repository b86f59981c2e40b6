package gossip

import (
	"encoding/json"
	"fmt"
)

// nodeMeta is the metadata every node attaches to its gossip identity. It
// travels in the memberlist node meta blob, which is limited to 512 bytes,
// so the field set stays small.
type nodeMeta struct {
	System      string   `json:"system"`
	UID         int64    `json:"uid"`
	Roles       []string `json:"roles,omitempty"`
	DataCenters []string `json:"datacenters,omitempty"`
}

func encodeMeta(m nodeMeta) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode node meta: %w", err)
	}

	return b, nil
}

func decodeMeta(b []byte) (nodeMeta, error) {
	var m nodeMeta
	if err := json.Unmarshal(b, &m); err != nil {
		return nodeMeta{}, fmt.Errorf("decode node meta: %w", err)
	}

	if m.System == "" || m.UID == 0 {
		return nodeMeta{}, fmt.Errorf("decode node meta: missing system or uid")
	}

	return m, nil
}
