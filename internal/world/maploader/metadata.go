package maploader

import (
	"encoding/json"
	"fmt"
)

// TileMetadata seeds the runtime state of one interactive tile.
// Keys the loader does not know are kept in Extra so level authors can
// attach data for other systems (dialogue ids, puzzle answers, ...).
type TileMetadata struct {
	X         int               `json:"x"`
	Y         int               `json:"y"`
	Open      bool              `json:"open,omitempty"`
	Locked    bool              `json:"locked,omitempty"`
	Contents  string            `json:"contents,omitempty"`
	Direction string            `json:"direction,omitempty"`
	Message   string            `json:"message,omitempty"`
	Extra     map[string]string `json:"-"`
}

var knownMetadataKeys = map[string]bool{
	"x": true, "y": true, "open": true, "locked": true,
	"contents": true, "direction": true, "message": true,
}

// UnmarshalJSON decodes the known fields and collects the rest into Extra.
func (m *TileMetadata) UnmarshalJSON(data []byte) error {
	type plain TileMetadata
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if knownMetadataKeys[key] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			p.Extra[key] = s
			continue
		}
		var v interface{}
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("tile metadata field %q: %w", key, err)
		}
		p.Extra[key] = fmt.Sprint(v)
	}

	*m = TileMetadata(p)
	return nil
}

// MarshalJSON writes Extra back alongside the known fields.
func (m TileMetadata) MarshalJSON() ([]byte, error) {
	type plain TileMetadata
	known, err := json.Marshal(plain(m))
	if err != nil || len(m.Extra) == 0 {
		return known, err
	}

	var merged map[string]interface{}
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range m.Extra {
		if !knownMetadataKeys[k] {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
