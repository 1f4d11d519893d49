package hex

import (
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Hex is a byte string shown 0x prefixed, as substrate tooling does.
type Hex []byte

func (h Hex) String() string {
	return "0x" + hex.EncodeToString(h)
}

func (h Hex) Bytes() []byte {
	return []byte(h)
}

// Decode accepts the hex with or without the 0x prefix, optionally quoted.
func Decode(s string) (Hex, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"")
	s = strings.Trim(s, "'")
	s = strings.TrimPrefix(s, "0x")
	return hex.DecodeString(s)
}

func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hex) UnmarshalJSON(data []byte) error {
	bz, err := Decode(string(data))
	if err != nil {
		return err
	}
	*h = bz
	return nil
}

func (h Hex) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hex) UnmarshalText(data []byte) error {
	bz, err := Decode(string(data))
	if err != nil {
		return err
	}
	*h = bz
	return nil
}
