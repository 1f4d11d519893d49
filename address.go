package xcmtransfer

import (
	"fmt"

	"github.com/cordialsys/xcmtransfer/pkg/hex"
)

// Address is a human readable, network encoded (SS58) address.
type Address string

// AccountID is the raw 32 byte public key behind an Address.
type AccountID [32]byte

func (id AccountID) Bytes() []byte {
	return id[:]
}

func (id AccountID) Hex() string {
	return hex.Hex(id[:]).String()
}

func (id AccountID) String() string {
	return id.Hex()
}

func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

func (id *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountIDHex(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseAccountIDHex parses a 0x prefixed (or bare) 32 byte hex public key.
func ParseAccountIDHex(s string) (AccountID, error) {
	var id AccountID
	bz, err := hex.Decode(s)
	if err != nil {
		return id, fmt.Errorf("invalid account id hex: %v", err)
	}
	if len(bz) != len(id) {
		return id, fmt.Errorf("invalid account id, expecting %d bytes but got %d", len(id), len(bz))
	}
	copy(id[:], bz)
	return id, nil
}
