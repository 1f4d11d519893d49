package call

import (
	"encoding/json"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	xc "github.com/cordialsys/xcmtransfer"
)

// Compact is an unsigned integer argument using SCALE compact encoding, e.g. balances and asset ids.
type Compact xc.AmountBlockchain

func NewCompact(amount xc.AmountBlockchain) Compact {
	return Compact(amount)
}

func (c Compact) Encode(encoder scale.Encoder) error {
	amount := xc.AmountBlockchain(c)
	if amount.Sign() < 0 {
		return fmt.Errorf("compact value cannot be negative: %s", amount.String())
	}
	return encoder.EncodeUintCompact(*amount.Int())
}

func (c Compact) MarshalJSON() ([]byte, error) {
	return json.Marshal(xc.AmountBlockchain(c).String())
}

// MultiAddress is an account lookup argument.  Chains differ on which variant they accept.
type MultiAddress struct {
	Kind xc.MultiAddressKind
	ID   xc.AccountID
}

func NewMultiAddress(kind xc.MultiAddressKind, id xc.AccountID) MultiAddress {
	return MultiAddress{Kind: kind, ID: id}
}

func (m MultiAddress) Encode(encoder scale.Encoder) error {
	// Id = 0, Index = 1, Raw = 2, Address32 = 3, Address20 = 4
	switch m.Kind {
	case xc.MultiAddressId, "":
		if err := encoder.PushByte(0); err != nil {
			return err
		}
	case xc.MultiAddressAddress32:
		if err := encoder.PushByte(3); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported multi address kind %q", m.Kind)
	}
	return encoder.Write(m.ID[:])
}

func (m MultiAddress) MarshalJSON() ([]byte, error) {
	name := "Id"
	if m.Kind == xc.MultiAddressAddress32 {
		name = "Address32"
	}
	return json.Marshal(map[string]string{name: m.ID.Hex()})
}

// U128 is a fixed width little endian unsigned 128 bit argument.
type U128 xc.AmountBlockchain

func NewU128(amount xc.AmountBlockchain) U128 {
	return U128(amount)
}

func (u U128) Encode(encoder scale.Encoder) error {
	amount := xc.AmountBlockchain(u)
	if amount.Sign() < 0 || amount.Int().BitLen() > 128 {
		return fmt.Errorf("value does not fit in a u128: %s", amount.String())
	}
	return encoder.Encode(types.NewU128(*amount.Int()))
}

func (u U128) MarshalJSON() ([]byte, error) {
	return json.Marshal(xc.AmountBlockchain(u).String())
}
