package xcm

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/pkg/hex"
)

// NetworkKind is the V1 NetworkId variant.
type NetworkKind uint8

const (
	NetworkAnyKind NetworkKind = iota
	NetworkNamedKind
	NetworkPolkadotKind
	NetworkKusamaKind
)

type NetworkID struct {
	Kind NetworkKind
	Name []byte
}

var NetworkAny = NetworkID{Kind: NetworkAnyKind}

func (n NetworkID) Encode(encoder scale.Encoder) error {
	if err := encoder.PushByte(byte(n.Kind)); err != nil {
		return err
	}
	if n.Kind == NetworkNamedKind {
		return encoder.Encode(n.Name)
	}
	return nil
}

func (n NetworkID) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case NetworkAnyKind:
		return json.Marshal("Any")
	case NetworkNamedKind:
		return json.Marshal(map[string]string{"Named": hex.Hex(n.Name).String()})
	case NetworkPolkadotKind:
		return json.Marshal("Polkadot")
	case NetworkKusamaKind:
		return json.Marshal("Kusama")
	}
	return nil, fmt.Errorf("unknown network kind %d", n.Kind)
}

// JunctionKind is the V1 Junction variant index.
type JunctionKind uint8

const (
	JunctionParachain JunctionKind = iota
	JunctionAccountID32
	JunctionAccountIndex64
	JunctionAccountKey20
	JunctionPalletInstance
	JunctionGeneralIndex
	JunctionGeneralKey
	JunctionOnlyChild
)

// Junction is one step of an interior location path.  Only the fields of the
// selected Kind are meaningful.
type Junction struct {
	Kind           JunctionKind
	ParachainID    uint32
	Network        NetworkID
	AccountID      xc.AccountID
	PalletInstance uint8
	GeneralIndex   *big.Int
	GeneralKey     []byte
}

func Parachain(id uint32) Junction {
	return Junction{Kind: JunctionParachain, ParachainID: id}
}

func AccountID32(network NetworkID, id xc.AccountID) Junction {
	return Junction{Kind: JunctionAccountID32, Network: network, AccountID: id}
}

func PalletInstance(index uint8) Junction {
	return Junction{Kind: JunctionPalletInstance, PalletInstance: index}
}

func GeneralIndex(index *big.Int) Junction {
	return Junction{Kind: JunctionGeneralIndex, GeneralIndex: new(big.Int).Set(index)}
}

func GeneralKey(key []byte) Junction {
	return Junction{Kind: JunctionGeneralKey, GeneralKey: append([]byte{}, key...)}
}

func (j Junction) Encode(encoder scale.Encoder) error {
	if err := encoder.PushByte(byte(j.Kind)); err != nil {
		return err
	}
	switch j.Kind {
	case JunctionParachain:
		return encoder.EncodeUintCompact(*new(big.Int).SetUint64(uint64(j.ParachainID)))
	case JunctionAccountID32:
		if err := encoder.Encode(j.Network); err != nil {
			return err
		}
		return encoder.Write(j.AccountID[:])
	case JunctionPalletInstance:
		return encoder.PushByte(j.PalletInstance)
	case JunctionGeneralIndex:
		if j.GeneralIndex == nil {
			return fmt.Errorf("general index junction has no index")
		}
		return encoder.EncodeUintCompact(*j.GeneralIndex)
	case JunctionGeneralKey:
		return encoder.Encode(j.GeneralKey)
	case JunctionOnlyChild:
		return nil
	}
	return fmt.Errorf("unsupported junction kind %d", j.Kind)
}

func (j Junction) MarshalJSON() ([]byte, error) {
	switch j.Kind {
	case JunctionParachain:
		return json.Marshal(map[string]uint32{"Parachain": j.ParachainID})
	case JunctionAccountID32:
		return json.Marshal(map[string]interface{}{
			"AccountId32": map[string]interface{}{
				"network": j.Network,
				"id":      j.AccountID.Hex(),
			},
		})
	case JunctionPalletInstance:
		return json.Marshal(map[string]uint8{"PalletInstance": j.PalletInstance})
	case JunctionGeneralIndex:
		return json.Marshal(map[string]string{"GeneralIndex": j.GeneralIndex.String()})
	case JunctionGeneralKey:
		return json.Marshal(map[string]string{"GeneralKey": hex.Hex(j.GeneralKey).String()})
	case JunctionOnlyChild:
		return json.Marshal("OnlyChild")
	}
	return nil, fmt.Errorf("unsupported junction kind %d", j.Kind)
}

const MaxJunctions = 8

// Junctions is an interior path; no junctions means Here.
type Junctions []Junction

func (js Junctions) IsHere() bool {
	return len(js) == 0
}

func (js Junctions) Encode(encoder scale.Encoder) error {
	if len(js) > MaxJunctions {
		return fmt.Errorf("location has %d junctions, at most %d are allowed", len(js), MaxJunctions)
	}
	// Here = 0, X1 = 1 ... X8 = 8
	if err := encoder.PushByte(byte(len(js))); err != nil {
		return err
	}
	for _, j := range js {
		if err := encoder.Encode(j); err != nil {
			return err
		}
	}
	return nil
}

func (js Junctions) MarshalJSON() ([]byte, error) {
	switch len(js) {
	case 0:
		return json.Marshal("Here")
	case 1:
		return json.Marshal(map[string]Junction{"X1": js[0]})
	}
	return json.Marshal(map[string][]Junction{fmt.Sprintf("X%d", len(js)): js})
}
