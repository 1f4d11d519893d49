package xcm

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	xc "github.com/cordialsys/xcmtransfer"
)

// AssetID identifies an asset by where it lives (Concrete).
type AssetID struct {
	Concrete MultiLocation
}

func (id AssetID) Encode(encoder scale.Encoder) error {
	// Concrete = 0, Abstract = 1
	if err := encoder.PushByte(0); err != nil {
		return err
	}
	return encoder.Encode(id.Concrete)
}

func (id AssetID) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]MultiLocation{"Concrete": id.Concrete})
}

// Fungibility is always Fungible(amount) here; non-fungible assets are not supported.
type Fungibility struct {
	Amount xc.AmountBlockchain
}

func Fungible(amount xc.AmountBlockchain) Fungibility {
	return Fungibility{Amount: amount}
}

func (f Fungibility) Encode(encoder scale.Encoder) error {
	if f.Amount.Sign() < 0 {
		return fmt.Errorf("fungible amount cannot be negative: %s", f.Amount.String())
	}
	// Fungible = 0
	if err := encoder.PushByte(0); err != nil {
		return err
	}
	return encoder.EncodeUintCompact(*f.Amount.Int())
}

func (f Fungibility) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fungible": f.Amount.String()})
}

type MultiAsset struct {
	ID  AssetID
	Fun Fungibility
}

func (a MultiAsset) Encode(encoder scale.Encoder) error {
	if err := encoder.Encode(a.ID); err != nil {
		return err
	}
	return encoder.Encode(a.Fun)
}

func (a MultiAsset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID  AssetID     `json:"id"`
		Fun Fungibility `json:"fun"`
	}{a.ID, a.Fun})
}

// VersionedMultiAssets wraps a list of assets with its XCM version tag.
type VersionedMultiAssets struct {
	Version Version
	Assets  []MultiAsset
}

func NewVersionedMultiAssets(assets ...MultiAsset) VersionedMultiAssets {
	return VersionedMultiAssets{Version: V1, Assets: assets}
}

func (v VersionedMultiAssets) Encode(encoder scale.Encoder) error {
	if v.Version != V1 {
		return fmt.Errorf("unsupported xcm version %d", v.Version)
	}
	if err := encoder.PushByte(byte(v.Version)); err != nil {
		return err
	}
	if err := encoder.EncodeUintCompact(*big.NewInt(int64(len(v.Assets)))); err != nil {
		return err
	}
	for _, asset := range v.Assets {
		if err := encoder.Encode(asset); err != nil {
			return err
		}
	}
	return nil
}

func (v VersionedMultiAssets) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]MultiAsset{fmt.Sprintf("V%d", v.Version): v.Assets})
}
