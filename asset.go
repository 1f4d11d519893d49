package xcmtransfer

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	xcerrors "github.com/cordialsys/xcmtransfer/errors"
)

const NativeAssetName = "native"

// AssetReference is either the chain's own native token, or a registered asset by numeric id.
// The zero value is the native asset.
type AssetReference struct {
	id *big.Int
}

func NativeAsset() AssetReference {
	return AssetReference{}
}

func IdentifiedAsset(id *big.Int) AssetReference {
	return AssetReference{id: new(big.Int).Set(id)}
}

func (ref AssetReference) IsNative() bool {
	return ref.id == nil
}

// ID returns a copy of the asset id, or false for the native asset.
func (ref AssetReference) ID() (*big.Int, bool) {
	if ref.id == nil {
		return nil, false
	}
	return new(big.Int).Set(ref.id), true
}

func (ref AssetReference) String() string {
	if ref.id == nil {
		return NativeAssetName
	}
	return ref.id.String()
}

// ParseAssetReference accepts "native" or a non-negative decimal asset id.
func ParseAssetReference(s string) (AssetReference, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, NativeAssetName) {
		return NativeAsset(), nil
	}
	id, ok := new(big.Int).SetString(s, 10)
	if !ok || id.Sign() < 0 {
		return AssetReference{}, xcerrors.UnsupportedAssetForRoutef("invalid asset reference %q, expected %q or a decimal asset id", s, NativeAssetName)
	}
	return AssetReference{id: id}, nil
}

func (ref AssetReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(ref.String())
}

func (ref *AssetReference) UnmarshalJSON(p []byte) error {
	var s string
	if err := json.Unmarshal(p, &s); err != nil {
		return fmt.Errorf("asset reference must be a string: %v", err)
	}
	parsed, err := ParseAssetReference(s)
	if err != nil {
		return err
	}
	*ref = parsed
	return nil
}
