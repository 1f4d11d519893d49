package xcm

import (
	"math/big"

	xc "github.com/cordialsys/xcmtransfer"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
)

var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Destination is the parent (relay) when targetParaID is nil, otherwise a sibling
// parachain reached through the relay.
func Destination(targetParaID *uint32) VersionedMultiLocation {
	if targetParaID == nil {
		return NewVersionedMultiLocation(ParentLocation())
	}
	return NewVersionedMultiLocation(MultiLocation{
		Parents:  1,
		Interior: Junctions{Parachain(*targetParaID)},
	})
}

// ChildParachain is a parachain as seen from the relay chain.
func ChildParachain(paraID uint32) VersionedMultiLocation {
	return NewVersionedMultiLocation(MultiLocation{
		Parents:  0,
		Interior: Junctions{Parachain(paraID)},
	})
}

// Beneficiary is an account on whichever chain receives the message.
func Beneficiary(id xc.AccountID) VersionedMultiLocation {
	return NewVersionedMultiLocation(MultiLocation{
		Parents:  0,
		Interior: Junctions{AccountID32(NetworkAny, id)},
	})
}

// AccountOnParachain is a single path to an account on another parachain,
// as used by XTokens in place of separate destination and beneficiary.
func AccountOnParachain(paraID uint32, id xc.AccountID) VersionedMultiLocation {
	return NewVersionedMultiLocation(MultiLocation{
		Parents:  1,
		Interior: Junctions{Parachain(paraID), AccountID32(NetworkAny, id)},
	})
}

// AssetIDFor builds the concrete asset id of an asset reference.
//
// The native asset is Here at relativeParents.  The right value depends on the
// route: 0 for an asset local to the sender, 1 for the relay's native token
// seen from a parachain.  Callers must pass the value for their chain family.
//
// An identified asset is the host parachain followed by a general key holding
// the asset id, so hostParaID is required.
func AssetIDFor(ref xc.AssetReference, relativeParents uint8, hostParaID *uint32) (AssetID, error) {
	if ref.IsNative() {
		return AssetID{Concrete: MultiLocation{Parents: relativeParents}}, nil
	}
	if hostParaID == nil {
		return AssetID{}, xcerrors.UnsupportedAssetForRoutef("asset %s needs a host parachain id", ref)
	}
	id, _ := ref.ID()
	key, err := GeneralKeyForAssetID(id)
	if err != nil {
		return AssetID{}, err
	}
	return AssetID{Concrete: MultiLocation{
		Parents:  relativeParents,
		Interior: Junctions{Parachain(*hostParaID), GeneralKey(key)},
	}}, nil
}

// GeneralKeyForAssetID encodes an asset id as its 16 byte little endian u128.
func GeneralKeyForAssetID(id *big.Int) ([]byte, error) {
	if id.Sign() < 0 || id.Cmp(maxU128) > 0 {
		return nil, xcerrors.UnsupportedAssetForRoutef("asset id %s does not fit in a u128", id)
	}
	be := id.FillBytes(make([]byte, 16))
	le := make([]byte, 16)
	for i := range be {
		le[i] = be[15-i]
	}
	return le, nil
}

// FungibleAssets is a single-entry asset list, the shape every transfer here uses.
func FungibleAssets(id AssetID, amount xc.AmountBlockchain) VersionedMultiAssets {
	return NewVersionedMultiAssets(MultiAsset{ID: id, Fun: Fungible(amount)})
}
