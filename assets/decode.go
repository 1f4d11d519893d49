package assets

import (
	"bytes"
	"errors"
	"io"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// Assets.Asset value.  Older runtimes end with is_frozen, newer with a status
// enum; both put a 1 in the final byte for a frozen asset.
type assetDetails struct {
	Owner        [32]byte
	Issuer       [32]byte
	Admin        [32]byte
	Freezer      [32]byte
	Supply       types.U128
	Deposit      types.U128
	MinBalance   types.U128
	IsSufficient bool
	Accounts     types.U32
	Sufficients  types.U32
	Approvals    types.U32
}

// Assets.Metadata value.
type assetMetadata struct {
	Deposit  types.U128
	Name     types.Bytes
	Symbol   types.Bytes
	Decimals types.U8
	IsFrozen bool
}

func decodeDetails(value []byte) (assetDetails, bool, error) {
	var details assetDetails
	decoder := scale.NewDecoder(bytes.NewReader(value))
	if err := decoder.Decode(&details); err != nil {
		return details, false, err
	}
	status, err := decoder.ReadOneByte()
	if errors.Is(err, io.EOF) {
		return details, false, nil
	}
	if err != nil {
		return details, false, err
	}
	return details, status == 1, nil
}

func decodeMetadata(value []byte) (assetMetadata, error) {
	var metadata assetMetadata
	decoder := scale.NewDecoder(bytes.NewReader(value))
	err := decoder.Decode(&metadata)
	return metadata, err
}

const idLen = 16

// Both tables are keyed by Blake2_128Concat(u128 id), so the id is the last 16
// bytes of the storage key, little endian.
func idFromKey(key []byte) (*big.Int, bool) {
	if len(key) < idLen {
		return nil, false
	}
	le := key[len(key)-idLen:]
	be := make([]byte, idLen)
	for i := range le {
		be[i] = le[idLen-1-i]
	}
	return new(big.Int).SetBytes(be), true
}
