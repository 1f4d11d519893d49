package xcmtransfer_test

import (
	"encoding/json"
	"math/big"
	"testing"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/stretchr/testify/require"
)

func TestParseAssetReference(t *testing.T) {
	require := require.New(t)

	ref, err := xc.ParseAssetReference("native")
	require.NoError(err)
	require.True(ref.IsNative())
	_, ok := ref.ID()
	require.False(ok)

	ref, err = xc.ParseAssetReference("340282366920938463463374607431768211455")
	require.NoError(err)
	require.False(ref.IsNative())
	id, ok := ref.ID()
	require.True(ok)
	require.Equal("340282366920938463463374607431768211455", id.String())

	// returned ids are copies
	id.SetInt64(1)
	again, _ := ref.ID()
	require.Equal("340282366920938463463374607431768211455", again.String())

	_, err = xc.ParseAssetReference("DOT")
	require.Error(err)
	_, err = xc.ParseAssetReference("-1")
	require.Error(err)
}

func TestAssetReferenceZeroValueIsNative(t *testing.T) {
	require := require.New(t)
	var ref xc.AssetReference
	require.True(ref.IsNative())
	require.Equal("native", ref.String())
}

func TestAssetReferenceJson(t *testing.T) {
	require := require.New(t)
	ref := xc.IdentifiedAsset(big.NewInt(4294969280))
	bz, err := json.Marshal(ref)
	require.NoError(err)
	require.Equal(`"4294969280"`, string(bz))

	var decoded xc.AssetReference
	require.NoError(json.Unmarshal(bz, &decoded))
	require.Equal(ref.String(), decoded.String())
}

func TestParseAccountIDHex(t *testing.T) {
	require := require.New(t)
	id, err := xc.ParseAccountIDHex("0x5a18b1414ba471070524f17295b98dad3a3c302001e44225909b63305f8cf27b")
	require.NoError(err)
	require.Equal("0x5a18b1414ba471070524f17295b98dad3a3c302001e44225909b63305f8cf27b", id.Hex())

	_, err = xc.ParseAccountIDHex("0x1234")
	require.ErrorContains(err, "expecting 32 bytes")
	_, err = xc.ParseAccountIDHex("zz")
	require.Error(err)
}
