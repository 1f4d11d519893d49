package call_test

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/call"
	"github.com/stretchr/testify/require"
)

type fakeIndexes map[string]types.CallIndex

func (f fakeIndexes) FindCallIndex(name string) (types.CallIndex, error) {
	if index, ok := f[name]; ok {
		return index, nil
	}
	return types.CallIndex{}, fmt.Errorf("unknown call %s", name)
}

var indexes = fakeIndexes{
	string(call.AssetsMint):      {SectionIndex: 36, MethodIndex: 6},
	string(call.UtilityBatchAll): {SectionIndex: 11, MethodIndex: 2},
	string(call.SudoSudo):        {SectionIndex: 99, MethodIndex: 0},
	string(call.SudoSudoAs):      {SectionIndex: 99, MethodIndex: 3},
}

func mint(amount uint64) *call.Call {
	var id xc.AccountID
	id[0] = 0xAA
	return call.New(call.AssetsMint,
		call.NewArg("id", call.NewCompact(xc.NewAmountBlockchainFromUint64(1))),
		call.NewArg("beneficiary", call.NewMultiAddress(xc.MultiAddressId, id)),
		call.NewArg("amount", call.NewCompact(xc.NewAmountBlockchainFromUint64(amount))),
	)
}

func TestMethodParts(t *testing.T) {
	require := require.New(t)
	require.Equal("Utility", call.UtilityBatchAll.Pallet())
	require.Equal("batch_all", call.UtilityBatchAll.Name())
	require.Equal(call.AssetsMint, call.NewMethod("Assets", "mint"))
}

func TestEncodeCall(t *testing.T) {
	require := require.New(t)

	bz, err := mint(100).EncodeToBytes(indexes)
	require.NoError(err)
	// index, compact(1), Id variant + 32 bytes, compact(100)
	expected := "2406" + "04" + "00" + "aa" + repeat("00", 31) + "9101"
	require.Equal(expected, hex.EncodeToString(bz))
}

func TestEncodeNestedCalls(t *testing.T) {
	require := require.New(t)

	inner, err := mint(100).EncodeToBytes(indexes)
	require.NoError(err)

	batch := call.New(call.UtilityBatchAll, call.NewArg("calls", []*call.Call{mint(100), mint(100)}))
	bz, err := batch.EncodeToBytes(indexes)
	require.NoError(err)
	require.Equal("0b02"+"08"+hex.EncodeToString(inner)+hex.EncodeToString(inner), hex.EncodeToString(bz))

	sudo := call.New(call.SudoSudo, call.NewArg("call", batch))
	bz, err = sudo.EncodeToBytes(indexes)
	require.NoError(err)
	require.Equal("6300"+"0b02"+"08"+hex.EncodeToString(inner)+hex.EncodeToString(inner), hex.EncodeToString(bz))

	require.Len(batch.Inner(), 2)
	require.Len(sudo.Inner(), 1)
}

func TestEncodeUnknownCall(t *testing.T) {
	require := require.New(t)
	_, err := call.New(call.XTokensTransfer).Encode(indexes)
	require.ErrorContains(err, "unknown call XTokens.transfer")

	batch := call.New(call.UtilityBatchAll, call.NewArg("calls", []*call.Call{call.New(call.XTokensTransfer)}))
	_, err = batch.Encode(indexes)
	require.ErrorContains(err, "argument calls")
}

func TestCompactRejectsNegative(t *testing.T) {
	require := require.New(t)
	negative := xc.NewAmountBlockchainFromBig(big.NewInt(-1))
	c := call.New(call.AssetsMint, call.NewArg("amount", call.NewCompact(negative)))
	_, err := c.Encode(indexes)
	require.ErrorContains(err, "negative")
}

func TestMultiAddressVariants(t *testing.T) {
	require := require.New(t)
	var id xc.AccountID
	c := call.New(call.AssetsMint, call.NewArg("beneficiary", call.NewMultiAddress(xc.MultiAddressAddress32, id)))
	bz, err := c.EncodeToBytes(indexes)
	require.NoError(err)
	require.Equal("2406"+"03"+repeat("00", 32), hex.EncodeToString(bz))
}

func TestCallIsNotMutatedThroughArgs(t *testing.T) {
	require := require.New(t)
	c := mint(5)
	args := c.Args()
	args[0] = call.NewArg("other", 1)
	value, ok := c.Arg("id")
	require.True(ok)
	require.Equal(call.NewCompact(xc.NewAmountBlockchainFromUint64(1)), value)
	_, ok = c.Arg("other")
	require.False(ok)
}

func TestCallJSON(t *testing.T) {
	require := require.New(t)
	bz, err := mint(7).MarshalJSON()
	require.NoError(err)
	require.JSONEq(`{
		"pallet": "Assets",
		"method": "mint",
		"args": [
			{"name": "id", "value": "1"},
			{"name": "beneficiary", "value": {"Id": "0xaa`+repeat("00", 31)+`"}},
			{"name": "amount", "value": "7"}
		]
	}`, string(bz))
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
