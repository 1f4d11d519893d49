package tx_test

import (
	"encoding/hex"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/extrinsic/extensions"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/batch"
	"github.com/cordialsys/xcmtransfer/call"
	"github.com/cordialsys/xcmtransfer/tx"
	"github.com/stretchr/testify/require"
)

const aliceHex = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func testInput() *tx.TxInput {
	return &tx.TxInput{
		Meta: tx.Metadata{
			Calls: []*tx.CallMeta{
				{Name: string(call.AssetsMint), SectionIndex: 36, MethodIndex: 6},
				{Name: string(call.UtilityBatchAll), SectionIndex: 11, MethodIndex: 2},
			},
			SignedExtensions: []extensions.SignedExtensionName{
				"CheckSpecVersion",
				"CheckTxVersion",
				"CheckGenesis",
				"CheckMortality",
				"CheckNonce",
				"CheckWeight",
				"ChargeTransactionPayment",
			},
		},
		Rv:    types.RuntimeVersion{SpecVersion: 9430, TransactionVersion: 24},
		Nonce: 7,
	}
}

func mint(amount uint64) *call.Call {
	var id xc.AccountID
	return call.New(call.AssetsMint,
		call.NewArg("id", call.NewCompact(xc.NewAmountBlockchainFromUint64(1))),
		call.NewArg("beneficiary", call.NewMultiAddress(xc.MultiAddressId, id)),
		call.NewArg("amount", call.NewCompact(xc.NewAmountBlockchainFromUint64(amount))),
	)
}

func TestFindCallIndex(t *testing.T) {
	require := require.New(t)
	meta := testInput().Meta

	index, err := meta.FindCallIndex(string(call.AssetsMint))
	require.NoError(err)
	require.Equal(types.CallIndex{SectionIndex: 36, MethodIndex: 6}, index)
	require.True(meta.Supports(call.UtilityBatchAll))
	require.False(meta.Supports(call.SudoSudo))

	_, err = meta.FindCallIndex(string(call.XTokensTransfer))
	require.ErrorContains(err, "chain does not support call XTokens.transfer")
}

func TestNewTxUnsupportedCall(t *testing.T) {
	var alice xc.AccountID
	_, err := tx.NewTx(call.New(call.SudoSudo, call.NewArg("call", mint(1))), alice, testInput())
	require.Error(t, err)
}

func TestSignTx(t *testing.T) {
	require := require.New(t)

	signer, err := tx.NewSigner("//Alice")
	require.NoError(err)
	require.Equal(aliceHex, hex.EncodeToString(signer.AccountID().Bytes()))

	transaction, err := tx.NewTx(mint(100), signer.AccountID(), testInput())
	require.NoError(err)
	require.EqualValues(7, transaction.Nonce())
	require.Equal(call.AssetsMint, transaction.Call().Method())
	require.False(transaction.IsSigned())

	sighash, err := transaction.Sighash()
	require.NoError(err)
	require.NoError(tx.Sign(transaction, signer))
	require.True(transaction.IsSigned())

	serialized, err := transaction.Serialize()
	require.NoError(err)
	require.NotEmpty(serialized)
	require.Len(transaction.Hash(), 66)

	// the signature is over the sighash
	ok, err := signature.Verify(sighash, extractSignature(t, serialized), "//Alice")
	require.NoError(err)
	require.True(ok)
}

// version byte, compact length prefix, 0x00 + 32 byte signer, 0x01 sr25519 tag, 64 bytes
func extractSignature(t *testing.T, serialized []byte) []byte {
	// skip the compact length prefix (two bytes for these sizes)
	body := serialized[2:]
	require.Equal(t, byte(0x84), body[0])
	start := 1 + 1 + 32 + 1
	return body[start : start+64]
}

func TestSignWithOtherSigner(t *testing.T) {
	require := require.New(t)
	bob, err := tx.NewSigner("//Bob")
	require.NoError(err)
	var alice xc.AccountID
	copy(alice[:], mustHex(aliceHex))

	transaction, err := tx.NewTx(mint(100), alice, testInput())
	require.NoError(err)
	require.ErrorContains(tx.Sign(transaction, bob), "is not the sender")
}

func TestSighashOfLargePayloadIsHashed(t *testing.T) {
	require := require.New(t)
	calls := make([]*call.Call, 20)
	for i := range calls {
		calls[i] = mint(uint64(i + 1))
	}
	b, err := batch.WrapAtomic(calls)
	require.NoError(err)

	var alice xc.AccountID
	transaction, err := tx.NewTx(b, alice, testInput())
	require.NoError(err)
	sighash, err := transaction.Sighash()
	require.NoError(err)
	require.Len(sighash, 32)
}

func TestSetSignatureLength(t *testing.T) {
	var alice xc.AccountID
	transaction, err := tx.NewTx(mint(1), alice, testInput())
	require.NoError(t, err)
	require.Error(t, transaction.SetSignature([]byte{1, 2, 3}))
}

func TestSeedSigner(t *testing.T) {
	require := require.New(t)
	seed := "0x0931ee5849b18ce7699982d3222b6b861e28336462659e709f93e9d903986da7"

	signer, err := tx.NewSigner(seed)
	require.NoError(err)
	require.IsType(&tx.SeedSigner{}, signer)

	// same key as subkey derives from the seed
	keyring, err := tx.NewKeyringSigner(seed)
	require.NoError(err)
	require.Equal(keyring.AccountID(), signer.AccountID())

	msg := mustHex("d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	sig, err := signer.Sign(msg)
	require.NoError(err)
	ok, err := signature.Verify(msg, sig, seed)
	require.NoError(err)
	require.True(ok)

	_, err = tx.NewSigner("0x1234")
	require.Error(err)
	_, err = tx.NewSigner("")
	require.Error(err)
}

func mustHex(s string) []byte {
	bz, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return bz
}
