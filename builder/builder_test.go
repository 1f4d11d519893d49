package builder_test

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/builder"
	"github.com/cordialsys/xcmtransfer/builder/buildertest"
	"github.com/cordialsys/xcmtransfer/call"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/cordialsys/xcmtransfer/xcm"
	"github.com/stretchr/testify/require"
)

const aliceHex = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func alice() xc.AccountID {
	id, err := xc.ParseAccountIDHex("0x" + aliceHex)
	if err != nil {
		panic(err)
	}
	return id
}

func astar() *xc.ChainConfig {
	return &xc.ChainConfig{
		Name:       "astar",
		Family:     xc.FamilyAstar,
		Kind:       xc.KindParachain,
		SS58Prefix: 5,
		ParaID:     2006,
		Symbol:     "ASTR",
	}
}

func polkadot() *xc.ChainConfig {
	return &xc.ChainConfig{
		Name:       "polkadot",
		Family:     xc.FamilyRelay,
		Kind:       xc.KindRelay,
		SS58Prefix: 0,
		Symbol:     "DOT",
	}
}

func acala() *xc.ChainConfig {
	return &xc.ChainConfig{
		Name:         "acala",
		Family:       xc.FamilyAcala,
		Kind:         xc.KindParachain,
		SS58Prefix:   10,
		ParaID:       2000,
		Symbol:       "ACA",
		TokenSymbols: map[string]uint8{"ACA": 0, "AUSD": 1, "DOT": 2, "LDOT": 3},
	}
}

func arg(t *testing.T, c *call.Call, name string) interface{} {
	value, ok := c.Arg(name)
	require.True(t, ok, "missing argument %s", name)
	return value
}

func TestNewTransferStrategy(t *testing.T) {
	require := require.New(t)

	s, err := builder.NewTransferStrategy(astar())
	require.NoError(err)
	require.IsType(&builder.ParachainXcm{}, s)

	s, err = builder.NewTransferStrategy(polkadot())
	require.NoError(err)
	require.IsType(&builder.Relay{}, s)

	s, err = builder.NewTransferStrategy(acala())
	require.NoError(err)
	require.IsType(&builder.XTokens{}, s)

	_, err = builder.NewTransferStrategy(&xc.ChainConfig{Family: "evm"})
	require.Error(err)

	args, err := builder.NewTransferArgs(alice(), xc.NewAmountBlockchainFromUint64(10), builder.OptionDestinationParachain(2006))
	require.NoError(err)
	for chain, method := range map[*xc.ChainConfig]call.Method{
		polkadot(): call.XcmPalletReserveTransferAssets,
		astar():    call.PolkadotXcmReserveWithdrawAssets,
		acala():    call.XTokensTransfer,
	} {
		strategy, err := builder.NewTransferStrategy(chain)
		require.NoError(err)
		c, err := strategy.Transfer(args)
		require.NoError(err, chain.Name)
		require.Equal(method, c.Method())
	}
}

func TestReserveTransferToParachain(t *testing.T) {
	require := require.New(t)
	amount := xc.NewAmountBlockchainFromUint64(1_000_000_000)

	c, err := builder.NewParachainXcm(astar()).ReserveTransferToParachain(amount, xc.NativeAsset(), 2000, alice())
	require.NoError(err)
	require.Equal(call.PolkadotXcmReserveWithdrawAssets, c.Method())

	dest := arg(t, c, "dest").(xcm.VersionedMultiLocation)
	require.EqualValues(1, dest.Location.Parents)
	require.Len(dest.Location.Interior, 1)
	require.Equal(xcm.JunctionParachain, dest.Location.Interior[0].Kind)
	require.EqualValues(2000, dest.Location.Interior[0].ParachainID)

	assets := arg(t, c, "assets").(xcm.VersionedMultiAssets)
	require.Len(assets.Assets, 1)
	require.Equal("1000000000", assets.Assets[0].Fun.Amount.String())
	require.EqualValues(1, assets.Assets[0].ID.Concrete.Parents)
	require.True(assets.Assets[0].ID.Concrete.Interior.IsHere())

	require.Equal(types.NewU32(0), arg(t, c, "fee_asset_item"))

	bz, err := c.EncodeToBytes(buildertest.FakeCallIndexes{})
	require.NoError(err)
	require.Equal(
		"0200"+
			"01010100411f"+
			"0100010100"+aliceHex+
			"0104"+"000100"+"00"+"02286bee"+
			"00000000",
		hex.EncodeToString(bz),
	)
}

func TestReserveTransferMethodByFamily(t *testing.T) {
	require := require.New(t)
	amount := xc.NewAmountBlockchainFromUint64(10)

	chain := astar()
	chain.Family = xc.FamilyPolkadotXcm
	c, err := builder.NewParachainXcm(chain).ReserveTransferToRelay(amount, alice())
	require.NoError(err)
	require.Equal(call.PolkadotXcmReserveTransferAssets, c.Method())

	chain.TransferMethod = "reserve_withdraw_assets"
	c, err = builder.NewParachainXcm(chain).ReserveTransferToRelay(amount, alice())
	require.NoError(err)
	require.Equal(call.PolkadotXcmReserveWithdrawAssets, c.Method())

	// a method whose call index would never be kept from metadata
	chain.TransferMethod = "limited_reserve_transfer_assets"
	_, err = builder.NewParachainXcm(chain).ReserveTransferToRelay(amount, alice())
	require.ErrorContains(err, "unsupported transfer method PolkadotXcm.limited_reserve_transfer_assets")
}

func TestTransferMethod(t *testing.T) {
	for _, tc := range []struct {
		name   string
		chain  func() *xc.ChainConfig
		pallet string
		method string
		result call.Method
		err    string
	}{
		{name: "relay default", chain: polkadot, result: call.XcmPalletReserveTransferAssets},
		{name: "astar default", chain: astar, result: call.PolkadotXcmReserveWithdrawAssets},
		{name: "astar override", chain: astar, method: "reserve_transfer_assets", result: call.PolkadotXcmReserveTransferAssets},
		{name: "acala", chain: acala, result: call.XTokensTransfer},
		{name: "acala override", chain: acala, pallet: "PolkadotXcm", err: "always uses XTokens.transfer"},
		{name: "unknown pallet", chain: polkadot, pallet: "XcmPalet", err: "unsupported transfer method XcmPalet.reserve_transfer_assets"},
		{name: "unknown method", chain: astar, method: "teleport_assets", err: "unsupported transfer method PolkadotXcm.teleport_assets"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)
			chain := tc.chain()
			chain.XcmPallet = tc.pallet
			chain.TransferMethod = tc.method
			m, err := builder.TransferMethod(chain)
			if tc.err != "" {
				require.ErrorContains(err, tc.err)
				return
			}
			require.NoError(err)
			require.Equal(tc.result, m)
		})
	}
}

func TestReserveTransferToRelay(t *testing.T) {
	require := require.New(t)
	amount := xc.NewAmountBlockchainFromUint64(5_000_000_000)

	c, err := builder.NewParachainXcm(astar()).ReserveTransferToRelay(amount, alice())
	require.NoError(err)

	dest := arg(t, c, "dest").(xcm.VersionedMultiLocation)
	require.Equal(xcm.ParentLocation(), dest.Location)

	beneficiary := arg(t, c, "beneficiary").(xcm.VersionedMultiLocation)
	require.EqualValues(0, beneficiary.Location.Parents)
	require.Len(beneficiary.Location.Interior, 1)
	require.Equal(alice(), beneficiary.Location.Interior[0].AccountID)

	assets := arg(t, c, "assets").(xcm.VersionedMultiAssets)
	require.EqualValues(xc.DefaultRelayNativeParents, assets.Assets[0].ID.Concrete.Parents)

	// the relay token's parents value is configuration
	zero := uint8(0)
	chain := astar()
	chain.RelayNativeParents = &zero
	c, err = builder.NewParachainXcm(chain).ReserveTransferToRelay(amount, alice())
	require.NoError(err)
	assets = arg(t, c, "assets").(xcm.VersionedMultiAssets)
	require.EqualValues(0, assets.Assets[0].ID.Concrete.Parents)
}

func TestParachainTransferArgs(t *testing.T) {
	require := require.New(t)
	amount := xc.NewAmountBlockchainFromUint64(100)
	strategy := builder.NewParachainXcm(astar())

	// no destination: the relay chain
	c, err := strategy.Transfer(buildertest.MustNewTransferArgs(alice(), amount))
	require.NoError(err)
	require.Equal(xcm.Destination(nil), arg(t, c, "dest"))

	// only native assets go to the relay
	args := buildertest.MustNewTransferArgs(alice(), amount, builder.OptionAsset(xc.IdentifiedAsset(big.NewInt(7))))
	_, err = strategy.Transfer(args)
	require.ErrorIs(err, xcerrors.ErrUnsupportedAssetForRoute)

	// an identified asset is located on its host parachain
	args = buildertest.MustNewTransferArgs(alice(), amount,
		builder.OptionAsset(xc.IdentifiedAsset(big.NewInt(7))),
		builder.OptionDestinationParachain(2000),
		builder.OptionFeeAssetItem(0),
	)
	c, err = strategy.Transfer(args)
	require.NoError(err)
	assets := arg(t, c, "assets").(xcm.VersionedMultiAssets)
	location := assets.Assets[0].ID.Concrete
	require.EqualValues(1, location.Parents)
	require.Len(location.Interior, 2)
	require.EqualValues(2006, location.Interior[0].ParachainID)
	require.Equal(xcm.JunctionGeneralKey, location.Interior[1].Kind)
	require.Equal(byte(7), location.Interior[1].GeneralKey[0])

	// without a parachain id the asset cannot be located
	chain := astar()
	chain.ParaID = 0
	_, err = builder.NewParachainXcm(chain).Transfer(args)
	require.ErrorIs(err, xcerrors.ErrUnsupportedAssetForRoute)
}

func TestInvalidAmounts(t *testing.T) {
	require := require.New(t)
	zero := xc.NewAmountBlockchainFromUint64(0)

	_, err := builder.NewTransferArgs(alice(), zero)
	require.ErrorIs(err, xcerrors.ErrInvalidAmount)

	_, err = builder.NewParachainXcm(astar()).ReserveTransferToRelay(zero, alice())
	require.ErrorIs(err, xcerrors.ErrInvalidAmount)
	_, err = builder.NewParachainXcm(astar()).ReserveTransferToParachain(zero, xc.NativeAsset(), 2000, alice())
	require.ErrorIs(err, xcerrors.ErrInvalidAmount)
	_, err = builder.NewRelay(polkadot()).RelayToParachain(2006, zero, alice())
	require.ErrorIs(err, xcerrors.ErrInvalidAmount)
	_, err = builder.NewXTokens(acala()).TransferToken("DOT", zero, 2006, alice())
	require.ErrorIs(err, xcerrors.ErrInvalidAmount)
	_, err = builder.NewAssetsMint(astar()).Mint(big.NewInt(1), alice(), zero)
	require.ErrorIs(err, xcerrors.ErrInvalidAmount)
}

func TestRelayToParachain(t *testing.T) {
	require := require.New(t)
	amount := xc.NewAmountBlockchainFromUint64(1_000_000_000)

	c, err := builder.NewRelay(polkadot()).RelayToParachain(2006, amount, alice())
	require.NoError(err)
	require.Equal(call.XcmPalletReserveTransferAssets, c.Method())

	dest := arg(t, c, "dest").(xcm.VersionedMultiLocation)
	require.EqualValues(0, dest.Location.Parents)
	require.EqualValues(2006, dest.Location.Interior[0].ParachainID)

	assets := arg(t, c, "assets").(xcm.VersionedMultiAssets)
	require.Equal(xcm.Here(), assets.Assets[0].ID.Concrete)

	bz, err := c.EncodeToBytes(buildertest.FakeCallIndexes{})
	require.NoError(err)
	require.Equal(
		"0300"+
			"01000100591f"+
			"0100010100"+aliceHex+
			"0104"+"000000"+"00"+"02286bee"+
			"00000000",
		hex.EncodeToString(bz),
	)
}

func TestRelayRejectsNonNativeRoutes(t *testing.T) {
	require := require.New(t)
	amount := xc.NewAmountBlockchainFromUint64(1)
	relay := builder.NewRelay(polkadot())

	_, err := relay.Transfer(buildertest.MustNewTransferArgs(alice(), amount))
	require.ErrorIs(err, xcerrors.ErrUnsupportedAssetForRoute)

	_, err = relay.Transfer(buildertest.MustNewTransferArgs(alice(), amount,
		builder.OptionDestinationParachain(2006),
		builder.OptionAsset(xc.IdentifiedAsset(big.NewInt(1))),
	))
	require.ErrorIs(err, xcerrors.ErrUnsupportedAssetForRoute)

	c, err := relay.Transfer(buildertest.MustNewTransferArgs(alice(), amount, builder.OptionDestinationParachain(2006)))
	require.NoError(err)
	require.Equal(xcm.ChildParachain(2006), arg(t, c, "dest"))
}

func TestXTokensTransfer(t *testing.T) {
	require := require.New(t)
	amount := xc.NewAmountBlockchainFromUint64(1_000_000_000)

	c, err := builder.NewXTokens(acala()).TransferToken("DOT", amount, 2006, alice())
	require.NoError(err)
	require.Equal(call.XTokensTransfer, c.Method())
	require.Equal(builder.CurrencyID{Symbol: "DOT", Index: 2}, arg(t, c, "currency_id"))
	require.Equal(types.NewU64(xc.DefaultXTokensWeight), arg(t, c, "dest_weight"))
	require.Equal(xcm.AccountOnParachain(2006, alice()), arg(t, c, "dest"))

	bz, err := c.EncodeToBytes(buildertest.FakeCallIndexes{})
	require.NoError(err)
	require.Equal(
		"0400"+
			"0002"+
			"00ca9a3b000000000000000000000000"+
			"010102"+"00591f"+"0100"+aliceHex+
			"00f2052a01000000",
		hex.EncodeToString(bz),
	)

	bz, err = json.Marshal(c)
	require.NoError(err)
	require.Contains(string(bz), `{"name":"currency_id","value":{"Token":"DOT"}}`)
	require.Contains(string(bz), `{"name":"amount","value":"1000000000"}`)
}

func TestXTokensOptions(t *testing.T) {
	require := require.New(t)
	amount := xc.NewAmountBlockchainFromUint64(1)
	strategy := builder.NewXTokens(acala())

	// native asset falls back to the chain symbol
	c, err := strategy.Transfer(buildertest.MustNewTransferArgs(alice(), amount,
		builder.OptionDestinationParachain(2006),
		builder.OptionDestWeight(42),
	))
	require.NoError(err)
	require.Equal(builder.CurrencyID{Symbol: "ACA", Index: 0}, arg(t, c, "currency_id"))
	require.Equal(types.NewU64(42), arg(t, c, "dest_weight"))

	// to the relay: parents 1, the account only
	c, err = strategy.Transfer(buildertest.MustNewTransferArgs(alice(), amount, builder.OptionTokenSymbol("DOT")))
	require.NoError(err)
	dest := arg(t, c, "dest").(xcm.VersionedMultiLocation)
	require.EqualValues(1, dest.Location.Parents)
	require.Equal(xcm.JunctionAccountID32, dest.Location.Interior[0].Kind)

	_, err = strategy.Transfer(buildertest.MustNewTransferArgs(alice(), amount, builder.OptionTokenSymbol("KSM")))
	require.ErrorIs(err, xcerrors.ErrUnsupportedAssetForRoute)

	// symbols are case sensitive
	_, err = strategy.Transfer(buildertest.MustNewTransferArgs(alice(), amount, builder.OptionTokenSymbol("dot")))
	require.ErrorIs(err, xcerrors.ErrUnsupportedAssetForRoute)

	_, err = strategy.Transfer(buildertest.MustNewTransferArgs(alice(), amount, builder.OptionAsset(xc.IdentifiedAsset(big.NewInt(3)))))
	require.ErrorIs(err, xcerrors.ErrUnsupportedAssetForRoute)
}

func TestMintAll(t *testing.T) {
	require := require.New(t)
	bob := xc.AccountID{0x8e, 0xaf}

	assetID, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	args := buildertest.MustNewMintArgs(assetID, []builder.Receiver{
		builder.NewReceiver(alice(), xc.NewAmountBlockchainFromUint64(10_000_000)),
		builder.NewReceiver(bob, xc.NewAmountBlockchainFromUint64(4_000_001)),
	}, builder.OptionExecuteFee(xc.NewAmountBlockchainFromUint64(4_000_000)))

	calls, err := builder.NewAssetsMint(astar()).MintAll(args)
	require.NoError(err)
	require.Len(calls, 2)
	require.Equal(call.NewCompact(xc.NewAmountBlockchainFromUint64(6_000_000)), arg(t, calls[0], "amount"))
	require.Equal(call.NewCompact(xc.NewAmountBlockchainFromUint64(1)), arg(t, calls[1], "amount"))
	require.Equal(call.NewMultiAddress(xc.MultiAddressId, bob), arg(t, calls[1], "beneficiary"))

	// a receiver that cannot cover the fee fails the build
	args = buildertest.MustNewMintArgs(assetID, []builder.Receiver{
		builder.NewReceiver(alice(), xc.NewAmountBlockchainFromUint64(3_999_999)),
	}, builder.OptionExecuteFee(xc.NewAmountBlockchainFromUint64(4_000_000)))
	_, err = builder.NewAssetsMint(astar()).MintAll(args)
	require.ErrorIs(err, xcerrors.ErrInvalidAmount)

	// amounts equal to the fee leave nothing to mint
	args = buildertest.MustNewMintArgs(assetID, []builder.Receiver{
		builder.NewReceiver(alice(), xc.NewAmountBlockchainFromUint64(4_000_000)),
	}, builder.OptionExecuteFee(xc.NewAmountBlockchainFromUint64(4_000_000)))
	_, err = builder.NewAssetsMint(astar()).MintAll(args)
	require.ErrorIs(err, xcerrors.ErrInvalidAmount)
}

func TestMintBeneficiaryVariant(t *testing.T) {
	require := require.New(t)
	chain := astar()
	chain.MintBeneficiary = xc.MultiAddressAddress32

	c, err := builder.NewAssetsMint(chain).Mint(big.NewInt(1), alice(), xc.NewAmountBlockchainFromUint64(1))
	require.NoError(err)
	require.Equal(call.NewMultiAddress(xc.MultiAddressAddress32, alice()), arg(t, c, "beneficiary"))
}

func TestNewMintArgsRejectsLargeIDs(t *testing.T) {
	require := require.New(t)
	_, err := builder.NewMintArgs(new(big.Int).Lsh(big.NewInt(1), 128), nil)
	require.ErrorIs(err, xcerrors.ErrUnsupportedAssetForRoute)
	_, err = builder.NewMintArgs(big.NewInt(-1), nil)
	require.ErrorIs(err, xcerrors.ErrUnsupportedAssetForRoute)
}
