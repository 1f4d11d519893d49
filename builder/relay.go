package builder

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/call"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/cordialsys/xcmtransfer/xcm"
)

const defaultRelayXcmPallet = "XcmPallet"

// Relay builds transfers of the relay token down to a parachain.
type Relay struct {
	chain *xc.ChainConfig
}

var _ TransferStrategy = &Relay{}

func NewRelay(chain *xc.ChainConfig) *Relay {
	return &Relay{chain}
}

func (b *Relay) Transfer(args TransferArgs) (*call.Call, error) {
	paraID, ok := args.GetDestinationParaID()
	if !ok {
		return nil, xcerrors.UnsupportedAssetForRoutef("a relay chain transfer needs a destination parachain")
	}
	if !args.GetAsset().IsNative() {
		return nil, xcerrors.UnsupportedAssetForRoutef("the relay chain can only send its native asset, not %s", args.GetAsset())
	}
	return b.relayToParachain(paraID, args.GetAmount(), args.GetTo(), args.GetFeeAssetItem())
}

func (b *Relay) RelayToParachain(paraID uint32, amount xc.AmountBlockchain, recipient xc.AccountID) (*call.Call, error) {
	return b.relayToParachain(paraID, amount, recipient, 0)
}

func (b *Relay) relayToParachain(paraID uint32, amount xc.AmountBlockchain, recipient xc.AccountID, feeAssetItem uint32) (*call.Call, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	method, err := TransferMethod(b.chain)
	if err != nil {
		return nil, err
	}
	assetID, err := xcm.AssetIDFor(xc.NativeAsset(), 0, nil)
	if err != nil {
		return nil, err
	}
	return call.New(method,
		call.NewArg("dest", xcm.ChildParachain(paraID)),
		call.NewArg("beneficiary", xcm.Beneficiary(recipient)),
		call.NewArg("assets", xcm.FungibleAssets(assetID, amount)),
		call.NewArg("fee_asset_item", types.NewU32(feeAssetItem)),
	), nil
}
