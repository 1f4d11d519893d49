package builder

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/call"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/cordialsys/xcmtransfer/xcm"
)

const (
	defaultParachainXcmPallet = "PolkadotXcm"
	reserveTransferAssets     = "reserve_transfer_assets"
	reserveWithdrawAssets     = "reserve_withdraw_assets"
)

// ParachainXcm builds transfers from a parachain through its PolkadotXcm pallet.
// Astar holds relay tokens as a reserve-backed derivative, so it withdraws
// rather than transfers unless configured otherwise.
type ParachainXcm struct {
	chain *xc.ChainConfig
}

var _ TransferStrategy = &ParachainXcm{}

func NewParachainXcm(chain *xc.ChainConfig) *ParachainXcm {
	return &ParachainXcm{chain}
}

func (b *ParachainXcm) Transfer(args TransferArgs) (*call.Call, error) {
	if paraID, ok := args.GetDestinationParaID(); ok {
		return b.reserveTransfer(args.GetAmount(), args.GetAsset(), &paraID, args.GetTo(), args.GetFeeAssetItem())
	}
	if !args.GetAsset().IsNative() {
		return nil, xcerrors.UnsupportedAssetForRoutef("only the native asset can be sent to the relay chain, not %s", args.GetAsset())
	}
	return b.reserveTransfer(args.GetAmount(), args.GetAsset(), nil, args.GetTo(), args.GetFeeAssetItem())
}

// ReserveTransferToRelay sends the relay token held on this chain back to the relay.
func (b *ParachainXcm) ReserveTransferToRelay(amount xc.AmountBlockchain, recipient xc.AccountID) (*call.Call, error) {
	return b.reserveTransfer(amount, xc.NativeAsset(), nil, recipient, 0)
}

func (b *ParachainXcm) ReserveTransferToParachain(amount xc.AmountBlockchain, asset xc.AssetReference, paraID uint32, recipient xc.AccountID) (*call.Call, error) {
	return b.reserveTransfer(amount, asset, &paraID, recipient, 0)
}

func (b *ParachainXcm) reserveTransfer(amount xc.AmountBlockchain, asset xc.AssetReference, paraID *uint32, recipient xc.AccountID, feeAssetItem uint32) (*call.Call, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	method, err := TransferMethod(b.chain)
	if err != nil {
		return nil, err
	}
	assetID, err := b.assetID(asset)
	if err != nil {
		return nil, err
	}
	return call.New(method,
		call.NewArg("dest", xcm.Destination(paraID)),
		call.NewArg("beneficiary", xcm.Beneficiary(recipient)),
		call.NewArg("assets", xcm.FungibleAssets(assetID, amount)),
		call.NewArg("fee_asset_item", types.NewU32(feeAssetItem)),
	), nil
}

// The native asset is the relay token, seen from this chain.  Other assets
// live in this chain's asset registry and are named relative to the relay.
func (b *ParachainXcm) assetID(asset xc.AssetReference) (xcm.AssetID, error) {
	if asset.IsNative() {
		return xcm.AssetIDFor(asset, b.chain.GetRelayNativeParents(), nil)
	}
	if b.chain.ParaID == 0 {
		return xcm.AssetID{}, xcerrors.UnsupportedAssetForRoutef("chain %s has no parachain id to locate asset %s", b.chain.Name, asset)
	}
	host := b.chain.ParaID
	return xcm.AssetIDFor(asset, 1, &host)
}

func requirePositive(amount xc.AmountBlockchain) error {
	if !amount.IsPositive() {
		return xcerrors.InvalidAmountf("amount must be positive, got %s", amount.String())
	}
	return nil
}
