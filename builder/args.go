package builder

import (
	xc "github.com/cordialsys/xcmtransfer"
)

// All possible builder arguments go in here, privately available.
// The public argument types select which ones they expose.
type builderOptions struct {
	asset             *xc.AssetReference
	destinationParaID *uint32
	feeAssetItem      *uint32
	destWeight        *uint64
	tokenSymbol       *string
	executeFee        *xc.AmountBlockchain
}

func newBuilderOptions() builderOptions {
	return builderOptions{}
}

func get[T any](arg *T) (T, bool) {
	if arg == nil {
		var zero T
		return zero, false
	}
	return *arg, true
}

func (opts *builderOptions) GetAsset() (xc.AssetReference, bool)       { return get(opts.asset) }
func (opts *builderOptions) GetDestinationParaID() (uint32, bool)      { return get(opts.destinationParaID) }
func (opts *builderOptions) GetFeeAssetItem() (uint32, bool)           { return get(opts.feeAssetItem) }
func (opts *builderOptions) GetDestWeight() (uint64, bool)             { return get(opts.destWeight) }
func (opts *builderOptions) GetTokenSymbol() (string, bool)            { return get(opts.tokenSymbol) }
func (opts *builderOptions) GetExecuteFee() (xc.AmountBlockchain, bool) { return get(opts.executeFee) }

type BuilderOption func(opts *builderOptions) error

// Transfer an asset other than the sending chain's native token.
func OptionAsset(asset xc.AssetReference) BuilderOption {
	return func(opts *builderOptions) error {
		opts.asset = &asset
		return nil
	}
}

// Send to a parachain.  Without this option a transfer goes to the relay chain.
func OptionDestinationParachain(paraID uint32) BuilderOption {
	return func(opts *builderOptions) error {
		opts.destinationParaID = &paraID
		return nil
	}
}

func OptionFeeAssetItem(index uint32) BuilderOption {
	return func(opts *builderOptions) error {
		opts.feeAssetItem = &index
		return nil
	}
}

// Weight bought on the destination for XTokens transfers.
func OptionDestWeight(weight uint64) BuilderOption {
	return func(opts *builderOptions) error {
		opts.destWeight = &weight
		return nil
	}
}

// Token symbol for multi-currency (XTokens) transfers.
func OptionTokenSymbol(symbol string) BuilderOption {
	return func(opts *builderOptions) error {
		opts.tokenSymbol = &symbol
		return nil
	}
}

// Subtracted from every minted amount.
func OptionExecuteFee(fee xc.AmountBlockchain) BuilderOption {
	return func(opts *builderOptions) error {
		opts.executeFee = &fee
		return nil
	}
}
