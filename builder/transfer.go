package builder

import (
	xc "github.com/cordialsys/xcmtransfer"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
)

type TransferArgs struct {
	options builderOptions
	to      xc.AccountID
	amount  xc.AmountBlockchain
}

func (args *TransferArgs) GetTo() xc.AccountID             { return args.to }
func (args *TransferArgs) GetAmount() xc.AmountBlockchain { return args.amount }

// GetAsset defaults to the native asset.
func (args *TransferArgs) GetAsset() xc.AssetReference {
	asset, _ := args.options.GetAsset()
	return asset
}

func (args *TransferArgs) GetDestinationParaID() (uint32, bool) {
	return args.options.GetDestinationParaID()
}

// GetFeeAssetItem defaults to 0, the only asset of a single asset transfer.
func (args *TransferArgs) GetFeeAssetItem() uint32 {
	index, _ := args.options.GetFeeAssetItem()
	return index
}

func (args *TransferArgs) GetDestWeight() (uint64, bool) { return args.options.GetDestWeight() }
func (args *TransferArgs) GetTokenSymbol() (string, bool) { return args.options.GetTokenSymbol() }

// NewTransferArgs fails with InvalidAmount if amount is not positive.
func NewTransferArgs(to xc.AccountID, amount xc.AmountBlockchain, options ...BuilderOption) (TransferArgs, error) {
	args := TransferArgs{
		newBuilderOptions(),
		to,
		amount,
	}
	for _, opt := range options {
		err := opt(&args.options)
		if err != nil {
			return args, err
		}
	}
	if !amount.IsPositive() {
		return args, xcerrors.InvalidAmountf("transfer amount must be positive, got %s", amount.String())
	}
	return args, nil
}
