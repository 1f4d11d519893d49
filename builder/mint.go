package builder

import (
	"fmt"
	"math/big"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/call"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
)

var maxAssetID = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

type Receiver struct {
	to     xc.AccountID
	amount xc.AmountBlockchain
}

func NewReceiver(to xc.AccountID, amount xc.AmountBlockchain) Receiver {
	return Receiver{to, amount}
}

func (r Receiver) GetTo() xc.AccountID             { return r.to }
func (r Receiver) GetAmount() xc.AmountBlockchain { return r.amount }

type MintArgs struct {
	assetID   *big.Int
	receivers []Receiver
	options   builderOptions
}

func NewMintArgs(assetID *big.Int, receivers []Receiver, options ...BuilderOption) (*MintArgs, error) {
	if assetID == nil || assetID.Sign() < 0 || assetID.Cmp(maxAssetID) > 0 {
		return nil, xcerrors.UnsupportedAssetForRoutef("invalid asset id %v", assetID)
	}
	builderOptions := newBuilderOptions()
	for _, opt := range options {
		err := opt(&builderOptions)
		if err != nil {
			return nil, err
		}
	}
	return &MintArgs{
		new(big.Int).Set(assetID),
		append([]Receiver{}, receivers...),
		builderOptions,
	}, nil
}

func (args *MintArgs) GetAssetID() *big.Int     { return new(big.Int).Set(args.assetID) }
func (args *MintArgs) GetReceivers() []Receiver { return append([]Receiver{}, args.receivers...) }
func (args *MintArgs) GetExecuteFee() (xc.AmountBlockchain, bool) {
	return args.options.GetExecuteFee()
}

// AssetsMint builds Assets.mint calls.
type AssetsMint struct {
	chain *xc.ChainConfig
}

func NewAssetsMint(chain *xc.ChainConfig) *AssetsMint {
	return &AssetsMint{chain}
}

func (b *AssetsMint) Mint(assetID *big.Int, to xc.AccountID, amount xc.AmountBlockchain) (*call.Call, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	return call.New(call.AssetsMint,
		call.NewArg("id", call.NewCompact(xc.NewAmountBlockchainFromBig(assetID))),
		call.NewArg("beneficiary", call.NewMultiAddress(b.chain.GetMintBeneficiary(), to)),
		call.NewArg("amount", call.NewCompact(amount)),
	), nil
}

// MintAll builds one mint per receiver, in order, after subtracting the execute
// fee.  A receiver whose amount does not cover the fee fails the whole build.
func (b *AssetsMint) MintAll(args *MintArgs) ([]*call.Call, error) {
	fee, hasFee := args.GetExecuteFee()
	calls := make([]*call.Call, 0, len(args.receivers))
	for i, receiver := range args.receivers {
		amount := receiver.amount
		if hasFee {
			net, err := amount.SubChecked(&fee)
			if err != nil {
				return nil, fmt.Errorf("receiver %d (%s): %w", i, receiver.to, err)
			}
			amount = net
		}
		c, err := b.Mint(args.assetID, receiver.to, amount)
		if err != nil {
			return nil, fmt.Errorf("receiver %d (%s): %w", i, receiver.to, err)
		}
		calls = append(calls, c)
	}
	return calls, nil
}
