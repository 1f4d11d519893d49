package batch

import (
	"fmt"
	"math/big"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/address"
	"github.com/cordialsys/xcmtransfer/builder"
	"github.com/cordialsys/xcmtransfer/call"
	"github.com/sirupsen/logrus"
)

type MintPlan struct {
	AssetID    *big.Int
	ExecuteFee xc.AmountBlockchain
	// Mint as this account under root.  Without it every mint runs as root.
	Origin *xc.AccountID
}

// Receivers decodes every record.  The first invalid address or amount fails
// the whole list.
func Receivers(codec address.Codec, records []Record) ([]builder.Receiver, error) {
	receivers := make([]builder.Receiver, len(records))
	for i, record := range records {
		id, err := codec.Decode(record.Account)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		amount, err := xc.NewAmountBlockchainFromDecimalStr(record.Amount)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		receivers[i] = builder.NewReceiver(id, amount)
	}
	return receivers, nil
}

// BuildMintBatches turns records into batches of Assets.mint calls.
//
// With an origin, each chunk is batched and the batch is run via sudo_as.
// Otherwise each mint is wrapped in sudo and the sudo calls are batched.
func BuildMintBatches(chain *xc.ChainConfig, records []Record, plan MintPlan, policy Policy) ([]*call.Call, error) {
	receivers, err := Receivers(address.NewCodecForChain(chain), records)
	if err != nil {
		return nil, err
	}
	args, err := builder.NewMintArgs(plan.AssetID, receivers, builder.OptionExecuteFee(plan.ExecuteFee))
	if err != nil {
		return nil, err
	}
	mints, err := builder.NewAssetsMint(chain).MintAll(args)
	if err != nil {
		return nil, err
	}

	var batches []*call.Call
	if plan.Origin == nil {
		wrapped := make([]*call.Call, len(mints))
		for i, mint := range mints {
			wrapped[i] = WrapPrivileged(mint, nil)
		}
		batches, err = Assemble(wrapped, policy)
		if err != nil {
			return nil, err
		}
	} else {
		batches, err = Assemble(mints, policy)
		if err != nil {
			return nil, err
		}
		for i := range batches {
			batches[i] = WrapPrivileged(batches[i], plan.Origin)
		}
	}

	logrus.WithFields(logrus.Fields{
		"chain":   chain.Name,
		"records": len(records),
		"batches": len(batches),
		"asset":   plan.AssetID.String(),
	}).Info("built mint batches")
	return batches, nil
}
