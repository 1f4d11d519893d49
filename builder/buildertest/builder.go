package buildertest

// Convenient constructors for use in tests

import (
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/builder"
	"github.com/cordialsys/xcmtransfer/call"
)

func MustNewTransferArgs(
	to xc.AccountID,
	amount xc.AmountBlockchain,
	options ...builder.BuilderOption,
) builder.TransferArgs {
	args, err := builder.NewTransferArgs(to, amount, options...)
	if err != nil {
		panic(err)
	}
	return args
}

func MustNewMintArgs(
	assetID *big.Int,
	receivers []builder.Receiver,
	options ...builder.BuilderOption,
) *builder.MintArgs {
	args, err := builder.NewMintArgs(assetID, receivers, options...)
	if err != nil {
		panic(err)
	}
	return args
}

// Call indexes for every known method, numbered in order.
type FakeCallIndexes struct{}

var _ call.IndexResolver = FakeCallIndexes{}

func (FakeCallIndexes) FindCallIndex(name string) (types.CallIndex, error) {
	for i, m := range call.KnownMethods {
		if string(m) == name {
			return types.CallIndex{SectionIndex: uint8(i + 1), MethodIndex: 0}, nil
		}
	}
	return types.CallIndex{}, &UnknownCallError{name}
}

type UnknownCallError struct {
	Name string
}

func (e *UnknownCallError) Error() string {
	return "unknown call " + e.Name
}
