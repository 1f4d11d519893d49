package commands

import (
	"context"
	"encoding/json"
	"fmt"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/address"
	"github.com/cordialsys/xcmtransfer/call"
	"github.com/cordialsys/xcmtransfer/client"
	"github.com/cordialsys/xcmtransfer/cmd/xcm/setup"
	"github.com/cordialsys/xcmtransfer/submit"
	"github.com/cordialsys/xcmtransfer/tx"
	"github.com/sirupsen/logrus"
)

func asJson(data any) string {
	bz, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(bz)
}

func connect(ctx context.Context) (*client.Session, error) {
	chain := setup.UnwrapChain(ctx)
	session, err := client.NewSession(chain)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func loadSigner(ctx context.Context) (tx.Signer, error) {
	cfg := setup.UnwrapConfig(ctx)
	chain := setup.UnwrapChain(ctx)
	secret, err := cfg.LoadSigner()
	if err != nil {
		return nil, err
	}
	signer, err := tx.NewSigner(secret)
	if err != nil {
		return nil, fmt.Errorf("could not import signer: %v", err)
	}
	logrus.WithField("signer", address.NewCodecForChain(chain).Encode(signer.AccountID())).Info("loaded signer")
	return signer, nil
}

// parseAmount converts a decimal amount to the minimal unit.  A negative
// decimals uses the chain's.
func parseAmount(chain *xc.ChainConfig, amount string, decimals int32) (xc.AmountBlockchain, error) {
	if amount == "" {
		return xc.AmountBlockchain{}, fmt.Errorf("--amount required")
	}
	human, err := xc.NewAmountHumanReadableFromStr(amount)
	if err != nil {
		return xc.AmountBlockchain{}, fmt.Errorf("invalid amount %q: %v", amount, err)
	}
	if decimals < 0 {
		decimals = chain.Decimals
	}
	return human.ToBlockchain(decimals)
}

// submitCalls signs each call with the configured signer and waits for it to
// be finalized, following the configured batch policy.
func submitCalls(ctx context.Context, calls []*call.Call) ([]submit.Result, error) {
	cfg := setup.UnwrapConfig(ctx)
	signer, err := loadSigner(ctx)
	if err != nil {
		return nil, err
	}
	session, err := connect(ctx)
	if err != nil {
		return nil, err
	}
	return submit.NewRunner(session, signer, cfg.Batch).Run(ctx, calls)
}
