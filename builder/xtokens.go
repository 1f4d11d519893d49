package builder

import (
	"encoding/json"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/call"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/cordialsys/xcmtransfer/xcm"
)

// CurrencyID is the Token variant of an orml multi-currency id.
type CurrencyID struct {
	Symbol string
	Index  uint8
}

func (c CurrencyID) Encode(encoder scale.Encoder) error {
	// Token = 0
	if err := encoder.PushByte(0); err != nil {
		return err
	}
	return encoder.PushByte(c.Index)
}

func (c CurrencyID) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Token": c.Symbol})
}

// XTokens builds multi-currency transfers for chains using the orml XTokens pallet.
type XTokens struct {
	chain *xc.ChainConfig
}

var _ TransferStrategy = &XTokens{}

func NewXTokens(chain *xc.ChainConfig) *XTokens {
	return &XTokens{chain}
}

// Transfer uses the token symbol option, or the chain's own symbol for the native asset.
func (b *XTokens) Transfer(args TransferArgs) (*call.Call, error) {
	symbol, ok := args.GetTokenSymbol()
	if !ok {
		if !args.GetAsset().IsNative() {
			return nil, xcerrors.UnsupportedAssetForRoutef("%s transfers name tokens by symbol, not by asset id %s", b.chain.Name, args.GetAsset())
		}
		symbol = b.chain.Symbol
	}
	weight, ok := args.GetDestWeight()
	if !ok {
		weight = b.chain.GetXTokensWeight()
	}
	paraID, ok := args.GetDestinationParaID()
	if !ok {
		return b.transfer(symbol, args.GetAmount(), nil, args.GetTo(), weight)
	}
	return b.transfer(symbol, args.GetAmount(), &paraID, args.GetTo(), weight)
}

// TransferToken sends a token by symbol to an account on another parachain.
func (b *XTokens) TransferToken(symbol string, amount xc.AmountBlockchain, paraID uint32, recipient xc.AccountID) (*call.Call, error) {
	return b.transfer(symbol, amount, &paraID, recipient, b.chain.GetXTokensWeight())
}

func (b *XTokens) transfer(symbol string, amount xc.AmountBlockchain, paraID *uint32, recipient xc.AccountID, weight uint64) (*call.Call, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	index, ok := b.chain.TokenSymbolIndex(symbol)
	if !ok {
		return nil, xcerrors.UnsupportedAssetForRoutef("token %s is not known on %s", symbol, b.chain.Name)
	}

	var dest xcm.VersionedMultiLocation
	if paraID == nil {
		dest = xcm.NewVersionedMultiLocation(xcm.MultiLocation{
			Parents:  1,
			Interior: xcm.Junctions{xcm.AccountID32(xcm.NetworkAny, recipient)},
		})
	} else {
		dest = xcm.AccountOnParachain(*paraID, recipient)
	}

	return call.New(call.XTokensTransfer,
		call.NewArg("currency_id", CurrencyID{Symbol: symbol, Index: index}),
		call.NewArg("amount", call.NewU128(amount)),
		call.NewArg("dest", dest),
		call.NewArg("dest_weight", types.NewU64(weight)),
	), nil
}
