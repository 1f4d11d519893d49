package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/assets"
	"github.com/cordialsys/xcmtransfer/tx"
)

// ChainSession owns the connection to one chain: reading state, fetching
// what is needed to sign, and submitting extrinsics.
type ChainSession interface {
	assets.ChainQuery
	Chain() *xc.ChainConfig
	Metadata(ctx context.Context) (tx.Metadata, error)
	Properties(ctx context.Context) (*Properties, error)
	Extensions(ctx context.Context) (*ChainExtensions, error)
	AccountNonce(ctx context.Context, account xc.AccountID) (uint64, error)
	FreeBalance(ctx context.Context, account xc.AccountID) (xc.AmountBlockchain, error)
	AssetBalance(ctx context.Context, assetID *big.Int, account xc.AccountID) (xc.AmountBlockchain, error)
	FetchTxInput(ctx context.Context, sender xc.AccountID) (*tx.TxInput, error)
	Submit(ctx context.Context, extrinsic *tx.Tx) (string, error)
	SubmitAndWatch(ctx context.Context, extrinsic *tx.Tx) (*Inclusion, error)
}

var _ ChainSession = &Session{}

// Properties are the values reported by system_properties and system_chain.
type Properties struct {
	Chain         string   `json:"chain"`
	TokenSymbols  []string `json:"token_symbols"`
	TokenDecimals []uint32 `json:"token_decimals"`
	SS58Format    uint16   `json:"ss58_format"`
}

// rawProperties accepts both the single value and the list form used by
// multi-token chains.
type rawProperties struct {
	SS58Format    *uint16         `json:"ss58Format"`
	TokenSymbol   json.RawMessage `json:"tokenSymbol"`
	TokenDecimals json.RawMessage `json:"tokenDecimals"`
}

func (raw *rawProperties) toProperties(chain string) (*Properties, error) {
	props := &Properties{Chain: chain}
	if raw.SS58Format != nil {
		props.SS58Format = *raw.SS58Format
	}
	if err := oneOrMany(raw.TokenSymbol, &props.TokenSymbols); err != nil {
		return nil, fmt.Errorf("tokenSymbol: %w", err)
	}
	if err := oneOrMany(raw.TokenDecimals, &props.TokenDecimals); err != nil {
		return nil, fmt.Errorf("tokenDecimals: %w", err)
	}
	return props, nil
}

func oneOrMany[T any](raw json.RawMessage, out *[]T) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var many []T
	if err := json.Unmarshal(raw, &many); err == nil {
		*out = many
		return nil
	}
	var one T
	if err := json.Unmarshal(raw, &one); err != nil {
		return err
	}
	*out = []T{one}
	return nil
}

// ChainExtensions is what the chain reports about its place in the
// network, depending on its kind.
type ChainExtensions struct {
	Kind      xc.ChainKind         `json:"kind"`
	Parachain *ParachainExtensions `json:"parachain,omitempty"`
	Relay     *RelayExtensions     `json:"relay,omitempty"`
}

type ParachainExtensions struct {
	ParachainID uint32 `json:"parachain_id"`
}

type RelayExtensions struct {
	Parachains []uint32 `json:"parachains"`
}

// Inclusion is where a submitted extrinsic landed in a finalized block.
type Inclusion struct {
	Hash        string   `json:"hash"`
	BlockHash   string   `json:"block_hash"`
	BlockNumber uint64   `json:"block_number"`
	Index       int      `json:"index"`
	Events      []EventI `json:"-"`
}

type RpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// The current rpc client omits the .data in it's err.Error() method
func AsRpcErrorMaybe(inputError error) error {
	bz, err := json.Marshal(inputError)
	if err != nil {
		return inputError
	}
	var outputError RpcError
	err = json.Unmarshal(bz, &outputError)
	if err != nil {
		return inputError
	}
	if outputError.Code != 0 && len(outputError.Message) > 0 {
		if outputError.Data != nil {
			return fmt.Errorf("%s: %v (%d)", outputError.Message, outputError.Data, outputError.Code)
		} else {
			return fmt.Errorf("%s (%d)", outputError.Message, outputError.Code)
		}
	}
	return inputError
}
