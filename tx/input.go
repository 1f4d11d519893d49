package tx

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// TxInput is the chain state needed to build a signed extrinsic.
// Extrinsics are immortal, so no recent block hash is needed.
type TxInput struct {
	Meta        Metadata             `json:"meta,omitempty"`
	GenesisHash types.Hash           `json:"genesis_hash,omitempty"`
	Rv          types.RuntimeVersion `json:"runtime_version,omitempty"`
	Tip         uint64               `json:"tip,omitempty"`
	Nonce       uint64               `json:"account_nonce,omitempty"`
}
