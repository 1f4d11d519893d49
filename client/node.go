package client

import (
	"fmt"
	"sync"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/parser"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/retriever"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/state"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// Node is the set of RPC calls a Session makes.
type Node interface {
	Metadata() (*types.Metadata, error)
	Keys(prefix types.StorageKey) ([]types.StorageKey, error)
	// StorageRaw returns an empty value when nothing is stored under key.
	StorageRaw(key types.StorageKey) (types.StorageDataRaw, error)
	BlockHash(number uint64) (types.Hash, error)
	FinalizedHead() (types.Hash, error)
	Header(hash types.Hash) (*types.Header, error)
	RuntimeVersion() (*types.RuntimeVersion, error)
	// BlockExtrinsics returns each extrinsic of the block, hex encoded as the node sent it.
	BlockExtrinsics(hash types.Hash) ([]string, error)
	Events(hash types.Hash) ([]*parser.Event, error)
	Call(result interface{}, method string, args ...interface{}) error
}

type rpcNode struct {
	api *gsrpc.SubstrateAPI

	once      sync.Once
	retriever retriever.EventRetriever
	err       error
}

var _ Node = &rpcNode{}

// Dial connects to a node over websocket or http.
func Dial(url string) (Node, error) {
	api, err := gsrpc.NewSubstrateAPI(url)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", url, err)
	}
	return &rpcNode{api: api}, nil
}

func (n *rpcNode) Metadata() (*types.Metadata, error) {
	return n.api.RPC.State.GetMetadataLatest()
}

func (n *rpcNode) Keys(prefix types.StorageKey) ([]types.StorageKey, error) {
	return n.api.RPC.State.GetKeysLatest(prefix)
}

func (n *rpcNode) StorageRaw(key types.StorageKey) (types.StorageDataRaw, error) {
	raw, err := n.api.RPC.State.GetStorageRawLatest(key)
	if err != nil || raw == nil {
		return nil, err
	}
	return *raw, nil
}

func (n *rpcNode) BlockHash(number uint64) (types.Hash, error) {
	return n.api.RPC.Chain.GetBlockHash(number)
}

func (n *rpcNode) FinalizedHead() (types.Hash, error) {
	return n.api.RPC.Chain.GetFinalizedHead()
}

func (n *rpcNode) Header(hash types.Hash) (*types.Header, error) {
	return n.api.RPC.Chain.GetHeader(hash)
}

func (n *rpcNode) RuntimeVersion() (*types.RuntimeVersion, error) {
	return n.api.RPC.State.GetRuntimeVersionLatest()
}

// Blocks are read raw, as typed decoding of extrinsics fails on chains with
// signed extensions the rpc client does not know about.
func (n *rpcNode) BlockExtrinsics(hash types.Hash) ([]string, error) {
	var block struct {
		Block struct {
			Extrinsics []string `json:"extrinsics"`
		} `json:"block"`
	}
	err := n.api.Client.Call(&block, "chain_getBlock", hash.Hex())
	if err != nil {
		return nil, err
	}
	return block.Block.Extrinsics, nil
}

func (n *rpcNode) Events(hash types.Hash) ([]*parser.Event, error) {
	n.once.Do(func() {
		n.retriever, n.err = retriever.NewDefaultEventRetriever(state.NewEventProvider(n.api.RPC.State), n.api.RPC.State)
	})
	if n.err != nil {
		return nil, n.err
	}
	return n.retriever.GetEvents(hash)
}

func (n *rpcNode) Call(result interface{}, method string, args ...interface{}) error {
	return n.api.Client.Call(result, method, args...)
}
