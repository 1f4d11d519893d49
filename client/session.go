package client

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/assets"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/cordialsys/xcmtransfer/pkg/safe_map"
	"github.com/cordialsys/xcmtransfer/tx"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const DefaultMaxDepth = 50
const DefaultPollInterval = 3 * time.Second
const DefaultReadsPerSecond = 50

// AccountInfo contains a subset of what a parachain may return in order to maximize decoding iteroperability.
// To see other fields, see types.AccountInfo
type AccountInfoMinimal struct {
	Nonce       types.U32
	Consumers   types.U32
	Providers   types.U32
	Sufficients types.U32
	Data        struct {
		Free types.U128
		// skip fields after this point as we don't need them
	}
}

// AssetAccountMinimal is the leading part of pallet_assets::AssetAccount.
type AssetAccountMinimal struct {
	Balance types.U128
}

type Option func(*Session)

// WithMaxDepth bounds how many finalized blocks are scanned for a submitted extrinsic.
func WithMaxDepth(depth int) Option {
	return func(s *Session) {
		s.maxDepth = depth
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(s *Session) {
		s.pollInterval = interval
	}
}

// WithReadsPerSecond limits storage value reads during range reads.
func WithReadsPerSecond(reads int) Option {
	return func(s *Session) {
		s.limiter = rate.NewLimiter(rate.Limit(reads), reads)
	}
}

// Session is a ChainSession over a substrate node.
type Session struct {
	node         Node
	chain        *xc.ChainConfig
	limiter      *rate.Limiter
	maxDepth     int
	pollInterval time.Duration

	mu       sync.Mutex
	metadata *types.Metadata
}

// NewSession connects to the chain's endpoint.
func NewSession(chain *xc.ChainConfig, options ...Option) (*Session, error) {
	node, err := Dial(chain.Endpoint)
	if err != nil {
		return nil, xcerrors.NetworkErrorf("%s: %v", chain.Name, err)
	}
	return NewSessionWithNode(node, chain, options...), nil
}

func NewSessionWithNode(node Node, chain *xc.ChainConfig, options ...Option) *Session {
	s := &Session{
		node:         node,
		chain:        chain,
		limiter:      rate.NewLimiter(rate.Limit(DefaultReadsPerSecond), DefaultReadsPerSecond),
		maxDepth:     DefaultMaxDepth,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Session) Chain() *xc.ChainConfig {
	return s.chain
}

// RawMetadata is fetched once per session.
func (s *Session) RawMetadata(ctx context.Context) (*types.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metadata != nil {
		return s.metadata, nil
	}
	meta, err := s.node.Metadata()
	if err != nil {
		return nil, xcerrors.NetworkErrorf("could not fetch metadata: %v", err)
	}
	s.metadata = meta
	return meta, nil
}

func (s *Session) Metadata(ctx context.Context) (tx.Metadata, error) {
	meta, err := s.RawMetadata(ctx)
	if err != nil {
		return tx.Metadata{}, err
	}
	return tx.ParseMeta(meta)
}

func (s *Session) ErrorRegistry(ctx context.Context) (*ErrorRegistry, error) {
	meta, err := s.RawMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return ErrorRegistryFromMetadata(meta), nil
}

func (s *Session) Properties(ctx context.Context) (*Properties, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var name string
	if err := s.node.Call(&name, "system_chain"); err != nil {
		return nil, xcerrors.NetworkErrorf("system_chain: %v", AsRpcErrorMaybe(err))
	}
	var raw rawProperties
	if err := s.node.Call(&raw, "system_properties"); err != nil {
		return nil, xcerrors.NetworkErrorf("system_properties: %v", AsRpcErrorMaybe(err))
	}
	return raw.toProperties(name)
}

func hasStorage(meta *types.Metadata, pallet string, item string) bool {
	if meta.Version != 14 {
		return false
	}
	for _, p := range meta.AsMetadataV14.Pallets {
		if string(p.Name) != pallet {
			continue
		}
		if !p.HasStorage {
			return false
		}
		for _, entry := range p.Storage.Items {
			if string(entry.Name) == item {
				return true
			}
		}
	}
	return false
}

// StorageEntries reads every entry of a storage map, ordered by key.
func (s *Session) StorageEntries(ctx context.Context, pallet string, item string) ([]assets.StorageEntry, error) {
	meta, err := s.RawMetadata(ctx)
	if err != nil {
		return nil, err
	}
	if !hasStorage(meta, pallet, item) {
		return nil, xcerrors.RegistryUnavailablef("%s has no %s.%s storage", s.chain.Name, pallet, item)
	}
	keys, err := s.node.Keys(StoragePrefix(pallet, item))
	if err != nil {
		return nil, xcerrors.RegistryUnavailablef("could not read %s.%s keys: %v", pallet, item, err)
	}
	logrus.WithFields(logrus.Fields{
		"chain": s.chain.Name,
		"item":  pallet + "." + item,
		"keys":  len(keys),
	}).Debug("reading storage entries")

	entries := safe_map.New[assets.StorageEntry]()
	for _, key := range keys {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		value, err := s.node.StorageRaw(key)
		if err != nil {
			return nil, xcerrors.RegistryUnavailablef("could not read %s.%s value: %v", pallet, item, err)
		}
		entries.Set(key.Hex(), assets.StorageEntry{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}
	return entries.Values(), nil
}

// readStorage decodes the value under key into target, reporting false when nothing is stored.
func (s *Session) readStorage(ctx context.Context, key types.StorageKey, target interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	raw, err := s.node.StorageRaw(key)
	if err != nil {
		return false, xcerrors.NetworkErrorf("could not read storage: %v", err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := codec.Decode(raw, target); err != nil {
		return false, fmt.Errorf("could not decode storage: %w", err)
	}
	return true, nil
}

func (s *Session) accountInfo(ctx context.Context, account xc.AccountID) (*AccountInfoMinimal, error) {
	var info AccountInfoMinimal
	_, err := s.readStorage(ctx, StorageMapKey("System", "Account", account[:]), &info)
	return &info, err
}

func (s *Session) AccountNonce(ctx context.Context, account xc.AccountID) (uint64, error) {
	info, err := s.accountInfo(ctx, account)
	if err != nil {
		return 0, err
	}
	return uint64(info.Nonce), nil
}

func (s *Session) FreeBalance(ctx context.Context, account xc.AccountID) (xc.AmountBlockchain, error) {
	info, err := s.accountInfo(ctx, account)
	if err != nil {
		return xc.AmountBlockchain{}, err
	}
	return amountOf(info.Data.Free), nil
}

// amountOf treats a U128 that was never decoded as zero.
func amountOf(value types.U128) xc.AmountBlockchain {
	if value.Int == nil {
		return xc.NewAmountBlockchainFromUint64(0)
	}
	return xc.NewAmountBlockchainFromBig(value.Int)
}

func (s *Session) AssetBalance(ctx context.Context, assetID *big.Int, account xc.AccountID) (xc.AmountBlockchain, error) {
	id, err := codec.Encode(types.NewU128(*assetID))
	if err != nil {
		return xc.AmountBlockchain{}, err
	}
	var balance AssetAccountMinimal
	found, err := s.readStorage(ctx, StorageMapKey(assets.Pallet, "Account", id, account[:]), &balance)
	if err != nil {
		return xc.AmountBlockchain{}, err
	}
	if !found {
		return xc.NewAmountBlockchainFromUint64(0), nil
	}
	return amountOf(balance.Balance), nil
}

// Extensions reads what the chain reports about its place in the network.
func (s *Session) Extensions(ctx context.Context) (*ChainExtensions, error) {
	if s.chain.IsRelay() {
		var parachains []types.U32
		if _, err := s.readStorage(ctx, StoragePrefix("Paras", "Parachains"), &parachains); err != nil {
			return nil, err
		}
		relay := &RelayExtensions{Parachains: []uint32{}}
		for _, id := range parachains {
			relay.Parachains = append(relay.Parachains, uint32(id))
		}
		return &ChainExtensions{Kind: xc.KindRelay, Relay: relay}, nil
	}
	var id types.U32
	found, err := s.readStorage(ctx, StoragePrefix("ParachainInfo", "ParachainId"), &id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s does not report a parachain id", s.chain.Name)
	}
	return &ChainExtensions{
		Kind:      xc.KindParachain,
		Parachain: &ParachainExtensions{ParachainID: uint32(id)},
	}, nil
}

func (s *Session) FetchTxInput(ctx context.Context, sender xc.AccountID) (*tx.TxInput, error) {
	input := &tx.TxInput{}
	var err error
	input.Meta, err = s.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	input.GenesisHash, err = s.node.BlockHash(0)
	if err != nil {
		return nil, xcerrors.NetworkErrorf("genesis hash: %v", err)
	}
	rv, err := s.node.RuntimeVersion()
	if err != nil {
		return nil, xcerrors.NetworkErrorf("runtime version: %v", err)
	}
	input.Rv = *rv
	input.Nonce, err = s.AccountNonce(ctx, sender)
	if err != nil {
		return nil, err
	}
	return input, nil
}

// Submit sends a signed extrinsic and returns its hash. Inclusion is matched
// by the locally computed hash, so a node reporting a different one is logged.
func (s *Session) Submit(ctx context.Context, extrinsic *tx.Tx) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !extrinsic.IsSigned() {
		return "", fmt.Errorf("extrinsic is not signed")
	}
	data, err := extrinsic.Serialize()
	if err != nil {
		return "", err
	}
	var hash string
	err = s.node.Call(&hash, "author_submitExtrinsic", codec.HexEncodeToString(data))
	if err != nil {
		return "", xcerrors.NetworkErrorf("%v", AsRpcErrorMaybe(err))
	}
	local := extrinsic.Hash()
	if !strings.EqualFold(hash, local) {
		logrus.WithFields(logrus.Fields{
			"chain":     s.chain.Name,
			"hash":      local,
			"node_hash": hash,
		}).Warn("node reported a different extrinsic hash")
	}
	return local, nil
}

func (s *Session) finalizedHeight() (uint64, error) {
	head, err := s.node.FinalizedHead()
	if err != nil {
		return 0, err
	}
	header, err := s.node.Header(head)
	if err != nil {
		return 0, err
	}
	return uint64(header.Number), nil
}

// SubmitAndWatch submits the extrinsic, waits for it to be included in a
// finalized block, and parses its dispatch outcome. The inclusion is returned
// along with any dispatch error.
func (s *Session) SubmitAndWatch(ctx context.Context, extrinsic *tx.Tx) (*Inclusion, error) {
	reg, err := s.ErrorRegistry(ctx)
	if err != nil {
		return nil, err
	}
	start, err := s.finalizedHeight()
	if err != nil {
		return nil, xcerrors.NetworkErrorf("finalized head: %v", err)
	}
	hash, err := s.Submit(ctx, extrinsic)
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{
		"chain": s.chain.Name,
		"hash":  hash,
	})
	log.Info("submitted extrinsic")

	inclusion, err := s.WaitFinalized(ctx, hash, start+1)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"block": inclusion.BlockNumber,
		"index": inclusion.Index,
	}).Info("extrinsic finalized")
	return inclusion, ParseDispatchOutcome(inclusion.Events, reg)
}

// WaitFinalized scans finalized blocks from height onwards for the extrinsic,
// giving up after the configured number of blocks.
func (s *Session) WaitFinalized(ctx context.Context, hash string, height uint64) (*Inclusion, error) {
	target, err := codec.HexDecodeString(hash)
	if err != nil {
		return nil, fmt.Errorf("invalid extrinsic hash: %v", err)
	}
	last := height + uint64(s.maxDepth)
	for height < last {
		finalized, err := s.finalizedHeight()
		if err != nil {
			return nil, xcerrors.NetworkErrorf("finalized head: %v", err)
		}
		for ; height <= finalized && height < last; height++ {
			inclusion, found, err := s.scanBlock(height, target)
			if err != nil {
				return nil, err
			}
			if found {
				inclusion.Hash = hash
				return inclusion, nil
			}
		}
		if height >= last {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}
	return nil, fmt.Errorf("could not find extrinsic %s in %d finalized blocks", hash, s.maxDepth)
}

func (s *Session) scanBlock(height uint64, target []byte) (*Inclusion, bool, error) {
	blockHash, err := s.node.BlockHash(height)
	if err != nil {
		return nil, false, xcerrors.NetworkErrorf("block hash %d: %v", height, err)
	}
	extrinsics, err := s.node.BlockExtrinsics(blockHash)
	if err != nil {
		return nil, false, xcerrors.NetworkErrorf("block %d: %v", height, err)
	}
	for i, ext := range extrinsics {
		bz, err := codec.HexDecodeString(ext)
		if err != nil {
			return nil, false, fmt.Errorf("block %d extrinsic %d: %v", height, i, err)
		}
		if !bytes.Equal(tx.HashSerialized(bz), target) {
			continue
		}
		events, err := s.node.Events(blockHash)
		if err != nil {
			return nil, false, xcerrors.NetworkErrorf("events of block %d: %v", height, err)
		}
		matching := []EventI{}
		for _, ev := range events {
			if ev.Phase != nil && ev.Phase.IsApplyExtrinsic && ev.Phase.AsApplyExtrinsic == uint32(i) {
				matching = append(matching, NewEvent(ev))
			}
		}
		return &Inclusion{
			BlockHash:   blockHash.Hex(),
			BlockNumber: height,
			Index:       i,
			Events:      matching,
		}, true, nil
	}
	return nil, false, nil
}
