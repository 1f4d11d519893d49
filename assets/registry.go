package assets

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	xc "github.com/cordialsys/xcmtransfer"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/sirupsen/logrus"
)

const (
	Pallet       = "Assets"
	DetailsItem  = "Asset"
	MetadataItem = "Metadata"
)

// StorageEntry is one raw key/value pair of a storage map.
type StorageEntry struct {
	Key   []byte
	Value []byte
}

// ChainQuery reads every entry of a storage map, ordered by key.  It should
// fail with RegistryUnavailable if the chain has no such pallet or item.
type ChainQuery interface {
	StorageEntries(ctx context.Context, pallet string, item string) ([]StorageEntry, error)
}

type AssetDescriptor struct {
	ID           *big.Int            `json:"id"`
	Symbol       string              `json:"symbol"`
	Name         string              `json:"name"`
	Decimals     int32               `json:"decimals"`
	Supply       xc.AmountBlockchain `json:"supply"`
	MinBalance   xc.AmountBlockchain `json:"min_balance"`
	Owner        xc.AccountID        `json:"owner"`
	IsFrozen     bool                `json:"is_frozen"`
	IsSufficient bool                `json:"is_sufficient"`
	Class        AssetClass          `json:"class"`
}

func (d *AssetDescriptor) Reference() xc.AssetReference {
	return xc.IdentifiedAsset(d.ID)
}

type Registry struct {
	query  ChainQuery
	ranges Ranges
}

func NewRegistry(query ChainQuery, ranges Ranges) *Registry {
	return &Registry{query, ranges}
}

// ListAssets reads a snapshot of the asset registry using the default id ranges.
func ListAssets(ctx context.Context, query ChainQuery) ([]AssetDescriptor, error) {
	return NewRegistry(query, DefaultRanges()).ListAssets(ctx)
}

// ListAssets reads the asset parameters and metadata tables and joins them by
// position.  Each call is a new snapshot; nothing is cached.
func (r *Registry) ListAssets(ctx context.Context) ([]AssetDescriptor, error) {
	details, err := r.query.StorageEntries(ctx, Pallet, DetailsItem)
	if err != nil {
		return nil, registryError(DetailsItem, err)
	}
	metadata, err := r.query.StorageEntries(ctx, Pallet, MetadataItem)
	if err != nil {
		return nil, registryError(MetadataItem, err)
	}
	logrus.WithFields(logrus.Fields{
		"assets":   len(details),
		"metadata": len(metadata),
	}).Debug("read asset registry")

	if len(details) != len(metadata) {
		return nil, xcerrors.MetadataMismatchf("%d assets but %d metadata entries", len(details), len(metadata))
	}

	descriptors := make([]AssetDescriptor, len(details))
	for i := range details {
		id, ok := idFromKey(details[i].Key)
		if !ok {
			return nil, xcerrors.MetadataMismatchf("asset key %d is too short", i)
		}
		metaID, ok := idFromKey(metadata[i].Key)
		if !ok || metaID.Cmp(id) != 0 {
			return nil, xcerrors.MetadataMismatchf("metadata at position %d does not belong to asset %s", i, id)
		}

		d, frozen, err := decodeDetails(details[i].Value)
		if err != nil {
			return nil, xcerrors.MetadataMismatchf("could not decode asset %s: %v", id, err)
		}
		m, err := decodeMetadata(metadata[i].Value)
		if err != nil {
			return nil, xcerrors.MetadataMismatchf("could not decode metadata of asset %s: %v", id, err)
		}

		descriptors[i] = AssetDescriptor{
			ID:           id,
			Symbol:       string(m.Symbol),
			Name:         string(m.Name),
			Decimals:     int32(m.Decimals),
			Supply:       xc.NewAmountBlockchainFromBig(d.Supply.Int),
			MinBalance:   xc.NewAmountBlockchainFromBig(d.MinBalance.Int),
			Owner:        xc.AccountID(d.Owner),
			IsFrozen:     frozen || m.IsFrozen,
			IsSufficient: d.IsSufficient,
			Class:        r.ranges.Classify(id),
		}
	}
	return descriptors, nil
}

func registryError(item string, err error) error {
	if xcerrors.StatusOf(err) != xcerrors.UnknownError || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return xcerrors.RegistryUnavailablef("could not read %s.%s: %v", Pallet, item, err)
}

// ResolveSymbol returns the first asset whose symbol is exactly symbol.
func ResolveSymbol(symbol string, descriptors []AssetDescriptor) (xc.AssetReference, error) {
	for _, d := range descriptors {
		if d.Symbol == symbol {
			return d.Reference(), nil
		}
	}
	return xc.AssetReference{}, xcerrors.AssetNotFoundf("no asset with symbol %s", symbol)
}

func FindByID(id *big.Int, descriptors []AssetDescriptor) (*AssetDescriptor, error) {
	for i := range descriptors {
		if descriptors[i].ID.Cmp(id) == 0 {
			return &descriptors[i], nil
		}
	}
	return nil, xcerrors.AssetNotFoundf("no asset with id %s", fmt.Sprint(id))
}
