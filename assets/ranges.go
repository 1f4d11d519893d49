package assets

import (
	"math/big"

	xc "github.com/cordialsys/xcmtransfer"
)

// AssetClass is the meaning of an asset id according to which range it falls in.
type AssetClass string

const (
	ClassUser         AssetClass = "user"
	ClassCommonGoods  AssetClass = "common-goods"
	ClassEcosystem    AssetClass = "ecosystem"
	ClassRelayNative  AssetClass = "relay-native"
	ClassUnclassified AssetClass = "unclassified"
)

// Ranges partitions the asset id space of a chain.  The convention is chain
// specific; the defaults follow Astar.
type Ranges struct {
	// First id of user registered assets.
	UserStart xc.AmountBlockchain `yaml:"user_start"`
	// First id of the bridged common-goods chain asset map.
	CommonGoodsStart xc.AmountBlockchain `yaml:"common_goods_start"`
	// First id of ecosystem / foreign native assets.
	EcosystemStart xc.AmountBlockchain `yaml:"ecosystem_start"`
	// The id standing for the relay chain's own token.
	RelayNative xc.AmountBlockchain `yaml:"relay_native"`
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

func DefaultRanges() Ranges {
	relay := new(big.Int).Sub(pow2(128), big.NewInt(1))
	return Ranges{
		UserStart:        xc.NewAmountBlockchainFromUint64(1),
		CommonGoodsStart: xc.NewAmountBlockchainFromBig(pow2(32)),
		EcosystemStart:   xc.NewAmountBlockchainFromBig(pow2(64)),
		RelayNative:      xc.NewAmountBlockchainFromBig(relay),
	}
}

func (r Ranges) Classify(id *big.Int) AssetClass {
	if id == nil {
		return ClassUnclassified
	}
	switch {
	case id.Cmp(r.RelayNative.Int()) == 0:
		return ClassRelayNative
	case id.Cmp(r.UserStart.Int()) < 0:
		return ClassUnclassified
	case id.Cmp(r.CommonGoodsStart.Int()) < 0:
		return ClassUser
	case id.Cmp(r.EcosystemStart.Int()) < 0:
		return ClassCommonGoods
	case id.Cmp(r.RelayNative.Int()) < 0:
		return ClassEcosystem
	}
	return ClassUnclassified
}
