package config

import (
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/assets"
	"github.com/cordialsys/xcmtransfer/batch"
)

const DefaultSigner Secret = "env:SUBSTRATE_MNEMONIC"
const DefaultExecuteFee = 4_000_000

// Default is the configuration used when no file is found.
func Default() *Config {
	relayNativeParents := uint8(1)
	return &Config{
		Chains: map[string]*xc.ChainConfig{
			"polkadot": {
				Name:       "polkadot",
				Endpoint:   "wss://rpc.polkadot.io",
				Family:     xc.FamilyRelay,
				Kind:       xc.KindRelay,
				SS58Prefix: 0,
				Decimals:   10,
				Symbol:     "DOT",
			},
			"kusama": {
				Name:       "kusama",
				Endpoint:   "wss://kusama-rpc.polkadot.io",
				Family:     xc.FamilyRelay,
				Kind:       xc.KindRelay,
				SS58Prefix: 2,
				Decimals:   12,
				Symbol:     "KSM",
			},
			"astar": {
				Name:               "astar",
				Endpoint:           "wss://rpc.astar.network",
				Family:             xc.FamilyAstar,
				Kind:               xc.KindParachain,
				SS58Prefix:         5,
				Decimals:           18,
				Symbol:             "ASTR",
				ParaID:             2006,
				RelayNativeParents: &relayNativeParents,
				MintBeneficiary:    xc.MultiAddressAddress32,
			},
			"acala": {
				Name:          "acala",
				Endpoint:      "wss://acala-rpc-0.aca-api.network",
				Family:        xc.FamilyAcala,
				Kind:          xc.KindParachain,
				SS58Prefix:    10,
				Decimals:      12,
				Symbol:        "ACA",
				ParaID:        2000,
				XTokensWeight: xc.DefaultXTokensWeight,
				TokenSymbols: map[string]uint8{
					"ACA":  0,
					"AUSD": 1,
					"DOT":  2,
					"LDOT": 3,
					"KAR":  128,
					"KUSD": 129,
					"KSM":  130,
					"LKSM": 131,
				},
				MintBeneficiary: xc.MultiAddressId,
			},
		},
		Batch: batch.DefaultPolicy(),
		Mint: MintConfig{
			AssetID:    assets.DefaultRanges().RelayNative.String(),
			ExecuteFee: xc.NewAmountBlockchainFromUint64(DefaultExecuteFee),
		},
		Signer:      DefaultSigner,
		AssetRanges: assets.DefaultRanges(),
	}
}
