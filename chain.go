package xcmtransfer

import "fmt"

// ChainFamily selects which transfer strategy is used to build calls for a chain.
type ChainFamily string

const (
	// A relay chain using the XcmPallet to reach its parachains.
	FamilyRelay ChainFamily = "relay"
	// A parachain using the generic PolkadotXcm pallet.
	FamilyPolkadotXcm ChainFamily = "polkadot-xcm"
	// Astar/Shiden: PolkadotXcm with reserve withdrawals and an Assets pallet.
	FamilyAstar ChainFamily = "astar"
	// Acala/Karura: multi-currency XTokens pallet.
	FamilyAcala ChainFamily = "acala"
)

var SupportedFamilies = []ChainFamily{FamilyRelay, FamilyPolkadotXcm, FamilyAstar, FamilyAcala}

func (family ChainFamily) Valid() bool {
	for _, f := range SupportedFamilies {
		if f == family {
			return true
		}
	}
	return false
}

// ChainKind is either relay or parachain, never both.
type ChainKind string

const (
	KindRelay     ChainKind = "relay"
	KindParachain ChainKind = "parachain"
)

// MultiAddressKind picks which MultiAddress variant a chain expects for account arguments.
type MultiAddressKind string

const (
	MultiAddressId        MultiAddressKind = "id"
	MultiAddressAddress32 MultiAddressKind = "address32"
)

const DefaultXTokensWeight uint64 = 5_000_000_000
const DefaultRelayNativeParents uint8 = 1

type ChainConfig struct {
	// Name is the key of the chain in the configuration.
	Name       string      `yaml:"name,omitempty" validate:"required"`
	Endpoint   string      `yaml:"endpoint,omitempty" validate:"required"`
	Family     ChainFamily `yaml:"family,omitempty" validate:"required,oneof=relay polkadot-xcm astar acala"`
	Kind       ChainKind   `yaml:"kind,omitempty" validate:"required,oneof=relay parachain"`
	SS58Prefix uint16      `yaml:"ss58_prefix"`
	// Checked against the address's embedded prefix on decoding.
	CheckPrefix bool   `yaml:"check_prefix,omitempty"`
	Decimals    int32  `yaml:"decimals,omitempty"`
	Symbol      string `yaml:"symbol,omitempty"`

	// Pallet and method used for XCM transfers, e.g. PolkadotXcm.reserve_withdraw_assets.
	XcmPallet      string `yaml:"xcm_pallet,omitempty"`
	TransferMethod string `yaml:"transfer_method,omitempty"`
	// Parents value of the relay's native token, as seen by this chain when sending it to the relay.
	RelayNativeParents *uint8 `yaml:"relay_native_parents,omitempty"`
	// This chain's own parachain id, used for compound asset ids.
	ParaID uint32 `yaml:"para_id,omitempty"`

	XTokensWeight uint64           `yaml:"xtokens_weight,omitempty"`
	TokenSymbols  map[string]uint8 `yaml:"token_symbols,omitempty"`

	MintBeneficiary MultiAddressKind `yaml:"mint_beneficiary,omitempty" validate:"omitempty,oneof=id address32"`
}

func (chain *ChainConfig) String() string {
	return fmt.Sprintf("%s (%s %s, prefix %d)", chain.Name, chain.Kind, chain.Family, chain.SS58Prefix)
}

func (chain *ChainConfig) IsRelay() bool {
	return chain.Kind == KindRelay
}

func (chain *ChainConfig) GetRelayNativeParents() uint8 {
	if chain.RelayNativeParents == nil {
		return DefaultRelayNativeParents
	}
	return *chain.RelayNativeParents
}

func (chain *ChainConfig) GetXTokensWeight() uint64 {
	if chain.XTokensWeight == 0 {
		return DefaultXTokensWeight
	}
	return chain.XTokensWeight
}

func (chain *ChainConfig) GetMintBeneficiary() MultiAddressKind {
	if chain.MintBeneficiary == "" {
		return MultiAddressId
	}
	return chain.MintBeneficiary
}

// TokenSymbolIndex looks up the on-chain index of a token symbol (exact match).
func (chain *ChainConfig) TokenSymbolIndex(symbol string) (uint8, bool) {
	index, ok := chain.TokenSymbols[symbol]
	return index, ok
}
