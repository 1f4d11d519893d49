package builder

import (
	"fmt"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/call"
)

// TransferStrategy builds the transfer call of one chain family.  All
// strategies are pure and safe for concurrent use.
type TransferStrategy interface {
	Transfer(args TransferArgs) (*call.Call, error)
}

// NewTransferStrategy selects the strategy for a chain by its configured family.
func NewTransferStrategy(chain *xc.ChainConfig) (TransferStrategy, error) {
	switch chain.Family {
	case xc.FamilyRelay:
		return NewRelay(chain), nil
	case xc.FamilyPolkadotXcm, xc.FamilyAstar:
		return NewParachainXcm(chain), nil
	case xc.FamilyAcala:
		return NewXTokens(chain), nil
	}
	return nil, fmt.Errorf("no transfer strategy for chain family %q", chain.Family)
}

// TransferMethod is the reserve transfer method a chain is configured to use.
// Only the pallet and method names can be overridden; the arguments are always
// those of reserve_transfer_assets, so the result must be a known method.
func TransferMethod(chain *xc.ChainConfig) (call.Method, error) {
	var m call.Method
	switch chain.Family {
	case xc.FamilyAcala:
		if chain.XcmPallet != "" || chain.TransferMethod != "" {
			return "", fmt.Errorf("chain %s: family %s always uses %s", chain.Name, chain.Family, call.XTokensTransfer)
		}
		return call.XTokensTransfer, nil
	case xc.FamilyRelay:
		m = resolveMethod(chain, defaultRelayXcmPallet, reserveTransferAssets)
	case xc.FamilyAstar:
		m = resolveMethod(chain, defaultParachainXcmPallet, reserveWithdrawAssets)
	default:
		m = resolveMethod(chain, defaultParachainXcmPallet, reserveTransferAssets)
	}
	if !call.IsKnown(m) {
		return "", fmt.Errorf("chain %s: unsupported transfer method %s, options are %v", chain.Name, m, reserveMethods)
	}
	return m, nil
}

var reserveMethods = []call.Method{
	call.XcmPalletReserveTransferAssets,
	call.PolkadotXcmReserveTransferAssets,
	call.PolkadotXcmReserveWithdrawAssets,
}

func resolveMethod(chain *xc.ChainConfig, pallet string, method string) call.Method {
	if chain.XcmPallet != "" {
		pallet = chain.XcmPallet
	}
	if chain.TransferMethod != "" {
		method = chain.TransferMethod
	}
	return call.NewMethod(pallet, method)
}
