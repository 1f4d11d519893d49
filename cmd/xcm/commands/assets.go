package commands

import (
	"fmt"
	"math/big"

	"github.com/cordialsys/xcmtransfer/assets"
	"github.com/cordialsys/xcmtransfer/cmd/xcm/setup"
	"github.com/spf13/cobra"
)

func CmdAssets() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List the assets registered on the chain.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			session, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			descriptors, err := assets.NewRegistry(session, cfg.AssetRanges).ListAssets(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(asJson(descriptors))
			return nil
		},
	}
	return cmd
}

func CmdResolve() *cobra.Command {
	var symbol string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Find the id of an asset by its symbol.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup.UnwrapConfig(cmd.Context())
			session, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			descriptors, err := assets.NewRegistry(session, cfg.AssetRanges).ListAssets(cmd.Context())
			if err != nil {
				return err
			}
			ref, err := assets.ResolveSymbol(symbol, descriptors)
			if err != nil {
				return err
			}
			id, _ := ref.ID()
			descriptor, err := assets.FindByID(id, descriptors)
			if err != nil {
				return err
			}
			fmt.Println(asJson(map[string]any{
				"symbol":   symbol,
				"asset_id": ref.String(),
				"decimals": descriptor.Decimals,
				"class":    descriptor.Class,
			}))
			return nil
		},
	}
	cmd.Flags().StringVar(&symbol, "symbol", "", "Exact asset symbol, e.g. DOT.")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

// resolveAssetFlag turns --asset or --symbol into an asset id.  Neither
// means the native asset.
func resolveAssetFlag(cmd *cobra.Command, asset string, symbol string) (*big.Int, bool, error) {
	if asset != "" && symbol != "" {
		return nil, false, fmt.Errorf("pass only one of --asset or --symbol")
	}
	if symbol != "" {
		cfg := setup.UnwrapConfig(cmd.Context())
		session, err := connect(cmd.Context())
		if err != nil {
			return nil, false, err
		}
		descriptors, err := assets.NewRegistry(session, cfg.AssetRanges).ListAssets(cmd.Context())
		if err != nil {
			return nil, false, err
		}
		ref, err := assets.ResolveSymbol(symbol, descriptors)
		if err != nil {
			return nil, false, err
		}
		id, ok := ref.ID()
		return id, ok, nil
	}
	if asset == "" {
		return nil, false, nil
	}
	id, ok := new(big.Int).SetString(asset, 10)
	if !ok || id.Sign() < 0 {
		return nil, false, fmt.Errorf("invalid asset id %q", asset)
	}
	return id, true, nil
}
