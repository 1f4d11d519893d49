package commands

import (
	"fmt"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/address"
	"github.com/cordialsys/xcmtransfer/cmd/xcm/setup"
	"github.com/spf13/cobra"
)

func CmdBalance() *cobra.Command {
	var asset string
	var symbol string
	cmd := &cobra.Command{
		Use:   "balance <address>",
		Short: "Check the free native balance, or asset balance, of an address.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := setup.UnwrapChain(cmd.Context())
			account, err := address.NewCodecForChain(chain).Decode(xc.Address(args[0]))
			if err != nil {
				return err
			}
			assetID, identified, err := resolveAssetFlag(cmd, asset, symbol)
			if err != nil {
				return err
			}
			session, err := connect(cmd.Context())
			if err != nil {
				return err
			}

			result := map[string]any{
				"address": args[0],
				"asset":   xc.NativeAssetName,
			}
			if identified {
				balance, err := session.AssetBalance(cmd.Context(), assetID, account)
				if err != nil {
					return err
				}
				result["asset"] = assetID.String()
				result["balance"] = balance.String()
			} else {
				balance, err := session.FreeBalance(cmd.Context(), account)
				if err != nil {
					return err
				}
				result["balance"] = balance.String()
				result["balance_human"] = balance.ToHuman(chain.Decimals).String()
			}
			fmt.Println(asJson(result))
			return nil
		},
	}
	cmd.Flags().StringVar(&asset, "asset", "", "Decimal asset id. Defaults to the native asset.")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Asset symbol to look up in the registry.")
	return cmd
}
