package commands

import (
	"fmt"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/address"
	"github.com/cordialsys/xcmtransfer/builder"
	"github.com/cordialsys/xcmtransfer/call"
	"github.com/cordialsys/xcmtransfer/cmd/xcm/setup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type transferFlags struct {
	to       string
	amount   string
	decimals int32
}

// parse decodes the recipient without checking its prefix, as it usually
// belongs to another chain.
func (f *transferFlags) parse(chain *xc.ChainConfig) (xc.AccountID, xc.AmountBlockchain, error) {
	if f.to == "" {
		return xc.AccountID{}, xc.AmountBlockchain{}, fmt.Errorf("--to required")
	}
	recipient, err := address.NewCodec(chain.SS58Prefix, false).Decode(xc.Address(f.to))
	if err != nil {
		return xc.AccountID{}, xc.AmountBlockchain{}, err
	}
	amount, err := parseAmount(chain, f.amount, f.decimals)
	if err != nil {
		return xc.AccountID{}, xc.AmountBlockchain{}, err
	}
	return recipient, amount, nil
}

func requireFamily(chain *xc.ChainConfig, families ...xc.ChainFamily) error {
	for _, family := range families {
		if chain.Family == family {
			return nil
		}
	}
	return fmt.Errorf("%s is a %s chain, this transfer needs one of %v", chain.Name, chain.Family, families)
}

func CmdTransfer() *cobra.Command {
	flags := &transferFlags{}
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Build an XCM transfer and print it, or sign and submit it with --submit.",
	}
	cmd.PersistentFlags().StringVar(&flags.to, "to", "", "Recipient address on the destination chain.")
	cmd.PersistentFlags().StringVar(&flags.amount, "amount", "", "Decimal amount to send, e.g. 1.5.")
	cmd.PersistentFlags().Int32Var(&flags.decimals, "decimals", -1, "Decimals of --amount. Defaults to the chain's decimals.")

	cmd.AddCommand(cmdTransferSend(flags))
	cmd.AddCommand(cmdTransferToRelay(flags))
	cmd.AddCommand(cmdTransferToParachain(flags))
	cmd.AddCommand(cmdTransferXTokens(flags))
	cmd.AddCommand(cmdTransferFromRelay(flags))
	return cmd
}

// cmdTransferSend picks the transfer strategy from the chain's family.
func cmdTransferSend(flags *transferFlags) *cobra.Command {
	var paraID uint32
	var asset string
	var symbol string
	var token string
	var feeAssetItem uint32
	var weight uint64
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a transfer built the way the chain's family requires.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := setup.UnwrapChain(cmd.Context())
			strategy, err := builder.NewTransferStrategy(chain)
			if err != nil {
				return err
			}
			recipient, amount, err := flags.parse(chain)
			if err != nil {
				return err
			}
			options := []builder.BuilderOption{
				builder.OptionFeeAssetItem(feeAssetItem),
			}
			if cmd.Flags().Changed("para-id") {
				options = append(options, builder.OptionDestinationParachain(paraID))
			}
			if token != "" {
				options = append(options, builder.OptionTokenSymbol(token))
			}
			if weight > 0 {
				options = append(options, builder.OptionDestWeight(weight))
			}
			assetID, identified, err := resolveAssetFlag(cmd, asset, symbol)
			if err != nil {
				return err
			}
			if identified {
				options = append(options, builder.OptionAsset(xc.IdentifiedAsset(assetID)))
			}
			transferArgs, err := builder.NewTransferArgs(recipient, amount, options...)
			if err != nil {
				return err
			}
			c, err := strategy.Transfer(transferArgs)
			if err != nil {
				return err
			}
			return finishTransfer(cmd, c)
		},
	}
	cmd.Flags().Uint32Var(&paraID, "para-id", 0, "Destination parachain id. Without it the transfer goes to the relay chain.")
	cmd.Flags().StringVar(&asset, "asset", "", "Decimal id of the asset to send. Defaults to the native asset.")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Symbol of the asset to send, looked up in the registry.")
	cmd.Flags().StringVar(&token, "token", "", "Token symbol for multi-currency chains, e.g. DOT.")
	cmd.Flags().Uint32Var(&feeAssetItem, "fee-asset-item", 0, "Index of the asset paying for execution.")
	cmd.Flags().Uint64Var(&weight, "weight", 0, "Destination weight limit for multi-currency chains.")
	return cmd
}

func cmdTransferToRelay(flags *transferFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Send the relay token held on this parachain back to the relay chain.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := setup.UnwrapChain(cmd.Context())
			if err := requireFamily(chain, xc.FamilyPolkadotXcm, xc.FamilyAstar); err != nil {
				return err
			}
			recipient, amount, err := flags.parse(chain)
			if err != nil {
				return err
			}
			c, err := builder.NewParachainXcm(chain).ReserveTransferToRelay(amount, recipient)
			if err != nil {
				return err
			}
			return finishTransfer(cmd, c)
		},
	}
}

func cmdTransferToParachain(flags *transferFlags) *cobra.Command {
	var paraID uint32
	var asset string
	var symbol string
	var feeAssetItem uint32
	cmd := &cobra.Command{
		Use:   "parachain",
		Short: "Send the native token or a registered asset to another parachain.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := setup.UnwrapChain(cmd.Context())
			if err := requireFamily(chain, xc.FamilyPolkadotXcm, xc.FamilyAstar); err != nil {
				return err
			}
			recipient, amount, err := flags.parse(chain)
			if err != nil {
				return err
			}
			options := []builder.BuilderOption{
				builder.OptionDestinationParachain(paraID),
				builder.OptionFeeAssetItem(feeAssetItem),
			}
			assetID, identified, err := resolveAssetFlag(cmd, asset, symbol)
			if err != nil {
				return err
			}
			if identified {
				options = append(options, builder.OptionAsset(xc.IdentifiedAsset(assetID)))
			}
			transferArgs, err := builder.NewTransferArgs(recipient, amount, options...)
			if err != nil {
				return err
			}
			c, err := builder.NewParachainXcm(chain).Transfer(transferArgs)
			if err != nil {
				return err
			}
			return finishTransfer(cmd, c)
		},
	}
	cmd.Flags().Uint32Var(&paraID, "para-id", 0, "Destination parachain id. Required.")
	cmd.Flags().StringVar(&asset, "asset", "", "Decimal id of the asset to send. Defaults to the native asset.")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Symbol of the asset to send, looked up in the registry.")
	cmd.Flags().Uint32Var(&feeAssetItem, "fee-asset-item", 0, "Index of the asset paying for execution.")
	_ = cmd.MarkFlagRequired("para-id")
	return cmd
}

func cmdTransferXTokens(flags *transferFlags) *cobra.Command {
	var paraID uint32
	var token string
	var weight uint64
	cmd := &cobra.Command{
		Use:   "xtokens",
		Short: "Send a token by symbol from a multi-currency chain, to the relay or to another parachain.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := setup.UnwrapChain(cmd.Context())
			if err := requireFamily(chain, xc.FamilyAcala); err != nil {
				return err
			}
			recipient, amount, err := flags.parse(chain)
			if err != nil {
				return err
			}
			options := []builder.BuilderOption{}
			if cmd.Flags().Changed("para-id") {
				options = append(options, builder.OptionDestinationParachain(paraID))
			}
			if token != "" {
				options = append(options, builder.OptionTokenSymbol(token))
			}
			if weight > 0 {
				options = append(options, builder.OptionDestWeight(weight))
			}
			transferArgs, err := builder.NewTransferArgs(recipient, amount, options...)
			if err != nil {
				return err
			}
			c, err := builder.NewXTokens(chain).Transfer(transferArgs)
			if err != nil {
				return err
			}
			return finishTransfer(cmd, c)
		},
	}
	cmd.Flags().Uint32Var(&paraID, "para-id", 0, "Destination parachain id. Without it the token goes to the relay chain.")
	cmd.Flags().StringVar(&token, "token", "", "Token symbol, e.g. DOT. Defaults to the chain's own token.")
	cmd.Flags().Uint64Var(&weight, "weight", 0, "Destination weight limit. Defaults to the chain's configured weight.")
	return cmd
}

func cmdTransferFromRelay(flags *transferFlags) *cobra.Command {
	var paraID uint32
	cmd := &cobra.Command{
		Use:   "from-relay",
		Short: "Send the relay chain's token to an account on one of its parachains.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := setup.UnwrapChain(cmd.Context())
			if err := requireFamily(chain, xc.FamilyRelay); err != nil {
				return err
			}
			recipient, amount, err := flags.parse(chain)
			if err != nil {
				return err
			}
			c, err := builder.NewRelay(chain).RelayToParachain(paraID, amount, recipient)
			if err != nil {
				return err
			}
			return finishTransfer(cmd, c)
		},
	}
	cmd.Flags().Uint32Var(&paraID, "para-id", 0, "Destination parachain id. Required.")
	_ = cmd.MarkFlagRequired("para-id")
	return cmd
}

func finishTransfer(cmd *cobra.Command, c *call.Call) error {
	fmt.Println(asJson(c))
	if !setup.UnwrapArgs(cmd.Context()).Submit {
		return nil
	}
	logrus.WithField("method", c.Method()).Info("submitting transfer")
	results, err := submitCalls(cmd.Context(), []*call.Call{c})
	if len(results) > 0 {
		fmt.Println(asJson(results))
	}
	return err
}
