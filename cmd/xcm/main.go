package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cordialsys/xcmtransfer/cmd/xcm/commands"
	"github.com/cordialsys/xcmtransfer/cmd/xcm/setup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func CmdXcm() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "xcm",
		Short:        "Build and submit XCM transfers between a relay chain and its parachains",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			args, err := setup.ArgsFromCmd(cmd)
			if err != nil {
				return err
			}
			setup.ConfigureLogger(args)

			cfg, err := setup.LoadConfig(args)
			if err != nil {
				return err
			}
			chain, err := cfg.GetChain(args.Chain)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"rpc":    chain.Endpoint,
				"chain":  chain.Name,
				"family": chain.Family,
				"kind":   chain.Kind,
			}).Info("chain")

			cmd.SetContext(setup.CreateContext(cmd.Context(), args, cfg, chain))
			return nil
		},
	}
	setup.AddArgs(cmd)

	cmd.AddCommand(commands.CmdAssets())
	cmd.AddCommand(commands.CmdResolve())
	cmd.AddCommand(commands.CmdInfo())
	cmd.AddCommand(commands.CmdBalance())
	cmd.AddCommand(commands.CmdTransfer())
	cmd.AddCommand(commands.CmdMint())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := CmdXcm().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
