package commands

import (
	"fmt"

	"github.com/cordialsys/xcmtransfer/batch"
	"github.com/cordialsys/xcmtransfer/call"
	"github.com/cordialsys/xcmtransfer/cmd/xcm/setup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func CmdMint() *cobra.Command {
	var records string
	var out string
	var encode bool
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Build batches of privileged Assets.mint calls from a records file, and optionally submit them.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := setup.UnwrapConfig(ctx)
			chain := setup.UnwrapChain(ctx)
			submit := setup.UnwrapArgs(ctx).Submit

			entries, err := batch.ReadRecords(records)
			if err != nil {
				return fmt.Errorf("could not read records: %v", err)
			}
			assetID, err := cfg.MintAssetID()
			if err != nil {
				return err
			}
			origin, err := cfg.SudoOrigin()
			if err != nil {
				return err
			}
			plan := batch.MintPlan{
				AssetID:    assetID,
				ExecuteFee: cfg.Mint.ExecuteFee,
				Origin:     origin,
			}
			batches, err := batch.BuildMintBatches(chain, entries, plan, cfg.Batch)
			if err != nil {
				return err
			}

			var resolver call.IndexResolver
			if encode || submit {
				session, err := connect(ctx)
				if err != nil {
					return err
				}
				meta, err := session.Metadata(ctx)
				if err != nil {
					return err
				}
				resolver = &meta
			}
			if err := batch.SaveArtifact(out, batches, resolver); err != nil {
				return fmt.Errorf("could not save batches: %v", err)
			}
			logrus.WithFields(logrus.Fields{
				"path":    out,
				"batches": len(batches),
			}).Info("saved batches")

			if !submit {
				return nil
			}
			results, err := submitCalls(ctx, batches)
			fmt.Println(asJson(map[string]any{
				"submitted": len(results),
				"total":     len(batches),
				"results":   results,
			}))
			return err
		},
	}
	cmd.Flags().StringVar(&records, "records", "", "JSON file of [{account, amount}] records.")
	cmd.Flags().StringVar(&out, "out", "batches.json", "Where to save the built batches for review.")
	cmd.Flags().BoolVar(&encode, "encode", false, "Include each batch's encoded call in the saved file (connects to the chain).")
	_ = cmd.MarkFlagRequired("records")
	return cmd
}
