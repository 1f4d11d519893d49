package commands

import (
	"fmt"

	"github.com/cordialsys/xcmtransfer/client"
	"github.com/cordialsys/xcmtransfer/cmd/xcm/setup"
	"github.com/spf13/cobra"
)

type chainInfo struct {
	Name       string                  `json:"name"`
	Endpoint   string                  `json:"endpoint"`
	Properties *client.Properties      `json:"properties"`
	Extensions *client.ChainExtensions `json:"extensions"`
}

func CmdInfo() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the chain's properties and its parachain id, or the parachains of a relay.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := setup.UnwrapChain(cmd.Context())
			session, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			props, err := session.Properties(cmd.Context())
			if err != nil {
				return err
			}
			extensions, err := session.Extensions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(asJson(chainInfo{
				Name:       chain.Name,
				Endpoint:   chain.Endpoint,
				Properties: props,
				Extensions: extensions,
			}))
			return nil
		},
	}
	return cmd
}
