package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/council/internal/cli/render"
	"github.com/trebuchet-org/council/internal/usecase"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var founder string
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Found a new council",
		Long: `Found a new council in the current directory.

The founder becomes the governor and the only representative. Every motion
kind starts with a simple-majority, non-vetoable approval requirement.
A council.toml is written when the project does not have one yet.`,
		Example: `  # Found a council named after the directory, governed by the caller
  council init --as 0x1111111111111111111111111111111111111111

  # Name the council and its founder explicitly
  council init --name guild --founder 0x1111111111111111111111111111111111111111`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.InitCouncilParams{Name: name}
			switch {
			case founder != "":
				if !common.IsHexAddress(founder) {
					return fmt.Errorf("founder %q is not a valid address", founder)
				}
				params.Founder = common.HexToAddress(founder)
			case app.Config.HasCaller:
				params.Founder = app.Config.Caller
			default:
				return fmt.Errorf("no founder: pass --founder <address> or --as <address>")
			}

			result, err := app.InitCouncil.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewCouncilRenderer(cmd.OutOrStdout(), app.Config.Output).RenderInit(result)
		},
	}

	cmd.Flags().StringVar(&founder, "founder", "", "Founding governor (defaults to --as)")
	cmd.Flags().StringVar(&name, "name", "", "Council name (defaults to the directory name)")

	return cmd
}
