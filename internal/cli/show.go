package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/council/internal/cli/render"
	"github.com/trebuchet-org/council/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the council",
		Long: `Show the council's governor, representatives, approval requirements and
motion counts. When a caller is configured, their roles are shown too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowCouncil.Run(cmd.Context(), usecase.ShowCouncilParams{
				Caller:    app.Config.Caller,
				HasCaller: app.Config.HasCaller,
			})
			if err != nil {
				return err
			}

			return render.NewCouncilRenderer(cmd.OutOrStdout(), app.Config.Output).RenderCouncil(result)
		},
	}
}
