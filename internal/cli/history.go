package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/council/internal/cli/render"
	"github.com/trebuchet-org/council/internal/usecase"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var motion uint64
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show and verify the journal",
		Long: `Show the journal of accepted operations and verify its hash chain by
replaying it from genesis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ShowHistoryParams{Limit: limit}
			if cmd.Flags().Changed("motion") {
				params.MotionID = &motion
			}

			result, err := app.ShowHistory.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewHistoryRenderer(cmd.OutOrStdout(), app.Config.Output).RenderHistory(result)
		},
	}

	cmd.Flags().Uint64Var(&motion, "motion", 0, "Only entries about this motion")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Only the most recent entries")

	return cmd
}
