package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/council/internal/cli/render"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

var motionStates = []models.MotionState{
	models.MotionStateOpen,
	models.MotionStateApproved,
	models.MotionStateEnacted,
	models.MotionStateVetoed,
	models.MotionStateCancelled,
	models.MotionStateExpired,
}

// NewMotionsCmd creates the motions command
func NewMotionsCmd() *cobra.Command {
	var states []string
	var kinds []string
	var creator string
	var mine bool

	cmd := &cobra.Command{
		Use:     "motions",
		Aliases: []string{"ls"},
		Short:   "List motions",
		Long: `List motions with their state and live quorum.

States: open, approved (awaiting enactment), enacted, vetoed, cancelled,
expired (deadline passed without enactment).`,
		Example: `  # Everything still up for a vote
  council motions --state open --state approved

  # Motions I proposed
  council motions --mine

  # Governor elections
  council motions --kind governor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListMotionsParams{}
			for _, s := range states {
				state, err := parseMotionState(s)
				if err != nil {
					return err
				}
				params.States = append(params.States, state)
			}
			for _, k := range kinds {
				kind, err := models.ParseMotionKind(k)
				if err != nil {
					return err
				}
				params.Kinds = append(params.Kinds, kind)
			}
			switch {
			case creator != "":
				if !common.IsHexAddress(creator) {
					return fmt.Errorf("creator %q is not a valid address", creator)
				}
				addr := common.HexToAddress(creator)
				params.Creator = &addr
			case mine:
				if err := requireCaller(app); err != nil {
					return err
				}
				params.Creator = &app.Config.Caller
			}

			result, err := app.ListMotions.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewMotionsRenderer(cmd.OutOrStdout(), app.Config.Output).RenderMotionList(result)
		},
	}

	cmd.Flags().StringSliceVar(&states, "state", nil, "Filter by state (repeatable)")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Filter by motion kind (repeatable)")
	cmd.Flags().StringVar(&creator, "creator", "", "Filter by creator address")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only motions proposed by the caller")

	return cmd
}

// NewMotionCmd creates the motion command
func NewMotionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "motion <motion-id>",
		Short: "Show a motion and its votes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			id, err := parseMotionID(args[0])
			if err != nil {
				return err
			}

			result, err := app.ShowMotion.Run(cmd.Context(), id)
			if err != nil {
				return err
			}

			return render.NewMotionsRenderer(cmd.OutOrStdout(), app.Config.Output).RenderMotion(result)
		},
	}
}

func parseMotionState(s string) (models.MotionState, error) {
	for _, state := range motionStates {
		if string(state) == s {
			return state, nil
		}
	}
	return "", fmt.Errorf("unknown motion state %q", s)
}
