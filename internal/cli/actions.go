package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/council/internal/app"
	"github.com/trebuchet-org/council/internal/cli/render"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

type motionAction func(a *app.App) func(context.Context, usecase.MotionActionParams) (*usecase.MotionActionResult, error)

// NewVoteCmd creates the vote command
func NewVoteCmd() *cobra.Command {
	return newMotionActionCmd(models.OpVote,
		"vote [motion-id]",
		"Vote for an open motion",
		`Vote for an open motion. Only representatives may vote.

The motion is approved once its votes reach the approval requirement of its
kind. Without a motion id you are asked to pick one of the open motions.`,
		func(a *app.App) func(context.Context, usecase.MotionActionParams) (*usecase.MotionActionResult, error) {
			return a.CastVote.Run
		})
}

// NewCancelCmd creates the cancel command
func NewCancelCmd() *cobra.Command {
	return newMotionActionCmd(models.OpCancel,
		"cancel [motion-id]",
		"Cancel a motion you proposed",
		`Cancel an open motion. Only the motion's creator may cancel it.`,
		func(a *app.App) func(context.Context, usecase.MotionActionParams) (*usecase.MotionActionResult, error) {
			return a.CancelMotion.Run
		})
}

// NewVetoCmd creates the veto command
func NewVetoCmd() *cobra.Command {
	return newMotionActionCmd(models.OpVeto,
		"veto [motion-id]",
		"Veto an open motion as governor",
		`Veto an open motion. Only the governor may veto, and only motions whose
kind has a vetoable approval requirement.`,
		func(a *app.App) func(context.Context, usecase.MotionActionParams) (*usecase.MotionActionResult, error) {
			return a.VetoMotion.Run
		})
}

// NewEnactCmd creates the enact command
func NewEnactCmd() *cobra.Command {
	return newMotionActionCmd(models.OpEnact,
		"enact [motion-id]",
		"Apply an approved motion",
		`Enact an approved motion before its deadline. Any representative may
enact; the motion's effect is applied to the roster, the governor seat or
the approval requirements.`,
		func(a *app.App) func(context.Context, usecase.MotionActionParams) (*usecase.MotionActionResult, error) {
			return a.EnactMotion.Run
		})
}

func newMotionActionCmd(op models.OpType, use, short, long string, action motionAction) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := requireCaller(app); err != nil {
				return err
			}

			motionID, err := resolveMotionID(cmd, app, op, args)
			if err != nil {
				return err
			}

			result, err := action(app)(cmd.Context(), usecase.MotionActionParams{
				Caller:   app.Config.Caller,
				MotionID: motionID,
			})
			if err != nil {
				return err
			}

			return render.NewCouncilRenderer(cmd.OutOrStdout(), app.Config.Output).RenderAction(result)
		},
	}
}

// resolveMotionID parses the motion id argument or, when it is missing,
// asks the user to pick a motion the action could apply to
func resolveMotionID(cmd *cobra.Command, app *app.App, op models.OpType, args []string) (uint64, error) {
	if len(args) == 1 {
		return parseMotionID(args[0])
	}

	selected, err := app.SelectMotion.Run(cmd.Context(), usecase.SelectMotionParams{
		Op:     op,
		Caller: app.Config.Caller,
	})
	if err != nil {
		return 0, err
	}
	return selected.Motion.ID, nil
}

func parseMotionID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid motion id %q", s)
	}
	return id, nil
}
