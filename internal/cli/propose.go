package cli

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/council/internal/cli/render"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

// proposeFlags are shared by every propose subcommand
type proposeFlags struct {
	description string
	deadline    string
	ttl         time.Duration
}

func (f *proposeFlags) params(caller common.Address, kind models.MotionKind) (usecase.ProposeMotionParams, error) {
	params := usecase.ProposeMotionParams{
		Caller:      caller,
		Kind:        kind,
		Description: f.description,
		TTL:         f.ttl,
	}
	if f.deadline != "" {
		deadline, err := time.Parse(time.RFC3339, f.deadline)
		if err != nil {
			return params, fmt.Errorf("invalid --deadline %q: %w", f.deadline, err)
		}
		params.Deadline = deadline.UTC()
	}
	return params, nil
}

// NewProposeCmd creates the propose command group
func NewProposeCmd() *cobra.Command {
	flags := &proposeFlags{}

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Propose a motion",
		Long: `Propose a motion for the council to vote on.

Representative motions (elect, dismiss, governor) may be proposed by any
representative. Revising an approval requirement is reserved to the governor.
A motion stays open until its deadline, which defaults to --ttl after now.`,
	}

	cmd.PersistentFlags().StringVarP(&flags.description, "description", "d", "", "Free text shown with the motion")
	cmd.PersistentFlags().StringVar(&flags.deadline, "deadline", "", "Voting deadline as RFC3339")
	cmd.PersistentFlags().DurationVar(&flags.ttl, "ttl", 0, "Voting period when --deadline is not set (defaults to council default_ttl)")

	cmd.AddCommand(
		newProposeTargetCmd(flags, "elect <address>", "Propose electing a representative", models.KindElectRepresentative),
		newProposeTargetCmd(flags, "dismiss <address>", "Propose dismissing a representative", models.KindDismissRepresentative),
		newProposeTargetCmd(flags, "governor <address>", "Propose electing a representative as governor", models.KindElectGovernor),
		newProposeReviseCmd(flags),
	)

	return cmd
}

func newProposeTargetCmd(flags *proposeFlags, use, short string, kind models.MotionKind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("target %q is not a valid address", args[0])
			}

			params, err := flags.params(common.Address{}, kind)
			if err != nil {
				return err
			}
			params.Target = common.HexToAddress(args[0])
			return runPropose(cmd, params)
		},
	}
}

func newProposeReviseCmd(flags *proposeFlags) *cobra.Command {
	var policy string
	var threshold uint64
	var vetoable bool

	cmd := &cobra.Command{
		Use:   "revise <kind>",
		Short: "Propose a new approval requirement for a motion kind",
		Long: `Propose replacing the approval requirement of a motion kind.

Policies:
  majority        more than half of the representatives
  fixed-count     at least --threshold votes
  fixed-percent   at least --threshold percent of the representatives`,
		Example: `  council propose revise elect-representative --policy fixed-count --threshold 2
  council propose revise dismiss-representative --policy fixed-percent --threshold 66 --vetoable`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: motionKindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseMotionKind(args[0])
			if err != nil {
				return err
			}
			p, err := models.ParseApprovalPolicy(policy)
			if err != nil {
				return err
			}

			params, err := flags.params(common.Address{}, models.KindReviseApprovalRequirement)
			if err != nil {
				return err
			}
			params.Revision = &models.RequirementRevision{
				Kind: kind,
				Requirement: models.ApprovalRequirement{
					Policy:    p,
					Threshold: threshold,
					Vetoable:  vetoable,
				},
			}
			return runPropose(cmd, params)
		},
	}

	cmd.Flags().StringVar(&policy, "policy", models.PolicyMajority.String(), "Approval policy: majority, fixed-count or fixed-percent")
	cmd.Flags().Uint64Var(&threshold, "threshold", 1, "Votes (fixed-count) or percent (fixed-percent) required")
	cmd.Flags().BoolVar(&vetoable, "vetoable", false, "Let the governor veto motions of this kind")

	return cmd
}

func runPropose(cmd *cobra.Command, params usecase.ProposeMotionParams) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	if err := requireCaller(app); err != nil {
		return err
	}
	params.Caller = app.Config.Caller

	result, err := app.ProposeMotion.Run(cmd.Context(), params)
	if err != nil {
		return err
	}

	return render.NewCouncilRenderer(cmd.OutOrStdout(), app.Config.Output).RenderProposed(result)
}

func motionKindNames() []string {
	names := make([]string, len(models.AllMotionKinds))
	for i, k := range models.AllMotionKinds {
		names[i] = k.String()
	}
	return names
}
