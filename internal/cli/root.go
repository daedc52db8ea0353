package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/council/internal/app"
	"github.com/trebuchet-org/council/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// Execute runs the root command and releases everything the app opened,
// including when the command fails
func Execute(ctx context.Context, args []string) error {
	return execute(ctx, args, os.Stdout)
}

func execute(ctx context.Context, args []string, out io.Writer) error {
	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	rootCmd := newRootCmd(func(f func()) { cleanups = append(cleanups, f) })
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(func(func()) {})
}

func newRootCmd(onCleanup func(func())) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "council",
		Short: "Governance council motion lifecycle",
		Long: `council keeps a roster of representatives and a governor, and lets them
change it through motions: propose, vote, veto, cancel and enact.

Every accepted operation is appended to a hash-chained journal under
.council/, and the council is rebuilt from that journal on each run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				// init creates the project
				if cmd.Name() != "init" {
					return err
				}
				if projectRoot, err = os.Getwd(); err != nil {
					return err
				}
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, cleanup, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			onCleanup(cleanup)

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				onCleanup(cancel)
			}
			cmd.SetContext(ctx)

			appInstance.Logger.Debug("council ready",
				"root", appInstance.Config.ProjectRoot,
				"backend", appInstance.Config.Storage.Backend,
				"caller", callerLabel(appInstance),
			)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("as", "", "Caller identity (address) for this operation")
	rootCmd.PersistentFlags().String("at", "", "Operation time as RFC3339 (defaults to now)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "motions",
		Title: "Motion Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "queries",
		Title: "Query Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, c := range []*cobra.Command{
		NewProposeCmd(),
		NewVoteCmd(),
		NewCancelCmd(),
		NewVetoCmd(),
		NewEnactCmd(),
	} {
		c.GroupID = "motions"
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{
		NewShowCmd(),
		NewMotionsCmd(),
		NewMotionCmd(),
		NewHistoryCmd(),
	} {
		c.GroupID = "queries"
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{
		NewInitCmd(),
		NewConfigCmd(),
	} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// requireCaller fails operations that need an identity when none is configured
func requireCaller(a *app.App) error {
	if !a.Config.HasCaller {
		return fmt.Errorf("no caller identity: pass --as <address> or run 'council config set caller <address>'")
	}
	return nil
}

func callerLabel(a *app.App) string {
	if !a.Config.HasCaller {
		return "(none)"
	}
	return a.Config.Caller.Hex()
}
