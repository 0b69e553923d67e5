package cli

import (
	"context"
	"io"

	"github.com/specialistvlad/recoseq/internal/app"
	"github.com/specialistvlad/recoseq/internal/handlers"
	"github.com/specialistvlad/recoseq/internal/hcl"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every command.
type globalFlags struct {
	logLevel  string
	logFormat string
}

// Execute runs the command line in args. Results go to outW, logs and
// errors to errW. modules override the core handler modules, mainly for
// tests.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, modules ...handlers.Module) error {
	root := NewRootCommand(outW, errW, modules...)
	root.SetArgs(args)
	return asExitError(root.ExecuteContext(ctx))
}

// NewRootCommand builds the recoseq command tree.
func NewRootCommand(outW, errW io.Writer, modules ...handlers.Module) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "recoseq",
		Short: "Compose reconstruction units into tasks and sequences, plan and run them.",
		Long: `recoseq loads HCL configuration fragments declaring processing units,
ES producers, tasks and sequences into one namespace, validates every
reference, and plans or executes a sequence by its data dependencies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	env := &commandEnv{global: g, outW: outW, errW: errW, modules: modules}
	root.AddCommand(
		newCheckCommand(env),
		newPlanCommand(env),
		newRunCommand(env),
		newHistoryCommand(env),
	)
	return root
}

// commandEnv carries what every subcommand needs to build an App.
type commandEnv struct {
	global  *globalFlags
	outW    io.Writer
	errW    io.Writer
	modules []handlers.Module
}

// newApp validates cfg and builds the App with the HCL loader.
func (e *commandEnv) newApp(cfg app.Config) (*app.App, error) {
	cfg.LogLevel = e.global.logLevel
	cfg.LogFormat = e.global.logFormat
	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return app.NewApp(e.outW, e.errW, validated, hcl.NewLoader(), e.modules...), nil
}

// failure wraps an application error with the failure exit code.
func failure(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}
