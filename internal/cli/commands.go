package cli

import (
	"github.com/specialistvlad/recoseq/internal/app"
	"github.com/spf13/cobra"
)

func newCheckCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "check PATH...",
		Short: "Load and validate configuration files or directories.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.newApp(app.Config{Paths: args})
			if err != nil {
				return err
			}
			return failure(a.Check(cmd.Context()))
		},
	}
}

func newPlanCommand(env *commandEnv) *cobra.Command {
	var sequence string
	cmd := &cobra.Command{
		Use:   "plan PATH... --sequence NAME",
		Short: "Print the execution plan of a sequence.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.newApp(app.Config{Paths: args, Sequence: sequence})
			if err != nil {
				return err
			}
			return failure(a.Plan(cmd.Context()))
		},
	}
	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "Name of the sequence to plan.")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}

func newRunCommand(env *commandEnv) *cobra.Command {
	var cfg app.Config
	cmd := &cobra.Command{
		Use:   "run PATH... --sequence NAME",
		Short: "Execute a sequence for a number of iterations.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Paths = args
			a, err := env.newApp(cfg)
			if err != nil {
				return err
			}
			return failure(a.Run(cmd.Context()))
		},
	}
	cmd.Flags().StringVarP(&cfg.Sequence, "sequence", "s", "", "Name of the sequence to run.")
	cmd.Flags().IntVarP(&cfg.Iterations, "iterations", "n", 1, "Number of iterations (events) to process.")
	cmd.Flags().IntVar(&cfg.WorkerCount, "workers", 0, "Number of concurrent workers. 0 uses GOMAXPROCS.")
	cmd.Flags().StringVar(&cfg.JournalPath, "journal", "", "Path to the run journal database. Empty disables the journal.")
	cmd.Flags().IntVar(&cfg.HealthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}

func newHistoryCommand(env *commandEnv) *cobra.Command {
	var journalPath string
	cmd := &cobra.Command{
		Use:   "history --journal FILE",
		Short: "List the runs recorded in a journal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.newApp(app.Config{JournalPath: journalPath})
			if err != nil {
				return err
			}
			return failure(a.History(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&journalPath, "journal", "", "Path to the run journal database.")
	_ = cmd.MarkFlagRequired("journal")
	return cmd
}
