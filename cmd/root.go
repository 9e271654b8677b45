package cmd

import (
	"errors"
	"fmt"

	"github.com/nconklindev/chore/internal/logger"
	"github.com/nconklindev/chore/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	logLevel  string
	logFormat string
	log       *zap.Logger
}

// shownError marks an error whose message has already been printed.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

// NewRootCmd builds the chore command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{log: logger.NewNop()}

	root := &cobra.Command{
		Use:   "chore",
		Short: "Convert and inspect the cleaning objects spreadsheet",
		Long: `Chore turns the cleaning objects workbook into JSON and lets you look
through the result.

Commands:
  convert  Read data/objects.xlsx, print statistics and write objects-data.json
           and objects-sample.json.
  inspect  Search objects-data.json by object name.
  browse   Pick a file and do either interactively (default).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.NewLogger(a.logLevel, a.logFormat, "chore")
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			a.log = l
			return nil
		},
		RunE: a.runBrowse,
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "Log format: console or json")

	root.AddCommand(a.newConvertCmd())
	root.AddCommand(a.newInspectCmd())
	root.AddCommand(a.newBrowseCmd())

	return root, a
}

// Execute runs the command line and prints any error not reported yet.
func Execute() error {
	root, a := newRootCmd()
	defer func() { _ = a.log.Sync() }()

	err := root.Execute()
	if err == nil {
		return nil
	}

	var shown *shownError
	if !errors.As(err, &shown) {
		fmt.Fprint(root.OutOrStdout(), ui.RenderError(err))
	}
	return err
}
