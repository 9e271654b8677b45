package cmd

import (
	"fmt"

	"github.com/nconklindev/chore/internal/inspector"
	"github.com/nconklindev/chore/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newInspectCmd() *cobra.Command {
	file := inspector.DefaultDataFile

	cmd := &cobra.Command{
		Use:   "inspect [substring]",
		Short: "Show records whose object name contains a substring",
		Long: fmt.Sprintf(`Inspect loads the converted JSON file, counts the records whose object
name contains the substring (case-sensitive) and prints the location, task
and zone type details of the first %d of them.

The substring defaults to %q.`, inspector.ShowLimit, inspector.DefaultQuery),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := inspector.DefaultQuery
			if len(args) == 1 {
				query = args[0]
			}

			res, err := inspector.InspectFile(file, query)
			if err != nil {
				return err
			}
			a.log.Debug("inspection finished",
				zap.String("file", file),
				zap.String("query", query),
				zap.Int("matched", res.Matched),
			)

			fmt.Fprint(cmd.OutOrStdout(), ui.RenderInspection(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", inspector.DefaultDataFile, "Structured-record JSON file")

	return cmd
}
