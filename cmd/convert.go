package cmd

import (
	"errors"
	"fmt"

	"github.com/nconklindev/chore/internal/converter"
	"github.com/nconklindev/chore/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newConvertCmd() *cobra.Command {
	opts := converter.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the objects spreadsheet to JSON",
		Long: `Convert reads the first sheet of the objects workbook, prints a preview
and per-column statistics, replaces NaN and infinite values with null and
writes the full dataset and its first rows as indented UTF-8 JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Logger = a.log
			return a.runConvert(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", converter.DefaultInputFile, "Spreadsheet to convert (.xlsx or .csv)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", converter.DefaultOutputFile, "Full JSON output")
	cmd.Flags().StringVarP(&opts.SampleFile, "sample", "s", converter.DefaultSampleFile, "Sample JSON output")
	cmd.Flags().IntVar(&opts.SampleSize, "sample-size", converter.DefaultSampleSize, "Records written to the sample file")

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, opts converter.Options) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Reading %s\n", opts.InputFile)

	result, err := converter.Convert(opts)
	if err != nil {
		if errors.Is(err, converter.ErrFileNotFound) {
			fmt.Fprint(out, ui.RenderNotFound(opts.InputFile))
			return &shownError{err: err}
		}

		fmt.Fprint(out, ui.RenderError(err))
		fields := []zap.Field{zap.Error(err), zap.String("input", opts.InputFile)}
		var pe *converter.PanicError
		if errors.As(err, &pe) {
			fields = append(fields, zap.ByteString("panic_stack", pe.Stack))
		}
		a.log.Error("conversion failed", fields...)
		return &shownError{err: err}
	}

	fmt.Fprint(out, ui.RenderConversion(result))
	return nil
}
