package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/nconklindev/chore/internal/types"

	"go.uber.org/zap"
)

const (
	DefaultInputFile  = "data/objects.xlsx"
	DefaultOutputFile = "objects-data.json"
	DefaultSampleFile = "objects-sample.json"
	DefaultSampleSize = 20

	// PreviewRows is how many leading rows the report shows.
	PreviewRows = 5
)

// ErrFileNotFound is returned when the input spreadsheet does not exist.
var ErrFileNotFound = errors.New("file not found")

// PanicError carries a panic raised while reading a workbook together with
// the stack of the goroutine that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

type Options struct {
	InputFile  string
	OutputFile string
	SampleFile string
	SampleSize int

	// Progress receives read progress in [0, 1]. Sends never block.
	Progress chan<- float64
	Logger   *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		InputFile:  DefaultInputFile,
		OutputFile: DefaultOutputFile,
		SampleFile: DefaultSampleFile,
		SampleSize: DefaultSampleSize,
	}
}

// Convert reads the first sheet of opts.InputFile, summarizes it, replaces
// invalid numbers with null and writes the full dataset and a sample as
// JSON. Either both output files are written or neither is.
func Convert(opts Options) (result *types.ConversionResult, err error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	if _, err := os.Stat(opts.InputFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, opts.InputFile)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}

	data, err := ReadFileData(opts.InputFile, opts.Progress)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.InputFile, err)
	}
	log.Info("sheet loaded",
		zap.String("file", opts.InputFile),
		zap.String("sheet", data.SheetName),
		zap.Int("rows", len(data.Rows)),
		zap.Int("columns", len(data.Headers)),
	)

	records := ToRecords(data)
	schema := types.NewSchema(data.Headers)

	// Statistics must see the values as they were read, before cleaning.
	stats := Summarize(records, schema, StatsRoles)

	var mixed []string
	for _, idx := range MixedColumns(data) {
		mixed = append(mixed, data.Headers[idx])
	}
	if len(mixed) > 0 {
		log.Debug("columns mix text and numbers", zap.Strings("columns", mixed))
	}

	cleaned := Clean(records)
	log.Debug("invalid numbers replaced with null", zap.Int("values", cleaned))

	sample := Sample(records, opts.SampleSize)

	full, err := EncodeRecords(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	head, err := EncodeRecords(sample)
	if err != nil {
		return nil, fmt.Errorf("encode sample: %w", err)
	}
	size, err := CompactSize(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}

	// The full data file is replaced last.
	if err := writeFiles([]outputFile{
		{path: opts.SampleFile, data: head},
		{path: opts.OutputFile, data: full},
	}); err != nil {
		return nil, err
	}
	log.Info("output written",
		zap.String("output", opts.OutputFile),
		zap.String("sample", opts.SampleFile),
		zap.Int("bytes", len(full)),
	)

	preview := data.Rows
	if len(preview) > PreviewRows {
		preview = preview[:PreviewRows]
	}

	return &types.ConversionResult{
		InputFile:     opts.InputFile,
		OutputFile:    opts.OutputFile,
		SampleFile:    opts.SampleFile,
		ColumnsFound:  data.Headers,
		RowsProcessed: len(records),
		SampleRows:    len(sample),
		JSONSize:      size,
		Stats:         stats,
		MixedColumns:  mixed,
		Preview:       preview,
	}, nil
}
