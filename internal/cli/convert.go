package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rabitt1ove/jp-wareki/internal/csvconv"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	Column    int
	Direction string
	Encoding  string
	Header    bool
	Strict    bool
	Output    string
}

// ConvertResult is the payload of the convert command.
type ConvertResult struct {
	csvconv.Stats
	Output string `json:"output"`
}

func (r ConvertResult) String() string {
	return fmt.Sprintf("Converted %d of %d record(s) to %s (%d skipped, %d failed)",
		r.Converted, r.Records, r.Output, r.Skipped, r.Failed)
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a date column of a CSV file",
		Long: `Convert a date column of a CSV file and append the result as a new column.

Reads from stdin when no file is given. The converted CSV is written to
stdout unless --output is set, in which case a summary is printed instead.
Values that cannot be converted leave the new cell empty; with --strict
the first such value aborts the conversion.`,
		Example: `  wareki convert --column 2 --header members.csv
  wareki convert -d from -e shift_jis -o out.csv export.csv
  cat dates.csv | wareki convert`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().IntVarP(&opts.Column, "column", "c", 0, "0-based index of the date column")
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", string(csvconv.ToWareki), "conversion direction (to|from)")
	cmd.Flags().StringVarP(&opts.Encoding, "encoding", "e", string(csvconv.UTF8), "character encoding of input and output (utf-8|shift_jis|euc-jp)")
	cmd.Flags().BoolVar(&opts.Header, "header", false, "first record is a header row")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "stop at the first value that fails to convert")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runConvert(opts *RootOptions, convOpts *ConvertOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(opts, cmd)

	dir, err := csvconv.ParseDirection(convOpts.Direction)
	if err != nil {
		return formatter.Fail(ErrCodeUsage, ExitCommandError, err)
	}
	enc, err := csvconv.ParseEncoding(convOpts.Encoding)
	if err != nil {
		return formatter.Fail(ErrCodeUsage, ExitCommandError, err)
	}
	if convOpts.Column < 0 {
		return formatter.Fail(ErrCodeUsage, ExitCommandError, fmt.Errorf("invalid column %d", convOpts.Column))
	}

	cal, err := loadCalendar(opts, formatter)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	inName := "stdin"
	if len(args) == 1 {
		fh, err := os.Open(args[0])
		if err != nil {
			return formatter.Fail(ErrCodeIO, ExitCommandError, err)
		}
		defer fh.Close()
		in, inName = fh, args[0]
	}

	var out io.Writer = cmd.OutOrStdout()
	outName := "stdout"
	var outFile *os.File
	if convOpts.Output != "" {
		outFile, err = os.Create(convOpts.Output)
		if err != nil {
			return formatter.Fail(ErrCodeIO, ExitCommandError, err)
		}
		out, outName = outFile, convOpts.Output
	}

	formatter.VerboseLog("Converting column %d of %s (%s, %s)", convOpts.Column, inName, dir, enc)

	stats, err := csvconv.Convert(in, out, cal, csvconv.Options{
		Column:    convOpts.Column,
		Direction: dir,
		Encoding:  enc,
		Header:    convOpts.Header,
		Strict:    convOpts.Strict,
	})
	if outFile != nil {
		if cerr := outFile.Close(); err == nil && cerr != nil {
			return formatter.Fail(ErrCodeIO, ExitCommandError, cerr)
		}
	}
	if err != nil {
		code, exit := classify(err)
		return formatter.Fail(code, exit, fmt.Errorf("%s: %w", inName, err))
	}

	formatter.VerboseLog("%d record(s): %d converted, %d skipped, %d failed",
		stats.Records, stats.Converted, stats.Skipped, stats.Failed)
	if stats.Failed > 0 {
		fmt.Fprintf(formatter.GetErrWriter(), "Warning: %d value(s) could not be converted\n", stats.Failed)
	}

	if convOpts.Output == "" {
		return nil
	}
	return formatter.Success(ConvertResult{Stats: stats, Output: outName})
}
