package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	wareki "github.com/rabitt1ove/jp-wareki"
	"github.com/rabitt1ove/jp-wareki/internal/eratable"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	ErasFile string // YAML era table; empty means $WAREKI_ERAS or built-in
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the wareki CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "wareki",
		Short: "Convert dates between the Gregorian and Japanese era calendars",
		Long: `Convert dates between the Gregorian calendar and the Japanese era
calendar (wareki): 明治, 大正, 昭和, 平成 and 令和.

A custom era table can be supplied with --eras or $WAREKI_ERAS.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ErasFile, "eras", "", "YAML era table (default $"+eratable.EnvVar+" or built-in)")

	cmd.AddCommand(NewToCommand(opts))
	cmd.AddCommand(NewFromCommand(opts))
	cmd.AddCommand(NewErasCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))

	return cmd
}

// newFormatter builds the formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadCalendar resolves the era table named by the global flags.
func loadCalendar(opts *RootOptions, f *OutputFormatter) (*wareki.Calendar, error) {
	cal, src, err := eratable.Resolve(opts.ErasFile)
	if err != nil {
		return nil, f.Fail(ErrCodeEraTable, ExitCommandError, err)
	}
	if src == "" {
		f.VerboseLog("Using built-in era table")
	} else {
		f.VerboseLog("Loaded %d era(s) from %s", len(cal.Eras()), src)
	}
	return cal, nil
}
