package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rabitt1ove/jp-wareki/internal/eratable"
)

// EraInfo describes one era in the eras command output.
type EraInfo struct {
	Name    string   `json:"name"`
	Romaji  string   `json:"romaji,omitempty"`
	Start   string   `json:"start"`
	End     string   `json:"end,omitempty"` // empty for the current era
	Aliases []string `json:"aliases,omitempty"`
}

// EraList is the payload of the eras command.
type EraList []EraInfo

func (l EraList) String() string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tROMAJI\tSTART\tEND\tALIASES")
	for _, e := range l {
		end := e.End
		if end == "" {
			end = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Romaji, e.Start, end, strings.Join(e.Aliases, " "))
	}
	tw.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// NewErasCommand creates the eras command.
func NewErasCommand(rootOpts *RootOptions) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "eras",
		Short: "List the eras known to the calendar",
		Long: `List the eras known to the calendar, oldest first.

With --yaml the table is printed in the format accepted by --eras, which
is a convenient starting point for a custom era table.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEras(rootOpts, cmd, asYAML)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the table as a YAML era file")

	return cmd
}

func runEras(opts *RootOptions, cmd *cobra.Command, asYAML bool) error {
	formatter := newFormatter(opts, cmd)

	cal, err := loadCalendar(opts, formatter)
	if err != nil {
		return err
	}

	if asYAML {
		if err := eratable.Write(cmd.OutOrStdout(), eratable.FromCalendar(cal)); err != nil {
			return formatter.Fail(ErrCodeIO, ExitCommandError, err)
		}
		return nil
	}

	var list EraList
	for _, e := range cal.Eras() {
		info := EraInfo{
			Name:    e.Name,
			Romaji:  e.Romaji,
			Start:   e.Start().Format(time.DateOnly),
			Aliases: e.Aliases,
		}
		if end, ok := cal.End(e); ok {
			info.End = end.Format(time.DateOnly)
		}
		list = append(list, info)
	}

	return formatter.Success(list)
}
