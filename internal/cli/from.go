package cli

import (
	"time"

	"github.com/spf13/cobra"

	wareki "github.com/rabitt1ove/jp-wareki"
)

// GregorianResult is the payload of the from command.
type GregorianResult struct {
	Date   string `json:"date"`   // YYYY-MM-DD
	Wareki string `json:"wareki"` // canonical era date, e.g. 令和8年2月23日
}

func (r GregorianResult) String() string { return r.Date }

// NewFromCommand creates the from command.
func NewFromCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "from <era> <year> <month> <day> | from <era-date>",
		Short: "Convert an era date to a Gregorian date",
		Long: `Convert an era date to a Gregorian YYYY-MM-DD date.

The era may be given by its full name (令和) or any abbreviation (令, R, r).
A single argument is parsed as 令和8年2月23日, 令和元年5月1日 or R8.2.23.`,
		Example: `  wareki from 令和 8 2 23
  wareki from R 1 5 1
  wareki from 平成31年4月30日
  wareki from H31.4.30`,
		Args:          argCount(1, 4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrom(rootOpts, cmd, args)
		},
	}

	return cmd
}

func runFrom(opts *RootOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(opts, cmd)

	cal, err := loadCalendar(opts, formatter)
	if err != nil {
		return err
	}

	d, err := warekiArgs(cal, args)
	if err != nil {
		code, exit := classify(err)
		return formatter.Fail(code, exit, err)
	}

	s, err := cal.FromWareki(d.Era, d.Year, d.Month, d.Day)
	if err != nil {
		code, exit := classify(err)
		return formatter.Fail(code, exit, err)
	}
	if e, ok := cal.LookupEra(d.Era); ok {
		formatter.VerboseLog("Era %s (%s) starts %s", e.Name, e.Romaji, e.Start().Format(time.DateOnly))
		d.Era = e.Name
	}

	return formatter.Success(GregorianResult{Date: s, Wareki: d.String()})
}

// warekiArgs reads either a single era date string or era, year, month, day.
func warekiArgs(cal *wareki.Calendar, args []string) (wareki.Date, error) {
	if len(args) == 1 {
		return cal.Parse(args[0])
	}
	nums, err := atois("from", args[1:], "year", "month", "day")
	if err != nil {
		return wareki.Date{}, err
	}
	return wareki.Date{Era: args[0], Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}, nil
}
