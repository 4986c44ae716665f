package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	wareki "github.com/rabitt1ove/jp-wareki"
	"github.com/rabitt1ove/jp-wareki/internal/csvconv"
)

// WarekiResult is the payload of the to command.
type WarekiResult struct {
	Era   string `json:"era"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Text  string `json:"text"`
	Short string `json:"short"`

	short bool
}

func (r WarekiResult) String() string {
	if r.short {
		return r.Short
	}
	return r.Text
}

// NewToCommand creates the to command.
func NewToCommand(rootOpts *RootOptions) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "to <yyyy-mm-dd> | to <year> <month> <day>",
		Short: "Convert a Gregorian date to an era date",
		Example: `  wareki to 2026-02-23
  wareki to 1989 1 7
  wareki to --short 2019/5/1`,
		Args:          argCount(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTo(rootOpts, cmd, args, short)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print the abbreviated form (R8.2.23)")

	return cmd
}

func runTo(opts *RootOptions, cmd *cobra.Command, args []string, short bool) error {
	formatter := newFormatter(opts, cmd)

	cal, err := loadCalendar(opts, formatter)
	if err != nil {
		return err
	}

	year, month, day, err := gregorianArgs(args)
	if err != nil {
		return formatter.Fail(ErrCodeInvalidArg, ExitFailure, err)
	}

	d, err := cal.ToWareki(year, month, day)
	if err != nil {
		code, exit := classify(err)
		return formatter.Fail(code, exit, err)
	}
	formatter.VerboseLog("%04d-%02d-%02d is in the %s era", year, month, day, d.Era)

	return formatter.Success(WarekiResult{
		Era:   d.Era,
		Year:  d.Year,
		Month: int(d.Month),
		Day:   d.Day,
		Text:  d.String(),
		Short: cal.Short(d),
		short: short,
	})
}

// gregorianArgs reads either a single "2026-02-23" argument or three numbers.
func gregorianArgs(args []string) (int, time.Month, int, error) {
	if len(args) == 1 {
		return csvconv.ParseGregorian(args[0])
	}
	nums, err := atois("to", args, "year", "month", "day")
	if err != nil {
		return 0, 0, 0, err
	}
	return nums[0], time.Month(nums[1]), nums[2], nil
}

// atois converts each argument to an int. A non-number is reported as an
// invalid argument named after its position.
func atois(op string, args []string, names ...string) ([]int, error) {
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, &wareki.InvalidArgError{Op: op, Arg: names[i], Value: a, Reason: "not a number"}
		}
		nums[i] = n
	}
	return nums, nil
}

// argCount accepts exactly one of the given argument counts.
func argCount(counts ...int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		for _, n := range counts {
			if len(args) == n {
				return nil
			}
		}
		return fmt.Errorf("accepts %v arg(s), received %d", counts, len(args))
	}
}
