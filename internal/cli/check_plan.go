package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/bibleplan/tracker/internal/config"
	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/plan"
)

type CheckPlanCommand struct {
	PlanPath   string
	RangeStart string
	RangeEnd   string
	Verbose    bool
}

func NewCheckPlanCommand() *CheckPlanCommand {
	return &CheckPlanCommand{}
}

func (cmd *CheckPlanCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("check-plan", flag.ExitOnError)

	fs.StringVar(&cmd.PlanPath, "plan", config.DefaultPlanPath, "Path to the reading plan JSON")
	fs.StringVar(&cmd.RangeStart, "start", "2026-01-01", "First plan date (YYYY-MM-DD)")
	fs.StringVar(&cmd.RangeEnd, "end", "2026-12-31", "Last plan date (YYYY-MM-DD)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "List every date with its chapter count")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s check-plan [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Validate a reading plan file: book names, chapter numbers and date coverage.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s check-plan -plan ./data/reading_plan.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s check-plan -plan ./data/reading_plan.json -verbose\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *CheckPlanCommand) Run() error {
	idx, err := plan.LoadFile(cmd.PlanPath)
	if err != nil {
		return err
	}

	planRange, err := dates.NewRange(cmd.RangeStart, cmd.RangeEnd)
	if err != nil {
		return err
	}

	chapters := 0
	covered := 0
	empty := []string{}
	for d := planRange.Start; d <= planRange.End; {
		items := idx.ItemsForDate(d, i18n.Default)
		if len(items.Items) > 0 {
			covered++
			chapters += len(items.Items)
			if cmd.Verbose {
				fmt.Printf("%s  %2d chapters  %v\n", d, len(items.Items), items.Titles)
			}
		} else {
			empty = append(empty, d)
		}
		d, err = dates.AddDays(d, 1)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Plan OK: %d entries, %d chapters over %d dates\n", idx.Len(), chapters, covered)
	if len(empty) > 0 {
		fmt.Printf("%d dates in range have no assignment", len(empty))
		if cmd.Verbose {
			fmt.Printf(": %v", empty)
		}
		fmt.Println()
	}
	return nil
}
