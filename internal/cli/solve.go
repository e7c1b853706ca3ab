package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/plan"
	"github.com/tmarsh/gantry/pkg/schedule"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		output string
		check  bool
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Run the finish-to-start constraint solver over a timeline",
		Long: `Solve normalizes a timeline document and pushes every task to start
no earlier than the next business day on or after each of its
predecessors' due dates, preserving task durations. Without a file
argument the working draft is solved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := c.loadDocument(cmd, path)
			if err != nil {
				return err
			}

			if check {
				violations := countViolations(doc)
				if violations == 0 {
					printSuccess("all %d tasks satisfy their dependencies", len(doc.Tasks))
					return nil
				}
				printWarning("%d dependency violations", violations)
				cmd.SilenceErrors = true
				return fmt.Errorf("%d violations", violations)
			}

			prog := newProgress(logger)
			moved := schedule.SettleStats(doc)
			prog.done(fmt.Sprintf("Settled %d tasks, moved %d", len(doc.Tasks), moved))

			if save {
				drafts, err := c.draftStore()
				if err != nil {
					return err
				}
				defer drafts.Close()
				if err := drafts.Save(cmd.Context(), doc); err != nil {
					return err
				}
				printSuccess("draft saved")
				return nil
			}

			data, err := doc.Encode()
			if err != nil {
				return err
			}
			return writeOutput(output, append(data, '\n'))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the settled document to a file (default stdout)")
	cmd.Flags().BoolVar(&check, "check", false, "report violations without modifying anything")
	cmd.Flags().BoolVar(&save, "save", false, "write the settled document back to the draft store")

	return cmd
}

// countViolations counts dependency edges whose successor starts before
// the next business day on or after its predecessor's due date.
func countViolations(doc *plan.Document) int {
	n := 0
	for _, e := range doc.Edges() {
		pred, ok := doc.Task(e[0])
		if !ok {
			continue
		}
		succ, ok := doc.Task(e[1])
		if !ok {
			continue
		}
		floor := calendar.NextBusinessDay(pred.Due)
		if succ.Start.Before(floor) {
			n++
		}
	}
	return n
}
