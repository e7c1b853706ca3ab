package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tmarsh/gantry/pkg/render"
)

// viewCommand creates the view command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		compact     bool
		interactive bool
		nameWidth   int
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Render the timeline as a Gantt chart in the terminal",
		Long: `View renders the timeline as a text Gantt chart: one day per column,
one row per task, grouped under group headers. With --interactive the
chart opens in a full-screen browser where tasks can be moved and the
solver re-settles the plan live.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := c.loadDocument(cmd, path)
			if err != nil {
				return err
			}

			if interactive {
				model := newTimelineModel(doc)
				p := tea.NewProgram(model, tea.WithAltScreen())
				final, err := p.Run()
				if err != nil {
					return err
				}
				m, ok := final.(timelineModel)
				if ok && m.dirty && path == "" {
					drafts, err := c.draftStore()
					if err != nil {
						return err
					}
					defer drafts.Close()
					if err := drafts.Save(cmd.Context(), m.doc); err != nil {
						return err
					}
					printSuccess("draft saved")
				}
				return nil
			}

			out := render.Gantt(doc, render.GanttOptions{
				NameWidth: nameWidth,
				Compact:   compact,
			})
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", c.Config.View.Compact, "drop per-task date suffixes")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the interactive timeline browser")
	cmd.Flags().IntVar(&nameWidth, "name-width", 24, "width of the task name column")

	return cmd
}
