package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/layout"
	"github.com/tmarsh/gantry/pkg/plan"
)

// layoutResult is the JSON shape printed by the layout command.
type layoutResult struct {
	RangeStart   string        `json:"rangeStart"`
	RangeEnd     string        `json:"rangeEnd"`
	Days         int           `json:"days"`
	Zoom         string        `json:"zoom"`
	CellWidth    int           `json:"cellWidth"`
	TotalHeight  int           `json:"totalHeight"`
	LaneCount    int           `json:"laneCount"`
	VisibleLanes int           `json:"visibleLanes"`
	Rows         []layoutRow   `json:"rows"`
	Bars         []layoutBar   `json:"bars"`
	Leaves       []layoutLeave `json:"leaves"`
	Arrows       []layoutEdge  `json:"arrows"`
}

type layoutRow struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Offset int    `json:"offset"`
}

type layoutBar struct {
	TaskID  string `json:"taskId"`
	Left    int    `json:"left"`
	Width   int    `json:"width"`
	CenterY int    `json:"centerY"`
}

type layoutLeave struct {
	LeaveID  string `json:"leaveId"`
	StartIdx int    `json:"startIdx"`
	EndIdx   int    `json:"endIdx"`
	Lane     int    `json:"lane"`
}

type layoutEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	FromX int    `json:"fromX"`
	FromY int    `json:"fromY"`
	ToX   int    `json:"toX"`
	ToY   int    `json:"toY"`
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output       string
		zoomFlag     string
		compact      bool
		autoRows     bool
		expandLeaves bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Print row and bar geometry for a zoom preset",
		Long: `Layout computes the visual geometry of a timeline: the vertical row
stack, per-task pixel spans on the day grid, leave lanes, and
dependency arrow anchors. The result is printed as JSON.`,
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

			zoom, err := parseZoom(zoomFlag)
			if err != nil {
				return err
			}

			result := computeLayout(doc, plan.SeedLeaves(), zoom, compact, autoRows, expandLeaves)
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(output, append(data, '\n'))
		},
	}

	defaultZoom := c.Config.View.Zoom
	if defaultZoom == "" {
		defaultZoom = "z100"
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file (default stdout)")
	cmd.Flags().StringVarP(&zoomFlag, "zoom", "z", defaultZoom, "zoom preset (z400, z200, z100, z75, z50)")
	cmd.Flags().BoolVar(&compact, "compact", c.Config.View.Compact, "use compact row heights")
	cmd.Flags().BoolVar(&autoRows, "auto-rows", c.Config.View.AutoRows, "order tasks by start date instead of row order")
	cmd.Flags().BoolVar(&expandLeaves, "expand-leaves", false, "show every leave lane instead of collapsing the strip")

	return cmd
}

// parseZoom validates a zoom preset flag.
func parseZoom(s string) (layout.Zoom, error) {
	for _, z := range layout.ZoomOrder {
		if string(z) == s {
			return z, nil
		}
	}
	return "", fmt.Errorf("unknown zoom preset %q", s)
}

func computeLayout(doc *plan.Document, leaves []plan.Leave, zoom layout.Zoom, compact, autoRows, expandLeaves bool) layoutResult {
	r := doc.Range()
	days := calendar.DaysInclusive(r.Start, r.Due)
	cellW := zoom.CellWidth()

	inRange := layout.LeavesInRange(leaves, r.Start, r.Due)
	packed, laneCount := layout.PackLeaves(inRange, r.Start, days)
	visibleLanes := layout.VisibleLanes(laneCount, expandLeaves)

	rl := layout.Layout(doc, layout.Metrics{
		Compact:         compact,
		AutoRows:        autoRows,
		LeavesLaneCount: visibleLanes,
	})

	out := layoutResult{
		RangeStart:   r.Start.ISO(),
		RangeEnd:     r.Due.ISO(),
		Days:         days,
		Zoom:         string(zoom),
		CellWidth:    cellW,
		TotalHeight:  rl.TotalHeight,
		LaneCount:    laneCount,
		VisibleLanes: visibleLanes,
	}

	// Leaves in lanes past the visible cap are hidden, not re-packed.
	for _, p := range packed {
		if p.Lane >= visibleLanes {
			continue
		}
		out.Leaves = append(out.Leaves, layoutLeave{
			LeaveID:  p.Leave.ID,
			StartIdx: p.StartIdx,
			EndIdx:   p.EndIdx,
			Lane:     p.Lane,
		})
	}

	for i, row := range rl.Rows {
		lr := layoutRow{Offset: rl.Offsets[i]}
		switch row.Kind {
		case layout.RowGroup:
			lr.Kind, lr.ID = "group", row.Group.ID
		case layout.RowTask:
			lr.Kind, lr.ID = "task", row.Task.ID
		default:
			lr.Kind, lr.ID = "add", row.Group.ID
		}
		out.Rows = append(out.Rows, lr)

		if row.Kind == layout.RowTask {
			span := layout.TaskSpan(r.Start, cellW, row.Task, days)
			out.Bars = append(out.Bars, layoutBar{
				TaskID:  row.Task.ID,
				Left:    span.Left,
				Width:   span.Width,
				CenterY: rl.TaskCenters[row.Task.ID],
			})
		}
	}

	for _, a := range layout.Arrows(doc, rl, r.Start, cellW, days) {
		out.Arrows = append(out.Arrows, layoutEdge{
			From: a.PredecessorID, To: a.SuccessorID,
			FromX: a.From.X, FromY: a.From.Y,
			ToX: a.To.X, ToY: a.To.Y,
		})
	}
	return out
}
