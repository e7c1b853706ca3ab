package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmarsh/gantry/pkg/render"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Export the dependency graph as DOT or SVG",
		Long: `Graph exports the timeline's dependency graph. Tasks become boxes
clustered by group; finish-to-start edges become arrows. DOT output
can be piped into any Graphviz toolchain; SVG is rendered in-process.`,
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

			dot := render.ToDOT(doc, render.DOTOptions{Detailed: detailed})
			switch format {
			case "dot":
				return writeOutput(output, []byte(dot))
			case "svg":
				prog := newProgress(loggerFromContext(cmd.Context()))
				svg, err := render.RenderSVG(dot)
				if err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Rendered %d tasks", len(doc.Tasks)))
				return writeOutput(output, svg)
			default:
				return fmt.Errorf("unknown format %q (dot, svg)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include dates and assignees in node labels")

	return cmd
}
