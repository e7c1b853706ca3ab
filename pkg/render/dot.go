// Package render turns timeline documents into visual outputs: Graphviz
// dependency diagrams and a styled terminal Gantt view.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tmarsh/gantry/pkg/plan"
)

// DOTOptions configures dependency diagram rendering.
type DOTOptions struct {
	// Detailed includes dates and assignees in node labels.
	// When false, only the task name is shown.
	Detailed bool
}

// ToDOT converts a document's dependency graph to Graphviz DOT format.
// Tasks become boxes clustered by group; finish-to-start edges become
// arrows. The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(doc *plan.Document, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for gi, g := range doc.Groups {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", gi)
		fmt.Fprintf(&buf, "    label=%q;\n", g.Name)
		buf.WriteString("    style=rounded;\n")
		for _, t := range doc.TasksInGroup(g.ID, false) {
			label := fmtLabel(t, opts.Detailed)
			attrs := fmtAttrs(t, label)
			fmt.Fprintf(&buf, "    %q [%s];\n", t.ID, strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(t plan.Task, detailed bool) string {
	if !detailed {
		return t.Name
	}
	parts := []string{
		fmt.Sprintf("%s .. %s", t.Start.ISO(), t.Due.ISO()),
		string(t.Assignee),
	}
	if t.Status != "" {
		parts = append(parts, string(t.Status))
	}
	return t.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(t plan.Task, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if t.BarColor != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", t.BarColor))
	}
	if t.Status == plan.StatusCompleted {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=grey30")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the viewBox starts at
// the origin and explicit pixel dimensions are present. Graphviz emits
// point-based sizes that embed poorly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
