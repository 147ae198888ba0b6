package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"agencyscraper/internal/crawler"
	"agencyscraper/pkg/utils"
)

const summaryColumnWidth = 40

func renderSummary(w io.Writer, result *crawler.Result) {
	text := utils.NewStringHelper()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Agency", "Phone", "Hours"})

	for i, r := range result.Records {
		t.AppendRow(table.Row{
			i + 1,
			text.TruncateString(text.NormalizeWhitespace(r.Name), summaryColumnWidth),
			r.Phone,
			text.TruncateString(text.NormalizeWhitespace(r.Hours), summaryColumnWidth),
		})
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d agencies", len(result.Records)), "", fmt.Sprintf("%d skipped", result.Skipped)})
	t.Render()

	for _, path := range result.Outputs {
		fmt.Fprintf(w, "📁 %s\n", path)
	}
}
