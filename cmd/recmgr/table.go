package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func (a columnAlignment) text() text.Align {
	if a == alignRight {
		return text.AlignRight
	}
	return text.AlignLeft
}

// renderTable renders rows under headers, keeping the header text as given.
// Short rows are padded with blank cells; columns without an alignment are
// left aligned.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(padRow(headers, len(headers)))
	for _, row := range rows {
		tw.AppendRow(padRow(row, len(headers)))
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range configs {
		configs[i] = table.ColumnConfig{Number: i + 1, AlignHeader: text.AlignLeft}
		if i < len(aligns) {
			configs[i].Align = aligns[i].text()
		}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func padRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
