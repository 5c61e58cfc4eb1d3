package relation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-spatial/geom"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tilegrid/tilegrid/layer"
)

// Table returns the schema as a formatted markdown table
func (s Schema) Table() string {
	table, out := newMarkdownTable(4)
	table.Header([]string{"column", "type", "nullable", "metadata"})

	for _, col := range s {
		var tags []string
		for k, v := range col.Metadata {
			tags = append(tags, fmt.Sprintf("%s=%s", k, v))
		}
		table.Append([]string{
			col.Name,
			col.Type.String(),
			fmt.Sprintf("%t", col.Nullable),
			strings.Join(tags, " "),
		})
	}

	table.Render()
	return out.String()
}

// FormatRows renders scanned rows as a markdown table with the requested
// column names as headers
func FormatRows(columns []string, rows []Row) string {
	if len(rows) == 0 {
		return fmt.Sprintf("_Columns: %v_\n\n_No rows_", columns)
	}

	table, out := newMarkdownTable(len(columns))
	table.Header(columns)

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, val := range row {
			cells[i] = formatValue(val)
		}
		table.Append(cells)
	}

	table.Render()
	out.WriteString(fmt.Sprintf("\n_%d rows_\n", len(rows)))
	return out.String()
}

func newMarkdownTable(cols int) (*tablewriter.Table, *strings.Builder) {
	out := &strings.Builder{}

	alignment := make([]tw.Align, cols)
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(out,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	return table, out
}

// formatValue converts a row value to a string representation
func formatValue(val interface{}) string {
	if val == nil {
		return "nil"
	}

	switch v := val.(type) {
	case layer.SpatialKey:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case *geom.Extent:
		return fmt.Sprintf("[%v %v %v %v]", v.MinX(), v.MinY(), v.MaxX(), v.MaxY())
	case *layer.Tile:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
