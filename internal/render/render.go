// Package render writes query results to a writer in a handful of
// line-oriented formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	pretty "github.com/jedib0t/go-pretty/v6/table"

	"github.com/marrowdb/marrow/pkg/table"
)

// Rows renders the given rows in the requested format ("table", "json",
// "csv", "md" or "markdown"). When columns is empty the column set is
// derived from the rows themselves, sorted by name with the row id first.
func Rows(w io.Writer, columns []string, rows []table.Row, format string) error {
	results := flatten(rows)
	cols := columnsFor(columns, results)

	switch format {
	case "json":
		return renderJSON(w, results)
	case "csv":
		return renderCSV(w, cols, results)
	case "md", "markdown":
		return renderMarkdown(w, cols, results)
	default:
		return renderTable(w, cols, results)
	}
}

// flatten turns store rows into plain maps. The row id is folded in as
// an "id" column unless the row is synthetic (id zero, as produced by
// joins) or already carries an "id" field of its own.
func flatten(rows []table.Row) []map[string]any {
	var results []map[string]any
	for _, row := range rows {
		result := make(map[string]any, len(row.Fields)+1)
		for name, value := range row.Fields {
			result[name] = value
		}
		if row.ID != 0 {
			if _, ok := result["id"]; !ok {
				result["id"] = row.ID
			}
		}
		results = append(results, result)
	}
	return results
}

func columnsFor(columns []string, results []map[string]any) []string {
	if len(columns) > 0 {
		return columns
	}

	seen := make(map[string]bool)
	var cols []string
	for _, result := range results {
		for name := range result {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	sort.Strings(cols)

	// Keep the id column leftmost
	for i, name := range cols {
		if name == "id" {
			copy(cols[1:i+1], cols[:i])
			cols[0] = "id"
			break
		}
	}
	return cols
}

func renderTable(w io.Writer, cols []string, results []map[string]any) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := pretty.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(pretty.StyleLight)

	// Header
	headerRow := make(pretty.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	// Rows
	for _, result := range results {
		row := make(pretty.Row, len(cols))
		for i, col := range cols {
			row[i] = formatValue(result[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(results))
	return nil
}

func renderJSON(w io.Writer, results []map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, cols []string, results []map[string]any) error {
	// Header
	_, _ = fmt.Fprintln(w, strings.Join(cols, ","))

	// Rows
	for _, result := range results {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = escapeCSV(formatValue(result[col]))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, cols []string, results []map[string]any) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	// Header
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	// Separator
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	// Rows
	for _, result := range results {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = formatValue(result[col])
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
