package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// printPayload renders a raw API payload: arrays of objects as a table with
// preferred columns first, anything else as indented JSON or plain text.
func printPayload(w io.Writer, payload any, preferred []string) error {
	switch v := payload.(type) {
	case nil:
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	case []any:
		rows, ok := objects(v)
		if !ok {
			return printJSON(w, v)
		}
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "(no items)")
			return err
		}
		columns := tableColumns(rows, preferred)
		table := make([][]string, 0, len(rows))
		for _, r := range rows {
			line := make([]string, len(columns))
			for i, c := range columns {
				line[i] = cell(r[c])
			}
			table = append(table, line)
		}
		header := make([]string, len(columns))
		for i, c := range columns {
			header[i] = strings.ToUpper(c)
		}
		return printTable(w, header, table)
	}
	return printJSON(w, payload)
}

func objects(items []any) ([]map[string]any, bool) {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		out = append(out, m)
	}
	return out, true
}

// tableColumns lists the preferred columns present in rows, or every scalar
// key in sorted order when none of them is.
func tableColumns(rows []map[string]any, preferred []string) []string {
	present := map[string]bool{}
	for _, r := range rows {
		for k, v := range r {
			switch v.(type) {
			case map[string]any, []any:
			default:
				present[k] = true
			}
		}
	}
	var cols []string
	for _, p := range preferred {
		if present[p] {
			cols = append(cols, p)
		}
	}
	if len(cols) > 0 {
		return cols
	}
	for k := range present {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	if i := sort.SearchStrings(cols, "id"); i < len(cols) && cols[i] == "id" {
		cols = append([]string{"id"}, append(cols[:i:i], cols[i+1:]...)...)
	}
	return cols
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
