// Package export renders evaluated rows as a pro-forma table.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vk/seriesgrid/internal/evaluate"
	"github.com/vk/seriesgrid/internal/period"
)

// Format is an output format.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	Text Format = "text"
)

// Formats lists every supported format.
var Formats = []Format{CSV, JSON, Text}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	switch f {
	case CSV, JSON, Text:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q: must be 'csv', 'json' or 'text'", s)
	}
}

// FormatOf picks the format implied by a location's extension, falling back
// to def.
func FormatOf(location string, def Format) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".csv":
		return CSV
	case ".json":
		return JSON
	case ".txt":
		return Text
	default:
		return def
	}
}

// Report is one model evaluated over a schedule of periods. Every row holds
// one value per period.
type Report struct {
	Model   string
	Periods []period.Period
	Rows    []evaluate.Row
}

// Write renders r to w.
func Write(w io.Writer, f Format, r Report) error {
	for _, row := range r.Rows {
		if len(row.Values) != len(r.Periods) {
			return fmt.Errorf("row %q has %d values for %d periods", row.Key, len(row.Values), len(r.Periods))
		}
	}

	switch f {
	case CSV:
		return writeCSV(w, r)
	case JSON:
		return writeJSON(w, r)
	case Text:
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// Render is Write into a byte slice.
func Render(f Format, r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// header is the key column followed by the end date of each period.
func header(r Report) []string {
	h := make([]string, 0, len(r.Periods)+1)
	h = append(h, "key")
	for _, p := range r.Periods {
		h = append(h, period.FormatDate(p.End))
	}
	return h
}

func writeCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(r)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	record := make([]string, len(r.Periods)+1)
	for _, row := range r.Rows {
		record[0] = row.Key
		for i, v := range row.Values {
			record[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %q: %w", row.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type jsonRow struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

type jsonReport struct {
	Model   string       `json:"model,omitempty"`
	Periods []jsonPeriod `json:"periods"`
	Rows    []jsonRow    `json:"rows"`
}

func writeJSON(w io.Writer, r Report) error {
	doc := jsonReport{
		Model:   r.Model,
		Periods: make([]jsonPeriod, len(r.Periods)),
		Rows:    make([]jsonRow, len(r.Rows)),
	}
	for i, p := range r.Periods {
		doc.Periods[i] = jsonPeriod{Start: period.FormatDate(p.Start), End: period.FormatDate(p.End)}
	}
	for i, row := range r.Rows {
		doc.Rows[i] = jsonRow{Key: row.Key, Values: row.Values}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// writeText writes an aligned table with amounts rounded to cents.
func writeText(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(header(r), "\t")+"\t")
	for _, row := range r.Rows {
		fmt.Fprint(tw, row.Key, "\t")
		for _, v := range row.Values {
			fmt.Fprintf(tw, "%.2f\t", v)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
