package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/seriesgrid/internal/evaluate"
	"github.com/vk/seriesgrid/internal/period"
)

func sampleReport(t *testing.T) Report {
	t.Helper()
	periods, err := period.Schedule(period.Date(2019, 12, 31), period.Interval{Months: 1}, 2)
	require.NoError(t, err)
	return Report{
		Model:   "downtown",
		Periods: periods,
		Rows: []evaluate.Row{
			{Key: "total_expenses.", Values: []float64{-123000, -123205.5}},
			{Key: ".", Values: []float64{388920, 389000.126}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("xlsx")
	assert.ErrorContains(t, err, `unknown export format "xlsx"`)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, CSV, FormatOf("out/report.csv", Text))
	assert.Equal(t, JSON, FormatOf("s3://bucket/report.JSON", Text))
	assert.Equal(t, Text, FormatOf("report.txt", CSV))
	assert.Equal(t, CSV, FormatOf("report", CSV))
}

func TestWrite_CSV(t *testing.T) {
	// --- Arrange ---
	r := sampleReport(t)

	// --- Act ---
	out, err := Render(CSV, r)
	require.NoError(t, err)

	// --- Assert ---
	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	expected := [][]string{
		{"key", "2020-01-31", "2020-02-29"},
		{"total_expenses.", "-123000", "-123205.5"},
		{".", "388920", "389000.126"},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_JSON(t *testing.T) {
	out, err := Render(JSON, sampleReport(t))
	require.NoError(t, err)

	var doc struct {
		Model   string `json:"model"`
		Periods []struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"periods"`
		Rows []struct {
			Key    string    `json:"key"`
			Values []float64 `json:"values"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, "downtown", doc.Model)
	require.Len(t, doc.Periods, 2)
	assert.Equal(t, "2019-12-31", doc.Periods[0].Start)
	assert.Equal(t, "2020-02-29", doc.Periods[1].End)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "total_expenses.", doc.Rows[0].Key, "row order is kept")
	assert.Equal(t, []float64{388920, 389000.126}, doc.Rows[1].Values)
}

func TestWrite_Text(t *testing.T) {
	out, err := Render(Text, sampleReport(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"key", "2020-01-31", "2020-02-29"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"total_expenses.", "-123000.00", "-123205.50"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{".", "388920.00", "389000.13"}, strings.Fields(lines[2]))
	assert.Equal(t, len(lines[1]), len(lines[2]), "columns are aligned")
}

func TestWrite_RejectsRaggedRows(t *testing.T) {
	r := sampleReport(t)
	r.Rows = append(r.Rows, evaluate.Row{Key: "short.", Values: []float64{1}})

	for _, f := range Formats {
		_, err := Render(f, r)
		assert.ErrorContains(t, err, `row "short." has 1 values for 2 periods`, string(f))
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	_, err := Render(Format("xml"), sampleReport(t))
	assert.ErrorContains(t, err, `unknown export format "xml"`)
}
