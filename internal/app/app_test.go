package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/seriesgrid/internal/loader"
	"github.com/vk/seriesgrid/internal/store"
	"github.com/vk/seriesgrid/internal/testutil"
)

// memStore is an in-memory store.Store.
type memStore map[string][]byte

func (m memStore) Read(_ context.Context, location string) ([]byte, error) {
	data, ok := m[location]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

func (m memStore) Write(_ context.Context, location string, data []byte) error {
	m[location] = data
	return nil
}

// setupAppTest creates an app with debug logging captured in a buffer.
func setupAppTest(t *testing.T, cfg Config, st store.Store) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	testutil.LogOnFailure(t, logs)
	return NewApp(out, logs, config, st), out, logs
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "defaults",
			cfg:  Config{ModelPath: "model.hcl"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultPeriods, c.Periods)
				assert.Empty(t, c.Format)
			},
		},
		{
			name: "format is normalized",
			cfg:  Config{Example: true, Format: "CSV"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "csv", c.Format)
			},
		},
		{name: "no model", cfg: Config{}, wantErr: "a model location is required"},
		{name: "both model and example", cfg: Config{ModelPath: "m.hcl", Example: true}, wantErr: "mutually exclusive"},
		{name: "negative periods", cfg: Config{Example: true, Periods: -1}, wantErr: "periods must not be negative"},
		{name: "unknown format", cfg: Config{Example: true, Format: "xlsx"}, wantErr: "unknown export format"},
		{name: "bad select path", cfg: Config{Example: true, Select: []string{"total_expenses..x"}}, wantErr: "invalid select path"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, c)
		})
	}
}

func TestRun_ExampleAsText(t *testing.T) {
	// --- Arrange ---
	a, out, _ := setupAppTest(t, Config{Example: true, Periods: 12}, memStore{})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 10, "a header and nine rows")
	header := strings.Fields(lines[0])
	assert.Equal(t, "2020-01-31", header[1])
	assert.Equal(t, "2020-12-31", header[12])
	last := strings.Fields(lines[9])
	assert.Equal(t, ".", last[0])
	assert.Equal(t, "388920.00", last[1])
}

func TestRun_FileModelWithSelection(t *testing.T) {
	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{"models/example.hcl": testutil.ExampleHCL})
	a, out, _ := setupAppTest(t, Config{
		ModelPath: filepath.Join(root, "models", "example.hcl"),
		Periods:   3,
		Format:    "csv",
		Select:    []string{"total_expenses"},
	}, nil)

	// --- Act ---
	require.NoError(t, a.Run(context.Background()))

	// --- Assert ---
	records, err := csv.NewReader(out).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"key", "2020-01-31", "2020-02-29", "2020-03-31"}, records[0])
	var keys []string
	for _, r := range records[1:] {
		keys = append(keys, r[0])
	}
	assert.Equal(t, []string{
		"total_expenses.operating_expenses.",
		"total_expenses.real_estate_taxes.",
		"total_expenses.replacement_reserves.",
		"total_expenses.",
	}, keys)
	total, err := strconv.ParseFloat(records[4][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, -123_000, total, 1e-6)
}

func TestRun_VariablesAndModelName(t *testing.T) {
	st := memStore{"s3://models/example.hcl": []byte(testutil.ExampleHCL)}
	a, out, _ := setupAppTest(t, Config{
		ModelPath: "s3://models/example.hcl",
		ModelName: "downtown",
		Periods:   1,
		Format:    "json",
		Vars:      map[string]string{"sf": "90000"},
	}, st)

	require.NoError(t, a.Run(context.Background()))

	var doc struct {
		Model string `json:"model"`
		Rows  []struct {
			Key    string    `json:"key"`
			Values []float64 `json:"values"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "downtown", doc.Model)
	for _, r := range doc.Rows {
		if r.Key == "effective_gross_income.gross_potential_rent." {
			assert.InDelta(t, 90_000*3.16, r.Values[0], 1e-6)
		}
	}
}

func TestRun_OutputLocation(t *testing.T) {
	st := memStore{}
	a, out, logs := setupAppTest(t, Config{Example: true, Periods: 2, OutputPath: "s3://reports/noi.csv"}, st)

	require.NoError(t, a.Run(context.Background()))

	assert.Empty(t, out.String())
	require.Contains(t, st, "s3://reports/noi.csv")
	assert.True(t, strings.HasPrefix(string(st["s3://reports/noi.csv"]), "key,2020-01-31,2020-02-29\n"), "format follows the extension")
	assert.Contains(t, logs.String(), "Output written.")
}

func TestRun_ModelDirectory(t *testing.T) {
	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{
		"portfolio/downtown.hcl": testutil.ExampleHCL,
		"portfolio/uptown.json":  testutil.ExampleJSON,
		"portfolio/README.md":    "not a model",
	})
	a, out, _ := setupAppTest(t, Config{ModelPath: filepath.Join(root, "portfolio"), NormalizePath: "-"}, nil)

	// --- Act ---
	require.NoError(t, a.Run(context.Background()))

	// --- Assert ---
	assert.Contains(t, out.String(), `model "downtown" {`)
	assert.Contains(t, out.String(), `model "uptown" {`)
}

func TestRun_ModelDirectoryDuplicateNames(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"a.hcl": testutil.ExampleHCL,
		"b.hcl": testutil.ExampleHCL,
	})
	a, _, _ := setupAppTest(t, Config{ModelPath: root}, nil)

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `model "downtown" is declared in both`)
}

func TestRun_Normalize(t *testing.T) {
	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{"example.hcl": testutil.ExampleHCL})
	target := filepath.Join(root, "normalized.json")
	a, out, _ := setupAppTest(t, Config{
		ModelPath:     filepath.Join(root, "example.hcl"),
		NormalizePath: target,
	}, nil)

	// --- Act ---
	require.NoError(t, a.Run(context.Background()))

	// --- Assert ---
	assert.Empty(t, out.String(), "normalizing does not evaluate")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "var.", "variables are resolved")

	models, err := loader.Load(context.Background(), target, data, nil)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "downtown", models[0].Name)
	v, err := models[0].Root.Call(models[0].Root.RefDate, models[0].Root.Freq.Advance(models[0].Root.RefDate, 1))
	require.NoError(t, err)
	assert.InDelta(t, 388_920, v, 1e-6)
}

func TestRun_NormalizeToOutput(t *testing.T) {
	a, out, _ := setupAppTest(t, Config{Example: true, NormalizePath: "-"}, nil)

	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), `model "example" {`)
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      Config
		st       memStore
		contains string
	}{
		{
			name:     "missing document",
			cfg:      Config{ModelPath: "s3://models/missing.hcl"},
			st:       memStore{},
			contains: "failed to read model",
		},
		{
			name:     "syntax error",
			cfg:      Config{ModelPath: "broken.hcl"},
			st:       memStore{"broken.hcl": []byte("model \"a\" {")},
			contains: "failed to parse broken.hcl",
		},
		{
			name:     "unknown model name",
			cfg:      Config{ModelPath: "example.hcl", ModelName: "uptown"},
			st:       memStore{"example.hcl": []byte(testutil.ExampleHCL)},
			contains: `model "uptown" not found`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, _, _ := setupAppTest(t, tc.cfg, tc.st)
			err := a.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestRun_LogsCarryRunID(t *testing.T) {
	a, _, logs := setupAppTest(t, Config{Example: true, Periods: 1, LogFormat: "json"}, nil)

	require.NoError(t, a.Run(context.Background()))

	var finished map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		if rec["msg"] == "Run finished." {
			finished = rec
		}
	}
	require.NotNil(t, finished)
	runID, ok := finished["run_id"].(string)
	require.True(t, ok)
	assert.Len(t, runID, 26, "a ULID")
	assert.Equal(t, "example", finished["model"])
}

func TestNewLogger_Levels(t *testing.T) {
	testCases := []struct {
		level   string
		debugOn bool
		infoOn  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, false},
		{"nonsense", false, true},
	}
	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			logger := newLogger(tc.level, "text", &bytes.Buffer{})
			ctx := context.Background()
			assert.Equal(t, tc.debugOn, logger.Enabled(ctx, -4))
			assert.Equal(t, tc.infoOn, logger.Enabled(ctx, 0))
		})
	}
}
