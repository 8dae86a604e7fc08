package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VixLens/internal/inspector"
)

// writeFixture lays out two CSV price files and a config pointing at them.
func writeFixture(t *testing.T) (configPath, outDir string) {
	t.Helper()
	dir := t.TempDir()
	prices := filepath.Join(dir, "prices")
	require.NoError(t, os.MkdirAll(prices, 0755))

	var eq, vix strings.Builder
	eq.WriteString("Date,Close\n")
	vix.WriteString("Date,Close\n")
	d := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		date := d.AddDate(0, 0, i).Format("2006-01-02")
		fmt.Fprintf(&eq, "%s,%.2f\n", date, 4000+float64(i*i%17))
		if i != 6 {
			fmt.Fprintf(&vix, "%s,%.2f\n", date, 15+float64(i%9))
		}
	}
	require.NoError(t, os.WriteFile(filepath.Join(prices, "GSPC.csv"), []byte(eq.String()), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(prices, "VIX.csv"), []byte(vix.String()), 0644))

	outDir = filepath.Join(dir, "out")
	configPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf(`
data_source:
  csv_dir: %s
analysis:
  start_date: "2023-01-01"
  end_date: "2023-03-01"
  period: week
output:
  dir: %s
  width_in: 4
  height_in: 3
log:
  level: error
`, prices, outDir)), 0644))
	return configPath, outDir
}

func TestScatterCommand(t *testing.T) {
	t.Setenv("SQLITE_PATH", "")
	configPath, outDir := writeFixture(t)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{"--config", configPath})
	root.SetOut(&out)
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Returns: 35  Aligned: 34  Missing levels: 1")
	_, err := os.Stat(filepath.Join(outDir, "scatter_gspc_vix_5.png"))
	assert.NoError(t, err)
}

func TestInspectCommand(t *testing.T) {
	t.Setenv("SQLITE_PATH", "")
	configPath, outDir := writeFixture(t)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{"inspect", "--config", configPath, "--buckets", "3"})
	root.SetIn(strings.NewReader("0\n7\n"))
	root.SetOut(&out)
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Level range")
	assert.Equal(t, 2, strings.Count(out.String(), inspector.Prompt))
	_, err := os.Stat(filepath.Join(outDir, "bucket_00.png"))
	assert.NoError(t, err)
}

func TestInspectCommand_BadIndex(t *testing.T) {
	t.Setenv("SQLITE_PATH", "")
	configPath, _ := writeFixture(t)

	root := newRootCmd()
	root.SetArgs([]string{"inspect", "--config", configPath})
	root.SetIn(strings.NewReader("first\n"))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.ErrorIs(t, root.Execute(), inspector.ErrInvalidIndex)
}

func TestInvalidPeriodFlag(t *testing.T) {
	configPath, _ := writeFixture(t)

	root := newRootCmd()
	root.SetArgs([]string{"inspect", "--no-interactive", "--config", configPath, "--period", "fortnight"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
