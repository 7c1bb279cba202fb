package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OtaniMakoto/CSV2img/internal/jpeg"
	"github.com/OtaniMakoto/CSV2img/internal/pipeline"
)

// resetFlags restores every flag to its default so commands can be executed
// repeatedly within one test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--quiet"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func jpegSize(t *testing.T, path string) (int, int) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	info, err := jpeg.GetInfo(data)
	require.NoError(t, err)
	return info.Width, info.Height
}

func TestColormapCommand(t *testing.T) {
	out, err := execute(t, "colormap")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 257)
	assert.Equal(t, "index,r,g,b", lines[0])
	assert.Equal(t, "0,0,0,127", lines[1])
	assert.Equal(t, "255,127,0,0", lines[256])

	out, err = execute(t, "colormap", "--steps", "2")
	require.NoError(t, err)
	assert.Equal(t, "index,r,g,b\n0,0,0,127\n1,127,0,0\n", out)
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "grid.csv")
	output := filepath.Join(dir, "grid.jpg")
	writeFile(t, input, "0,10\n5,10\n")

	out, err := execute(t, "convert", "-i", input, "--scale", "2", "--sidecar")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 2x2 grid")
	assert.Contains(t, out, output)

	w, h := jpegSize(t, output)
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	sc, err := pipeline.ReadSidecar(filepath.Join(dir, "grid.json"))
	require.NoError(t, err)
	assert.Equal(t, 2, sc.Scale)

	out, err = execute(t, "identify", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Dimensions:  4 x 4")
	assert.Contains(t, out, "Components:  3")
	assert.Contains(t, out, "Mode:        baseline")
}

func TestConvertCommand_ConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "grid.csv")
	output := filepath.Join(dir, "out.jpg")
	cfgPath := filepath.Join(dir, "settings.json")
	writeFile(t, input, "1,2\n3\n")
	writeFile(t, cfgPath, `{"scale": 3, "ragged": "pad"}`)

	_, err := execute(t, "--config", cfgPath, "convert", "-i", input, "-o", output)
	require.NoError(t, err)
	w, h := jpegSize(t, output)
	assert.Equal(t, 6, w)
	assert.Equal(t, 6, h)

	// Explicit flags win over the config file.
	_, err = execute(t, "--config", cfgPath, "convert", "-i", input, "-o", output, "--scale", "1")
	require.NoError(t, err)
	w, h = jpegSize(t, output)
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)

	_, err = execute(t, "--config", cfgPath, "convert", "-i", input, "-o", output, "--ragged", "reject")
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrParse)
}

func TestConvertCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "convert")
	assert.Error(t, err, "input is required")

	_, err = execute(t, "convert", "-i", filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, pipeline.ErrFileNotFound)

	input := filepath.Join(dir, "grid.csv")
	writeFile(t, input, "1,2\n")
	_, err = execute(t, "convert", "-i", input, "--ragged", "trim")
	assert.Error(t, err)
	_, err = execute(t, "convert", "-i", input, "--quality", "200")
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "grid.jpg"))

	cfgPath := filepath.Join(dir, "settings.yaml")
	writeFile(t, cfgPath, "scale: 2\n")
	_, err = execute(t, "--config", cfgPath, "convert", "-i", input)
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	outDir := filepath.Join(dir, "output")
	input := filepath.Join(dataDir, "from_top_4.csv")
	output := filepath.Join(outDir, "converted_image.jpg")

	cfgPath := filepath.Join(dir, "batch.json")
	writeFile(t, cfgPath, `{
  "data_dir": "`+filepath.ToSlash(dataDir)+`",
  "output_dir": "`+filepath.ToSlash(outDir)+`",
  "input_file": "`+filepath.ToSlash(input)+`",
  "output_file": "`+filepath.ToSlash(output)+`"
}`)

	_, err := execute(t, "--config", cfgPath, "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.DirExists(t, dataDir)
	assert.DirExists(t, outDir)
	assert.NoFileExists(t, output)

	writeFile(t, input, "0,1,2\n3,4,5\n")
	out, err := execute(t, "--config", cfgPath, "batch")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 2x3 grid")

	w, h := jpegSize(t, output)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
}

func TestStatsCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "grid.csv")
	writeFile(t, input, "1,2\n3,nan\n")

	out, err := execute(t, "stats", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Shape:      2 rows x 2 cols")
	assert.Contains(t, out, "Finite:     3")
	assert.Contains(t, out, "Non-finite: 1")
	assert.Contains(t, out, "Min:        1")
	assert.Contains(t, out, "Max:        3")
	assert.Contains(t, out, "Mean:       2")

	writeFile(t, input, "nan\n")
	out, err = execute(t, "stats", input)
	require.NoError(t, err)
	assert.Contains(t, out, "undefined")
}
