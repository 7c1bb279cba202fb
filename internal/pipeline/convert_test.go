package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OtaniMakoto/CSV2img/internal/jpeg"
)

func writeInput(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultOutputPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"data/from_top_4.csv": "data/from_top_4.jpg",
		"grid.txt":            "grid.jpg",
		"noext":               "noext.jpg",
		"dir.v2/grid":         "dir.v2/grid.jpg",
		"a/b.c/d.csv":         "a/b.c/d.jpg",
	}
	for in, want := range tests {
		assert.Equal(t, filepath.FromSlash(want), DefaultOutputPath(filepath.FromSlash(in)), in)
	}
}

func TestConvertFile_DefaultOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "heat.csv", "0,10\n5,10\n")

	result, err := ConvertFile(input, "", DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)

	data, err := os.ReadFile(filepath.Join(dir, "heat.jpg"))
	require.NoError(t, err)
	assert.Equal(t, result.Data, data)

	info, err := jpeg.GetInfo(data)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Width)
	assert.Equal(t, 2, info.Height)
}

func TestConvertFile_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "grid.csv", "3,1,4\n1,5,9\n2,6,5\n")
	out1 := filepath.Join(dir, "a.jpg")
	out2 := filepath.Join(dir, "b.jpg")

	_, err := ConvertFile(input, out1, DefaultOptions())
	require.NoError(t, err)
	_, err = ConvertFile(input, out2, DefaultOptions())
	require.NoError(t, err)

	a, err := os.ReadFile(out1)
	require.NoError(t, err)
	b, err := os.ReadFile(out2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConvertFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		out := filepath.Join(dir, "out.jpg")
		_, err := ConvertFile(filepath.Join(dir, "missing.csv"), out, DefaultOptions())
		assert.ErrorIs(t, err, ErrFileNotFound)
		assert.NoFileExists(t, out)
	})

	t.Run("unparseable input", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := writeInput(t, dir, "empty.csv", "\n\n")
		out := filepath.Join(dir, "out.jpg")
		_, err := ConvertFile(input, out, DefaultOptions())
		assert.ErrorIs(t, err, ErrParse)
		assert.NoFileExists(t, out)
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := writeInput(t, dir, "grid.csv", "1,2\n")
		out := filepath.Join(dir, "no-such-dir", "out.jpg")
		_, err := ConvertFile(input, out, DefaultOptions())
		assert.ErrorIs(t, err, ErrEncode)
		assert.NoFileExists(t, out)
	})

	t.Run("failed run keeps previous output", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		out := filepath.Join(dir, "out.jpg")
		require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))

		input := writeInput(t, dir, "ragged.csv", "1,2\n3\n")
		_, err := ConvertFile(input, out, DefaultOptions())
		assert.ErrorIs(t, err, ErrParse)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "previous", string(data))
	})
}

func TestConvertFile_Sidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "heat.csv", "-2,6\n2,6\n")
	out := filepath.Join(dir, "heat.jpg")

	opts := DefaultOptions()
	opts.Sidecar = true
	opts.Scale = 3
	result, err := ConvertFile(input, out, opts)
	require.NoError(t, err)

	sc, err := ReadSidecar(filepath.Join(dir, "heat.json"))
	require.NoError(t, err)
	assert.Equal(t, result.RunID, sc.RunID)
	assert.Equal(t, input, sc.Source)
	assert.Equal(t, "heat.jpg", sc.Output)
	assert.Equal(t, 2, sc.Rows)
	assert.Equal(t, 2, sc.Cols)
	assert.Equal(t, 6, sc.Width)
	assert.Equal(t, 6, sc.Height)
	assert.Equal(t, float32(-2), sc.Min)
	assert.Equal(t, float32(6), sc.Max)
	assert.Equal(t, "jet", sc.Colormap)
	assert.Equal(t, 95, sc.Quality)
	assert.Equal(t, 3, sc.Scale)
}

func TestConvertFile_SidecarFailureKeepsPreviousOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "g.csv", "1,2\n3,4\n")
	out := filepath.Join(dir, "g.jpg")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))
	// A non-empty directory where the sidecar should go.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "g.json", "child"), 0755))

	opts := DefaultOptions()
	opts.Sidecar = true
	_, err := ConvertFile(input, out, opts)
	require.ErrorIs(t, err, ErrEncode)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"g.csv", "g.jpg", "g.json"}, names, "no temp files left behind")
}

func TestSidecarPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.FromSlash("out/img.json"), SidecarPath(filepath.FromSlash("out/img.jpg")))
	assert.Equal(t, "img.json", SidecarPath("img"))
}

func TestConvertAsync(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "grid.csv", "1,2\n3,4\n")

	called := make(chan Outcome, 1)
	ch := ConvertAsync(context.Background(), input, "", DefaultOptions(), func(o Outcome) {
		called <- o
	})

	select {
	case out := <-ch:
		require.NoError(t, out.Err)
		assert.Equal(t, filepath.Join(dir, "grid.jpg"), out.Output)
		assert.Equal(t, 2, out.Result.Width)
		assert.FileExists(t, out.Output)

		cb := <-called
		assert.Equal(t, out.Output, cb.Output)
		assert.Same(t, out.Result, cb.Result)
	case <-time.After(30 * time.Second):
		t.Fatal("conversion did not complete")
	}

	_, open := <-ch
	assert.False(t, open, "channel is closed after the outcome")
}

func TestConvertAsync_Error(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := <-ConvertAsync(context.Background(), filepath.Join(dir, "missing.csv"), "", DefaultOptions(), nil)
	assert.ErrorIs(t, out.Err, ErrFileNotFound)
	assert.Nil(t, out.Result)
}

func TestConvertAsync_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "grid.csv", "1,2\n3,4\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := <-ConvertAsync(ctx, input, "", DefaultOptions(), nil)
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "grid.jpg"))
}
