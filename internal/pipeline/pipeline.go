package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/OtaniMakoto/CSV2img/internal/colormap"
	"github.com/OtaniMakoto/CSV2img/internal/fsutil"
	"github.com/OtaniMakoto/CSV2img/internal/grid"
	"github.com/OtaniMakoto/CSV2img/internal/ir"
	"github.com/OtaniMakoto/CSV2img/internal/jpeg"
	"github.com/OtaniMakoto/CSV2img/internal/monitoring"
)

// Conversion failures. Callers match them with errors.Is.
var (
	ErrFileNotFound = grid.ErrFileNotFound
	ErrParse        = grid.ErrParse
	ErrEncode       = errors.New("encode error")
)

// Options controls the full CSV→JPEG conversion pipeline.
type Options struct {
	Quality  int               // JPEG quality (0-100)
	Optimize bool              // optimal Huffman tables
	Ragged   grid.RaggedPolicy // rows of unequal length
	Scale    int               // integer upscale factor, 1 keeps one pixel per cell
	Sidecar  bool              // write a JSON description next to the output (ConvertFile only)
}

// DefaultOptions returns quality 95, no scaling and ragged rows rejected.
func DefaultOptions() Options {
	return Options{
		Quality: jpeg.DefaultQuality,
		Ragged:  grid.RaggedReject,
		Scale:   1,
	}
}

// Validate reports whether the options are usable.
func (o Options) Validate() error {
	if err := (jpeg.EncoderOptions{Quality: o.Quality}).Validate(); err != nil {
		return err
	}
	if o.Scale < 1 {
		return fmt.Errorf("scale must be >= 1, got %d", o.Scale)
	}
	return nil
}

// Result holds the output of a pipeline run.
type Result struct {
	Data       []byte // encoded JPEG
	Rows       int
	Cols       int
	Width      int // output pixels, Cols*Scale
	Height     int // output pixels, Rows*Scale
	Min        float32
	Max        float32
	Degenerate bool
	Undefined  bool
	RunID      string // set by ConvertFile
}

// Run executes the full pipeline on delimited text: parse → normalize →
// colorize → encode.
func Run(csvData []byte, opts Options) (*Result, error) {
	return run(context.Background(), csvData, opts)
}

func run(ctx context.Context, csvData []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// 1. Load grid
	g, err := grid.Parse(bytes.NewReader(csvData), grid.ParseOptions{Ragged: opts.Ragged})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	monitoring.Logf("loaded grid: %d rows x %d cols", g.Rows, g.Cols)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return runGrid(ctx, g, opts)
}

// RunGrid executes normalize → colorize → encode on an already loaded grid.
func RunGrid(g *grid.Grid, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return runGrid(context.Background(), g, opts)
}

func runGrid(ctx context.Context, g *grid.Grid, opts Options) (*Result, error) {
	if g.Rows == 0 || g.Cols == 0 {
		return nil, fmt.Errorf("%w: unsupported grid shape %dx%d", ErrEncode, g.Rows, g.Cols)
	}

	// Output side = cells*Scale; compared by division so it cannot overflow.
	if limit := jpeg.MaxDimension / opts.Scale; g.Cols > limit || g.Rows > limit {
		return nil, fmt.Errorf("%w: %dx%d grid at scale %d exceeds the JPEG limit of %d pixels",
			ErrEncode, g.Rows, g.Cols, opts.Scale, jpeg.MaxDimension)
	}

	// 2. Normalize
	n := grid.Normalize(g)
	switch {
	case n.Undefined:
		monitoring.Logf("no finite values; using range [0, 1]")
	case n.Degenerate:
		monitoring.Logf("constant grid (value %g); all cells map to the bottom colour", n.Min)
	default:
		monitoring.Logf("value range: min=%g max=%g", n.Min, n.Max)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Colorize
	img := colormap.Colorize(n)
	img, err := ir.Scale(img, opts.Scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4. Encode JPEG
	encoded, err := jpeg.EncodeRGB(img.Pixels, img.Width, img.Height, jpeg.EncoderOptions{
		Quality:  opts.Quality,
		Optimize: opts.Optimize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return &Result{
		Data:       encoded,
		Rows:       g.Rows,
		Cols:       g.Cols,
		Width:      img.Width,
		Height:     img.Height,
		Min:        n.Min,
		Max:        n.Max,
		Degenerate: n.Degenerate,
		Undefined:  n.Undefined,
	}, nil
}

// DefaultOutputPath replaces the extension of inputPath with ".jpg".
func DefaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".jpg"
}

// ConvertFile reads inputPath, runs the pipeline and writes the JPEG to
// outputPath (DefaultOutputPath(inputPath) when empty). The output is
// written atomically: on failure no output file is created or replaced.
func ConvertFile(inputPath, outputPath string, opts Options) (*Result, error) {
	return convertFile(context.Background(), inputPath, outputPath, opts)
}

func convertFile(ctx context.Context, inputPath, outputPath string, opts Options) (*Result, error) {
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g, err := grid.Load(inputPath, grid.ParseOptions{Ragged: opts.Ragged})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	monitoring.Logf("loaded %s: %d rows x %d cols", inputPath, g.Rows, g.Cols)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := runGrid(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.RunID = uuid.New().String()

	// Stage everything, then rename the sidecar before the image: a failed
	// run leaves the previous image in place.
	staged, err := fsutil.Stage(outputPath, result.Data, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", ErrEncode, outputPath, err)
	}
	defer staged.Discard()

	if opts.Sidecar {
		data, err := encodeSidecar(NewSidecar(inputPath, outputPath, result, opts))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		path := SidecarPath(outputPath)
		sc, err := fsutil.Stage(path, data, 0644)
		if err != nil {
			return nil, fmt.Errorf("%w: writing sidecar %s: %v", ErrEncode, path, err)
		}
		defer sc.Discard()
		if err := sc.Commit(); err != nil {
			return nil, fmt.Errorf("%w: writing sidecar %s: %v", ErrEncode, path, err)
		}
	}

	if err := staged.Commit(); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", ErrEncode, outputPath, err)
	}
	monitoring.Logf("wrote %s (%d bytes, %dx%d px)", outputPath, len(result.Data), result.Width, result.Height)
	return result, nil
}
