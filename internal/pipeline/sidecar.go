package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OtaniMakoto/CSV2img/internal/fsutil"
)

// Sidecar describes a converted image so the colours can be mapped back to
// data values: colour 0 is Min, colour 1 is Max.
type Sidecar struct {
	RunID      string  `json:"run_id"`
	Source     string  `json:"source"`
	Output     string  `json:"output"`
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Min        float32 `json:"min"`
	Max        float32 `json:"max"`
	Degenerate bool    `json:"degenerate,omitempty"`
	Undefined  bool    `json:"undefined,omitempty"`
	Colormap   string  `json:"colormap"`
	Quality    int     `json:"quality"`
	Scale      int     `json:"scale"`
}

// NewSidecar builds the sidecar for a finished conversion.
func NewSidecar(source, output string, r *Result, opts Options) Sidecar {
	return Sidecar{
		RunID:      r.RunID,
		Source:     source,
		Output:     filepath.Base(output),
		Rows:       r.Rows,
		Cols:       r.Cols,
		Width:      r.Width,
		Height:     r.Height,
		Min:        r.Min,
		Max:        r.Max,
		Degenerate: r.Degenerate,
		Undefined:  r.Undefined,
		Colormap:   "jet",
		Quality:    opts.Quality,
		Scale:      opts.Scale,
	}
}

// SidecarPath returns outputPath with its extension replaced by ".json".
func SidecarPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".json"
}

// WriteSidecar writes sc as indented JSON.
func WriteSidecar(path string, sc Sidecar) error {
	data, err := encodeSidecar(sc)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("writing sidecar: %w", err)
	}
	return nil
}

func encodeSidecar(sc Sidecar) ([]byte, error) {
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sidecar: %w", err)
	}
	return append(data, '\n'), nil
}

// ReadSidecar loads a sidecar written by WriteSidecar.
func ReadSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sidecar: %w", err)
	}
	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing sidecar %s: %w", path, err)
	}
	return &sc, nil
}
