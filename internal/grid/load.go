package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// RaggedPolicy controls how rows with differing field counts are handled.
type RaggedPolicy int

const (
	// RaggedReject fails the parse on the first row whose width differs from the first row.
	RaggedReject RaggedPolicy = iota
	// RaggedPad pads every row with zeros to the widest row.
	RaggedPad
)

// ParseRaggedPolicy converts a policy name ("reject", "pad") to a RaggedPolicy.
func ParseRaggedPolicy(s string) (RaggedPolicy, error) {
	switch s {
	case "reject", "":
		return RaggedReject, nil
	case "pad":
		return RaggedPad, nil
	default:
		return 0, fmt.Errorf("unknown ragged-row policy: %q", s)
	}
}

func (p RaggedPolicy) String() string {
	switch p {
	case RaggedReject:
		return "reject"
	case RaggedPad:
		return "pad"
	default:
		return fmt.Sprintf("RaggedPolicy(%d)", int(p))
	}
}

// ParseOptions controls delimited-text parsing.
type ParseOptions struct {
	Delimiter byte // field separator, ',' when zero
	Comment   byte // start of a line comment, '#' when zero
	Ragged    RaggedPolicy
}

func (o ParseOptions) withDefaults() ParseOptions {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Comment == 0 {
		o.Comment = '#'
	}
	return o
}

// Load reads the grid stored at path.
func Load(path string, opts ParseOptions) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	g, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse reads delimited numeric text, one row per line. Empty and
// non-numeric fields become 0; "nan" and "inf" spellings are kept as
// non-finite values. Blank lines and '#' comments are skipped.
func Parse(r io.Reader, opts ParseOptions) (*Grid, error) {
	opts = opts.withDefaults()
	br := bufio.NewReader(r)

	var (
		rows  [][]float32
		width int
		line  int
	)
	for {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, &ParseError{Line: line + 1, Msg: err.Error()}
		}
		if text == "" && err == io.EOF {
			break
		}
		line++

		if i := strings.IndexByte(text, opts.Comment); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimRight(text, "\r\n")
		if strings.TrimSpace(text) != "" {
			fields := strings.Split(text, string(opts.Delimiter))
			if len(rows) == 0 {
				width = len(fields)
			} else if len(fields) != width {
				if opts.Ragged == RaggedReject {
					return nil, &ParseError{
						Line: line,
						Msg:  fmt.Sprintf("got %d columns instead of %d", len(fields), width),
					}
				}
				width = max(width, len(fields))
			}
			row := make([]float32, len(fields))
			for i, f := range fields {
				row[i] = parseField(f)
			}
			rows = append(rows, row)
		}

		if err == io.EOF {
			break
		}
	}

	if len(rows) == 0 {
		return nil, &ParseError{Msg: "no data rows"}
	}

	g := New(len(rows), width)
	for r, row := range rows {
		copy(g.Values[r*width:], row)
	}
	return g, nil
}

// parseField converts one field. The value is parsed at float64 precision
// and narrowed, so overflow becomes ±Inf rather than a parse failure.
func parseField(s string) float32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && ne.Err == strconv.ErrRange {
			return float32(v)
		}
		return 0
	}
	return float32(v)
}
